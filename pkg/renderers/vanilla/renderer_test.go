package vanilla

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputmask/pkg/model"
	"github.com/goliatone/go-inputmask/pkg/presets"
)

func renderForm(t *testing.T, form model.FormModel, opts ...Option) string {
	t.Helper()
	if err := presets.NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(form)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestRender_MaskedInputs(t *testing.T) {
	html := renderForm(t, model.FormModel{
		OperationID: "createContact",
		Method:      "POST",
		Endpoint:    "/contacts",
		Fields: []model.Field{
			{Name: "birthday", Required: true, Metadata: map[string]string{"mask": presets.Date}},
			{Name: "billing.phone", Type: model.FieldTypeString},
			{Name: "age", Type: model.FieldTypeInteger},
		},
	})

	for _, want := range []string{
		`<form class="inputmask-form" method="post" action="/contacts" data-operation="createContact">`,
		`id="birthday" name="birthday" type="text" required placeholder="__-__-____" data-mask="99-99-9999" data-placeholder-char="_" data-pipe="date:MM-DD-YYYY">`,
		`id="billing-phone" name="billing.phone" type="text" placeholder="(___) ___-____" data-mask="(999) 999-9999" data-placeholder-char="_">`,
		`id="age" name="age" type="number">`,
		`<label for="billing-phone">Billing Phone</label>`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRender_SanitisesText(t *testing.T) {
	html := renderForm(t, model.FormModel{Fields: []model.Field{{
		Name:        "code",
		Label:       `<script>alert(1)</script>Access <b>code</b>`,
		Description: `Use <em>uppercase</em><img src=x onerror=alert(1)>`,
		Mask:        &model.MaskBinding{Pattern: "aa-99", Guide: false},
	}}})

	if strings.Contains(html, "<script>") || strings.Contains(html, "onerror") || strings.Contains(html, "<b>") {
		t.Fatalf("unsanitised markup in output:\n%s", html)
	}
	for _, want := range []string{
		`<label for="code">Access code</label>`,
		`<small class="inputmask-help">Use <em>uppercase</em></small>`,
		`data-guide="false"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRender_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		FormTemplate: {Data: []byte(`{% for field in fields %}{{ field.name }}={{ field.mask }};{% endfor %}`)},
	}
	html := renderForm(t, model.FormModel{Fields: []model.Field{
		{Name: "zip", Format: "postal-code"},
	}}, WithTemplatesFS(files))
	if html != "zip=99999;" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestNew_MissingTemplate(t *testing.T) {
	if _, err := New(WithTemplatesFS(fstest.MapFS{})); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestRender_UsesTemplateRenderer(t *testing.T) {
	recorder := &recordingTemplateRenderer{output: "<form></form>"}
	r, err := New(WithTemplateRenderer(recorder), WithSubmitLabel("Save"), WithIDPrefix("f-"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.Render(model.FormModel{
		Method:   "PUT",
		Endpoint: "/contacts/1",
		Fields:   []model.Field{{Name: "zip", Mask: &model.MaskBinding{Pattern: "99999", Guide: true}}},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != "<form></form>" {
		t.Fatalf("unexpected output %q", out)
	}

	if diff := cmp.Diff([]string{FormTemplate}, recorder.calls); diff != "" {
		t.Fatalf("template calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{map[string]any{"submitLabel": "Save"}}, recorder.globals); diff != "" {
		t.Fatalf("globals mismatch (-want +got):\n%s", diff)
	}

	data, ok := recorder.data[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data type %T", recorder.data[0])
	}
	form := data["form"].(map[string]any)
	if form["method"] != "post" || form["endpoint"] != "/contacts/1" {
		t.Fatalf("unexpected form view %v", form)
	}
	fields := data["fields"].([]map[string]any)
	if fields[0]["id"] != "f-zip" || fields[0]["placeholder"] != "_____" {
		t.Fatalf("unexpected field view %v", fields[0])
	}
}

type recordingTemplateRenderer struct {
	output  string
	calls   []string
	data    []any
	globals []any
}

func (r *recordingTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	r.data = append(r.data, data)
	return r.output, nil
}

func (r *recordingTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (r *recordingTemplateRenderer) GlobalContext(data any) error {
	r.globals = append(r.globals, data)
	return nil
}
