package inputmask

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-inputmask/pkg/model"
	pkgopenapi "github.com/goliatone/go-inputmask/pkg/openapi"
	"github.com/goliatone/go-inputmask/pkg/presets"
	"github.com/goliatone/go-inputmask/pkg/renderers/vanilla"
)

func TestGenerateHTML_Contacts(t *testing.T) {
	html, err := GenerateHTML(
		context.Background(),
		pkgopenapi.SourceFromFile("pkg/openapi/testdata/contacts.yaml"),
		"createContact",
		WithRendererOptions(vanilla.WithSubmitLabel("Save")),
		WithDecorators(model.DecoratorFunc(func(form *model.FormModel) error {
			if f, ok := form.Field("name"); ok {
				f.Label = "Contact name"
			}
			return nil
		})),
	)
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}

	out := string(html)
	for _, want := range []string{
		`action="/contacts"`,
		`data-mask="(999) 999-9999"`,
		`data-mask="99999"`,
		`data-pipe="date:MM/DD/YYYY"`,
		`<button type="submit">Save</button>`,
		`Contact name`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestGenerateHTML_UnknownOperation(t *testing.T) {
	_, err := GenerateHTML(context.Background(), pkgopenapi.SourceFromFile("pkg/openapi/testdata/contacts.yaml"), "missing")
	if !errors.Is(err, pkgopenapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestNewInput(t *testing.T) {
	in, err := NewInput(presets.Date)
	if err != nil {
		t.Fatalf("NewInput: %v", err)
	}
	defer in.Close()

	change, err := in.Update("4", 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if change.Value != "04-__-____" {
		t.Fatalf("unexpected value %q", change.Value)
	}

	if _, err := NewInput("nope"); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), vanilla.FormTemplate); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
}
