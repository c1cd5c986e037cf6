package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputmask/pkg/model"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "contacts.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestExtract(t *testing.T) {
	form, err := Extract(context.Background(), readFixture(t), "createContact", WithValidation())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if form.Method != "POST" || form.Endpoint != "/contacts" || form.Summary != "Create a contact" {
		t.Fatalf("unexpected form header %+v", form)
	}

	want := []model.Field{
		{Name: "address.since", Type: model.FieldTypeString, Label: "Address Since", Metadata: map[string]string{
			"maskPattern": "99/99/9999", "maskPipe": "date", "maskPipeFormat": "MM/DD/YYYY",
		}},
		{Name: "address.zip", Type: model.FieldTypeString, Label: "Address Zip", Metadata: map[string]string{"maskPattern": "99999"}},
		{Name: "age", Type: model.FieldTypeInteger, Label: "Age"},
		{Name: "birthDate", Type: model.FieldTypeString, Format: "date", Required: true, Label: "Birth Date"},
		{Name: "name", Type: model.FieldTypeString, Required: true, Label: "Name", Description: "Full name"},
		{Name: "phone", Type: model.FieldTypeString, Label: "Phone", Metadata: map[string]string{"mask": "phone-us"}},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_UnknownOperation(t *testing.T) {
	_, err := Extract(context.Background(), readFixture(t), "deleteContact")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestOperations(t *testing.T) {
	ops, err := Operations(context.Background(), readFixture(t))
	if err != nil {
		t.Fatalf("Operations: %v", err)
	}
	want := []OperationInfo{
		{ID: "createContact", Method: "POST", Path: "/contacts", Summary: "Create a contact"},
		{ID: "get:/contacts/{id}", Method: "GET", Path: "/contacts/{id}"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	if _, err := Extract(context.Background(), []byte("  "), "x"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestLoader(t *testing.T) {
	data := readFixture(t)
	ctx := context.Background()

	fromFile, err := NewLoader().Load(ctx, SourceFromFile(filepath.Join("testdata", "contacts.yaml")))
	if err != nil || len(fromFile) != len(data) {
		t.Fatalf("file load: %v", err)
	}

	fsLoader := NewLoader(WithFileSystem(fstest.MapFS{"api.yaml": {Data: data}}))
	if _, err := fsLoader.Load(ctx, SourceFromFS("api.yaml")); err != nil {
		t.Fatalf("fs load: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src, err := SourceFromURL(server.URL)
	if err != nil {
		t.Fatalf("SourceFromURL: %v", err)
	}
	if _, err := NewLoader().Load(ctx, src); err == nil {
		t.Fatal("expected http to be disabled by default")
	}
	fetched, err := NewLoader(WithHTTPFallback(0)).Load(ctx, src)
	if err != nil || len(fetched) != len(data) {
		t.Fatalf("http load: %v", err)
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("https://example.com/openapi.yaml")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v (%v)", src, err)
	}
	src, err = ParseSource("./api.yaml")
	if err != nil || src.Kind() != SourceKindFile || src.Location() != "api.yaml" {
		t.Fatalf("expected file source, got %v (%v)", src, err)
	}
	if _, err := SourceFromURL("ftp://example.com/x"); err == nil {
		t.Fatal("expected unsupported scheme error")
	}
}
