package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inputmask/pkg/model"
)

// ErrOperationNotFound is returned when no operation matches the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// OperationInfo summarises an operation of a document.
type OperationInfo struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

type extractOptions struct {
	validate bool
	labeler  func(string) string
}

// ExtractOption configures Extract and Operations.
type ExtractOption func(*extractOptions)

// WithValidation validates the document before extraction.
func WithValidation() ExtractOption {
	return func(o *extractOptions) {
		o.validate = true
	}
}

// WithLabeler overrides model.DefaultLabeler.
func WithLabeler(fn func(string) string) ExtractOption {
	return func(o *extractOptions) {
		if fn != nil {
			o.labeler = fn
		}
	}
}

func newExtractOptions(opts []ExtractOption) extractOptions {
	cfg := extractOptions{labeler: model.DefaultLabeler}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Operations lists the operations of a document sorted by path then method.
// Operations without an operationId are named "method:path".
func Operations(ctx context.Context, data []byte, opts ...ExtractOption) ([]OperationInfo, error) {
	spec, err := parse(ctx, data, newExtractOptions(opts))
	if err != nil {
		return nil, err
	}
	var out []OperationInfo
	eachOperation(spec, func(method, path string, op *openapi3.Operation) bool {
		out = append(out, OperationInfo{ID: operationID(method, path, op), Method: method, Path: path, Summary: op.Summary})
		return true
	})
	return out, nil
}

// Extract builds the form model for the operation's request body. Nested
// object properties become dotted field names; arrays are skipped.
func Extract(ctx context.Context, data []byte, id string, opts ...ExtractOption) (model.FormModel, error) {
	cfg := newExtractOptions(opts)
	spec, err := parse(ctx, data, cfg)
	if err != nil {
		return model.FormModel{}, err
	}

	var (
		form  model.FormModel
		found bool
	)
	eachOperation(spec, func(method, path string, op *openapi3.Operation) bool {
		if operationID(method, path, op) != id {
			return true
		}
		found = true
		form = model.FormModel{
			OperationID: id,
			Endpoint:    path,
			Method:      method,
			Summary:     op.Summary,
			Description: op.Description,
		}
		if schema := requestSchema(op.RequestBody); schema != nil {
			form.Fields = flatten(cfg, "", schema, map[*openapi3.Schema]bool{})
		}
		return false
	})
	if !found {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return form, nil
}

func parse(ctx context.Context, data []byte, cfg extractOptions) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	return spec, nil
}

func eachOperation(spec *openapi3.T, fn func(method, path string, op *openapi3.Operation) bool) {
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range methods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			if !fn(method, path, op) {
				return
			}
		}
	}
}

func operationID(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func flatten(cfg extractOptions, prefix string, schema *openapi3.Schema, visiting map[*openapi3.Schema]bool) []model.Field {
	if schema == nil || visiting[schema] {
		return nil
	}
	visiting[schema] = true
	defer delete(visiting, schema)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []model.Field
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}

		kind := firstSchemaType(prop.Type)
		switch {
		case kind == "object" || (kind == "" && len(prop.Properties) > 0):
			fields = append(fields, flatten(cfg, full, prop, visiting)...)
			continue
		case kind == "array":
			continue
		}

		fields = append(fields, model.Field{
			Name:        full,
			Type:        fieldType(kind),
			Format:      prop.Format,
			Pattern:     prop.Pattern,
			Required:    required[name],
			Label:       cfg.labeler(full),
			Description: prop.Description,
			Default:     prop.Default,
			Metadata:    model.ParseMaskExtensions(prop.Extensions),
		})
	}
	return fields
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func fieldType(kind string) model.FieldType {
	switch kind {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	default:
		return model.FieldTypeString
	}
}
