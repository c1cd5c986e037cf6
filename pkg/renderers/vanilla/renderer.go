package vanilla

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-inputmask/pkg/model"
	"github.com/goliatone/go-inputmask/pkg/presets"
	"github.com/goliatone/go-inputmask/pkg/render/template"
	"github.com/goliatone/go-inputmask/pkg/render/template/gotemplate"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	templates   template.TemplateRenderer
	submitLabel string
	idPrefix    string
}

// WithTemplateRenderer renders FormTemplate through renderer instead of the
// bundled go-template engine. Template bundle options are ignored.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithTemplatesFS supplies an alternate template bundle; it must contain
// FormTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithSubmitLabel sets the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithIDPrefix prefixes every input id.
func WithIDPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.idPrefix = prefix
	}
}

// Renderer emits plain HTML forms whose masked inputs carry data-mask
// attributes for a client-side controller.
type Renderer struct {
	templates template.TemplateRenderer
	idPrefix  string
}

// New prepares the template engine. The bundled engine parses FormTemplate
// eagerly so a broken bundle fails here rather than on first render.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "Submit"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		if err := engine.Preload(FormTemplate); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		cfg.templates = engine
	}
	if err := cfg.templates.GlobalContext(map[string]any{"submitLabel": cfg.submitLabel}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return &Renderer{templates: cfg.templates, idPrefix: cfg.idPrefix}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "vanilla" }

// ContentType reports the rendered media type.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the form markup.
func (r *Renderer) Render(form model.FormModel) ([]byte, error) {
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		view, err := r.fieldView(field)
		if err != nil {
			return nil, err
		}
		fields = append(fields, view)
	}

	method := strings.ToLower(form.Method)
	if method != "get" {
		method = "post"
	}

	out, err := r.templates.RenderTemplate(FormTemplate, map[string]any{
		"form": map[string]any{
			"method":      method,
			"endpoint":    form.Endpoint,
			"operationId": form.OperationID,
		},
		"fields": fields,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) fieldView(field model.Field) (map[string]any, error) {
	label := field.Label
	if label == "" {
		label = model.DefaultLabeler(field.Name)
	}
	view := map[string]any{
		"id":        r.idPrefix + strings.ReplaceAll(field.Name, ".", "-"),
		"name":      field.Name,
		"label":     sanitizeLabel(label),
		"help":      sanitizeHelp(field.Description),
		"inputType": inputType(field),
		"required":  field.Required,
	}
	placeholder := field.Placeholder

	if b := field.Mask; b != nil {
		preset := presets.FromBinding(*b)
		if placeholder == "" {
			derived, err := preset.Placeholder()
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: field %s: %w", field.Name, err)
			}
			placeholder = derived
		}
		view["mask"] = b.Pattern
		view["placeholderChar"] = string(preset.PlaceholderRune())
		view["guide"] = b.Guide
		view["keepCharPositions"] = b.KeepCharPositions
		view["showMask"] = b.ShowMask
		if b.Pipe != "" {
			pipe := b.Pipe
			if b.PipeFormat != "" {
				pipe += ":" + b.PipeFormat
			}
			view["pipe"] = pipe
		}
	}
	view["placeholder"] = placeholder
	return view, nil
}

func inputType(field model.Field) string {
	if field.Mask != nil {
		return "text"
	}
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	case model.FieldTypeBoolean:
		return "checkbox"
	}
	if field.Format == "email" {
		return "email"
	}
	return "text"
}
