package inputmask

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-inputmask/pkg/maskedinput"
	"github.com/goliatone/go-inputmask/pkg/model"
	pkgopenapi "github.com/goliatone/go-inputmask/pkg/openapi"
	"github.com/goliatone/go-inputmask/pkg/presets"
	"github.com/goliatone/go-inputmask/pkg/renderers/vanilla"
)

// Option configures GenerateHTML.
type Option func(*generateConfig)

type generateConfig struct {
	loader   *pkgopenapi.Loader
	registry *presets.Registry
	extract  []pkgopenapi.ExtractOption
	extra    model.Decorators
	render   []vanilla.Option
}

// WithLoader overrides the loader used to read the OpenAPI source.
func WithLoader(loader *pkgopenapi.Loader) Option {
	return func(cfg *generateConfig) {
		if loader != nil {
			cfg.loader = loader
		}
	}
}

// WithPresets overrides the registry that binds presets to fields.
func WithPresets(reg *presets.Registry) Option {
	return func(cfg *generateConfig) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithDecorators runs additional decorators after presets are bound.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *generateConfig) {
		cfg.extra = append(cfg.extra, decorators...)
	}
}

// WithExtractOptions forwards options to openapi.Extract.
func WithExtractOptions(opts ...pkgopenapi.ExtractOption) Option {
	return func(cfg *generateConfig) {
		cfg.extract = append(cfg.extract, opts...)
	}
}

// WithRendererOptions forwards options to the vanilla renderer.
func WithRendererOptions(opts ...vanilla.Option) Option {
	return func(cfg *generateConfig) {
		cfg.render = append(cfg.render, opts...)
	}
}

// GenerateHTML loads the OpenAPI source, builds the form for operationID,
// binds mask presets to its fields, and renders it as HTML. It is the simplest
// entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID string, options ...Option) ([]byte, error) {
	cfg := generateConfig{loader: NewLoader()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = presets.NewRegistry()
	}

	data, err := cfg.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	form, err := pkgopenapi.Extract(ctx, data, operationID, cfg.extract...)
	if err != nil {
		return nil, err
	}
	chain := append(model.Decorators{cfg.registry}, cfg.extra...)
	if err := chain.Decorate(&form); err != nil {
		return nil, err
	}

	r, err := vanilla.New(cfg.render...)
	if err != nil {
		return nil, err
	}
	return r.Render(form)
}

// NewLoader constructs an OpenAPI loader for files and URLs.
func NewLoader(options ...pkgopenapi.LoaderOption) *pkgopenapi.Loader {
	return pkgopenapi.NewLoader(options...)
}

// NewInput builds a masked input from a built-in preset.
func NewInput(preset string, options ...maskedinput.Option) (*maskedinput.Input, error) {
	p, ok := presets.NewRegistry().Lookup(preset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", presets.ErrUnknownPreset, preset)
	}
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	return maskedinput.New(cfg, options...)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
