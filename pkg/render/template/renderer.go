package template

import "io"

// TemplateRenderer is the engine contract HTML renderers depend on. It
// follows the github.com/goliatone/go-template engine surface so either the
// bundled adapter or a caller supplied engine can back a renderer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
