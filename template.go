package mustache

import (
	"context"

	"github.com/mustache-go/mustache/parser"
)

// Template is a parsed template bound to the renderer that compiled it.
type Template struct {
	r    *Renderer
	tmpl *parser.Template
}

// Source returns the template source.
func (t *Template) Source() string {
	return t.tmpl.Source
}

// Render renders the template against view with optional partials.
func (t *Template) Render(view any, partials map[string]string) (string, error) {
	return t.RenderContext(context.Background(), view, partials)
}

// RenderContext renders the template with cancellation.
func (t *Template) RenderContext(ctx context.Context, view any, partials map[string]string) (string, error) {
	return t.r.execute(ctx, t.tmpl, view, partials)
}

// Dump returns a debug listing of the parsed token tree.
func (t *Template) Dump() string {
	return t.tmpl.Dump()
}
