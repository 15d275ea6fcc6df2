// Package mustache implements logic-less Mustache templates.
//
// # Quick Start
//
// Basic usage:
//
//	out, _ := mustache.Render("Hello {{name}}!", map[string]any{"name": "World"}, nil)
//	fmt.Println(out) // Output: Hello World!
//
// # Template Syntax
//
// Key syntax elements:
//   - Variables: {{name}} (HTML escaped) and {{{name}}} or {{&name}} (raw)
//   - Sections: {{#items}}...{{/items}}
//   - Inverted sections: {{^items}}...{{/items}}
//   - Comments: {{! comment }}
//   - Partials: {{> header}}
//   - Delimiter changes: {{=<% %>=}}
//
// Names may be dotted. {{a.b.c}} resolves a against the context stack and
// then b and c strictly inside the result. A lone dot refers to the
// current item.
//
// # Renderer Configuration
//
// The Renderer is the central configuration object and holds the parse
// caches:
//
//	r := mustache.NewRenderer()
//	r.SetUndefinedBehavior(mustache.UndefinedStrict)
//	r.SetLoader(mustache.NewFSLoader(os.DirFS("templates"), ".mustache"))
//	tmpl, err := r.Compile(source)
//	out, err := tmpl.Render(view, nil)
//
// # Lambdas
//
// A func() string in the view is a name lambda. Its result is parsed and
// rendered as a template. A func(string) string is a section lambda. It
// receives the raw section body and its result is rendered in place of
// the section.
//
// # Error Handling
//
// Parse and render failures are reported as *Error with a kind, a location
// and for undefined names in strict mode a list of suggestions:
//
//	var merr *mustache.Error
//	if errors.As(err, &merr) {
//	    fmt.Printf("%+v\n", merr)
//	}
package mustache

import (
	"github.com/mustache-go/mustache/value"
)

// Value is a dynamically typed value in a view.
type Value = value.Value

// ValueKind describes the type of a Value.
type ValueKind = value.ValueKind

// Common value kinds
const (
	KindUndefined     = value.KindUndefined
	KindNone          = value.KindNone
	KindBool          = value.KindBool
	KindNumber        = value.KindNumber
	KindString        = value.KindString
	KindSeq           = value.KindSeq
	KindMap           = value.KindMap
	KindIterable      = value.KindIterable
	KindNameLambda    = value.KindNameLambda
	KindSectionLambda = value.KindSectionLambda
	KindPlain         = value.KindPlain
)

// UndefinedBehavior controls how unresolved names render.
type UndefinedBehavior = value.UndefinedBehavior

const (
	UndefinedLenient = value.UndefinedLenient
	UndefinedStrict  = value.UndefinedStrict
)

// Value constructors
var (
	Undefined            = value.Undefined
	None                 = value.None
	FromBool             = value.FromBool
	FromInt              = value.FromInt
	FromFloat            = value.FromFloat
	FromString           = value.FromString
	FromSlice            = value.FromSlice
	FromMap              = value.FromMap
	FromAny              = value.FromAny
	FromObject           = value.FromObject
	FromNameLambda       = value.FromNameLambda
	FromNameLambdaErr    = value.FromNameLambdaErr
	FromSectionLambda    = value.FromSectionLambda
	FromSectionLambdaErr = value.FromSectionLambdaErr
	FromSeq              = value.FromSeq
	FromIterator         = value.FromIterator
)

var defaultRenderer = NewRenderer()

// Render renders template against view using a shared default renderer.
func Render(template string, view any, partials map[string]string) (string, error) {
	return defaultRenderer.Render(template, view, partials)
}
