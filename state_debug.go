package mustache

import (
	"strings"

	mjerrors "github.com/mustache-go/mustache/internal/errors"
	"github.com/mustache-go/mustache/parser"
)

// attachErrorInfo fills in the location of err from the token being
// rendered, unless a nested template already did.
func (s *State) attachErrorInfo(err error, tmpl *parser.Template, tok *parser.Token) error {
	templErr, ok := err.(*Error)
	if !ok || templErr.Span != nil {
		return err
	}
	templErr.WithSpan(tmpl.Span(tok)).WithSource(tmpl.Source)
	if templErr.Snippet == "" && tok.Kind != parser.TokenText {
		templErr.WithSnippet(tmpl.Surrounding(tok))
	}
	return err
}

// undefinedError reports a failed lookup in strict mode, with similar
// names from the context stack as suggestions.
func (s *State) undefinedError(tmpl *parser.Template, tok *parser.Token, c *Context) error {
	missing, rest, dotted := strings.Cut(tok.Name, ".")
	candidates := c.Names()
	if dotted {
		// When the head resolves, the miss is further down the path.
		if val, err := c.Lookup(missing); err == nil && !val.IsUndefined() {
			for _, seg := range strings.Split(rest, ".") {
				next := c.resolve(val, seg)
				if next.IsUndefined() {
					missing, candidates = seg, val.Keys()
					break
				}
				val = next
			}
		}
	}
	return mjerrors.Newf(ErrUndefinedVar, "lookup failed for %q", tok.Name).
		WithName(tok.Name).
		WithSpan(tmpl.Span(tok)).
		WithSource(tmpl.Source).
		WithSnippet(tmpl.Surrounding(tok)).
		WithSuggestions(mjerrors.Suggest(missing, candidates))
}
