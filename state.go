package mustache

import (
	"context"
	"strings"

	mjerrors "github.com/mustache-go/mustache/internal/errors"
	"github.com/mustache-go/mustache/parser"
	"github.com/mustache-go/mustache/value"
)

// State holds the evaluation state of a single render.
type State struct {
	r        *Renderer
	ctx      context.Context
	partials map[string]string
	out      *strings.Builder
	depth    int
	fuel     *budget

	// iterators read by this render, closed when it returns
	iterators map[*value.Iterator]struct{}
}

func newState(r *Renderer, ctx context.Context, partials map[string]string) *State {
	s := &State{
		r:        r,
		ctx:      ctx,
		partials: partials,
		out:      &strings.Builder{},
	}
	if r.fuel > 0 {
		s.fuel = newBudget(r.fuel)
	}
	return s
}

// enter guards every nested token list: sections, partials and lambda
// expansions.
func (s *State) enter() error {
	s.depth++
	if s.r.maxDepth > 0 && s.depth > s.r.maxDepth {
		return NewError(ErrRecursionLimit, "template nesting is too deep")
	}
	if err := s.ctx.Err(); err != nil {
		return NewError(ErrCanceled, "render canceled").WithCause(err)
	}
	return nil
}

func (s *State) leave() {
	s.depth--
}

func (s *State) renderTokens(tmpl *parser.Template, c *Context, tokens []*parser.Token) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for _, tok := range tokens {
		if err := s.fuel.spend(); err != nil {
			return s.attachErrorInfo(err, tmpl, tok)
		}
		var err error
		switch tok.Kind {
		case parser.TokenText:
			s.out.WriteString(tmpl.Text(tok))
		case parser.TokenVariable:
			err = s.renderName(tmpl, tok, c, true)
		case parser.TokenUnescapedVariable:
			err = s.renderName(tmpl, tok, c, false)
		case parser.TokenSectionOpen:
			err = s.renderSection(tmpl, tok, c)
		case parser.TokenInvertedSectionOpen:
			err = s.renderInverted(tmpl, tok, c)
		case parser.TokenPartial:
			err = s.renderPartial(tmpl, tok, c)
		}
		if err != nil {
			return s.attachErrorInfo(err, tmpl, tok)
		}
	}
	return nil
}

func (s *State) lookup(tmpl *parser.Template, tok *parser.Token, c *Context) (value.Value, error) {
	val, err := c.Lookup(tok.Name)
	if err != nil {
		return val, err
	}
	if val.IsUndefined() && s.r.undefinedBehavior == value.UndefinedStrict {
		return val, s.undefinedError(tmpl, tok, c)
	}
	if it, ok := val.AsIterator(); ok {
		if s.iterators == nil {
			s.iterators = make(map[*value.Iterator]struct{})
		}
		s.iterators[it] = struct{}{}
	}
	return val, nil
}

// closeIterators stops every iterator the render started but did not drain.
func (s *State) closeIterators() {
	for it := range s.iterators {
		it.Close()
	}
	s.iterators = nil
}

func (s *State) renderName(tmpl *parser.Template, tok *parser.Token, c *Context, escape bool) error {
	val, err := s.lookup(tmpl, tok, c)
	if err != nil {
		return err
	}

	if val.Kind() == value.KindNameLambda {
		text, _, err := val.CallName()
		if err != nil {
			return mjerrors.Newf(ErrLambda, "lambda %q failed", tok.Name).WithName(tok.Name).WithCause(err)
		}
		s.r.logger.Debug("lambda expanded", "name", tok.Name, "bytes", len(text))
		// Lambda output always starts with the default delimiters.
		expanded, err := s.r.parseLambda(text, s.r.delimiter)
		if err != nil {
			return err
		}
		rendered, err := s.capture(func() error {
			return s.renderTokens(expanded, c, expanded.Children)
		})
		if err != nil {
			return err
		}
		val = value.FromString(rendered)
	}

	if !val.IsTrue() {
		return nil
	}
	str := val.String()
	if escape {
		str = s.r.escape(str)
	}
	s.out.WriteString(str)
	return nil
}

func (s *State) renderSection(tmpl *parser.Template, tok *parser.Token, c *Context) error {
	val, err := s.lookup(tmpl, tok, c)
	if err != nil {
		return err
	}
	if !val.IsTrue() {
		return nil
	}

	if val.Kind() == value.KindSectionLambda {
		text, _, err := val.CallSection(tmpl.SectionText(tok))
		if err != nil {
			return mjerrors.Newf(ErrLambda, "lambda %q failed", tok.Name).WithName(tok.Name).WithCause(err)
		}
		if text == "" {
			return nil
		}
		s.r.logger.Debug("section lambda expanded", "name", tok.Name, "bytes", len(text))
		// Section lambda output keeps the delimiters in effect at the tag.
		expanded, err := s.r.parseLambda(text, tok.Delimiter)
		if err != nil {
			return err
		}
		return s.renderTokens(expanded, c, expanded.Children)
	}

	if val.IsList() {
		for _, item := range val.Iter() {
			if err := s.renderTokens(tmpl, c.Push(item), tok.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return s.renderTokens(tmpl, c.Push(val), tok.Children)
}

func (s *State) renderInverted(tmpl *parser.Template, tok *parser.Token, c *Context) error {
	val, err := s.lookup(tmpl, tok, c)
	if err != nil {
		return err
	}
	if val.IsTrue() {
		return nil
	}
	return s.renderTokens(tmpl, c, tok.Children)
}

func (s *State) renderPartial(tmpl *parser.Template, tok *parser.Token, c *Context) error {
	partial, ok, err := s.r.partial(tok.Name, tok.PartialIndent, s.partials)
	if err != nil || !ok {
		return err
	}
	return s.renderTokens(partial, c, partial.Children)
}

// capture runs f with output redirected and returns what it wrote.
func (s *State) capture(f func() error) (string, error) {
	oldOut := s.out
	s.out = &strings.Builder{}
	err := f()
	result := s.out.String()
	s.out = oldOut
	return result, err
}

// indentLines prefixes every non-empty line of source with indent,
// including a final line without a trailing newline.
func indentLines(source, indent string) string {
	if indent == "" {
		return source
	}
	var sb strings.Builder
	sb.Grow(len(source) + len(indent)*(strings.Count(source, "\n")+1))
	for _, line := range strings.SplitAfter(source, "\n") {
		if line != "" && line != "\n" {
			sb.WriteString(indent)
		}
		sb.WriteString(line)
	}
	return sb.String()
}
