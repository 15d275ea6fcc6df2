// Package parser turns Mustache template source into a token tree.
//
// Parsing happens in three passes. The tokenizer walks the source with a
// lexer.Scanner and the delimiter in effect at each point. The squash pass
// removes the whitespace of standalone lines and records partial
// indentation. The nest pass folds sections into a tree.
package parser

import (
	"strings"
	"unicode"

	"github.com/mustache-go/mustache/internal/errors"
	"github.com/mustache-go/mustache/lexer"
)

// Parser holds the state of a single tokenizer run.
type Parser struct {
	scanner   *lexer.Scanner
	source    string
	delim     lexer.Delimiter
	tokens    []*Token
	textStart int
}

// Parse parses source starting with the given delimiter.
func Parse(source string, delim lexer.Delimiter) (*Template, error) {
	p := &Parser{
		scanner: lexer.NewScanner(source),
		source:  source,
		delim:   delim,
	}
	if err := p.tokenize(); err != nil {
		return nil, err
	}
	tokens := squash(p.source, p.tokens)
	children, err := nest(p.source, tokens)
	if err != nil {
		return nil, err
	}
	return &Template{
		Source:    source,
		Delimiter: delim,
		Children:  children,
	}, nil
}

// ParseDefault parses source with the default delimiter.
func ParseDefault(source string) (*Template, error) {
	return Parse(source, lexer.DefaultDelimiter())
}

func (p *Parser) tokenize() error {
	s := p.scanner
	for !s.EOF() {
		if p.delim.Open != "" && s.StartsWith(p.delim.Open) {
			if err := p.parseTag(); err != nil {
				return err
			}
			continue
		}
		if s.Peek(0) == '\n' {
			s.Seek(1)
			p.flushText(s.Pos())
			continue
		}
		s.Seek(1)
	}
	p.flushText(s.Pos())
	return nil
}

func (p *Parser) flushText(end int) {
	if end > p.textStart {
		p.tokens = append(p.tokens, &Token{
			Kind:            TokenText,
			Start:           p.textStart,
			End:             end,
			BeginningOfLine: p.isBeginningOfLine(p.textStart),
			Delimiter:       p.delim,
		})
	}
	p.textStart = end
}

func (p *Parser) isBeginningOfLine(pos int) bool {
	return pos == 0 || p.source[pos-1] == '\n'
}

func (p *Parser) parseTag() error {
	s := p.scanner
	start := s.Pos()
	p.flushText(start)
	s.Seek(len(p.delim.Open))

	kind, hasSigil := kindFromSigil(s.Peek(0))
	sigil := s.Peek(0)
	if hasSigil {
		s.Seek(1)
	}

	var body string
	switch {
	case kind == TokenDelimiterChange:
		body = s.ReadUntilJustBefore("=")
		if !s.Seek(1) {
			return p.unclosed(start)
		}
		s.SeekUntilJustBefore(p.delim.Close)
	case sigil == '{':
		body = s.ReadUntilJustBefore("}" + p.delim.Close)
		if !s.StartsWith("}" + p.delim.Close) {
			return p.unclosed(start)
		}
		s.Seek(1)
	default:
		body = s.ReadUntilJustBefore(p.delim.Close)
	}
	if !s.StartsWith(p.delim.Close) {
		return p.unclosed(start)
	}
	s.Seek(len(p.delim.Close))

	tok := &Token{
		Kind:            kind,
		Name:            strings.TrimSpace(body),
		Start:           start,
		End:             s.Pos(),
		SectionStart:    s.Pos(),
		BeginningOfLine: p.isBeginningOfLine(start),
		Delimiter:       p.delim,
	}
	if kind.HasName() {
		if err := validateName(tok.Name); err != nil {
			return err.WithOffset(p.source, start).WithName(tok.Name)
		}
	}
	if kind == TokenComment {
		tok.Name = ""
	}
	if kind == TokenDelimiterChange {
		delim, err := lexer.ParseDelimiter(body)
		if err != nil {
			return errors.New(errors.ErrInvalidDelimiter, err.Error()).
				WithOffset(p.source, start).
				WithCause(err)
		}
		p.delim = delim
		tok.Name = ""
	}

	p.tokens = append(p.tokens, tok)
	p.textStart = s.Pos()
	return nil
}

func (p *Parser) unclosed(start int) error {
	return errors.Newf(errors.ErrUnclosedTag, "missing closing delimiter %q", p.delim.Close).
		WithOffset(p.source, start)
}

func validateName(name string) *errors.Error {
	if name == "" {
		return errors.New(errors.ErrInvalidName, "tag name is empty")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
			return errors.Newf(errors.ErrInvalidName, "invalid character %q in tag name %q", r, name)
		}
	}
	return nil
}

// squash removes whitespace-only text from standalone lines. A line is
// standalone if it holds at least one standalone tag, no interpolation and
// nothing but whitespace text. The whitespace preceding a standalone
// partial becomes its indentation.
func squash(source string, tokens []*Token) []*Token {
	out := make([]*Token, 0, len(tokens))
	lineStart := 0
	for i := range tokens {
		if i+1 < len(tokens) && !tokens[i+1].BeginningOfLine {
			continue
		}
		line := tokens[lineStart : i+1]
		lineStart = i + 1
		if !isStandaloneLine(source, line) {
			out = append(out, line...)
			continue
		}
		var indent strings.Builder
		for _, tok := range line {
			switch tok.Kind {
			case TokenText:
				indent.WriteString(source[tok.Start:tok.End])
			case TokenPartial:
				tok.PartialIndent += indent.String()
				indent.Reset()
				out = append(out, tok)
			default:
				out = append(out, tok)
			}
		}
	}
	return out
}

func isStandaloneLine(source string, line []*Token) bool {
	hasTag := false
	for _, tok := range line {
		switch {
		case tok.Kind == TokenText:
			if strings.TrimLeft(source[tok.Start:tok.End], " \t\r\n\v\f") != "" {
				return false
			}
		case tok.Kind.Standalone():
			hasTag = true
		default:
			return false
		}
	}
	return hasTag
}

// nest folds the flat token list into a tree of sections.
func nest(source string, tokens []*Token) ([]*Token, error) {
	var root []*Token
	var stack []*Token
	appendTo := func(tok *Token) {
		if len(stack) == 0 {
			root = append(root, tok)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, tok)
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenSectionOpen, TokenInvertedSectionOpen:
			appendTo(tok)
			stack = append(stack, tok)
		case TokenSectionClose:
			if len(stack) == 0 {
				return nil, errors.Newf(errors.ErrUnopenedSection, "closing tag %q has no matching open tag", tok.Name).
					WithOffset(source, tok.Start).
					WithName(tok.Name)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if open.Name != tok.Name {
				return nil, errors.Newf(errors.ErrSectionMismatch, "section %q closed by %q", open.Name, tok.Name).
					WithOffset(source, tok.Start).
					WithName(tok.Name)
			}
			open.SectionEnd = tok.Start
		default:
			appendTo(tok)
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, errors.Newf(errors.ErrUnclosedSection, "section %q is never closed", open.Name).
			WithOffset(source, open.Start).
			WithName(open.Name)
	}
	return root, nil
}
