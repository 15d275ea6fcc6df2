package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mustache-go/mustache/lexer"
	"github.com/mustache-go/mustache/syntax"
)

// TokenKind describes the type of a token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenVariable
	TokenUnescapedVariable
	TokenSectionOpen
	TokenInvertedSectionOpen
	TokenSectionClose
	TokenComment
	TokenPartial
	TokenDelimiterChange
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenVariable:
		return "variable"
	case TokenUnescapedVariable:
		return "unescaped variable"
	case TokenSectionOpen:
		return "section"
	case TokenInvertedSectionOpen:
		return "inverted section"
	case TokenSectionClose:
		return "section close"
	case TokenComment:
		return "comment"
	case TokenPartial:
		return "partial"
	case TokenDelimiterChange:
		return "set delimiter"
	default:
		return "unknown"
	}
}

// Standalone reports whether a tag of this kind may occupy a line of its
// own and have the line removed from the output.
func (k TokenKind) Standalone() bool {
	switch k {
	case TokenComment, TokenSectionOpen, TokenInvertedSectionOpen,
		TokenSectionClose, TokenPartial, TokenDelimiterChange:
		return true
	}
	return false
}

// HasName reports whether tags of this kind carry a validated name.
func (k TokenKind) HasName() bool {
	return k != TokenText && k != TokenComment && k != TokenDelimiterChange
}

func kindFromSigil(c byte) (TokenKind, bool) {
	switch c {
	case '>':
		return TokenPartial, true
	case '^':
		return TokenInvertedSectionOpen, true
	case '/':
		return TokenSectionClose, true
	case '&', '{':
		return TokenUnescapedVariable, true
	case '#':
		return TokenSectionOpen, true
	case '!':
		return TokenComment, true
	case '=':
		return TokenDelimiterChange, true
	default:
		return TokenVariable, false
	}
}

// Token is a single syntactic unit of a template.
//
// Offsets refer to the source of the Template that owns the token. For text
// tokens [Start, End) is the literal text; for tags it is the full tag
// including delimiters.
type Token struct {
	Kind  TokenKind
	Name  string
	Start int
	End   int

	// Sections only.
	Children     []*Token
	SectionStart int
	SectionEnd   int

	// Whitespace preceding a standalone partial tag.
	PartialIndent string

	BeginningOfLine bool
	Delimiter       lexer.Delimiter
}

// Template is a parsed, immutable token tree.
type Template struct {
	Source    string
	Delimiter lexer.Delimiter
	Children  []*Token
}

// Text returns the literal text of a text token.
func (t *Template) Text(tok *Token) string {
	return t.Source[tok.Start:tok.End]
}

// SectionText returns the raw, unprocessed body of a section.
func (t *Template) SectionText(tok *Token) string {
	if tok.SectionEnd < tok.SectionStart {
		return ""
	}
	return t.Source[tok.SectionStart:tok.SectionEnd]
}

// Span returns the location of a token in the source.
func (t *Template) Span(tok *Token) syntax.Span {
	return syntax.NewSpan(t.Source, tok.Start, tok.End)
}

const (
	surroundLeft  = 70
	surroundRight = 80
)

// Surrounding returns a bounded excerpt of the source around a token.
func (t *Template) Surrounding(tok *Token) string {
	start := tok.Start - surroundLeft
	if start < 0 {
		start = 0
	}
	end := tok.Start + surroundRight
	if end > len(t.Source) {
		end = len(t.Source)
	}
	for start > 0 && !utf8.RuneStart(t.Source[start]) {
		start--
	}
	for end < len(t.Source) && !utf8.RuneStart(t.Source[end]) {
		end++
	}
	return t.Source[start:end]
}

// Dump renders the token tree in an indented debug format.
func (t *Template) Dump() string {
	var sb strings.Builder
	t.dump(&sb, t.Children, 0)
	return sb.String()
}

func (t *Template) dump(sb *strings.Builder, tokens []*Token, depth int) {
	for _, tok := range tokens {
		sb.WriteString(strings.Repeat("  ", depth))
		switch tok.Kind {
		case TokenText:
			fmt.Fprintf(sb, "%s %q", tok.Kind, t.Text(tok))
		case TokenComment, TokenDelimiterChange:
			fmt.Fprintf(sb, "%s", tok.Kind)
		default:
			fmt.Fprintf(sb, "%s %s", tok.Kind, tok.Name)
		}
		if tok.PartialIndent != "" {
			fmt.Fprintf(sb, " indent=%q", tok.PartialIndent)
		}
		if !tok.Delimiter.IsDefault() && tok.Kind != TokenText {
			fmt.Fprintf(sb, " delim=%q", tok.Delimiter.String())
		}
		sb.WriteByte('\n')
		if tok.Kind == TokenSectionOpen || tok.Kind == TokenInvertedSectionOpen {
			t.dump(sb, tok.Children, depth+1)
		}
	}
}
