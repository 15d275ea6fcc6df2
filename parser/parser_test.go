package parser

import (
	goerrors "errors"
	"reflect"
	"testing"

	"github.com/mustache-go/mustache/internal/errors"
	"github.com/mustache-go/mustache/lexer"
)

func mustParse(t *testing.T, source string) *Template {
	t.Helper()
	tmpl, err := ParseDefault(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return tmpl
}

func TestParseDump(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "text only",
			source: "Hello\nWorld",
			want:   "text \"Hello\\n\"\ntext \"World\"\n",
		},
		{
			name:   "all tag kinds",
			source: "{{a}}{{{b}}}{{&c}}{{#d}}{{^e}}{{/e}}{{/d}}{{!x}}{{>f}}",
			want: "variable a\n" +
				"unescaped variable b\n" +
				"unescaped variable c\n" +
				"section d\n" +
				"  inverted section e\n" +
				"comment\n" +
				"partial f\n",
		},
		{
			name:   "padded names are trimmed",
			source: "{{  name  }}{{# list }}{{/ list }}{{> part }}",
			want:   "variable name\nsection list\npartial part\n",
		},
		{
			name:   "delimiter change",
			source: "{{=<% %>=}}<% a %>{{b}}",
			want:   "set delimiter\nvariable a delim=\"<% %>\"\ntext \"{{b}}\"\n",
		},
		{
			name:   "dotted names",
			source: "{{a.b.c}}{{.}}",
			want:   "variable a.b.c\nvariable .\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.source).Dump()
			if got != tt.want {
				t.Errorf("dump mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSquashStandalone(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "indented comment line",
			source: "Begin.\n  {{! comment }}\nEnd.\n",
			want:   "text \"Begin.\\n\"\ncomment\ntext \"End.\\n\"\n",
		},
		{
			name:   "interpolation is never standalone",
			source: "  {{name}}\n",
			want:   "text \"  \"\nvariable name\ntext \"\\n\"\n",
		},
		{
			name:   "section lines",
			source: "|\n  {{#a}}\n  x\n  {{/a}}\n|",
			want:   "text \"|\\n\"\nsection a\n  text \"  x\\n\"\ntext \"|\"\n",
		},
		{
			name:   "crlf line endings",
			source: "|\r\n{{#a}}\r\n{{/a}}\r\n|",
			want:   "text \"|\\r\\n\"\nsection a\ntext \"|\"\n",
		},
		{
			name:   "standalone without newline",
			source: "#{{#a}}\n/\n  {{/a}}",
			want:   "text \"#\"\nsection a\n  text \"\\n\"\n  text \"/\\n\"\n",
		},
		{
			name:   "non-whitespace text blocks squashing",
			source: " x {{#a}}\n{{/a}}",
			want:   "text \" x \"\nsection a\n  text \"\\n\"\n",
		},
		{
			name:   "multiline comment",
			source: "Begin.\n{{!\n  Something\n}}\nEnd.\n",
			want:   "text \"Begin.\\n\"\ncomment\ntext \"End.\\n\"\n",
		},
		{
			name:   "standalone partial records indent",
			source: "\\\n \t{{>p}}\n/\n",
			want:   "text \"\\\\\\n\"\npartial p indent=\" \\t\"\ntext \"/\\n\"\n",
		},
		{
			name:   "inline partial keeps whitespace and no indent",
			source: "  {{>p}} x\n",
			want:   "text \"  \"\npartial p\ntext \" x\\n\"\n",
		},
		{
			name:   "standalone delimiter change",
			source: "a\n  {{=| |=}}\n|x|\n",
			want:   "text \"a\\n\"\nset delimiter\nvariable x delim=\"| |\"\ntext \"\\n\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.source).Dump()
			if got != tt.want {
				t.Errorf("dump mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSectionText(t *testing.T) {
	tmpl := mustParse(t, "<{{#lambda}}-{{x}}-{{#y}}z{{/y}}{{/lambda}}>")
	sec := tmpl.Children[1]
	if sec.Kind != TokenSectionOpen {
		t.Fatalf("expected section, got %s", sec.Kind)
	}
	if got := tmpl.SectionText(sec); got != "-{{x}}-{{#y}}z{{/y}}" {
		t.Fatalf("section text = %q", got)
	}
	inner := sec.Children[3]
	if got := tmpl.SectionText(inner); got != "z" {
		t.Fatalf("inner section text = %q", got)
	}
}

func TestTokenDelimiterAtPoint(t *testing.T) {
	tmpl := mustParse(t, "{{#a}}{{/a}}{{=| |=}}|#b||/b|")
	if !tmpl.Children[0].Delimiter.IsDefault() {
		t.Errorf("first section should use default delimiter")
	}
	last := tmpl.Children[len(tmpl.Children)-1]
	if last.Name != "b" || last.Delimiter != (lexer.Delimiter{Open: "|", Close: "|"}) {
		t.Errorf("unexpected last token %+v", last)
	}
}

func TestBeginningOfLine(t *testing.T) {
	tmpl, err := Parse("a {{x}}\n{{y}}", lexer.DefaultDelimiter())
	if err != nil {
		t.Fatal(err)
	}
	var got []bool
	for _, tok := range tmpl.Children {
		got = append(got, tok.BeginningOfLine)
	}
	want := []bool{true, false, false, true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	sources := []string{
		"",
		"plain",
		"{{#a}}\n  {{>p}}\n{{/a}}\n{{^b}}{{c.d}}{{/b}}",
		"{{=<% %>=}}<%#x%><%y%><%/x%>",
	}
	for _, source := range sources {
		a := mustParse(t, source)
		b := mustParse(t, source)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("parsing %q twice produced different trees", source)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   errors.ErrorKind
		offset int
	}{
		{"unclosed tag", "abc {{name", errors.ErrUnclosedTag, 4},
		{"unclosed triple", "{{{name}}", errors.ErrUnclosedTag, 0},
		{"unclosed delimiter change", "{{=<% %>", errors.ErrUnclosedTag, 0},
		{"unopened close", "x{{/a}}", errors.ErrUnopenedSection, 1},
		{"mismatched close", "{{#a}}{{/b}}", errors.ErrSectionMismatch, 6},
		{"unclosed section", "{{#a}}{{#b}}{{/b}}", errors.ErrUnclosedSection, 0},
		{"empty name", "{{ }}", errors.ErrInvalidName, 0},
		{"empty section name", "{{#}}{{/}}", errors.ErrInvalidName, 0},
		{"bad character", "hi {{a-b}}", errors.ErrInvalidName, 3},
		{"bad delimiter count", "{{=<%=}}", errors.ErrInvalidDelimiter, 0},
		{"too many delimiters", "{{=a b c=}}", errors.ErrInvalidDelimiter, 0},
		{"empty delimiter body", "{{==}}", errors.ErrInvalidDelimiter, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefault(tt.source)
			if err == nil {
				t.Fatalf("expected error for %q", tt.source)
			}
			var perr *errors.Error
			if !goerrors.As(err, &perr) {
				t.Fatalf("unexpected error type %T", err)
			}
			if perr.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s (%v)", perr.Kind, tt.kind, err)
			}
			if perr.Offset() != tt.offset {
				t.Fatalf("offset = %d, want %d", perr.Offset(), tt.offset)
			}
		})
	}
}

func TestCommentsSkipNameValidation(t *testing.T) {
	mustParse(t, "{{! anything - goes here! }}")
	mustParse(t, "{{!}}")
}

func TestSurrounding(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "0123456789"
	}
	tmpl := mustParse(t, long+"{{x}}"+long)
	tok := tmpl.Children[1]
	got := tmpl.Surrounding(tok)
	if len(got) != surroundLeft+surroundRight {
		t.Fatalf("snippet length %d", len(got))
	}
	if got[surroundLeft:surroundLeft+5] != "{{x}}" {
		t.Fatalf("snippet not centred on tag: %q", got)
	}
}
