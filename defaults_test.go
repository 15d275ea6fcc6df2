package mustache

import (
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`& " < >`, "&amp; &quot; &lt; &gt;"},
		{"it's", "it&#39;s"},
		{"日本", "日本"},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// htmlText returns the text an HTML parser sees in fragment.
func htmlText(t *testing.T, fragment string) string {
	t.Helper()
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				t.Fatalf("tokenize %q: %v", fragment, z.Err())
			}
			return sb.String()
		case html.TextToken:
			sb.WriteString(z.Token().Data)
		default:
			t.Fatalf("escaped output %q produced a %v token", fragment, z.Token().Type)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		`& " < >`,
		"<script>alert('x')</script>",
		"&amp; already escaped",
		"a <!-- comment --> b",
		"tabs\tand\nnewlines",
		"unicode: 日本語 🎉 ü",
		"<<>>&&\"\"''",
	}
	r := NewRenderer()
	for _, in := range inputs {
		out, err := r.Render("{{x}}", map[string]any{"x": in}, nil)
		if err != nil {
			t.Fatalf("render %q: %v", in, err)
		}
		if got := htmlText(t, out); got != in {
			t.Errorf("round trip of %q through %q gave %q", in, out, got)
		}
		if got := html.UnescapeString(out); got != in {
			t.Errorf("UnescapeString(%q) = %q, want %q", out, got, in)
		}
	}
}

func TestNoEscape(t *testing.T) {
	if got := NoEscape("<b>"); got != "<b>" {
		t.Errorf("NoEscape changed its input: %q", got)
	}
}
