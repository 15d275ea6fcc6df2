package mustache

import (
	"strings"

	"github.com/google/safehtml"
)

// EscapeFunc escapes the text produced by a variable tag.
type EscapeFunc func(string) string

var quoteFixer = strings.NewReplacer("&#34;", "&quot;")

// EscapeHTML escapes &, <, >, " and ' for use in HTML text and attribute
// values. Invalid UTF-8 and non-interchange code points are replaced with
// U+FFFD.
func EscapeHTML(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") && isInterchangeASCII(s) {
		return s
	}
	return quoteFixer.Replace(safehtml.HTMLEscaped(s).String())
}

// isInterchangeASCII reports whether s is printable ASCII plus the
// whitespace that HTML text may contain, so it can skip escaping.
func isInterchangeASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 {
			return false
		}
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
			return false
		}
		if c == 0x7f {
			return false
		}
	}
	return true
}

// NoEscape returns s unchanged. Use it to render plain text templates.
func NoEscape(s string) string {
	return s
}
