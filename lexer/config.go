package lexer

import (
	"fmt"
	"strings"
)

// Delimiter holds the tag open and close markers.
type Delimiter struct {
	Open  string
	Close string
}

// DefaultDelimiter returns the standard Mustache delimiters.
func DefaultDelimiter() Delimiter {
	return Delimiter{
		Open:  "{{",
		Close: "}}",
	}
}

// ParseDelimiter parses the body of a delimiter change tag (the text between
// the two '=' signs). The body must contain exactly two whitespace separated
// markers.
func ParseDelimiter(body string) (Delimiter, error) {
	fields := strings.Fields(body)
	if len(fields) != 2 {
		return Delimiter{}, fmt.Errorf("expected two delimiters, got %d in %q", len(fields), body)
	}
	return Delimiter{Open: fields[0], Close: fields[1]}, nil
}

// IsDefault reports whether d equals DefaultDelimiter().
func (d Delimiter) IsDefault() bool {
	return d == DefaultDelimiter()
}

func (d Delimiter) String() string {
	return d.Open + " " + d.Close
}
