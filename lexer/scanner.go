// Package lexer provides the low level cursor used to tokenize Mustache
// templates, together with the delimiter configuration.
//
// The Scanner has no knowledge of Mustache syntax. It only knows how to look
// ahead, move, and consume input up to a literal pattern. Tag recognition
// lives in the parser package which drives the Scanner with the delimiter
// that is active at each point of the template.
package lexer

import "strings"

// Scanner is a byte cursor over template source.
type Scanner struct {
	source string
	pos    int
}

// NewScanner creates a Scanner positioned at the start of source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// Source returns the full input.
func (s *Scanner) Source() string {
	return s.source
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// EOF reports whether the cursor is at the end of input.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.source)
}

// Peek returns the byte at pos+offset, or 0 when out of range.
func (s *Scanner) Peek(offset int) byte {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.source) {
		return 0
	}
	return s.source[idx]
}

// Seek moves the cursor by offset. The end of input is a valid target so
// that consuming the last byte leaves the scanner at EOF. It reports false
// and leaves the cursor untouched if the target is out of range.
func (s *Scanner) Seek(offset int) bool {
	next := s.pos + offset
	if next < 0 || next > len(s.source) {
		return false
	}
	s.pos = next
	return true
}

// StartsWith reports whether the input at the cursor begins with pattern.
func (s *Scanner) StartsWith(pattern string) bool {
	return strings.HasPrefix(s.source[s.pos:], pattern)
}

// ReadUntilJustBefore consumes input up to the next occurrence of pattern,
// or to the end of input if pattern never occurs, and returns the consumed
// text. The pattern itself is not consumed.
func (s *Scanner) ReadUntilJustBefore(pattern string) string {
	start := s.pos
	s.SeekUntilJustBefore(pattern)
	return s.source[start:s.pos]
}

// SeekUntilJustBefore is ReadUntilJustBefore without building the result.
// It returns the number of bytes skipped.
func (s *Scanner) SeekUntilJustBefore(pattern string) int {
	start := s.pos
	rest := s.source[s.pos:]
	idx := -1
	if pattern != "" {
		idx = strings.Index(rest, pattern)
	}
	if idx < 0 {
		s.pos = len(s.source)
	} else {
		s.pos += idx
	}
	return s.pos - start
}
