package syntax

import "strings"

// Span represents a location range in template source.
//
// Offsets are byte offsets into the original template. Lines are 1-indexed,
// columns are 0-indexed byte columns from the start of the line.
type Span struct {
	StartLine   int
	StartCol    int
	StartOffset int
	EndLine     int
	EndCol      int
	EndOffset   int
}

// NewSpan computes a span for the byte range [start, end) of source.
func NewSpan(source string, start, end int) Span {
	start = clamp(start, len(source))
	end = clamp(end, len(source))
	if end < start {
		end = start
	}
	sl, sc := position(source, start)
	el, ec := position(source, end)
	return Span{
		StartLine:   sl,
		StartCol:    sc,
		StartOffset: start,
		EndLine:     el,
		EndCol:      ec,
		EndOffset:   end,
	}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.EndOffset - s.StartOffset
}

// Slice returns the part of source covered by the span.
func (s Span) Slice(source string) string {
	start := clamp(s.StartOffset, len(source))
	end := clamp(s.EndOffset, len(source))
	if end < start {
		return ""
	}
	return source[start:end]
}

func position(source string, offset int) (line, col int) {
	prefix := source[:offset]
	line = strings.Count(prefix, "\n") + 1
	col = offset - (strings.LastIndexByte(prefix, '\n') + 1)
	return line, col
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
