package syntax

import "testing"

func TestNewSpan(t *testing.T) {
	source := "ab\ncd{{x}}\nef"
	span := NewSpan(source, 5, 10)
	if span.StartLine != 2 || span.StartCol != 2 {
		t.Errorf("start = %d:%d, want 2:2", span.StartLine, span.StartCol)
	}
	if span.EndLine != 2 || span.EndCol != 7 {
		t.Errorf("end = %d:%d, want 2:7", span.EndLine, span.EndCol)
	}
	if got := span.Slice(source); got != "{{x}}" {
		t.Errorf("Slice = %q", got)
	}
	if span.Len() != 5 {
		t.Errorf("Len = %d", span.Len())
	}
}

func TestNewSpanClamps(t *testing.T) {
	span := NewSpan("abc", -4, 99)
	if span.StartOffset != 0 || span.EndOffset != 3 {
		t.Errorf("offsets = %d..%d, want 0..3", span.StartOffset, span.EndOffset)
	}
	span = NewSpan("abc", 2, 1)
	if span.Len() != 0 {
		t.Errorf("reversed span has length %d", span.Len())
	}
}
