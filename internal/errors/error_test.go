package errors

import (
	goerrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrUnclosedTag, "missing }}").WithOffset("a\nb{{c", 3)
	got := err.Error()
	want := "unclosed tag: missing }} (at line 2, column 2)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if err.Offset() != 3 {
		t.Fatalf("offset = %d", err.Offset())
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(ErrSectionMismatch, "x"))
	if !goerrors.Is(err, New(ErrSectionMismatch, "")) {
		t.Fatal("expected kind match through wrapping")
	}
	if goerrors.Is(err, New(ErrUnclosedSection, "")) {
		t.Fatal("unexpected match on different kind")
	}
	var target *Error
	if !goerrors.As(err, &target) || target.Message != "x" {
		t.Fatalf("errors.As failed: %v", target)
	}
}

func TestDebugFormat(t *testing.T) {
	source := "line one\nHello {{nmae}}!\nline three"
	err := New(ErrUndefinedVar, `lookup failed for "nmae"`).
		WithOffset(source, 15).
		WithSuggestions([]string{"name"})
	out := fmt.Sprintf("%+v", err)
	for _, want := range []string{
		"   2 > Hello {{nmae}}!",
		"   1 | line one",
		"   3 | line three",
		"^ undefined variable",
		"Did you mean: name?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
	if plain := fmt.Sprintf("%v", err); strings.Contains(plain, "\n") {
		t.Errorf("plain format should be a single line: %q", plain)
	}
}

func TestDebugFormatCauseChain(t *testing.T) {
	cause := goerrors.New("disk on fire")
	err := New(ErrBadPartial, "cannot load partial").WithCause(cause)
	out := fmt.Sprintf("%+v", err)
	if !strings.Contains(out, "caused by: disk on fire") {
		t.Fatalf("missing cause in %q", out)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       []string
	}{
		{"usr", []string{"user", "items", "username"}, []string{"user", "username"}},
		{"username", []string{"user", "title"}, []string{"user"}},
		{"name", []string{"name", "names"}, []string{"names"}},
		{"nmae", []string{"name", "items"}, []string{"name"}},
		{"zzz", []string{"user"}, nil},
		{"", []string{"user"}, nil},
	}
	for _, tt := range tests {
		got := Suggest(tt.name, tt.candidates)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggest(%q, %v) = %v, want %v", tt.name, tt.candidates, got, tt.want)
		}
	}
}

func TestParseErrorKinds(t *testing.T) {
	if !ErrUnclosedTag.IsParseError() {
		t.Error("unclosed tag is a parse error")
	}
	if ErrUndefinedVar.IsParseError() {
		t.Error("undefined variable is not a parse error")
	}
}
