package mustache

import (
	"errors"
	"testing"

	"github.com/mustache-go/mustache/value"
)

func mustLookup(t *testing.T, c *Context, name string) value.Value {
	t.Helper()
	v, err := c.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return v
}

func TestContextLookup(t *testing.T) {
	root := NewContext(value.FromAny(map[string]any{
		"name":  "root",
		"outer": "o",
		"a":     map[string]any{"b": map[string]any{"c": "deep"}},
	}), nil)
	child := root.Push(value.FromAny(map[string]any{"name": "child"}))

	tests := []struct {
		ctx  *Context
		name string
		want string
	}{
		{root, "name", "root"},
		{child, "name", "child"},
		{child, "outer", "o"},
		{child, "a.b.c", "deep"},
		{child, "a.x.c", ""},
		{child, "missing", ""},
	}
	for _, tt := range tests {
		if got := mustLookup(t, tt.ctx, tt.name).String(); got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if !mustLookup(t, child, "missing").IsUndefined() {
		t.Error("missing names should be undefined")
	}
	if got := mustLookup(t, root, "name").String(); got != "root" {
		t.Errorf("Push modified the parent frame: %q", got)
	}
}

func TestContextLookupDot(t *testing.T) {
	c := NewContext(value.FromString("top"), nil).Push(value.FromInt(7))
	if got := mustLookup(t, c, ".").String(); got != "7" {
		t.Errorf(`Lookup(".") = %q, want "7"`, got)
	}
	if c.Parent().View().String() != "top" {
		t.Error("parent view lost")
	}
}

func TestContextLookupEmptyName(t *testing.T) {
	c := NewContext(value.None(), nil)
	for _, name := range []string{"", "   "} {
		_, err := c.Lookup(name)
		if !errors.Is(err, NewError(ErrInvalidArgument, "")) {
			t.Errorf("Lookup(%q) error = %v, want invalid argument", name, err)
		}
	}
}

func TestContextSkipsEmptyFrames(t *testing.T) {
	c := NewContext(value.FromAny(map[string]any{"x": 1}), nil).
		Push(value.None()).
		Push(value.Undefined())
	if got := mustLookup(t, c, "x").String(); got != "1" {
		t.Errorf("Lookup through empty frames = %q, want 1", got)
	}
}

func TestContextNames(t *testing.T) {
	c := NewContext(value.FromAny(map[string]any{"a": 1, "b": 2}), nil).
		Push(value.FromAny(map[string]any{"b": 3, "c": 4})).
		Push(value.FromString("scalar"))
	got := c.Names()
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestRenderWithContext(t *testing.T) {
	c := NewContext(value.FromAny(map[string]any{"greeting": "Hi"}), nil).
		Push(value.FromAny(map[string]any{"name": "Ada"}))
	out, err := Render("{{greeting}} {{name}}", c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hi Ada" {
		t.Errorf("got %q", out)
	}
}
