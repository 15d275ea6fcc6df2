package mustache

import (
	"strings"

	"github.com/mustache-go/mustache/value"
)

// Context is one frame of the context stack. Sections push a new frame
// whose parent is the enclosing frame; sibling frames share their parent.
// A Context is never modified after creation.
type Context struct {
	view    value.Value
	parent  *Context
	resolve value.Resolver
}

// NewContext creates a root context. A nil resolver selects
// value.DefaultResolver.
func NewContext(view value.Value, resolve value.Resolver) *Context {
	if resolve == nil {
		resolve = value.DefaultResolver
	}
	return &Context{view: view, resolve: resolve}
}

// Push returns a child context for view.
func (c *Context) Push(view value.Value) *Context {
	return &Context{view: view, parent: c, resolve: c.resolve}
}

// View returns the value of this frame.
func (c *Context) View() value.Value {
	return c.view
}

// Parent returns the enclosing frame, or nil for the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Lookup resolves a tag name against the context stack.
//
// "." is the current view. Otherwise the first segment of a dotted name is
// searched from the innermost frame outward; the remaining segments are
// resolved only below the value found, and any miss there makes the whole
// name undefined.
func (c *Context) Lookup(name string) (value.Value, error) {
	if strings.TrimSpace(name) == "" {
		return value.Undefined(), NewError(ErrInvalidArgument, "lookup name is empty")
	}
	if name == "." {
		return c.view, nil
	}

	head, rest, dotted := strings.Cut(name, ".")
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.view.IsUndefined() || ctx.view.IsNone() {
			continue
		}
		val := c.resolve(ctx.view, head)
		if val.IsUndefined() {
			continue
		}
		if !dotted {
			return val, nil
		}
		for _, seg := range strings.Split(rest, ".") {
			val = c.resolve(val, seg)
			if val.IsUndefined() {
				return val, nil
			}
		}
		return val, nil
	}
	return value.Undefined(), nil
}

// Names lists the member names visible from this context, innermost first.
func (c *Context) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		for _, key := range ctx.view.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, key)
		}
	}
	return names
}
