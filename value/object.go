package value

// Object is an interface for custom types with member access.
//
// Implementing Object is the explicit alternative to reflection: the engine
// asks the object for each member by name.
//
//	type User struct{ first, last string }
//
//	func (u *User) GetAttr(name string) Value {
//	    switch name {
//	    case "name":
//	        return FromString(u.first + " " + u.last)
//	    default:
//	        return Undefined()
//	    }
//	}
type Object interface {
	// GetAttr returns the named member, or Undefined() if it does not exist.
	// Returning None() marks a member that exists but is null.
	GetAttr(name string) Value
}

// SeqObject is an object that behaves like a sequence in sections.
type SeqObject interface {
	Object
	// SeqLen returns the length of the sequence.
	SeqLen() int
	// SeqItem returns the item at index (0-based).
	SeqItem(index int) Value
}

// MapObject is an object with a known set of member names. The names are
// used for diagnostics only.
type MapObject interface {
	Object
	Keys() []string
}

// RenderFilter lets a host value decide whether sections over it render.
// It overrides the default truthiness of any value that implements it.
type RenderFilter interface {
	ShouldRender() bool
}

// filtered pairs converted data with the RenderFilter it came from.
type filtered struct {
	inner  Value
	filter RenderFilter
}

// Resolver resolves a member of a view by name. It must return Undefined()
// when the member does not exist.
type Resolver func(view Value, name string) Value

// DefaultResolver resolves members of maps and Objects.
func DefaultResolver(view Value, name string) Value {
	return view.GetAttr(name)
}
