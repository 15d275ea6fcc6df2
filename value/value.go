// Package value provides the dynamic data model used while rendering.
//
// A Value is a tagged variant that is decided when data is handed to the
// engine, so the renderer matches on a closed set of kinds instead of
// probing host types at every tag:
//   - Undefined: a name that could not be resolved
//   - None: an explicit null (nil in Go)
//   - Bool, Number, String: scalars
//   - Seq: indexable sequences (slices, arrays, SeqObject)
//   - Map: string keyed mappings, structs and Object implementations
//   - Iterable: lazy sequences without a known length (iter.Seq, channels)
//   - NameLambda: func() string, expanded in variable tags
//   - SectionLambda: func(string) string, called with a section's raw body
//   - Plain: anything else, rendered with fmt
//
// Go data is converted with FromAny:
//
//	view := value.FromAny(map[string]any{
//	    "name":  "Ada",
//	    "items": []string{"a", "b"},
//	    "upper": func(s string) string { return strings.ToUpper(s) },
//	})
package value

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ValueKind describes the type of a Value.
type ValueKind int

const (
	// KindUndefined represents a value that could not be resolved.
	KindUndefined ValueKind = iota

	// KindNone represents an explicit null.
	KindNone

	// KindBool represents a boolean value.
	KindBool

	// KindNumber represents an int64, uint64 or float64. Numbers are always truthy.
	KindNumber

	// KindString represents a text string.
	KindString

	// KindSeq represents an indexable sequence.
	KindSeq

	// KindMap represents a mapping that supports member lookup.
	KindMap

	// KindIterable represents a lazy sequence of unknown length.
	KindIterable

	// KindNameLambda represents a zero-argument lambda.
	KindNameLambda

	// KindSectionLambda represents a lambda that receives section text.
	KindSectionLambda

	// KindPlain represents any other host value.
	KindPlain
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSeq:
		return "sequence"
	case KindMap:
		return "map"
	case KindIterable:
		return "iterator"
	case KindNameLambda:
		return "name lambda"
	case KindSectionLambda:
		return "section lambda"
	case KindPlain:
		return "plain object"
	default:
		return "unknown"
	}
}

// Value represents a dynamically typed value.
//
// Sequences and maps are referenced, not copied: the engine never mutates
// them.
type Value struct {
	data any
}

type undefinedType struct{}
type noneType struct{}

var (
	undefinedVal = undefinedType{}
	noneVal      = noneType{}
)

// Undefined returns the value of a name that could not be resolved.
func Undefined() Value {
	return Value{data: undefinedVal}
}

// None returns the null value.
func None() Value {
	return Value{data: noneVal}
}

// FromBool creates a Value from a boolean.
func FromBool(v bool) Value {
	return Value{data: v}
}

// FromInt creates a Value from an int64.
func FromInt(v int64) Value {
	return Value{data: v}
}

// FromFloat creates a Value from a float64.
func FromFloat(v float64) Value {
	return Value{data: v}
}

// FromString creates a Value from a string.
func FromString(v string) Value {
	return Value{data: v}
}

// FromSlice creates a sequence Value.
func FromSlice(v []Value) Value {
	if v == nil {
		v = []Value{}
	}
	return Value{data: v}
}

// FromMap creates a map Value.
func FromMap(v map[string]Value) Value {
	if v == nil {
		v = map[string]Value{}
	}
	return Value{data: v}
}

// FromObject wraps a custom Object.
func FromObject(o Object) Value {
	return Value{data: o}
}

// FromAny creates a Value from any Go value.
//
// Conversion rules:
//   - nil, nil pointers, nil maps and nil funcs -> None()
//   - bool, integers, strings -> scalars
//   - integers above math.MaxInt64 stay unsigned
//   - floats -> numbers, whole floats in int64 range become integers
//   - slices and arrays -> sequences
//   - maps -> maps, non-string keys are formatted with fmt
//   - structs -> maps of their exported fields, named the way encoding/json
//     names them, with embedded structs promoted
//
// Slices, maps and structs are not copied: items and members are converted
// when a template reads them.
//   - func() string, func() (string, error), NameLambda -> name lambdas
//   - func(string) string, func(string) (string, error), SectionLambda ->
//     section lambdas
//   - iter.Seq[Value], iter.Seq[any], receive channels -> lazy iterables
//   - Object implementations are kept as-is
//   - values implementing RenderFilter keep their own truthiness
//
// Anything else is kept as a plain value and rendered with fmt.
func FromAny(v any) Value {
	if v == nil {
		return None()
	}
	switch d := v.(type) {
	case Value:
		return d
	case Object:
		return FromObject(d)
	case NameLambda:
		return FromNameLambda(d)
	case SectionLambda:
		return FromSectionLambda(d)
	case iter.Seq[Value]:
		return FromSeq(d)
	case iter.Seq[any]:
		return FromSeq(func(yield func(Value) bool) {
			for item := range d {
				if !yield(FromAny(item)) {
					return
				}
			}
		})
	}
	return fromReflectValue(reflect.ValueOf(v))
}

func fromReflectValue(rv reflect.Value) Value {
	if !rv.IsValid() {
		return None()
	}
	if rv.CanInterface() {
		switch d := rv.Interface().(type) {
		case Value:
			return d
		case Object:
			if isNilable(rv) && rv.IsNil() {
				return None()
			}
			return FromObject(d)
		case RenderFilter:
			if isNilable(rv) && rv.IsNil() {
				return None()
			}
			return Value{data: &filtered{inner: convertReflect(rv), filter: d}}
		}
	}
	return convertReflect(rv)
}

func isNilable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

var (
	nameFuncType       = reflect.TypeOf((func() string)(nil))
	nameErrFuncType    = reflect.TypeOf((func() (string, error))(nil))
	sectionFuncType    = reflect.TypeOf((func(string) string)(nil))
	sectionErrFuncType = reflect.TypeOf((func(string) (string, error))(nil))
	seqValueType       = reflect.TypeOf((iter.Seq[Value])(nil))
	seqAnyType         = reflect.TypeOf((iter.Seq[any])(nil))
)

func convertReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{data: u}
		}
		return FromInt(int64(u))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// Whole floats become integers so JSON numbers print as written.
		if f == math.Trunc(f) && f >= math.MinInt64 && f < -math.MinInt64 {
			return FromInt(int64(f))
		}
		return FromFloat(f)
	case reflect.String:
		return FromString(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return None()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return FromString(string(rv.Bytes()))
		}
		return Value{data: &seqObject{rv: rv}}
	case reflect.Array:
		return Value{data: &seqObject{rv: rv}}
	case reflect.Map:
		if rv.IsNil() {
			return None()
		}
		return Value{data: &mapObject{rv: rv}}
	case reflect.Struct:
		return Value{data: &structObject{rv: rv}}
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return None()
		}
		return fromReflectValue(rv.Elem())
	case reflect.Func:
		if rv.IsNil() {
			return None()
		}
		return fromFunc(rv)
	case reflect.Chan:
		if rv.IsNil() || rv.Type().ChanDir()&reflect.RecvDir == 0 {
			return Value{data: rv.Interface()}
		}
		return FromIterator(newChanIterator(rv))
	default:
		if rv.CanInterface() {
			return Value{data: rv.Interface()}
		}
		return None()
	}
}

func fromFunc(rv reflect.Value) Value {
	t := rv.Type()
	switch {
	case t.ConvertibleTo(nameFuncType):
		return FromNameLambda(rv.Convert(nameFuncType).Interface().(func() string))
	case t.ConvertibleTo(nameErrFuncType):
		return FromNameLambdaErr(rv.Convert(nameErrFuncType).Interface().(func() (string, error)))
	case t.ConvertibleTo(sectionFuncType):
		return FromSectionLambda(rv.Convert(sectionFuncType).Interface().(func(string) string))
	case t.ConvertibleTo(sectionErrFuncType):
		return FromSectionLambdaErr(rv.Convert(sectionErrFuncType).Interface().(func(string) (string, error)))
	case t.ConvertibleTo(seqValueType):
		return FromSeq(rv.Convert(seqValueType).Interface().(iter.Seq[Value]))
	case t.ConvertibleTo(seqAnyType):
		return FromAny(rv.Convert(seqAnyType).Interface().(iter.Seq[any]))
	}
	if rv.CanInterface() {
		return Value{data: rv.Interface()}
	}
	return None()
}

// Kind returns the kind of value.
func (v Value) Kind() ValueKind {
	switch d := v.data.(type) {
	case nil, undefinedType:
		return KindUndefined
	case noneType:
		return KindNone
	case bool:
		return KindBool
	case int64, uint64, float64:
		return KindNumber
	case string:
		return KindString
	case []Value:
		return KindSeq
	case map[string]Value:
		return KindMap
	case *Iterator:
		return KindIterable
	case nameLambda:
		return KindNameLambda
	case sectionLambda:
		return KindSectionLambda
	case *filtered:
		return d.inner.Kind()
	case SeqObject:
		return KindSeq
	case Object:
		return KindMap
	default:
		return KindPlain
	}
}

// IsUndefined returns true if the value is undefined.
func (v Value) IsUndefined() bool {
	_, ok := v.data.(undefinedType)
	return ok || v.data == nil
}

// IsNone returns true if the value is none.
func (v Value) IsNone() bool {
	_, ok := v.data.(noneType)
	return ok
}

// IsList reports whether a section over this value iterates.
func (v Value) IsList() bool {
	k := v.Kind()
	return k == KindSeq || k == KindIterable
}

// IsTrue returns the truthiness of the value.
//
// Undefined and none are false, booleans are themselves, numbers are always
// true (zero included), strings and sequences are false when empty, lazy
// iterables are false when their first pull yields nothing, and every other
// value is true unless it implements RenderFilter.
func (v Value) IsTrue() bool {
	switch d := v.data.(type) {
	case nil, undefinedType, noneType:
		return false
	case bool:
		return d
	case int64, uint64, float64:
		return true
	case string:
		return d != ""
	case []Value:
		return len(d) > 0
	case map[string]Value:
		return len(d) > 0
	case *mapObject:
		return d.rv.Len() > 0
	case *Iterator:
		return d.nonEmpty()
	case *filtered:
		return d.filter.ShouldRender()
	case RenderFilter:
		return d.ShouldRender()
	case SeqObject:
		return d.SeqLen() > 0
	default:
		return true
	}
}

// String returns the text rendered for the value by a variable tag.
func (v Value) String() string {
	switch d := v.data.(type) {
	case nil, undefinedType, noneType:
		return ""
	case bool:
		return strconv.FormatBool(d)
	case int64:
		return strconv.FormatInt(d, 10)
	case uint64:
		return strconv.FormatUint(d, 10)
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	case string:
		return d
	case []Value:
		return joinValues(d)
	case *Iterator:
		return joinValues(d.Items())
	case map[string]Value:
		return v.Repr()
	case nameLambda, sectionLambda:
		return ""
	case *filtered:
		if s, ok := d.filter.(fmt.Stringer); ok {
			return s.String()
		}
		return d.inner.String()
	case SeqObject:
		return joinValues(v.Iter())
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprint(d)
	}
}

func joinValues(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ",")
}

// Repr returns a debug representation of the value.
func (v Value) Repr() string {
	switch d := v.data.(type) {
	case nil, undefinedType:
		return "undefined"
	case noneType:
		return "none"
	case string:
		return strconv.Quote(d)
	case []Value:
		parts := make([]string, len(d))
		for i, item := range d {
			parts[i] = item.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Value:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, d[k].Repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case SeqObject:
		items := v.Iter()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Iterator:
		return "<iterator>"
	case nameLambda, sectionLambda:
		return "<lambda>"
	default:
		return v.String()
	}
}

// GetAttr looks up a member by name. A member that exists with a nil value
// is returned as None; a missing member is Undefined.
func (v Value) GetAttr(name string) Value {
	switch d := v.data.(type) {
	case map[string]Value:
		if val, ok := d[name]; ok {
			return val
		}
	case *filtered:
		return d.inner.GetAttr(name)
	case Object:
		return d.GetAttr(name)
	}
	return Undefined()
}

// Keys returns the sorted member names of a map value.
func (v Value) Keys() []string {
	switch d := v.data.(type) {
	case map[string]Value:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case *filtered:
		return d.inner.Keys()
	case MapObject:
		return d.Keys()
	}
	return nil
}

// Iter returns the items a section iterates over.
func (v Value) Iter() []Value {
	switch d := v.data.(type) {
	case []Value:
		return d
	case *Iterator:
		return d.Items()
	case *filtered:
		return d.inner.Iter()
	case SeqObject:
		n := d.SeqLen()
		items := make([]Value, n)
		for i := 0; i < n; i++ {
			items[i] = d.SeqItem(i)
		}
		return items
	}
	return nil
}

// AsString returns the string value if it is one.
func (v Value) AsString() (string, bool) {
	s, ok := v.data.(string)
	return s, ok
}

// AsInt returns the integer value if it is one.
func (v Value) AsInt() (int64, bool) {
	switch d := v.data.(type) {
	case int64:
		return d, true
	case float64:
		if d == math.Trunc(d) && d >= math.MinInt64 && d < -math.MinInt64 {
			return int64(d), true
		}
	}
	return 0, false
}

// AsFloat returns the float value if it is numeric.
func (v Value) AsFloat() (float64, bool) {
	switch d := v.data.(type) {
	case int64:
		return float64(d), true
	case uint64:
		return float64(d), true
	case float64:
		return d, true
	}
	return 0, false
}

// AsBool returns the boolean value if it is one.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok
}

// AsSlice returns the slice if it is one.
func (v Value) AsSlice() ([]Value, bool) {
	s, ok := v.data.([]Value)
	return s, ok
}

// AsMap returns the map if it is one.
func (v Value) AsMap() (map[string]Value, bool) {
	m, ok := v.data.(map[string]Value)
	return m, ok
}

// AsObject returns the Object if this value wraps one.
func (v Value) AsObject() (Object, bool) {
	o, ok := v.data.(Object)
	return o, ok
}

// Raw returns the underlying Go value.
func (v Value) Raw() any {
	var rv reflect.Value
	switch d := v.data.(type) {
	case *filtered:
		return d.filter
	case *structObject:
		rv = d.rv
	case *mapObject:
		rv = d.rv
	case *seqObject:
		rv = d.rv
	default:
		return v.data
	}
	if !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}
