package value

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// structObject exposes the exported fields of a struct. Fields are read on
// lookup, so a struct graph that points back at itself converts in
// constant time.
type structObject struct {
	rv reflect.Value
	iterables
}

// mapObject exposes a Go map. Keys that are not strings are matched by
// their fmt representation.
type mapObject struct {
	rv reflect.Value
	iterables
}

// seqObject exposes a slice or array. Items are converted when indexed.
type seqObject struct {
	rv reflect.Value
	iterables
}

// iterables remembers the iterators handed out for members, so a channel
// or push iterator read twice in one template is pulled from only once.
type iterables struct {
	mu    sync.Mutex
	items map[any]Value
}

func (m *iterables) member(key any, convert func() Value) Value {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.items[key]; ok {
		return v
	}
	v := convert()
	if v.Kind() == KindIterable {
		if m.items == nil {
			m.items = make(map[any]Value)
		}
		m.items[key] = v
	}
	return v
}

// fieldCache maps a struct type to its member names and field index paths.
var fieldCache sync.Map

// structFields returns the members of t the way encoding/json names them:
// json tags rename or hide fields, fields of untagged embedded structs are
// promoted, a shallower field hides a deeper one and two fields at the same
// depth with the same name hide each other unless exactly one is tagged.
func structFields(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}

	type candidate struct {
		index  []int
		tagged bool
		clash  bool
	}
	best := make(map[string]*candidate)
	var opaque [][]int
	for _, f := range reflect.VisibleFields(t) {
		if underAny(f.Index, opaque) {
			continue
		}
		name, tagged, skip := jsonName(f)
		if skip {
			if f.Anonymous {
				opaque = append(opaque, f.Index)
			}
			continue
		}
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if !tagged && ft.Kind() == reflect.Struct {
				continue
			}
			opaque = append(opaque, f.Index)
		}
		if !f.IsExported() {
			continue
		}

		c, seen := best[name]
		switch {
		case !seen || len(f.Index) < len(c.index):
			best[name] = &candidate{index: f.Index, tagged: tagged}
		case len(f.Index) == len(c.index):
			if tagged && !c.tagged {
				best[name] = &candidate{index: f.Index, tagged: true}
			} else if tagged == c.tagged {
				c.clash = true
			}
		}
	}

	fields := make(map[string][]int, len(best))
	for name, c := range best {
		if !c.clash {
			fields[name] = c.index
		}
	}
	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.(map[string][]int)
}

func jsonName(f reflect.StructField) (name string, tagged, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, _, _ = strings.Cut(tag, ",")
	if name != "" {
		return name, true, false
	}
	return f.Name, false, false
}

// underAny reports whether index lies inside one of the given fields.
func underAny(index []int, parents [][]int) bool {
	for _, p := range parents {
		if len(index) > len(p) && equalInts(index[:len(p)], p) {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (o *structObject) GetAttr(name string) Value {
	index, ok := structFields(o.rv.Type())[name]
	if !ok {
		return Undefined()
	}
	field, err := o.rv.FieldByIndexErr(index)
	if err != nil {
		// Promoted through a nil embedded pointer.
		return Undefined()
	}
	return o.member(name, func() Value { return fromReflectValue(field) })
}

func (o *structObject) Keys() []string {
	fields := structFields(o.rv.Type())
	keys := make([]string, 0, len(fields))
	for name := range fields {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

func (o *structObject) String() string {
	if o.rv.CanAddr() && o.rv.Addr().CanInterface() {
		if s, ok := o.rv.Addr().Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	if !o.rv.CanInterface() {
		return "<" + o.rv.Type().String() + ">"
	}
	return fmt.Sprint(o.rv.Interface())
}

func (o *mapObject) GetAttr(name string) Value {
	item := o.lookup(name)
	if !item.IsValid() {
		return Undefined()
	}
	return o.member(name, func() Value { return fromReflectValue(item) })
}

func (o *mapObject) lookup(name string) reflect.Value {
	kt := o.rv.Type().Key()
	if kt.Kind() == reflect.String {
		return o.rv.MapIndex(reflect.ValueOf(name).Convert(kt))
	}
	it := o.rv.MapRange()
	for it.Next() {
		if formatKey(it.Key()) == name {
			return it.Value()
		}
	}
	return reflect.Value{}
}

func (o *mapObject) Keys() []string {
	keys := make([]string, 0, o.rv.Len())
	it := o.rv.MapRange()
	for it.Next() {
		keys = append(keys, formatKey(it.Key()))
	}
	sort.Strings(keys)
	return keys
}

func (o *mapObject) String() string {
	keys := o.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q: %s", k, o.GetAttr(k).Repr())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

func (o *seqObject) GetAttr(string) Value { return Undefined() }
func (o *seqObject) SeqLen() int          { return o.rv.Len() }

func (o *seqObject) SeqItem(index int) Value {
	if index < 0 || index >= o.rv.Len() {
		return Undefined()
	}
	return o.member(index, func() Value { return fromReflectValue(o.rv.Index(index)) })
}
