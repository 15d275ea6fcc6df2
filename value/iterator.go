package value

import (
	"iter"
	"reflect"
	"sync"
)

// Iterator is a lazy sequence of unknown length.
//
// Items are pulled on demand and kept, so a one-shot source can be tested
// for emptiness and then iterated, and iterating twice yields the same
// items. A push iterator is only started by the first pull; once started it
// holds a goroutine until it is drained or closed.
type Iterator struct {
	mu    sync.Mutex
	seq   iter.Seq[Value]
	next  func() (Value, bool)
	stop  func()
	items []Value
	done  bool
}

// NewIterator creates an Iterator from a push iterator.
func NewIterator(seq iter.Seq[Value]) *Iterator {
	return &Iterator{seq: seq}
}

func newChanIterator(ch reflect.Value) *Iterator {
	return &Iterator{next: func() (Value, bool) {
		item, ok := ch.Recv()
		if !ok {
			return Undefined(), false
		}
		return fromReflectValue(item), true
	}}
}

// FromIterator creates a Value from an Iterator.
func FromIterator(it *Iterator) Value {
	return Value{data: it}
}

// FromSeq creates a lazy iterable Value from a push iterator.
func FromSeq(seq iter.Seq[Value]) Value {
	return FromIterator(NewIterator(seq))
}

// pull fetches one more item. Callers hold mu.
func (it *Iterator) pull() bool {
	if it.done {
		return false
	}
	if it.next == nil {
		if it.seq == nil {
			return false
		}
		it.next, it.stop = iter.Pull(it.seq)
		it.seq = nil
	}
	v, ok := it.next()
	if !ok {
		it.finish()
		return false
	}
	it.items = append(it.items, v)
	return true
}

func (it *Iterator) finish() {
	it.done = true
	it.seq = nil
	if it.stop != nil {
		it.stop()
		it.stop = nil
	}
}

// nonEmpty reports whether the first pull yields an item.
func (it *Iterator) nonEmpty() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return len(it.items) > 0 || it.pull()
}

// Items drains the iterator and returns every item.
func (it *Iterator) Items() []Value {
	it.mu.Lock()
	defer it.mu.Unlock()
	for it.pull() {
	}
	return it.items
}

// Close releases the underlying source without draining it. Items pulled
// so far are kept; later iteration yields only those.
func (it *Iterator) Close() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if !it.done {
		it.finish()
	}
}

// AsIterator returns the Iterator behind a lazy iterable value.
func (v Value) AsIterator() (*Iterator, bool) {
	switch d := v.data.(type) {
	case *Iterator:
		return d, true
	case *filtered:
		return d.inner.AsIterator()
	}
	return nil, false
}
