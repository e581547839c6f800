// Package hashmap implements a persistent map from strings to arbitrary
// values.
//
// The implementation keeps entries in a sorted slice that is copied on every
// write. This trades the asymptotic complexity of a real hash-array mapped
// trie for a much simpler invariant: a Map value, once created, never
// changes, so all of its methods are safe for concurrent use and older
// versions remain observably intact after any number of "mutations". The
// maps used by the editor (keymaps, user configuration) are small, so the
// O(n) copy on write is not a concern.
package hashmap

import "sort"

// Map is a persistent map from string keys to arbitrary values. The zero
// value is an empty map. Methods that "modify" a Map return a new Map; the
// receiver is never changed.
type Map struct {
	entries []entry
}

type entry struct {
	key   string
	value any
}

// Empty is an empty Map.
var Empty = Map{}

// Len returns the number of entries in the map.
func (m Map) Len() int { return len(m.entries) }

// Index returns whether there is a value associated with the given key, and
// that value or nil.
func (m Map) Index(k string) (any, bool) {
	i := m.search(k)
	if i < len(m.entries) && m.entries[i].key == k {
		return m.entries[i].value, true
	}
	return nil, false
}

// Assoc returns an almost identical map, with the given key associated with
// the given value.
func (m Map) Assoc(k string, v any) Map {
	i := m.search(k)
	if i < len(m.entries) && m.entries[i].key == k {
		entries := make([]entry, len(m.entries))
		copy(entries, m.entries)
		entries[i] = entry{k, v}
		return Map{entries}
	}
	entries := make([]entry, len(m.entries)+1)
	copy(entries, m.entries[:i])
	entries[i] = entry{k, v}
	copy(entries[i+1:], m.entries[i:])
	return Map{entries}
}

// Dissoc returns an almost identical map, with the given key associated with
// no value.
func (m Map) Dissoc(k string) Map {
	i := m.search(k)
	if i >= len(m.entries) || m.entries[i].key != k {
		return m
	}
	entries := make([]entry, len(m.entries)-1)
	copy(entries, m.entries[:i])
	copy(entries[i:], m.entries[i+1:])
	return Map{entries}
}

// HasKey reports whether the map has the given key.
func (m Map) HasKey(k string) bool {
	_, ok := m.Index(k)
	return ok
}

// Keys returns the keys of the map, in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Iterator returns an iterator over the map. It can be used like this:
//
//	for it := m.Iterator(); it.HasElem(); it.Next() {
//	    key, value := it.Elem()
//	    // do something with the entry...
//	}
func (m Map) Iterator() Iterator {
	return &iterator{m.entries}
}

// Iterator is an iterator over map entries, in sorted key order.
type Iterator interface {
	// Elem returns the current key-value pair.
	Elem() (string, any)
	// HasElem returns whether the iterator is pointing to an entry.
	HasElem() bool
	// Next moves the iterator to the next position.
	Next()
}

type iterator struct {
	rest []entry
}

func (it *iterator) Elem() (string, any) {
	return it.rest[0].key, it.rest[0].value
}

func (it *iterator) HasElem() bool { return len(it.rest) > 0 }

func (it *iterator) Next() { it.rest = it.rest[1:] }

func (m Map) search(k string) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].key >= k
	})
}
