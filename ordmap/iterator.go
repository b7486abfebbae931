// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package ordmap

import (
	"github.com/aristanetworks/avlmap/internal/avl"
	"golang.org/x/exp/constraints"
)

// Cursor is a lazy, read-only position over a Map's in-order sequence.
// The zero Cursor is invalid (Valid reports false). A Cursor must not be
// used across a mutation of the Map it was obtained from.
type Cursor[K constraints.Ordered, V any] struct {
	node *avl.Node[entry[K, V]]
}

// Valid reports whether c refers to an entry.
func (c Cursor[K, V]) Valid() bool { return c.node != nil }

// Key returns c's entry's key. Panics if c is invalid.
func (c Cursor[K, V]) Key() K { return c.node.Owner().key }

// Value returns c's entry's value. Panics if c is invalid.
func (c Cursor[K, V]) Value() V { return c.node.Owner().value }

// Next returns a Cursor to the in-order successor of c, or an invalid
// Cursor if c is the last entry.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	return Cursor[K, V]{node: avl.Next(c.node)}
}

// Prev returns a Cursor to the in-order predecessor of c, or an invalid
// Cursor if c is the first entry.
func (c Cursor[K, V]) Prev() Cursor[K, V] {
	return Cursor[K, V]{node: avl.Prev(c.node)}
}

// FirstCursor returns a Cursor to m's smallest key, or an invalid Cursor
// if m is empty.
func (m *Map[K, V]) FirstCursor() Cursor[K, V] {
	return Cursor[K, V]{node: m.first}
}

// LastCursor returns a Cursor to m's largest key, or an invalid Cursor if
// m is empty.
func (m *Map[K, V]) LastCursor() Cursor[K, V] {
	return Cursor[K, V]{node: m.last}
}

// lowerBound finds the leftmost entry whose key is >= lo (incl true) or
// > lo (incl false), or nil if none qualifies.
func (m *Map[K, V]) lowerBound(lo K, incl bool) *avl.Node[entry[K, V]] {
	var res *avl.Node[entry[K, V]]
	n := m.root
	for n != nil {
		e := n.Owner()
		qualifies := e.key > lo || (incl && e.key == lo)
		if qualifies {
			res = n
			n = n.Left()
		} else {
			n = n.Right()
		}
	}
	return res
}

// Range calls fn for every entry with a key in [lo, hi) (loIncl/hiIncl
// select whether each bound is closed), in ascending key order, stopping
// early if fn returns false.
func (m *Map[K, V]) Range(lo, hi K, loIncl, hiIncl bool, fn func(K, V) bool) {
	n := m.lowerBound(lo, loIncl)
	for n != nil {
		e := n.Owner()
		if hiIncl {
			if e.key > hi {
				return
			}
		} else if e.key >= hi {
			return
		}
		if !fn(e.key, e.value) {
			return
		}
		n = avl.Next(n)
	}
}

// Entry is a handle onto a single key's slot in a Map, obtained without
// paying for a second descent on a subsequent insertion. It is
// invalidated by any mutation of the Map other than through this Entry
// itself.
type Entry[K constraints.Ordered, V any] struct {
	m         *Map[K, V]
	key       K
	found     *avl.Node[entry[K, V]]
	parent    *avl.Node[entry[K, V]]
	leftChild bool
}

// EntryAt returns a handle to k's slot in m: Occupied if k is present,
// Vacant (with the insertion point already located) otherwise.
func (m *Map[K, V]) EntryAt(k K) Entry[K, V] {
	found, parent, leftChild := m.descend(k)
	return Entry[K, V]{m: m, key: k, found: found, parent: parent, leftChild: leftChild}
}

// Occupied reports whether this Entry refers to an existing key.
func (e Entry[K, V]) Occupied() bool { return e.found != nil }

// Value returns the current value of an occupied Entry.
func (e Entry[K, V]) Value() (V, bool) {
	if e.found == nil {
		var zero V
		return zero, false
	}
	return e.found.Owner().value, true
}

// OrInsert returns a pointer to the entry's value, inserting v (using
// the slot already located by EntryAt) if the entry was vacant.
func (e Entry[K, V]) OrInsert(v V) *V {
	if e.found != nil {
		return &e.found.Owner().value
	}
	m := e.m
	ent := m.alloc.Alloc()
	ent.key, ent.value = e.key, v
	avl.Link(&m.root, e.parent, e.leftChild, &ent.node, ent)
	avl.RebalanceInsert(&m.root, &ent.node)
	m.count++
	if m.first == nil || e.key < m.first.Owner().key {
		m.first = &ent.node
	}
	if m.last == nil || e.key > m.last.Owner().key {
		m.last = &ent.node
	}
	return &ent.value
}
