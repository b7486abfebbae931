// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package ordmap implements OrdMap: an ordered map keyed by a totally
// ordered key type, backed by an intrusive AVL tree (internal/avl) whose
// entries are allocated from a Fastbin slab (internal/fastbin).
package ordmap

import (
	"fmt"

	"github.com/aristanetworks/avlmap/avlmapconfig"
	"github.com/aristanetworks/avlmap/internal/avl"
	"github.com/aristanetworks/avlmap/internal/fastbin"
	"github.com/aristanetworks/avlmap/logger"
	"github.com/aristanetworks/avlmap/sliceutils"
	"golang.org/x/exp/constraints"
)

// Map is an ordered map from K to V, backed by an AVL tree. The zero
// value is not usable; construct one with New.
type Map[K constraints.Ordered, V any] struct {
	root        *avl.Node[entry[K, V]]
	count       int
	first, last *avl.Node[entry[K, V]]
	alloc       *fastbin.Fastbin[entry[K, V]]
}

// Option configures a Map at construction time.
type Option[K constraints.Ordered, V any] func(*mapOpts[K, V])

type mapOpts[K constraints.Ordered, V any] struct {
	cfg avlmapconfig.Config
	log logger.Logger
}

// WithConfig sets the Fastbin page sizing for a new Map. HashMap-specific
// fields of cfg (bucket count, load factor) are ignored.
func WithConfig[K constraints.Ordered, V any](cfg avlmapconfig.Config) Option[K, V] {
	return func(o *mapOpts[K, V]) { o.cfg = avlmapconfig.Normalized(cfg) }
}

// WithLogger sets the Logger a Map reports a Fastbin page-growth
// allocation failure to.
func WithLogger[K constraints.Ordered, V any](log logger.Logger) Option[K, V] {
	return func(o *mapOpts[K, V]) { o.log = log }
}

// New creates an empty Map.
func New[K constraints.Ordered, V any](opts ...Option[K, V]) *Map[K, V] {
	o := &mapOpts[K, V]{cfg: avlmapconfig.Default()}
	for _, opt := range opts {
		opt(o)
	}
	var fbOpts []fastbin.Option[entry[K, V]]
	if o.log != nil {
		fbOpts = append(fbOpts, fastbin.WithLogger[entry[K, V]](o.log))
	}
	return &Map[K, V]{
		alloc: fastbin.New[entry[K, V]](o.cfg.FastbinPageInitial, o.cfg.FastbinPageCap, fbOpts...),
	}
}

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int {
	return m.count
}

// IsEmpty reports whether m has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.count == 0
}

// descend finds the node holding k, or, if absent, the (parent,
// leftChild) slot where it would be inserted.
func (m *Map[K, V]) descend(k K) (found *avl.Node[entry[K, V]], parent *avl.Node[entry[K, V]], leftChild bool) {
	n := m.root
	for n != nil {
		e := n.Owner()
		switch {
		case k < e.key:
			if n.Left() == nil {
				return nil, n, true
			}
			parent, leftChild = n, true
			n = n.Left()
		case k > e.key:
			if n.Right() == nil {
				return nil, n, false
			}
			parent, leftChild = n, false
			n = n.Right()
		default:
			return n, nil, false
		}
	}
	return nil, nil, false
}

// Insert associates k with v. If k was already present, its previous
// value is returned and the map is otherwise unchanged (no structural
// change to the tree); otherwise a zero V and false are returned.
func (m *Map[K, V]) Insert(k K, v V) (prev V, hadPrev bool) {
	found, parent, leftChild := m.descend(k)
	if found != nil {
		e := found.Owner()
		prev, e.value = e.value, v
		return prev, true
	}

	ent := m.alloc.Alloc()
	ent.key, ent.value = k, v
	avl.Link(&m.root, parent, leftChild, &ent.node, ent)
	avl.RebalanceInsert(&m.root, &ent.node)
	m.count++

	if m.first == nil || k < m.first.Owner().key {
		m.first = &ent.node
	}
	if m.last == nil || k > m.last.Owner().key {
		m.last = &ent.node
	}
	return prev, false
}

// Get returns the value associated with k, if present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	found, _, _ := m.descend(k)
	if found == nil {
		var zero V
		return zero, false
	}
	return found.Owner().value, true
}

// GetMut returns a pointer to the value associated with k, if present,
// so the caller can mutate it in place.
func (m *Map[K, V]) GetMut(k K) (*V, bool) {
	found, _, _ := m.descend(k)
	if found == nil {
		return nil, false
	}
	return &found.Owner().value, true
}

// Contains reports whether k is present in m.
func (m *Map[K, V]) Contains(k K) bool {
	found, _, _ := m.descend(k)
	return found != nil
}

// Remove deletes k from m and returns its value, if present.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	found, _, _ := m.descend(k)
	if found == nil {
		var zero V
		return zero, false
	}
	ent := found.Owner()
	v := ent.value

	if m.first == found {
		m.first = avl.Next(found)
	}
	if m.last == found {
		m.last = avl.Prev(found)
	}

	avl.Erase(&m.root, found)
	m.alloc.Free(ent)
	m.count--
	return v, true
}

// First returns the smallest key and its value, if m is non-empty.
func (m *Map[K, V]) First() (K, V, bool) {
	if m.first == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	e := m.first.Owner()
	return e.key, e.value, true
}

// Last returns the largest key and its value, if m is non-empty.
func (m *Map[K, V]) Last() (K, V, bool) {
	if m.last == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	e := m.last.Owner()
	return e.key, e.value, true
}

// Clear removes every entry from m in O(n), freeing each entry's slab
// block without rebalancing (see internal/avl.Tear).
func (m *Map[K, V]) Clear() {
	t := avl.Tear(m.root)
	for n := t.Next(); n != nil; n = t.Next() {
		m.alloc.Free(n.Owner())
	}
	m.root = nil
	m.count = 0
	m.first = nil
	m.last = nil
}

// Keys returns every key in m, in ascending order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.count)
	for n := m.first; n != nil; n = avl.Next(n) {
		keys = append(keys, n.Owner().key)
	}
	return keys
}

// String renders a short summary of m's size and keys, for use in logs
// and test failure messages. Keys are converted through
// sliceutils.ToAnySlice so fmt's %v formats them as a plain list
// regardless of K.
func (m *Map[K, V]) String() string {
	return fmt.Sprintf("ordmap.Map{count: %d, keys: %v}", m.count, sliceutils.ToAnySlice(m.Keys()))
}

// Resizes always returns 0: OrdMap has no bucket array and never
// resizes. The method exists so *Map satisfies avlmapmetrics.Source.
func (m *Map[K, V]) Resizes() uint64 {
	return 0
}

// FastbinPages returns the number of Fastbin pages m's entry allocator
// has grown to.
func (m *Map[K, V]) FastbinPages() int {
	return m.alloc.PageCount()
}

// FastbinLiveBlocks returns the number of entries currently allocated
// from m's Fastbin (equal to Len()).
func (m *Map[K, V]) FastbinLiveBlocks() int64 {
	return m.alloc.LiveBlocks()
}
