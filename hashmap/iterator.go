// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"github.com/aristanetworks/avlmap/internal/avl"
	"github.com/aristanetworks/avlmap/internal/dlist"
	"golang.org/x/exp/constraints"
)

// Iterator walks a Hashmap's bucket list head-first, and for each
// non-empty bucket walks its AVL tree in order. Total cost is O(count +
// non-empty buckets), never O(bucket capacity). An Iterator must not be
// used across a mutation of the Hashmap it was obtained from.
type Iterator[K constraints.Ordered, V any] struct {
	h        *Hashmap[K, V]
	bucketLn *dlist.Node[bucket[K, V]]
	node     *avl.Node[entry[K, V]]
}

// Iter returns an Iterator positioned at h's first entry, if any. Call
// Valid/Next/Key/Value to consume it.
func (h *Hashmap[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{h: h}
	if h.list == nil {
		return it
	}
	if front := h.list.Front(); front != nil {
		it.bucketLn = front
		it.node = avl.First(front.Owner().root)
	}
	return it
}

// Valid reports whether it is positioned at an entry.
func (it *Iterator[K, V]) Valid() bool {
	return it.node != nil
}

// Key returns the current entry's key. Panics if !it.Valid().
func (it *Iterator[K, V]) Key() K { return it.node.Owner().key }

// Value returns the current entry's value. Panics if !it.Valid().
func (it *Iterator[K, V]) Value() V { return it.node.Owner().value }

// Next advances it to the following entry, in bucket-list order and
// then tree order within a bucket, returning false once there are no
// more entries.
func (it *Iterator[K, V]) Next() bool {
	if it.node == nil {
		return false
	}
	if next := avl.Next(it.node); next != nil {
		it.node = next
		return true
	}
	return it.advanceBucket()
}

// advanceBucket moves it to the first entry of the next non-empty
// bucket on the list, or leaves it invalid if there is none.
func (it *Iterator[K, V]) advanceBucket() bool {
	for {
		next := it.h.list.Next(it.bucketLn)
		if next == nil {
			it.bucketLn = nil
			it.node = nil
			return false
		}
		it.bucketLn = next
		if n := avl.First(next.Owner().root); n != nil {
			it.node = n
			return true
		}
		// A listed bucket is always non-empty by invariant, so this
		// branch is unreachable, but fall through defensively rather
		// than spin forever if that invariant is ever violated.
	}
}

// ForEach calls fn for every (key, value) pair in h, in bucket-list /
// per-bucket tree order, stopping early if fn returns false.
func (h *Hashmap[K, V]) ForEach(fn func(K, V) bool) {
	it := h.Iter()
	for it.Valid() {
		if !fn(it.Key(), it.Value()) {
			return
		}
		it.Next()
	}
}
