// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"github.com/aristanetworks/avlmap/internal/avl"
	"github.com/aristanetworks/avlmap/internal/dlist"
)

// entry holds a key, a value, and a precomputed hash, plus an embedded
// AVL node ordering entries within one bucket by (hash, key). The
// bucket that owns this entry is threaded onto the non-empty-bucket
// list once, not per entry -- see bucket.listNode.
type entry[K any, V any] struct {
	key   K
	value V
	hash  uint64
	node  avl.Node[entry[K, V]]
}

// bucket holds an AVL root ordering its entries by (hash, key), threaded
// onto the owning Hashmap's non-empty-bucket list exactly while
// count > 0.
type bucket[K any, V any] struct {
	root     *avl.Node[entry[K, V]]
	listNode dlist.Node[bucket[K, V]]
	count    int
}

// less orders by hash first, key as a tiebreaker. Comparing hashes as
// integers is cheap in the common case of distinct hashes; the key
// comparison only runs on a collision.
func (b *bucket[K, V]) less(hash uint64, key K, less func(K, K) bool, e *entry[K, V]) bool {
	if hash != e.hash {
		return hash < e.hash
	}
	return less(key, e.key)
}

// find descends b's tree looking for (hash, key), returning the matching
// node, or the (parent, leftChild) insertion slot if absent.
func (b *bucket[K, V]) find(hash uint64, key K, equal func(K, K) bool, less func(K, K) bool) (found, parent *avl.Node[entry[K, V]], leftChild bool) {
	n := b.root
	for n != nil {
		e := n.Owner()
		switch {
		case hash == e.hash && equal(key, e.key):
			return n, nil, false
		case b.less(hash, key, less, e):
			if n.Left() == nil {
				return nil, n, true
			}
			parent, leftChild = n, true
			n = n.Left()
		default:
			if n.Right() == nil {
				return nil, n, false
			}
			parent, leftChild = n, false
			n = n.Right()
		}
	}
	return nil, nil, false
}
