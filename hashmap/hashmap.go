// Copyright (c) 2020 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements HashMap: an unordered map keyed by an
// ordered, hashable key type, backed by a power-of-two array of buckets
// where each bucket holds an AVL tree (internal/avl) instead of a linked
// chain. Non-empty buckets are threaded onto a doubly linked list
// (internal/dlist) so iteration costs O(occupied buckets), not
// O(bucket_count).
//
// Backing each bucket with a small balanced tree instead of a probe
// sequence or a plain chain keeps every bucket's worst case at
// O(log n), even under a pathological-collision workload.
package hashmap

import (
	"fmt"
	"math/bits"

	"github.com/aristanetworks/avlmap/avlmapconfig"
	"github.com/aristanetworks/avlmap/hashkey"
	"github.com/aristanetworks/avlmap/internal/avl"
	"github.com/aristanetworks/avlmap/internal/dlist"
	"github.com/aristanetworks/avlmap/internal/fastbin"
	"github.com/aristanetworks/avlmap/logger"
	"github.com/aristanetworks/avlmap/sliceutils"
	"golang.org/x/exp/constraints"
)

// Hashmap is an unordered map from K to V. The zero value is not usable;
// construct one with New.
type Hashmap[K constraints.Ordered, V any] struct {
	buckets []bucket[K, V]
	mask    uint64
	list    *dlist.List[bucket[K, V]]
	count   int
	alloc   *fastbin.Fastbin[entry[K, V]]

	hasher hashkey.Hasher[K]
	equal  func(K, K) bool
	less   func(K, K) bool

	cfg     avlmapconfig.Config
	resizes uint64

	log logger.Logger
}

// Option configures a Hashmap at construction time.
type Option[K constraints.Ordered, V any] func(*Hashmap[K, V])

// WithConfig sets the initial bucket count, load factor, and Fastbin
// page sizing for a new Hashmap.
func WithConfig[K constraints.Ordered, V any](cfg avlmapconfig.Config) Option[K, V] {
	return func(h *Hashmap[K, V]) {
		h.cfg = avlmapconfig.Normalized(cfg)
	}
}

// WithHasher overrides the default FNV-1a hasher (hashkey.Default) with
// a caller-supplied one, e.g. a keyed hash for hosts worried about
// adversarial keys.
func WithHasher[K constraints.Ordered, V any](hasher hashkey.Hasher[K]) Option[K, V] {
	return func(h *Hashmap[K, V]) {
		h.hasher = hasher
	}
}

// WithLogger sets the Logger a Hashmap reports a Fastbin page-growth
// allocation failure to.
func WithLogger[K constraints.Ordered, V any](log logger.Logger) Option[K, V] {
	return func(h *Hashmap[K, V]) { h.log = log }
}

// New creates an empty Hashmap. The bucket array is not allocated until
// the first insertion.
func New[K constraints.Ordered, V any](opts ...Option[K, V]) *Hashmap[K, V] {
	h := &Hashmap[K, V]{
		cfg:   avlmapconfig.Default(),
		equal: func(a, b K) bool { return a == b },
		less:  func(a, b K) bool { return a < b },
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.hasher == nil {
		h.hasher = hashkey.Default[K]()
	}
	var fbOpts []fastbin.Option[entry[K, V]]
	if h.log != nil {
		fbOpts = append(fbOpts, fastbin.WithLogger[entry[K, V]](h.log))
	}
	h.alloc = fastbin.New[entry[K, V]](h.cfg.FastbinPageInitial, h.cfg.FastbinPageCap, fbOpts...)
	return h
}

// Len returns the number of entries in h.
func (h *Hashmap[K, V]) Len() int {
	return h.count
}

// Resizes returns the lifetime number of times h has grown its bucket
// array.
func (h *Hashmap[K, V]) Resizes() uint64 {
	return h.resizes
}

// FastbinPages returns the number of Fastbin pages h's entry allocator
// has grown to.
func (h *Hashmap[K, V]) FastbinPages() int {
	return h.alloc.PageCount()
}

// FastbinLiveBlocks returns the number of entries currently allocated
// from h's Fastbin (equal to Len()).
func (h *Hashmap[K, V]) FastbinLiveBlocks() int64 {
	return h.alloc.LiveBlocks()
}

// Keys returns every key in h, in bucket-list / per-bucket tree order
// (i.e. the same order ForEach visits them in, which is not sorted and
// not insertion order).
func (h *Hashmap[K, V]) Keys() []K {
	keys := make([]K, 0, h.count)
	h.ForEach(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// String renders a short summary of h's size and keys, for use in logs
// and test failure messages. Keys are converted through
// sliceutils.ToAnySlice so fmt's %v formats them as a plain list
// regardless of K.
func (h *Hashmap[K, V]) String() string {
	return fmt.Sprintf("hashmap.Hashmap{count: %d, buckets: %d, keys: %v}",
		h.count, len(h.buckets), sliceutils.ToAnySlice(h.Keys()))
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// bucketFor returns a pointer to the bucket hash maps to. h.buckets must
// already be allocated.
func (h *Hashmap[K, V]) bucketFor(hash uint64) *bucket[K, V] {
	return &h.buckets[hash&h.mask]
}

// Set associates k with v in h, returning the previous value if k was
// already present.
func (h *Hashmap[K, V]) Set(k K, v V) (prev V, hadPrev bool) {
	if len(h.buckets) == 0 {
		h.allocateBuckets(h.cfg.HashmapInitialBuckets)
	}

	hash := h.hasher(k)
	b := h.bucketFor(hash)
	found, parent, leftChild := b.find(hash, k, h.equal, h.less)
	if found != nil {
		e := found.Owner()
		prev, e.value = e.value, v
		return prev, true
	}

	wasEmpty := b.count == 0
	ent := h.alloc.Alloc()
	ent.key, ent.value, ent.hash = k, v, hash
	avl.Link(&b.root, parent, leftChild, &ent.node, ent)
	avl.RebalanceInsert(&b.root, &ent.node)
	b.count++
	h.count++
	if wasEmpty {
		h.list.PushBack(&b.listNode, b)
	}

	if h.count*h.cfg.MaxLoadDen > len(h.buckets)*h.cfg.MaxLoadNum {
		h.resize(len(h.buckets) * 2)
	}
	return prev, false
}

// Get returns the value associated with k, if present.
func (h *Hashmap[K, V]) Get(k K) (V, bool) {
	found := h.find(k)
	if found == nil {
		var zero V
		return zero, false
	}
	return found.Owner().value, true
}

// GetMut returns a pointer to the value associated with k, if present,
// so the caller can mutate it in place.
func (h *Hashmap[K, V]) GetMut(k K) (*V, bool) {
	found := h.find(k)
	if found == nil {
		return nil, false
	}
	return &found.Owner().value, true
}

// Contains reports whether k is present in h.
func (h *Hashmap[K, V]) Contains(k K) bool {
	return h.find(k) != nil
}

func (h *Hashmap[K, V]) find(k K) *avl.Node[entry[K, V]] {
	if len(h.buckets) == 0 {
		return nil
	}
	hash := h.hasher(k)
	b := h.bucketFor(hash)
	found, _, _ := b.find(hash, k, h.equal, h.less)
	return found
}

// Delete removes k from h, returning its value if it was present.
func (h *Hashmap[K, V]) Delete(k K) (V, bool) {
	if len(h.buckets) == 0 {
		var zero V
		return zero, false
	}
	hash := h.hasher(k)
	b := h.bucketFor(hash)
	found, _, _ := b.find(hash, k, h.equal, h.less)
	if found == nil {
		var zero V
		return zero, false
	}
	ent := found.Owner()
	v := ent.value

	avl.Erase(&b.root, found)
	h.alloc.Free(ent)
	b.count--
	h.count--
	if b.count == 0 {
		dlist.Detach(&b.listNode)
	}
	return v, true
}

// Clear removes every entry from h in O(count): it walks only the
// non-empty buckets, tearing each one's tree down, then resets the
// bucket array state.
func (h *Hashmap[K, V]) Clear() {
	for n := h.list.Front(); n != nil; n = h.list.Front() {
		b := n.Owner()
		t := avl.Tear(b.root)
		for e := t.Next(); e != nil; e = t.Next() {
			h.alloc.Free(e.Owner())
		}
		b.root = nil
		b.count = 0
		dlist.Detach(n)
	}
	h.count = 0
}

func (h *Hashmap[K, V]) allocateBuckets(n int) {
	n = nextPowerOfTwo(n)
	h.buckets = make([]bucket[K, V], n)
	h.mask = uint64(n - 1)
	h.list = dlist.New[bucket[K, V]]()
}

// resize doubles (or otherwise grows, via newSize) h's bucket array.
// Every live entry is re-bucketed using its cached hash -- no key is
// rehashed -- and relinked into its new bucket's tree without
// reallocating the entry itself. The bucket list is rebuilt from
// scratch. From the caller's perspective this happens atomically: Set
// links the triggering key and then completes the whole resize before it
// returns (the very first insertion instead does the initial allocation
// before linking); there is no partially-resized state observable in
// between.
func (h *Hashmap[K, V]) resize(newSize int) {
	newSize = nextPowerOfTwo(newSize)
	newBuckets := make([]bucket[K, V], newSize)
	newMask := uint64(newSize - 1)
	newList := dlist.New[bucket[K, V]]()

	for n := h.list.Front(); n != nil; n = h.list.Next(n) {
		old := n.Owner()
		for on := avl.First(old.root); on != nil; {
			next := avl.Next(on)
			avl.Erase(&old.root, on)

			ent := on.Owner()
			nb := &newBuckets[ent.hash&newMask]
			wasEmpty := nb.count == 0
			_, parent, leftChild := nb.find(ent.hash, ent.key, h.equal, h.less)
			avl.Link(&nb.root, parent, leftChild, &ent.node, ent)
			avl.RebalanceInsert(&nb.root, &ent.node)
			nb.count++
			if wasEmpty {
				newList.PushBack(&nb.listNode, nb)
			}
			on = next
		}
	}

	h.buckets = newBuckets
	h.mask = newMask
	h.list = newList
	h.resizes++
}
