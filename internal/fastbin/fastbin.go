// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package fastbin implements a grow-only slab allocator ("Fastbin") that
// vends fixed-size blocks of a single type T and recycles freed blocks
// through a LIFO free list, avoiding a per-operation call into the
// runtime allocator.
//
// The wrapper-with-stats shape is borrowed from gaissmai/bart's pool.go,
// but the implementation is not built on sync.Pool: sync.Pool may evict
// an idle item between GC cycles, and nothing about its contract
// guarantees pointer stability for an item once it has been evicted and
// the pool asks the runtime for a fresh one later. Fastbin's contract
// (every pointer it ever vends stays valid until the caller frees it, and
// the memory is only released back to the runtime on Shutdown) requires
// owning its pages outright.
package fastbin

import (
	"sync/atomic"

	"github.com/aristanetworks/avlmap/logger"
)

// Fastbin vends and recycles fixed-size blocks of T. The zero value is
// not usable; construct one with New.
type Fastbin[T any] struct {
	pageInitial int
	pageCap     int

	pages  [][]T
	cursor int // index of the next unused slot in the last page
	free   []*T

	totalAllocated atomic.Int64
	liveBlocks     atomic.Int64

	log logger.Logger
}

// Option configures a Fastbin at construction time.
type Option[T any] func(*Fastbin[T])

// WithLogger sets the Logger used to report a page-growth allocation
// failure. Without this option, such a failure is silently fatal (the
// runtime panic propagates out of Alloc uncaught).
func WithLogger[T any](log logger.Logger) Option[T] {
	return func(f *Fastbin[T]) { f.log = log }
}

// New creates a Fastbin whose first page holds pageInitial blocks and
// whose pages double in size on every subsequent growth up to pageCap
// blocks. No memory is allocated until the first call to Alloc.
func New[T any](pageInitial, pageCap int, opts ...Option[T]) *Fastbin[T] {
	if pageInitial <= 0 {
		pageInitial = 32
	}
	if pageCap <= 0 {
		pageCap = 4096
	}
	f := &Fastbin[T]{pageInitial: pageInitial, pageCap: pageCap}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Alloc returns a pointer to a fresh, zero-valued T. The pointer is
// stable: it remains valid, and is never reused by another Alloc call,
// until the caller passes it to Free.
func (f *Fastbin[T]) Alloc() *T {
	if n := len(f.free); n > 0 {
		p := f.free[n-1]
		f.free = f.free[:n-1]
		f.liveBlocks.Add(1)
		*p = *new(T)
		return p
	}
	if len(f.pages) == 0 || f.cursor == len(f.pages[len(f.pages)-1]) {
		f.growPage()
	}
	last := f.pages[len(f.pages)-1]
	p := &last[f.cursor]
	f.cursor++
	f.totalAllocated.Add(1)
	f.liveBlocks.Add(1)
	return p
}

func (f *Fastbin[T]) growPage() {
	size := f.pageInitial
	if n := len(f.pages); n > 0 {
		size = len(f.pages[n-1]) * 2
		if size > f.pageCap {
			size = f.pageCap
		}
	}
	f.pages = append(f.pages, f.allocPage(size))
	f.cursor = 0
}

// allocPage carves out a fresh page of n blocks. A Fastbin's contract
// promises every pointer it vends stays valid until Free, so there is
// no way to report an allocation failure back through Alloc's
// signature; it is logged fatally instead, then re-panics so the
// process still terminates if no Logger was configured to do it.
func (f *Fastbin[T]) allocPage(n int) (page []T) {
	defer func() {
		if r := recover(); r != nil {
			if f.log != nil {
				f.log.Fatalf("fastbin: failed to allocate a %d-block page: %v", n, r)
			}
			panic(r)
		}
	}()
	return make([]T, n)
}

// Free returns p to the free list for reuse by a later Alloc. Freed
// blocks are not read again until re-vended: it is the caller's
// responsibility not to dereference p after calling Free.
func (f *Fastbin[T]) Free(p *T) {
	f.free = append(f.free, p)
	f.liveBlocks.Add(-1)
}

// LiveBlocks returns the number of currently allocated, not-yet-freed
// blocks.
func (f *Fastbin[T]) LiveBlocks() int64 {
	return f.liveBlocks.Load()
}

// TotalAllocated returns the lifetime number of blocks this Fastbin has
// carved out of a page (excluding blocks served from the free list).
func (f *Fastbin[T]) TotalAllocated() int64 {
	return f.totalAllocated.Load()
}

// PageCount returns the number of pages this Fastbin has grown to.
func (f *Fastbin[T]) PageCount() int {
	return len(f.pages)
}

// Shutdown releases every page and the free list, making the Fastbin
// usable again only as a fresh allocator (any outstanding pointers from
// before Shutdown must not be dereferenced).
func (f *Fastbin[T]) Shutdown() {
	f.pages = nil
	f.free = nil
	f.cursor = 0
	f.liveBlocks.Store(0)
}
