// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package dlist implements an intrusive, circular, sentinel-headed
// doubly linked list. It is used by hashmap to thread only the buckets
// that are currently non-empty, so iteration cost is proportional to
// occupancy rather than to bucket-array capacity.
//
// The sentinel shape (a fake head/tail node that is always part of the
// ring, so real nodes never need a nil check against the ends of the
// list) mirrors skipor/memcached's cache/lru.go fakeHead/fakeTail
// convention, collapsed here into a single self-linked sentinel since
// dlist only ever needs one concept of "start" instead of two.
package dlist

// Node is an intrusive list node embedded by value inside an owning
// record of type T.
type Node[T any] struct {
	next, prev *Node[T]
	owner      *T
}

// Owner returns the record that embeds n, or nil for the list's own
// sentinel node.
func (n *Node[T]) Owner() *T { return n.owner }

// IsDetached reports whether n is not currently part of any list.
func (n *Node[T]) IsDetached() bool {
	return n.next == nil
}

// List is a circular, sentinel-headed intrusive doubly linked list.
// The zero value is not ready for use; construct one with New.
type List[T any] struct {
	sentinel Node[T]
}

// New returns an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.sentinel.next = &l.sentinel
	l.sentinel.prev = &l.sentinel
	return l
}

// Init resets l to the empty state. Useful for List values that are
// embedded rather than constructed through New.
func (l *List[T]) Init() {
	l.sentinel.next = &l.sentinel
	l.sentinel.prev = &l.sentinel
}

// Empty reports whether l has no attached nodes.
func (l *List[T]) Empty() bool {
	return l.sentinel.next == &l.sentinel
}

// PushFront attaches n, which must currently be detached, as the new
// first element of l, with owner set as its owning record.
func (l *List[T]) PushFront(n *Node[T], owner *T) {
	l.insertAfter(&l.sentinel, n, owner)
}

// PushBack attaches n, which must currently be detached, as the new last
// element of l, with owner set as its owning record.
func (l *List[T]) PushBack(n *Node[T], owner *T) {
	l.insertAfter(l.sentinel.prev, n, owner)
}

func (l *List[T]) insertAfter(at, n *Node[T], owner *T) {
	n.owner = owner
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

// Detach removes n from whatever list it is attached to. It is a no-op
// if n is already detached.
func Detach[T any](n *Node[T]) {
	if n.next == nil {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next, n.prev = nil, nil
}

// Front returns the first node in l, or nil if l is empty.
func (l *List[T]) Front() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.sentinel.next
}

// Back returns the last node in l, or nil if l is empty.
func (l *List[T]) Back() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.sentinel.prev
}

// Next returns the node after n in its list, or nil if n is the last
// node.
func (l *List[T]) Next(n *Node[T]) *Node[T] {
	if n.next == &l.sentinel {
		return nil
	}
	return n.next
}

// Prev returns the node before n in its list, or nil if n is the first
// node.
func (l *List[T]) Prev(n *Node[T]) *Node[T] {
	if n.prev == &l.sentinel {
		return nil
	}
	return n.prev
}
