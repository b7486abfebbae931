// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dlist

import "testing"

type tagged struct {
	id int
	ln Node[tagged]
}

func TestPushFrontBackAndIterate(t *testing.T) {
	l := New[tagged]()
	a := &tagged{id: 1}
	b := &tagged{id: 2}
	c := &tagged{id: 3}

	l.PushBack(&a.ln, a)
	l.PushBack(&b.ln, b)
	l.PushFront(&c.ln, c)

	var got []int
	for n := l.Front(); n != nil; n = l.Next(n) {
		got = append(got, n.Owner().id)
	}
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDetach(t *testing.T) {
	l := New[tagged]()
	a := &tagged{id: 1}
	b := &tagged{id: 2}
	c := &tagged{id: 3}
	l.PushBack(&a.ln, a)
	l.PushBack(&b.ln, b)
	l.PushBack(&c.ln, c)

	Detach(&b.ln)
	if !b.ln.IsDetached() {
		t.Fatalf("b should be detached")
	}

	var got []int
	for n := l.Front(); n != nil; n = l.Next(n) {
		got = append(got, n.Owner().id)
	}
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// Detaching an already-detached node is a no-op.
	Detach(&b.ln)
	if !b.ln.IsDetached() {
		t.Fatalf("b should still be detached")
	}
}

func TestEmptyListSelfLinked(t *testing.T) {
	l := New[tagged]()
	if !l.Empty() {
		t.Fatalf("new list should be empty")
	}
	if l.Front() != nil || l.Back() != nil {
		t.Fatalf("empty list should have no front/back")
	}
	a := &tagged{id: 1}
	l.PushBack(&a.ln, a)
	Detach(&a.ln)
	if !l.Empty() {
		t.Fatalf("list should be empty again after detaching its only node")
	}
}

func TestBackAndReverseIteration(t *testing.T) {
	l := New[tagged]()
	items := make([]*tagged, 5)
	for i := range items {
		items[i] = &tagged{id: i}
		l.PushBack(&items[i].ln, items[i])
	}
	var got []int
	for n := l.Back(); n != nil; n = l.Prev(n) {
		got = append(got, n.Owner().id)
	}
	want := []int{4, 3, 2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
