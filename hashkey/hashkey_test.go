// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashkey

import "testing"

func TestDefaultIsDeterministic(t *testing.T) {
	h := Default[string]()
	a := h("hello")
	b := h("hello")
	if a != b {
		t.Fatalf("hash of the same key differed: %d vs %d", a, b)
	}
}

func TestDefaultDistinguishesDistinctKeys(t *testing.T) {
	h := Default[string]()
	if h("hello") == h("world") {
		t.Fatalf("distinct keys hashed to the same value (this can happen, but not for this pair)")
	}
}

func TestDefaultWorksAcrossOrderedKinds(t *testing.T) {
	hi := Default[int]()
	hu := Default[uint64]()
	hf := Default[float64]()
	hs := Default[string]()

	if hi(1) == hi(2) {
		t.Fatalf("int hasher collided on 1 and 2")
	}
	if hu(1) == hu(2) {
		t.Fatalf("uint64 hasher collided on 1 and 2")
	}
	if hf(1.5) == hf(2.5) {
		t.Fatalf("float64 hasher collided on 1.5 and 2.5")
	}
	if hs("a") == hs("b") {
		t.Fatalf("string hasher collided on a and b")
	}
}

func TestDefaultIntAndInt64LikeValuesAgreeOnEncoding(t *testing.T) {
	// int and int64 both encode via the 8-byte little-endian path; equal
	// numeric values of either kind must hash identically since HashMap
	// is parameterized per-instance on a single concrete key kind.
	hi := Default[int]()
	hi64 := Default[int64]()
	if hi(12345) != hi64(12345) {
		t.Fatalf("int and int64 hashers disagree on the same numeric value")
	}
}
