// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package ordmap

import "github.com/aristanetworks/avlmap/internal/avl"

// entry holds a key, a value, and an embedded AVL node. It is allocated
// from a Fastbin on first insertion of a key and never moved in memory
// while it is part of the map; node.Owner() always points back at it.
type entry[K any, V any] struct {
	key   K
	value V
	node  avl.Node[entry[K, V]]
}
