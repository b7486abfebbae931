// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package avl

import "github.com/kylelemons/godebug/pretty"

// dumpNode is a structural snapshot of a subtree, shaped for
// pretty-printing: it carries enough to see a balance violation at a
// glance without dragging the owning T (and its own pointers back into
// the tree) into the dump.
type dumpNode struct {
	Height      int8
	Left, Right *dumpNode
}

func snapshot[T any](n *Node[T]) *dumpNode {
	if n == nil {
		return nil
	}
	return &dumpNode{
		Height: n.height,
		Left:   snapshot(n.left),
		Right:  snapshot(n.right),
	}
}

// Dump renders the shape of the subtree rooted at n (heights and
// left/right structure only, not the owning values) for use in test
// failure messages when a balance or linkage assertion doesn't hold.
func Dump[T any](n *Node[T]) string {
	return pretty.Sprint(snapshot(n))
}
