// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import "github.com/btcsuite/sset/internal/arena"

// treapNode represents a node in the treap.  The tree owns its children
// through the left and right handles while parent is a plain back reference.
type treapNode[T any] struct {
	key      T
	priority uint64
	parent   arena.Handle
	left     arena.Handle
	right    arena.Handle
}

// isLeaf returns whether the node has no children.
func (n *treapNode[T]) isLeaf() bool {
	return n.left == arena.Nil && n.right == arena.Nil
}
