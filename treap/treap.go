// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"cmp"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"golang.org/x/exp/constraints"
)

// Treap represents a treap data structure which is used to hold an ordered
// set of keys using a combination of binary search tree and heap semantics.
// It is a self-organizing and randomized data structure that doesn't require
// complex operations to maintain balance.
type Treap[T any] struct {
	nodes   *arena.Arena[treapNode[T]]
	root    arena.Handle
	count   int
	compare func(a, b T) int
	rand    sset.Rand
}

// Ensure Treap implements the sset.SortedSet interface.
var _ sset.SortedSet[int] = (*Treap[int])(nil)

// New returns a new empty treap ordered by the natural order of T.
func New[T constraints.Ordered](opts ...sset.Option) *Treap[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc returns a new empty treap ordered by compare, which must return a
// negative number, zero or a positive number when a is respectively less than,
// equal to or greater than b.
func NewFunc[T any](compare func(a, b T) int, opts ...sset.Option) *Treap[T] {
	o := sset.NewOptions(opts...)
	return &Treap[T]{
		nodes:   arena.New[treapNode[T]](o.Capacity),
		compare: compare,
		rand:    o.Rand,
	}
}

// node returns the node for the passed handle.
func (t *Treap[T]) node(h arena.Handle) *treapNode[T] {
	return t.nodes.At(h)
}

// Size returns the number of keys stored in the treap.
func (t *Treap[T]) Size() int {
	return t.count
}

// findLast returns the node holding a key equal to x, or otherwise the last
// node visited while searching for x, which is the node x would be attached
// to.  The comparison of x against that node's key is returned as well.  A
// Nil handle is returned for an empty treap.
func (t *Treap[T]) findLast(x T) (arena.Handle, int) {
	var last arena.Handle
	var compareResult int
	for h := t.root; h != arena.Nil; {
		last = h
		node := t.node(h)
		compareResult = t.compare(x, node.key)
		switch {
		case compareResult < 0:
			h = node.left
		case compareResult > 0:
			h = node.right
		default:
			return h, 0
		}
	}
	return last, compareResult
}

// relinkGrandparent relinks the node into the treap after it has been rotated
// by changing the passed grandparent's left or right handle, depending on
// where the old parent was, to point at the passed node.  Otherwise, when there
// is no grandparent, it means the node is now the root of the tree, so update
// it accordingly.
func (t *Treap[T]) relinkGrandparent(node, parent, grandparent arena.Handle) {
	// The node is now the root of the tree when there is no grandparent.
	if grandparent == arena.Nil {
		t.root = node
		return
	}

	// Relink the grandparent's left or right handle based on which side
	// the old parent was.
	gp := t.node(grandparent)
	if gp.left == parent {
		gp.left = node
	} else {
		gp.right = node
	}
}

// rotateLeft lifts the right child of u into u's position.
//
//	  u                w
//	 / \              / \
//	a   w     ->     u   c
//	   / \          / \
//	  b   c        a   b
func (t *Treap[T]) rotateLeft(u arena.Handle) {
	un := t.node(u)
	w := un.right
	wn := t.node(w)

	t.relinkGrandparent(w, u, un.parent)
	wn.parent = un.parent

	un.right = wn.left
	if un.right != arena.Nil {
		t.node(un.right).parent = u
	}
	wn.left = u
	un.parent = w
}

// rotateRight lifts the left child of u into u's position.
//
//	    u            w
//	   / \          / \
//	  w   c   ->   a   u
//	 / \              / \
//	a   b            b   c
func (t *Treap[T]) rotateRight(u arena.Handle) {
	un := t.node(u)
	w := un.left
	wn := t.node(w)

	t.relinkGrandparent(w, u, un.parent)
	wn.parent = un.parent

	un.left = wn.right
	if un.left != arena.Nil {
		t.node(un.left).parent = u
	}
	wn.right = u
	un.parent = w
}

// Add inserts x into the treap.  It returns false without modifying the treap
// when an equal key is already present.
func (t *Treap[T]) Add(x T) bool {
	// Find the binary tree insertion point.  There is nothing to do when
	// the key already exists.
	parent, compareResult := t.findLast(x)
	if parent != arena.Nil && compareResult == 0 {
		return false
	}

	// Link the new node into the binary tree in the correct position.
	h, node := t.nodes.Alloc()
	node.key = x
	node.priority = t.rand.Uint64()
	node.parent = parent
	switch {
	case parent == arena.Nil:
		t.root = h
	case compareResult < 0:
		t.node(parent).left = h
	default:
		t.node(parent).right = h
	}
	t.count++

	// Perform any rotations needed to maintain the min-heap.  There is
	// nothing left to do once the node's priority is greater than or equal
	// to its parent's priority.
	for node.parent != arena.Nil {
		p := t.node(node.parent)
		if node.priority >= p.priority {
			break
		}

		// Perform a left rotation if the node is on the right side or
		// a right rotation if the node is on the left side.
		if p.right == h {
			t.rotateLeft(node.parent)
		} else {
			t.rotateRight(node.parent)
		}
	}
	return true
}

// Remove deletes x from the treap.  It returns false when x is not present.
func (t *Treap[T]) Remove(x T) bool {
	// Find the node for the key.  There is nothing to do if the key does
	// not exist.
	h, compareResult := t.findLast(x)
	if h == arena.Nil || compareResult != 0 {
		return false
	}

	// Perform rotations to move the node to delete to a leaf position while
	// maintaining the min-heap.  The child with the smaller priority is
	// lifted each time.
	node := t.node(h)
	for !node.isLeaf() {
		switch {
		case node.left == arena.Nil:
			t.rotateLeft(h)
		case node.right == arena.Nil:
			t.rotateRight(h)
		case t.node(node.left).priority < t.node(node.right).priority:
			t.rotateRight(h)
		default:
			t.rotateLeft(h)
		}
	}

	// Delete the node, which is now a leaf node, by disconnecting it from
	// its parent.
	t.relinkGrandparent(arena.Nil, h, node.parent)
	t.nodes.Free(h)
	t.count--
	return true
}

// Find returns the smallest key in the treap that is greater than or equal to
// x.  The boolean is false when no such key exists.
func (t *Treap[T]) Find(x T) (T, bool) {
	// Remember the last node where the search went left since its key is
	// the smallest one seen so far that exceeds x.
	candidate := arena.Nil
	for h := t.root; h != arena.Nil; {
		node := t.node(h)
		compareResult := t.compare(x, node.key)
		switch {
		case compareResult < 0:
			candidate = h
			h = node.left
		case compareResult > 0:
			h = node.right
		default:
			return node.key, true
		}
	}

	if candidate == arena.Nil {
		var zero T
		return zero, false
	}
	return t.node(candidate).key, true
}

// ForEach invokes the passed function with every key in the treap in
// ascending order until it returns false.
func (t *Treap[T]) ForEach(fn func(x T) bool) {
	// Add the root node and all children to the left of it to the list of
	// nodes to traverse and loop until they, and all of their child nodes,
	// have been traversed.
	left := func(h arena.Handle) arena.Handle { return t.node(h).left }

	var parents arena.Stack
	parents.PushSpine(t.root, left)
	for parents.Len() > 0 {
		node := t.node(parents.Pop())
		if !fn(node.key) {
			return
		}

		// Extend the nodes to traverse by all children to the left of
		// the current node's right child.
		parents.PushSpine(node.right, left)
	}
}

// Height returns the number of nodes on the longest path from the root to a
// leaf.
func (t *Treap[T]) Height() int {
	return t.height(t.root)
}

func (t *Treap[T]) height(h arena.Handle) int {
	if h == arena.Nil {
		return 0
	}
	node := t.node(h)
	return 1 + max(t.height(node.left), t.height(node.right))
}

// Reset efficiently removes all keys in the treap.
func (t *Treap[T]) Reset() {
	t.nodes.Reset()
	t.root = arena.Nil
	t.count = 0
}
