// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scapegoat

import (
	"cmp"
	"math"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/constraints"
)

// lnThreeHalves is the natural logarithm of the balance factor 3/2.
var lnThreeHalves = math.Log(1.5)

// maxDepth returns log_{3/2}(q), the depth no node may exceed in a tree whose
// counter is q.
func maxDepth(q int) float64 {
	return math.Log(float64(q)) / lnThreeHalves
}

// node is a binary search tree node.  The parent handle is a back reference
// only.
type node[T any] struct {
	key    T
	parent arena.Handle
	left   arena.Handle
	right  arena.Handle
}

// Tree is a scapegoat tree holding an ordered set of keys.
type Tree[T any] struct {
	nodes   *arena.Arena[node[T]]
	root    arena.Handle
	n       int
	q       int
	compare func(a, b T) int

	// scratch is reused to flatten subtrees during rebuilds.
	scratch []arena.Handle
}

// Ensure Tree implements the sset.SortedSet interface.
var _ sset.SortedSet[int] = (*Tree[int])(nil)

// New returns a new empty scapegoat tree ordered by the natural order of T.
// Only the capacity option applies since the structure is deterministic.
func New[T constraints.Ordered](opts ...sset.Option) *Tree[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc returns a new empty scapegoat tree ordered by compare.
func NewFunc[T any](compare func(a, b T) int, opts ...sset.Option) *Tree[T] {
	o := sset.NewOptions(opts...)
	return &Tree[T]{
		nodes:   arena.New[node[T]](o.Capacity),
		compare: compare,
	}
}

func (t *Tree[T]) node(h arena.Handle) *node[T] {
	return t.nodes.At(h)
}

// Size returns the number of keys in the tree.
func (t *Tree[T]) Size() int {
	return t.n
}

// inorder calls fn with the handle of every node of the subtree rooted at h
// in key order until fn returns false.
func (t *Tree[T]) inorder(h arena.Handle, fn func(h arena.Handle) bool) {
	left := func(h arena.Handle) arena.Handle { return t.node(h).left }

	var parents arena.Stack
	parents.PushSpine(h, left)
	for parents.Len() > 0 {
		h := parents.Pop()
		if !fn(h) {
			return
		}
		parents.PushSpine(t.node(h).right, left)
	}
}

// size returns the number of nodes in the subtree rooted at h.
func (t *Tree[T]) size(h arena.Handle) int {
	var count int
	t.inorder(h, func(arena.Handle) bool {
		count++
		return true
	})
	return count
}

// replaceChild makes the parent p point at newChild where it pointed at
// oldChild.  A Nil parent means oldChild was the root.
func (t *Tree[T]) replaceChild(p, oldChild, newChild arena.Handle) {
	if p == arena.Nil {
		t.root = newChild
		return
	}
	pn := t.node(p)
	if pn.left == oldChild {
		pn.left = newChild
	} else {
		pn.right = newChild
	}
}

// addWithDepth attaches a new leaf holding x and returns its handle and its
// depth, where the root has depth 0.  The boolean is false when x is already
// present.
func (t *Tree[T]) addWithDepth(x T) (arena.Handle, int, bool) {
	parent := arena.Nil
	var compareResult, depth int
	for h := t.root; h != arena.Nil; depth++ {
		parent = h
		pn := t.node(h)
		compareResult = t.compare(x, pn.key)
		switch {
		case compareResult < 0:
			h = pn.left
		case compareResult > 0:
			h = pn.right
		default:
			return arena.Nil, 0, false
		}
	}

	h, leaf := t.nodes.Alloc()
	leaf.key = x
	leaf.parent = parent
	switch {
	case parent == arena.Nil:
		t.root = h
	case compareResult < 0:
		t.node(parent).left = h
	default:
		t.node(parent).right = h
	}
	t.n++
	t.q++
	return h, depth, true
}

// scapegoat returns the root of the subtree to rebuild after u was inserted
// too deep.  Starting at u's parent w, it climbs until the subtree of w holds
// more than two thirds of the subtree of w's parent and returns that parent.
// Subtree sizes are accumulated on the way up so every node on the path is
// counted once.
func (t *Tree[T]) scapegoat(u arena.Handle) arena.Handle {
	w := t.node(u).parent
	sizeW := t.size(w)
	for {
		p := t.node(w).parent
		if p == arena.Nil {
			return w
		}
		pn := t.node(p)
		sibling := pn.left
		if sibling == w {
			sibling = pn.right
		}
		sizeP := sizeW + 1 + t.size(sibling)
		if 3*sizeW > 2*sizeP {
			return p
		}
		w, sizeW = p, sizeP
	}
}

// Add inserts x into the tree.  It returns false without modifying the tree
// when an equal key is already present.
func (t *Tree[T]) Add(x T) bool {
	h, depth, ok := t.addWithDepth(x)
	if !ok {
		return false
	}
	if float64(depth) > maxDepth(t.q) {
		goat := t.scapegoat(h)
		log.Debugf("Node at depth %d exceeds bound %.2f (n=%d, q=%d), "+
			"rebuilding scapegoat", depth, maxDepth(t.q), t.n, t.q)
		t.rebuild(goat)
	}
	return true
}

// Remove deletes x from the tree.  It returns false when x is not present.
func (t *Tree[T]) Remove(x T) bool {
	u := t.root
	for u != arena.Nil {
		un := t.node(u)
		compareResult := t.compare(x, un.key)
		if compareResult == 0 {
			break
		}
		if compareResult < 0 {
			u = un.left
		} else {
			u = un.right
		}
	}
	if u == arena.Nil {
		return false
	}

	// A node with two children takes over the key of its in-order
	// successor, which has no left child and is spliced out instead.
	un := t.node(u)
	if un.left != arena.Nil && un.right != arena.Nil {
		w := un.right
		for t.node(w).left != arena.Nil {
			w = t.node(w).left
		}
		un.key = t.node(w).key
		u = w
	}
	t.splice(u)
	t.n--

	if t.q > 2*t.n {
		if t.root != arena.Nil {
			log.Debugf("Counter q=%d exceeds twice n=%d, rebuilding tree",
				t.q, t.n)
			t.rebuild(t.root)
		}
		t.q = t.n
	}
	return true
}

// splice removes u, which has at most one child, by linking that child to
// u's parent.
func (t *Tree[T]) splice(u arena.Handle) {
	un := t.node(u)
	child := un.left
	if child == arena.Nil {
		child = un.right
	}
	if child != arena.Nil {
		t.node(child).parent = un.parent
	}
	t.replaceChild(un.parent, u, child)
	t.nodes.Free(u)
}

// rebuild reshapes the subtree rooted at u into a perfectly balanced tree
// holding the same nodes.
func (t *Tree[T]) rebuild(u arena.Handle) {
	p := t.node(u).parent
	nodes := t.scratch[:0]
	t.inorder(u, func(h arena.Handle) bool {
		nodes = append(nodes, h)
		return true
	})

	sub := t.buildBalanced(nodes)
	t.node(sub).parent = p
	t.replaceChild(p, u, sub)

	log.Debugf("Rebuilt subtree of %d nodes", len(nodes))
	log.Tracef("Rebuilt keys: %v", newLogClosure(func() string {
		keys := make([]T, 0, len(nodes))
		for _, h := range nodes {
			keys = append(keys, t.node(h).key)
		}
		return spew.Sdump(keys)
	}))

	// Don't hold on to an unusually large buffer after a full rebuild.
	if cap(nodes) > 4096 && len(nodes) < cap(nodes)/4 {
		nodes = nil
	}
	t.scratch = nodes
}

// buildBalanced links the passed nodes, which are in key order, into a
// perfectly balanced tree and returns its root.  The parent of the returned
// root is left for the caller to set.
func (t *Tree[T]) buildBalanced(nodes []arena.Handle) arena.Handle {
	if len(nodes) == 0 {
		return arena.Nil
	}
	m := len(nodes) / 2
	root := nodes[m]
	left := t.buildBalanced(nodes[:m])
	right := t.buildBalanced(nodes[m+1:])

	rn := t.node(root)
	rn.left, rn.right = left, right
	if left != arena.Nil {
		t.node(left).parent = root
	}
	if right != arena.Nil {
		t.node(right).parent = root
	}
	return root
}

// Find returns the smallest key in the tree that is greater than or equal to
// x.  The boolean is false when no such key exists.
func (t *Tree[T]) Find(x T) (T, bool) {
	candidate := arena.Nil
	for h := t.root; h != arena.Nil; {
		n := t.node(h)
		compareResult := t.compare(x, n.key)
		switch {
		case compareResult < 0:
			candidate = h
			h = n.left
		case compareResult > 0:
			h = n.right
		default:
			return n.key, true
		}
	}

	if candidate == arena.Nil {
		var zero T
		return zero, false
	}
	return t.node(candidate).key, true
}

// ForEach invokes fn with every key in ascending order until it returns false.
func (t *Tree[T]) ForEach(fn func(x T) bool) {
	t.inorder(t.root, func(h arena.Handle) bool {
		return fn(t.node(h).key)
	})
}

// Height returns the number of nodes on the longest path from the root to a
// leaf.
func (t *Tree[T]) Height() int {
	return t.height(t.root)
}

func (t *Tree[T]) height(h arena.Handle) int {
	if h == arena.Nil {
		return 0
	}
	n := t.node(h)
	return 1 + max(t.height(n.left), t.height(n.right))
}

// Reset removes all keys from the tree.
func (t *Tree[T]) Reset() {
	t.nodes.Reset()
	t.root = arena.Nil
	t.n = 0
	t.q = 0
	t.scratch = nil
}
