// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"math/bits"
	"strings"
	"testing"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"github.com/btcsuite/sset/internal/ssettest"
	"github.com/stretchr/testify/require"
)

// checkTreap verifies the binary search tree order, the min-heap property on
// priorities, the parent links and the node count of the passed treap.
func checkTreap[T any](t require.TestingT, tr *Treap[T]) {
	count := 0
	var walk func(h, parent arena.Handle)
	walk = func(h, parent arena.Handle) {
		if h == arena.Nil {
			return
		}
		count++
		node := tr.node(h)
		require.Equal(t, parent, node.parent, "parent link")
		for _, child := range []arena.Handle{node.left, node.right} {
			if child == arena.Nil {
				continue
			}
			require.LessOrEqual(t, node.priority, tr.node(child).priority,
				"heap property")
		}
		if node.left != arena.Nil {
			require.Negative(t, tr.compare(tr.node(node.left).key, node.key),
				"left child out of order")
		}
		if node.right != arena.Nil {
			require.Positive(t, tr.compare(tr.node(node.right).key, node.key),
				"right child out of order")
		}
		walk(node.left, h)
		walk(node.right, h)
	}
	walk(tr.root, arena.Nil)
	require.Equal(t, tr.count, count, "node count")
	require.Equal(t, tr.count, tr.nodes.Len(), "live arena nodes")

	// In-order iteration must be strictly ascending.
	var prev *T
	tr.ForEach(func(x T) bool {
		if prev != nil {
			require.Negative(t, tr.compare(*prev, x), "iteration order")
		}
		prev = &x
		return true
	})
}

// TestTreapSuite runs the shared sorted-set tests against the treap.
func TestTreapSuite(t *testing.T) {
	ssettest.TestSuite(t, ssettest.Harness{
		New: func(seed uint64) sset.SortedSet[uint64] {
			return New[uint64](sset.WithSeed(seed))
		},
		Check: func(t require.TestingT, s sset.SortedSet[uint64]) {
			checkTreap(t, s.(*Treap[uint64]))
		},
	})
}

// sequenceRand hands out a fixed sequence of priorities.
type sequenceRand struct {
	values []uint64
}

func (r *sequenceRand) Uint64() uint64 {
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// TestTreapRotations ensures insertions with chosen priorities produce the
// expected shapes, which exercises both rotation directions and the
// relinking of the root and of an inner grandparent.
func TestTreapRotations(t *testing.T) {
	t.Parallel()

	// The last key inserted has the smallest priority so it must be
	// rotated all the way to the root.
	tr := New[int](sset.WithRand(&sequenceRand{
		values: []uint64{10, 20, 30, 1},
	}))
	for _, key := range []int{20, 10, 30, 25} {
		tr.Add(key)
	}
	checkTreap(t, tr)
	root := tr.node(tr.root)
	if root.key != 25 {
		t.Fatalf("root key: got %d, want %d", root.key, 25)
	}
	if got := tr.node(root.left).key; got != 20 {
		t.Fatalf("root left key: got %d, want %d", got, 20)
	}
	if got := tr.node(root.right).key; got != 30 {
		t.Fatalf("root right key: got %d, want %d", got, 30)
	}
	if got := tr.node(tr.node(root.left).left).key; got != 10 {
		t.Fatalf("left-left key: got %d, want %d", got, 10)
	}

	// Lift a key into the middle of the tree so the grandparent that is
	// relinked is not the root.
	tr = New[int](sset.WithRand(&sequenceRand{
		values: []uint64{1, 50, 60, 40},
	}))
	for _, key := range []int{10, 20, 30, 25} {
		tr.Add(key)
	}
	checkTreap(t, tr)
	root = tr.node(tr.root)
	if root.key != 10 {
		t.Fatalf("root key: got %d, want %d", root.key, 10)
	}
	mid := tr.node(root.right)
	if mid.key != 25 {
		t.Fatalf("subtree root key: got %d, want %d", mid.key, 25)
	}
	if mid.parent != tr.root {
		t.Fatalf("subtree parent: got %d, want %d", mid.parent, tr.root)
	}
	if tr.node(mid.left).key != 20 || tr.node(mid.right).key != 30 {
		t.Fatalf("subtree children: got %d and %d, want 20 and 30",
			tr.node(mid.left).key, tr.node(mid.right).key)
	}

	// Removing the root rotates it down through both children.
	require.True(t, tr.Remove(10))
	checkTreap(t, tr)
	require.Equal(t, []int{20, 25, 30}, ssettest.Elements[int](tr))
	require.True(t, tr.Remove(25))
	checkTreap(t, tr)
	require.Equal(t, []int{20, 30}, ssettest.Elements[int](tr))
}

// TestTreapReproducible ensures that two treaps seeded identically and fed
// the same keys end up with the same shape.
func TestTreapReproducible(t *testing.T) {
	t.Parallel()

	shape := func(tr *Treap[uint64]) []uint64 {
		var keys []uint64
		var walk func(h arena.Handle)
		walk = func(h arena.Handle) {
			if h == arena.Nil {
				return
			}
			node := tr.node(h)
			keys = append(keys, node.key)
			walk(node.left)
			walk(node.right)
		}
		walk(tr.root)
		return keys
	}

	build := func(seed uint64) *Treap[uint64] {
		tr := New[uint64](sset.WithSeed(seed))
		for i := uint64(0); i < 500; i++ {
			tr.Add((i * 7919) % 1009)
		}
		for i := uint64(0); i < 1009; i += 3 {
			tr.Remove(i)
		}
		return tr
	}

	a, b := build(99), build(99)
	require.Equal(t, shape(a), shape(b), "preorder of identical treaps")
	require.Equal(t, a.Height(), b.Height())

	// The same keys drawn with another seed hold the same elements in a
	// different shape.
	c := build(100)
	require.Equal(t, ssettest.Elements[uint64](a), ssettest.Elements[uint64](c))
	require.NotEqual(t, shape(a), shape(c), "preorder with another seed")
}

// TestTreapHeight ensures sorted input, the worst case for an unbalanced
// binary search tree, still produces a logarithmic height.
func TestTreapHeight(t *testing.T) {
	t.Parallel()

	const numItems = 1 << 14
	tr := New[uint64](sset.WithSeed(7), sset.WithCapacity(numItems))
	for i := uint64(0); i < numItems; i++ {
		tr.Add(i)
	}
	limit := 4 * bits.Len(numItems)
	if h := tr.Height(); h > limit {
		t.Fatalf("height of %d sequential keys: got %d, want <= %d",
			numItems, h, limit)
	}
}

// TestTreapNewFunc ensures a treap ordered by a custom comparison function
// orders and finds keys accordingly.
func TestTreapNewFunc(t *testing.T) {
	t.Parallel()

	// Descending case-insensitive order.
	tr := NewFunc(func(a, b string) int {
		return strings.Compare(strings.ToLower(b), strings.ToLower(a))
	}, sset.WithSeed(1))
	for _, s := range []string{"delta", "Alpha", "charlie", "bravo"} {
		require.True(t, tr.Add(s))
	}
	require.False(t, tr.Add("ALPHA"), "case-insensitive duplicate")
	checkTreap(t, tr)

	require.Equal(t, []string{"delta", "charlie", "bravo", "Alpha"},
		ssettest.Elements[string](tr))
	got, ok := tr.Find("c")
	require.True(t, ok)
	require.Equal(t, "bravo", got)
	_, ok = tr.Find("a")
	require.False(t, ok)
}

// TestTreapReset ensures resetting the treap releases every node and leaves a
// usable empty treap.
func TestTreapReset(t *testing.T) {
	t.Parallel()

	tr := New[int](sset.WithSeed(3))
	for i := 0; i < 300; i++ {
		tr.Add(i)
	}
	tr.Reset()
	if tr.Size() != 0 {
		t.Fatalf("size after reset: got %d, want 0", tr.Size())
	}
	if tr.Height() != 0 {
		t.Fatalf("height after reset: got %d, want 0", tr.Height())
	}
	if _, ok := tr.Find(0); ok {
		t.Fatal("found key after reset")
	}
	checkTreap(t, tr)

	require.True(t, tr.Add(5))
	require.Equal(t, []int{5}, ssettest.Elements[int](tr))
	checkTreap(t, tr)
}
