// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package binarytrie

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"github.com/btcsuite/sset/internal/refset"
	"github.com/btcsuite/sset/internal/ssettest"
	"github.com/stretchr/testify/require"
)

// checkTrie verifies the leaf chain, the parent links, the leaf paths and the
// jump rule of every internal node.
func checkTrie[T any](t require.TestingT, tr *Trie[T]) {
	dummy := tr.node(tr.dummy)
	count, prev := 0, tr.dummy
	for h := dummy.next; h != tr.dummy; h = tr.node(h).next {
		n := tr.node(h)
		require.Equal(t, prev, n.prev, "chain back link")
		if prev != tr.dummy {
			require.Less(t, tr.node(prev).bits, n.bits, "chain order")
		}
		require.Equal(t, tr.project(n.key), n.bits, "stored projection")
		count++
		prev = h
	}
	require.Equal(t, prev, dummy.prev, "chain tail")
	require.Equal(t, tr.n, count, "chain length")

	// The walk returns the smallest and largest leaf below each node.
	numNodes := 1
	var walk func(h arena.Handle, depth uint, prefix uint64) (arena.Handle,
		arena.Handle)
	walk = func(h arena.Handle, depth uint, prefix uint64) (arena.Handle,
		arena.Handle) {

		numNodes++
		n := tr.node(h)
		if depth == tr.width {
			require.Equal(t, prefix, n.bits, "leaf path")
			return h, h
		}

		var lo, hi [2]arena.Handle
		for b := range n.child {
			c := n.child[b]
			if c == arena.Nil {
				continue
			}
			require.Equal(t, h, tr.node(c).parent, "parent link")
			lo[b], hi[b] = walk(c, depth+1, prefix<<1|uint64(b))
		}

		switch {
		case n.child[0] != arena.Nil && n.child[1] != arena.Nil:
			require.Equalf(t, arena.Nil, n.jump,
				"jump of full node at depth %d", depth)
			return lo[0], hi[1]
		case n.child[1] != arena.Nil:
			require.Equalf(t, lo[1], n.jump,
				"jump of node missing child 0 at depth %d", depth)
			return lo[1], hi[1]
		case n.child[0] != arena.Nil:
			require.Equalf(t, hi[0], n.jump,
				"jump of node missing child 1 at depth %d", depth)
			return lo[0], hi[0]
		}
		require.Equal(t, tr.root, h, "childless internal node")
		require.Equal(t, tr.dummy, n.jump, "jump of empty root")
		return arena.Nil, arena.Nil
	}
	require.Equal(t, arena.Nil, tr.node(tr.root).parent)
	walk(tr.root, 0, 0)
	require.Equal(t, numNodes, tr.nodes.Len(), "live arena nodes")
}

// TestTrieSuite runs the shared sorted-set tests against a 64-bit trie.
func TestTrieSuite(t *testing.T) {
	ssettest.TestSuite(t, ssettest.Harness{
		New: func(uint64) sset.SortedSet[uint64] {
			return New[uint64]()
		},
		Check: func(t require.TestingT, s sset.SortedSet[uint64]) {
			checkTrie(t, s.(*Trie[uint64]))
		},
	})
}

// TestTrieScenario ensures successor lookups on an 8-bit trie.
func TestTrieScenario(t *testing.T) {
	tr := New[uint8]()
	require.Equal(t, uint(8), tr.Width())
	for _, key := range []uint8{0, 10, 100} {
		require.True(t, tr.Add(key))
	}
	checkTrie(t, tr)

	tests := []struct {
		key  uint8
		want uint8
		ok   bool
	}{
		{0, 0, true},
		{1, 10, true},
		{10, 10, true},
		{11, 100, true},
		{100, 100, true},
		{101, 0, false},
		{255, 0, false},
	}
	for _, test := range tests {
		got, ok := tr.Find(test.key)
		if ok != test.ok || got != test.want {
			t.Errorf("Find(%d): got (%d, %v), want (%d, %v)", test.key,
				got, ok, test.want, test.ok)
		}
	}
}

// TestTrieExhaustive stores every subset of a 4-bit universe, then removes
// the keys one at a time while comparing every lookup against a brute force
// answer.
func TestTrieExhaustive(t *testing.T) {
	const width = 4
	const universe = 1 << width

	// successor returns the smallest member of the subset >= x.
	successor := func(subset uint32, x uint64) (uint64, bool) {
		rest := subset >> x << x
		if rest == 0 {
			return 0, false
		}
		return uint64(bits.TrailingZeros32(rest)), true
	}
	requireLookups := func(tr *Trie[uint64], subset uint32) {
		for x := uint64(0); x < universe; x++ {
			want, wantOK := successor(subset, x)
			got, ok := tr.Find(x)
			if ok != wantOK || got != want {
				t.Fatalf("subset %#04x Find(%d): got (%d, %v), want "+
					"(%d, %v)", subset, x, got, ok, want, wantOK)
			}
		}
	}

	identity := func(x uint64) uint64 { return x }
	tr := NewFunc(width, identity)
	for subset := uint32(0); subset < 1<<universe; subset++ {
		tr.Reset()
		for x := uint64(0); x < universe; x++ {
			if subset&(1<<x) != 0 {
				tr.Add(x)
			}
		}
		require.Equal(t, bits.OnesCount32(subset), tr.Size())
		requireLookups(tr, subset)

		// Removing from the middle outward reaches more jump repair
		// cases than removing in order.
		remaining := subset
		for _, x := range []uint64{7, 8, 3, 12, 0, 15, 5, 10, 1, 14, 6, 9,
			2, 13, 4, 11} {

			if remaining&(1<<x) == 0 {
				require.False(t, tr.Remove(x))
				continue
			}
			require.True(t, tr.Remove(x))
			remaining &^= 1 << x
			requireLookups(tr, remaining)
		}
		checkTrie(t, tr)
		require.Zero(t, tr.Size())

		// Spot check the structure itself on a sample of subsets.
		if subset%97 == 0 {
			for x := uint64(0); x < universe; x++ {
				if subset&(1<<x) != 0 {
					tr.Add(x)
				}
			}
			checkTrie(t, tr)
		}
	}
}

// TestTrieNarrowDifferential runs random operations on tries of several
// widths against a reference B-tree.
func TestTrieNarrowDifferential(t *testing.T) {
	for _, width := range []uint{1, 2, 7, 12, 33, 63} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			top := uint64(1)<<width - 1
			rng := rand.New(rand.NewPCG(uint64(width), 0))
			tr := NewFunc(width, func(x uint64) uint64 { return x })
			ref := refset.NewBTree[uint64]()
			for i := 0; i < 4000; i++ {
				// Concentrate keys near both ends of the universe.
				x := rng.Uint64N(min(top, 512) + 1)
				if rng.IntN(2) == 0 {
					x = top - x
				}
				switch rng.IntN(3) {
				case 0:
					require.Equal(t, ref.Add(x), tr.Add(x))
				case 1:
					require.Equal(t, ref.Remove(x), tr.Remove(x))
				default:
					want, wantOK := ref.Find(x)
					got, ok := tr.Find(x)
					require.Equal(t, wantOK, ok)
					require.Equal(t, want, got)
				}
				if i%500 == 0 {
					checkTrie(t, tr)
				}
			}
			require.Equal(t, ssettest.Elements[uint64](ref),
				ssettest.Elements[uint64](tr))
			checkTrie(t, tr)
		})
	}
}

// TestTrieKeyWidth ensures keys too wide for the trie are rejected by Add and
// ignored by the other operations.
func TestTrieKeyWidth(t *testing.T) {
	tr := NewFunc(8, func(x uint64) uint64 { return x })
	require.True(t, tr.Add(255))

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "Add(256) did not panic")
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)
			var serr sset.Error
			require.True(t, errors.As(err, &serr))
			require.Equal(t, sset.ErrKeyWidth, serr.ErrorCode)
		}()
		tr.Add(256)
	}()

	_, ok := tr.Find(256)
	require.False(t, ok)
	require.False(t, tr.Remove(256))
	require.Equal(t, 1, tr.Size())
	checkTrie(t, tr)
}

// TestTrieInvalidWidth ensures construction rejects unusable widths.
func TestTrieInvalidWidth(t *testing.T) {
	identity := func(x uint64) uint64 { return x }
	require.Panics(t, func() { NewFunc(0, identity) })
	require.Panics(t, func() { NewFunc(65, identity) })
	require.NotPanics(t, func() { NewFunc(64, identity) })
}

// TestTrieSignedProjection ensures a trie over signed keys orders negative
// keys first when the projection flips the sign bit.
func TestTrieSignedProjection(t *testing.T) {
	tr := NewFunc(8, func(x int8) uint64 { return uint64(uint8(x) ^ 0x80) })
	for _, key := range []int8{5, -3, 0, -128, 127, -1} {
		require.True(t, tr.Add(key))
	}
	checkTrie(t, tr)
	require.Equal(t, []int8{-128, -3, -1, 0, 5, 127},
		ssettest.Elements[int8](tr))

	got, ok := tr.Find(-2)
	require.True(t, ok)
	require.Equal(t, int8(-1), got)
	got, ok = tr.Find(1)
	require.True(t, ok)
	require.Equal(t, int8(5), got)
}
