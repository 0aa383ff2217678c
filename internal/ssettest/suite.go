// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ssettest provides the test suite shared by every sorted-set engine.
// Each engine package calls TestSuite from its own tests with a constructor,
// so the whole catalog is held to exactly the same contract.
package ssettest

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/refset"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Harness describes the engine under test.
type Harness struct {
	// New returns an empty engine.  Randomized engines should derive all
	// of their randomness from seed.
	New func(seed uint64) sset.SortedSet[uint64]

	// Check, when set, verifies the structural invariants of the engine.
	// It is invoked after mutations in the randomized tests.
	Check func(t require.TestingT, s sset.SortedSet[uint64])
}

// Elements returns the contents of s in iteration order.
func Elements[T any](s sset.SortedSet[T]) []T {
	elems := make([]T, 0, s.Size())
	s.ForEach(func(x T) bool {
		elems = append(elems, x)
		return true
	})
	return elems
}

// requireFind asserts the result of a successor lookup.
func requireFind(t require.TestingT, s sset.SortedSet[uint64], x uint64,
	want uint64, wantOK bool) {

	got, ok := s.Find(x)
	require.Equalf(t, wantOK, ok, "Find(%d): unexpected presence (got %d)",
		x, got)
	if wantOK {
		require.Equalf(t, want, got, "Find(%d): unexpected element", x)
	}
}

// requireSameContents asserts that s and ref hold the same elements in the
// same order.
func requireSameContents(t require.TestingT, s, ref sset.SortedSet[uint64]) {
	got, want := Elements(s), Elements(ref)
	require.Equalf(t, len(want), s.Size(), "Size mismatch")
	require.Equalf(t, want, got, "contents mismatch:\n%s",
		spew.Sdump(got))
}

func (h Harness) check(t require.TestingT, s sset.SortedSet[uint64]) {
	if h.Check != nil {
		h.Check(t, s)
	}
}

// TestSuite runs the sorted-set contract tests against the engine described by
// h.
func TestSuite(t *testing.T, h Harness) {
	t.Run("Empty", func(t *testing.T) {
		s := h.New(0)
		require.Zero(t, s.Size())
		requireFind(t, s, 0, 0, false)
		requireFind(t, s, 42, 0, false)
		require.False(t, s.Remove(42), "remove from empty set")
		require.Empty(t, Elements(s))
		h.check(t, s)
	})

	t.Run("Scenario", func(t *testing.T) {
		s := h.New(1)
		require.True(t, s.Add(10))
		require.True(t, s.Add(20))
		require.True(t, s.Add(5))
		require.Equal(t, 3, s.Size())
		requireFind(t, s, 7, 10, true)
		requireFind(t, s, 20, 20, true)
		requireFind(t, s, 21, 0, false)
		require.True(t, s.Remove(10))
		requireFind(t, s, 7, 20, true)
		require.False(t, s.Remove(10))
		require.Equal(t, 2, s.Size())
		require.Equal(t, []uint64{5, 20}, Elements(s))
		h.check(t, s)
	})

	t.Run("DuplicateAdd", func(t *testing.T) {
		s := h.New(2)
		for i := uint64(0); i < 50; i++ {
			require.True(t, s.Add(i*3))
		}
		for i := uint64(0); i < 50; i++ {
			require.Falsef(t, s.Add(i*3), "Add(%d) twice", i*3)
			require.Equal(t, 50, s.Size())
		}
		h.check(t, s)
	})

	t.Run("RemoveReadd", func(t *testing.T) {
		s := h.New(3)
		for i := uint64(1); i <= 64; i++ {
			s.Add(i * 7)
		}
		for i := uint64(1); i <= 64; i++ {
			x := i * 7
			require.Truef(t, s.Remove(x), "Remove(%d)", x)
			require.Equal(t, 63, s.Size())
			require.Truef(t, s.Add(x), "re-Add(%d)", x)
			require.Equal(t, 64, s.Size())
			requireFind(t, s, x, x, true)
		}
		h.check(t, s)
	})

	t.Run("LowerBound", func(t *testing.T) {
		s := h.New(4)
		for i := uint64(0); i < 100; i++ {
			s.Add(i * 2)
		}
		for i := uint64(0); i < 100; i++ {
			requireFind(t, s, i*2, i*2, true)
			requireFind(t, s, i*2+1, i*2+2, i < 99)
		}
		requireFind(t, s, 1<<40, 0, false)
		requireFind(t, s, ^uint64(0), 0, false)
	})

	t.Run("ForEachStops", func(t *testing.T) {
		s := h.New(5)
		for i := uint64(0); i < 10; i++ {
			s.Add(i)
		}
		var visited []uint64
		s.ForEach(func(x uint64) bool {
			visited = append(visited, x)
			return x < 4
		})
		require.Equal(t, []uint64{0, 1, 2, 3, 4}, visited)
	})

	t.Run("Sequential", func(t *testing.T) {
		const numItems = 1000
		for _, ascending := range []bool{true, false} {
			s := h.New(6)
			for i := uint64(0); i < numItems; i++ {
				x := i
				if !ascending {
					x = numItems - 1 - i
				}
				require.True(t, s.Add(x))
			}
			require.Equal(t, numItems, s.Size())
			h.check(t, s)
			for i, x := range Elements(s) {
				require.Equal(t, uint64(i), x)
			}
			for i := uint64(0); i < numItems; i++ {
				require.True(t, s.Remove(i))
				requireFind(t, s, 0, i+1, i+1 < numItems)
			}
			require.Zero(t, s.Size())
			h.check(t, s)
		}
	})

	t.Run("Extremes", func(t *testing.T) {
		s := h.New(7)
		top := ^uint64(0)
		require.True(t, s.Add(top))
		require.True(t, s.Add(0))
		require.True(t, s.Add(1<<63))
		requireFind(t, s, 1, 1<<63, true)
		requireFind(t, s, 1<<63+1, top, true)
		requireFind(t, s, top, top, true)
		require.True(t, s.Remove(top))
		requireFind(t, s, 1<<63+1, 0, false)
		h.check(t, s)
	})

	t.Run("Differential", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			universe := uint64(64) << (seed % 5)
			differential(t, h, seed, 3000, universe)
		}
	})

	t.Run("Property", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			seed := rapid.Uint64().Draw(rt, "seed")
			limit := rapid.Uint64Range(1, 300).Draw(rt, "limit")
			s := h.New(seed)
			ref := refset.NewBTree[uint64]()
			numOps := rapid.IntRange(1, 200).Draw(rt, "ops")
			for i := 0; i < numOps; i++ {
				x := rapid.Uint64Range(0, limit).Draw(rt, "x")
				switch rapid.IntRange(0, 2).Draw(rt, "op") {
				case 0:
					require.Equalf(rt, ref.Add(x), s.Add(x),
						"Add(%d)", x)
				case 1:
					require.Equalf(rt, ref.Remove(x), s.Remove(x),
						"Remove(%d)", x)
				default:
					want, wantOK := ref.Find(x)
					requireFind(rt, s, x, want, wantOK)
				}
				require.Equal(rt, ref.Size(), s.Size())
			}
			requireSameContents(rt, s, ref)
			h.check(rt, s)
		})
	})
}

// differential applies a random sequence of operations to the engine and to a
// reference B-tree and requires every observable result to agree.
func differential(t *testing.T, h Harness, seed uint64, numOps int,
	universe uint64) {

	t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
		rng := rand.New(rand.NewPCG(seed, universe))
		s := h.New(seed)
		ref := refset.NewBTree[uint64]()
		for i := 0; i < numOps; i++ {
			x := rng.Uint64N(universe)
			switch op := rng.IntN(10); {
			case op < 4:
				require.Equalf(t, ref.Add(x), s.Add(x),
					"op #%d Add(%d)", i, x)
			case op < 7:
				require.Equalf(t, ref.Remove(x), s.Remove(x),
					"op #%d Remove(%d)", i, x)
			default:
				want, wantOK := ref.Find(x)
				requireFind(t, s, x, want, wantOK)
			}
			require.Equalf(t, ref.Size(), s.Size(), "op #%d size", i)
			if i%257 == 0 {
				h.check(t, s)
			}
		}
		requireSameContents(t, s, ref)
		h.check(t, s)

		// Drain everything to cover removal down to the empty set.
		for _, x := range Elements(ref) {
			require.True(t, s.Remove(x))
		}
		require.Zero(t, s.Size())
		h.check(t, s)
	})
}
