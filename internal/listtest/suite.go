// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listtest provides the test suite shared by the positional list
// implementations.  Every operation is checked against a plain slice.
package listtest

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/btcsuite/sset"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Harness describes the list under test.
type Harness struct {
	// New returns an empty list.  Randomized lists should derive all of
	// their randomness from seed.
	New func(seed uint64) sset.List[int]

	// Check, when set, verifies the structural invariants of the list.
	Check func(t require.TestingT, l sset.List[int])
}

func (h Harness) check(t require.TestingT, l sset.List[int]) {
	if h.Check != nil {
		h.Check(t, l)
	}
}

// Elements returns the contents of l in positional order.
func Elements[T any](t require.TestingT, l sset.List[T]) []T {
	elems := make([]T, 0, l.Size())
	for i := 0; i < l.Size(); i++ {
		x, err := l.Get(i)
		require.NoErrorf(t, err, "Get(%d)", i)
		elems = append(elems, x)
	}
	return elems
}

// requireIndexError asserts err reports an out of range index.
func requireIndexError(t require.TestingT, err error, format string,
	args ...interface{}) {

	require.Errorf(t, err, format, args...)
	require.ErrorIsf(t, err, sset.Error{ErrorCode: sset.ErrIndexOutOfRange},
		format, args...)
}

// requireSameContents asserts that l holds exactly want.
func requireSameContents(t require.TestingT, l sset.List[int], want []int) {
	require.Equal(t, len(want), l.Size(), "Size mismatch")
	got := Elements(t, l)
	if len(want) == 0 {
		require.Empty(t, got)
		return
	}
	require.Equalf(t, want, got, "contents mismatch:\n%s", spew.Sdump(got))
}

// TestSuite runs the positional list tests against the list described by h.
func TestSuite(t *testing.T, h Harness) {
	t.Run("Empty", func(t *testing.T) {
		l := h.New(0)
		require.Zero(t, l.Size())
		_, err := l.Get(0)
		requireIndexError(t, err, "Get(0) on empty list")
		_, err = l.Set(0, 1)
		requireIndexError(t, err, "Set(0) on empty list")
		_, err = l.Remove(0)
		requireIndexError(t, err, "Remove(0) on empty list")
		requireIndexError(t, l.Insert(1, 1), "Insert(1) on empty list")
		requireIndexError(t, l.Insert(-1, 1), "Insert(-1) on empty list")
		require.Zero(t, l.Size())
		h.check(t, l)
	})

	t.Run("SetGet", func(t *testing.T) {
		l := h.New(1)
		for i, x := range []int{1, 2, 3} {
			require.NoError(t, l.Insert(i, x))
		}
		old, err := l.Set(0, 24)
		require.NoError(t, err)
		require.Equal(t, 1, old)
		old, err = l.Set(2, 26)
		require.NoError(t, err)
		require.Equal(t, 3, old)
		requireSameContents(t, l, []int{24, 2, 26})

		_, err = l.Get(3)
		requireIndexError(t, err, "Get past the end")
		_, err = l.Get(-1)
		requireIndexError(t, err, "Get(-1)")
		h.check(t, l)
	})

	t.Run("InsertRemove", func(t *testing.T) {
		l := h.New(2)
		for i, x := range []int{1, 2, 3} {
			require.NoError(t, l.Insert(i, x))
		}
		x, err := l.Remove(1)
		require.NoError(t, err)
		require.Equal(t, 2, x)
		x, err = l.Remove(1)
		require.NoError(t, err)
		require.Equal(t, 3, x)
		_, err = l.Remove(1)
		requireIndexError(t, err, "Remove past the end")
		x, err = l.Remove(0)
		require.NoError(t, err)
		require.Equal(t, 1, x)
		require.Zero(t, l.Size())
		h.check(t, l)
	})

	t.Run("FrontBackMiddle", func(t *testing.T) {
		l := h.New(3)
		var want []int
		for i := 0; i < 300; i++ {
			var idx int
			switch i % 3 {
			case 0:
				idx = 0
			case 1:
				idx = l.Size()
			default:
				idx = l.Size() / 2
			}
			require.NoError(t, l.Insert(idx, i))
			want = slices.Insert(want, idx, i)
		}
		requireSameContents(t, l, want)
		h.check(t, l)
	})

	t.Run("FailedCallsDoNotMutate", func(t *testing.T) {
		l := h.New(4)
		for i := 0; i < 10; i++ {
			require.NoError(t, l.Insert(i, i))
		}
		want := Elements(t, l)
		for _, i := range []int{-5, -1, 10, 11, 1 << 30} {
			_, err := l.Get(i)
			requireIndexError(t, err, "Get(%d)", i)
			_, err = l.Set(i, -1)
			requireIndexError(t, err, "Set(%d)", i)
			_, err = l.Remove(i)
			requireIndexError(t, err, "Remove(%d)", i)
		}
		requireIndexError(t, l.Insert(11, -1), "Insert(11)")
		requireIndexError(t, l.Insert(-1, -1), "Insert(-1)")
		requireSameContents(t, l, want)
		h.check(t, l)
	})

	t.Run("Differential", func(t *testing.T) {
		for seed := uint64(0); seed < 10; seed++ {
			differential(t, h, seed, 2000)
		}
	})

	t.Run("Property", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			l := h.New(rapid.Uint64().Draw(rt, "seed"))
			var want []int
			numOps := rapid.IntRange(1, 150).Draw(rt, "ops")
			for i := 0; i < numOps; i++ {
				n := len(want)
				switch rapid.IntRange(0, 3).Draw(rt, "op") {
				case 0:
					idx := rapid.IntRange(0, n).Draw(rt, "idx")
					require.NoError(rt, l.Insert(idx, i))
					want = slices.Insert(want, idx, i)
				case 1:
					if n == 0 {
						_, err := l.Remove(0)
						requireIndexError(rt, err, "Remove(0)")
						continue
					}
					idx := rapid.IntRange(0, n-1).Draw(rt, "idx")
					x, err := l.Remove(idx)
					require.NoError(rt, err)
					require.Equal(rt, want[idx], x)
					want = slices.Delete(want, idx, idx+1)
				case 2:
					if n == 0 {
						continue
					}
					idx := rapid.IntRange(0, n-1).Draw(rt, "idx")
					old, err := l.Set(idx, -i)
					require.NoError(rt, err)
					require.Equal(rt, want[idx], old)
					want[idx] = -i
				default:
					idx := rapid.IntRange(-1, n).Draw(rt, "idx")
					x, err := l.Get(idx)
					if idx < 0 || idx >= n {
						requireIndexError(rt, err, "Get(%d)", idx)
						continue
					}
					require.NoError(rt, err)
					require.Equal(rt, want[idx], x)
				}
			}
			requireSameContents(rt, l, want)
			h.check(rt, l)
		})
	})
}

// differential applies a random sequence of positional operations to the
// list and to a slice and requires every observable result to agree.
func differential(t *testing.T, h Harness, seed uint64, numOps int) {
	t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
		rng := rand.New(rand.NewPCG(seed, 0))
		l := h.New(seed)
		var want []int
		for i := 0; i < numOps; i++ {
			n := len(want)
			switch op := rng.IntN(10); {
			case op < 5 || n == 0:
				idx := rng.IntN(n + 1)
				require.NoErrorf(t, l.Insert(idx, i), "op #%d Insert(%d)",
					i, idx)
				want = slices.Insert(want, idx, i)
			case op < 8:
				idx := rng.IntN(n)
				x, err := l.Remove(idx)
				require.NoErrorf(t, err, "op #%d Remove(%d)", i, idx)
				require.Equalf(t, want[idx], x, "op #%d Remove(%d)", i,
					idx)
				want = slices.Delete(want, idx, idx+1)
			default:
				idx := rng.IntN(n)
				x, err := l.Get(idx)
				require.NoErrorf(t, err, "op #%d Get(%d)", i, idx)
				require.Equalf(t, want[idx], x, "op #%d Get(%d)", i, idx)
			}
			require.Equalf(t, len(want), l.Size(), "op #%d size", i)
			if i%199 == 0 {
				h.check(t, l)
			}
		}
		requireSameContents(t, l, want)
		h.check(t, l)

		for l.Size() > 0 {
			idx := rng.IntN(l.Size())
			x, err := l.Remove(idx)
			require.NoError(t, err)
			require.Equal(t, want[idx], x)
			want = slices.Delete(want, idx, idx+1)
		}
		h.check(t, l)
	})
}
