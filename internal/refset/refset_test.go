// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package refset

import (
	"testing"

	"github.com/btcsuite/sset"
	"github.com/stretchr/testify/require"
)

// TestReferenceSets ensures both adapters honour the sorted-set contract
// since every differential test relies on them.
func TestReferenceSets(t *testing.T) {
	t.Parallel()

	sets := map[string]sset.SortedSet[int]{
		"btree":    NewBTree[int](),
		"redblack": NewRedBlack[int](),
		"btree-desc": NewBTreeFunc(func(a, b int) bool {
			return a > b
		}),
	}
	for name, s := range sets {
		require.True(t, s.Add(10), name)
		require.True(t, s.Add(20), name)
		require.True(t, s.Add(5), name)
		require.False(t, s.Add(5), name)
		require.Equal(t, 3, s.Size(), name)

		var got []int
		s.ForEach(func(x int) bool {
			got = append(got, x)
			return true
		})
		if name == "btree-desc" {
			require.Equal(t, []int{20, 10, 5}, got, name)
			x, ok := s.Find(15)
			require.True(t, ok, name)
			require.Equal(t, 10, x, name)
			continue
		}
		require.Equal(t, []int{5, 10, 20}, got, name)

		x, ok := s.Find(7)
		require.True(t, ok, name)
		require.Equal(t, 10, x, name)
		_, ok = s.Find(21)
		require.False(t, ok, name)

		require.True(t, s.Remove(10), name)
		require.False(t, s.Remove(10), name)
		x, ok = s.Find(7)
		require.True(t, ok, name)
		require.Equal(t, 20, x, name)
	}
}
