// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package refset adapts well-known ordered containers to the sset.SortedSet
// contract.  They serve as the oracle for differential tests and as baselines
// for benchmarks.
package refset

import (
	"cmp"

	"github.com/btcsuite/sset"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

// DefaultDegree is the B-tree degree used by NewBTree.
const DefaultDegree = 32

// BTree is a sorted set backed by github.com/google/btree.
type BTree[T any] struct {
	tree *btree.BTreeG[T]
}

// Ensure BTree implements the sset.SortedSet interface.
var _ sset.SortedSet[int] = (*BTree[int])(nil)

// NewBTree returns an empty B-tree set ordered by the natural order of T.
func NewBTree[T constraints.Ordered]() *BTree[T] {
	return &BTree[T]{tree: btree.NewOrderedG[T](DefaultDegree)}
}

// NewBTreeFunc returns an empty B-tree set ordered by less.
func NewBTreeFunc[T any](less func(a, b T) bool) *BTree[T] {
	return &BTree[T]{tree: btree.NewG[T](DefaultDegree, less)}
}

// Size returns the number of elements in the set.
func (s *BTree[T]) Size() int {
	return s.tree.Len()
}

// Add inserts x if it is absent.
func (s *BTree[T]) Add(x T) bool {
	if s.tree.Has(x) {
		return false
	}
	s.tree.ReplaceOrInsert(x)
	return true
}

// Remove deletes x if it is present.
func (s *BTree[T]) Remove(x T) bool {
	_, ok := s.tree.Delete(x)
	return ok
}

// Find returns the smallest element that is not less than x.
func (s *BTree[T]) Find(x T) (T, bool) {
	var (
		found T
		ok    bool
	)
	s.tree.AscendGreaterOrEqual(x, func(item T) bool {
		found, ok = item, true
		return false
	})
	return found, ok
}

// ForEach invokes fn with every element in ascending order.
func (s *BTree[T]) ForEach(fn func(x T) bool) {
	s.tree.Ascend(btree.ItemIteratorG[T](fn))
}

// RedBlack is a sorted set backed by the red-black tree from
// github.com/emirpasic/gods.
type RedBlack[T any] struct {
	tree *redblacktree.Tree
}

// Ensure RedBlack implements the sset.SortedSet interface.
var _ sset.SortedSet[int] = (*RedBlack[int])(nil)

// NewRedBlack returns an empty red-black tree set ordered by the natural
// order of T.
func NewRedBlack[T constraints.Ordered]() *RedBlack[T] {
	return NewRedBlackFunc(cmp.Compare[T])
}

// NewRedBlackFunc returns an empty red-black tree set ordered by compare.
func NewRedBlackFunc[T any](compare func(a, b T) int) *RedBlack[T] {
	tree := redblacktree.NewWith(func(a, b interface{}) int {
		return compare(a.(T), b.(T))
	})
	return &RedBlack[T]{tree: tree}
}

// Size returns the number of elements in the set.
func (s *RedBlack[T]) Size() int {
	return s.tree.Size()
}

// Add inserts x if it is absent.
func (s *RedBlack[T]) Add(x T) bool {
	if _, found := s.tree.Get(x); found {
		return false
	}
	s.tree.Put(x, struct{}{})
	return true
}

// Remove deletes x if it is present.
func (s *RedBlack[T]) Remove(x T) bool {
	if _, found := s.tree.Get(x); !found {
		return false
	}
	s.tree.Remove(x)
	return true
}

// Find returns the smallest element that is not less than x.
func (s *RedBlack[T]) Find(x T) (T, bool) {
	node, found := s.tree.Ceiling(x)
	if !found {
		var zero T
		return zero, false
	}
	return node.Key.(T), true
}

// ForEach invokes fn with every element in ascending order.
func (s *RedBlack[T]) ForEach(fn func(x T) bool) {
	it := s.tree.Iterator()
	for it.Next() {
		if !fn(it.Key().(T)) {
			return
		}
	}
}
