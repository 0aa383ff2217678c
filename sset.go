// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sset

// SortedSet is a mutable collection of distinct elements kept under a total
// order.
type SortedSet[T any] interface {
	// Size returns the number of elements in the set.
	Size() int

	// Add inserts x unless an equal element is already stored.  It
	// returns whether the set was modified.
	Add(x T) bool

	// Remove deletes the element equal to x.  It returns whether such an
	// element existed.
	Remove(x T) bool

	// Find returns the smallest stored element that is greater than or
	// equal to x.  The boolean is false when every stored element is
	// smaller than x.
	Find(x T) (T, bool)

	// ForEach invokes fn with every element in ascending order until fn
	// returns false.
	ForEach(fn func(x T) bool)
}

// List is a sequence addressed by position.  An index equal to Size is a
// valid insertion point; any other index outside [0, Size) is rejected with
// ErrIndexOutOfRange.
type List[T any] interface {
	Size() int
	Get(i int) (T, error)

	// Set replaces the element at i and returns the previous one.
	Set(i int, x T) (T, error)

	// Insert places x at position i, shifting later elements up.
	Insert(i int, x T) error

	// Remove deletes and returns the element at position i.
	Remove(i int) (T, error)
}

// Stack is a last-in first-out collection.
type Stack[T any] interface {
	Size() int
	Push(x T)
	Pop() (T, bool)
}

// Queue is a first-in first-out collection.
type Queue[T any] interface {
	Size() int
	Add(x T)
	Remove() (T, bool)
}
