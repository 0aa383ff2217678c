// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sset defines the contracts shared by a family of interchangeable
in-memory sorted-set engines.

Every engine stores distinct elements under a total order and supports
insert-if-absent, remove-if-present and successor lookup, which returns the
smallest stored element that is greater than or equal to a query key.  The
engines only differ in how they keep that order:

  - treap: a binary search tree that is also a min-heap on random priorities
  - scapegoat: a binary search tree rebuilt on local weight imbalance
  - skiplist: a probabilistically balanced stack of sorted linked lists
  - binarytrie: a bitwise digital trie over fixed-width unsigned keys

Since all of them satisfy SortedSet, a caller can swap storage strategies
without touching the code that uses the set:

	var s sset.SortedSet[uint64] = treap.New[uint64](sset.WithSeed(1))
	s.Add(10)
	s.Add(20)
	if x, ok := s.Find(11); ok {
		fmt.Println(x) // 20
	}

None of the engines are safe for concurrent use.  Callers that share a set
between goroutines must provide their own synchronization.

Randomized engines draw from a Rand that is injected once at construction
time through WithRand or WithSeed, which makes their shape reproducible in
tests.

# Collaborators

The package also defines the positional List contract implemented by the
dllist package and the skiplist List type, and the Stack and Queue contracts
implemented by the sllist package.  Index-taking operations never panic on a
bad index.  They return an Error with the ErrIndexOutOfRange code instead and
leave the structure untouched.
*/
package sset
