// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package treap implements a sorted set as a treap.

A treap is a binary search tree on the keys that is simultaneously a min-heap
on random priorities assigned when each key is inserted.  New keys are attached
as leaves and rotated up while their priority is smaller than their parent's,
and removed keys are rotated down toward the child with the smaller priority
until they become a leaf.

Because the priorities are random, the expected height is logarithmic and
Add, Remove and Find run in expected O(log n) time.  This is an expected-case
bound only.  A pathological draw of priorities can produce a tree whose height
approaches n, although the probability of that vanishes quickly as n grows.
Supplying the generator with sset.WithSeed makes the shape reproducible.
*/
package treap
