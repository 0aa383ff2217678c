// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package skiplist implements a sorted set and a positional list on top of skip
lists.

A skip list is a stack of sorted singly-linked lists.  Level 0 holds every
node and each node is promoted to the next level up with probability 1/2, so
a search can skip over long runs of nodes by starting at the top level and
dropping down whenever the next node would overshoot.  Both structures here
start from a sentinel node spanning every level and keep track of the highest
level that is not empty.

Set implements sset.SortedSet with expected O(log n) Add, Remove and Find.

List implements sset.List.  Every link additionally records how many level 0
positions it skips, which lets Get, Set, Insert and Remove locate an index in
expected O(log n) time.

Node heights are drawn from the generator supplied with sset.WithRand or
sset.WithSeed.  The generator is consulted once per inserted node.
*/
package skiplist
