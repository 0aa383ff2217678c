// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package binarytrie implements a sorted set of fixed-width unsigned integer
keys as a binary trie.

Every key is mapped to an integer of a fixed bit width and stored at the leaf
reached by following its bits from the most significant one, so each
operation visits exactly width nodes regardless of how many keys are stored.

The leaves are threaded into a doubly-linked list in key order.  A sentinel
node closes the list into a ring so the first and last leaves need no special
handling.  An internal node that is missing one child keeps a jump link to the
leaf of its subtree that is closest to the missing side: the smallest leaf
when child 0 is missing and the largest leaf when child 1 is missing.  A
lookup that falls off the trie at such a node finds its answer through the
jump link, or through the leaf right after it.

Keys of unsigned integer types can use New directly.  Other types supply
their own injective projection to an integer of at most 64 bits with NewFunc.
*/
package binarytrie
