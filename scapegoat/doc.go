// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package scapegoat implements a sorted set as a scapegoat tree.

A scapegoat tree is a plain binary search tree that keeps itself balanced by
occasionally rebuilding a subtree into a perfectly balanced shape.  Besides the
number of keys n, the tree tracks an upper bound q on n that only grows on
insertion and is reset on a full rebuild, keeping n <= q <= 2n.

When an insertion produces a node whose depth exceeds log_{3/2}(q), the tree
walks up from the new node to find a scapegoat: an ancestor whose child on the
search path holds more than two thirds of its subtree.  That ancestor's
subtree is then rebuilt.  When removals bring q above 2n, the whole tree is
rebuilt and q is reset to n.  Every node therefore stays within depth
log_{3/2}(q), and Add and Remove run in amortized O(log n) time while Find is
O(log n) in the worst case.

Rebuilds are reported at the debug level through the package logger, which is
disabled until UseLogger is called.
*/
package scapegoat
