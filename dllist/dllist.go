// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dllist implements a positional list as a doubly-linked list closed
// into a ring by a sentinel node.
//
// Accessing index i walks from whichever end of the list is closer, so Get,
// Set, Insert and Remove take O(1 + min(i, n-i)) time.
package dllist

import (
	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
)

type node[T any] struct {
	value T
	prev  arena.Handle
	next  arena.Handle
}

// List is a doubly-linked positional list.
type List[T any] struct {
	nodes *arena.Arena[node[T]]
	dummy arena.Handle
	n     int
}

// Ensure List implements the sset.List interface.
var _ sset.List[int] = (*List[int])(nil)

// New returns a new empty list.
func New[T any](opts ...sset.Option) *List[T] {
	o := sset.NewOptions(opts...)
	l := &List[T]{nodes: arena.New[node[T]](o.Capacity + 1)}
	l.init()
	return l
}

func (l *List[T]) init() {
	h, dummy := l.nodes.Alloc()
	dummy.prev, dummy.next = h, h
	l.dummy = h
	l.n = 0
}

func (l *List[T]) node(h arena.Handle) *node[T] {
	return l.nodes.At(h)
}

// Size returns the number of elements in the list.
func (l *List[T]) Size() int {
	return l.n
}

// nodeAt returns the node at index i, where an index equal to the size
// refers to the sentinel.
func (l *List[T]) nodeAt(i int) arena.Handle {
	if i < l.n/2 {
		h := l.node(l.dummy).next
		for ; i > 0; i-- {
			h = l.node(h).next
		}
		return h
	}
	h := l.dummy
	for j := l.n; j > i; j-- {
		h = l.node(h).prev
	}
	return h
}

// Get returns the element at index i.
func (l *List[T]) Get(i int) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}
	return l.node(l.nodeAt(i)).value, nil
}

// Set replaces the element at index i with x and returns the element it
// replaced.
func (l *List[T]) Set(i int, x T) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}
	n := l.node(l.nodeAt(i))
	old := n.value
	n.value = x
	return old, nil
}

// Insert places x at index i, shifting the elements at i and beyond one
// position up.  An index equal to Size appends.
func (l *List[T]) Insert(i int, x T) error {
	if err := sset.CheckIndex(i, l.n, true); err != nil {
		return err
	}
	l.insertBefore(l.nodeAt(i), x)
	return nil
}

// insertBefore links a new node holding x in front of w.
func (l *List[T]) insertBefore(w arena.Handle, x T) {
	u, n := l.nodes.Alloc()
	wn := l.node(w)
	n.value = x
	n.prev = wn.prev
	n.next = w
	l.node(wn.prev).next = u
	wn.prev = u
	l.n++
}

// Remove deletes the element at index i and returns it.
func (l *List[T]) Remove(i int) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}
	w := l.nodeAt(i)
	wn := l.node(w)
	x := wn.value
	l.node(wn.prev).next = wn.next
	l.node(wn.next).prev = wn.prev
	l.nodes.Free(w)
	l.n--
	return x, nil
}

// ForEach invokes fn with every element in order until it returns false.
func (l *List[T]) ForEach(fn func(x T) bool) {
	for h := l.node(l.dummy).next; h != l.dummy; {
		n := l.node(h)
		if !fn(n.value) {
			return
		}
		h = n.next
	}
}

// Reset removes all elements from the list.
func (l *List[T]) Reset() {
	l.nodes.Reset()
	l.init()
}
