// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package skiplist

import (
	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
)

// listNode is a positional skip list node.  length[r] is the number of level
// 0 positions between the node and next[r], and is zero when next[r] is Nil.
type listNode[T any] struct {
	value  T
	next   []arena.Handle
	length []int
}

// List is a positional list backed by a skip list whose links record the
// distance they span.
type List[T any] struct {
	nodes    *arena.Arena[listNode[T]]
	sentinel arena.Handle
	height   int
	n        int
	rand     sset.Rand
}

// Ensure List implements the sset.List interface.
var _ sset.List[int] = (*List[int])(nil)

// NewList returns a new empty list.
func NewList[T any](opts ...sset.Option) *List[T] {
	o := sset.NewOptions(opts...)
	l := &List[T]{
		nodes: arena.New[listNode[T]](o.Capacity + 1),
		rand:  o.Rand,
	}
	l.init()
	return l
}

func (l *List[T]) init() {
	h, sentinel := l.nodes.Alloc()
	sentinel.next = make([]arena.Handle, maxLevels)
	sentinel.length = make([]int, maxLevels)
	l.sentinel = h
	l.height = -1
	l.n = 0
}

func (l *List[T]) node(h arena.Handle) *listNode[T] {
	return l.nodes.At(h)
}

// Size returns the number of elements in the list.
func (l *List[T]) Size() int {
	return l.n
}

// Height returns the index of the highest non-empty level, or -1 when the
// list is empty.
func (l *List[T]) Height() int {
	return l.height
}

// findPred returns the node at index i-1, or the sentinel when i is 0.  The
// sentinel sits at index -1.
func (l *List[T]) findPred(i int) arena.Handle {
	u, j := l.sentinel, -1
	for r := l.height; r >= 0; r-- {
		for {
			un := l.node(u)
			if un.next[r] == arena.Nil || j+un.length[r] >= i {
				break
			}
			j += un.length[r]
			u = un.next[r]
		}
	}
	return u
}

// Get returns the element at index i.
func (l *List[T]) Get(i int) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}
	return l.node(l.node(l.findPred(i)).next[0]).value, nil
}

// Set replaces the element at index i with x and returns the element it
// replaced.
func (l *List[T]) Set(i int, x T) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}
	node := l.node(l.node(l.findPred(i)).next[0])
	old := node.value
	node.value = x
	return old, nil
}

// Insert places x at index i, shifting the elements at i and beyond one
// position up.  An index equal to Size appends.
func (l *List[T]) Insert(i int, x T) error {
	if err := sset.CheckIndex(i, l.n, true); err != nil {
		return err
	}

	k := pickHeight(l.rand)
	w, node := l.nodes.Alloc()
	node.value = x
	node.next = make([]arena.Handle, k+1)
	node.length = make([]int, k+1)
	if k > l.height {
		log.Debugf("Raised list height from %d to %d (n=%d)", l.height, k,
			l.n+1)
		l.height = k
	}

	u, j := l.sentinel, -1
	for r := l.height; r >= 0; r-- {
		un := l.node(u)
		for un.next[r] != arena.Nil && j+un.length[r] < i {
			j += un.length[r]
			u = un.next[r]
			un = l.node(u)
		}

		if r > k {
			// The new node lands somewhere under this link.
			if un.next[r] != arena.Nil {
				un.length[r]++
			}
			continue
		}

		// Splice the new node in right after u.  The link from u now
		// spans i-j positions and the new node inherits the rest.
		if un.next[r] != arena.Nil {
			node.length[r] = un.length[r] + 1 - (i - j)
		}
		node.next[r] = un.next[r]
		un.next[r] = w
		un.length[r] = i - j
	}
	l.n++
	return nil
}

// Remove deletes the element at index i and returns it.
func (l *List[T]) Remove(i int) (T, error) {
	if err := sset.CheckIndex(i, l.n, false); err != nil {
		var zero T
		return zero, err
	}

	removed := arena.Nil
	u, j := l.sentinel, -1
	for r := l.height; r >= 0; r-- {
		un := l.node(u)
		for un.next[r] != arena.Nil && j+un.length[r] < i {
			j += un.length[r]
			u = un.next[r]
			un = l.node(u)
		}
		if un.next[r] == arena.Nil {
			continue
		}

		if j+un.length[r] > i {
			// The removed node lies under this link.
			un.length[r]--
			continue
		}

		// The next node on this level is the one at index i.
		removed = un.next[r]
		rn := l.node(removed)
		un.next[r] = rn.next[r]
		if un.next[r] == arena.Nil {
			un.length[r] = 0
		} else {
			un.length[r] += rn.length[r] - 1
		}
		if u == l.sentinel && un.next[r] == arena.Nil {
			log.Debugf("Lowered list height from %d to %d (n=%d)",
				l.height, r-1, l.n-1)
			l.height = r - 1
		}
	}

	value := l.node(removed).value
	l.nodes.Free(removed)
	l.n--
	return value, nil
}

// ForEach invokes fn with every element in order until it returns false.
func (l *List[T]) ForEach(fn func(x T) bool) {
	for h := l.node(l.sentinel).next[0]; h != arena.Nil; {
		node := l.node(h)
		if !fn(node.value) {
			return
		}
		h = node.next[0]
	}
}

// Reset removes all elements from the list.
func (l *List[T]) Reset() {
	l.nodes.Reset()
	l.init()
}
