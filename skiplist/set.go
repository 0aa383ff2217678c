// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package skiplist

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"golang.org/x/exp/constraints"
)

// setNode is a skip list node holding a key.  next has one entry per level
// the node belongs to.
type setNode[T any] struct {
	key  T
	next []arena.Handle
}

// Set is a sorted set backed by a skip list.
type Set[T any] struct {
	nodes    *arena.Arena[setNode[T]]
	sentinel arena.Handle
	height   int
	n        int
	compare  func(a, b T) int
	rand     sset.Rand

	// preds holds the rightmost node before the key on every level during
	// an insertion.
	preds [maxLevels]arena.Handle
}

// Ensure Set implements the sset.SortedSet interface.
var _ sset.SortedSet[int] = (*Set[int])(nil)

// New returns a new empty skip list set ordered by the natural order of T.
func New[T constraints.Ordered](opts ...sset.Option) *Set[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc returns a new empty skip list set ordered by compare.
func NewFunc[T any](compare func(a, b T) int, opts ...sset.Option) *Set[T] {
	o := sset.NewOptions(opts...)
	s := &Set[T]{
		nodes:   arena.New[setNode[T]](o.Capacity + 1),
		compare: compare,
		rand:    o.Rand,
	}
	s.init()
	return s
}

// init allocates the sentinel and marks the list empty.
func (s *Set[T]) init() {
	h, sentinel := s.nodes.Alloc()
	sentinel.next = make([]arena.Handle, maxLevels)
	s.sentinel = h
	s.height = -1
	s.n = 0
}

func (s *Set[T]) node(h arena.Handle) *setNode[T] {
	return s.nodes.At(h)
}

// Size returns the number of keys in the set.
func (s *Set[T]) Size() int {
	return s.n
}

// Height returns the index of the highest non-empty level, or -1 when the set
// is empty.
func (s *Set[T]) Height() int {
	return s.height
}

// findPred returns the rightmost node on level 0 whose key is less than x.
// The sentinel is returned when there is none.
func (s *Set[T]) findPred(x T) arena.Handle {
	u := s.sentinel
	for r := s.height; r >= 0; r-- {
		for {
			next := s.node(u).next[r]
			if next == arena.Nil || s.compare(s.node(next).key, x) >= 0 {
				break
			}
			u = next
		}
	}
	return u
}

// Add inserts x into the set.  It returns false without modifying the set
// when an equal key is already present.
func (s *Set[T]) Add(x T) bool {
	u := s.sentinel
	for r := s.height; r >= 0; r-- {
		for {
			next := s.node(u).next[r]
			if next == arena.Nil {
				break
			}
			compareResult := s.compare(s.node(next).key, x)
			if compareResult == 0 {
				return false
			}
			if compareResult > 0 {
				break
			}
			u = next
		}
		s.preds[r] = u
	}

	k := pickHeight(s.rand)
	for r := s.height + 1; r <= k; r++ {
		s.preds[r] = s.sentinel
	}

	w, node := s.nodes.Alloc()
	node.key = x
	node.next = make([]arena.Handle, k+1)
	for r := 0; r <= k; r++ {
		pred := s.node(s.preds[r])
		node.next[r] = pred.next[r]
		pred.next[r] = w
	}
	if k > s.height {
		log.Debugf("Raised set height from %d to %d (n=%d)", s.height, k,
			s.n+1)
		s.height = k
		log.Tracef("Set layout after raising height:\n%v",
			newLogClosure(s.String))
	}
	s.n++
	return true
}

// Remove deletes x from the set.  It returns false when x is not present.
func (s *Set[T]) Remove(x T) bool {
	removed := arena.Nil
	u := s.sentinel
	for r := s.height; r >= 0; r-- {
		for {
			un := s.node(u)
			next := un.next[r]
			if next == arena.Nil {
				break
			}
			nextNode := s.node(next)
			compareResult := s.compare(nextNode.key, x)
			if compareResult > 0 {
				break
			}
			if compareResult == 0 {
				removed = next
				un.next[r] = nextNode.next[r]

				// Levels empty from the top down, so an empty
				// sentinel level lowers the height below it.
				if u == s.sentinel && un.next[r] == arena.Nil {
					log.Debugf("Lowered set height from %d to %d "+
						"(n=%d)", s.height, r-1, s.n-1)
					s.height = r - 1
				}
				break
			}
			u = next
		}
	}
	if removed == arena.Nil {
		return false
	}
	s.nodes.Free(removed)
	s.n--
	return true
}

// Find returns the smallest key in the set that is greater than or equal to
// x.  The boolean is false when no such key exists.
func (s *Set[T]) Find(x T) (T, bool) {
	next := s.node(s.findPred(x)).next[0]
	if next == arena.Nil {
		var zero T
		return zero, false
	}
	return s.node(next).key, true
}

// ForEach invokes fn with every key in ascending order until it returns false.
func (s *Set[T]) ForEach(fn func(x T) bool) {
	for h := s.node(s.sentinel).next[0]; h != arena.Nil; {
		node := s.node(h)
		if !fn(node.key) {
			return
		}
		h = node.next[0]
	}
}

// Reset removes all keys from the set.
func (s *Set[T]) Reset() {
	s.nodes.Reset()
	s.init()
}

// String returns a drawing of the set with one line per node, starting with
// the sentinel, where the number of hash marks is the number of levels the
// node belongs to.
func (s *Set[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "~\t%s\n", strings.Repeat("#", s.height+1))
	s.forEachNode(func(node *setNode[T]) {
		fmt.Fprintf(&b, "%v\t%s\n", node.key,
			strings.Repeat("#", len(node.next)))
	})
	return b.String()
}

func (s *Set[T]) forEachNode(fn func(node *setNode[T])) {
	for h := s.node(s.sentinel).next[0]; h != arena.Nil; {
		node := s.node(h)
		fn(node)
		h = node.next[0]
	}
}
