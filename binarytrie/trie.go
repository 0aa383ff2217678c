// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package binarytrie

import (
	"fmt"
	"unsafe"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
	"golang.org/x/exp/constraints"
)

// trieNode is a node of the trie.  Leaves carry the key along with its
// projection and are linked into the sorted chain through prev and next.
// Internal nodes with a single child use jump.
type trieNode[T any] struct {
	key    T
	bits   uint64
	child  [2]arena.Handle
	parent arena.Handle
	prev   arena.Handle
	next   arena.Handle
	jump   arena.Handle
}

// Trie is a binary trie holding a set of keys that project to integers of a
// fixed bit width.
type Trie[T any] struct {
	nodes   *arena.Arena[trieNode[T]]
	root    arena.Handle
	dummy   arena.Handle
	width   uint
	project func(T) uint64
	n       int
}

// Ensure Trie implements the sset.SortedSet interface.
var _ sset.SortedSet[uint] = (*Trie[uint])(nil)

// New returns a new empty trie for an unsigned integer type.  The width is
// the bit size of T.
func New[T constraints.Unsigned](opts ...sset.Option) *Trie[T] {
	var zero T
	width := uint(unsafe.Sizeof(zero)) * 8
	return NewFunc(width, func(x T) uint64 { return uint64(x) }, opts...)
}

// NewFunc returns a new empty trie whose keys are ordered by their projection
// through project to integers of width bits.  The projection must be
// injective over the keys stored.  It panics if width is not between 1 and
// 64.
func NewFunc[T any](width uint, project func(T) uint64,
	opts ...sset.Option) *Trie[T] {

	if width < 1 || width > 64 {
		panic(fmt.Sprintf("binarytrie: invalid width %d", width))
	}

	o := sset.NewOptions(opts...)
	t := &Trie[T]{
		nodes:   arena.New[trieNode[T]](o.Capacity),
		width:   width,
		project: project,
	}
	t.init()
	return t
}

// init allocates the root and the chain sentinel of an empty trie.
func (t *Trie[T]) init() {
	dummy, dn := t.nodes.Alloc()
	dn.prev, dn.next = dummy, dummy
	root, rn := t.nodes.Alloc()
	rn.jump = dummy
	t.root, t.dummy = root, dummy
	t.n = 0
}

func (t *Trie[T]) node(h arena.Handle) *trieNode[T] {
	return t.nodes.At(h)
}

// Width returns the number of bits of every key.
func (t *Trie[T]) Width() uint {
	return t.width
}

// Size returns the number of keys in the trie.
func (t *Trie[T]) Size() int {
	return t.n
}

// fits returns whether ix can be represented with the width of the trie.
func (t *Trie[T]) fits(ix uint64) bool {
	return t.width == 64 || ix>>t.width == 0
}

// bit returns the bit of ix that selects the child at depth i.
func (t *Trie[T]) bit(ix uint64, i uint) uint64 {
	return ix>>(t.width-1-i)&1
}

// walk follows the bits of ix from the root as far as the trie goes.  It
// returns the last node reached, its depth and the bit that selected the
// missing child.  A depth equal to the width means ix is stored at the
// returned leaf.
func (t *Trie[T]) walk(ix uint64) (arena.Handle, uint, uint64) {
	u := t.root
	var i uint
	var b uint64
	for ; i < t.width; i++ {
		b = t.bit(ix, i)
		c := t.node(u).child[b]
		if c == arena.Nil {
			break
		}
		u = c
	}
	return u, i, b
}

// Add inserts x into the trie.  It returns false without modifying the trie
// when a key with the same projection is already present.  It panics with an
// sset.Error of kind sset.ErrKeyWidth if the projection of x does not fit the
// width of the trie.
func (t *Trie[T]) Add(x T) bool {
	ix := t.project(x)
	if !t.fits(ix) {
		str := fmt.Sprintf("key %#x does not fit in %d bits", ix, t.width)
		panic(sset.MakeError(sset.ErrKeyWidth, str))
	}

	u, i, b := t.walk(ix)
	if i == t.width {
		return false
	}

	// The jump of the node the walk fell off at is the extreme leaf on the
	// side opposite to b, which identifies the predecessor of x.
	pred := t.node(u).jump
	if b == 0 {
		pred = t.node(pred).prev
	}

	// Materialize the rest of the path down to the new leaf.
	for ; i < t.width; i++ {
		b = t.bit(ix, i)
		c, cn := t.nodes.Alloc()
		cn.parent = u
		t.node(u).child[b] = c
		u = c
	}
	leaf := t.node(u)
	leaf.key = x
	leaf.bits = ix

	// Splice the leaf into the chain right after its predecessor.
	leaf.prev = pred
	leaf.next = t.node(pred).next
	t.node(leaf.next).prev = u
	t.node(pred).next = u

	// Walk back up fixing the jumps.  Nodes that now have both children no
	// longer need one, and the new leaf becomes the target of any node for
	// which it is the new extreme on the side of the missing child.
	for v := leaf.parent; v != arena.Nil; {
		vn := t.node(v)
		switch {
		case vn.child[0] != arena.Nil && vn.child[1] != arena.Nil:
			vn.jump = arena.Nil
		case vn.child[0] == arena.Nil && t.jumpsPast(vn.jump, ix, false):
			vn.jump = u
		case vn.child[1] == arena.Nil && t.jumpsPast(vn.jump, ix, true):
			vn.jump = u
		}
		v = vn.parent
	}
	t.n++
	return true
}

// jumpsPast returns whether a jump to target should be moved to a new leaf
// with projection ix.  That is the case when there is no target yet, or when
// the new leaf is smaller than the target for a jump to the smallest leaf,
// or larger for a jump to the largest leaf.
func (t *Trie[T]) jumpsPast(target arena.Handle, ix uint64, largest bool) bool {
	if target == arena.Nil || target == t.dummy {
		return true
	}
	if largest {
		return t.node(target).bits < ix
	}
	return t.node(target).bits > ix
}

// Remove deletes x from the trie.  It returns false when x is not present,
// including when its projection does not fit the width of the trie.
func (t *Trie[T]) Remove(x T) bool {
	ix := t.project(x)
	if !t.fits(ix) {
		return false
	}
	leaf, i, _ := t.walk(ix)
	if i != t.width {
		return false
	}

	// Unlink the leaf from the chain.
	ln := t.node(leaf)
	prev, next := ln.prev, ln.next
	t.node(prev).next = next
	t.node(next).prev = prev

	// Delete the nodes on the path that are left without children.  The
	// loop stops at the first ancestor that keeps its other child, or at
	// the root, which is never deleted.
	v := leaf
	var b uint64
	for i = t.width; ; {
		i--
		b = t.bit(ix, i)
		p := t.node(v).parent
		t.node(p).child[b] = arena.Nil
		t.nodes.Free(v)
		v = p
		if v == t.root || t.node(v).child[1-b] != arena.Nil {
			break
		}
	}

	// The surviving node lost its child on side b, so it now jumps to the
	// neighbour of the removed leaf on that side.  An emptied root ends up
	// at the sentinel.
	vn := t.node(v)
	switch {
	case t.n == 1:
		vn.jump = t.dummy
	case b == 0:
		vn.jump = next
	default:
		vn.jump = prev
	}

	// Ancestors further up that jumped to the removed leaf move on to the
	// neighbour that replaces it as the extreme of their subtree.
	for w := vn.parent; w != arena.Nil; {
		wn := t.node(w)
		if wn.jump == leaf {
			if wn.child[0] == arena.Nil {
				wn.jump = next
			} else {
				wn.jump = prev
			}
		}
		w = wn.parent
	}
	t.n--
	return true
}

// Find returns the smallest key in the trie whose projection is greater than
// or equal to that of x.  The boolean is false when no such key exists.
func (t *Trie[T]) Find(x T) (T, bool) {
	var zero T
	ix := t.project(x)
	if t.n == 0 || !t.fits(ix) {
		return zero, false
	}

	u, i, b := t.walk(ix)
	if i == t.width {
		return t.node(u).key, true
	}

	// Falling off at a missing child 0 means every key below u is larger
	// and jump is the smallest of them.  At a missing child 1 every key
	// below u is smaller and the answer follows the largest of them.
	h := t.node(u).jump
	if b == 1 {
		h = t.node(h).next
	}
	if h == t.dummy {
		return zero, false
	}
	return t.node(h).key, true
}

// ForEach invokes fn with every key in ascending order until it returns false.
func (t *Trie[T]) ForEach(fn func(x T) bool) {
	for h := t.node(t.dummy).next; h != t.dummy; {
		node := t.node(h)
		if !fn(node.key) {
			return
		}
		h = node.next
	}
}

// Reset removes all keys from the trie.
func (t *Trie[T]) Reset() {
	t.nodes.Reset()
	t.init()
}
