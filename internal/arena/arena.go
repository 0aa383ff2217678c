// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package arena provides the node storage shared by the sorted-set engines.
//
// Nodes live in fixed-size pages and are addressed by integer handles instead
// of pointers, so parent, sibling and shortcut links can form cycles without
// any of them owning the node.  A page never moves once allocated, which means
// a *N returned by At stays valid until the handle is released with Free.
package arena

import "fmt"

const (
	// pageBits is the number of low handle bits that select the slot
	// inside a page.
	pageBits = 8

	// pageSize is the number of nodes held by each page.
	pageSize = 1 << pageBits

	// maxHandle is the largest handle the arena hands out.
	maxHandle = ^Handle(0)
)

// Handle identifies a node stored in an Arena.  The zero value is Nil and
// never refers to a node.
type Handle uint32

// Nil is the handle that refers to no node.
const Nil Handle = 0

// page is a fixed block of nodes along with a bitmap of the slots in use.
type page[N any] struct {
	nodes [pageSize]N
	used  [pageSize / 64]uint64
}

// Arena is a slab allocator for nodes of type N.  Released slots are kept on
// a free list and handed out again by later allocations.
type Arena[N any] struct {
	pages []*page[N]
	free  []Handle
	next  Handle
	live  int
}

// New returns an empty arena.  The capacity is a hint for the number of nodes
// the caller expects to hold at once.
func New[N any](capacity int) *Arena[N] {
	a := &Arena[N]{next: 1}
	if capacity > 0 {
		a.pages = make([]*page[N], 0, capacity/pageSize+1)
	}
	return a
}

// Len returns the number of live nodes.
func (a *Arena[N]) Len() int {
	return a.live
}

// locate splits a handle into its page and slot and reports whether the slot
// currently holds a live node.
func (a *Arena[N]) locate(h Handle) (*page[N], int, bool) {
	pi := int(h >> pageBits)
	if h == Nil || pi >= len(a.pages) {
		return nil, 0, false
	}
	p := a.pages[pi]
	slot := int(h & (pageSize - 1))
	return p, slot, p.used[slot/64]&(1<<(slot%64)) != 0
}

// Alloc reserves a zeroed node and returns its handle along with a pointer to
// it.
func (a *Arena[N]) Alloc() (Handle, *N) {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if a.next == maxHandle {
			panic("arena: handle space exhausted")
		}
		h = a.next
		a.next++
		if int(h>>pageBits) == len(a.pages) {
			a.pages = append(a.pages, new(page[N]))
		}
	}

	p := a.pages[h>>pageBits]
	slot := int(h & (pageSize - 1))
	p.used[slot/64] |= 1 << (slot % 64)
	a.live++
	return h, &p.nodes[slot]
}

// At returns the node for a live handle.  It panics when the handle is Nil or
// has already been released, since either means a structural link was not
// updated before the node was freed.
func (a *Arena[N]) At(h Handle) *N {
	p, slot, ok := a.locate(h)
	if !ok {
		panic(fmt.Sprintf("arena: access through dead handle %d", h))
	}
	return &p.nodes[slot]
}

// Valid reports whether h refers to a live node.
func (a *Arena[N]) Valid(h Handle) bool {
	_, _, ok := a.locate(h)
	return ok
}

// Free releases the node for h.  The slot is zeroed so that it no longer
// keeps its key or links reachable.  Releasing a handle twice, or one the
// arena never handed out, panics.
func (a *Arena[N]) Free(h Handle) {
	p, slot, ok := a.locate(h)
	if !ok {
		if h == Nil || h >= a.next {
			panic(fmt.Sprintf("arena: free of invalid handle %d", h))
		}
		panic(fmt.Sprintf("arena: double free of handle %d", h))
	}
	var zero N
	p.nodes[slot] = zero
	p.used[slot/64] &^= 1 << (slot % 64)
	a.free = append(a.free, h)
	a.live--
}

// Reset releases every node at once.  Handles obtained before the call must
// not be used afterwards.
func (a *Arena[N]) Reset() {
	a.pages = a.pages[:0]
	a.free = a.free[:0]
	a.next = 1
	a.live = 0
}
