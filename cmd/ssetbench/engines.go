// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/binarytrie"
	"github.com/btcsuite/sset/dllist"
	"github.com/btcsuite/sset/internal/refset"
	"github.com/btcsuite/sset/scapegoat"
	"github.com/btcsuite/sset/skiplist"
	"github.com/btcsuite/sset/treap"
)

// engine describes a sorted set implementation that can be benchmarked.
type engine struct {
	name string

	// baseline marks the third-party containers the engines of this
	// repository are compared against.
	baseline bool

	newSet func(seed uint64, capacity int) sset.SortedSet[uint64]
}

// engines is the catalog of sorted sets in the order they are reported.
var engines = []engine{{
	name: "treap",
	newSet: func(seed uint64, capacity int) sset.SortedSet[uint64] {
		return treap.New[uint64](sset.WithSeed(seed),
			sset.WithCapacity(capacity))
	},
}, {
	name: "scapegoat",
	newSet: func(_ uint64, capacity int) sset.SortedSet[uint64] {
		return scapegoat.New[uint64](sset.WithCapacity(capacity))
	},
}, {
	name: "skiplist",
	newSet: func(seed uint64, capacity int) sset.SortedSet[uint64] {
		return skiplist.New[uint64](sset.WithSeed(seed),
			sset.WithCapacity(capacity))
	},
}, {
	name: "binarytrie",
	newSet: func(_ uint64, capacity int) sset.SortedSet[uint64] {
		return binarytrie.New[uint64](sset.WithCapacity(capacity))
	},
}, {
	name:     "btree",
	baseline: true,
	newSet: func(uint64, int) sset.SortedSet[uint64] {
		return refset.NewBTree[uint64]()
	},
}, {
	name:     "redblack",
	baseline: true,
	newSet: func(uint64, int) sset.SortedSet[uint64] {
		return refset.NewRedBlack[uint64]()
	},
}}

// engineNames returns the names of all engines.
func engineNames() []string {
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		names = append(names, e.name)
	}
	return names
}

// lookupEngine returns the engine with the passed name or nil if there is
// none.
func lookupEngine(name string) *engine {
	for i := range engines {
		if engines[i].name == name {
			return &engines[i]
		}
	}
	return nil
}

// listImpl describes a positional list implementation.
type listImpl struct {
	name    string
	newList func(seed uint64) sset.List[uint64]
}

var lists = []listImpl{{
	name: "dllist",
	newList: func(uint64) sset.List[uint64] {
		return dllist.New[uint64]()
	},
}, {
	name: "skiplist.List",
	newList: func(seed uint64) sset.List[uint64] {
		return skiplist.NewList[uint64](sset.WithSeed(seed))
	},
}}
