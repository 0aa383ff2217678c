// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"testing"

	"github.com/btcsuite/sset"
)

// BenchmarkAdd benchmarks inserting pseudo-random keys.
func BenchmarkAdd(b *testing.B) {
	rng := sset.NewRand(1)
	tr := New[uint64](sset.WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Add(rng.Uint64())
	}
}

// BenchmarkFind benchmarks successor lookups in a treap of 100k keys.
func BenchmarkFind(b *testing.B) {
	const numItems = 100000
	rng := sset.NewRand(2)
	tr := New[uint64](sset.WithSeed(2), sset.WithCapacity(numItems))
	for i := 0; i < numItems; i++ {
		tr.Add(rng.Uint64())
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Find(rng.Uint64())
	}
}
