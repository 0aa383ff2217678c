// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sset

import (
	"math/rand/v2"
	"time"
)

// Rand is a source of uniformly distributed 64-bit values.  *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Uint64() uint64
}

// Options holds the construction settings shared by all engines.  Engines
// build it with NewOptions and ignore the fields they have no use for.
type Options struct {
	// Rand feeds treap priorities and skip list heights.
	Rand Rand

	// Capacity is a hint for the number of nodes to reserve up front.
	Capacity int
}

// Option configures an engine at construction time.
type Option func(*Options)

// WithRand makes the engine draw from r.  A nil r is ignored.
func WithRand(r Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed makes the engine draw from a PCG generator seeded with seed so
// that the resulting structure is reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Rand = NewRand(seed)
	}
}

// WithCapacity reserves room for n nodes.  Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Capacity = n
		}
	}
}

// NewRand returns a PCG generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewOptions applies opts over the defaults.  When no generator is given, a
// generator seeded from the clock is created once for the engine.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Rand == nil {
		o.Rand = NewRand(uint64(time.Now().UnixNano()))
	}
	return o
}
