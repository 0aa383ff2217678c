// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedRand uint64

func (r fixedRand) Uint64() uint64 { return uint64(r) }

func TestNewOptions(t *testing.T) {
	t.Parallel()

	o := NewOptions()
	require.NotNil(t, o.Rand, "default generator missing")
	require.Zero(t, o.Capacity)

	o = NewOptions(WithRand(fixedRand(7)), WithCapacity(64), nil)
	require.Equal(t, uint64(7), o.Rand.Uint64())
	require.Equal(t, 64, o.Capacity)

	// A nil generator and a bad capacity leave the defaults alone.
	o = NewOptions(WithRand(nil), WithCapacity(-3))
	require.NotNil(t, o.Rand)
	require.Zero(t, o.Capacity)
}

func TestWithSeedReproducible(t *testing.T) {
	t.Parallel()

	a := NewOptions(WithSeed(42)).Rand
	b := NewOptions(WithSeed(42)).Rand
	c := NewOptions(WithSeed(43)).Rand
	var differ bool
	for i := 0; i < 16; i++ {
		x, y, z := a.Uint64(), b.Uint64(), c.Uint64()
		require.Equal(t, x, y, "draw %d differs for equal seeds", i)
		if x != z {
			differ = true
		}
	}
	require.True(t, differ, "distinct seeds produced identical streams")
}
