// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package skiplist

import (
	"math/bits"

	"github.com/btcsuite/sset"
)

// maxLevels is the number of levels of the sentinel, which bounds the height
// of every node.
const maxLevels = 32

// pickHeight returns the index of the top level for a new node.  It is the
// number of trailing one bits of a uniform value, so height h is drawn with
// probability 2^-(h+1), capped at maxLevels-1.
func pickHeight(r sset.Rand) int {
	return min(bits.TrailingZeros64(^r.Uint64()), maxLevels-1)
}
