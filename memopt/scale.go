// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import "math/bits"

// saturatingMul returns a*b, clamped to the maximum uint64 on
// overflow. The second result reports whether clamping happened.
func saturatingMul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0), true
	}
	return lo, false
}

// scaledCount rescales count by num/den with saturating arithmetic.
// Profile counts must never wrap or trap here; a clamped result only
// flattens a count that was absurdly large to begin with.
func scaledCount(count, num, den uint64) uint64 {
	p, _ := saturatingMul(count, num)
	return p / den
}
