// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import (
	"math"
	"testing"
)

func TestSaturatingMul(t *testing.T) {
	if got, sat := saturatingMul(3, 7); got != 21 || sat {
		t.Errorf("saturatingMul(3, 7) = %d, %v", got, sat)
	}
	if got, sat := saturatingMul(math.MaxUint64, 2); got != math.MaxUint64 || !sat {
		t.Errorf("saturatingMul(MaxUint64, 2) = %d, %v", got, sat)
	}
	if got, sat := saturatingMul(1<<32, 1<<32); got != math.MaxUint64 || !sat {
		t.Errorf("saturatingMul(1<<32, 1<<32) = %d, %v", got, sat)
	}
	if got, sat := saturatingMul(1<<32, 1<<31); got != 1<<63 || sat {
		t.Errorf("saturatingMul(1<<32, 1<<31) = %d, %v", got, sat)
	}
}

func TestScaledCount(t *testing.T) {
	if got := scaledCount(600, 2000, 1000); got != 1200 {
		t.Errorf("scaledCount(600, 2000, 1000) = %d, want 1200", got)
	}
	if got := scaledCount(600, 1000, 2000); got != 300 {
		t.Errorf("scaledCount(600, 1000, 2000) = %d, want 300", got)
	}
	// Overflowing products clamp instead of wrapping.
	if got := scaledCount(math.MaxUint64, math.MaxUint64, 1); got != math.MaxUint64 {
		t.Errorf("scaledCount(MaxUint64, MaxUint64, 1) = %d, want MaxUint64", got)
	}
}
