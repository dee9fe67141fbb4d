// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// A SizeRecord is one observed size operand value and how often it
// occurred.
type SizeRecord struct {
	Size  int64
	Count uint64
}

// A ValueProfile is the runtime-collected histogram of size operand
// values at a call site. Records are sorted by descending count; the
// profile writer guarantees the order. Total covers all observations,
// including any not individually recorded.
type ValueProfile struct {
	Records []SizeRecord
	Total   uint64
}
