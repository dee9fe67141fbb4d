// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// A Cache holds reusable scratch storage for analyses over one
// function. Allocate with allocBoolSlice, return with freeBoolSlice.
type Cache struct {
	boolSlices [][]bool
}

func (c *Cache) allocBoolSlice(n int) []bool {
	for i := len(c.boolSlices) - 1; i >= 0; i-- {
		s := c.boolSlices[i]
		if cap(s) >= n {
			c.boolSlices = append(c.boolSlices[:i], c.boolSlices[i+1:]...)
			s = s[:n]
			clear(s)
			return s
		}
	}
	return make([]bool, n)
}

func (c *Cache) freeBoolSlice(s []bool) {
	c.boolSlices = append(c.boolSlices, s)
}
