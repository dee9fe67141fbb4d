// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import (
	"fmt"
	"io"
)

// A Remark describes one successful specialization, for consumption
// by whatever diagnostics machinery hosts the pass.
type Remark struct {
	Name     string // operation kind: "memcpy", "memset", "memcmp", ...
	Count    uint64 // count covered by the specialized versions
	Total    uint64 // total count at the site
	Versions int    // number of versions produced
}

// A RemarkSink receives one remark per transformed site.
type RemarkSink interface {
	Emit(Remark)
}

// A RemarkCollector is a RemarkSink that records everything, for
// tests and reporting tools.
type RemarkCollector struct {
	Remarks []Remark
}

func (c *RemarkCollector) Emit(r Remark) {
	c.Remarks = append(c.Remarks, r)
}

// A RemarkWriter is a RemarkSink that prints one line per remark.
type RemarkWriter struct {
	W io.Writer
}

func (w *RemarkWriter) Emit(r Remark) {
	fmt.Fprintf(w.W, "memopt: %s: %d version(s) covering %d of %d\n",
		r.Name, r.Versions, r.Count, r.Total)
}
