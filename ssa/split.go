// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// SplitBlockAt splits b before the value at index i. A new block
// receives b.Values[i:] together with b's kind, control, and
// successor edges; b becomes a plain block jumping to the new one.
// Phi argument positions in successors are preserved because the
// edge indices do not change. Returns the new block.
func (f *Func) SplitBlockAt(b *Block, i int) *Block {
	if i < 0 || i > len(b.Values) {
		f.Fatalf("split index %d out of range in %s", i, b)
	}
	nb := f.NewBlock(b.Kind)
	nb.Likely = b.Likely
	nb.Controls = b.Controls
	nb.Cases = b.Cases
	nb.Weights = b.Weights

	// Move the tail of the value list.
	nb.Values = append(nb.Values, b.Values[i:]...)
	for _, v := range nb.Values {
		v.Block = nb
	}
	b.truncateValues(i)

	// Hand b's successor edges to nb; the far ends keep their pred
	// indices, so phis stay consistent.
	nb.Succs = b.Succs
	for _, e := range nb.Succs {
		e.b.Preds[e.i].b = nb
	}

	b.Succs = nil
	b.Kind = BlockPlain
	b.Controls[0] = nil
	b.Cases = nil
	b.Weights = nil
	b.Likely = BranchUnknown
	b.AddEdgeTo(nb)

	f.invalidateCFG()
	return nb
}
