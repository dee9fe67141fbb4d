// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import "github.com/fkuehnel/memopsize/ssa"

// A BlockFreqInfo holds per-block execution estimates for one
// function.
//
// Two kinds of numbers live here and they are kept apart on purpose.
// Measured block counts come from the embedder's profile via
// SetBlockCount and are the only numbers BlockProfileCount reports;
// count normalization trusts nothing else. Relative frequencies start
// from a static loop-depth estimate, can be adjusted with SetFreq,
// and only order blocks against each other.
type BlockFreqInfo struct {
	f      *ssa.Func
	counts map[ssa.ID]uint64 // measured execution counts
	freqs  map[ssa.ID]uint64 // relative frequencies
}

const entryFreq = 1 << 10

// NewBlockFreqInfo computes the static frequency estimate for f:
// 8x per loop-nesting level, conditional arms split by the branch
// hint when there is one.
func NewBlockFreqInfo(f *ssa.Func) *BlockFreqInfo {
	bfi := &BlockFreqInfo{
		f:      f,
		counts: make(map[ssa.ID]uint64),
		freqs:  make(map[ssa.ID]uint64, f.NumBlocks()),
	}
	ln := f.Loopnest()
	for _, b := range f.Blocks {
		shift := 3 * int(ln.Depth(b.ID))
		if shift > 40 {
			shift = 40
		}
		freq := uint64(entryFreq) << shift
		if len(b.Preds) == 1 {
			if p := b.Preds[0].Block(); p.Kind == ssa.BlockIf {
				freq = condArmFreq(freq, p, b.Preds[0].Index())
			}
		}
		bfi.freqs[b.ID] = freq
	}
	return bfi
}

// condArmFreq splits a conditional arm's share of freq. i is the
// successor index of this arm in the branch p.
func condArmFreq(freq uint64, p *ssa.Block, i int) uint64 {
	isThen := i == 0
	switch {
	case p.Likely == ssa.BranchLikely && isThen,
		p.Likely == ssa.BranchUnlikely && !isThen:
		return freq * 7 / 8
	case p.Likely == ssa.BranchLikely && !isThen,
		p.Likely == ssa.BranchUnlikely && isThen:
		return freq / 8
	default:
		return freq / 2
	}
}

// BlockProfileCount returns the measured execution count for b, if
// one was supplied.
func (bfi *BlockFreqInfo) BlockProfileCount(b *ssa.Block) (uint64, bool) {
	c, ok := bfi.counts[b.ID]
	return c, ok
}

// SetBlockCount records the measured execution count for b.
func (bfi *BlockFreqInfo) SetBlockCount(b *ssa.Block, count uint64) {
	bfi.counts[b.ID] = count
}

// Freq returns the relative frequency of b. Blocks created after the
// estimate was computed report zero until SetFreq is called.
func (bfi *BlockFreqInfo) Freq(b *ssa.Block) uint64 {
	return bfi.freqs[b.ID]
}

// SetFreq overrides the relative frequency of b. Structural rewrites
// use it to hand a split block its share of the original frequency.
func (bfi *BlockFreqInfo) SetFreq(b *ssa.Block, freq uint64) {
	bfi.freqs[b.ID] = freq
}
