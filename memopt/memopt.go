// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memopt rewrites memory operation calls whose size operand
// is only known at run time, using the size value profile collected
// for the call site. When a few sizes dominate the observed
// executions, the single generic call is expanded into a multi-way
// dispatch with one constant-size version per hot size and the
// original call on the default path, for later expansion into more
// optimal inline sequences.
package memopt

import (
	"fmt"

	"github.com/fkuehnel/memopsize/ssa"
)

// Stats aggregates the outcome over one function.
type Stats struct {
	Annotated int // call sites with a size value profile considered
	Optimized int // call sites actually transformed
}

// Opt runs the pass over f. It returns the aggregate statistics and
// whether anything changed. The function's CFG and profile metadata
// must be exclusively owned by the caller for the duration.
func Opt(f *ssa.Func, cfg *Config, bfi *BlockFreqInfo, tli LibFuncs, sink RemarkSink) (Stats, bool) {
	if cfg.Disable {
		return Stats{}, false
	}
	if f.OptSize {
		return Stats{}, false
	}
	s := &sizeOpt{f: f, cfg: cfg, bfi: bfi, tli: tli, sink: sink}
	s.perform()
	return s.stats, s.changed
}

type sizeOpt struct {
	f    *ssa.Func
	cfg  *Config
	bfi  *BlockFreqInfo
	tli  LibFuncs
	sink RemarkSink

	changed  bool
	worklist []MemOp
	stats    Stats
}

func (s *sizeOpt) debug() int {
	if s.f.Pass == nil {
		return 0
	}
	return s.f.Pass.Debug
}

// perform scans the function once, then works through the collected
// call sites in order. Each transform's structural edits complete
// before the next site is looked at; later worklist entries may live
// in blocks an earlier transform just split.
func (s *sizeOpt) perform() {
	s.worklist = s.worklist[:0]
	s.scan()

	for _, mo := range s.worklist {
		s.stats.Annotated++
		if s.performOne(mo) {
			s.changed = true
			s.stats.Optimized++
			if s.debug() > 0 {
				fmt.Printf("MemOP call %s in %s is transformed\n", mo.Name(s.tli), s.f.Name)
			}
		}
	}
}

// scan builds the worklist: built-in block operations and recognized
// comparison calls, both with a non-constant size operand. Sites with
// a compile-time-constant size never enter the worklist.
func (s *sizeOpt) scan() {
	for _, b := range s.f.Blocks {
		for _, v := range b.Values {
			switch v.Op {
			case ssa.OpMemcpy, ssa.OpMemmove, ssa.OpMemset:
				if isConstSize(v.Args[sizeArgIndex]) {
					continue
				}
				s.worklist = append(s.worklist, MemOp{I: v})
			case ssa.OpStaticCall:
				if _, ok := s.tli.Lookup(v); !ok {
					continue
				}
				if len(v.Args) <= sizeArgIndex || isConstSize(v.Args[sizeArgIndex]) {
					continue
				}
				s.worklist = append(s.worklist, MemOp{I: v})
			}
		}
	}
}

func isConstSize(v *ssa.Value) bool {
	return v.Op == ssa.OpConst64
}

// performOne decides and, when worthwhile, rewrites one call site.
// Every rejection is a normal no-transform outcome; only contract
// violations panic.
func (s *sizeOpt) performOne(mo MemOp) bool {
	if mo.I == nil {
		panic("nil memop in worklist")
	}
	cfg := s.cfg

	// Move semantics make constant-size duplication unsafe to reorder
	// or duplicate trivially; excluded categorically.
	if mo.IsMemmove() {
		return false
	}
	if !cfg.OptMemcmpBcmp && (mo.IsMemcmp(s.tli) || mo.IsBcmp(s.tli)) {
		return false
	}

	maxNumPromotions := cfg.MaxVersion + 2
	recs, totalCount, ok := valueProfData(mo.I, maxNumPromotions)
	if !ok {
		return false
	}

	actualCount := totalCount
	savedTotalCount := totalCount
	if cfg.ScaleCounts {
		// The profile's own total may have drifted from reality after
		// earlier transformations; prefer the measured block count.
		// No measurement, no transform.
		bbCount, ok := s.bfi.BlockProfileCount(mo.I.Block)
		if !ok {
			return false
		}
		actualCount = bbCount
	}

	if s.debug() > 1 {
		fmt.Printf("Read one memory intrinsic profile with count %d\n", actualCount)
		for _, vd := range recs {
			fmt.Printf("  (%d,%d)\n", vd.Size, vd.Count)
		}
	}

	if actualCount < cfg.CountThreshold {
		return false
	}
	// Skip if the total value profiled count is 0, in which case we
	// can't scale up the counts properly (and there is no profitable
	// transformation).
	if totalCount == 0 {
		return false
	}

	totalCount = actualCount
	if cfg.ScaleCounts && s.debug() > 1 {
		fmt.Printf("Scale counts: numerator = %d denominator = %d\n", actualCount, savedTotalCount)
	}

	cs, ok := selectCandidates(cfg, recs, totalCount, savedTotalCount)
	if !ok {
		return false
	}

	if s.debug() > 1 {
		fmt.Printf("Optimize one memory intrinsic call to %d versions (covering %d out of %d)\n",
			len(cs.cands), cs.sumForOpt, totalCount)
	}

	s.rewrite(mo, recs, cs)

	if s.sink != nil {
		s.sink.Emit(Remark{
			Name:     mo.Name(s.tli),
			Count:    cs.sumForOpt,
			Total:    totalCount,
			Versions: len(cs.cands),
		})
	}
	return true
}
