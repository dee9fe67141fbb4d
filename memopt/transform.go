// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import (
	"fmt"
	"math"

	"github.com/fkuehnel/memopsize/ssa"
)

// rewrite expands one profitable call site into a size dispatch.
//
// The block holding the operation is split twice: first immediately
// before the operation, leaving the default path holding the original
// call, then immediately after it, producing the merge block with the
// remaining values. The head block becomes a switch on the size
// operand, with one fresh plain block per candidate holding a clone
// of the operation with that constant size. For a value-producing
// operation a phi in the merge block takes over all former uses.
//
// CFG layout afterwards, for k candidates:
//
//	head (switch on size) -> default, case_1, ..., case_k
//	default, case_i       -> merge
func (s *sizeOpt) rewrite(mo MemOp, recs []ssa.SizeRecord, cs candidateSet) {
	f := s.f
	bb := mo.I.Block
	origFreq := s.bfi.Freq(bb)

	sizeVar := mo.Length()
	if !sizeVar.Type.IsInteger() {
		f.Fatalf("memop size operand %s has non-integer type %s", sizeVar, sizeVar.Type)
	}

	idx := -1
	for i, v := range bb.Values {
		if v == mo.I {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.Fatalf("memop %s not found in its block %s", mo.I, bb)
	}

	defaultBB := f.SplitBlockAt(bb, idx)
	defaultBB.Name = "MemOP.Default"
	mergeBB := f.SplitBlockAt(defaultBB, 1)
	mergeBB.Name = "MemOP.Merge"

	// Both successors of the dispatch rejoin here; the merge block
	// runs exactly as often as the original block did.
	s.bfi.SetFreq(mergeBB, origFreq)

	// A value-producing operation needs a phi at the merge to carry
	// whichever version ran. All existing uses move to the phi; the
	// original operation becomes the default-arm incoming value, and
	// the clones follow as their edges are added.
	var phi *ssa.Value
	if !mo.ResultType().IsVoid() {
		phi = mergeBB.NewValue0(ssa.OpPhi, mo.ResultType())
		for i := len(mergeBB.Values) - 1; i > 0; i-- {
			mergeBB.Values[i] = mergeBB.Values[i-1]
		}
		mergeBB.Values[0] = phi
		replaceAllUses(f, mo.I, phi)
		phi.AddArg(mo.I)
	}

	// The head block's fallthrough edge to the default path is already
	// in place from the split; it doubles as the switch's default arm.
	bb.Reset(ssa.BlockSwitch)
	bb.SetControl(sizeVar)

	// The consumed profile comes off; what selection left unclaimed
	// goes back on the default-path operation, in raw counts, so a
	// later run sees only the residue.
	mo.I.Prof = nil
	if cs.savedRemain > 0 || len(cs.cands) != len(recs) {
		residual := append([]ssa.SizeRecord(nil), recs[len(cs.cands):]...)
		mo.I.Prof = &ssa.ValueProfile{Records: residual, Total: cs.savedRemain}
	}

	var domBatch []ssa.DomEdge
	weights := []uint64{cs.defaultCount}
	for _, c := range cs.cands {
		caseBB := f.NewBlock(ssa.BlockPlain)
		caseBB.Name = fmt.Sprintf("MemOP.Case.%d", c.size)
		nmo := mo.Clone(caseBB)
		nmo.SetLength(f.ConstInt64(sizeVar.Type, c.size))
		caseBB.AddEdgeTo(mergeBB)
		bb.AddEdgeTo(caseBB)
		bb.Cases = append(bb.Cases, c.size)
		if phi != nil {
			phi.AddArg(nmo.I)
		}
		weights = append(weights, c.count)
		domBatch = append(domBatch,
			ssa.DomEdge{From: bb, To: caseBB},
			ssa.DomEdge{From: caseBB, To: mergeBB})
	}
	f.InsertDomEdges(domBatch)

	// Branch weights must fit the 32-bit metadata domain; one shared
	// divisor keeps the arms' ratios intact.
	scale := uint64(1)
	if cs.maxCount >= math.MaxUint32 {
		scale = cs.maxCount/math.MaxUint32 + 1
	}
	for i, w := range weights {
		weights[i] = w / scale
	}
	bb.Weights = weights

	if s.debug() > 2 {
		fmt.Printf("%s\n", f.String())
	}
}

// replaceAllUses redirects every use of old to new, argument and
// control positions alike. new must not already use old.
func replaceAllUses(f *ssa.Func, old, new *ssa.Value) {
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			if v == new {
				continue
			}
			for i, a := range v.Args {
				if a == old {
					v.SetArg(i, new)
				}
			}
		}
		if b.Controls[0] == old {
			b.SetControl(new)
		}
	}
}
