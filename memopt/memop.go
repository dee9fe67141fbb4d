// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import "github.com/fkuehnel/memopsize/ssa"

// sizeArgIndex is where the size operand sits, for both the built-in
// block operations and the recognized comparison calls.
const sizeArgIndex = 2

// A MemOp is a uniform view over the two call variants the pass
// handles: a built-in block operation (memcpy/memmove/memset) or a
// recognized library comparison call (memcmp/bcmp).
type MemOp struct {
	I *ssa.Value
}

// Length returns the size operand.
func (mo MemOp) Length() *ssa.Value {
	return mo.I.Args[sizeArgIndex]
}

// SetLength replaces the size operand.
func (mo MemOp) SetLength(v *ssa.Value) {
	mo.I.SetArg(sizeArgIndex, v)
}

// Clone copies the operation into block b. The clone carries no
// profile metadata.
func (mo MemOp) Clone(b *ssa.Block) MemOp {
	return MemOp{I: mo.I.CopyInto(b)}
}

// ResultType returns the operation's result type; void for the
// built-in block operations, an integer for the comparison calls.
func (mo MemOp) ResultType() *ssa.Type {
	return mo.I.Type
}

func (mo MemOp) IsMemmove() bool {
	return mo.I.Op == ssa.OpMemmove
}

func (mo MemOp) IsMemcmp(tli LibFuncs) bool {
	lf, ok := tli.Lookup(mo.I)
	return ok && lf == LibFuncMemcmp
}

func (mo MemOp) IsBcmp(tli LibFuncs) bool {
	lf, ok := tli.Lookup(mo.I)
	return ok && lf == LibFuncBcmp
}

// Name returns the operation kind name for remarks. Anything that is
// neither a built-in block operation nor a recognized comparison call
// has no business being here; reaching it means the driver or the
// recognizer broke their contract.
func (mo MemOp) Name(tli LibFuncs) string {
	switch mo.I.Op {
	case ssa.OpMemcpy:
		return "memcpy"
	case ssa.OpMemmove:
		return "memmove"
	case ssa.OpMemset:
		return "memset"
	}
	if lf, ok := tli.Lookup(mo.I); ok {
		switch lf {
		case LibFuncMemcmp:
			return "memcmp"
		case LibFuncBcmp:
			return "bcmp"
		}
	}
	panic("memop must be a memory intrinsic or a recognized memcmp/bcmp call")
}

// valueProfData reads the size value profile attached to v, limited
// to maxRecords records. Returns false if no profile is attached.
func valueProfData(v *ssa.Value, maxRecords int) ([]ssa.SizeRecord, uint64, bool) {
	p := v.Prof
	if p == nil {
		return nil, 0, false
	}
	recs := p.Records
	if len(recs) > maxRecords {
		recs = recs[:maxRecords]
	}
	return recs, p.Total, true
}
