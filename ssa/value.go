// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import (
	"fmt"
	"strings"
)

// A Value represents one operation in the SSA representation.
type Value struct {
	ID    ID
	Op    Op
	Type  *Type
	AuxInt int64
	Aux   any
	Args  []*Value
	Block *Block
	Uses  int32

	// Prof is the size value profile attached to a memory operation
	// call site, if any. It is consumed and rewritten by the memopt
	// pass; the residual tail survives on the default-path operation.
	Prof *ValueProfile
}

func (v *Value) String() string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("v%d", v.ID)
}

// LongString returns the operation and operands in full.
func (v *Value) LongString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "v%d = %s <%s>", v.ID, v.Op, v.Type)
	if opcodeTable[v.Op].constant {
		fmt.Fprintf(&sb, " [%d]", v.AuxInt)
	}
	if v.Aux != nil {
		fmt.Fprintf(&sb, " {%v}", v.Aux)
	}
	for _, a := range v.Args {
		sb.WriteString(" " + a.String())
	}
	return sb.String()
}

func (v *Value) AddArg(w *Value) {
	v.Args = append(v.Args, w)
	w.Uses++
}

func (v *Value) AddArg2(w, x *Value) {
	v.Args = append(v.Args, w, x)
	w.Uses++
	x.Uses++
}

func (v *Value) AddArg3(w, x, y *Value) {
	v.Args = append(v.Args, w, x, y)
	w.Uses++
	x.Uses++
	y.Uses++
}

// SetArg replaces the i'th operand, keeping use counts accurate.
func (v *Value) SetArg(i int, w *Value) {
	v.Args[i].Uses--
	v.Args[i] = w
	w.Uses++
}

func (v *Value) resetArgs() {
	for _, a := range v.Args {
		a.Uses--
	}
	v.Args = v.Args[:0]
}

// reset rewrites v in place to a fresh operation with no operands.
func (v *Value) reset(op Op) {
	v.resetArgs()
	v.Op = op
	v.AuxInt = 0
	v.Aux = nil
	v.Prof = nil
}

// CopyInto makes a copy of v in block b, operands included. Profile
// metadata is deliberately not copied; clones start clean.
func (v *Value) CopyInto(b *Block) *Value {
	c := b.NewValue0(v.Op, v.Type)
	c.AuxInt = v.AuxInt
	c.Aux = v.Aux
	for _, a := range v.Args {
		c.AddArg(a)
	}
	return c
}

func (v *Value) Fatalf(msg string, args ...any) {
	v.Block.Func.Fatalf(msg, args...)
}
