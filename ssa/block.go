// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import (
	"fmt"
	"strings"
)

// A Block represents a basic block in the control flow graph.
type Block struct {
	ID   ID
	Kind BlockKind
	Func *Func

	// Name is an optional debug label ("MemOP.Merge" etc). It has no
	// semantic meaning and only shows up in LongString output.
	Name string

	// Likely is a static branch hint for BlockIf.
	Likely BranchPrediction

	Preds []Edge
	Succs []Edge

	Values []*Value

	// Controls holds the control value: the branch condition for
	// BlockIf, the dispatch key for BlockSwitch, the final memory for
	// BlockExit. Nil entry for BlockPlain.
	Controls [1]*Value

	// Cases holds the dispatch keys of a BlockSwitch, one per case
	// successor. Succs[0] is the default arm; Succs[1+i] is the arm
	// selected when the control equals Cases[i].
	Cases []int64

	// Weights holds profile branch weights, parallel to Succs.
	// Empty when no profile information is attached.
	Weights []uint64
}

type BlockKind int8

const (
	BlockInvalid BlockKind = iota
	BlockPlain             // one successor
	BlockIf                // two successors: then, else
	BlockSwitch            // default successor plus one per case
	BlockExit              // no successors
)

func (k BlockKind) String() string {
	switch k {
	case BlockInvalid:
		return "Invalid"
	case BlockPlain:
		return "Plain"
	case BlockIf:
		return "If"
	case BlockSwitch:
		return "Switch"
	case BlockExit:
		return "Exit"
	}
	return "?"
}

type BranchPrediction int8

const (
	BranchUnlikely BranchPrediction = -1
	BranchUnknown  BranchPrediction = 0
	BranchLikely   BranchPrediction = 1
)

// An Edge represents a CFG edge. The same information is stored on
// both endpoints: if b.Succs[i] = {c, j} then c.Preds[j] = {b, i}.
type Edge struct {
	b *Block
	i int
}

func (e Edge) Block() *Block { return e.b }
func (e Edge) Index() int    { return e.i }

func (b *Block) String() string {
	if b == nil {
		return "nil"
	}
	return fmt.Sprintf("b%d", b.ID)
}

func (b *Block) LongString() string {
	var sb strings.Builder
	sb.WriteString(b.String())
	if b.Name != "" {
		fmt.Fprintf(&sb, " (%s)", b.Name)
	}
	fmt.Fprintf(&sb, ": %s", b.Kind)
	if c := b.Controls[0]; c != nil {
		fmt.Fprintf(&sb, " %s", c)
	}
	if len(b.Cases) > 0 {
		fmt.Fprintf(&sb, " %v", b.Cases)
	}
	sb.WriteString(" ->")
	for _, e := range b.Succs {
		sb.WriteString(" " + e.b.String())
	}
	return sb.String()
}

// NewValue0 returns a new value in the block with no arguments.
func (b *Block) NewValue0(op Op, t *Type) *Value {
	v := b.Func.newValue(op, t, b)
	return v
}

// NewValue1 returns a new value in the block with one argument.
func (b *Block) NewValue1(op Op, t *Type, arg *Value) *Value {
	v := b.Func.newValue(op, t, b)
	v.AddArg(arg)
	return v
}

// NewValue2 returns a new value in the block with two arguments.
func (b *Block) NewValue2(op Op, t *Type, arg0, arg1 *Value) *Value {
	v := b.Func.newValue(op, t, b)
	v.AddArg2(arg0, arg1)
	return v
}

// NewValue0I returns a new value in the block with an auxint and no
// arguments.
func (b *Block) NewValue0I(op Op, t *Type, auxint int64) *Value {
	v := b.Func.newValue(op, t, b)
	v.AuxInt = auxint
	return v
}

// AddEdgeTo adds an edge from b to c.
func (b *Block) AddEdgeTo(c *Block) {
	i := len(b.Succs)
	j := len(c.Preds)
	b.Succs = append(b.Succs, Edge{c, j})
	c.Preds = append(c.Preds, Edge{b, i})
	b.Func.invalidateCFG()
}

// removePred removes the i'th input edge from b. It is the caller's
// responsibility to fix up phi argument lists in b.
func (b *Block) removePred(i int) {
	n := len(b.Preds) - 1
	if i != n {
		e := b.Preds[n]
		b.Preds[i] = e
		// Update the other end of the edge we moved.
		e.b.Succs[e.i].i = i
	}
	b.Preds[n] = Edge{}
	b.Preds = b.Preds[:n]
	b.Func.invalidateCFG()
}

// removeSucc removes the i'th output edge from b.
func (b *Block) removeSucc(i int) {
	n := len(b.Succs) - 1
	if i != n {
		e := b.Succs[n]
		b.Succs[i] = e
		e.b.Preds[e.i].i = i
	}
	b.Succs[n] = Edge{}
	b.Succs = b.Succs[:n]
	b.Func.invalidateCFG()
}

// removePhiArg removes the i'th arg from phi v, matching a removePred
// on its block.
func (b *Block) removePhiArg(v *Value, i int) {
	n := len(b.Preds)
	if len(v.Args) != n+1 {
		b.Fatalf("phi %s has %d args, expected %d", v, len(v.Args), n+1)
	}
	v.Args[i].Uses--
	v.Args[i] = v.Args[n]
	v.Args = v.Args[:n]
}

// Reset sets the block to kind and clears its control and per-kind
// metadata. Edges are left alone.
func (b *Block) Reset(kind BlockKind) {
	b.Kind = kind
	if c := b.Controls[0]; c != nil {
		c.Uses--
		b.Controls[0] = nil
	}
	b.Cases = nil
	b.Weights = nil
	b.Likely = BranchUnknown
}

// SetControl installs v as the block's control value.
func (b *Block) SetControl(v *Value) {
	if c := b.Controls[0]; c != nil {
		c.Uses--
	}
	b.Controls[0] = v
	if v != nil {
		v.Uses++
	}
}

// resetWithControl resets the block to kind with control v.
func (b *Block) resetWithControl(kind BlockKind, v *Value) {
	b.Reset(kind)
	b.SetControl(v)
}

// truncateValues drops all values from index i on.
func (b *Block) truncateValues(i int) {
	b.Values = b.Values[:i]
}

func (b *Block) Fatalf(msg string, args ...any) {
	b.Func.Fatalf(msg, args...)
}
