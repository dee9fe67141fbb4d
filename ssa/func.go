// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import (
	"fmt"
	"strings"
)

// An ID identifies a block or value within a function.
type ID int32

// A Pass carries per-pass debug knobs, set by whoever runs a pass
// over the function.
type Pass struct {
	Name  string
	Debug int
	Stats int
}

// A Func represents one function's worth of SSA.
type Func struct {
	Name   string
	Entry  *Block
	Blocks []*Block

	// Pass is the pass currently running on f, if any.
	Pass *Pass

	// OptSize marks functions optimized for size. Passes that trade
	// code size for speed skip these.
	OptSize bool

	Cache *Cache

	bid ID // next block ID
	vid ID // next value ID

	constants map[int64][]*Value // constants cache, keyed by bits

	cachedPostorder []*Block
	cachedIdom      []*Block
	cachedLoopnest  *Loopnest
	cachedSCCs      []SCC
}

// NewFunc returns a new, empty function.
func NewFunc(name string) *Func {
	return &Func{Name: name, Cache: new(Cache)}
}

// NumBlocks returns an integer larger than the id of any Block in f.
func (f *Func) NumBlocks() int { return int(f.bid) }

// NumValues returns an integer larger than the id of any Value in f.
func (f *Func) NumValues() int { return int(f.vid) }

// NewBlock allocates a new Block of the given kind and appends it to
// f.Blocks.
func (f *Func) NewBlock(kind BlockKind) *Block {
	b := &Block{
		ID:   f.bid,
		Kind: kind,
		Func: f,
	}
	f.bid++
	f.Blocks = append(f.Blocks, b)
	f.invalidateCFG()
	return b
}

func (f *Func) newValue(op Op, t *Type, b *Block) *Value {
	v := &Value{
		ID:    f.vid,
		Op:    op,
		Type:  t,
		Block: b,
	}
	f.vid++
	b.Values = append(b.Values, v)
	return v
}

// ConstInt64 returns an OpConst64 value of constant c, materialized
// in the entry block and shared across uses.
func (f *Func) ConstInt64(t *Type, c int64) *Value {
	if f.constants == nil {
		f.constants = make(map[int64][]*Value)
	}
	for _, v := range f.constants[c] {
		if v.Op == OpConst64 && v.Type == t {
			return v
		}
	}
	v := f.Entry.NewValue0I(OpConst64, t, c)
	f.constants[c] = append(f.constants[c], v)
	return v
}

// postorder returns the cached postorder traversal of f.
func (f *Func) postorder() []*Block {
	if f.cachedPostorder == nil {
		f.cachedPostorder = postorder(f)
	}
	return f.cachedPostorder
}

// Postorder returns a postorder traversal of f's blocks.
// Unreachable blocks are omitted.
func (f *Func) Postorder() []*Block { return f.postorder() }

// sccs returns the cached SCCs for f, computing if necessary.
func (f *Func) sccs() []SCC {
	if f.cachedSCCs == nil {
		f.cachedSCCs = f.computeSCCs()
	}
	return f.cachedSCCs
}

// Idom returns a map from block ID to the immediate dominator of
// that block. The entry block and unreachable blocks map to nil.
func (f *Func) Idom() []*Block {
	if f.cachedIdom == nil {
		f.cachedIdom = dominators(f)
	}
	return f.cachedIdom
}

// Loopnest returns the cached loop nest for f.
func (f *Func) Loopnest() *Loopnest {
	if f.cachedLoopnest == nil {
		f.cachedLoopnest = loopnestfor(f)
	}
	return f.cachedLoopnest
}

// invalidateCFG tells f that its CFG has changed.
func (f *Func) invalidateCFG() {
	f.cachedPostorder = nil
	f.cachedIdom = nil
	f.cachedLoopnest = nil
	f.cachedSCCs = nil
}

func (f *Func) Fatalf(msg string, args ...any) {
	panic(fmt.Sprintf("%s: %s", f.Name, fmt.Sprintf(msg, args...)))
}

// LogStat writes a statistics line in a machine-greppable form.
func (f *Func) LogStat(key string, args ...any) {
	value := ""
	for _, a := range args {
		value += fmt.Sprintf("\t%v", a)
	}
	n := "missing_pass"
	if f.Pass != nil {
		n = strings.Replace(f.Pass.Name, " ", "_", -1)
	}
	fmt.Printf("stats\t%s\t%s%s\n", n, key, value)
}

func (f *Func) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "func %s {\n", f.Name)
	for _, b := range f.Blocks {
		fmt.Fprintf(&sb, "  %s\n", b.LongString())
		for _, v := range b.Values {
			fmt.Fprintf(&sb, "    %s\n", v.LongString())
		}
	}
	sb.WriteString("}")
	return sb.String()
}
