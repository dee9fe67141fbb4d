// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import "fmt"

// A Loopnest records the natural loops of a function and which loop
// each block belongs to.
type Loopnest struct {
	f              *Func
	b2l            []*loop  // block ID -> innermost containing loop
	po             []*Block // cached postorder
	loops          []*loop  // all loops found
	hasIrreducible bool     // true if any irreducible loops detected
}

type loop struct {
	header  *Block
	outer   *loop
	isInner bool
	nBlocks int32
	depth   int16
}

func (l *loop) LongString() string {
	j := ""
	if l.isInner {
		j = ", inner"
	}
	return fmt.Sprintf("hdr=%s, depth=%d%s", l.header, l.depth, j)
}

// loopnestfor computes loop nest information using Bourdoncle's algorithm.
//
// The algorithm:
//  1. Compute SCCs of the CFG (cached)
//  2. Each non-trivial SCC with single entry is a reducible loop; header = entry target
//  3. Remove header and recursively partition to find nested loops
//  4. Build loop tree based on containment
func loopnestfor(f *Func) *Loopnest {
	po := f.postorder()
	b2l := make([]*loop, f.NumBlocks())
	loops := make([]*loop, 0)
	sawIrred := false

	if f.Pass != nil && f.Pass.Debug > 2 {
		fmt.Printf("loop finding (Bourdoncle) in %s\n", f.Name)
	}

	sccs := f.sccs()
	for i := range sccs {
		scc := &sccs[i]
		if !scc.IsLoop() {
			continue
		}
		if !scc.IsReducible() {
			sawIrred = true
			continue
		}
		processLoop(f, scc, nil, b2l, &loops, &sawIrred)
	}

	computeLoopDepths(loops)

	ln := &Loopnest{
		f:              f,
		b2l:            b2l,
		po:             po,
		loops:          loops,
		hasIrreducible: sawIrred,
	}

	if f.Pass != nil && f.Pass.Debug > 1 && len(loops) > 0 {
		printLoopnest(f, b2l, loops)
	}
	if f.Pass != nil && f.Pass.Stats > 0 && len(loops) > 0 {
		logLoopStats(f, loops)
	}
	return ln
}

// processLoop recursively processes an SCC using Bourdoncle's decomposition.
func processLoop(f *Func, scc *SCC, outer *loop, b2l []*loop, loops *[]*loop, sawIrred *bool) {
	if len(scc.Blocks) == 0 {
		return
	}

	header := scc.Header()
	if header == nil {
		// Irreducible -> not processing.
		*sawIrred = true
		return
	}

	l := &loop{
		header:  header,
		outer:   outer,
		isInner: true,
		nBlocks: 1,
	}
	*loops = append(*loops, l)
	b2l[header.ID] = l

	// Mark outer as non-inner since it contains us.
	if outer != nil {
		outer.isInner = false
	}

	// Collect non-header blocks.
	remaining := make([]*Block, 0, len(scc.Blocks)-1)
	for _, b := range scc.Blocks {
		if b != header {
			remaining = append(remaining, b)
		}
	}

	if len(remaining) == 0 {
		return
	}

	// Find nested SCCs with the header removed.
	subSccs := sccSubgraph(f, remaining, header)

	for i := range subSccs {
		sub := &subSccs[i]
		if sub.IsLoop() {
			if !sub.IsReducible() {
				*sawIrred = true
			}
			processLoop(f, sub, l, b2l, loops, sawIrred)
		} else {
			// Trivial SCC: blocks belong to the current loop.
			for _, b := range sub.Blocks {
				if b2l[b.ID] == nil {
					b2l[b.ID] = l
					l.nBlocks++
				}
			}
		}
	}
}

// computeLoopDepths calculates nesting depth for all loops.
func computeLoopDepths(loops []*loop) {
	for _, l := range loops {
		if l.depth != 0 {
			// Already computed because it is an ancestor of
			// a previous loop.
			continue
		}
		// Find depth by walking up the loop tree.
		d := int16(0)
		for x := l; x != nil; x = x.outer {
			if x.depth != 0 {
				d += x.depth
				break
			}
			d++
		}
		// Set depth for every ancestor.
		for x := l; x != nil; x = x.outer {
			if x.depth != 0 {
				break
			}
			x.depth = d
			d--
		}
	}
	// Double-check depths.
	for _, l := range loops {
		want := int16(1)
		if l.outer != nil {
			want = l.outer.depth + 1
		}
		if l.depth != want {
			l.header.Fatalf("bad depth calculation for loop %s: got %d want %d", l.header, l.depth, want)
		}
	}
}

func printLoopnest(f *Func, b2l []*loop, loops []*loop) {
	fmt.Printf("Loops in %s:\n", f.Name)
	for _, l := range loops {
		fmt.Printf("%s, b=", l.LongString())
		for _, b := range f.Blocks {
			if b2l[b.ID] == l {
				fmt.Printf(" %s", b)
			}
		}
		fmt.Print("\n")
	}
	fmt.Printf("Nonloop blocks in %s:", f.Name)
	for _, b := range f.Blocks {
		if b2l[b.ID] == nil {
			fmt.Printf(" %s", b)
		}
	}
	fmt.Print("\n")
}

func logLoopStats(f *Func, loops []*loop) {

	// Note stats for non-innermost loops are slightly flawed because
	// they don't account for inner loop exits that span multiple levels.

	for _, l := range loops {
		inner := 0
		if l.isInner {
			inner++
		}

		f.LogStat("loopstats in "+f.Name+":",
			l.depth, "depth",
			inner, "is_inner", l.nBlocks, "n_blocks")
	}
}

// Depth returns the loop nesting level of block b.
func (ln *Loopnest) Depth(b ID) int16 {
	if l := ln.b2l[b]; l != nil {
		return l.depth
	}
	return 0
}

// HasIrreducible reports whether any irreducible loop was seen.
func (ln *Loopnest) HasIrreducible() bool { return ln.hasIrreducible }
