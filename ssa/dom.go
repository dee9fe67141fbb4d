// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// This file contains code to compute the dominator tree
// of a control-flow graph.

// postorder computes a postorder traversal ordering for the
// basic blocks in f. Unreachable blocks will not appear.
func postorder(f *Func) []*Block {
	return postorderWithNumbering(f, nil)
}

type blockAndIndex struct {
	b     *Block
	index int // index is the number of successor edges of b that have already been explored.
}

// postorderWithNumbering provides a DFS postordering.
// This seems to make loop-finding more robust.
func postorderWithNumbering(f *Func, ponums []int32) []*Block {
	valid := make([]bool, f.NumBlocks())
	for i := 0; i < len(valid); i++ {
		valid[i] = true
	}
	return poWithNumberingForValidBlocks(f.Entry, valid, ponums)
}

func poWithNumberingForValidBlocks(entry *Block, valid []bool, ponums []int32) []*Block {
	f := entry.Func
	if len(valid) != f.NumBlocks() {
		f.Fatalf("length of valid blocks is expected to be %d", f.NumBlocks())
	}
	seen := f.Cache.allocBoolSlice(f.NumBlocks())
	defer f.Cache.freeBoolSlice(seen)

	// result ordering
	order := make([]*Block, 0, len(f.Blocks))

	// stack of blocks and next child to visit
	// A constant bound allows this to be stack-allocated. 32 is
	// enough to cover almost every postorderWithNumbering call.
	s := make([]blockAndIndex, 0, 32)
	s = append(s, blockAndIndex{b: entry})
	seen[entry.ID] = true
	for len(s) > 0 {
		tos := len(s) - 1
		x := s[tos]
		b := x.b
		if i := x.index; i < len(b.Succs) {
			s[tos].index++
			bb := b.Succs[i].Block()
			if valid[bb.ID] && !seen[bb.ID] {
				seen[bb.ID] = true
				s = append(s, blockAndIndex{b: bb})
			}
			continue
		}
		s = s[:tos]
		if ponums != nil {
			ponums[b.ID] = int32(len(order))
		}
		order = append(order, b)
	}
	return order
}

// dominators computes the immediate dominator of each block, using
// the iterative algorithm of Cooper, Harvey, and Kennedy over the
// reverse postorder. idom[entry] and idom[unreachable] are nil.
func dominators(f *Func) []*Block {
	po := f.postorder()
	idom := make([]*Block, f.NumBlocks())
	postnum := make([]int, f.NumBlocks())
	for i, b := range po {
		postnum[b.ID] = i
	}
	entry := f.Entry
	idom[entry.ID] = entry

	for changed := true; changed; {
		changed = false
		// Reverse postorder: entry first.
		for i := len(po) - 1; i >= 0; i-- {
			b := po[i]
			if b == entry {
				continue
			}
			var d *Block
			for _, e := range b.Preds {
				p := e.b
				if idom[p.ID] == nil {
					continue
				}
				if d == nil {
					d = p
					continue
				}
				d = intersect(d, p, postnum, idom)
			}
			if d != idom[b.ID] {
				idom[b.ID] = d
				changed = true
			}
		}
	}
	idom[entry.ID] = nil
	return idom
}

// intersect finds the closest dominator of both b and c.
// It requires a postorder numbering of all the blocks.
func intersect(b, c *Block, postnum []int, idom []*Block) *Block {
	for b != c {
		if postnum[b.ID] < postnum[c.ID] {
			b = idom[b.ID]
		} else {
			c = idom[c.ID]
		}
	}
	return b
}

// Dominates reports whether a dominates b (reflexively).
func (f *Func) Dominates(a, b *Block) bool {
	idom := f.Idom()
	for b != nil {
		if b == a {
			return true
		}
		b = idom[b.ID]
	}
	return false
}

// A DomEdge records one CFG edge insertion for a batched dominator
// update.
type DomEdge struct {
	From, To *Block
}

// InsertDomEdges applies a batch of edge insertions to the dominator
// information. The edges must already be present in the CFG. The
// update is applied as a single step after all structural edits, so
// no caller can observe a half-updated tree.
func (f *Func) InsertDomEdges(batch []DomEdge) {
	for _, e := range batch {
		found := false
		for _, s := range e.From.Succs {
			if s.b == e.To {
				found = true
				break
			}
		}
		if !found {
			f.Fatalf("dominator update for absent edge %s -> %s", e.From, e.To)
		}
	}
	// The batch granularity lets us refresh the whole tree at once
	// rather than patching per edge.
	f.cachedPostorder = nil
	f.cachedIdom = nil
	f.cachedIdom = dominators(f)
}
