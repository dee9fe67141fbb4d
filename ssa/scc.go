// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import "iter"

// This file implements strongly connected component (SCC) detection for
// control-flow graphs using the Kosaraju-Sharir algorithm.
//
// Kosaraju-Sharir was chosen over Tarjan's single-pass algorithm because it is
// straightforward to implement iteratively and requires no auxiliary data on
// graph nodes. Additionally, the first DFS pass (postorder) is typically already
// computed and cached, making this choice effectively free.

// An SCC is one strongly connected component of the control-flow
// graph. Block order within the component is unspecified.
type SCC struct {
	Blocks []*Block
}

// IsLoop reports whether the component contains a cycle: more than
// one block, or a single block with a self edge.
func (s *SCC) IsLoop() bool {
	if len(s.Blocks) > 1 {
		return true
	}
	b := s.Blocks[0]
	for _, e := range b.Succs {
		if e.b == b {
			return true
		}
	}
	return false
}

// Header returns the unique entry block of the component: the one
// block with a predecessor outside it. Returns nil if the component
// has several entries (irreducible) or none that qualifies.
func (s *SCC) Header() *Block {
	inScc := make(map[*Block]bool, len(s.Blocks))
	for _, b := range s.Blocks {
		inScc[b] = true
	}
	var header *Block
	for _, b := range s.Blocks {
		entered := false
		for _, e := range b.Preds {
			if !inScc[e.b] {
				entered = true
				break
			}
		}
		if b == b.Func.Entry {
			entered = true
		}
		if entered {
			if header != nil {
				return nil
			}
			header = b
		}
	}
	return header
}

// IsReducible reports whether the component has a single entry.
func (s *SCC) IsReducible() bool { return s.Header() != nil }

// SCCs returns the strongly connected components of f's control-flow
// graph, topologically sorted by the kernel DAG.
//
// Properties:
//   - The first SCC contains only the entry block.
//   - Unreachable blocks are excluded from the result.
//   - The topological order of the kernel DAG may not be unique.
//
// The iterator pattern avoids allocating the result slice when callers
// only need a single traversal.
//
// Example:
//
//	Given:  b1 → b2, b2 → [b3, b4], b3 → b2, b4 → b5
//	Result: [[b1], [b2, b3], [b4], [b5]]
//
// The second pass uses BFS with reversed edges for simplicity.
func (f *Func) SCCs() iter.Seq[[]*Block] {
	return func(yield func([]*Block) bool) {
		// First DFS pass: compute postorder on original edges.
		// The last element is the function entry block.
		po := f.postorder()

		valid := f.Cache.allocBoolSlice(f.NumBlocks())
		defer f.Cache.freeBoolSlice(valid)
		for _, b := range po {
			valid[b.ID] = true
		}

		for _, scc := range sccsOfOrder(f, po, valid) {
			if !yield(scc.Blocks) {
				return
			}
		}
	}
}

// computeSCCs returns all SCCs as a slice for callers that need
// random access. Prefer [Func.SCCs] when iterating once.
func (f *Func) computeSCCs() []SCC {
	po := f.postorder()
	valid := f.Cache.allocBoolSlice(f.NumBlocks())
	defer f.Cache.freeBoolSlice(valid)
	for _, b := range po {
		valid[b.ID] = true
	}
	return sccsOfOrder(f, po, valid)
}

// sccSubgraph returns the SCCs of the subgraph induced by blocks,
// ignoring edges from header. Used to find nested loops once a loop
// header is peeled off.
func sccSubgraph(f *Func, blocks []*Block, header *Block) []SCC {
	valid := f.Cache.allocBoolSlice(f.NumBlocks())
	defer f.Cache.freeBoolSlice(valid)
	for _, b := range blocks {
		valid[b.ID] = true
	}

	// The subgraph may have several entries; run the first DFS pass
	// from each not-yet-seen block to cover all of it.
	seen := f.Cache.allocBoolSlice(f.NumBlocks())
	defer f.Cache.freeBoolSlice(seen)
	var po []*Block
	for _, b := range blocks {
		if seen[b.ID] {
			continue
		}
		for _, x := range poWithNumberingForValidBlocks(b, valid, nil) {
			if !seen[x.ID] {
				seen[x.ID] = true
				po = append(po, x)
			}
		}
	}
	return sccsOfOrder(f, po, valid)
}

// sccsOfOrder runs the second Kosaraju-Sharir pass: traverse
// reversed edges in reverse postorder; each connected component
// found is an SCC.
func sccsOfOrder(f *Func, po []*Block, valid []bool) []SCC {
	seen := f.Cache.allocBoolSlice(f.NumBlocks())
	defer f.Cache.freeBoolSlice(seen)

	var result []SCC
	queue := make([]*Block, 0, len(po))

	for i := len(po) - 1; i >= 0; i-- {
		leader := po[i]
		if seen[leader.ID] {
			continue
		}

		// BFS to find all blocks in this SCC.
		scc := make([]*Block, 0, 4)
		queue = append(queue, leader)
		seen[leader.ID] = true

		for len(queue) > 0 {
			b := queue[0]
			queue = queue[1:]
			scc = append(scc, b)

			for _, e := range b.Preds {
				pred := e.b
				if valid[pred.ID] && !seen[pred.ID] {
					seen[pred.ID] = true
					queue = append(queue, pred)
				}
			}
		}

		result = append(result, SCC{Blocks: scc})
	}
	return result
}
