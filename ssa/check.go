// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// CheckFunc checks invariants of f. It panics on the first violation
// found; tests run it after every construction and transformation.
func CheckFunc(f *Func) {
	if f.Entry == nil {
		f.Fatalf("function has no entry block")
	}
	blockMark := make([]bool, f.NumBlocks())
	for _, b := range f.Blocks {
		if blockMark[b.ID] {
			f.Fatalf("block %s appears twice in block list", b)
		}
		blockMark[b.ID] = true
		if b.Func != f {
			f.Fatalf("%s.Func incorrect", b)
		}

		// Edge symmetry.
		for i, e := range b.Succs {
			if e.b.Preds[e.i].b != b || e.b.Preds[e.i].i != i {
				f.Fatalf("broken successor edge %s -> %s", b, e.b)
			}
		}
		for i, e := range b.Preds {
			if e.b.Succs[e.i].b != b || e.b.Succs[e.i].i != i {
				f.Fatalf("broken predecessor edge %s <- %s", b, e.b)
			}
		}

		switch b.Kind {
		case BlockPlain:
			if len(b.Succs) != 1 {
				f.Fatalf("plain block %s has %d successors", b, len(b.Succs))
			}
			if b.Controls[0] != nil {
				f.Fatalf("plain block %s has a control value", b)
			}
		case BlockIf:
			if len(b.Succs) != 2 {
				f.Fatalf("if block %s has %d successors", b, len(b.Succs))
			}
			if b.Controls[0] == nil || !b.Controls[0].Type.IsBoolean() {
				f.Fatalf("if block %s has bad control", b)
			}
		case BlockSwitch:
			if len(b.Succs) != len(b.Cases)+1 {
				f.Fatalf("switch block %s has %d successors for %d cases", b, len(b.Succs), len(b.Cases))
			}
			if b.Controls[0] == nil || !b.Controls[0].Type.IsInteger() {
				f.Fatalf("switch block %s has bad control", b)
			}
			seen := make(map[int64]bool, len(b.Cases))
			for _, c := range b.Cases {
				if seen[c] {
					f.Fatalf("switch block %s has duplicate case %d", b, c)
				}
				seen[c] = true
			}
		case BlockExit:
			if len(b.Succs) != 0 {
				f.Fatalf("exit block %s has successors", b)
			}
		default:
			f.Fatalf("block %s has unknown kind %d", b, b.Kind)
		}
		if len(b.Weights) != 0 && len(b.Weights) != len(b.Succs) {
			f.Fatalf("block %s has %d weights for %d successors", b, len(b.Weights), len(b.Succs))
		}

		for _, v := range b.Values {
			if v.Block != b {
				f.Fatalf("%s.Block != %s", v, b)
			}
			if v.Op == OpPhi && len(v.Args) != len(b.Preds) {
				f.Fatalf("phi %s has %d args, block has %d predecessors", v, len(v.Args), len(b.Preds))
			}
		}
	}
	if !blockMark[f.Entry.ID] {
		f.Fatalf("entry block not in block list")
	}

	// Use counts.
	uses := make([]int32, f.NumValues())
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			for _, a := range v.Args {
				uses[a.ID]++
			}
		}
		if c := b.Controls[0]; c != nil {
			uses[c.ID]++
		}
	}
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			if v.Uses != uses[v.ID] {
				f.Fatalf("%s has %d uses, counted %d", v, v.Uses, uses[v.ID])
			}
		}
	}
}
