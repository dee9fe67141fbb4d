// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import "github.com/fkuehnel/memopsize/ssa"

// A LibFunc identifies a known library routine.
type LibFunc int

const (
	LibFuncMemcmp LibFunc = iota
	LibFuncBcmp
)

// LibFuncs recognizes library calls by callee name. It stands in for
// the target library info of a full compiler: only calls it knows
// about are eligible for size specialization.
type LibFuncs map[string]LibFunc

// DefaultLibFuncs returns the recognizer for the standard comparison
// routines.
func DefaultLibFuncs() LibFuncs {
	return LibFuncs{
		"memcmp": LibFuncMemcmp,
		"bcmp":   LibFuncBcmp,
	}
}

// Lookup identifies the callee of v, which must be a call value.
func (t LibFuncs) Lookup(v *ssa.Value) (LibFunc, bool) {
	if v.Op != ssa.OpStaticCall {
		return 0, false
	}
	sym, ok := v.Aux.(*ssa.CallSym)
	if !ok {
		return 0, false
	}
	lf, ok := t[sym.Name]
	return lf, ok
}
