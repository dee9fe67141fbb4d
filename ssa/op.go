// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// An Op identifies the operation a Value performs.
type Op int32

const (
	OpInvalid Op = iota

	OpInitMem   // the memory input to the function
	OpArg       // a function parameter; Aux is its name
	OpConst64   // AuxInt is the constant
	OpConstBool // AuxInt is 0 or 1
	OpPhi       // select an arg based on the incoming predecessor
	OpAdd64
	OpMul64

	// Built-in block memory operations. The size operand is Args[2].
	OpMemcpy  // Args: dst, src, size
	OpMemmove // Args: dst, src, size
	OpMemset  // Args: dst, val, size

	// A call to a named function. Aux is *CallSym.
	// For recognized comparison routines the size operand is Args[2].
	OpStaticCall

	numOps
)

// A CallSym names the callee of an OpStaticCall.
type CallSym struct {
	Name string
}

func (s *CallSym) String() string { return s.Name }

type opInfo struct {
	name           string
	hasSideEffects bool
	call           bool
	constant       bool
}

var opcodeTable = [numOps]opInfo{
	OpInvalid:    {name: "Invalid"},
	OpInitMem:    {name: "InitMem"},
	OpArg:        {name: "Arg"},
	OpConst64:    {name: "Const64", constant: true},
	OpConstBool:  {name: "ConstBool", constant: true},
	OpPhi:        {name: "Phi"},
	OpAdd64:      {name: "Add64"},
	OpMul64:      {name: "Mul64"},
	OpMemcpy:     {name: "Memcpy", hasSideEffects: true},
	OpMemmove:    {name: "Memmove", hasSideEffects: true},
	OpMemset:     {name: "Memset", hasSideEffects: true},
	OpStaticCall: {name: "StaticCall", hasSideEffects: true, call: true},
}

func (o Op) String() string         { return opcodeTable[o].name }
func (o Op) HasSideEffects() bool   { return opcodeTable[o].hasSideEffects }
func (o Op) IsCall() bool           { return opcodeTable[o].call }
func isConst(o Op) bool             { return opcodeTable[o].constant }
func (o Op) isMemoryIntrinsic() bool {
	return o == OpMemcpy || o == OpMemmove || o == OpMemset
}
