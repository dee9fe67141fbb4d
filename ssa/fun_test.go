// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file defines a DSL for building CFGs in tests:
//
//	fun := c.Fun("entry",
//	    Bloc("entry",
//	        Valu("mem", OpInitMem, TypeMem, 0, nil),
//	        Goto("exit")),
//	    Bloc("exit",
//	        Exit("mem")))
//
// Blocks and values are named and can be looked up afterwards through
// fun.blocks and fun.values.

package ssa

import (
	"fmt"
	"testing"
)

type conf struct {
	tb testing.TB
}

func testConfig(tb testing.TB) *conf {
	return &conf{tb: tb}
}

// fun is the result of Fun: the built function plus name lookup maps.
type fun struct {
	f      *Func
	blocks map[string]*Block
	values map[string]*Value
}

// Fun builds a Func from block descriptions. entryName must name one
// of the blocs.
func (c *conf) Fun(entryName string, blocs ...bloc) fun {
	f := NewFunc(c.tb.Name())
	fun := fun{
		f:      f,
		blocks: make(map[string]*Block),
		values: make(map[string]*Value),
	}
	for _, bl := range blocs {
		var kind BlockKind
		switch bl.control.kind {
		case blockGoto:
			kind = BlockPlain
		case blockIf:
			kind = BlockIf
		case blockExit:
			kind = BlockExit
		}
		b := f.NewBlock(kind)
		b.Name = bl.name
		fun.blocks[bl.name] = b
		if bl.name == entryName {
			f.Entry = b
		}
	}
	if f.Entry == nil {
		c.tb.Fatalf("entry block %q not found", entryName)
	}

	// First pass: create all values.
	for _, bl := range blocs {
		b := fun.blocks[bl.name]
		for _, v := range bl.valus {
			val := b.NewValue0(v.op, v.t)
			val.AuxInt = v.auxint
			val.Aux = v.aux
			fun.values[v.name] = val
		}
	}
	// Second pass: link arguments, controls, and edges.
	for _, bl := range blocs {
		b := fun.blocks[bl.name]
		for _, v := range bl.valus {
			val := fun.values[v.name]
			for _, argName := range v.args {
				arg, ok := fun.values[argName]
				if !ok {
					c.tb.Fatalf("arg %q of value %q not defined", argName, v.name)
				}
				val.AddArg(arg)
			}
		}
		ctl := bl.control
		switch ctl.kind {
		case blockGoto:
			b.AddEdgeTo(mustBlock(c.tb, fun, ctl.succs[0]))
		case blockIf:
			b.SetControl(mustValue(c.tb, fun, ctl.control))
			b.AddEdgeTo(mustBlock(c.tb, fun, ctl.succs[0]))
			b.AddEdgeTo(mustBlock(c.tb, fun, ctl.succs[1]))
		case blockExit:
			b.SetControl(mustValue(c.tb, fun, ctl.control))
		}
	}
	return fun
}

func mustBlock(tb testing.TB, fun fun, name string) *Block {
	b, ok := fun.blocks[name]
	if !ok {
		tb.Fatalf("block %q not defined", name)
	}
	return b
}

func mustValue(tb testing.TB, fun fun, name string) *Value {
	v, ok := fun.values[name]
	if !ok {
		tb.Fatalf("value %q not defined", name)
	}
	return v
}

type bloc struct {
	name    string
	valus   []valu
	control ctrl
}

type valu struct {
	name   string
	op     Op
	t      *Type
	auxint int64
	aux    any
	args   []string
}

type ctrlKind int8

const (
	blockGoto ctrlKind = iota
	blockIf
	blockExit
)

type ctrl struct {
	kind    ctrlKind
	control string
	succs   []string
}

// Bloc defines a block with the given name, values, and terminator.
// The last entry must be Goto, If, or Exit.
func Bloc(name string, entries ...any) bloc {
	b := bloc{name: name}
	haveCtrl := false
	for _, e := range entries {
		switch v := e.(type) {
		case valu:
			if haveCtrl {
				panic(fmt.Sprintf("value after terminator in block %s", name))
			}
			b.valus = append(b.valus, v)
		case ctrl:
			if haveCtrl {
				panic(fmt.Sprintf("two terminators in block %s", name))
			}
			b.control = v
			haveCtrl = true
		default:
			panic(fmt.Sprintf("unexpected entry %T in block %s", e, name))
		}
	}
	if !haveCtrl {
		panic(fmt.Sprintf("block %s has no terminator", name))
	}
	return b
}

// Valu defines a value with the given name, op, type, auxint, aux,
// and named arguments.
func Valu(name string, op Op, t *Type, auxint int64, aux any, args ...string) valu {
	return valu{name, op, t, auxint, aux, args}
}

// Goto makes the block a plain block jumping to succ.
func Goto(succ string) ctrl {
	return ctrl{kind: blockGoto, succs: []string{succ}}
}

// If makes the block branch on the named bool value.
func If(cond, then, els string) ctrl {
	return ctrl{kind: blockIf, control: cond, succs: []string{then, els}}
}

// Exit makes the block a function exit taking the named memory.
func Exit(mem string) ctrl {
	return ctrl{kind: blockExit, control: mem}
}
