// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// A Type describes the result of a Value. The pass only needs a
// handful of shapes: integers of a few widths, booleans, pointers,
// the pseudo memory type, and void for calls without a result.
type Type struct {
	kind typeKind
	size int64 // size in bytes, 0 for void/mem
}

type typeKind uint8

const (
	typeVoid typeKind = iota
	typeBool
	typeInt
	typePtr
	typeMem
)

var (
	TypeVoid    = &Type{kind: typeVoid}
	TypeBool    = &Type{kind: typeBool, size: 1}
	TypeInt32   = &Type{kind: typeInt, size: 4}
	TypeInt64   = &Type{kind: typeInt, size: 8}
	TypeUintptr = &Type{kind: typePtr, size: 8}
	TypeMem     = &Type{kind: typeMem}
)

func (t *Type) IsVoid() bool    { return t == nil || t.kind == typeVoid }
func (t *Type) IsBoolean() bool { return t != nil && t.kind == typeBool }
func (t *Type) IsInteger() bool { return t != nil && t.kind == typeInt }
func (t *Type) IsPtr() bool     { return t != nil && t.kind == typePtr }
func (t *Type) IsMemory() bool  { return t != nil && t.kind == typeMem }
func (t *Type) Size() int64     { return t.size }

func (t *Type) String() string {
	switch t.kind {
	case typeVoid:
		return "void"
	case typeBool:
		return "bool"
	case typeInt:
		switch t.size {
		case 4:
			return "int32"
		case 8:
			return "int64"
		}
		return "int"
	case typePtr:
		return "uintptr"
	case typeMem:
		return "mem"
	}
	return "?"
}
