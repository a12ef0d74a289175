// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package program describes the stack programs accepted by the compiler.
//
// A function body is a sequence of operations on the operand stack.  When the
// body ends, the stack holds exactly the function's result (if any).
// Functions have no parameters in this model: a function's type determines
// how it is called, and the caller supplies the arguments.
package program

import (
	"fmt"

	"gate.computer/baseline/wa"
)

type OpCode uint8

const (
	OpConst = OpCode(iota)
	OpCall
	OpDrop
)

// Op is a stack operation.  Type and Bits are used by OpConst, and Index by
// OpCall.
type Op struct {
	Code  OpCode
	Type  wa.Type
	Bits  uint64
	Index uint32
}

// Const pushes a value with the given bit pattern.
func Const(t wa.Type, bits uint64) Op {
	return Op{Code: OpConst, Type: t, Bits: bits}
}

// Call replaces the arguments on top of the stack with the result of the
// function.
func Call(funcIndex uint32) Op {
	return Op{Code: OpCall, Index: funcIndex}
}

func Drop() Op {
	return Op{Code: OpDrop}
}

func (op Op) String() string {
	switch op.Code {
	case OpConst:
		return fmt.Sprintf("%s.const 0x%x", op.Type, op.Bits)

	case OpCall:
		return fmt.Sprintf("call %d", op.Index)

	case OpDrop:
		return "drop"

	default:
		return fmt.Sprintf("<invalid op code %d>", op.Code)
	}
}

type Func struct {
	TypeIndex uint32
	Body      []Op
}

type Module struct {
	Types []wa.FuncType
	Funcs []Func
}

// FuncType of a function.  The indexes must have been validated.
func (m *Module) FuncType(funcIndex uint32) wa.FuncType {
	return m.Types[m.Funcs[funcIndex].TypeIndex]
}
