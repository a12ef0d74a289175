// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abi

import (
	"fmt"

	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

type ArgKind uint8

const (
	ArgReg = ArgKind(iota)
	ArgStack
)

// Arg is the location of a parameter.
type Arg struct {
	Kind ArgKind
	Type wa.Type

	reg    reg.R
	offset int32
}

func RegArg(t wa.Type, r reg.R) Arg {
	return Arg{Kind: ArgReg, Type: t, reg: r}
}

// StackArg is located at offset from the stack pointer at the time of the
// call.
func StackArg(t wa.Type, offset int32) Arg {
	return Arg{Kind: ArgStack, Type: t, offset: offset}
}

func (a Arg) Reg() reg.R    { return a.reg }
func (a Arg) Offset() int32 { return a.offset }

func (a Arg) String() string {
	switch a.Kind {
	case ArgReg:
		return fmt.Sprintf("%s in %s", a.Type, a.reg)

	case ArgStack:
		return fmt.Sprintf("%s at stack offset %d", a.Type, a.offset)

	default:
		return "<invalid argument location>"
	}
}

type ResultKind uint8

const (
	ResultVoid = ResultKind(iota)
	ResultReg
	// Stack-returned and multi-value results would be added here.
)

// Result is the location of a function's return value.
type Result struct {
	Kind ResultKind
	Type wa.Type

	reg reg.R
}

func VoidResult() Result {
	return Result{}
}

func RegResult(t wa.Type, r reg.R) Result {
	return Result{Kind: ResultReg, Type: t, reg: r}
}

func (r Result) IsVoid() bool { return r.Kind == ResultVoid }
func (r Result) Reg() reg.R   { return r.reg }

func (r Result) String() string {
	switch r.Kind {
	case ResultVoid:
		return "void"

	case ResultReg:
		return fmt.Sprintf("%s in %s", r.Type, r.reg)

	default:
		return "<invalid result location>"
	}
}
