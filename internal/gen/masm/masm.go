// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package masm defines the instruction emission interface which is
// implemented per ISA.
package masm

import (
	"fmt"

	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

// Address relative to the stack pointer.
type Address struct {
	Offset int32
}

func (a Address) String() string {
	return fmt.Sprintf("[sp%+d]", a.Offset)
}

type CalleeKind struct {
	index uint32
}

// Direct call to a function which is identified by its index.
func Direct(funcIndex uint32) CalleeKind {
	return CalleeKind{funcIndex}
}

func (c CalleeKind) FuncIndex() uint32 { return c.index }

func (c CalleeKind) String() string {
	return fmt.Sprintf("function #%d", c.index)
}

// MacroAssembler emits instructions of one function, and tracks the stack
// pointer offset from the frame base.  The offset grows when values are
// pushed or stack space is reserved.
type MacroAssembler interface {
	SPOffset() int32
	ReserveStack(n int32)
	FreeStack(n int32)

	// AddressAtSP computes the address of the stack location at offset from
	// the current stack pointer.
	AddressAtSP(offset int32) Address

	// Store the lowest bytes of an integer register.
	Store(source reg.R, addr Address, size wa.Size)

	Call(callee CalleeKind)

	// Push the register's contents in a word-sized stack slot.
	Push(t wa.Type, source reg.R)

	// LoadStack reads a value from offset relative to the current stack
	// pointer.
	LoadStack(t wa.Type, target reg.R, offset int32)

	// MoveReg copies a value.  If the categories of the types differ, the bits
	// are moved between register files.  The size of the types must match.
	MoveReg(targetType wa.Type, target reg.R, sourceType wa.Type, source reg.R)

	MoveImm(t wa.Type, target reg.R, bits uint64)
}

// FuncAssembler can also emit the function entry and exit sequences.
type FuncAssembler interface {
	MacroAssembler

	Enter()
	Return()
}
