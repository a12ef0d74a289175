// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abi describes calling conventions.  The facts are queried by the
// call emitter; the classification of parameters is implemented per ISA.
package abi

import (
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

// ABI of a target architecture.
type ABI interface {
	// WordBytes is the size of a stack slot.
	WordBytes() int32

	// CallStackAlign is the required stack pointer alignment at call sites.
	CallStackAlign() int32

	// ArgBaseOffset is the distance between the frame base and the location
	// where stack arguments begin.
	ArgBaseOffset() int32

	// ScratchReg is an integer register which is never allocated.
	ScratchReg() reg.R

	// Sig classifies the parameters and the result of a function type.
	Sig(f wa.FuncType) Sig
}

// AlignTo rounds value up to a multiple of alignment, which must be a power of
// two.
func AlignTo(value, alignment int32) int32 {
	return (value + alignment - 1) &^ (alignment - 1)
}

// FrameAdjustment is the padding needed to align spOffset+addend.
func FrameAdjustment(spOffset, addend, alignment int32) int32 {
	total := spOffset + addend
	return (alignment - total%alignment) % alignment
}
