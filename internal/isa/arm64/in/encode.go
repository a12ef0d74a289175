// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

// cat sets bit 26 based on type category.
func cat(t wa.Type) uint32 {
	return uint32(t.Category()) << 26
}

// sf sets bit 31 based on size.
func sf(t wa.Size) uint32 {
	bit4 := uint32(t & 8)
	return bit4 << 28
}

// sizeLSB sets bit 30 based on type size.
func sizeLSB(t wa.Type) uint32 {
	bit4 := uint32(t & 8)
	return bit4 << 27
}

// scalarType sets bit 22 based on size.
func scalarType(t wa.Size) uint32 {
	bit4 := uint32(t & 8)
	return bit4 << 19
}

func Int9(i int32) uint32    { return uint32(i) & 0x1ff }
func Uint12(i uint64) uint32 { return uint32(i) & 0xfff }
func Uint16(i uint64) uint32 { return uint32(i) & 0xffff }
func Int26(i int32) uint32   { return uint32(i) & 0x3ffffff }

type Shift uint32

const (
	LSL = Shift(0 << 22)
)

type (
	Imm26                uint32
	Reg                  uint32
	RegImm16HwSf         uint32
	RegRegImm6RegShiftSf uint32
	RegRegImm9Size       uint32
	RegRegImm12ShiftSf   uint32
	RegRegImm12Size      uint32
	RegRegType           uint32
	RegRegTypeSf         uint32
)

func (op Imm26) I26(imm uint32) uint32 {
	return uint32(op) | imm
}

func (op Reg) Rn(rn reg.R) uint32 {
	return uint32(op) | uint32(rn)<<5
}

func (op RegImm16HwSf) RdI16Hw(rd reg.R, imm, hw uint32, t wa.Size) uint32 {
	return uint32(op) | sf(t) | hw<<21 | imm<<5 | uint32(rd)
}

func (op RegRegImm6RegShiftSf) RdRnI6RmS2(rd, rn reg.R, imm uint32, rm reg.R, shift Shift, t wa.Size) uint32 {
	return uint32(op) | sf(t) | uint32(shift) | uint32(rm)<<16 | imm<<10 | uint32(rn)<<5 | uint32(rd)
}

func (op RegRegImm9Size) RtRnI9(rt, rn reg.R, imm uint32, t wa.Type) uint32 {
	return uint32(op) | sizeLSB(t) | cat(t) | imm<<12 | uint32(rn)<<5 | uint32(rt)
}

func (op RegRegImm12ShiftSf) RdRnI12S2(rd, rn reg.R, imm, shift uint32, t wa.Size) uint32 {
	return uint32(op) | sf(t) | shift<<22 | imm<<10 | uint32(rn)<<5 | uint32(rd)
}

func (op RegRegImm12Size) RdRnI12(rt, rn reg.R, imm uint32, t wa.Type) uint32 {
	return uint32(op) | sizeLSB(t) | cat(t) | imm<<10 | uint32(rn)<<5 | uint32(rt)
}

func (op RegRegType) RdRn(rd, rn reg.R, t wa.Size) uint32 {
	return uint32(op) | scalarType(t) | uint32(rn)<<5 | uint32(rd)
}

func (op RegRegTypeSf) RdRn(rd, rn reg.R, floatType, intType wa.Size) uint32 {
	return uint32(op) | sf(intType) | scalarType(floatType) | uint32(rn)<<5 | uint32(rd)
}
