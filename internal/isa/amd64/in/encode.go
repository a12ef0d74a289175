// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"encoding/binary"

	"gate.computer/baseline/internal/code"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

func typeScalarPrefix(t wa.Type) byte { return byte(t)>>2 | 0xf2 } // 0xf3 or 0xf2

type output struct {
	buf    [16]byte
	offset uint8
}

func (o *output) len() int { return int(o.offset) }

func (o *output) copy(target []byte) {
	copy(target, o.buf[:o.offset])
	if debugEnabled {
		debugPrintInsn(o.buf[:o.offset])
	}
}

func (o *output) byte(b byte) {
	o.buf[o.offset] = b
	o.offset++
}

func (o *output) rex(wrxb rexWRXB) {
	o.buf[o.offset] = Rex | byte(wrxb)
	o.offset++
}

func (o *output) rexIf(wrxb rexWRXB) {
	o.buf[o.offset] = Rex | byte(wrxb)
	o.offset += bit(wrxb != 0)
}

func (o *output) mod(mod Mod, ro ModRO, rm ModRM) {
	o.buf[o.offset] = byte(mod) | byte(ro) | byte(rm)
	o.offset++
}

func (o *output) sib(s Scale, i Index, b Base) {
	o.buf[o.offset] = byte(s) | byte(i) | byte(b)
	o.offset++
}

func (o *output) int32(val int32) {
	binary.LittleEndian.PutUint32(o.buf[o.offset:], uint32(val))
	o.offset += 4
}

func (o *output) int64(val int64) {
	binary.LittleEndian.PutUint64(o.buf[o.offset:], uint64(val))
	o.offset += 8
}

func (o *output) int(val int32, size uint8) {
	// Little-endian byte order works for any size
	binary.LittleEndian.PutUint32(o.buf[o.offset:], uint32(val))
	o.offset += size
}

// NP

type NP byte

func (op NP) Simple(text *code.Buf) {
	var o output
	o.byte(byte(op))
	o.copy(text.Extend(o.len()))
}

// O

type O byte

func (op O) Reg(text *code.Buf, r reg.R) {
	var o output
	o.rexIf(regRexB(r))
	o.byte(byte(op) + byte(r)&7)
	o.copy(text.Extend(o.len()))
}

// RM (MR)

type RM byte // opcode byte

func (op RM) RegReg(text *code.Buf, t wa.Type, r, r2 reg.R) {
	var o output
	o.rexIf(typeRexW(t) | regRexR(r) | regRexB(r2))
	o.byte(byte(op))
	o.mod(ModReg, regRO(r), regRM(r2))
	o.copy(text.Extend(o.len()))
}

func (op RM) RegStackDisp(text *code.Buf, t wa.Type, r reg.R, disp int32) {
	var mod, dispSize = dispModSize(disp)
	var o output
	o.rexIf(typeRexW(t) | regRexR(r))
	o.byte(byte(op))
	o.mod(mod, regRO(r), ModRMSIB)
	o.sib(Scale0, noIndex, baseStack)
	o.int(disp, dispSize)
	o.copy(text.Extend(o.len()))
}

// RM with prefix and two opcode bytes (first byte hardcoded)

type RMprefix uint16 // fixed-length prefix and second opcode byte
type RMscalar byte   // second opcode byte; type-dependent fixed-length prefix

func (op RMprefix) RegReg(text *code.Buf, t wa.Type, r, r2 reg.R) {
	var o output
	o.byte(byte(op >> 8))
	o.rexIf(typeRexW(t) | regRexR(r) | regRexB(r2))
	o.byte(0x0f)
	o.byte(byte(op))
	o.mod(ModReg, regRO(r), regRM(r2))
	o.copy(text.Extend(o.len()))
}

func (op RMscalar) RegReg(text *code.Buf, t wa.Type, r, r2 reg.R) {
	var o output
	o.byte(typeScalarPrefix(t))
	o.rexIf(regRexR(r) | regRexB(r2))
	o.byte(0x0f)
	o.byte(byte(op))
	o.mod(ModReg, regRO(r), regRM(r2))
	o.copy(text.Extend(o.len()))
}

func (op RMscalar) RegStackDisp(text *code.Buf, t wa.Type, r reg.R, disp int32) {
	var mod, dispSize = dispModSize(disp)
	var o output
	o.byte(typeScalarPrefix(t))
	o.rexIf(regRexR(r))
	o.byte(0x0f)
	o.byte(byte(op))
	o.mod(mod, regRO(r), ModRMSIB)
	o.sib(Scale0, noIndex, baseStack)
	o.int(disp, dispSize)
	o.copy(text.Extend(o.len()))
}

// OI

type OI byte

func (op OI) RegImm32(text *code.Buf, r reg.R, val int32) {
	var o output
	o.rexIf(regRexB(r))
	o.byte(byte(op) + byte(r)&7)
	o.int32(val)
	o.copy(text.Extend(o.len()))
}

func (op OI) RegImm64(text *code.Buf, r reg.R, val int64) {
	var o output
	o.rex(RexW | regRexB(r))
	o.byte(byte(op) + byte(r)&7)
	o.int64(val)
	o.copy(text.Extend(o.len()))
}

// MI instructions with varying operand and immediate sizes

type MI uint32 // opcode bytes for 32-bit value and 8-bit value; and common ModRO byte

func (ops MI) RegImm(text *code.Buf, t wa.Type, r reg.R, val int32) {
	var op, valSize = immOpcodeSize(uint16(ops>>8), val)
	var o output
	o.rexIf(typeRexW(t) | regRexB(r))
	o.byte(op)
	o.mod(ModReg, ModRO(ops), regRM(r))
	o.int(val, valSize)
	o.copy(text.Extend(o.len()))
}

func (op MI) RegImm32(text *code.Buf, t wa.Type, r reg.R, val int32) {
	var o output
	o.rexIf(typeRexW(t) | regRexB(r))
	o.byte(byte(op >> 16))
	o.mod(ModReg, ModRO(op), regRM(r))
	o.int32(val)
	o.copy(text.Extend(o.len()))
}

// D

type Dd byte // opcode byte

// Addr32 encodes a relative branch to a known address.
func (op Dd) Addr32(text *code.Buf, addr int32) {
	const insnSize = 5

	disp := addr - (text.Addr + insnSize)

	var o output
	o.byte(byte(op))
	o.int32(disp)
	o.copy(text.Extend(o.len()))
}

// Stub32 encodes a relative branch to be linked later.
func (op Dd) Stub32(text *code.Buf) {
	const insnSize = 5

	var o output
	o.byte(byte(op))
	o.int32(-insnSize) // infinite loop as placeholder
	o.copy(text.Extend(o.len()))
}
