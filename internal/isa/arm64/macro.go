// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/isa/arm64/in"
	"gate.computer/baseline/wa"
)

// MacroAssembler addresses the stack relative to x28.  The frame base is the
// stack pointer after the frame record has been pushed.
type MacroAssembler struct {
	p        *gen.Prog
	spOffset int32
}

func NewMacroAssembler(p *gen.Prog) *MacroAssembler {
	return &MacroAssembler{p: p}
}

func (m *MacroAssembler) SPOffset() int32 { return m.spOffset }

func (m *MacroAssembler) ReserveStack(n int32) {
	if n != 0 {
		var o outbuf
		o.adjustFakeSP(in.SUBi, n)
		o.copy(&m.p.Text)
		m.spOffset += n
	}
}

func (m *MacroAssembler) FreeStack(n int32) {
	if n != 0 {
		var o outbuf
		o.adjustFakeSP(in.ADDi, n)
		o.copy(&m.p.Text)
		m.spOffset -= n
	}
}

func (o *outbuf) adjustFakeSP(op in.RegRegImm12ShiftSf, n int32) {
	contract.Assert(n > 0 && n < 1<<24, "stack adjustment %d out of range", n)

	if high := uint32(n) >> 12; high != 0 {
		o.insn(op.RdRnI12S2(RegFakeSP, RegFakeSP, high, 1, wa.Size64))
	}
	if low := in.Uint12(uint64(n)); low != 0 {
		o.insn(op.RdRnI12S2(RegFakeSP, RegFakeSP, low, 0, wa.Size64))
	}
}

func (m *MacroAssembler) AddressAtSP(offset int32) masm.Address {
	return masm.Address{Offset: offset}
}

func (m *MacroAssembler) Store(source reg.R, addr masm.Address, size wa.Size) {
	var o outbuf
	base, index := o.stackBase(addr.Offset, size)
	o.insn(in.STR.RdRnI12(source, base, index, wa.IntType(size)))
	o.copy(&m.p.Text)
}

// stackBase returns a base register and a scaled index for accessing a stack
// location.  Offsets beyond the immediate range are added to the stack
// pointer in the second scratch register.
func (o *outbuf) stackBase(offset int32, size wa.Size) (reg.R, uint32) {
	contract.Assert(offset >= 0 && offset%int32(size) == 0, "stack offset %d for %d-byte access", offset, size)

	if index := uint32(offset) / uint32(size); index <= 0xfff {
		return RegFakeSP, index
	}

	o.moveUintImm(RegScratch2, uint64(offset), wa.Size64)
	o.insn(in.ADDs.RdRnI6RmS2(RegScratch2, RegFakeSP, 0, RegScratch2, in.LSL, wa.Size64))
	return RegScratch2, 0
}

// Call a function directly.  The real stack pointer is set below the live
// stack area, rounded to the call stack alignment.  The callee clobbers x28,
// so it is rederived from the frame pointer after the call.  Calls to
// functions which haven't been generated yet are linked later.
func (m *MacroAssembler) Call(callee masm.CalleeKind) {
	l := &m.p.FuncLinks[callee.FuncIndex()]
	realOffset := abi.AlignTo(m.spOffset, callStackAlign)

	var o outbuf
	o.belowFrame(RegRealSP, realOffset)
	o.copy(&m.p.Text)

	offset := -m.p.Text.Addr // Address zero as placeholder.
	if l.Defined {
		offset = l.Addr - m.p.Text.Addr
	}
	o = outbuf{}
	o.insn(in.BL.I26(in.Int26(offset / 4)))
	o.copy(&m.p.Text)

	retAddr := m.p.Text.Addr
	if !l.Defined {
		l.AddSite(retAddr)
	}
	m.p.Map.PutCallSite(uint32(retAddr), realOffset)

	o = outbuf{}
	o.belowFrame(RegFakeSP, m.spOffset)
	o.copy(&m.p.Text)
}

// belowFrame sets rd to the frame pointer minus offset.
func (o *outbuf) belowFrame(rd reg.R, offset int32) {
	contract.Assert(offset >= 0 && offset < 1<<24, "frame offset %d out of range", offset)

	rn := RegFramePtr
	low := in.Uint12(uint64(offset))

	if high := uint32(offset) >> 12; high != 0 {
		o.insn(in.SUBi.RdRnI12S2(rd, rn, high, 1, wa.Size64))
		if low == 0 {
			return
		}
		rn = rd
	}

	o.insn(in.SUBi.RdRnI12S2(rd, rn, low, 0, wa.Size64))
}

func (m *MacroAssembler) Push(t wa.Type, source reg.R) {
	var o outbuf
	o.insn(in.STRpre.RtRnI9(source, RegFakeSP, in.Int9(-wordBytes), t))
	o.copy(&m.p.Text)
	m.spOffset += wordBytes
}

func (m *MacroAssembler) LoadStack(t wa.Type, target reg.R, offset int32) {
	var o outbuf
	base, index := o.stackBase(offset, t.Size())
	o.insn(in.LDR.RdRnI12(target, base, index, t))
	o.copy(&m.p.Text)
}

func (m *MacroAssembler) MoveReg(targetType wa.Type, target reg.R, sourceType wa.Type, source reg.R) {
	contract.Assert(targetType.Size() == sourceType.Size(), "move from %s to %s", sourceType, targetType)

	var insn uint32

	switch targetType.Category() {
	case wa.Int:
		switch sourceType.Category() {
		case wa.Int:
			insn = in.ORRs.RdRnI6RmS2(target, RegZero, 0, source, in.LSL, targetType.Size())

		case wa.Float:
			insn = in.FMOVtog.RdRn(target, source, sourceType.Size(), targetType.Size())
		}

	case wa.Float:
		switch sourceType.Category() {
		case wa.Int:
			insn = in.FMOVfromg.RdRn(target, source, targetType.Size(), sourceType.Size())

		case wa.Float:
			insn = in.FMOV.RdRn(target, source, targetType.Size())
		}
	}

	var o outbuf
	o.insn(insn)
	o.copy(&m.p.Text)
}

func (m *MacroAssembler) MoveImm(t wa.Type, target reg.R, bits uint64) {
	if t.Size() == wa.Size32 {
		bits = uint64(uint32(bits))
	}

	var o outbuf

	switch t.Category() {
	case wa.Int:
		o.moveUintImm(target, bits, t.Size())

	case wa.Float:
		o.moveUintImm(RegScratch, bits, t.Size())
		o.insn(in.FMOVfromg.RdRn(target, RegScratch, t.Size(), t.Size()))
	}

	o.copy(&m.p.Text)
}

// moveUintImm emits MOVZ followed by MOVK for each nonzero upper halfword.
func (o *outbuf) moveUintImm(r reg.R, bits uint64, size wa.Size) {
	o.insn(in.MOVZ.RdI16Hw(r, in.Uint16(bits), 0, size))

	for hw := uint32(1); hw < uint32(size)/2; hw++ {
		if chunk := in.Uint16(bits >> (hw * 16)); chunk != 0 {
			o.insn(in.MOVK.RdI16Hw(r, chunk, hw, size))
		}
	}
}

func (m *MacroAssembler) Enter() {
	var o outbuf
	o.insn(in.STRpre.RtRnI9(RegFramePtr, RegRealSP, in.Int9(-16), wa.I64))
	o.insn(in.STR.RdRnI12(RegLink, RegRealSP, 1, wa.I64))
	o.insn(in.ADDi.RdRnI12S2(RegFramePtr, RegRealSP, 0, 0, wa.Size64))
	o.insn(in.ADDi.RdRnI12S2(RegFakeSP, RegRealSP, 0, 0, wa.Size64))
	o.copy(&m.p.Text)
}

func (m *MacroAssembler) Return() {
	var o outbuf
	o.insn(in.ADDi.RdRnI12S2(RegRealSP, RegFramePtr, 0, 0, wa.Size64))
	o.insn(in.LDR.RdRnI12(RegLink, RegRealSP, 1, wa.I64))
	o.insn(in.LDRpost.RtRnI9(RegFramePtr, RegRealSP, in.Int9(16), wa.I64))
	o.insn(in.RET.Rn(RegLink))
	o.copy(&m.p.Text)

	m.spOffset = 0
}
