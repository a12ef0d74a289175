// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"math"

	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/isa/amd64/in"
	"gate.computer/baseline/wa"
)

// MacroAssembler addresses the stack relative to rsp.  The frame base is the
// stack pointer after the frame pointer has been saved.
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
		in.SUBi.RegImm(&m.p.Text, wa.I64, RegStackPtr, n)
		m.spOffset += n
	}
}

func (m *MacroAssembler) FreeStack(n int32) {
	if n != 0 {
		in.ADDi.RegImm(&m.p.Text, wa.I64, RegStackPtr, n)
		m.spOffset -= n
	}
}

func (m *MacroAssembler) AddressAtSP(offset int32) masm.Address {
	return masm.Address{Offset: offset}
}

func (m *MacroAssembler) Store(source reg.R, addr masm.Address, size wa.Size) {
	in.MOVmr.RegStackDisp(&m.p.Text, wa.IntType(size), source, addr.Offset)
}

// Call a function directly.  Calls to functions which haven't been generated
// yet are linked later.
func (m *MacroAssembler) Call(callee masm.CalleeKind) {
	l := &m.p.FuncLinks[callee.FuncIndex()]

	if l.Defined {
		in.CALLcd.Addr32(&m.p.Text, l.Addr)
	} else {
		in.CALLcd.Stub32(&m.p.Text)
		l.AddSite(m.p.Text.Addr)
	}

	m.p.Map.PutCallSite(uint32(m.p.Text.Addr), m.spOffset+wordBytes)
}

func (m *MacroAssembler) Push(t wa.Type, source reg.R) {
	switch t.Category() {
	case wa.Int:
		in.PUSHo.Reg(&m.p.Text, source)

	case wa.Float:
		in.SUBi.RegImm(&m.p.Text, wa.I64, RegStackPtr, wordBytes)
		in.MOVSxmr.RegStackDisp(&m.p.Text, t, source, 0)
	}

	m.spOffset += wordBytes
}

func (m *MacroAssembler) LoadStack(t wa.Type, target reg.R, offset int32) {
	switch t.Category() {
	case wa.Int:
		in.MOV.RegStackDisp(&m.p.Text, t, target, offset)

	case wa.Float:
		in.MOVSx.RegStackDisp(&m.p.Text, t, target, offset)
	}
}

func (m *MacroAssembler) MoveReg(targetType wa.Type, target reg.R, sourceType wa.Type, source reg.R) {
	contract.Assert(targetType.Size() == sourceType.Size(), "move from %s to %s", sourceType, targetType)

	switch targetType.Category() {
	case wa.Int:
		switch sourceType.Category() {
		case wa.Int:
			in.MOV.RegReg(&m.p.Text, targetType, target, source)

		case wa.Float:
			in.MOVxmr.RegReg(&m.p.Text, targetType, source, target)
		}

	case wa.Float:
		switch sourceType.Category() {
		case wa.Int:
			in.MOVx.RegReg(&m.p.Text, sourceType, target, source)

		case wa.Float:
			in.MOVSx.RegReg(&m.p.Text, targetType, target, source)
		}
	}
}

func (m *MacroAssembler) MoveImm(t wa.Type, target reg.R, bits uint64) {
	switch t.Category() {
	case wa.Int:
		m.moveIntImm(t, target, bits)

	case wa.Float:
		intType := wa.IntType(t.Size())
		m.moveIntImm(intType, RegScratch, bits)
		in.MOVx.RegReg(&m.p.Text, intType, target, RegScratch)
	}
}

func (m *MacroAssembler) moveIntImm(t wa.Type, target reg.R, bits uint64) {
	if t == wa.I32 {
		bits = uint64(uint32(bits))
	}

	switch {
	case bits <= math.MaxUint32: // Upper half is zeroed.
		in.MOV32i.RegImm32(&m.p.Text, target, int32(uint32(bits)))

	case int64(bits) >= math.MinInt32 && int64(bits) < 0: // Sign-extended.
		in.MOVi.RegImm32(&m.p.Text, wa.I64, target, int32(int64(bits)))

	default:
		in.MOV64i.RegImm64(&m.p.Text, target, int64(bits))
	}
}

func (m *MacroAssembler) Enter() {
	in.PUSHo.Reg(&m.p.Text, RegFramePtr)
	in.MOV.RegReg(&m.p.Text, wa.I64, RegFramePtr, RegStackPtr)
}

func (m *MacroAssembler) Return() {
	if m.spOffset != 0 {
		in.MOV.RegReg(&m.p.Text, wa.I64, RegStackPtr, RegFramePtr)
		m.spOffset = 0
	}
	in.POPo.Reg(&m.p.Text, RegFramePtr)
	in.RET.Simple(&m.p.Text)
}
