// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"encoding/binary"

	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/regalloc"
	"gate.computer/baseline/internal/isa/arm64/in"
)

const FuncAlignment = 4

type ISA struct {
	ABI
}

func (ISA) Name() string { return "arm64" }

func (ISA) MakeAllocator() regalloc.Allocator {
	return regalloc.Make(allocatableInt, allocatableFloat)
}

func (ISA) NewAssembler(p *gen.Prog) masm.FuncAssembler {
	return NewMacroAssembler(p)
}

// AlignFunc only checks the alignment, as all instructions are 4 bytes.
func (ISA) AlignFunc(p *gen.Prog) {
	contract.Assert(p.Text.Addr&(FuncAlignment-1) == 0, "misaligned text address 0x%x", p.Text.Addr)
}

// UpdateCalls modifies BL instructions.
func (ISA) UpdateCalls(text []byte, l *link.L) {
	funcAddr := l.FinalAddr()
	for _, retAddr := range l.Sites {
		callAddr := retAddr - 4
		insn := in.BL.I26(in.Int26((funcAddr - callAddr) / 4))
		binary.LittleEndian.PutUint32(text[callAddr:retAddr], insn)
	}
}
