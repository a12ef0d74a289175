// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"encoding/binary"

	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/regalloc"
)

const (
	FuncAlignment = 16
	PaddingByte   = 0xcc // INT3 instruction
)

type ISA struct {
	ABI
}

func (ISA) Name() string { return "amd64" }

func (ISA) MakeAllocator() regalloc.Allocator {
	return regalloc.Make(allocatableInt, allocatableFloat)
}

func (ISA) NewAssembler(p *gen.Prog) masm.FuncAssembler {
	return NewMacroAssembler(p)
}

func (ISA) AlignFunc(p *gen.Prog) {
	pad(p, PaddingByte, (FuncAlignment-int(p.Text.Addr))&(FuncAlignment-1))
}

func pad(p *gen.Prog, filler byte, length int) {
	gap := p.Text.Extend(length)
	for i := range gap {
		gap[i] = filler
	}
}

// UpdateCalls modifies CALL instructions.
func (ISA) UpdateCalls(text []byte, l *link.L) {
	funcAddr := l.FinalAddr()
	for _, retAddr := range l.Sites {
		binary.LittleEndian.PutUint32(text[retAddr-4:retAddr], uint32(funcAddr-retAddr))
	}
}
