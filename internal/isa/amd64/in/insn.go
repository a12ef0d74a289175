// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

const (
	// Opcode bits of some instructions are located at this offset in the ModRM
	// byte (ModRO part) or a standalone opcode byte.
	opcodeBase = 3
)

const (
	// GP opcodes
	PUSHo  = O(0x50)
	POPo   = O(0x58)
	ADDi   = MI(0x81<<16 | 0x83<<8 | 0<<opcodeBase)
	SUBi   = MI(0x81<<16 | 0x83<<8 | 5<<opcodeBase)
	MOVmr  = RM(0x89)
	MOV    = RM(0x8b)
	MOV32i = OI(0xb8)
	MOV64i = OI(0xb8)
	RET    = NP(0xc3)
	MOVi   = MI(0xc7<<16 | 0<<opcodeBase)
	CALLcd = Dd(0xe8)

	// GP/SSE opcodes
	MOVx   = RMprefix(0x66<<8 | 0x6e) // MOVD or MOVQ
	MOVxmr = RMprefix(0x66<<8 | 0x7e) // register parameters reversed

	// SSE opcodes
	MOVSx   = RMscalar(0x10) // MOVSS or MOVSD
	MOVSxmr = RMscalar(0x11) // RegReg is redundant
)
