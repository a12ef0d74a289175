// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import (
	"fmt"

	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/gen/storage"
	"gate.computer/baseline/wa"
)

// V describes where a live operand currently resides.  It doesn't own the
// register or the stack slot.
type V struct {
	Storage storage.Storage
	Type    wa.Type

	payload int32
}

func Reg(t wa.Type, r reg.R) V {
	return V{
		Storage: storage.Reg,
		Type:    t,
		payload: int32(r),
	}
}

// Mem value occupies the stack slot which ends at the given stack pointer
// offset (the offset immediately after the value was pushed).
func Mem(t wa.Type, slot int32) V {
	return V{
		Storage: storage.Mem,
		Type:    t,
		payload: slot,
	}
}

func (v V) IsReg() bool   { return v.Storage == storage.Reg }
func (v V) IsMem() bool   { return v.Storage == storage.Mem }
func (v V) Reg() reg.R    { return reg.R(v.payload) }
func (v V) Slot() int32   { return v.payload }
func (v V) Size() wa.Size { return v.Type.Size() }

// StackOffset of a memory value relative to the current stack pointer.
func (v V) StackOffset(spOffset int32) int32 {
	return spOffset - v.payload
}

func (v V) String() string {
	switch v.Storage {
	case storage.Reg:
		return fmt.Sprintf("%s in %s", v.Type, v.Reg())

	case storage.Mem:
		return fmt.Sprintf("%s in stack slot %d", v.Type, v.Slot())

	default:
		return "<invalid value>"
	}
}
