// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen/debug"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/gen/regalloc"
	"gate.computer/baseline/internal/gen/stack"
	"gate.computer/baseline/internal/gen/val"
	"gate.computer/baseline/wa"
)

// Context is the code generation state of one function: the value stack and
// the register allocator.
//
// Memory values form a contiguous prefix of the value stack, and their stack
// slots are in the same order as the values.  Spilling always proceeds from
// the bottom, which maintains the invariant.
type Context struct {
	Stack stack.Stack
	Regs  regalloc.Allocator
}

func NewContext(regs regalloc.Allocator) *Context {
	return &Context{Regs: regs}
}

// SpillRegsAndCountMemoryIn pushes the register values of value stack entries
// [lo, hi) to the machine stack.  It returns the number of values which were
// spilled and the number of values which were already in memory.
func (c *Context) SpillRegsAndCountMemoryIn(m masm.MacroAssembler, lo, hi int) (spilledRegs, memoryValues int32) {
	for i := lo; i < hi; i++ {
		v := c.Stack.At(i)

		switch {
		case v.IsReg():
			contract.Assert(i == 0 || c.Stack.At(i-1).IsMem(), "spilling value #%d above register value", i)

			m.Push(v.Type, v.Reg())
			c.Regs.Free(v.Type, v.Reg())
			c.Stack.Set(i, val.Mem(v.Type, m.SPOffset()))
			spilledRegs++

			if debug.Enabled {
				debug.Printf("spill #%d: %s -> %s", i, v, c.Stack.At(i))
			}

		case v.IsMem():
			memoryValues++
		}
	}

	return
}

// SpillAll register values.
func (c *Context) SpillAll(m masm.MacroAssembler) {
	c.SpillRegsAndCountMemoryIn(m, 0, c.Stack.Len())
}

// MoveValToReg loads or copies a value to a specific register.  The target
// type determines the register file; its size must match the value's size.
// Allocation state is not changed.
func (c *Context) MoveValToReg(v val.V, target reg.R, t wa.Type, m masm.MacroAssembler) {
	contract.Assert(t.Size() == v.Size(), "moving %s to %s register", v, t)

	switch {
	case v.IsReg():
		if v.Reg() != target || v.Type.Category() != t.Category() {
			m.MoveReg(t, target, v.Type, v.Reg())
		}

	case v.IsMem():
		m.LoadStack(t, target, v.StackOffset(m.SPOffset()))

	default:
		contract.Fail("invalid value: %s", v)
	}
}

// DropLast removes n values from the top of the value stack, and frees their
// registers.  The stack slots of memory values are not reclaimed.
func (c *Context) DropLast(n int) {
	contract.Assert(n <= c.Stack.Len(), "dropping %d values from value stack of %d entries", n, c.Stack.Len())

	for _, v := range c.Stack.PeekN(n) {
		if v.IsReg() {
			c.Regs.Free(v.Type, v.Reg())
		}
	}

	c.Stack.Truncate(c.Stack.Len() - n)
}

// Drop the topmost value, reclaiming its register or stack slot.
func (c *Context) Drop(m masm.MacroAssembler, wordBytes int32) {
	v := c.Stack.Pop()

	switch {
	case v.IsReg():
		c.Regs.Free(v.Type, v.Reg())

	case v.IsMem():
		contract.Assert(v.Slot() == m.SPOffset(), "topmost stack slot %d is not at stack pointer offset %d", v.Slot(), m.SPOffset())
		m.FreeStack(wordBytes)
	}
}

// AcquireReg marks an available register as owned.
func (c *Context) AcquireReg(t wa.Type, r reg.R) reg.R {
	c.Regs.AllocSpecific(t, r)
	return r
}

// AllocReg of any kind.  The whole value stack is spilled if there are no
// free registers.
func (c *Context) AllocReg(t wa.Type, m masm.MacroAssembler) reg.R {
	if r, ok := c.Regs.Alloc(t); ok {
		return r
	}

	c.SpillAll(m)

	r, ok := c.Regs.Alloc(t)
	contract.Assert(ok, "no allocatable %s registers", t.Category())
	return r
}

// PushConst materializes a constant in a register.
func (c *Context) PushConst(t wa.Type, bits uint64, m masm.MacroAssembler) {
	r := c.AllocReg(t, m)
	m.MoveImm(t, r, bits)
	c.Stack.Push(val.Reg(t, r))
}
