// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/debug"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/gen/val"
	"gate.computer/baseline/wa"
)

// Call site between space accounting and instruction emission.
//
// Machine stack layout when the call instruction is executed (growing
// downwards):
//
//	| values spilled before this call site, not used as arguments |
//	| argument values in memory (spilled earlier or just now)      |
//	| alignment padding and stack arguments (argStackSpace)        |
//	+-- stack pointer
//
// Everything except the first region is reclaimed with a single adjustment
// after the call.  Values below the arguments which were spilled by this call
// site (preservedBytes) stay on the machine stack.
type Call struct {
	sig *abi.Sig

	spOffsetAtCallsite int32
	preservedBytes     int32
	argStackSpace      int32
	totalStackSpace    int32

	emitted bool
}

// NewCall spills live registers and computes the stack space needed by the
// call.  Frame alignment is calculated after spilling because the spills
// move the stack pointer.
func NewCall(a abi.ABI, sig *abi.Sig, ctx *gen.Context, m masm.MacroAssembler) (c Call) {
	c.sig = sig
	c.spOffsetAtCallsite = m.SPOffset()

	if debug.Enabled {
		debug.Printf("call setup: %d params, result %s, stack offset %d", len(sig.Params), sig.Result, c.spOffsetAtCallsite)
		debug.Depth++
		defer func() { debug.Depth-- }()
	}

	var preserved, spilledRegs, memoryValues int32

	if numParams := len(sig.Params); numParams == 0 {
		preserved, _ = ctx.SpillRegsAndCountMemoryIn(m, 0, ctx.Stack.Len())
	} else {
		contract.Assert(ctx.Stack.Len() >= numParams, "value stack has %d entries; call needs %d arguments", ctx.Stack.Len(), numParams)

		// Only the memory occupied by the arguments is reclaimed after the
		// call; the values below them stay live.
		partition := ctx.Stack.Len() - numParams
		preserved, _ = ctx.SpillRegsAndCountMemoryIn(m, 0, partition)
		spilledRegs, memoryValues = ctx.SpillRegsAndCountMemoryIn(m, partition, ctx.Stack.Len())
	}

	c.preservedBytes = preserved * a.WordBytes()

	align := a.CallStackAlign()
	delta := abi.FrameAdjustment(m.SPOffset(), a.ArgBaseOffset(), align)

	c.argStackSpace = abi.AlignTo(sig.StackBytes+delta, align)
	c.totalStackSpace = (spilledRegs+memoryValues)*a.WordBytes() + c.argStackSpace

	if debug.Enabled {
		debug.Printf("spilled %d args, %d args in memory, frame adjustment %d", spilledRegs, memoryValues, delta)
		debug.Printf("arg stack space %d, total stack space %d", c.argStackSpace, c.totalStackSpace)
	}

	return
}

func (c *Call) ArgStackSpace() int32      { return c.argStackSpace }
func (c *Call) TotalStackSpace() int32    { return c.totalStackSpace }
func (c *Call) SPOffsetAtCallsite() int32 { return c.spOffsetAtCallsite }
func (c *Call) PreservedBytes() int32     { return c.preservedBytes }

// Emit the call.  The arguments are replaced by the result (if any) on the
// value stack.  A Call may be emitted only once.
func (c *Call) Emit(a abi.ABI, m masm.MacroAssembler, ctx *gen.Context, callee masm.CalleeKind) {
	contract.Assert(!c.emitted, "call to %s emitted twice", callee)
	c.emitted = true

	if debug.Enabled {
		debug.Printf("call %s", callee)
		debug.Depth++
		defer func() { debug.Depth-- }()
	}

	m.ReserveStack(c.argStackSpace)
	c.assignArgs(ctx, m, a.ScratchReg())
	m.Call(callee)
	m.FreeStack(c.totalStackSpace)
	ctx.DropLast(len(c.sig.Params))

	// A call must not leave the stack deeper than it was, apart from the live
	// values it preserved.
	limit := c.spOffsetAtCallsite + c.preservedBytes
	contract.Assert(m.SPOffset() <= limit, "stack pointer offset %d after call exceeds %d at call site (%d preserved)", m.SPOffset(), c.spOffsetAtCallsite, c.preservedBytes)

	c.handleResult(ctx)
}

func (c *Call) assignArgs(ctx *gen.Context, m masm.MacroAssembler, scratch reg.R) {
	values := ctx.Stack.PeekN(len(c.sig.Params))

	for i, arg := range c.sig.Params {
		if i >= len(values) {
			contract.Fail("expected value stack entry for argument #%d", i)
		}
		v := values[i]

		switch arg.Kind {
		case abi.ArgReg:
			if debug.Enabled {
				debug.Printf("arg #%d: %s <- %s", i, arg, v)
			}

			ctx.MoveValToReg(v, arg.Reg(), arg.Type, m)

		case abi.ArgStack:
			addr := m.AddressAtSP(arg.Offset())
			size := arg.Type.Size()

			if debug.Enabled {
				debug.Printf("arg #%d: %s <- %s via %s", i, addr, v, scratch)
			}

			ctx.MoveValToReg(v, scratch, wa.IntType(size), m)
			m.Store(scratch, addr, size)

		default:
			contract.Fail("argument #%d has invalid location: %s", i, arg)
		}
	}
}

func (c *Call) handleResult(ctx *gen.Context) {
	result := c.sig.Result

	switch result.Kind {
	case abi.ResultVoid:

	case abi.ResultReg:
		contract.Assert(ctx.Regs.Available(result.Type, result.Reg()), "result register %s is already allocated", result.Reg())

		r := ctx.AcquireReg(result.Type, result.Reg())
		ctx.Stack.Push(val.Reg(result.Type, r))

		if debug.Enabled {
			debug.Printf("result: %s", ctx.Stack.Peek())
		}

	default:
		contract.Fail("unsupported result location: %s", result)
	}
}

// EmitCall performs space accounting and emission in sequence.
func EmitCall(a abi.ABI, sig *abi.Sig, ctx *gen.Context, m masm.MacroAssembler, callee masm.CalleeKind) {
	c := NewCall(a, sig, ctx, m)
	c.Emit(a, m, ctx, callee)
}
