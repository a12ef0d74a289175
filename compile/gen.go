// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/codegen"
	"gate.computer/baseline/internal/gen/debug"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/isa"
	"gate.computer/baseline/program"
)

func genProgram(target isa.ISA, p *gen.Prog, mod *program.Module) {
	sigs := abi.MakeSigTable(target, mod.Types)

	for i := range mod.Funcs {
		genFunction(target, p, &sigs, mod, uint32(i))
	}

	text := p.Text.Bytes()
	for i := range p.FuncLinks {
		target.UpdateCalls(text, &p.FuncLinks[i])
	}
}

func genFunction(target isa.ISA, p *gen.Prog, sigs *abi.SigTable, mod *program.Module, funcIndex uint32) {
	f := mod.Funcs[funcIndex]
	sig := sigs.Sig(f.TypeIndex)

	target.AlignFunc(p)
	addr := p.Text.Addr
	p.FuncLinks[funcIndex].SetAddr(addr)
	p.Map.PutFuncAddr(uint32(addr))

	if debug.Enabled {
		debug.Printf("function %d at 0x%x: %s", funcIndex, addr, mod.Types[f.TypeIndex])
		debug.Depth++
		defer func() { debug.Depth-- }()
	}

	m := target.NewAssembler(p)
	ctx := gen.NewContext(target.MakeAllocator())

	m.Enter()

	for _, op := range f.Body {
		if debug.Enabled {
			debug.Printf("%s", op)
		}

		switch op.Code {
		case program.OpConst:
			ctx.PushConst(op.Type, op.Bits, m)

		case program.OpCall:
			callee := sigs.Sig(mod.Funcs[op.Index].TypeIndex)
			codegen.EmitCall(target, callee, ctx, m, masm.Direct(op.Index))

		case program.OpDrop:
			ctx.Drop(m, target.WordBytes())

		default:
			contract.Fail("invalid op code: %d", op.Code)
		}
	}

	if !sig.Result.IsVoid() {
		v := ctx.Stack.Peek()
		ctx.MoveValToReg(v, sig.Result.Reg(), sig.Result.Type, m)
		ctx.DropLast(1)
	}

	contract.Assert(ctx.Stack.Len() == 0, "%d values left on value stack at end of function %d", ctx.Stack.Len(), funcIndex)
	ctx.Regs.CheckNoneAllocated()

	m.Return()
}
