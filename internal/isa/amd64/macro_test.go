// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"bytes"
	"testing"

	"gate.computer/baseline/buffer"
	"gate.computer/baseline/internal/code"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/codegen"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/object"
	"gate.computer/baseline/wa"
)

func newTestProg(numFuncs int) (*gen.Prog, *object.CallMap) {
	callMap := new(object.CallMap)
	callMap.InitObjectMap(numFuncs)

	return &gen.Prog{
		Text:      code.Buf{Buffer: buffer.NewDynamic(nil)},
		FuncLinks: make([]link.L, numFuncs),
		Map:       callMap,
	}, callMap
}

func checkText(t *testing.T, p *gen.Prog, expect ...byte) {
	t.Helper()

	if b := p.Text.Bytes(); !bytes.Equal(b, expect) {
		t.Errorf("text:\n% x\nexpected:\n% x", b, expect)
	}
}

func TestStack(t *testing.T) {
	p, _ := newTestProg(0)
	m := NewMacroAssembler(p)

	m.Enter()
	m.Push(wa.I64, 3)
	m.Push(wa.F64, 2)
	if m.SPOffset() != 16 {
		t.Error("stack pointer offset:", m.SPOffset())
	}
	m.ReserveStack(0)
	m.LoadStack(wa.I64, 7, 8)
	m.FreeStack(16)
	m.Return()

	checkText(t, p,
		0x55, 0x48, 0x8b, 0xec,       // push rbp; mov rbp, rsp
		0x53,                         // push rbx
		0x48, 0x83, 0xec, 0x08,       // sub rsp, 8
		0xf2, 0x0f, 0x11, 0x14, 0x24, // movsd [rsp], xmm2
		0x48, 0x8b, 0x7c, 0x24, 0x08, // mov rdi, [rsp+8]
		0x48, 0x83, 0xc4, 0x10,       // add rsp, 16
		0x5d, 0xc3,                   // pop rbp; ret
	)

	if m.SPOffset() != 0 {
		t.Error("stack pointer offset:", m.SPOffset())
	}
}

func TestReturnRestoresStack(t *testing.T) {
	p, _ := newTestProg(0)
	m := NewMacroAssembler(p)

	m.Enter()
	m.Push(wa.I32, 0)
	m.Return()

	checkText(t, p,
		0x55, 0x48, 0x8b, 0xec, // push rbp; mov rbp, rsp
		0x50,                   // push rax
		0x48, 0x8b, 0xe5,       // mov rsp, rbp
		0x5d, 0xc3,             // pop rbp; ret
	)
}

func TestMoveImm(t *testing.T) {
	p, _ := newTestProg(0)
	m := NewMacroAssembler(p)

	m.MoveImm(wa.I32, 0, 0xffffffff00000005)
	m.MoveImm(wa.I64, 1, 0xffffffffffffffff)
	m.MoveImm(wa.I64, 8, 0x100000000)
	m.MoveImm(wa.F64, 1, 0x3ff0000000000000)
	m.MoveImm(wa.F32, 0, 0x3f800000)

	checkText(t, p,
		0xb8, 0x05, 0x00, 0x00, 0x00,                               // mov eax, 5
		0x48, 0xc7, 0xc1, 0xff, 0xff, 0xff, 0xff,                   // mov rcx, -1
		0x49, 0xb8, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, // mov r8, 0x100000000
		0x49, 0xbb, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f, // mov r11, 0x3ff0000000000000
		0x66, 0x49, 0x0f, 0x6e, 0xcb,                               // movq xmm1, r11
		0x41, 0xbb, 0x00, 0x00, 0x80, 0x3f,                         // mov r11d, 0x3f800000
		0x66, 0x41, 0x0f, 0x6e, 0xc3,                               // movd xmm0, r11d
	)
}

func TestMoveReg(t *testing.T) {
	p, _ := newTestProg(0)
	m := NewMacroAssembler(p)

	m.MoveReg(wa.I64, 7, wa.F64, 3)
	m.MoveReg(wa.F32, 0, wa.F32, 8)
	m.MoveReg(wa.I64, 2, wa.I64, 12)

	checkText(t, p,
		0x66, 0x48, 0x0f, 0x7e, 0xdf, // movq rdi, xmm3
		0xf3, 0x41, 0x0f, 0x10, 0xc0, // movss xmm0, xmm8
		0x49, 0x8b, 0xd4,             // mov rdx, r12
	)
}

func TestCallLinking(t *testing.T) {
	var isa ISA

	p, callMap := newTestProg(2)

	p.FuncLinks[0].SetAddr(p.Text.Addr)
	m := NewMacroAssembler(p)
	m.Enter()
	m.Call(masm.Direct(1))
	m.Return()

	isa.AlignFunc(p)
	if p.Text.Addr != FuncAlignment {
		t.Fatal("function alignment:", p.Text.Addr)
	}

	p.FuncLinks[1].SetAddr(p.Text.Addr)
	m = NewMacroAssembler(p)
	m.Enter()
	m.Call(masm.Direct(0))
	m.Return()

	for i := range p.FuncLinks {
		isa.UpdateCalls(p.Text.Bytes(), &p.FuncLinks[i])
	}

	checkText(t, p,
		0x55, 0x48, 0x8b, 0xec,       // push rbp; mov rbp, rsp
		0xe8, 0x07, 0x00, 0x00, 0x00, // call 16
		0x5d, 0xc3,                   // pop rbp; ret
		0xcc, 0xcc, 0xcc, 0xcc, 0xcc,
		0x55, 0x48, 0x8b, 0xec,       // push rbp; mov rbp, rsp
		0xe8, 0xe7, 0xff, 0xff, 0xff, // call 0
		0x5d, 0xc3,                   // pop rbp; ret
	)

	expect := []object.CallSite{{RetAddr: 9, StackOffset: 8}, {RetAddr: 25, StackOffset: 8}}
	if len(callMap.CallSites) != len(expect) {
		t.Fatal(callMap.CallSites)
	}
	for i, site := range callMap.CallSites {
		if site != expect[i] {
			t.Errorf("call site #%d: %v", i, site)
		}
	}
}

func TestEmitCall(t *testing.T) {
	var isa ISA

	p, callMap := newTestProg(1)
	m := NewMacroAssembler(p)
	ctx := gen.NewContext(isa.MakeAllocator())

	ctx.PushConst(wa.I32, 1, m)

	sig := isa.Sig(wa.FuncType{Params: []wa.Type{wa.I32}, Result: wa.I32})
	codegen.EmitCall(isa, &sig, ctx, m, masm.Direct(0))

	checkText(t, p,
		0xb8, 0x01, 0x00, 0x00, 0x00, // mov eax, 1
		0x50,                         // push rax
		0x48, 0x83, 0xec, 0x10,       // sub rsp, 16
		0x8b, 0x7c, 0x24, 0x10,       // mov edi, [rsp+16]
		0xe8, 0xfb, 0xff, 0xff, 0xff, // call (unlinked)
		0x48, 0x83, 0xc4, 0x18,       // add rsp, 24
	)

	if m.SPOffset() != 0 {
		t.Error("stack pointer offset:", m.SPOffset())
	}
	if v := ctx.Stack.Peek(); !v.IsReg() || v.Reg() != RegResult {
		t.Error("result:", v)
	}
	if sites := p.FuncLinks[0].Sites; len(sites) != 1 || sites[0] != 19 {
		t.Error("link sites:", sites)
	}
	if len(callMap.CallSites) != 1 || callMap.CallSites[0].StackOffset != 32 {
		t.Error("call sites:", callMap.CallSites)
	}
}
