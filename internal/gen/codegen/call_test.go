// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"math/rand"
	"testing"

	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/masm/masmtest"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/gen/regalloc"
	"gate.computer/baseline/internal/gen/val"
	"gate.computer/baseline/wa"
)

const (
	testWordBytes = 8
	testAlign     = 16
	testScratch   = reg.R(11)
)

var (
	testParamRegs = abi.Regs{
		wa.Int:   {7, 6},
		wa.Float: {0},
	}

	testResultRegs = abi.Regs{
		wa.Int:   {0},
		wa.Float: {0},
	}
)

type testABI struct{}

func (testABI) WordBytes() int32      { return testWordBytes }
func (testABI) CallStackAlign() int32 { return testAlign }
func (testABI) ArgBaseOffset() int32  { return 16 }
func (testABI) ScratchReg() reg.R     { return testScratch }

func (testABI) Sig(f wa.FuncType) abi.Sig {
	return abi.Classify(f, testParamRegs, testResultRegs, testWordBytes)
}

func newTestContext() *gen.Context {
	return gen.NewContext(regalloc.Make(
		reg.Bitmap(0, 1, 2, 3, 6, 7, 8, 9, 10),
		reg.Bitmap(0, 1, 2, 3, 4, 5, 6, 7),
	))
}

func newTestSig(params []wa.Type, result wa.Type) *abi.Sig {
	sig := testABI{}.Sig(wa.FuncType{Params: params, Result: result})
	return &sig
}

func pushReg(ctx *gen.Context, t wa.Type, r reg.R) {
	ctx.Stack.Push(val.Reg(t, ctx.AcquireReg(t, r)))
}

func expectViolation(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		t.Helper()
		if _, ok := contract.Recovered(recover()); !ok {
			t.Error("no contract violation")
		}
	}()

	f()
}

func checkOps(t *testing.T, m *masmtest.Recorder, expect []string) {
	t.Helper()

	if len(m.Ops) != len(expect) {
		t.Fatalf("%d ops (expected %d):\n%s", len(m.Ops), len(expect), m)
	}
	for i, op := range m.Ops {
		if s := op.String(); s != expect[i] {
			t.Errorf("op #%d: %q (expected %q)", i, s, expect[i])
		}
	}
}

func TestCallRegisterArgs(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	pushReg(ctx, wa.I32, 2)
	pushReg(ctx, wa.I32, 3)

	c := NewCall(a, newTestSig([]wa.Type{wa.I32, wa.I32}, wa.Void), ctx, m)

	if n := c.ArgStackSpace(); n != 0 {
		t.Error("arg stack space:", n)
	}
	if n := c.TotalStackSpace(); n != 2*testWordBytes {
		t.Error("total stack space:", n)
	}
	if n := c.PreservedBytes(); n != 0 {
		t.Error("preserved bytes:", n)
	}

	c.Emit(a, m, ctx, masm.Direct(5))

	checkOps(t, m, []string{
		"push i32 r2",
		"push i32 r3",
		"reserve 0",
		"load i32 r7 <- [sp+8]",
		"load i32 r6 <- [sp+0]",
		"call #5",
		"free 16",
	})

	if n := ctx.Stack.Len(); n != 0 {
		t.Error("value stack length:", n)
	}
	if n := m.SPOffset(); n != 0 {
		t.Error("stack pointer offset:", n)
	}
	ctx.Regs.CheckNoneAllocated()
}

func TestCallStackArgs(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	params := []wa.Type{wa.I64, wa.I64, wa.I64, wa.I64, wa.I64}

	for _, r := range []reg.R{0, 1, 2, 3, 8} {
		pushReg(ctx, wa.I64, r)
	}
	ctx.SpillAll(m)
	m.Ops = nil

	c := NewCall(a, newTestSig(params, wa.Void), ctx, m)

	if len(m.Ops) != 0 {
		t.Errorf("unexpected spills:\n%s", m)
	}
	// Frame adjustment of 8 bytes on top of three stack slots.
	if n := c.ArgStackSpace(); n != 32 {
		t.Error("arg stack space:", n)
	}
	if n := c.TotalStackSpace(); n != 5*testWordBytes+32 {
		t.Error("total stack space:", n)
	}

	c.Emit(a, m, ctx, masm.Direct(0))

	checkOps(t, m, []string{
		"reserve 32",
		"load i64 r7 <- [sp+64]",
		"load i64 r6 <- [sp+56]",
		"load i64 r11 <- [sp+48]",
		"store 64-bit [sp+0] <- r11",
		"load i64 r11 <- [sp+40]",
		"store 64-bit [sp+8] <- r11",
		"load i64 r11 <- [sp+32]",
		"store 64-bit [sp+16] <- r11",
		"call #0",
		"free 72",
	})

	stores := m.Filter(masmtest.OpStore)
	for i, op := range stores {
		if op.Offset != int32(i)*testWordBytes {
			t.Errorf("store #%d at offset %d", i, op.Offset)
		}
		if op.Reg != testScratch {
			t.Errorf("store #%d from %s", i, op.Reg)
		}
	}

	if n := m.SPOffset(); n != 0 {
		t.Error("stack pointer offset:", n)
	}
	if n := ctx.Stack.Len(); n != 0 {
		t.Error("value stack length:", n)
	}
}

func TestCallFloatStackArg(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	pushReg(ctx, wa.F64, 1)
	pushReg(ctx, wa.F32, 2)

	c := NewCall(a, newTestSig([]wa.Type{wa.F64, wa.F32}, wa.F64), ctx, m)
	c.Emit(a, m, ctx, masm.Direct(3))

	checkOps(t, m, []string{
		"push f64 r1",
		"push f32 r2",
		"reserve 16",
		"load f64 r0 <- [sp+24]",
		"load i32 r11 <- [sp+16]",
		"store 32-bit [sp+0] <- r11",
		"call #3",
		"free 32",
	})

	if v := ctx.Stack.Peek(); !v.IsReg() || v.Type != wa.F64 || v.Reg() != 0 {
		t.Error("result:", v)
	}
}

func TestCallPreservesValuesBelow(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	pushReg(ctx, wa.I64, 8)
	pushReg(ctx, wa.I32, 2)

	c := NewCall(a, newTestSig([]wa.Type{wa.I32}, wa.I32), ctx, m)

	if n := c.PreservedBytes(); n != testWordBytes {
		t.Error("preserved bytes:", n)
	}
	if n := c.ArgStackSpace(); n != 0 {
		t.Error("arg stack space:", n)
	}
	if n := c.TotalStackSpace(); n != testWordBytes {
		t.Error("total stack space:", n)
	}

	c.Emit(a, m, ctx, masm.Direct(1))

	if n := m.SPOffset(); n != testWordBytes {
		t.Error("stack pointer offset:", n)
	}
	if n := ctx.Stack.Len(); n != 2 {
		t.Fatal("value stack length:", n)
	}
	if v := ctx.Stack.At(0); !v.IsMem() || v.Slot() != testWordBytes {
		t.Error("preserved value:", v)
	}
	if v := ctx.Stack.At(1); !v.IsReg() || v.Reg() != 0 {
		t.Error("result:", v)
	}
}

func TestCallZeroArgs(t *testing.T) {
	a := testABI{}
	sig := newTestSig(nil, wa.Void)

	for _, numLive := range []int{0, 1, 2, 3} {
		m := masmtest.New(testWordBytes)
		ctx := newTestContext()

		for i := 0; i < numLive; i++ {
			pushReg(ctx, wa.I32, reg.R(i))
		}

		c := NewCall(a, sig, ctx, m)

		spilled := int32(numLive) * testWordBytes
		padding := abi.AlignTo(abi.FrameAdjustment(spilled, a.ArgBaseOffset(), testAlign), testAlign)

		if n := c.ArgStackSpace(); n != padding {
			t.Errorf("%d live: arg stack space %d (expected %d)", numLive, n, padding)
		}
		if n := c.TotalStackSpace(); n != padding {
			t.Errorf("%d live: total stack space %d (expected %d)", numLive, n, padding)
		}
		if n := c.PreservedBytes(); n != spilled {
			t.Errorf("%d live: preserved bytes %d", numLive, n)
		}

		c.Emit(a, m, ctx, masm.Direct(0))

		if n := ctx.Stack.Len(); n != numLive {
			t.Errorf("%d live: value stack length %d", numLive, n)
		}
		for i := 0; i < numLive; i++ {
			if v := ctx.Stack.At(i); !v.IsMem() {
				t.Errorf("%d live: value #%d is %s", numLive, i, v)
			}
		}
		if n := m.SPOffset(); n != spilled {
			t.Errorf("%d live: stack pointer offset %d", numLive, n)
		}
		ctx.Regs.CheckNoneAllocated()
	}
}

func TestCallResult(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	pushReg(ctx, wa.I32, 3)

	if !ctx.Regs.Available(wa.I64, 0) {
		t.Fatal("result register is not available before call")
	}

	EmitCall(a, newTestSig([]wa.Type{wa.I32}, wa.I64), ctx, m, masm.Direct(2))

	if n := ctx.Stack.Len(); n != 1 {
		t.Fatal("value stack length:", n)
	}
	if v := ctx.Stack.Peek(); !v.IsReg() || v.Type != wa.I64 || v.Reg() != 0 {
		t.Error("result:", v)
	}
	if ctx.Regs.Available(wa.I64, 0) {
		t.Error("result register is still available")
	}
}

func TestCallResultRegisterTaken(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	ctx.Regs.AllocSpecific(wa.I64, 0)

	expectViolation(t, func() {
		EmitCall(a, newTestSig(nil, wa.I64), ctx, m, masm.Direct(0))
	})
}

func TestCallInsufficientValues(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	pushReg(ctx, wa.I32, 2)

	expectViolation(t, func() {
		NewCall(a, newTestSig([]wa.Type{wa.I32, wa.I32}, wa.Void), ctx, m)
	})
}

func TestCallEmitTwice(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	c := NewCall(a, newTestSig(nil, wa.Void), ctx, m)
	c.Emit(a, m, ctx, masm.Direct(0))

	expectViolation(t, func() {
		c.Emit(a, m, ctx, masm.Direct(0))
	})
}

var testTypes = []wa.Type{wa.I32, wa.I64, wa.F32, wa.F64}

func TestCallSequence(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()
	r := rand.New(rand.NewSource(0))

	for i := 0; i < 500; i++ {
		for ctx.Stack.Len() > 0 {
			ctx.Drop(m, testWordBytes)
		}

		params := make([]wa.Type, r.Intn(7))
		for j := range params {
			params[j] = testTypes[r.Intn(len(testTypes))]
		}

		result := wa.Void
		if r.Intn(3) != 0 {
			result = testTypes[r.Intn(len(testTypes))]
		}

		spillAt := r.Intn(len(params) + 1)
		for j, typ := range params {
			if j == spillAt {
				ctx.SpillAll(m)
			}
			ctx.PushConst(typ, r.Uint64(), m)
		}

		sig := newTestSig(params, result)
		spBefore := m.SPOffset()
		lenBefore := ctx.Stack.Len()

		c := NewCall(a, sig, ctx, m)

		if c.ArgStackSpace()%testAlign != 0 {
			t.Fatalf("call #%d: unaligned arg stack space %d", i, c.ArgStackSpace())
		}
		if c.TotalStackSpace() < c.ArgStackSpace() {
			t.Fatalf("call #%d: total stack space %d < arg stack space %d", i, c.TotalStackSpace(), c.ArgStackSpace())
		}
		if c.SPOffsetAtCallsite() != spBefore {
			t.Fatalf("call #%d: call site offset %d (expected %d)", i, c.SPOffsetAtCallsite(), spBefore)
		}

		c.Emit(a, m, ctx, masm.Direct(uint32(i)))

		if sp := m.SPOffset(); sp > spBefore {
			t.Fatalf("call #%d: stack pointer offset %d after call (%d before)", i, sp, spBefore)
		}

		lenAfter := lenBefore - len(params)
		if result != wa.Void {
			lenAfter++
		}
		if n := ctx.Stack.Len(); n != lenAfter {
			t.Fatalf("call #%d: value stack length %d (expected %d)", i, n, lenAfter)
		}
	}
}

// leakyRecorder frees less stack than it is asked to.
type leakyRecorder struct {
	*masmtest.Recorder
}

func (r leakyRecorder) FreeStack(n int32) {
	r.Recorder.FreeStack(n - testWordBytes)
}

func TestCallStackLeak(t *testing.T) {
	a := testABI{}
	m := leakyRecorder{masmtest.New(testWordBytes)}
	ctx := newTestContext()

	pushReg(ctx, wa.I32, 2)

	c := NewCall(a, newTestSig([]wa.Type{wa.I32}, wa.Void), ctx, m)

	expectViolation(t, func() {
		c.Emit(a, m, ctx, masm.Direct(0))
	})
}

func TestCallUnsupportedResult(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()

	sig := newTestSig(nil, wa.Void)
	sig.Result = abi.Result{Kind: abi.ResultReg + 1, Type: wa.I64}

	c := NewCall(a, sig, ctx, m)

	expectViolation(t, func() {
		c.Emit(a, m, ctx, masm.Direct(0))
	})
}

func TestCallSequenceWithLiveValues(t *testing.T) {
	a := testABI{}
	m := masmtest.New(testWordBytes)
	ctx := newTestContext()
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		if ctx.Stack.Len() > 10 {
			for ctx.Stack.Len() > 2 {
				ctx.Drop(m, testWordBytes)
			}
		}

		for n := r.Intn(4); n > 0; n-- {
			ctx.PushConst(testTypes[r.Intn(len(testTypes))], r.Uint64(), m)
		}

		params := make([]wa.Type, r.Intn(7))
		for j := range params {
			params[j] = testTypes[r.Intn(len(testTypes))]
		}

		result := wa.Void
		if r.Intn(3) != 0 {
			result = testTypes[r.Intn(len(testTypes))]
		}

		spillAt := r.Intn(len(params) + 1)
		for j, typ := range params {
			if j == spillAt {
				ctx.SpillAll(m)
			}
			ctx.PushConst(typ, r.Uint64(), m)
		}

		spBefore := m.SPOffset()
		numBelow := ctx.Stack.Len() - len(params)

		c := NewCall(a, newTestSig(params, result), ctx, m)
		c.Emit(a, m, ctx, masm.Direct(uint32(i)))

		sp := m.SPOffset()
		if sp > spBefore+c.PreservedBytes() {
			t.Fatalf("call #%d: stack pointer offset %d after call (%d before, %d preserved)", i, sp, spBefore, c.PreservedBytes())
		}
		if c.PreservedBytes() == 0 && sp > spBefore {
			t.Fatalf("call #%d: stack pointer offset %d after call (%d before)", i, sp, spBefore)
		}

		for j := 0; j < numBelow; j++ {
			if v := ctx.Stack.At(j); !v.IsMem() || v.Slot() > sp {
				t.Fatalf("call #%d: value #%d below arguments is %s", i, j, v)
			}
		}

		numAfter := numBelow
		if result != wa.Void {
			numAfter++
		}
		if n := ctx.Stack.Len(); n != numAfter {
			t.Fatalf("call #%d: value stack length %d (expected %d)", i, n, numAfter)
		}
	}
}
