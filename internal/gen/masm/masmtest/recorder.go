// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package masmtest implements a MacroAssembler which records operations
// instead of encoding them.
package masmtest

import (
	"fmt"
	"strings"

	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

type OpKind uint8

const (
	OpReserve = OpKind(iota)
	OpFree
	OpStore
	OpCall
	OpPush
	OpLoad
	OpMove
	OpMoveImm
	OpEnter
	OpReturn
)

var opNames = [...]string{
	OpReserve: "reserve",
	OpFree:    "free",
	OpStore:   "store",
	OpCall:    "call",
	OpPush:    "push",
	OpLoad:    "load",
	OpMove:    "move",
	OpMoveImm: "moveimm",
	OpEnter:   "enter",
	OpReturn:  "return",
}

func (k OpKind) String() string { return opNames[k] }

// Op is one recorded operation.  Fields which are irrelevant for the kind are
// zero.
type Op struct {
	Kind       OpKind
	Type       wa.Type // Target type, or source type of push.
	SourceType wa.Type
	Reg        reg.R // Target register, or source register of push and store.
	Source     reg.R
	Offset     int32 // Stack pointer relative offset of load and store.
	Size       wa.Size
	N          int32 // Byte count of reserve and free, or function index of call.
	Bits       uint64
	SPOffset   int32 // Stack pointer offset after the operation.
}

func (op Op) String() string {
	switch op.Kind {
	case OpReserve, OpFree:
		return fmt.Sprintf("%s %d", op.Kind, op.N)
	case OpStore:
		return fmt.Sprintf("store %s [sp%+d] <- %s", op.Size, op.Offset, op.Reg)
	case OpCall:
		return fmt.Sprintf("call #%d", op.N)
	case OpPush:
		return fmt.Sprintf("push %s %s", op.Type, op.Reg)
	case OpLoad:
		return fmt.Sprintf("load %s %s <- [sp%+d]", op.Type, op.Reg, op.Offset)
	case OpMove:
		return fmt.Sprintf("move %s %s <- %s %s", op.Type, op.Reg, op.SourceType, op.Source)
	case OpMoveImm:
		return fmt.Sprintf("moveimm %s %s <- 0x%x", op.Type, op.Reg, op.Bits)
	default:
		return op.Kind.String()
	}
}

// Recorder implements masm.FuncAssembler with word-sized pushes.
type Recorder struct {
	Ops       []Op
	WordBytes int32

	spOffset int32
}

func New(wordBytes int32) *Recorder {
	return &Recorder{WordBytes: wordBytes}
}

func (r *Recorder) record(op Op) {
	op.SPOffset = r.spOffset
	r.Ops = append(r.Ops, op)
}

// Filter returns the operations of a kind.
func (r *Recorder) Filter(kind OpKind) (ops []Op) {
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return
}

func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		fmt.Fprintln(&b, op)
	}
	return b.String()
}

// SetSPOffset simulates earlier stack usage.
func (r *Recorder) SetSPOffset(offset int32) { r.spOffset = offset }

func (r *Recorder) SPOffset() int32 { return r.spOffset }

func (r *Recorder) ReserveStack(n int32) {
	r.spOffset += n
	r.record(Op{Kind: OpReserve, N: n})
}

func (r *Recorder) FreeStack(n int32) {
	r.spOffset -= n
	r.record(Op{Kind: OpFree, N: n})
}

func (r *Recorder) AddressAtSP(offset int32) masm.Address {
	return masm.Address{Offset: offset}
}

func (r *Recorder) Store(source reg.R, addr masm.Address, size wa.Size) {
	r.record(Op{Kind: OpStore, Reg: source, Offset: addr.Offset, Size: size})
}

func (r *Recorder) Call(callee masm.CalleeKind) {
	r.record(Op{Kind: OpCall, N: int32(callee.FuncIndex())})
}

func (r *Recorder) Push(t wa.Type, source reg.R) {
	r.spOffset += r.WordBytes
	r.record(Op{Kind: OpPush, Type: t, Reg: source})
}

func (r *Recorder) LoadStack(t wa.Type, target reg.R, offset int32) {
	r.record(Op{Kind: OpLoad, Type: t, Reg: target, Offset: offset, Size: t.Size()})
}

func (r *Recorder) MoveReg(targetType wa.Type, target reg.R, sourceType wa.Type, source reg.R) {
	r.record(Op{Kind: OpMove, Type: targetType, Reg: target, SourceType: sourceType, Source: source})
}

func (r *Recorder) MoveImm(t wa.Type, target reg.R, bits uint64) {
	r.record(Op{Kind: OpMoveImm, Type: t, Reg: target, Bits: bits})
}

func (r *Recorder) Enter() {
	r.record(Op{Kind: OpEnter})
}

func (r *Recorder) Return() {
	r.spOffset = 0
	r.record(Op{Kind: OpReturn})
}
