// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abi

import (
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

// Sig is the concrete calling convention of a function type.
type Sig struct {
	Params []Arg
	Result Result

	// StackBytes needed by the stack arguments, without alignment.
	StackBytes int32
}

func (s *Sig) NumParams() int { return len(s.Params) }

// Regs are parameter or result registers indexed by wa.ScalarCategory.
type Regs [2][]reg.R

// Classify assigns the parameters to registers in order until a category's
// registers are exhausted; the rest are passed in consecutive stack slots in
// parameter order.
func Classify(f wa.FuncType, params, results Regs, slotSize int32) (s Sig) {
	var used [2]int

	s.Params = make([]Arg, len(f.Params))

	for i, t := range f.Params {
		cat := t.Category()

		if n := used[cat]; n < len(params[cat]) {
			s.Params[i] = RegArg(t, params[cat][n])
			used[cat]++
		} else {
			s.Params[i] = StackArg(t, s.StackBytes)
			s.StackBytes += slotSize
		}
	}

	if f.Result != wa.Void {
		s.Result = RegResult(f.Result, results[f.Result.Category()][0])
	}

	return
}

// SigTable owns the signatures of a module's function types.  Call sites
// borrow them by type index.
type SigTable struct {
	sigs []Sig
}

func MakeSigTable(a ABI, types []wa.FuncType) SigTable {
	sigs := make([]Sig, len(types))
	for i, f := range types {
		sigs[i] = a.Sig(f)
	}
	return SigTable{sigs}
}

func (t *SigTable) Len() int { return len(t.sigs) }

// Sig pointer remains valid for the lifetime of the table.
func (t *SigTable) Sig(typeIndex uint32) *Sig {
	return &t.sigs[typeIndex]
}
