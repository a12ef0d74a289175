// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

const (
	wordBytes      = 8
	callStackAlign = 16
	argBaseOffset  = 16 // Saved frame pointer and link register.
)

var paramRegs = abi.Regs{
	wa.Int:   {0, 1, 2, 3, 4, 5, 6, 7},
	wa.Float: {0, 1, 2, 3, 4, 5, 6, 7},
}

var resultRegs = abi.Regs{
	wa.Int:   {RegResult},
	wa.Float: {RegResult},
}

// ABI is similar to AAPCS64, but parameters which don't fit in registers are
// passed in 8-byte stack slots.
type ABI struct{}

func (ABI) WordBytes() int32      { return wordBytes }
func (ABI) CallStackAlign() int32 { return callStackAlign }
func (ABI) ArgBaseOffset() int32  { return argBaseOffset }
func (ABI) ScratchReg() reg.R     { return RegScratch }

func (ABI) Sig(f wa.FuncType) abi.Sig {
	return abi.Classify(f, paramRegs, resultRegs, wordBytes)
}
