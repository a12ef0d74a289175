// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug || indebug

package arm64

import (
	"fmt"

	"github.com/bnagy/gapstone"
)

const debugEnabled = true

var debugEngine gapstone.Engine

func init() {
	engine, err := gapstone.New(gapstone.CS_ARCH_ARM64, gapstone.CS_MODE_LITTLE_ENDIAN)
	if err != nil {
		panic(err)
	}

	debugEngine = engine
}

func debugPrintInsn(data []byte) {
	hex := fmt.Sprintf(" ; % x", data)

	insns, err := debugEngine.Disasm(data, 0, 0)
	if err != nil || len(insns) == 0 {
		print(fmt.Sprintf("indebug:%s\n", hex))
		panic(err)
	}

	for _, insn := range insns {
		print(fmt.Sprintf("indebug: %-7s %-25s%s\n", insn.Mnemonic, insn.OpStr, hex))
	}
}
