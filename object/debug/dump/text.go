// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo

package dump

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnagy/gapstone"
)

var (
	amd64Regs = strings.NewReplacer(
		"%r11d", "scratch",
		"%r11", "scratch",
		"%rsp", "sp",
		"%rbp", "fp",
	)

	arm64Regs = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`\b([wx])16\b`), "${1}scratch"},
		{regexp.MustCompile(`\b([wx])17\b`), "${1}scratch2"},
		{regexp.MustCompile(`\bx28\b`), "fakesp"},
		{regexp.MustCompile(`\bx29\b`), "fp"},
		{regexp.MustCompile(`\bx30\b`), "link"},
	}
)

// Text disassembles machine code generated for the named architecture.
// Functions are labeled and call targets are replaced by function names.
func Text(w io.Writer, arch string, text []byte, textAddr uintptr, funcAddrs []uint32) (err error) {
	var (
		engine  gapstone.Engine
		padInsn uint
	)

	switch arch {
	case "amd64":
		engine, err = gapstone.New(gapstone.CS_ARCH_X86, gapstone.CS_MODE_64)
		if err == nil {
			err = engine.SetOption(gapstone.CS_OPT_SYNTAX, gapstone.CS_OPT_SYNTAX_ATT)
		}
		padInsn = gapstone.X86_INS_INT3

	case "arm64":
		engine, err = gapstone.New(gapstone.CS_ARCH_ARM64, gapstone.CS_MODE_LITTLE_ENDIAN)
		padInsn = gapstone.ARM64_INS_BRK

	default:
		return fmt.Errorf("unsupported architecture: %s", arch)
	}
	if err != nil {
		return
	}
	defer engine.Close()

	insns, err := engine.Disasm(text, 0, 0)
	if err != nil {
		return
	}
	if len(insns) == 0 {
		return
	}

	targets := make(map[uint]string)
	for i, addr := range funcAddrs {
		targets[uint(addr)] = fmt.Sprintf("func.%d", i)
	}

	for i := range insns {
		rewriteInsn(arch, &insns[i], targets)
	}

	lastAddr := textAddr + uintptr(insns[len(insns)-1].Address)
	addrWidth := (len(fmt.Sprintf("%x", lastAddr)) + 7) &^ 7

	var addrFmt string
	if textAddr == 0 { // relative
		addrFmt = fmt.Sprintf("%%%dx", addrWidth)
	} else {
		addrFmt = fmt.Sprintf("%%0%dx", addrWidth)
	}

	skipPad := false

	for _, insn := range insns {
		if insn.Id == padInsn {
			if skipPad {
				continue
			}
			skipPad = true
		} else {
			skipPad = false
		}

		addr := textAddr + uintptr(insn.Address)

		if name, found := targets[insn.Address]; found {
			fmt.Fprintf(w, "\n%s:\n", name)
		}
		fmt.Fprintf(w, addrFmt, addr)
		fmt.Fprint(w, "\t", strings.TrimSpace(fmt.Sprintf("%s\t%s", insn.Mnemonic, insn.OpStr)), "\n")
	}

	fmt.Fprintln(w)
	return
}

func rewriteInsn(arch string, insn *gapstone.Instruction, targets map[uint]string) {
	var call bool

	switch arch {
	case "amd64":
		insn.OpStr = amd64Regs.Replace(insn.OpStr)
		call = strings.HasPrefix(insn.Mnemonic, "call") && strings.HasPrefix(insn.OpStr, "0x")

	case "arm64":
		for _, x := range arm64Regs {
			insn.OpStr = x.re.ReplaceAllString(insn.OpStr, x.name)
		}
		call = insn.Mnemonic == "bl"
	}

	if !call {
		return
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(insn.OpStr, "#"), 0, 64)
	if err != nil {
		return
	}
	if name, found := targets[uint(addr)]; found {
		insn.OpStr = name
	}
}
