// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isa selects a code generation backend by architecture name.
package isa

import (
	"runtime"

	"gate.computer/baseline/internal/abi"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/gen/masm"
	"gate.computer/baseline/internal/gen/regalloc"
	"gate.computer/baseline/internal/isa/amd64"
	"gate.computer/baseline/internal/isa/arm64"
)

// ISA is a target architecture.
type ISA interface {
	abi.ABI

	Name() string
	MakeAllocator() regalloc.Allocator
	NewAssembler(p *gen.Prog) masm.FuncAssembler

	// AlignFunc pads the text before a function.
	AlignFunc(p *gen.Prog)

	// UpdateCalls patches the call instructions which were emitted before
	// the target address was known.
	UpdateCalls(text []byte, l *link.L)
}

var isas = map[string]ISA{
	"amd64": amd64.ISA{},
	"arm64": arm64.ISA{},
}

// Lookup an ISA by GOARCH-style name.  Empty name means the host
// architecture.
func Lookup(arch string) (ISA, bool) {
	if arch == "" {
		arch = runtime.GOARCH
	}
	x, found := isas[arch]
	return x, found
}

// Names of the supported architectures.
func Names() []string {
	return []string{"amd64", "arm64"}
}

// HostSupported reports whether code generated for the named architecture
// can be executed on the host.
func HostSupported(arch string) bool {
	switch arch {
	case "amd64":
		return amd64.HostSupported()

	case "arm64":
		return arm64.HostSupported()
	}
	return false
}
