// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile generates machine code for stack programs.
package compile

import (
	"gate.computer/baseline/buffer"
	"gate.computer/baseline/internal"
	"gate.computer/baseline/internal/code"
	"gate.computer/baseline/internal/gen"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/isa"
	"gate.computer/baseline/internal/pan"
	"gate.computer/baseline/object"
	"gate.computer/baseline/program"
	"golang.org/x/xerrors"
)

const (
	MaxTextSize           = 0x7fff0000
	defaultTextBufferSize = 0x10000
)

// CodeBuffer is where the machine code is written.  Buffer implementations
// may panic with an error which implements the BufferSizeLimit interface of
// the errors package.
type CodeBuffer = code.Buffer

// Config for a single compiler invocation.
//
// MaxTextSize field limits memory allocations only when Text field is not
// specified.  To limit memory allocations when providing a custom CodeBuffer
// implementation, the implementation must take care of it.
type Config struct {
	Arch        string     // Host architecture if empty.
	MaxTextSize int        // Set to MaxTextSize if unspecified or too large.
	Text        CodeBuffer // Initialized with default implementation if nil.
}

// Object code.  FuncAddrs and CallSites are relative to the start of Text.
type Object struct {
	Arch string
	Text []byte
	object.CallMap
}

// Compile a module.  Malformed modules and text size limit yield errors.
func Compile(config *Config, mod *program.Module) (obj *Object, err error) {
	if internal.DontPanic() {
		defer func() {
			if err = pan.Error(recover()); err != nil {
				obj = nil
				err = xerrors.Errorf("compile: %w", err)
			}
		}()
	}

	obj = compile(config, mod)
	return
}

func compile(config *Config, mod *program.Module) *Object {
	target, found := isa.Lookup(config.Arch)
	if !found {
		pan.Panic(xerrors.Errorf("unsupported architecture: %q", config.Arch))
	}

	pan.Check(mod.Validate())

	if config.MaxTextSize == 0 || config.MaxTextSize > MaxTextSize {
		config.MaxTextSize = MaxTextSize
	}

	if config.Text == nil {
		alloc := defaultTextBufferSize
		if alloc > config.MaxTextSize {
			alloc = config.MaxTextSize
		}
		config.Text = buffer.NewLimited(make([]byte, 0, alloc), config.MaxTextSize)
	}

	obj := &Object{Arch: target.Name()}
	obj.InitObjectMap(len(mod.Funcs))

	p := &gen.Prog{
		Text:      code.Buf{Buffer: config.Text},
		FuncLinks: make([]link.L, len(mod.Funcs)),
		Map:       &obj.CallMap,
	}

	genProgram(target, p, mod)

	if len(config.Text.Bytes()) > config.MaxTextSize {
		pan.Panic(buffer.ErrSizeLimit)
	}

	obj.Text = config.Text.Bytes()
	return obj
}
