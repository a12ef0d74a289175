// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pan is the panic zone of the compiler.  Recoverable errors raised
// with Panic or Check are converted back by Error at API boundaries; other
// panics pass through.
package pan

import (
	"io"

	"import.name/pan"
)

type unexpectedEOF struct{}

func (unexpectedEOF) Error() string       { return "unexpected end of program text" }
func (unexpectedEOF) PublicError() string { return "unexpected end of program text" }
func (unexpectedEOF) ModuleError() bool   { return true }
func (unexpectedEOF) Unwrap() error       { return io.ErrUnexpectedEOF }

var z = new(pan.Zone)

var (
	Check = z.Check
	Panic = z.Panic
)

// Error returns the error raised in the zone, or nil if x is nil.  Panics
// which didn't originate from the zone are propagated.
func Error(x any) error {
	err := z.Error(x)
	if err == nil {
		return nil
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return unexpectedEOF{}
	}

	return err
}
