// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package baseline is a single-pass compiler for stack programs which
// consist of constants, direct calls and drops.  Every call site is handled
// by the call emitter: live register values are spilled, the call's stack
// space is computed from the target ABI, arguments are moved to their
// locations, and the stack is reclaimed with a single adjustment after the
// call.
//
// Errors
//
// ModuleError interface is accessible via errors subpackage.  Such errors may
// be returned by parsing and compilation functions.  Unexpected EOF is a
// ModuleError which wraps io.ErrUnexpectedEOF.
//
// Default buffer implementations use the buffer.ErrSizeLimit error to
// indicate that generated code doesn't fit in a target buffer.  Other types of
// errors indicate an internal compiler error.
//
// Internal invariant violations are not returned as errors: they panic with a
// value which describes the violated contract.
package baseline
