// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports common error types without unnecessary dependencies.
package errors

import (
	"golang.org/x/xerrors"
)

// ModuleError indicates that the error is caused by a malformed or
// unsupported program.  It may wrap an underlying error.
type ModuleError interface {
	error
	PublicError() string
	ModuleError() bool
}

// BufferSizeLimit indicates that generated code didn't fit in the text
// buffer.
type BufferSizeLimit interface {
	error
	BufferSizeLimit() string
}

// AsModuleError finds the first module error in err's chain.
func AsModuleError(err error) (ModuleError, bool) {
	var e ModuleError
	if xerrors.As(err, &e) && e.ModuleError() {
		return e, true
	}
	return nil, false
}

// IsBufferSizeLimit reports whether err's chain contains a text size error.
func IsBufferSizeLimit(err error) bool {
	var e BufferSizeLimit
	return xerrors.As(err, &e)
}
