// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contract implements fatal checks for internal invariants of the
// code generator.  A Violation is a compiler defect: it is never converted to
// an error by the API boundary, so it aborts compilation.
package contract

import (
	"fmt"
)

// Violation is the panic value of a failed check.
type Violation struct {
	text string
}

func (v Violation) Error() string  { return "internal compiler error: " + v.text }
func (v Violation) String() string { return v.text }

// Fail panics with a Violation.
func Fail(format string, args ...interface{}) {
	panic(Violation{fmt.Sprintf(format, args...)})
}

// Assert panics with a Violation if the condition is false.
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		Fail(format, args...)
	}
}

// Recovered returns the Violation if x is one.
func Recovered(x interface{}) (v Violation, ok bool) {
	v, ok = x.(Violation)
	return
}
