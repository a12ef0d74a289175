// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stack models the operand stack of the function being compiled.
package stack

import (
	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen/val"
)

// Stack of values.  The deepest entry is at index 0.
type Stack struct {
	entries []val.V
}

func (s *Stack) Len() int           { return len(s.entries) }
func (s *Stack) At(i int) val.V     { return s.entries[i] }
func (s *Stack) Set(i int, v val.V) { s.entries[i] = v }

func (s *Stack) Push(v val.V) {
	s.entries = append(s.entries, v)
}

func (s *Stack) Pop() (v val.V) {
	n := len(s.entries) - 1
	contract.Assert(n >= 0, "value stack underflow")
	v = s.entries[n]
	s.entries = s.entries[:n]
	return
}

func (s *Stack) Peek() val.V {
	contract.Assert(len(s.entries) > 0, "peek at empty value stack")
	return s.entries[len(s.entries)-1]
}

// PeekN returns the topmost n entries, deepest first.  Fewer entries are
// returned if the stack is shallower than n.  The slice aliases the stack.
func (s *Stack) PeekN(n int) []val.V {
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return s.entries[len(s.entries)-n:]
}

// Truncate the stack to the given length.
func (s *Stack) Truncate(n int) {
	contract.Assert(n >= 0 && n <= len(s.entries), "value stack truncated from %d to %d entries", len(s.entries), n)
	s.entries = s.entries[:n]
}
