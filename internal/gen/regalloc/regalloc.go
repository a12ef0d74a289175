// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regalloc tracks ownership of allocatable registers.  The policy is
// trivial: the lowest-numbered free register is handed out first.
package regalloc

import (
	"fmt"
	"math/bits"

	"gate.computer/baseline/internal/contract"
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/wa"
)

type state struct {
	allocatable uint64
	available   uint64
}

func (s *state) alloc() (r reg.R, ok bool) {
	if s.available == 0 {
		return
	}

	r = reg.R(bits.TrailingZeros64(s.available))
	s.available &^= 1 << r
	ok = true
	return
}

type Allocator struct {
	categories [2]state
}

// Make an allocator for the given register bitmaps (see reg.Bitmap).
func Make(intRegs, floatRegs uint64) Allocator {
	return Allocator{
		categories: [2]state{
			wa.Int:   {intRegs, intRegs},
			wa.Float: {floatRegs, floatRegs},
		},
	}
}

// Available reports if the register is allocatable and not owned by anyone.
func (a *Allocator) Available(t wa.Type, r reg.R) bool {
	return a.categories[t.Category()].available&(1<<r) != 0
}

// Alloc the lowest free register of the type's category.
func (a *Allocator) Alloc(t wa.Type) (r reg.R, ok bool) {
	return a.categories[t.Category()].alloc()
}

// AllocSpecific register.  The register must be available.
func (a *Allocator) AllocSpecific(t wa.Type, r reg.R) {
	s := &a.categories[t.Category()]
	contract.Assert(s.available&(1<<r) != 0, "%s register %s is not available for allocation", t.Category(), r)
	s.available &^= 1 << r
}

// Free a register.  Freeing an unallocatable register is a no-op.
func (a *Allocator) Free(t wa.Type, r reg.R) {
	s := &a.categories[t.Category()]
	mask := uint64(1) << r

	if s.allocatable&mask == 0 {
		return
	}

	contract.Assert(s.available&mask == 0, "%s register %s freed twice", t.Category(), r)
	s.available |= mask
}

func (a *Allocator) FreeAll() {
	for i := range a.categories {
		s := &a.categories[i]
		s.available = s.allocatable
	}
}

func (a *Allocator) CheckNoneAllocated() {
	for cat, s := range a.categories {
		if s.available != s.allocatable {
			contract.Fail("%s registers still allocated: %s", wa.ScalarCategory(cat), fmtMask(s.allocatable&^s.available))
		}
	}
}

func fmtMask(mask uint64) (s string) {
	for mask != 0 {
		r := reg.R(bits.TrailingZeros64(mask))
		mask &^= 1 << r
		if s != "" {
			s += " "
		}
		s += fmt.Sprint(r)
	}
	return
}
