// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/isa/amd64/in"
)

const (
	RegResult   = reg.R(0)    // rax xmm0
	_           = reg.R(1)    // rcx
	_           = reg.R(2)    // rdx
	_           = reg.R(3)    // rbx
	RegStackPtr = in.RegStack // rsp
	RegFramePtr = reg.R(5)    // rbp
	_           = reg.R(6)    // rsi
	_           = reg.R(7)    // rdi
	_           = reg.R(8)    // r8
	_           = reg.R(9)    // r9
	_           = reg.R(10)   // r10
	RegScratch  = reg.R(11)   // r11
	_           = reg.R(12)   // r12
	_           = reg.R(13)   // r13
	_           = reg.R(14)   // r14
	_           = reg.R(15)   // r15 xmm15
)

var (
	allocatableInt   = reg.Bitmap(0, 1, 2, 3, 6, 7, 8, 9, 10, 12, 13, 14, 15)
	allocatableFloat = uint64(0xffff)
)
