// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"gate.computer/baseline/internal/gen/reg"
	"gate.computer/baseline/internal/isa/arm64/in"
)

const (
	RegResult   = reg.R(0)
	RegScratch  = reg.R(16) // ip0
	RegScratch2 = reg.R(17) // ip1
	_           = reg.R(18) // platform
	RegFakeSP   = in.RegFakeSP
	RegFramePtr = reg.R(29)
	RegLink     = reg.R(30)
	RegRealSP   = reg.R(31)
	RegZero     = reg.R(31)
)

var (
	allocatableInt   = reg.Bitmap(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 19, 20, 21, 22, 23, 24, 25, 26, 27)
	allocatableFloat = uint64(0xffffffff)
)
