// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"gate.computer/baseline/internal/gen/reg"
)

// RegFakeSP holds the value stack pointer.  The real stack pointer is
// synchronized with it only around calls.
const RegFakeSP = reg.R(28)
