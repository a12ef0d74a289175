// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reg

import (
	"fmt"
)

// R is an ISA-specific register number.  Integer and floating-point registers
// share the number space; the value type selects the register file.
type R byte

func (r R) String() string {
	return fmt.Sprintf("r%d", r)
}

// Bitmap of allocatable registers.
func Bitmap(regs ...R) (mask uint64) {
	for _, r := range regs {
		mask |= uint64(1) << r
	}
	return
}
