// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build gofuzz

package baseline

import (
	"gate.computer/baseline/buffer"
	"gate.computer/baseline/internal/isa"
)

func Fuzz(data []byte) int {
	result := 0

	for _, arch := range isa.Names() {
		config := &Config{
			Arch: arch,
			Text: buffer.NewLimited(nil, 0x100000),
		}

		if _, err := Compile(config, data); err == nil {
			result = 1
		}
	}

	return result
}
