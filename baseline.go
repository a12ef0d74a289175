// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline

import (
	"gate.computer/baseline/compile"
	"gate.computer/baseline/program"
)

type Config = compile.Config
type Object = compile.Object

// Compile a program in s-expression form.
func Compile(config *Config, text []byte) (*Object, error) {
	mod, err := program.Parse(text)
	if err != nil {
		return nil, err
	}

	return compile.Compile(config, mod)
}
