// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"gate.computer/baseline/internal/code"
	"gate.computer/baseline/internal/gen/link"
	"gate.computer/baseline/internal/obj"
)

// Prog is the state shared by the functions of a module.
type Prog struct {
	Text      code.Buf
	FuncLinks []link.L
	Map       obj.ObjectMapper
}
