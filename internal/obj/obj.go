// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

// ObjectMapper gathers information about positions of functions and function
// calls within the text (machine code) section.
type ObjectMapper interface {
	InitObjectMap(numFuncs int)
	PutFuncAddr(addr uint32)
	PutCallSite(returnAddr uint32, stackOffset int32)
}

type DummyMapper struct{}

func (DummyMapper) InitObjectMap(int)         {}
func (DummyMapper) PutFuncAddr(uint32)        {}
func (DummyMapper) PutCallSite(uint32, int32) {}
