// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"sort"
)

// FuncMap implements compile.ObjectMapper.  It stores all function addresses,
// but no call information.
type FuncMap struct {
	FuncAddrs []uint32
}

func (m *FuncMap) InitObjectMap(numFuncs int) {
	m.FuncAddrs = make([]uint32, 0, numFuncs)
}

func (m *FuncMap) PutFuncAddr(addr uint32) {
	m.FuncAddrs = append(m.FuncAddrs, addr)
}

func (*FuncMap) PutCallSite(uint32, int32) {}

// FindFunc containing the text address.
func (m *FuncMap) FindFunc(addr uint32) (index int, found bool) {
	index = sort.Search(len(m.FuncAddrs), func(i int) bool {
		return m.FuncAddrs[i] > addr
	}) - 1
	found = index >= 0
	return
}
