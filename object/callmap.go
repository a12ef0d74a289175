// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"sort"
)

// CallSite represents an offset within the text section (machine code) where a
// function call is made.
type CallSite struct {
	RetAddr     uint32 // The address immediately after the call instruction
	StackOffset int32  // Calling function's stack usage at time of call
}

func FindCallSite(a []CallSite, retAddr uint32) (i int, found bool) {
	i = sort.Search(len(a), func(i int) bool {
		return a[i].RetAddr >= retAddr
	})
	found = i < len(a) && a[i].RetAddr == retAddr
	return
}

// CallMap implements compile.ObjectMapper.  It stores function addresses and
// sites of function calls.
//
// Initial CallSites capacity may be allocated by initializing the field with a
// non-nil, empty array.
type CallMap struct {
	FuncMap
	CallSites []CallSite
}

func (m *CallMap) InitObjectMap(numFuncs int) {
	if len(m.CallSites) > 0 {
		panic("CallSites is not empty")
	}

	m.FuncMap.InitObjectMap(numFuncs)

	if m.CallSites == nil {
		// Conservative guess (assuming there are no unused functions).
		m.CallSites = make([]CallSite, 0, numFuncs)
	}
}

func (m *CallMap) PutCallSite(retAddr uint32, stackOffset int32) {
	m.CallSites = append(m.CallSites, CallSite{retAddr, stackOffset})
}

// FindCall returns the caller's function index and its stack usage at the
// call site.
func (m *CallMap) FindCall(retAddr uint32) (funcIndex int, stackOffset int32, found bool) {
	i, ok := FindCallSite(m.CallSites, retAddr)
	if !ok {
		return
	}

	funcIndex, found = m.FuncMap.FindFunc(retAddr)
	stackOffset = m.CallSites[i].StackOffset
	return
}
