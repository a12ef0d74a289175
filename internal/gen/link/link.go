// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"github.com/pkg/errors"
)

// L is a call target.  Sites are return addresses of the calls which need to
// be updated when the target address is known.
type L struct {
	Sites   []int32
	Addr    int32
	Defined bool
}

func (l *L) AddSite(addr int32) {
	l.Sites = append(l.Sites, addr)
}

func (l *L) SetAddr(addr int32) {
	l.Addr = addr
	l.Defined = true
}

func (l *L) FinalAddr() int32 {
	if !l.Defined {
		panic(errors.New("link address undefined while updating call instruction"))
	}
	return l.Addr
}
