// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

type Storage uint8

const (
	Reg = Storage(iota)
	Mem
)

func (s Storage) String() string {
	switch s {
	case Reg:
		return "register"

	case Mem:
		return "memory"

	default:
		return "<invalid value storage type>"
	}
}
