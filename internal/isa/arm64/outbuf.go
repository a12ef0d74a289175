// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"encoding/binary"

	"gate.computer/baseline/internal/code"
)

type outbuf struct {
	buf  [32]byte
	size int
}

func (o *outbuf) copy(text *code.Buf) {
	dest := text.Extend(o.size)
	copy(dest, o.buf[:o.size])

	if debugEnabled {
		for i := 0; i < o.size; i += 4 {
			debugPrintInsn(o.buf[i : i+4])
		}
	}
}

func (o *outbuf) insn(i uint32) {
	binary.LittleEndian.PutUint32(o.buf[o.size:], i)
	o.size += 4
}
