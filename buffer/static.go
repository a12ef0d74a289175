// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"encoding/binary"

	"gate.computer/baseline/internal/pan"
)

// Static is a fixed-capacity buffer, for wrapping a preallocated or
// memory-mapped region.  The default value is a zero-capacity buffer.
type Static struct {
	buf []byte
}

// NewStatic buffer.  The length of b is truncated to zero.
func NewStatic(b []byte) *Static {
	return &Static{b[:0]}
}

func (s *Static) Cap() int      { return cap(s.buf) }
func (s *Static) Len() int      { return len(s.buf) }
func (s *Static) Bytes() []byte { return s.buf }

// PutByte panics with ErrStaticSize if the buffer is already full.
func (s *Static) PutByte(value byte) {
	s.Extend(1)[0] = value
}

// PutUint32 panics with ErrStaticSize if 4 bytes cannot be appended.
func (s *Static) PutUint32(i uint32) {
	binary.LittleEndian.PutUint32(s.Extend(4), i)
}

// Extend panics with ErrStaticSize if n bytes cannot be appended.
func (s *Static) Extend(n int) []byte {
	offset := len(s.buf)
	size := offset + n
	if size > cap(s.buf) {
		pan.Panic(ErrStaticSize)
	}
	s.buf = s.buf[:size]
	return s.buf[offset:]
}
