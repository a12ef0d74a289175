// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Dynamic is a variable-capacity buffer.  The default value is a valid buffer.
type Dynamic struct {
	buf     []byte
	maxSize int // Allocation hint; not enforced.
}

func makeDynamicHint(b []byte, maxSizeHint int) Dynamic {
	if len(b) != 0 {
		panic(errors.New("initial buffer slice is not empty"))
	}
	return Dynamic{b, maxSizeHint}
}

// NewDynamic buffer.  The slice must be empty.
func NewDynamic(b []byte) *Dynamic {
	return NewDynamicHint(b, 0)
}

// NewDynamicHint avoids excessive allocations when the final text size can be
// estimated.  The slice must be empty.
func NewDynamicHint(b []byte, maxSizeHint int) *Dynamic {
	d := makeDynamicHint(b, maxSizeHint)
	return &d
}

func (d *Dynamic) Len() int      { return len(d.buf) }
func (d *Dynamic) Bytes() []byte { return d.buf }

func (d *Dynamic) PutByte(value byte) {
	d.Extend(1)[0] = value
}

func (d *Dynamic) PutUint32(i uint32) {
	binary.LittleEndian.PutUint32(d.Extend(4), i)
}

// Extend doesn't panic unless out of memory.
func (d *Dynamic) Extend(n int) []byte {
	offset := len(d.buf)
	size := offset + n

	if size < offset {
		panic(errors.Errorf("buffer size %d + %d out of range", offset, n))
	}

	if size <= cap(d.buf) {
		d.buf = d.buf[:size]
	} else {
		d.grow(size)
	}

	return d.buf[offset:]
}

func (d *Dynamic) grow(size int) {
	newCap := cap(d.buf)*2 + (size - len(d.buf))
	if newCap < size {
		newCap = size
	}
	if newCap > d.maxSize && d.maxSize >= size {
		newCap = d.maxSize
	}

	newBuf := make([]byte, size, newCap)
	copy(newBuf, d.buf)
	d.buf = newBuf
}
