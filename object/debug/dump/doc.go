// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump prints generated machine code in human-readable form.  It
// needs the capstone library via cgo.
package dump
