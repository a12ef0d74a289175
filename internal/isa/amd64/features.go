// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostSupported reports whether the generated code could be executed on the
// host.  Floating-point values require SSE2.
func HostSupported() bool {
	return runtime.GOARCH == "amd64" && cpu.X86.HasSSE2
}
