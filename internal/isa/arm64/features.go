// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arm64

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostSupported reports whether the generated code could be executed on the
// host.
func HostSupported() bool {
	return runtime.GOARCH == "arm64" && cpu.ARM64.HasFP
}
