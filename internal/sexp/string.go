// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sexp

import (
	"fmt"
	"strings"
)

// Stringify formats an expression on a single line.
func Stringify(x any) string {
	var b strings.Builder
	stringify(&b, x)
	return b.String()
}

func stringify(b *strings.Builder, x any) {
	switch x := x.(type) {
	case []any:
		b.WriteByte('(')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(' ')
			}
			stringify(b, item)
		}
		b.WriteByte(')')

	case Symbol:
		b.WriteString(string(x))

	case float64:
		fmt.Fprintf(b, "%g", x)

	default:
		fmt.Fprint(b, x)
	}
}
