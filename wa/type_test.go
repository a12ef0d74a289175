// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wa

import (
	"testing"
)

func TestTypeProperties(t *testing.T) {
	for _, x := range []struct {
		t    Type
		cat  ScalarCategory
		size Size
	}{
		{I32, Int, Size32},
		{I64, Int, Size64},
		{F32, Float, Size32},
		{F64, Float, Size64},
	} {
		if x.t.Category() != x.cat {
			t.Errorf("%s category: %s", x.t, x.t.Category())
		}
		if x.t.Size() != x.size {
			t.Errorf("%s size: %s", x.t, x.t.Size())
		}
		if p, ok := ParseType(x.t.String()); !ok || p != x.t {
			t.Errorf("ParseType(%q) = %s, %v", x.t.String(), p, ok)
		}
		if IntType(x.size) != IntType(x.t.Size()) || IntType(x.size).Category() != Int {
			t.Errorf("IntType(%s) = %s", x.size, IntType(x.size))
		}
	}

	if _, ok := ParseType("void"); ok {
		t.Error("void parsed as value type")
	}
}

func TestFuncTypeString(t *testing.T) {
	f := FuncType{Params: []Type{I32, F64}, Result: I64}
	if s := f.String(); s != "(i32, f64) i64" {
		t.Error(s)
	}
	if !f.Equal(FuncType{Params: []Type{I32, F64}, Result: I64}) {
		t.Error("not equal to itself")
	}
	if f.Equal(FuncType{Params: []Type{I32, F64}}) {
		t.Error("result type ignored")
	}
}
