// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"math"
	"strings"
	"testing"

	"gate.computer/baseline/errors"
	"gate.computer/baseline/wa"
)

const testText = `
(module
  (type (param i32 i64) (result i32))
  (type)
  (type (param f32 f64) (result f64))
  (func (type 1) (i32.const 1) (i64.const -2) (call 1) (drop))
  (func (type 0) (i32.const 0xffffffff))
  (func (type 2) (f32.const 1) (f64.const 0.5) (call 2)))
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(testText))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Types) != 3 || len(m.Funcs) != 3 {
		t.Fatal(m)
	}
	if !m.Types[0].Equal(wa.FuncType{Params: []wa.Type{wa.I32, wa.I64}, Result: wa.I32}) {
		t.Error("type 0:", m.Types[0])
	}
	if !m.Types[1].Equal(wa.FuncType{}) {
		t.Error("type 1:", m.Types[1])
	}

	expect := [][]Op{
		{Const(wa.I32, 1), Const(wa.I64, math.MaxUint64-1), Call(1), Drop()},
		{Const(wa.I32, math.MaxUint32)},
		{Const(wa.F32, uint64(math.Float32bits(1))), Const(wa.F64, math.Float64bits(0.5)), Call(2)},
	}
	for i, f := range m.Funcs {
		if len(f.Body) != len(expect[i]) {
			t.Errorf("function %d: %v", i, f.Body)
			continue
		}
		for j, op := range f.Body {
			if op != expect[i][j] {
				t.Errorf("function %d: op %d: %s", i, j, op)
			}
		}
	}

	// The last function calls itself forever, which is fine.
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}

func TestParseError(t *testing.T) {
	for _, text := range []string{
		"(func)",
		"(module (global))",
		"(module (type (param x32)))",
		"(module (type (result i32) (result i64)))",
		"(module (func))",
		"(module (func (type -1)))",
		"(module (type) (func (type 0) (nop)))",
		"(module (type) (func (type 0) (i32.const 0x100000000)))",
		"(module (type) (func (type 0) (i32.const -2147483649)))",
		"(module (type) (func (type 0) (v128.const 0)))",
		"(module (type) (func (type 0) (call)))",
		"(module (type) (func (type 0) (drop 1)))",
	} {
		_, err := Parse([]byte(text))
		if err == nil {
			t.Errorf("%s: no error", text)
			continue
		}
		if _, ok := errors.AsModuleError(err); !ok {
			t.Errorf("%s: %v", text, err)
		}
	}
}

func TestValidateError(t *testing.T) {
	for _, x := range []struct {
		text  string
		match string
	}{
		{"(module (func (type 0)))", "type index 0 out of bounds"},
		{"(module (type) (func (type 0) (call 1)))", "function index 1 out of bounds"},
		{"(module (type) (func (type 0) (drop)))", "drop with empty operand stack"},
		{"(module (type) (func (type 0) (i32.const 1)))", "at end of body"},
		{"(module (type (result i64)) (func (type 0) (i32.const 1)))", "at end of body"},
		{"(module (type (param i64)) (func (type 0) (i32.const 1) (call 0)))", "argument 0 of call to function 0 has type i32"},
		{"(module (type (param i64 i64)) (func (type 0) (i64.const 1) (call 0)))", "needs 2 arguments"},
	} {
		m, err := Parse([]byte(x.text))
		if err != nil {
			t.Fatal(x.text, err)
		}

		err = m.Validate()
		if err == nil {
			t.Errorf("%s: no error", x.text)
			continue
		}
		if _, ok := errors.AsModuleError(err); !ok {
			t.Errorf("%s: not a module error: %v", x.text, err)
		}
		if !strings.Contains(err.Error(), x.match) {
			t.Errorf("%s: %v", x.text, err)
		}
	}
}

func TestValidateInvalidConst(t *testing.T) {
	m := &Module{
		Types: []wa.FuncType{{}},
		Funcs: []Func{{Body: []Op{Const(wa.Void, 0), Drop()}}},
	}
	if err := m.Validate(); err == nil {
		t.Error("void constant accepted")
	}
}
