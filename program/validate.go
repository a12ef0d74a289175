// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"gate.computer/baseline/internal/errors"
	"gate.computer/baseline/wa"
)

func validType(t wa.Type) bool {
	switch t {
	case wa.I32, wa.I64, wa.F32, wa.F64:
		return true

	default:
		return false
	}
}

// Validate the module.  The returned error implements the ModuleError
// interface of the errors package.
func (m *Module) Validate() error {
	for i, f := range m.Types {
		for j, t := range f.Params {
			if !validType(t) {
				return errors.ModuleErrorf("type %d: parameter %d has invalid type %s", i, j, t)
			}
		}
		if f.Result != wa.Void && !validType(f.Result) {
			return errors.ModuleErrorf("type %d: invalid result type %s", i, f.Result)
		}
	}

	for i, f := range m.Funcs {
		if int(f.TypeIndex) >= len(m.Types) {
			return errors.ModuleErrorf("function %d: type index %d out of bounds", i, f.TypeIndex)
		}
	}

	for i, f := range m.Funcs {
		if err := m.validateFunc(i, f); err != nil {
			return err
		}
	}

	return nil
}

func (m *Module) validateFunc(funcIndex int, f Func) error {
	var stack []wa.Type

	for i, op := range f.Body {
		switch op.Code {
		case OpConst:
			if !validType(op.Type) {
				return errors.ModuleErrorf("function %d: op %d: invalid constant type %s", funcIndex, i, op.Type)
			}
			stack = append(stack, op.Type)

		case OpCall:
			if int(op.Index) >= len(m.Funcs) {
				return errors.ModuleErrorf("function %d: op %d: function index %d out of bounds", funcIndex, i, op.Index)
			}

			sig := m.FuncType(op.Index)
			if len(stack) < len(sig.Params) {
				return errors.ModuleErrorf("function %d: op %d: call to function %d needs %d arguments; operand stack has %d values", funcIndex, i, op.Index, len(sig.Params), len(stack))
			}

			args := stack[len(stack)-len(sig.Params):]
			for j, t := range sig.Params {
				if args[j] != t {
					return errors.ModuleErrorf("function %d: op %d: argument %d of call to function %d has type %s; expected %s", funcIndex, i, j, op.Index, args[j], t)
				}
			}

			stack = stack[:len(stack)-len(sig.Params)]
			if sig.Result != wa.Void {
				stack = append(stack, sig.Result)
			}

		case OpDrop:
			if len(stack) == 0 {
				return errors.ModuleErrorf("function %d: op %d: drop with empty operand stack", funcIndex, i)
			}
			stack = stack[:len(stack)-1]

		default:
			return errors.ModuleErrorf("function %d: op %d: invalid op code %d", funcIndex, i, op.Code)
		}
	}

	var expect []wa.Type
	if result := m.Types[f.TypeIndex].Result; result != wa.Void {
		expect = []wa.Type{result}
	}

	if len(stack) != len(expect) || (len(expect) > 0 && stack[0] != expect[0]) {
		return errors.ModuleErrorf("function %d: operand stack %v at end of body; expected %v", funcIndex, stack, expect)
	}

	return nil
}
