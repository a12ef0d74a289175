// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"math"
	"strings"

	"gate.computer/baseline/internal/errors"
	"gate.computer/baseline/internal/pan"
	"gate.computer/baseline/internal/sexp"
	"gate.computer/baseline/wa"
)

// Parse the s-expression form of a module:
//
//	(module
//	  (type (param i32 i64) (result i32))
//	  (type)
//	  (func (type 1) (i32.const 1) (i64.const 2) (call 1) (drop))
//	  (func (type 0) (i32.const 0)))
//
// The result is not validated.
func Parse(text []byte) (m *Module, err error) {
	defer func() { err = pan.Error(recover()) }()

	m = parseModule(sexp.ParsePanic(text))
	return
}

func parseModule(list []any) *Module {
	expectHead(list, "module")

	m := new(Module)

	for _, x := range list[1:] {
		item := expectList(x)

		switch head := headSymbol(item); head {
		case "type":
			m.Types = append(m.Types, parseType(item))

		case "func":
			m.Funcs = append(m.Funcs, parseFunc(item))

		default:
			pan.Panic(errors.ModuleErrorf("unknown module field: %s", head))
		}
	}

	return m
}

func parseType(list []any) (f wa.FuncType) {
	for _, x := range list[1:] {
		item := expectList(x)

		switch head := headSymbol(item); head {
		case "param":
			for _, y := range item[1:] {
				f.Params = append(f.Params, parseValueType(y))
			}

		case "result":
			if len(item) != 2 || f.Result != wa.Void {
				pan.Panic(errors.ModuleError("type has more than one result"))
			}
			f.Result = parseValueType(item[1])

		default:
			pan.Panic(errors.ModuleErrorf("unknown type field: %s", head))
		}
	}

	return
}

func parseFunc(list []any) (f Func) {
	if len(list) < 2 {
		pan.Panic(errors.ModuleError("function type not specified"))
	}

	typeItem := expectList(list[1])
	expectHead(typeItem, "type")
	if len(typeItem) != 2 {
		pan.Panic(errors.ModuleError("function type index expected"))
	}
	f.TypeIndex = parseIndex(typeItem[1])

	for _, x := range list[2:] {
		f.Body = append(f.Body, parseOp(expectList(x)))
	}

	return
}

func parseOp(list []any) Op {
	head := headSymbol(list)

	switch head {
	case "call":
		if len(list) != 2 {
			pan.Panic(errors.ModuleError("call needs a function index"))
		}
		return Call(parseIndex(list[1]))

	case "drop":
		if len(list) != 1 {
			pan.Panic(errors.ModuleError("drop takes no operands"))
		}
		return Drop()
	}

	if typeName, ok := strings.CutSuffix(head, ".const"); ok {
		t, ok := wa.ParseType(typeName)
		if !ok {
			pan.Panic(errors.ModuleErrorf("unknown constant type: %s", typeName))
		}
		if len(list) != 2 {
			pan.Panic(errors.ModuleErrorf("%s needs a value", head))
		}
		return Const(t, parseConst(t, list[1]))
	}

	pan.Panic(errors.ModuleErrorf("unknown operation: %s", head))
	panic("unreachable")
}

func parseConst(t wa.Type, x any) uint64 {
	switch t {
	case wa.I32:
		switch v := x.(type) {
		case int64:
			if v >= math.MinInt32 {
				return uint64(uint32(int32(v)))
			}

		case uint64:
			if v <= math.MaxUint32 {
				return v
			}
		}

	case wa.I64:
		switch v := x.(type) {
		case int64:
			return uint64(v)

		case uint64:
			return v
		}

	case wa.F32:
		if f, ok := floatValue(x); ok {
			return uint64(math.Float32bits(float32(f)))
		}

	case wa.F64:
		if f, ok := floatValue(x); ok {
			return math.Float64bits(f)
		}
	}

	pan.Panic(errors.ModuleErrorf("invalid %s constant: %s", t, sexp.Stringify(x)))
	panic("unreachable")
}

func floatValue(x any) (float64, bool) {
	switch v := x.(type) {
	case float64:
		return v, true

	case int64:
		return float64(v), true

	case uint64:
		return float64(v), true

	default:
		return 0, false
	}
}

func parseValueType(x any) wa.Type {
	if s, ok := x.(sexp.Symbol); ok {
		if t, ok := wa.ParseType(string(s)); ok {
			return t
		}
	}

	pan.Panic(errors.ModuleErrorf("invalid value type: %s", sexp.Stringify(x)))
	panic("unreachable")
}

func parseIndex(x any) uint32 {
	if n, ok := x.(uint64); ok && n <= math.MaxUint32 {
		return uint32(n)
	}

	pan.Panic(errors.ModuleErrorf("invalid index: %s", sexp.Stringify(x)))
	panic("unreachable")
}

func expectList(x any) []any {
	list, ok := x.([]any)
	if !ok {
		pan.Panic(errors.ModuleErrorf("expected list, found %s", sexp.Stringify(x)))
	}
	return list
}

func expectHead(list []any, name string) {
	if head := headSymbol(list); head != name {
		pan.Panic(errors.ModuleErrorf("expected %s, found %s", name, head))
	}
}

func headSymbol(list []any) string {
	if len(list) > 0 {
		if s, ok := list[0].(sexp.Symbol); ok {
			return string(s)
		}
	}

	pan.Panic(errors.ModuleError("list doesn't start with a symbol"))
	panic("unreachable")
}
