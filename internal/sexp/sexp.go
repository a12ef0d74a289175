// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sexp reads the s-expression program form.  Lists are []any,
// symbols are Symbol, and numbers are int64, uint64 or float64.
package sexp

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"gate.computer/baseline/internal/errors"
	"gate.computer/baseline/internal/pan"
)

type Symbol string

type reader struct {
	sr   *strings.Reader
	line int
}

func (r *reader) readRune() rune {
	c, _, err := r.sr.ReadRune()
	if err == io.EOF {
		pan.Panic(io.ErrUnexpectedEOF)
	}
	pan.Check(err)

	if c == '\n' {
		r.line++
	}
	return c
}

func (r *reader) fail(format string, args ...any) {
	pan.Panic(errors.ModuleErrorf("line %d: "+format, append([]any{r.line}, args...)...))
}

// Parse a single top-level list.  Trailing whitespace and comments are
// allowed.
func Parse(text []byte) (list []any, err error) {
	defer func() { err = pan.Error(recover()) }()

	list = ParsePanic(text)
	return
}

// ParsePanic is like Parse, but raises errors in the panic zone.
func ParsePanic(text []byte) []any {
	r := &reader{strings.NewReader(string(text)), 1}

	exp, ok, end := parse(r)
	if !ok || end {
		r.fail("expected list")
	}
	list, isList := exp.([]any)
	if !isList {
		r.fail("expected list, found %s", Stringify(exp))
	}

	for r.sr.Len() > 0 {
		c := r.readRune()
		switch {
		case unicode.IsSpace(c):

		case c == ';':
			skipComment(r)

		default:
			r.fail("trailing data after top-level list")
		}
	}

	return list
}

func parse(r *reader) (exp any, ok, end bool) {
	var c rune

	for {
		c = r.readRune()
		if c == ';' {
			skipComment(r)
			continue
		}
		if !unicode.IsSpace(c) {
			break
		}
	}

	switch {
	case c == '(':
		exp = parseList(r)
		ok = true

	case unicode.IsLetter(c) || c == '$' || c == '_':
		var s string
		s, end = parseToken(r, c)
		exp = Symbol(s)
		ok = true

	case unicode.IsDigit(c) || c == '-' || c == '+':
		exp, end = parseNumber(r, c)
		ok = true

	case c == ')':
		end = true

	default:
		r.fail("unexpected '%c'", c)
	}

	return
}

func parseList(r *reader) []any {
	list := []any{}

	for {
		item, ok, end := parse(r)
		if ok {
			list = append(list, item)
		}
		if end {
			break
		}
	}

	return list
}

func parseNumber(r *reader, c rune) (exp any, end bool) {
	s, end := parseToken(r, c)

	var err error

	if c == '-' {
		exp, err = strconv.ParseInt(s, 0, 64)
	} else {
		exp, err = strconv.ParseUint(strings.TrimPrefix(s, "+"), 0, 64)
	}
	if err == nil {
		return
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail("invalid number: %s", s)
	}
	exp = f
	return
}

func parseToken(r *reader, c rune) (s string, end bool) {
	buf := []rune{c}

	for {
		c := r.readRune()

		if c == ')' {
			end = true
			break
		}

		if unicode.IsSpace(c) {
			break
		}

		buf = append(buf, c)
	}

	s = string(buf)
	return
}

func skipComment(r *reader) {
	for r.sr.Len() > 0 {
		if r.readRune() == '\n' {
			break
		}
	}
}
