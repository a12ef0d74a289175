// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program baseline compiles a stack program and describes the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"gate.computer/baseline/compile"
	"gate.computer/baseline/internal/isa"
	"gate.computer/baseline/object/debug/dump"
	"gate.computer/baseline/program"
	"github.com/xyproto/env/v2"
	"golang.org/x/sys/cpu"
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] programfile\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment: BASELINE_ARCH, BASELINE_TEXTSIZE, BASELINE_DUMP, BASELINE_VERBOSE\n")
	}

	var (
		arch     = env.Str("BASELINE_ARCH", runtime.GOARCH)
		textSize = env.Int("BASELINE_TEXTSIZE", compile.MaxTextSize)
		dumpText = env.Bool("BASELINE_DUMP")
		verbose  = env.Bool("BASELINE_VERBOSE")
	)

	flag.StringVar(&arch, "arch", arch, "target architecture")
	flag.IntVar(&textSize, "textsize", textSize, "maximum program text size")
	flag.BoolVar(&dumpText, "dumptext", dumpText, "disassemble the generated code to stdout")
	flag.BoolVar(&verbose, "v", verbose, "verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if verbose {
		log.Printf("host: %s (x86 sse2: %v, arm64 fp: %v)", runtime.GOARCH, cpu.X86.HasSSE2, cpu.ARM64.HasFP)
		log.Printf("target: %s (executable on host: %v)", arch, isa.HostSupported(arch))
	}

	text, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	mod, err := program.Parse(text)
	if err != nil {
		log.Fatal(err)
	}

	obj, err := compile.Compile(&compile.Config{Arch: arch, MaxTextSize: textSize}, mod)
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		for i, addr := range obj.FuncAddrs {
			log.Printf("function %d at 0x%x: %s", i, addr, mod.FuncType(uint32(i)))
		}
		for _, site := range obj.CallSites {
			log.Printf("call site 0x%x: stack offset %d", site.RetAddr, site.StackOffset)
		}
	}

	fmt.Printf("%s: %d bytes of text, %d functions, %d call sites\n", obj.Arch, len(obj.Text), len(obj.FuncAddrs), len(obj.CallSites))

	if dumpText {
		if err := dump.Text(os.Stdout, obj.Arch, obj.Text, 0, obj.FuncAddrs); err != nil {
			log.Fatal(err)
		}
	}
}
