// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

// Command bibe-emu loads a flat bibe32 memory image and runs it to
// completion, reporting final register state and execution stats.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/RobertZ2011/bibe-emu/cpu"
	"github.com/RobertZ2011/bibe-emu/csr"
	"github.com/RobertZ2011/bibe-emu/isa"
	"github.com/RobertZ2011/bibe-emu/memory"
	"github.com/RobertZ2011/bibe-emu/target"
)

var (
	traceFile   = flag.String("trace", "", "Write execution trace to file")
	maxCycles   = flag.Uint64("max-cycles", 1_000_000, "Stop after N cycles")
	targetStr   = flag.String("target", "bibe32i", "Target string (bibe32 + extension letters)")
	memSize     = flag.Uint64("mem-size", 1<<20, "Memory size in bytes, if larger than the image")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

const version = "1.0.0"

var savedTermState *term.State

// setupTerminal puts the terminal in raw mode so the debug-output
// block's byte stream isn't line-buffered or echoed back.
func setupTerminal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}

	state, err := term.GetState(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("failed to get terminal state: %v", err)
	}
	savedTermState = state

	_, err = term.MakeRaw(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %v", err)
	}

	return nil
}

func restoreTerminal() {
	if savedTermState != nil && term.IsTerminal(int(os.Stdout.Fd())) {
		term.Restore(int(os.Stdout.Fd()), savedTermState)
		savedTermState = nil
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("bibe32 Emulator v%s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}

	imageFile := args[0]

	data, err := os.ReadFile(imageFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading image file: %v\n", err)
		os.Exit(1)
	}

	tgt, ok := target.Parse(*targetStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid target string %q\n", *targetStr)
		os.Exit(1)
	}

	size := uint64(len(data))
	if *memSize > size {
		size = *memSize
	}
	mem := memory.NewFlat(uint32(size))
	for i, b := range data {
		mem.WriteAt(uint32(i), isa.Byte, uint32(b))
	}

	dbgOut := csr.NewDbgOutBlock(os.Stdout)
	c := cpu.New(tgt, mem, dbgOut)

	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating trace file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		c.Tracer = cpu.NewTracer(f)
		fmt.Fprintf(f, "bibe32 Emulator Trace\n")
		fmt.Fprintf(f, "Image: %s\n", imageFile)
		fmt.Fprintf(f, "Size: %d bytes\n", len(data))
		fmt.Fprintf(f, "========================================\n\n")
	}

	if err := setupTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up terminal: %v\n", err)
		os.Exit(1)
	}
	defer restoreTerminal()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		restoreTerminal()
		os.Exit(130)
	}()

	c.Reset()

	startTime := time.Now()
	steps, err := c.Run(int(*maxCycles))
	elapsed := time.Since(startTime)

	restoreTerminal()

	fmt.Fprintf(os.Stderr, "\n========================================\n")
	fmt.Fprintf(os.Stderr, "Execution completed\n")
	fmt.Fprintf(os.Stderr, "Steps: %d\n", steps)
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed.Round(time.Millisecond))

	if elapsed.Seconds() > 0 {
		mhz := (float64(steps) / 1_000_000.0) / elapsed.Seconds()
		fmt.Fprintf(os.Stderr, "Speed: %.3f MHz\n", mhz)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Exit: normal (SWI)\n")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <image-file>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "bibe32 Emulator - run a flat bibe32 memory image\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nArguments:\n")
	fmt.Fprintf(os.Stderr, "  <image-file>    raw bibe32 memory image, loaded at address 0\n")
	fmt.Fprintf(os.Stderr, "\nThe emulator runs until an SWI fault or -max-cycles steps, whichever\n")
	fmt.Fprintf(os.Stderr, "comes first. Debug-output block writes go to stdout.\n")
}
