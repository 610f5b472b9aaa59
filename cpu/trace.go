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

package cpu

import (
	"fmt"
	"io"

	"github.com/RobertZ2011/bibe-emu/isa"
)

// Tracer writes a line of execution trace per fetched instruction. A
// nil *Tracer (the State.Tracer zero value) disables tracing entirely;
// callers never need to guard the nil check themselves since every
// method here does it.
type Tracer struct {
	out io.Writer
}

// NewTracer returns a Tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out}
}

// TraceFetch logs the PC, raw word, disassembly, and register/flag
// state at the moment an instruction was fetched, before it executes.
func (t *Tracer) TraceFetch(s *State, word uint32, instr *isa.Instruction) {
	if t == nil {
		return
	}

	pc := s.PC()
	if instr == nil {
		fmt.Fprintf(t.out, "%08x: %08x  <invalid>\n", pc, word)
		return
	}
	fmt.Fprintf(t.out, "%08x: %08x  %s\n", pc, word, isa.Disassemble(instr))
}

// TraceRegisters dumps the full register file and PSR flags. It is
// verbose, and neither the step loop nor the interrupt engine calls it.
func (t *Tracer) TraceRegisters(s *State) {
	if t == nil {
		return
	}

	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(t.out, "  r%-2d=%08x r%-2d=%08x r%-2d=%08x r%-2d=%08x\n",
			i, s.ReadReg(isa.Register(i)),
			i+1, s.ReadReg(isa.Register(i+1)),
			i+2, s.ReadReg(isa.Register(i+2)),
			i+3, s.ReadReg(isa.Register(i+3)))
	}
	fmt.Fprintf(t.out, "  psr=%08x v=%v c=%v z=%v n=%v im=%v ee=%v\n",
		s.PSR(), s.Overflow(), s.Carry(), s.Zero(), s.Negative(),
		s.InterruptMode(), s.ExceptionEnabled())
}

// TraceFault logs an interrupt or exception as it is raised.
func (t *Tracer) TraceFault(in Interrupt) {
	if t == nil {
		return
	}
	fmt.Fprintf(t.out, "fault: %s err1=%08x err2=%08x\n", in.Kind, in.Err1, in.Err2)
}
