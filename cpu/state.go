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

// Package cpu implements the bibe32 core: the register file, the
// arithmetic kernel, the per-class instruction executors, and the
// interrupt/exception state machine that ties them together.
package cpu

import (
	"sync"

	"github.com/RobertZ2011/bibe-emu/csr"
	"github.com/RobertZ2011/bibe-emu/isa"
	"github.com/RobertZ2011/bibe-emu/memory"
	"github.com/RobertZ2011/bibe-emu/target"
)

// PSR flag bit positions.
const (
	psrBitV                = 1 << 0 // overflow
	psrBitC                = 1 << 1 // carry
	psrBitZ                = 1 << 2 // zero
	psrBitN                = 1 << 3 // negative
	psrBitInterruptMode    = 1 << 4
	psrBitExceptionEnabled = 1 << 5
)

// State is one bibe32 core: a 32-register file (R0 hardwired zero,
// R30 the stack pointer, R31 the program counter), the CSR address
// space, and the memory it's attached to.
type State struct {
	regs [32]uint32

	psr    *csr.PSRBlock
	isr    *csr.IsrBlock
	dbgOut *csr.DbgOutBlock
	csrs   *csr.Collection

	memMu sync.Mutex
	mem   memory.Device

	target *target.Target

	pcTouched        bool
	doubleFaultLatch bool
	lastFault        Kind

	Tracer *Tracer
}

// New builds a core targeting t, attached to mem, with dbgOut as the
// destination for the debug-output block's writes.
func New(t *target.Target, mem memory.Device, dbgOut *csr.DbgOutBlock) *State {
	if dbgOut == nil {
		dbgOut = csr.NewDbgOutBlock(nil)
	}
	s := &State{
		psr:    csr.NewPSRBlock(),
		isr:    csr.NewIsrBlock(),
		dbgOut: dbgOut,
		mem:    mem,
		target: t,
	}
	s.csrs = csr.NewCollection(s.psr, s.isr, s.dbgOut)
	return s
}

// Reset zeroes the register file, every CSR block, and the
// double-fault latch.
func (s *State) Reset() {
	for i := range s.regs {
		s.regs[i] = 0
	}
	s.csrs.Reset()
	s.doubleFaultLatch = false
}

// ReadReg returns a general register's value; R0 always reads 0.
func (s *State) ReadReg(r isa.Register) uint32 {
	if r == isa.R0 {
		return 0
	}
	return s.regs[r]
}

// WriteReg stores to a general register. Writes to R0 are discarded;
// a write to PC marks the PC as touched so the step loop does not
// auto-advance it.
func (s *State) WriteReg(r isa.Register, value uint32) {
	if r == isa.R0 {
		return
	}
	if r == isa.PC {
		s.pcTouched = true
	}
	s.regs[r] = value
}

func (s *State) PC() uint32         { return s.ReadReg(isa.PC) }
func (s *State) SetPC(value uint32) { s.WriteReg(isa.PC, value) }
func (s *State) SP() uint32         { return s.ReadReg(isa.SP) }
func (s *State) SetSP(value uint32) { s.WriteReg(isa.SP, value) }

// PSR returns the raw processor status word.
func (s *State) PSR() uint32 {
	return s.psr.Value()
}

func (s *State) psrFlag(bit uint32) bool {
	return s.psr.Value()&bit != 0
}

func (s *State) setPSRFlag(bit uint32, set bool) {
	v := s.psr.Value()
	if set {
		v |= bit
	} else {
		v &^= bit
	}
	s.psr.SetValue(v)
}

func (s *State) Overflow() bool         { return s.psrFlag(psrBitV) }
func (s *State) Carry() bool            { return s.psrFlag(psrBitC) }
func (s *State) Zero() bool             { return s.psrFlag(psrBitZ) }
func (s *State) Negative() bool         { return s.psrFlag(psrBitN) }
func (s *State) InterruptMode() bool    { return s.psrFlag(psrBitInterruptMode) }
func (s *State) ExceptionEnabled() bool { return s.psrFlag(psrBitExceptionEnabled) }

func (s *State) setInterruptMode(v bool)    { s.setPSRFlag(psrBitInterruptMode, v) }
func (s *State) setExceptionEnabled(v bool) { s.setPSRFlag(psrBitExceptionEnabled, v) }

// updateFlags recomputes Z and N from result and, for cc operations,
// sets V and C from the overflow/carry pair the arithmetic kernel
// computed.
func (s *State) updateFlags(result uint32, overflow, carry bool, isCC bool) {
	v := s.psr.Value()
	if isCC {
		if overflow {
			v |= psrBitV
		} else {
			v &^= psrBitV
		}
		if carry {
			v |= psrBitC
		} else {
			v &^= psrBitC
		}
	}
	if result == 0 {
		v |= psrBitZ
	} else {
		v &^= psrBitZ
	}
	if int32(result) < 0 {
		v |= psrBitN
	} else {
		v &^= psrBitN
	}
	s.psr.SetValue(v)
}

// Target returns the capability descriptor this core was built with.
func (s *State) Target() *target.Target {
	return s.target
}

// ReadCSR routes a CSR read through the block collection.
func (s *State) ReadCSR(reg uint32, width isa.Width) (uint32, bool) {
	return s.csrs.Read(reg, width)
}

// WriteCSR routes a CSR write through the block collection.
func (s *State) WriteCSR(reg uint32, width isa.Width, value uint32) bool {
	return s.csrs.Write(reg, width, value)
}

// ReadMemory performs a validated, mutex-guarded memory read. The
// guard is held only for the duration of this call.
func (s *State) ReadMemory(addr uint32, width isa.Width) (uint32, *memory.AccessError) {
	s.memMu.Lock()
	defer s.memMu.Unlock()
	return memory.Read(s.mem, addr, width)
}

// WriteMemory performs a validated, mutex-guarded memory write.
func (s *State) WriteMemory(addr uint32, width isa.Width, value uint32) *memory.AccessError {
	s.memMu.Lock()
	defer s.memMu.Unlock()
	return memory.Write(s.mem, addr, width, value)
}
