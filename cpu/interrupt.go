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
	"github.com/RobertZ2011/bibe-emu/csr"
	"github.com/RobertZ2011/bibe-emu/isa"
)

// Kind identifies an architectural fault or interrupt.
type Kind int

const (
	Reset Kind = iota
	NMI
	Breakpoint
	AlignFault
	MemoryFault
	OpcodeFault
	DoubleFault
	SWI
)

// IsrExit is a sentinel, not a vector: it requests handler exit
// rather than entry. Its value is chosen clear of the Reserved(i) and
// IRQ(i) ranges so it can never collide with a real vector.
const IsrExit Kind = -1

// DivideByZero has no fixed slot in the architectural vector table;
// it vectors through the first reserved slot.
const DivideByZero Kind = Kind(reservedBase)

func (k Kind) String() string {
	switch k {
	case Reset:
		return "reset"
	case NMI:
		return "nmi"
	case Breakpoint:
		return "breakpoint"
	case AlignFault:
		return "align-fault"
	case MemoryFault:
		return "memory-fault"
	case OpcodeFault:
		return "opcode-fault"
	case DoubleFault:
		return "double-fault"
	case SWI:
		return "swi"
	case DivideByZero:
		return "divide-by-zero"
	case IsrExit:
		return "isr-exit"
	default:
		return "reserved-or-irq"
	}
}

const (
	reservedBase = 8
	irqBase      = 16
)

// Reserved returns the Kind for reserved vector i.
func Reserved(i uint32) Kind { return Kind(reservedBase + i) }

// IRQ returns the Kind for external interrupt request i.
func IRQ(i uint32) Kind { return Kind(irqBase + i) }

// Interrupt carries a fault kind plus the address data recorded in
// err1/err2 for a memory-related fault.
type Interrupt struct {
	Kind Kind
	Err1 uint32
	Err2 uint32
}

// vector returns the handler table index for k. IsrExit has no
// vector; callers must not ask for one.
func (k Kind) vector() uint32 {
	return uint32(k)
}

// raiseInterrupt drives the entry/exit/nested-fault state machine
// described by the interrupt engine. It is the single path by which a
// fault changes control flow; ordinary execution never calls it
// directly except via the Step loop.
func (s *State) raiseInterrupt(in Interrupt) {
	if s.InterruptMode() {
		s.handleNestedFault(in)
		return
	}

	if in.Kind == IsrExit {
		// Exit requested while not in a handler: nothing to unwind.
		return
	}

	s.enterHandler(in)
}

func (s *State) enterHandler(in Interrupt) {
	s.lastFault = in.Kind
	if s.Tracer != nil {
		s.Tracer.TraceFault(in)
	}
	s.swapBanks()
	s.setExceptionEnabled(false)
	s.setInterruptMode(true)
	s.isr.SetControlReg(csr.ISRErr1Reg, in.Err1)
	s.isr.SetControlReg(csr.ISRErr2Reg, in.Err2)
	base := s.isr.ControlReg(csr.ISRBaseVectorReg)
	s.SetPC(base + 4*in.Kind.vector())
}

func (s *State) exitHandler() {
	s.swapBanks()
	s.isr.SetControlReg(csr.ISRErr1Reg, 0)
	s.isr.SetControlReg(csr.ISRErr2Reg, 0)
	s.setExceptionEnabled(true)
	s.setInterruptMode(false)
}

func (s *State) handleNestedFault(in Interrupt) {
	if in.Kind == IsrExit {
		s.exitHandler()
		return
	}

	if in.Kind == NMI {
		s.enterHandler(in)
		return
	}

	if !s.doubleFaultLatch {
		s.doubleFaultLatch = true
		s.enterHandler(Interrupt{Kind: DoubleFault})
		return
	}

	s.fullReset()
}

func (s *State) fullReset() {
	s.Reset()
}

// swapBanks exchanges the live R1..R31 register file (PC included) with the shadow
// bank held in the ISR block, register by register. Bank A covers
// R1..R16, bank B covers R17..R27,SP,FP,LR,PC (where FP=R28, LR=R29).
func (s *State) swapBanks() {
	bankA := s.isr.BankA()
	for i := 0; i < 16; i++ {
		reg := isa.Register(i + 1)
		s.regs[reg], bankA[i] = bankA[i], s.regs[reg]
	}

	bankB := s.isr.BankB()
	for i := 0; i < 15; i++ {
		reg := isa.Register(i + 17)
		s.regs[reg], bankB[i] = bankB[i], s.regs[reg]
	}
}
