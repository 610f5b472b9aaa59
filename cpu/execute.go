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

	"github.com/RobertZ2011/bibe-emu/csr"
	"github.com/RobertZ2011/bibe-emu/isa"
	"github.com/RobertZ2011/bibe-emu/memory"
)

// execFault is a non-nil return from an executor; the caller feeds it
// to the interrupt engine instead of advancing the PC.
type execFault struct {
	interrupt Interrupt
}

func fault(kind Kind) *execFault {
	return &execFault{Interrupt{Kind: kind}}
}

func memFault(kind Kind, addr uint32) *execFault {
	return &execFault{Interrupt{Kind: kind, Err1: addr}}
}

// dispatch executes one decoded instruction and reports the fault, if
// any, the executor raised.
func (s *State) dispatch(instr *isa.Instruction) *execFault {
	if instr == nil {
		return fault(OpcodeFault)
	}

	switch instr.Class {
	case isa.ClassRRR:
		return s.executeRRR(instr.RRR)
	case isa.ClassRRI:
		return s.executeRRI(instr.RRI)
	case isa.ClassMemory:
		return s.executeMemory(instr.Memory)
	case isa.ClassCSR:
		return s.executeCSR(instr.CSR)
	case isa.ClassJump:
		return s.executeJump(instr.Jump)
	default:
		return fault(OpcodeFault)
	}
}

func (s *State) executeRRR(i *isa.RRR) *execFault {
	if !s.target.SupportsBinOp(i.Op) {
		return fault(OpcodeFault)
	}

	lhs := s.ReadReg(i.LHS)
	rhs := applyShift(i.Shift, s.ReadReg(i.RHS))

	result, ok := EvalBinOp(i.Op, lhs, rhs)
	if !ok {
		return fault(DivideByZero)
	}

	if i.Op.IsCC() {
		s.updateFlags(result.value, result.overflow, result.carry, true)
	}
	s.WriteReg(i.Dest, result.value)
	return nil
}

func (s *State) executeRRI(i *isa.RRI) *execFault {
	if !s.target.SupportsBinOp(i.Op) {
		return fault(OpcodeFault)
	}
	if !s.evalCondition(i.Cond) {
		return nil
	}

	src := s.ReadReg(i.Src)
	imm := uint32(i.Imm)

	result, ok := EvalBinOp(i.Op, src, imm)
	if !ok {
		return fault(DivideByZero)
	}

	if i.Op.IsCC() {
		s.updateFlags(result.value, result.overflow, result.carry, true)
	}
	s.WriteReg(i.Dest, result.value)
	return nil
}

func (s *State) executeMemory(i *isa.Memory) *execFault {
	var addr uint32
	if i.Mode == isa.AddrRR {
		index := applyShift(isa.Shift{Kind: i.IndexShift, Amount: i.Shift}, s.ReadReg(i.Index))
		addr = s.ReadReg(i.Base) + index
	} else {
		addr = s.ReadReg(i.Base) + uint32(i.Imm)
	}

	switch i.Op {
	case isa.Load:
		value, err := s.ReadMemory(addr, i.Width)
		if err != nil {
			return s.memoryAccessFault(err)
		}
		s.WriteReg(i.Reg, value)

	case isa.Store:
		value := s.ReadReg(i.Reg)
		if err := s.WriteMemory(addr, i.Width, value); err != nil {
			return s.memoryAccessFault(err)
		}
	}

	return nil
}

func (s *State) memoryAccessFault(err *memory.AccessError) *execFault {
	if err.Alignment {
		return memFault(AlignFault, err.Addr)
	}
	return memFault(MemoryFault, err.Addr)
}

func (s *State) executeCSR(i *isa.CSR) *execFault {
	switch i.Op {
	case isa.CSRRead:
		value, ok := s.ReadCSR(i.Index, i.Width)
		if !ok {
			return fault(OpcodeFault)
		}
		s.WriteReg(i.Reg, value)

	case isa.CSRWrite:
		if i.Index == csr.ISREnterReg {
			return fault(SWI)
		}
		if i.Index == csr.ISRExitReg {
			return fault(IsrExit)
		}
		if !s.WriteCSR(i.Index, i.Width, s.ReadReg(i.Reg)) {
			return fault(OpcodeFault)
		}
	}

	return nil
}

func (s *State) executeJump(i *isa.Jump) *execFault {
	s.SetPC(i.Imm << 2)
	return nil
}

// Step runs one fetch/decode/execute cycle: fetch a word at PC,
// decode it, execute it, and (absent a fault) advance PC by 4 unless
// the instruction itself touched PC. A fault, whatever its source, is
// fed to the interrupt engine instead of advancing.
func (s *State) Step() error {
	s.pcTouched = false

	word, err := s.ReadMemory(s.PC(), isa.Word)
	if err != nil {
		s.raiseInterrupt(s.memoryAccessFault(err).interrupt)
		return nil
	}

	instr := isa.Decode(word)
	if s.Tracer != nil {
		s.Tracer.TraceFetch(s, word, instr)
	}

	f := s.dispatch(instr)
	if f != nil {
		s.raiseInterrupt(f.interrupt)
		return nil
	}

	if !s.pcTouched {
		s.SetPC(s.PC() + 4)
	}
	return nil
}

// Run steps the core until maxSteps have executed or an SWI fault is
// observed, whichever comes first. It returns the number of steps
// actually taken.
func (s *State) Run(maxSteps int) (int, error) {
	for i := 0; i < maxSteps; i++ {
		if err := s.Step(); err != nil {
			return i, err
		}
		if s.InterruptMode() && s.lastFault == SWI {
			return i + 1, nil
		}
	}
	return maxSteps, fmt.Errorf("cpu: exceeded step limit (%d)", maxSteps)
}

// RunProgram executes a pre-decoded instruction list directly, one
// instruction per PC/4 index, bypassing memory fetch and the
// interrupt engine entirely. A software interrupt is the conventional
// batch-mode exit criterion: RunProgram returns normally as soon as
// one is dispatched. Any other fault is reported as an error, as is
// running off the end of the program. It returns the number of
// instructions actually dispatched.
func (s *State) RunProgram(program []*isa.Instruction, maxSteps int) (int, error) {
	for i := 0; i < maxSteps; i++ {
		idx := s.PC() / 4
		if int(idx) >= len(program) {
			return i, fmt.Errorf("cpu: pc %#x out of program bounds", s.PC())
		}

		s.pcTouched = false
		f := s.dispatch(program[idx])
		if f != nil {
			if f.interrupt.Kind == SWI {
				return i + 1, nil
			}
			return i + 1, fmt.Errorf("cpu: unexpected %s at pc %#x", f.interrupt.Kind, s.PC())
		}

		if !s.pcTouched {
			s.SetPC(s.PC() + 4)
		}
	}
	return maxSteps, fmt.Errorf("cpu: exceeded step limit (%d)", maxSteps)
}
