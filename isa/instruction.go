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

package isa

// Class identifies one of the five instruction shapes the dispatcher
// recognizes.
type Class uint8

const (
	ClassRRR Class = iota
	ClassRRI
	ClassMemory
	ClassCSR
	ClassJump
)

func (c Class) String() string {
	switch c {
	case ClassRRR:
		return "rrr"
	case ClassRRI:
		return "rri"
	case ClassMemory:
		return "memory"
	case ClassCSR:
		return "csr"
	case ClassJump:
		return "jump"
	default:
		return "unknown"
	}
}

// RRR is a register-register-register instruction: dest = lhs OP shift(rhs).
type RRR struct {
	Op    BinOp
	Dest  Register
	LHS   Register
	RHS   Register
	Shift Shift
}

// RRI is a register-register-immediate instruction: dest = src OP
// signExtend(imm), gated by a condition code.
type RRI struct {
	Op   BinOp
	Cond Condition
	Dest Register
	Src  Register
	Imm  int32 // already sign-extended at decode time
}

// Memory is a load/store instruction with RR or RI addressing.
type Memory struct {
	Op    MemOp
	Width Width
	Mode  AddrMode
	Reg   Register // source (store) / destination (load)
	Base  Register // rs

	// RR addressing fields.
	Index      Register  // rq
	IndexShift ShiftKind // shift kind applied to Index
	Shift      uint8     // shift amount applied to Index

	// RI addressing field.
	Imm int32 // already sign-extended at decode time
}

// CSR is a control/status register read or write instruction.
type CSR struct {
	Op    CSROp
	Width Width
	Reg   Register // GP register operand
	Index uint32   // CSR register index
}

// Jump is an unconditional absolute jump: PC <- imm << 2.
type Jump struct {
	Imm uint32
}

// Instruction is a decoded instruction word. Exactly one of the
// class-specific pointer fields is non-nil, selected by Class.
type Instruction struct {
	Class  Class
	RRR    *RRR
	RRI    *RRI
	Memory *Memory
	CSR    *CSR
	Jump   *Jump
}
