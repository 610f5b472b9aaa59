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

func field(value uint32, width uint, lo uint) uint32 {
	mask := uint32(1)<<width - 1
	return (value & mask) << lo
}

// Encode reassembles an instruction word. It is used only for
// diagnostics (disassembly round-trip checks); the CPU core never
// calls it in the hot path. Encode(Decode(w)) == w for every w that
// Decode accepts.
func Encode(instr *Instruction) uint32 {
	switch instr.Class {
	case ClassRRR:
		r := instr.RRR
		return field(uint32(ClassRRR), 4, 28) |
			field(uint32(r.Op), 5, 23) |
			field(uint32(r.Dest), 5, 18) |
			field(uint32(r.LHS), 5, 13) |
			field(uint32(r.RHS), 5, 8) |
			field(uint32(r.Shift.Kind), 3, 5) |
			field(uint32(r.Shift.Amount), 5, 0)

	case ClassRRI:
		r := instr.RRI
		return field(uint32(ClassRRI), 4, 28) |
			field(uint32(r.Op), 5, 23) |
			field(uint32(r.Cond), 3, 20) |
			field(uint32(r.Dest), 5, 15) |
			field(uint32(r.Src), 5, 10) |
			field(uint32(r.Imm), 10, 0)

	case ClassMemory:
		m := instr.Memory
		word := field(uint32(ClassMemory), 4, 28) |
			field(uint32(m.Mode), 1, 27) |
			field(uint32(m.Op), 1, 26) |
			field(uint32(m.Width), 2, 24) |
			field(uint32(m.Reg), 5, 19) |
			field(uint32(m.Base), 5, 14)

		if m.Mode == AddrRR {
			word |= field(uint32(m.Index), 5, 9) |
				field(uint32(m.IndexShift), 3, 6) |
				field(uint32(m.Shift), 5, 1)
		} else {
			word |= field(uint32(m.Imm), 14, 0)
		}
		return word

	case ClassCSR:
		c := instr.CSR
		return field(uint32(ClassCSR), 4, 28) |
			field(uint32(c.Op), 1, 27) |
			field(uint32(c.Width), 2, 25) |
			field(uint32(c.Reg), 5, 20) |
			field(c.Index, 20, 0)

	case ClassJump:
		return field(uint32(ClassJump), 4, 28) | field(instr.Jump.Imm, 28, 0)

	default:
		return 0xFFFFFFFF
	}
}
