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

import "fmt"

// Disassemble produces a human-readable rendering of a decoded
// instruction, used by execution tracing and diagnostics only.
func Disassemble(instr *Instruction) string {
	if instr == nil {
		return "<invalid>"
	}

	switch instr.Class {
	case ClassRRR:
		r := instr.RRR
		if r.Shift.Amount == 0 && r.Shift.Kind == ShiftShl {
			return fmt.Sprintf("%s %s, %s, %s", r.Op, r.Dest, r.LHS, r.RHS)
		}
		return fmt.Sprintf("%s %s, %s, %s, %s #%d", r.Op, r.Dest, r.LHS, r.RHS, r.Shift.Kind, r.Shift.Amount)

	case ClassRRI:
		r := instr.RRI
		if r.Cond == Always {
			return fmt.Sprintf("%s %s, %s, #%d", r.Op, r.Dest, r.Src, r.Imm)
		}
		return fmt.Sprintf("%s.%s %s, %s, #%d", r.Op, r.Cond, r.Dest, r.Src, r.Imm)

	case ClassMemory:
		m := instr.Memory
		if m.Mode == AddrRR {
			return fmt.Sprintf("%s.%s %s, [%s, %s, %s #%d]", m.Op, m.Width, m.Reg, m.Base, m.Index, m.IndexShift, m.Shift)
		}
		return fmt.Sprintf("%s.%s %s, [%s, #%d]", m.Op, m.Width, m.Reg, m.Base, m.Imm)

	case ClassCSR:
		c := instr.CSR
		return fmt.Sprintf("%s.%s %s, #%d", c.Op, c.Width, c.Reg, c.Index)

	case ClassJump:
		return fmt.Sprintf("jmp #%d", instr.Jump.Imm<<2)

	default:
		return "<unknown>"
	}
}
