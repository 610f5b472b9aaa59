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

// Bit layout (MSB to LSB), documented here since this is the one
// place the bit-exact shape of a bibe32 instruction word is decided:
//
//	[31:28] class   (0=rrr 1=rri 2=memory 3=csr 4=jump, 0xF=invalid)
//
//	rrr:    [27:23] op   [22:18] dest  [17:13] lhs  [12:8] rhs
//	        [7:5]   shiftKind       [4:0] shiftAmount
//
//	rri:    [27:23] op   [22:20] cond  [19:15] dest [14:10] src
//	        [9:0]   imm10 (signed)
//
//	memory: [27] mode (0=RR 1=RI)  [26] op (0=load 1=store)
//	        [25:24] width  [23:19] reg  [18:14] base
//	        RR: [13:9] index  [8:6] shiftKind  [5:1] shiftAmount  [0] reserved (must be 0)
//	        RI: [13:0] imm14 (signed)
//
//	csr:    [27] op (0=read 1=write)  [26:25] width
//	        [24:20] reg  [19:0] index
//
//	jump:   [27:0] imm (unsigned, shifted left 2 at execute time)
const invalidClass = 0xF

func bits(word uint32, hi, lo uint) uint32 {
	width := hi - lo + 1
	mask := uint32(1)<<width - 1
	return (word >> lo) & mask
}

func signExtend(value uint32, width uint) int32 {
	shift := 32 - width
	return int32(value<<shift) >> shift
}

// Decode decodes a 32-bit instruction word. It returns nil if the
// word does not name a recognized instruction (the dispatcher must
// raise an opcode fault in that case).
func Decode(word uint32) *Instruction {
	class := bits(word, 31, 28)

	switch class {
	case uint32(ClassRRR):
		op := uint8(bits(word, 27, 23))
		if !validBinOp(op) {
			return nil
		}
		shiftKind := uint8(bits(word, 7, 5))
		if !validShiftKind(shiftKind) {
			return nil
		}
		return &Instruction{
			Class: ClassRRR,
			RRR: &RRR{
				Op:   BinOp(op),
				Dest: Register(bits(word, 22, 18)),
				LHS:  Register(bits(word, 17, 13)),
				RHS:  Register(bits(word, 12, 8)),
				Shift: Shift{
					Kind:   ShiftKind(shiftKind),
					Amount: uint8(bits(word, 4, 0)),
				},
			},
		}

	case uint32(ClassRRI):
		op := uint8(bits(word, 27, 23))
		if !validBinOp(op) {
			return nil
		}
		cond := uint8(bits(word, 22, 20))
		if !validCondition(cond) {
			return nil
		}
		return &Instruction{
			Class: ClassRRI,
			RRI: &RRI{
				Op:   BinOp(op),
				Cond: Condition(cond),
				Dest: Register(bits(word, 19, 15)),
				Src:  Register(bits(word, 14, 10)),
				Imm:  signExtend(bits(word, 9, 0), 10),
			},
		}

	case uint32(ClassMemory):
		mode := AddrMode(bits(word, 27, 27))
		op := MemOp(bits(word, 26, 26))
		width := Width(bits(word, 25, 24))
		if width > Word {
			return nil
		}
		reg := Register(bits(word, 23, 19))
		base := Register(bits(word, 18, 14))

		m := &Memory{
			Op:    op,
			Width: width,
			Mode:  mode,
			Reg:   reg,
			Base:  base,
		}

		if mode == AddrRR {
			if bits(word, 0, 0) != 0 {
				return nil
			}
			shiftKind := uint8(bits(word, 8, 6))
			if !validShiftKind(shiftKind) {
				return nil
			}
			m.Index = Register(bits(word, 13, 9))
			m.IndexShift = ShiftKind(shiftKind)
			m.Shift = uint8(bits(word, 5, 1))
		} else {
			m.Imm = signExtend(bits(word, 13, 0), 14)
		}

		return &Instruction{Class: ClassMemory, Memory: m}

	case uint32(ClassCSR):
		width := Width(bits(word, 26, 25))
		if width > Word {
			return nil
		}
		return &Instruction{
			Class: ClassCSR,
			CSR: &CSR{
				Op:    CSROp(bits(word, 27, 27)),
				Width: width,
				Reg:   Register(bits(word, 24, 20)),
				Index: bits(word, 19, 0),
			},
		}

	case uint32(ClassJump):
		return &Instruction{
			Class: ClassJump,
			Jump:  &Jump{Imm: bits(word, 27, 0)},
		}

	default:
		return nil
	}
}
