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

package csr

import "github.com/RobertZ2011/bibe-emu/isa"

// The ISR block occupies three register blocks immediately after the
// PSR block: one for the control registers, one for the "bank A"
// shadow of R1..R16, and one for the "bank B" shadow of
// R17..R27,SP,FP,LR,PC. Both shadow banks are swapped in for the
// duration of an interrupt handler by the interrupt engine, not by
// ordinary CSR writes.
const (
	ISRBase = PSRBase + PSRSize
	ISRSize = 3 * BlockSize

	ISRBaseVectorReg = ISRBase
	ISRErr1Reg       = ISRBaseVectorReg + 0x4
	ISRErr2Reg       = ISRBaseVectorReg + 0x8
	ISREnterReg      = ISRBaseVectorReg + 0xc
	ISRExitReg       = ISRBaseVectorReg + 0x10

	isrBankAReg = ISRBase + BlockSize
	isrBankBReg = ISRBase + 2*BlockSize
)

// isrWordCount is the number of word-sized slots the ISR block spans.
const isrWordCount = ISRSize / 4

// IsrBlock implements the ISR control registers plus the banked
// shadow register file swapped in and out on interrupt entry/exit.
type IsrBlock struct {
	words [isrWordCount]uint32
}

func NewIsrBlock() *IsrBlock {
	return &IsrBlock{}
}

func (b *IsrBlock) BaseReg() uint32 { return ISRBase }
func (b *IsrBlock) Size() uint32    { return ISRSize }

func (b *IsrBlock) index(reg uint32) int {
	return int((reg - ISRBase) / 4)
}

func (b *IsrBlock) HasReg(reg uint32) bool {
	if reg < ISRBase || reg >= ISRBase+ISRSize {
		return false
	}
	if reg%4 != 0 {
		return false
	}
	if reg >= ISRBaseVectorReg && reg <= ISRExitReg {
		return true
	}
	return reg >= isrBankAReg && reg < isrBankAReg+16*4 ||
		reg >= isrBankBReg && reg < isrBankBReg+15*4
}

func (b *IsrBlock) Read(reg uint32, width isa.Width) (uint32, bool) {
	if width != isa.Word {
		return 0, false
	}
	return b.words[b.index(reg)], true
}

func (b *IsrBlock) Write(reg uint32, width isa.Width, value uint32) bool {
	if width != isa.Word {
		return false
	}
	b.words[b.index(reg)] = value
	return true
}

func (b *IsrBlock) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Raw accessors used directly by the interrupt engine, bypassing the
// CSR instruction path (and its width/claim checks) since bank swaps
// move every shadow slot at once.

func (b *IsrBlock) ControlReg(reg uint32) uint32    { return b.words[b.index(reg)] }
func (b *IsrBlock) SetControlReg(reg, value uint32) { b.words[b.index(reg)] = value }

// BankA returns the 16 shadow slots for R1..R16.
func (b *IsrBlock) BankA() []uint32 {
	start := b.index(isrBankAReg)
	return b.words[start : start+16]
}

// BankB returns the 15 shadow slots for R17..R27,SP,FP,LR,PC.
func (b *IsrBlock) BankB() []uint32 {
	start := b.index(isrBankBReg)
	return b.words[start : start+15]
}
