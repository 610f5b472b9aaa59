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

const (
	PSRBase = 0
	PSRSize = BlockSize
	PSR0Reg = PSRBase
)

// PSRBlock holds the single processor status register. Word-width
// only; every other register index or width is unclaimed.
type PSRBlock struct {
	psr0 uint32
}

func NewPSRBlock() *PSRBlock {
	return &PSRBlock{}
}

func (p *PSRBlock) BaseReg() uint32 { return PSRBase }
func (p *PSRBlock) Size() uint32    { return PSRSize }

func (p *PSRBlock) HasReg(reg uint32) bool {
	return reg == PSR0Reg
}

func (p *PSRBlock) Read(reg uint32, width isa.Width) (uint32, bool) {
	if width != isa.Word || reg != PSR0Reg {
		return 0, false
	}
	return p.psr0, true
}

func (p *PSRBlock) Write(reg uint32, width isa.Width, value uint32) bool {
	if width != isa.Word || reg != PSR0Reg {
		return false
	}
	p.psr0 = value
	return true
}

func (p *PSRBlock) Reset() {
	p.psr0 = 0
}

// Value returns the raw PSR word, for use by the interrupt engine
// which reads and writes flag bits directly.
func (p *PSRBlock) Value() uint32 {
	return p.psr0
}

// SetValue overwrites the raw PSR word.
func (p *PSRBlock) SetValue(v uint32) {
	p.psr0 = v
}
