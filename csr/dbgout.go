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

import (
	"fmt"
	"io"

	"github.com/RobertZ2011/bibe-emu/isa"
)

const (
	DbgOutBase = ISRBase + ISRSize
	DbgOutSize = 4 * BlockSize

	DbgOutCharOutReg = DbgOutBase
	DbgOutByteOutReg = DbgOutBase + 0x4
)

// DbgOutBlock is a write-only sink: the character-out register prints
// its low 21 bits as a Unicode scalar, the byte-out register prints a
// hex byte, and every other register in the block swallows writes
// silently. Output goes to w, which the host driver sets to its
// standard output stream.
type DbgOutBlock struct {
	w io.Writer
}

func NewDbgOutBlock(w io.Writer) *DbgOutBlock {
	return &DbgOutBlock{w: w}
}

func (d *DbgOutBlock) BaseReg() uint32 { return DbgOutBase }
func (d *DbgOutBlock) Size() uint32    { return DbgOutSize }

func (d *DbgOutBlock) HasReg(reg uint32) bool {
	return reg >= DbgOutBase && reg < DbgOutBase+DbgOutSize
}

// Read always fails: the block is write-only.
func (d *DbgOutBlock) Read(reg uint32, width isa.Width) (uint32, bool) {
	return 0, false
}

func (d *DbgOutBlock) Write(reg uint32, width isa.Width, value uint32) bool {
	switch reg {
	case DbgOutCharOutReg:
		if d.w != nil {
			fmt.Fprintf(d.w, "%c", rune(value&0x1FFFFF))
		}
	case DbgOutByteOutReg:
		if d.w != nil {
			fmt.Fprintf(d.w, "%02x", byte(value))
		}
	}
	return true
}

func (d *DbgOutBlock) Reset() {}
