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

// Package csr implements the control/status register address space:
// a flat register-index range divided into fixed-size blocks, each
// owning a sub-range and deciding for itself which registers within
// it are valid.
package csr

import "github.com/RobertZ2011/bibe-emu/isa"

// BlockSize is the width, in index units, of one CSR block: 64
// word-wide registers.
const BlockSize = 64 * 4

// Block is one CSR peripheral. HasReg reports whether reg (already
// known to fall within [BaseReg, BaseReg+Size)) is a register this
// block actually implements; Read and Write return ok=false for any
// register or width combination the block doesn't support, which
// Collection surfaces identically to an unclaimed register.
type Block interface {
	BaseReg() uint32
	Size() uint32
	HasReg(reg uint32) bool
	Read(reg uint32, width isa.Width) (uint32, bool)
	Write(reg uint32, width isa.Width, value uint32) bool
	Reset()
}

// Collection is an ordered, non-overlapping set of CSR blocks. A
// register access is routed to the first block whose range contains
// it; that block's HasReg then decides whether the access is valid.
type Collection struct {
	blocks []Block
}

// NewCollection builds a Collection from blocks in address order.
func NewCollection(blocks ...Block) *Collection {
	return &Collection{blocks: blocks}
}

func (c *Collection) find(reg uint32) Block {
	for _, b := range c.blocks {
		if reg >= b.BaseReg() && reg < b.BaseReg()+b.Size() {
			return b
		}
	}
	return nil
}

// Read returns ok=false if no block's range contains reg, the owning
// block doesn't recognize reg, or the width is unsupported there.
func (c *Collection) Read(reg uint32, width isa.Width) (uint32, bool) {
	b := c.find(reg)
	if b == nil || !b.HasReg(reg) {
		return 0, false
	}
	return b.Read(reg, width)
}

// Write mirrors Read's routing and claim rules.
func (c *Collection) Write(reg uint32, width isa.Width, value uint32) bool {
	b := c.find(reg)
	if b == nil || !b.HasReg(reg) {
		return false
	}
	return b.Write(reg, width, value)
}

// Reset resets every block in the collection.
func (c *Collection) Reset() {
	for _, b := range c.blocks {
		b.Reset()
	}
}
