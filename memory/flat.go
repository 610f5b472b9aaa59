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

package memory

import "github.com/RobertZ2011/bibe-emu/isa"

// Flat is a contiguous byte-addressed device backed by a single
// buffer, little-endian, masked to width on every access.
type Flat struct {
	buf []byte
}

// NewFlat allocates a zeroed Flat of size bytes.
func NewFlat(size uint32) *Flat {
	return &Flat{buf: make([]byte, size)}
}

// LoadFlat wraps data directly as a Flat device, for loading a
// program image without copying.
func LoadFlat(data []byte) *Flat {
	return &Flat{buf: data}
}

func (f *Flat) Size() uint32 {
	return uint32(len(f.buf))
}

func (f *Flat) ReadAt(addr uint32, width isa.Width) (uint32, bool) {
	switch width {
	case isa.Byte:
		return uint32(f.buf[addr]), true
	case isa.Short:
		return uint32(f.buf[addr]) | uint32(f.buf[addr+1])<<8, true
	default:
		return uint32(f.buf[addr]) | uint32(f.buf[addr+1])<<8 |
			uint32(f.buf[addr+2])<<16 | uint32(f.buf[addr+3])<<24, true
	}
}

func (f *Flat) WriteAt(addr uint32, width isa.Width, value uint32) bool {
	f.buf[addr] = byte(value)
	if width >= isa.Short {
		f.buf[addr+1] = byte(value >> 8)
	}
	if width == isa.Word {
		f.buf[addr+2] = byte(value >> 16)
		f.buf[addr+3] = byte(value >> 24)
	}
	return true
}
