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

// Mock is a single-scalar device for exercising the CPU's fault
// paths in tests. It ignores width and always reads back the last
// value written, recording the address of the most recent access and
// optionally forcing every access to fail regardless of validation.
type Mock struct {
	Value      uint32
	ShouldFail bool

	size     uint32
	lastAddr uint32
}

// NewMock creates a Mock reporting the given size to its caller's
// containment checks.
func NewMock(size uint32) *Mock {
	return &Mock{size: size}
}

func (m *Mock) Resize(size uint32) {
	m.size = size
}

func (m *Mock) LastAddr() uint32 {
	return m.lastAddr
}

func (m *Mock) Size() uint32 {
	return m.size
}

func (m *Mock) ReadAt(addr uint32, _ isa.Width) (uint32, bool) {
	if m.ShouldFail {
		return 0, false
	}
	m.lastAddr = addr
	return m.Value, true
}

func (m *Mock) WriteAt(addr uint32, _ isa.Width, value uint32) bool {
	if m.ShouldFail {
		return false
	}
	m.lastAddr = addr
	m.Value = value
	return true
}
