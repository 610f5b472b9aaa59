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

import (
	"fmt"

	"github.com/RobertZ2011/bibe-emu/isa"
)

type region struct {
	start  uint32
	device Device
}

func (r region) end() uint32 {
	return r.start + r.device.Size()
}

func (r region) overlaps(start, size uint32) bool {
	end := start + size
	return start < r.end() && r.start < end
}

// Mapped composes child devices into non-overlapping address
// windows, keeping them ordered by start address so lookups are a
// linear scan in ascending order, matching how regions are inserted.
type Mapped struct {
	regions []region
}

// NewMapped returns an empty region map.
func NewMapped() *Mapped {
	return &Mapped{}
}

// Map installs device at the given start address. It fails if the
// new region would overlap any existing one.
func (m *Mapped) Map(start uint32, device Device) error {
	size := device.Size()
	index := len(m.regions)
	for i, r := range m.regions {
		if r.overlaps(start, size) {
			return fmt.Errorf("memory: region [%#x,%#x) overlaps existing region [%#x,%#x)",
				start, start+size, r.start, r.end())
		}
		if start < r.start {
			index = i
			break
		}
	}

	m.regions = append(m.regions, region{})
	copy(m.regions[index+1:], m.regions[index:])
	m.regions[index] = region{start: start, device: device}
	return nil
}

func (m *Mapped) find(addr uint32) (region, bool) {
	for _, r := range m.regions {
		if addr >= r.start && addr < r.end() {
			return r, true
		}
	}
	return region{}, false
}

// Contains reports whether addr falls inside any mapped region.
func (m *Mapped) Contains(addr uint32) bool {
	_, ok := m.find(addr)
	return ok
}

func (m *Mapped) Size() uint32 {
	if len(m.regions) == 0 {
		return 0
	}
	last := m.regions[len(m.regions)-1]
	return last.end()
}

func (m *Mapped) ReadAt(addr uint32, width isa.Width) (uint32, bool) {
	r, ok := m.find(addr)
	if !ok {
		return 0, false
	}
	value, accessErr := Read(r.device, addr-r.start, width)
	return value, accessErr == nil
}

func (m *Mapped) WriteAt(addr uint32, width isa.Width, value uint32) bool {
	r, ok := m.find(addr)
	if !ok {
		return false
	}
	return Write(r.device, addr-r.start, width, value) == nil
}
