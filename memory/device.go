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

// Package memory implements the addressable memory subsystem: a
// device contract plus the composable devices (flat image, mapped
// multi-region, lazily-paged image, and a mock for fault-path tests)
// that back it.
package memory

import "github.com/RobertZ2011/bibe-emu/isa"

// Device is the raw interface a memory backend implements. ReadAt and
// WriteAt assume addr has already passed containment, alignment, and
// range checks; ok is false only when the device itself refuses the
// access (used by Mock to force a fault on an otherwise valid access).
type Device interface {
	Size() uint32
	ReadAt(addr uint32, width isa.Width) (uint32, bool)
	WriteAt(addr uint32, width isa.Width, value uint32) bool
}

// AccessError reports why a validated Read or Write failed. Alignment
// distinguishes an unaligned access from every other failure
// (containment, range, or device refusal), since the CPU's interrupt
// engine vectors those to distinct fault kinds.
type AccessError struct {
	Addr      uint32
	Alignment bool
}

func (e *AccessError) Error() string {
	if e.Alignment {
		return "unaligned memory access"
	}
	return "memory access out of range"
}

func aligned(addr uint32, width isa.Width) bool {
	switch width {
	case isa.Short:
		return addr&1 == 0
	case isa.Word:
		return addr&3 == 0
	default:
		return true
	}
}

func inRange(addr uint32, width isa.Width, size uint32) bool {
	end := uint64(addr) + uint64(width.Bytes())
	return end <= uint64(size)
}

// validate applies, in order, the containment, alignment, and range
// checks the memory access model specifies. Containment and range
// failures are reported identically (both surface as a memory fault);
// alignment failures are flagged separately.
func validate(dev Device, addr uint32, width isa.Width) *AccessError {
	size := dev.Size()
	if addr >= size {
		return &AccessError{Addr: addr}
	}
	if !aligned(addr, width) {
		return &AccessError{Addr: addr, Alignment: true}
	}
	if !inRange(addr, width, size) {
		return &AccessError{Addr: addr}
	}
	return nil
}

// Read performs the containment, alignment, and range checks spelled
// out by the memory access model before delegating to dev. The
// returned value is masked to width.
func Read(dev Device, addr uint32, width isa.Width) (uint32, *AccessError) {
	if err := validate(dev, addr, width); err != nil {
		return 0, err
	}
	value, ok := dev.ReadAt(addr, width)
	if !ok {
		return 0, &AccessError{Addr: addr}
	}
	return value & width.Mask(), nil
}

// Write performs the same validation as Read, then masks value to
// width before delegating to dev.
func Write(dev Device, addr uint32, width isa.Width, value uint32) *AccessError {
	if err := validate(dev, addr, width); err != nil {
		return err
	}
	if !dev.WriteAt(addr, width, value&width.Mask()) {
		return &AccessError{Addr: addr}
	}
	return nil
}
