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

// PageSize is the granularity at which a Lazy image allocates backing
// storage on first touch.
type PageSize uint32

const (
	Page4K   PageSize = 4096
	Page1M   PageSize = 1024 * 1024
	Page4M   PageSize = 4 * 1024 * 1024
	Page16M  PageSize = 16 * 1024 * 1024
	Page32M  PageSize = 32 * 1024 * 1024
	Page64M  PageSize = 64 * 1024 * 1024
	Page128M PageSize = 128 * 1024 * 1024
	Page256M PageSize = 256 * 1024 * 1024
)

// Lazy is an address-range-checked device that allocates its backing
// pages on first touch instead of up front, so a sparsely-used large
// address space costs memory only where it's actually written or read.
type Lazy struct {
	mapped   *Mapped
	pageSize uint32
	limit    uint32
}

// NewLazy creates a lazily-paged image spanning limit bytes, carved
// into pages of pageSize.
func NewLazy(limit uint32, pageSize PageSize) *Lazy {
	return &Lazy{mapped: NewMapped(), pageSize: uint32(pageSize), limit: limit}
}

func (l *Lazy) pageBase(addr uint32) uint32 {
	return addr - addr%l.pageSize
}

func (l *Lazy) touch(addr uint32) {
	if l.mapped.Contains(addr) {
		return
	}
	base := l.pageBase(addr)
	size := l.pageSize
	if uint64(base)+uint64(size) > uint64(l.limit) {
		size = l.limit - base
	}
	// Pages are aligned to pageSize and only an unmapped page is
	// mapped, so Map finds no overlapping region and its error is
	// ignored. Lazy does no locking of its own.
	_ = l.mapped.Map(base, NewFlat(size))
}

func (l *Lazy) Size() uint32 {
	return l.limit
}

func (l *Lazy) ReadAt(addr uint32, width isa.Width) (uint32, bool) {
	l.touch(addr)
	return l.mapped.ReadAt(addr, width)
}

func (l *Lazy) WriteAt(addr uint32, width isa.Width, value uint32) bool {
	l.touch(addr)
	return l.mapped.WriteAt(addr, width, value)
}
