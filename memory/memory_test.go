// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// Unit tests for the memory subsystem.

package memory

import (
	"testing"

	"github.com/RobertZ2011/bibe-emu/isa"
)

func TestFlatRoundTrip(t *testing.T) {
	f := NewFlat(32)

	tests := []struct {
		name  string
		addr  uint32
		width isa.Width
		value uint32
	}{
		{"byte", 0, isa.Byte, 0xAB},
		{"short aligned", 2, isa.Short, 0xBEEF},
		{"word aligned", 4, isa.Word, 0xDEADBEEF},
		{"byte at end", 31, isa.Byte, 0x12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Write(f, tt.addr, tt.width, tt.value); err != nil {
				t.Fatalf("Write(%d) = %v, want nil", tt.addr, err)
			}
			got, err := Read(f, tt.addr, tt.width)
			if err != nil {
				t.Fatalf("Read(%d) = %v, want nil", tt.addr, err)
			}
			want := tt.value & tt.width.Mask()
			if got != want {
				t.Errorf("Read(%d) = %#x, want %#x", tt.addr, got, want)
			}
		})
	}
}

func TestFlatLittleEndian(t *testing.T) {
	f := NewFlat(4)
	if err := Write(f, 0, isa.Word, 0x11223344); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}
	b, _ := Read(f, 0, isa.Byte)
	if b != 0x44 {
		t.Errorf("low byte = %#x, want 0x44", b)
	}
}

func TestValidationOrder(t *testing.T) {
	f := NewFlat(16)

	tests := []struct {
		name      string
		addr      uint32
		width     isa.Width
		wantFault bool
		wantAlign bool
	}{
		{"in range word", 0, isa.Word, false, false},
		{"unaligned short", 1, isa.Short, true, true},
		{"unaligned word", 2, isa.Word, true, true},
		{"out of range byte", 16, isa.Byte, true, false},
		{"unaligned word past end faults on alignment first", 14, isa.Word, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(f, tt.addr, tt.width)
			if tt.wantFault && err == nil {
				t.Fatalf("Read(%d) = nil error, want fault", tt.addr)
			}
			if !tt.wantFault && err != nil {
				t.Fatalf("Read(%d) = %v, want nil", tt.addr, err)
			}
			if tt.wantFault && err.Alignment != tt.wantAlign {
				t.Errorf("Alignment = %v, want %v", err.Alignment, tt.wantAlign)
			}
		})
	}
}

func TestMappedOverlap(t *testing.T) {
	m := NewMapped()

	if err := m.Map(0, NewFlat(32)); err != nil {
		t.Fatalf("initial Map failed: %v", err)
	}
	if err := m.Map(0, NewFlat(32)); err == nil {
		t.Error("exact overlap accepted, want rejection")
	}
	if err := m.Map(0, NewFlat(16)); err == nil {
		t.Error("start overlap accepted, want rejection")
	}
	if err := m.Map(16, NewFlat(16)); err == nil {
		t.Error("end overlap accepted, want rejection")
	}
	if err := m.Map(32, NewFlat(32)); err != nil {
		t.Errorf("contiguous Map failed: %v", err)
	}
	if err := m.Map(128, NewFlat(128)); err != nil {
		t.Errorf("disjoint Map failed: %v", err)
	}
}

func TestMappedRoundTrip(t *testing.T) {
	m := NewMapped()
	if err := m.Map(0, NewFlat(16)); err != nil {
		t.Fatalf("Map() = %v", err)
	}
	if err := m.Map(1024, NewFlat(16)); err != nil {
		t.Fatalf("Map() = %v", err)
	}

	if err := Write(m, 4, isa.Word, 0xCAFEF00D); err != nil {
		t.Fatalf("Write(4) = %v, want nil", err)
	}
	got, err := Read(m, 4, isa.Word)
	if err != nil || got != 0xCAFEF00D {
		t.Errorf("Read(4) = (%#x, %v), want (0xcafef00d, nil)", got, err)
	}

	if err := Write(m, 1028, isa.Word, 0x1); err != nil {
		t.Fatalf("Write(1028) = %v, want nil", err)
	}
	got, err = Read(m, 1028, isa.Word)
	if err != nil || got != 1 {
		t.Errorf("Read(1028) = (%#x, %v), want (1, nil)", got, err)
	}

	// Gap between regions is not mapped.
	if _, err := Read(m, 512, isa.Byte); err == nil {
		t.Error("Read into unmapped gap succeeded, want fault")
	}
}

func TestLazyAllocatesOnTouch(t *testing.T) {
	l := NewLazy(1<<20, Page4K)

	if l.mapped.Contains(0) {
		t.Fatal("page mapped before first touch")
	}
	if err := Write(l, 100, isa.Word, 42); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}
	if !l.mapped.Contains(100) {
		t.Error("page not mapped after touch")
	}
	got, err := Read(l, 100, isa.Word)
	if err != nil || got != 42 {
		t.Errorf("Read(100) = (%d, %v), want (42, nil)", got, err)
	}

	// Touching a second page must not disturb the first.
	if err := Write(l, uint32(Page4K)+8, isa.Word, 7); err != nil {
		t.Fatalf("Write() = %v, want nil", err)
	}
	got, err = Read(l, 100, isa.Word)
	if err != nil || got != 42 {
		t.Errorf("first page disturbed: Read(100) = (%d, %v), want (42, nil)", got, err)
	}
}

func TestLazyOutOfRangeStillFaults(t *testing.T) {
	l := NewLazy(4096, Page4K)
	if _, err := Read(l, 8192, isa.Byte); err == nil {
		t.Error("Read beyond limit succeeded, want fault")
	}
}

func TestMockShouldFail(t *testing.T) {
	m := NewMock(16)
	m.Value = 99

	got, err := Read(m, 0, isa.Word)
	if err != nil || got != 99 {
		t.Fatalf("Read() = (%d, %v), want (99, nil)", got, err)
	}
	if m.LastAddr() != 0 {
		t.Errorf("LastAddr() = %d, want 0", m.LastAddr())
	}

	m.ShouldFail = true
	if _, err := Read(m, 0, isa.Word); err == nil {
		t.Error("Read() succeeded with ShouldFail set, want fault")
	}
	if err := Write(m, 0, isa.Word, 1); err == nil {
		t.Error("Write() succeeded with ShouldFail set, want fault")
	}
}
