// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// Unit tests for the arithmetic kernel.

package cpu

import (
	"testing"

	"github.com/RobertZ2011/bibe-emu/isa"
)

func TestEvalBinOp(t *testing.T) {
	tests := []struct {
		name string
		op   isa.BinOp
		lhs  uint32
		rhs  uint32
		want uint32
	}{
		{"add", isa.Add, 2, 3, 5},
		{"add wraps", isa.Add, 0xFFFFFFFF, 1, 0},
		{"sub identity", isa.Sub, 42, 0, 42},
		{"sub self", isa.Sub, 42, 42, 0},
		{"sub wraps", isa.Sub, 0, 1, 0xFFFFFFFF},
		{"mul", isa.Mul, 6, 7, 42},
		{"mul wraps", isa.Mul, 0x80000000, 2, 0},
		{"div", isa.Div, 42, 6, 7},
		{"mod", isa.Mod, 42, 5, 2},
		{"and", isa.And, 0xF0F0, 0xFF00, 0xF000},
		{"or", isa.Or, 0xF0F0, 0x0F0F, 0xFFFF},
		{"xor", isa.Xor, 0xFFFF, 0x00FF, 0xFF00},
		{"shl", isa.Shl, 1, 4, 16},
		{"shr", isa.Shr, 0x80000000, 31, 1},
		{"shl amount masked", isa.Shl, 1, 33, 2},
		{"asr sign extends", isa.Asr, 0x80000000, 4, 0xF8000000},
		{"asl", isa.Asl, 0x40000000, 1, 0x80000000},
		{"rol", isa.Rol, 0x80000001, 1, 0x00000003},
		{"ror", isa.Ror, 0x00000003, 1, 0x80000001},
		{"rol by zero", isa.Rol, 0x1234, 0, 0x1234},
		{"not", isa.Not, 0x0000FFFF, 0, 0xFFFF0000},
		{"not of sum", isa.Not, 0x0000FF00, 0x000000FF, 0xFFFF0000},
		{"neg", isa.Neg, 1, 0, 0xFFFFFFFF},
		{"neg of sum", isa.Neg, 2, 3, 0xFFFFFFFB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EvalBinOp(tt.op, tt.lhs, tt.rhs)
			if !ok {
				t.Fatalf("EvalBinOp(%s, %#x, %#x) failed", tt.op, tt.lhs, tt.rhs)
			}
			if got.value != tt.want {
				t.Errorf("EvalBinOp(%s, %#x, %#x) = %#x, want %#x", tt.op, tt.lhs, tt.rhs, got.value, tt.want)
			}
			if got.overflow || got.carry {
				t.Errorf("non-cc op %s produced overflow=%v carry=%v", tt.op, got.overflow, got.carry)
			}
		})
	}
}

func TestEvalBinOpDivideByZero(t *testing.T) {
	if _, ok := EvalBinOp(isa.Div, 42, 0); ok {
		t.Error("Div by zero succeeded, want failure")
	}
	if _, ok := EvalBinOp(isa.Mod, 42, 0); ok {
		t.Error("Mod by zero succeeded, want failure")
	}
}

func TestEvalBinOpConditionCodes(t *testing.T) {
	tests := []struct {
		name         string
		op           isa.BinOp
		lhs          uint32
		rhs          uint32
		want         uint32
		wantOverflow bool
		wantCarry    bool
	}{
		{"addcc plain", isa.AddCC, 2, 3, 5, false, false},
		{"addcc unsigned carry", isa.AddCC, 0xFFFFFFFF, 1, 0, false, true},
		{"addcc signed overflow", isa.AddCC, 0x7FFFFFFF, 1, 0x80000000, true, false},
		{"addcc both", isa.AddCC, 0x80000000, 0x80000000, 0, true, true},
		{"subcc plain", isa.SubCC, 5, 3, 2, false, false},
		{"subcc borrow", isa.SubCC, 0, 1, 0xFFFFFFFF, false, true},
		{"subcc signed overflow", isa.SubCC, 0x80000000, 1, 0x7FFFFFFF, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EvalBinOp(tt.op, tt.lhs, tt.rhs)
			if !ok {
				t.Fatalf("EvalBinOp(%s) failed", tt.op)
			}
			if got.value != tt.want {
				t.Errorf("value = %#x, want %#x", got.value, tt.want)
			}
			if got.overflow != tt.wantOverflow {
				t.Errorf("overflow = %v, want %v", got.overflow, tt.wantOverflow)
			}
			if got.carry != tt.wantCarry {
				t.Errorf("carry = %v, want %v", got.carry, tt.wantCarry)
			}
		})
	}
}

func TestCCOpsUpdatePSRFlags(t *testing.T) {
	words := []uint32{
		encodeRRI(isa.SubCC, isa.Always, isa.R1, isa.R0, 0),  // 0 - 0: Z set
		encodeRRI(isa.SubCC, isa.Always, isa.R1, isa.R0, 1),  // 0 - 1: N and C set
		encodeRRI(isa.AddCC, isa.Always, isa.R1, isa.R0, 1),  // 0 + 1: all clear
	}
	s := newTestCore(words)

	if err := s.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !s.Zero() || s.Negative() {
		t.Errorf("after subcc 0,0: z=%v n=%v, want z=true n=false", s.Zero(), s.Negative())
	}

	if err := s.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.Zero() || !s.Negative() || !s.Carry() {
		t.Errorf("after subcc 0,1: z=%v n=%v c=%v, want z=false n=true c=true", s.Zero(), s.Negative(), s.Carry())
	}

	if err := s.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.Zero() || s.Negative() || s.Carry() || s.Overflow() {
		t.Errorf("after addcc 0,1: flags = v=%v c=%v z=%v n=%v, want all clear", s.Overflow(), s.Carry(), s.Zero(), s.Negative())
	}
}

func TestApplyShift(t *testing.T) {
	tests := []struct {
		name  string
		shift isa.Shift
		value uint32
		want  uint32
	}{
		{"shl", isa.Shift{Kind: isa.ShiftShl, Amount: 2}, 1, 4},
		{"shr", isa.Shift{Kind: isa.ShiftShr, Amount: 2}, 8, 2},
		{"asr negative", isa.Shift{Kind: isa.ShiftAsr, Amount: 1}, 0x80000000, 0xC0000000},
		{"rol", isa.Shift{Kind: isa.ShiftRol, Amount: 4}, 0xF0000000, 0x0000000F},
		{"ror", isa.Shift{Kind: isa.ShiftRor, Amount: 4}, 0x0000000F, 0xF0000000},
		{"zero amount", isa.Shift{Kind: isa.ShiftShl, Amount: 0}, 0x1234, 0x1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyShift(tt.shift, tt.value); got != tt.want {
				t.Errorf("applyShift(%+v, %#x) = %#x, want %#x", tt.shift, tt.value, got, tt.want)
			}
		})
	}
}
