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

package cpu

import "github.com/RobertZ2011/bibe-emu/isa"

// binResult is the outcome of the arithmetic kernel: the wrapped
// result plus the overflow/carry pair, which is meaningful only for
// the cc variants.
type binResult struct {
	value    uint32
	overflow bool
	carry    bool
}

// EvalBinOp evaluates a binary operation with wrapping semantics. For
// Div or Mod with rhs == 0 it returns ok=false (divide-by-zero); every
// other recognized operation always succeeds.
func EvalBinOp(op isa.BinOp, lhs, rhs uint32) (binResult, bool) {
	switch op {
	case isa.Add:
		return binResult{value: lhs + rhs}, true
	case isa.AddCC:
		sum := lhs + rhs
		return binResult{
			value:    sum,
			overflow: addOverflows(int32(lhs), int32(rhs)),
			carry:    sum < lhs,
		}, true

	case isa.Sub:
		return binResult{value: lhs - rhs}, true
	case isa.SubCC:
		diff := lhs - rhs
		return binResult{
			value:    diff,
			overflow: subOverflows(int32(lhs), int32(rhs)),
			carry:    lhs < rhs,
		}, true

	case isa.Mul:
		return binResult{value: lhs * rhs}, true

	case isa.Div:
		if rhs == 0 {
			return binResult{}, false
		}
		return binResult{value: lhs / rhs}, true

	case isa.Mod:
		if rhs == 0 {
			return binResult{}, false
		}
		return binResult{value: lhs % rhs}, true

	case isa.And:
		return binResult{value: lhs & rhs}, true
	case isa.Or:
		return binResult{value: lhs | rhs}, true
	case isa.Xor:
		return binResult{value: lhs ^ rhs}, true

	case isa.Shl:
		return binResult{value: lhs << (rhs & 31)}, true
	case isa.Shr:
		return binResult{value: lhs >> (rhs & 31)}, true
	case isa.Asl:
		return binResult{value: uint32(int32(lhs) << (rhs & 31))}, true
	case isa.Asr:
		return binResult{value: uint32(int32(lhs) >> (rhs & 31))}, true
	case isa.Rol:
		return binResult{value: rotl(lhs, rhs&31)}, true
	case isa.Ror:
		return binResult{value: rotl(lhs, 32-(rhs&31))}, true

	case isa.Not:
		return binResult{value: ^(lhs + rhs)}, true
	case isa.Neg:
		return binResult{value: uint32(-int32(lhs + rhs))}, true

	default:
		return binResult{}, false
	}
}

func rotl(v uint32, n uint32) uint32 {
	n &= 31
	if n == 0 {
		return v
	}
	return (v << n) | (v >> (32 - n))
}

// addOverflows reports signed overflow of a+b, per the standard
// same-sign-operands/different-sign-result test.
func addOverflows(a, b int32) bool {
	sum := a + b
	return (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0)
}

// subOverflows reports signed overflow of a-b.
func subOverflows(a, b int32) bool {
	diff := a - b
	return (a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0)
}

// applyShift evaluates the RRR barrel shifter.
func applyShift(sh isa.Shift, value uint32) uint32 {
	amount := uint32(sh.Amount) & 31
	switch sh.Kind {
	case isa.ShiftShl:
		return value << amount
	case isa.ShiftShr:
		return value >> amount
	case isa.ShiftAsl:
		return uint32(int32(value) << amount)
	case isa.ShiftAsr:
		return uint32(int32(value) >> amount)
	case isa.ShiftRol:
		return rotl(value, amount)
	case isa.ShiftRor:
		return rotl(value, 32-amount)
	default:
		return value
	}
}
