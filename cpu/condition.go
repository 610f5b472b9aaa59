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

// evalCondition evaluates an RRI condition code against the current
// PSR flags.
func (s *State) evalCondition(cond isa.Condition) bool {
	switch cond {
	case isa.Always:
		return true
	case isa.Overflow:
		return s.Overflow()
	case isa.Carry:
		return s.Carry()
	case isa.Zero:
		return s.Zero()
	case isa.Negative:
		return s.Negative()
	case isa.NotZero:
		return !s.Zero()
	case isa.NotNegative:
		return !s.Negative()
	case isa.GreaterThan:
		return !s.Negative() && !s.Zero()
	default:
		return false
	}
}
