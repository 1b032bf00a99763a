// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package arm7tdmi

// ShiftType is one of the five barrel shifter modes (§4.2).
type ShiftType int

const (
	ShiftLSL ShiftType = iota
	ShiftLSR
	ShiftASR
	ShiftROR
	ShiftRRX
)

// ShiftContext distinguishes immediate-shift (the amount is encoded in the
// instruction) from register-shift (the amount comes from a register at
// run time) form, because the amount-zero semantics differ between them
// (§4.2).
type ShiftContext int

const (
	ShiftImmediate ShiftContext = iota
	ShiftByRegister
)

// Shift implements the barrel shifter contract of spec.md §4.2. It never
// touches the CPSR; the caller decides whether the S-bit or instruction
// class means the returned carry should be committed.
func Shift(mode ShiftType, value uint32, amount uint32, ctx ShiftContext, carryIn bool) (result uint32, carryOut bool) {
	switch mode {
	case ShiftLSL:
		return shiftLSL(value, amount, carryIn)
	case ShiftLSR:
		return shiftLSR(value, amount, ctx, carryIn)
	case ShiftASR:
		return shiftASR(value, amount, ctx, carryIn)
	case ShiftROR:
		return shiftROR(value, amount, ctx, carryIn)
	case ShiftRRX:
		return shiftRRX(value, carryIn)
	}
	return value, carryIn
}

func shiftLSL(value, amount uint32, carryIn bool) (uint32, bool) {
	switch {
	case amount == 0:
		return value, carryIn
	case amount < 32:
		return value << amount, (value>>(32-amount))&1 == 1
	case amount == 32:
		return 0, value&1 == 1
	default: // amount > 32
		return 0, false
	}
}

func shiftLSR(value, amount uint32, ctx ShiftContext, carryIn bool) (uint32, bool) {
	if amount == 0 {
		if ctx == ShiftImmediate {
			amount = 32
		} else {
			return value, carryIn
		}
	}

	switch {
	case amount < 32:
		return value >> amount, (value>>(amount-1))&1 == 1
	case amount == 32:
		return 0, value>>31 == 1
	default: // amount > 32
		return 0, false
	}
}

func shiftASR(value, amount uint32, ctx ShiftContext, carryIn bool) (uint32, bool) {
	if amount == 0 {
		if ctx == ShiftImmediate {
			amount = 32
		} else {
			return value, carryIn
		}
	}

	signBit := value>>31 == 1
	if amount >= 32 {
		if signBit {
			return 0xffffffff, true
		}
		return 0, false
	}

	result := uint32(int32(value) >> amount)
	carryOut := (value>>(amount-1))&1 == 1
	return result, carryOut
}

func shiftROR(value, amount uint32, ctx ShiftContext, carryIn bool) (uint32, bool) {
	if amount == 0 {
		if ctx == ShiftImmediate {
			return shiftRRX(value, carryIn)
		}
		return value, carryIn
	}

	amount %= 32
	if amount == 0 {
		return value, value>>31 == 1
	}

	result := (value >> amount) | (value << (32 - amount))
	carryOut := (value>>(amount-1))&1 == 1
	return result, carryOut
}

func shiftRRX(value uint32, carryIn bool) (uint32, bool) {
	var carryInBit uint32
	if carryIn {
		carryInBit = 1
	}
	result := (carryInBit << 31) | (value >> 1)
	carryOut := value&1 == 1
	return result, carryOut
}
