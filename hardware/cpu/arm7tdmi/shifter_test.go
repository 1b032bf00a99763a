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

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/test"
)

func TestShiftLSLBoundaries(t *testing.T) {
	r, c := Shift(ShiftLSL, 0x1, 0, ShiftImmediate, true)
	test.Equate(t, r, uint32(0x1))
	test.Equate(t, c, true) // amount 0: carry unaffected, passed through

	r, c = Shift(ShiftLSL, 0x80000001, 1, ShiftImmediate, false)
	test.Equate(t, r, uint32(0x2))
	test.Equate(t, c, true)

	r, c = Shift(ShiftLSL, 0x1, 32, ShiftImmediate, false)
	test.Equate(t, r, uint32(0))
	test.Equate(t, c, true) // bit 0 of value becomes carry out

	r, c = Shift(ShiftLSL, 0x1, 33, ShiftImmediate, true)
	test.Equate(t, r, uint32(0))
	test.Equate(t, c, false)
}

func TestShiftLSRImmediateZeroMeansThirtyTwo(t *testing.T) {
	r, c := Shift(ShiftLSR, 0x80000000, 0, ShiftImmediate, false)
	test.Equate(t, r, uint32(0))
	test.Equate(t, c, true)
}

func TestShiftLSRByRegisterZeroIsIdentity(t *testing.T) {
	r, c := Shift(ShiftLSR, 0x80000000, 0, ShiftByRegister, true)
	test.Equate(t, r, uint32(0x80000000))
	test.Equate(t, c, true)
}

func TestShiftASRSignExtends(t *testing.T) {
	r, c := Shift(ShiftASR, 0x80000000, 0, ShiftImmediate, false)
	test.Equate(t, r, uint32(0xffffffff))
	test.Equate(t, c, true)

	r, c = Shift(ShiftASR, 0x40000000, 1, ShiftImmediate, true)
	test.Equate(t, r, uint32(0x20000000))
	test.Equate(t, c, false)
}

func TestShiftRORImmediateZeroIsRRX(t *testing.T) {
	r, c := Shift(ShiftROR, 0x1, 0, ShiftImmediate, true)
	test.Equate(t, r, uint32(0x80000000))
	test.Equate(t, c, true)
}

func TestShiftRORByAmount(t *testing.T) {
	r, c := Shift(ShiftROR, 0x1, 4, ShiftByRegister, false)
	test.Equate(t, r, uint32(0x10000000))
	test.Equate(t, c, false)

	r, c = Shift(ShiftROR, 0x1, 32, ShiftByRegister, true)
	test.Equate(t, r, uint32(0x1))
	test.Equate(t, c, false)
}
