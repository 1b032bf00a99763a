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

func TestBankedRegistersRoundTrip(t *testing.T) {
	r := NewRegisters()
	r.Write(13, 0x03007f00) // user SP
	r.Write(14, 0x11111111)

	r.SetMode(ModeIRQ)
	r.Write(13, 0x03007fa0) // irq SP
	r.Write(14, 0x22222222)

	r.SetMode(ModeSupervisor)
	r.Write(13, 0x03007fe0)
	r.Write(14, 0x33333333)

	r.SetMode(ModeUser)
	test.Equate(t, r.Read(13), uint32(0x03007f00))
	test.Equate(t, r.Read(14), uint32(0x11111111))

	r.SetMode(ModeIRQ)
	test.Equate(t, r.Read(13), uint32(0x03007fa0))
	test.Equate(t, r.Read(14), uint32(0x22222222))

	r.SetMode(ModeSupervisor)
	test.Equate(t, r.Read(13), uint32(0x03007fe0))
	test.Equate(t, r.Read(14), uint32(0x33333333))
}

func TestFIQBanksR8ThroughR12(t *testing.T) {
	r := NewRegisters()
	r.Write(10, 0xaaaaaaaa)

	r.SetMode(ModeFIQ)
	r.Write(10, 0xbbbbbbbb)

	r.SetMode(ModeUser)
	test.Equate(t, r.Read(10), uint32(0xaaaaaaaa))

	r.SetMode(ModeFIQ)
	test.Equate(t, r.Read(10), uint32(0xbbbbbbbb))
}

func TestSystemSharesUserBank(t *testing.T) {
	r := NewRegisters()
	r.Write(13, 0x03007f00)

	r.SetMode(ModeSystem)
	test.Equate(t, r.Read(13), uint32(0x03007f00))

	r.Write(13, 0x03007f10)
	r.SetMode(ModeUser)
	test.Equate(t, r.Read(13), uint32(0x03007f10))
}

func TestEnterExceptionSavesSPSRAndLR(t *testing.T) {
	r := NewRegisters()
	cpsr := r.CPSR()
	cpsr.SetN(true)
	r.WriteCPSR(cpsr)

	r.EnterException(ModeIRQ, 0x1000)

	test.Equate(t, r.Mode(), ModeIRQ)
	test.Equate(t, r.Read(14), uint32(0x1000))
	test.Equate(t, r.SPSR().N(), true)
}

func TestConditionCodes(t *testing.T) {
	var s StatusRegister
	s.SetZ(true)
	test.Equate(t, s.ConditionTrue(0x0), true)  // EQ
	test.Equate(t, s.ConditionTrue(0x1), false) // NE

	s = StatusRegister(0)
	s.SetN(true)
	s.SetV(false)
	test.Equate(t, s.ConditionTrue(0xb), true)  // LT: N!=V
	test.Equate(t, s.ConditionTrue(0xa), false) // GE: N==V
}
