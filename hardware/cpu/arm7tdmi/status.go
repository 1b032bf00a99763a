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

import "strings"

// Mode is the 5 bit CPSR mode field (§3).
type Mode uint32

// the seven ARM7TDMI modes. values match the real CPSR mode field encoding
// so that MSR/MRS round trips need no translation.
const (
	ModeUser       Mode = 0x10
	ModeFIQ        Mode = 0x11
	ModeIRQ        Mode = 0x12
	ModeSupervisor Mode = 0x13
	ModeAbort      Mode = 0x17
	ModeUndefined  Mode = 0x1b
	ModeSystem     Mode = 0x1f
)

// IsPrivileged reports whether m is anything other than User mode. Only
// privileged modes may write the control field of the CPSR (§4.4, MSR).
func (m Mode) IsPrivileged() bool {
	return m != ModeUser
}

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "usr"
	case ModeFIQ:
		return "fiq"
	case ModeIRQ:
		return "irq"
	case ModeSupervisor:
		return "svc"
	case ModeAbort:
		return "abt"
	case ModeUndefined:
		return "und"
	case ModeSystem:
		return "sys"
	default:
		return "???"
	}
}

// bit positions within the CPSR/SPSR (§3).
const (
	bitN = 31
	bitZ = 30
	bitC = 29
	bitV = 28
	bitQ = 27
	bitI = 7
	bitF = 6
	bitT = 5
)

const modeFieldMask = 0x1f

// StatusRegister is the 32 bit CPSR/SPSR. It is stored as raw bits with
// typed accessors that read/write individual fields by mask and shift,
// rather than as a wide struct of bools -- per spec.md §9's design note on
// avoiding overlapping bitfield views, this keeps the wire-level value
// (the thing MRS/MSR actually transfer) the single source of truth.
type StatusRegister uint32

func bit(v uint32, pos uint) bool { return v&(1<<pos) != 0 }

func setBit(v *uint32, pos uint, on bool) {
	if on {
		*v |= 1 << pos
	} else {
		*v &^= 1 << pos
	}
}

func (s StatusRegister) N() bool { return bit(uint32(s), bitN) }
func (s StatusRegister) Z() bool { return bit(uint32(s), bitZ) }
func (s StatusRegister) C() bool { return bit(uint32(s), bitC) }
func (s StatusRegister) V() bool { return bit(uint32(s), bitV) }
func (s StatusRegister) Q() bool { return bit(uint32(s), bitQ) }
func (s StatusRegister) I() bool { return bit(uint32(s), bitI) }
func (s StatusRegister) F() bool { return bit(uint32(s), bitF) }
func (s StatusRegister) T() bool { return bit(uint32(s), bitT) }

func (s StatusRegister) Mode() Mode { return Mode(uint32(s) & modeFieldMask) }

func (s *StatusRegister) SetN(v bool) { u := uint32(*s); setBit(&u, bitN, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetZ(v bool) { u := uint32(*s); setBit(&u, bitZ, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetC(v bool) { u := uint32(*s); setBit(&u, bitC, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetV(v bool) { u := uint32(*s); setBit(&u, bitV, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetQ(v bool) { u := uint32(*s); setBit(&u, bitQ, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetI(v bool) { u := uint32(*s); setBit(&u, bitI, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetF(v bool) { u := uint32(*s); setBit(&u, bitF, v); *s = StatusRegister(u) }
func (s *StatusRegister) SetT(v bool) { u := uint32(*s); setBit(&u, bitT, v); *s = StatusRegister(u) }

func (s *StatusRegister) SetMode(m Mode) {
	u := uint32(*s)
	u = (u &^ modeFieldMask) | uint32(m)&modeFieldMask
	*s = StatusRegister(u)
}

// ConditionTrue evaluates the four-bit ARM condition code against the
// current N/Z/C/V flags (§4.4).
func (s StatusRegister) ConditionTrue(cond uint32) bool {
	n, z, c, v := s.N(), s.Z(), s.C(), s.V()
	switch cond {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS/HS
		return c
	case 0x3: // CC/LO
		return !c
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return c && !z
	case 0x9: // LS
		return !c || z
	case 0xa: // GE
		return n == v
	case 0xb: // LT
		return n != v
	case 0xc: // GT
		return !z && n == v
	case 0xd: // LE
		return z || n != v
	case 0xe: // AL
		return true
	default: // 0xf, NV: never executes on ARM7TDMI
		return false
	}
}

// setLogicFlags sets N and Z from result, leaving C and V unchanged.
func (s *StatusRegister) setLogicFlags(result uint32) {
	s.SetN(bit(result, 31))
	s.SetZ(result == 0)
}

func (s *StatusRegister) String() string {
	var b strings.Builder
	flag := func(c byte, on bool) {
		if on {
			b.WriteByte(c)
		} else {
			b.WriteByte(c + 32)
		}
	}
	flag('N', s.N())
	flag('Z', s.Z())
	flag('C', s.C())
	flag('V', s.V())
	b.WriteByte(' ')
	b.WriteString(s.Mode().String())
	return b.String()
}
