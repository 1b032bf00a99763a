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

// bank identifies one of the six register banks. User and System modes
// share bank zero (§3: "User and System share the same bank").
type bank int

const (
	bankUser bank = iota
	bankFIQ
	bankIRQ
	bankSupervisor
	bankAbort
	bankUndefined
	bankCount
)

func bankOf(m Mode) bank {
	switch m {
	case ModeFIQ:
		return bankFIQ
	case ModeIRQ:
		return bankIRQ
	case ModeSupervisor:
		return bankSupervisor
	case ModeAbort:
		return bankAbort
	case ModeUndefined:
		return bankUndefined
	default: // ModeUser, ModeSystem
		return bankUser
	}
}

// Registers is the ARM7TDMI register file: the sixteen visible GPRs, the
// CPSR, and every banked shadow described in spec.md §3/§4.1.
//
// Per the design note in spec.md §9, banks are held in small side arrays
// indexed by mode rather than being swapped byte-by-byte; SetMode is the
// only place that moves data between the visible register slots and those
// side arrays, which keeps exception entry O(1) and removes the
// pairwise-copy bugs the design note warns about.
type Registers struct {
	r    [16]uint32
	cpsr StatusRegister

	r13  [bankCount]uint32
	r14  [bankCount]uint32
	spsr [bankCount]StatusRegister

	// FIQ shadows R8-R12 in addition to R13/R14; every other mode shares
	// the same R8-R12 values, so those go in normalR8_12 and only get
	// swapped out while FIQ is current.
	fiqR8_12    [5]uint32
	normalR8_12 [5]uint32
}

// NewRegisters returns a Registers in User mode with CPSR/SPSR and every
// bank zeroed.
func NewRegisters() *Registers {
	regs := &Registers{}
	regs.cpsr.SetMode(ModeUser)
	return regs
}

// Read returns the current value of visible register i (0-15). Callers
// implementing instruction semantics are responsible for the PC pipeline
// adjustment described in spec.md §4.1 invariant 3; Read returns the raw
// stored program counter.
func (r *Registers) Read(i int) uint32 {
	return r.r[i]
}

// Write sets visible register i (0-15) directly, with no pipeline flush or
// alignment enforcement -- callers that write R15 must flush the pipeline
// themselves (spec.md §9, "Pipeline flush vs branch").
func (r *Registers) Write(i int, v uint32) {
	r.r[i] = v
}

// CPSR returns the current program status register.
func (r *Registers) CPSR() StatusRegister { return r.cpsr }

// Mode returns the CPSR's current mode field.
func (r *Registers) Mode() Mode { return r.cpsr.Mode() }

// SPSR returns the saved program status register banked for the current
// mode. Reading SPSR in User/System mode is not meaningful on real
// hardware; this returns the user bank slot, which stays zero unless an
// MSR to SPSR is executed in User or System mode.
func (r *Registers) SPSR() StatusRegister {
	return r.spsr[bankOf(r.cpsr.Mode())]
}

// WriteSPSR sets the SPSR banked for the current mode.
func (r *Registers) WriteSPSR(v StatusRegister) {
	r.spsr[bankOf(r.cpsr.Mode())] = v
}

// BankedRead reads R8-R14 as banked for an arbitrary mode, regardless of
// which mode is current. Used only by exception entry/return and by LDM/STM
// with the S bit set (user-bank register transfer, §4.4).
func (r *Registers) BankedRead(m Mode, i int) uint32 {
	cur := r.cpsr.Mode()
	if bankOf(m) == bankOf(cur) || (i >= 8 && i <= 12 && (m == ModeFIQ) == (cur == ModeFIQ)) {
		return r.r[i]
	}

	switch {
	case i >= 8 && i <= 12:
		if m == ModeFIQ {
			return r.fiqR8_12[i-8]
		}
		return r.normalR8_12[i-8]
	case i == 13:
		return r.r13[bankOf(m)]
	case i == 14:
		return r.r14[bankOf(m)]
	default:
		return r.r[i]
	}
}

// BankedWrite writes R8-R14 as banked for an arbitrary mode. See BankedRead.
func (r *Registers) BankedWrite(m Mode, i int, v uint32) {
	cur := r.cpsr.Mode()
	if bankOf(m) == bankOf(cur) || (i >= 8 && i <= 12 && (m == ModeFIQ) == (cur == ModeFIQ)) {
		r.r[i] = v
		return
	}

	switch {
	case i >= 8 && i <= 12:
		if m == ModeFIQ {
			r.fiqR8_12[i-8] = v
		} else {
			r.normalR8_12[i-8] = v
		}
	case i == 13:
		r.r13[bankOf(m)] = v
	case i == 14:
		r.r14[bankOf(m)] = v
	default:
		r.r[i] = v
	}
}

// SetMode performs a mode switch: it is the sole path that rewrites shadow
// register contents (spec.md §4.1). It saves the outgoing mode's shadows,
// installs the incoming mode's shadows, and finally updates the CPSR mode
// field -- all within one call, so no instruction can observe a partially
// switched register file (§3 invariant 2).
func (r *Registers) SetMode(new Mode) {
	old := r.cpsr.Mode()
	if old == new {
		return
	}

	if old == ModeFIQ {
		copy(r.fiqR8_12[:], r.r[8:13])
	} else if new == ModeFIQ {
		copy(r.normalR8_12[:], r.r[8:13])
	}

	r.r13[bankOf(old)] = r.r[13]
	r.r14[bankOf(old)] = r.r[14]

	if new == ModeFIQ {
		copy(r.r[8:13], r.fiqR8_12[:])
	} else if old == ModeFIQ {
		copy(r.r[8:13], r.normalR8_12[:])
	}

	r.r[13] = r.r13[bankOf(new)]
	r.r[14] = r.r14[bankOf(new)]

	r.cpsr.SetMode(new)
}

// WriteCPSR installs v as the current CPSR, performing a mode switch first
// if v's mode field differs from the current mode (§4.1: "Writing CPSR via
// write_cpsr infers a possible mode change and invokes set_mode before
// committing flag bits").
func (r *Registers) WriteCPSR(v StatusRegister) {
	newMode := v.Mode()
	if newMode != r.cpsr.Mode() {
		r.SetMode(newMode)
	}
	// mode bits are already correct (set_mode installed them); copy every
	// other field from v.
	r.cpsr = (r.cpsr &^ modeFieldMask) | (v &^ modeFieldMask)
	r.cpsr.SetMode(newMode)
}

// EnterException performs the register-file portion of exception entry
// described in spec.md §4.1: save CPSR to SPSR_M, switch mode, and stash the
// return address in LR_M. The vector jump and T/I/F-bit adjustments are the
// caller's responsibility (exceptions.go) since they depend on which
// exception is being taken.
func (r *Registers) EnterException(m Mode, returnAddress uint32) {
	outgoing := r.cpsr
	r.SetMode(m)
	r.spsr[bankOf(m)] = outgoing
	r.r[14] = returnAddress
}
