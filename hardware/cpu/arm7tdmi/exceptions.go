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

// exception vector addresses (§4.1).
const (
	vectorReset          uint32 = 0x00000000
	vectorUndefined      uint32 = 0x00000004
	vectorSoftwareInt    uint32 = 0x00000008
	vectorPrefetchAbort  uint32 = 0x0000000c
	vectorDataAbort      uint32 = 0x00000010
	vectorIRQ            uint32 = 0x00000018
	vectorFIQ            uint32 = 0x0000001c
)

// takeException performs the common exception-entry sequence (§4.1): save
// CPSR to SPSR_m, switch mode, stash the return address in LR_m, force ARM
// state, mask IRQ (and FIQ, for Reset/FIQ only), flush the pipeline and
// branch to the vector.
func (c *CPU) takeException(mode Mode, vector, returnAddress uint32, maskFIQ bool) {
	c.Regs.EnterException(mode, returnAddress)

	cpsr := c.Regs.CPSR()
	cpsr.SetT(false)
	cpsr.SetI(true)
	if maskFIQ {
		cpsr.SetF(true)
	}
	c.Regs.WriteCPSR(cpsr)

	c.branchTo(vector)
}

// enterIRQ is called by Step in place of a normal fetch/decode/execute
// cycle whenever the interrupt controller's line is asserted and IRQs are
// unmasked. The return address is the address of the instruction that was
// about to be fetched, plus 4 (§4.1: "IRQ=PC+4").
func (c *CPU) enterIRQ(bus Bus) int {
	returnAddress := c.pcFetchAddress() + 4
	c.takeException(ModeIRQ, vectorIRQ, returnAddress, false)
	return 3
}

// enterSoftwareInterrupt handles the SWI instruction class for both ARM and
// THUMB (§4.1: "SWI=PC", i.e. the address of the instruction immediately
// following the SWI).
func (c *CPU) enterSoftwareInterrupt(currentInstructionAddress uint32, thumb bool) {
	size := uint32(4)
	if thumb {
		size = 2
	}
	c.takeException(ModeSupervisor, vectorSoftwareInt, currentInstructionAddress+size, false)
}

// enterUndefined handles an undefined-instruction trap (§4.1:
// "Undefined=PC+4").
func (c *CPU) enterUndefined(currentInstructionAddress uint32) {
	c.takeException(ModeUndefined, vectorUndefined, currentInstructionAddress+4, false)
}

// enterPrefetchAbort handles a prefetch abort, reserved for a bus that
// signals a fetch fault (§4.1: "Prefetch Abort=PC+4"). No region decoded by
// hardware/memory currently raises one, but the entry path is complete so a
// future abort source needs no CPU-side changes.
func (c *CPU) enterPrefetchAbort(currentInstructionAddress uint32) {
	c.takeException(ModeAbort, vectorPrefetchAbort, currentInstructionAddress+4, false)
}
