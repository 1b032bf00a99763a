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

// CPU is the dual ARM/THUMB ARM7TDMI core: the banked register file, the
// pipeline-flush bookkeeping, and a Step loop that fetches, decodes and
// executes one instruction against a Bus. It owns no memory of its own and
// knows nothing about DMA, timers or the interrupt controller beyond the
// single irqLine boolean Step is handed each call (spec.md §9, "side-table
// coupling": the interrupt controller computes the line, the CPU only
// reacts to it).
type CPU struct {
	Regs *Registers
	pipe pipeline

	branched bool // set by an execute handler that wrote R15; cleared each Step
}

// NewCPU returns a CPU with a fresh register file. Call Reset before the
// first Step to establish the BIOS entry state.
func NewCPU() *CPU {
	return &CPU{Regs: NewRegisters()}
}

// Reset puts the CPU into the state the BIOS is entered in: Supervisor
// mode, IRQ and FIQ masked, ARM state, PC at the reset vector. Every other
// register is left at whatever NewRegisters gave it (zero), matching real
// hardware which does not clear the general registers on reset.
func (c *CPU) Reset() {
	c.Regs.SetMode(ModeSupervisor)
	cpsr := c.Regs.CPSR()
	cpsr.SetI(true)
	cpsr.SetF(true)
	cpsr.SetT(false)
	c.Regs.WriteCPSR(cpsr)
	c.Regs.Write(14, 0)
	c.Regs.Write(15, 0)
	c.pipe.flush()
}

// pcFetchAddress is the address Step fetches from: the raw R15 value. The
// "PC reads as address+8 (ARM) or address+4 (THUMB)" rule (§3) only applies
// to R15 when it is read as an *operand* by an instruction, which is
// modelled in the execute handlers via pcOperand, not here.
func (c *CPU) pcFetchAddress() uint32 {
	return c.Regs.Read(15)
}

// pcOperand returns the value R15 presents to an executing instruction,
// i.e. the address of the current instruction plus two instructions of
// pipeline: +8 in ARM state, +4 in THUMB state.
func (c *CPU) pcOperand() uint32 {
	if c.Regs.CPSR().T() {
		return c.pcFetchAddress() + 4
	}
	return c.pcFetchAddress() + 8
}

// branchTo writes a new PC, flushes the pipeline and marks the current
// Step as having branched (so the caller can charge the extra fetch
// cycles). Every execute handler that changes control flow -- B, BL, BX,
// data processing writing R15, LDM writing R15, exception entry -- goes
// through this single path (spec.md §9, "Pipeline flush vs branch").
func (c *CPU) branchTo(addr uint32) {
	if c.Regs.CPSR().T() {
		addr &^= 1
	} else {
		addr &^= 3
	}
	c.Regs.Write(15, addr)
	c.pipe.flush()
	c.branched = true
}

// Step fetches, decodes and executes exactly one instruction (ARM or THUMB,
// according to the current T bit), or takes a pending IRQ in its place.
// irqLine is the interrupt controller's current request/enable evaluation
// (spec.md §4.6); Step does not read IE/IF/IME itself. It returns the
// number of cycles consumed, folding in whatever wait-state cost the bus
// reports for each access.
func (c *CPU) Step(bus Bus, irqLine bool) (int, error) {
	if irqLine && !c.Regs.CPSR().I() {
		return c.enterIRQ(bus), nil
	}

	c.branched = false

	if c.Regs.CPSR().T() {
		return c.stepThumb(bus)
	}
	return c.stepARM(bus)
}

// LastFetchedOpcode returns the most recently fetched instruction word
// (zero-extended if the last fetch was a THUMB halfword), for a bus
// implementation that wants to model open-bus reads as "the last thing
// the prefetcher saw" (spec.md §4.6).
func (c *CPU) LastFetchedOpcode() uint32 {
	return c.pipe.fetch.opcode
}

func (c *CPU) stepARM(bus Bus) (int, error) {
	pc := c.pcFetchAddress()
	op, cycles := bus.Read32(pc)
	c.pipe.fetch = pipelineSlot{valid: true, opcode: op}

	inst := DecodeARM(op)
	if !c.Regs.CPSR().ConditionTrue(inst.Cond) {
		c.Regs.Write(15, pc+4)
		return cycles, nil
	}

	extra, err := c.executeARM(bus, inst, pc)
	cycles += extra
	if !c.branched {
		c.Regs.Write(15, pc+4)
	}
	return cycles, err
}

func (c *CPU) stepThumb(bus Bus) (int, error) {
	pc := c.pcFetchAddress()
	op16, cycles := bus.Read16(pc)
	c.pipe.fetch = pipelineSlot{valid: true, opcode: uint32(op16)}

	extra, err := c.executeThumb(bus, op16)
	cycles += extra
	if !c.branched {
		c.Regs.Write(15, pc+2)
	}
	return cycles, err
}
