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

import "math/bits"

// operand returns the value register reg presents to an instruction that
// reads it as a source -- R15 reads as pcOperand, every other register
// reads directly.
func (c *CPU) operand(reg int) uint32 {
	if reg == 15 {
		return c.pcOperand()
	}
	return c.Regs.Read(reg)
}

// addWithCarry is the shared ARM add/subtract primitive: every data
// processing arithmetic opcode (ADD, ADC, SUB, SBC, RSB, RSC, CMP, CMN)
// reduces to this with operands and carry-in chosen appropriately.
func addWithCarry(a, b uint32, carryIn bool) (result uint32, carryOut, overflowOut bool) {
	var cin uint64
	if carryIn {
		cin = 1
	}
	sum := uint64(a) + uint64(b) + cin
	result = uint32(sum)
	carryOut = sum > 0xffffffff
	overflowOut = (a^b)&0x80000000 == 0 && (a^result)&0x80000000 != 0
	return result, carryOut, overflowOut
}

// executeARM dispatches a decoded ARM instruction to its handler.
// instAddr is the address the opcode was fetched from, needed by SWI and
// undefined-instruction entry to compute the exception return address.
func (c *CPU) executeARM(bus Bus, inst InstructionARM, instAddr uint32) (int, error) {
	switch inst.Class {
	case ClassARMMultiply:
		return c.executeMultiply(inst)
	case ClassARMMultiplyLong:
		return c.executeMultiplyLong(inst)
	case ClassARMSwap:
		return c.executeSwap(bus, inst)
	case ClassARMBranchExchange:
		return c.executeBranchExchange(inst)
	case ClassARMHalfwordTransfer:
		return c.executeHalfwordTransfer(bus, inst)
	case ClassARMPSRTransfer:
		return c.executePSRTransfer(inst)
	case ClassARMDataProcessing:
		return c.executeDataProcessing(inst)
	case ClassARMSingleDataTransfer:
		return c.executeSingleDataTransfer(bus, inst)
	case ClassARMBlockDataTransfer:
		return c.executeBlockDataTransfer(bus, inst)
	case ClassARMBranch:
		return c.executeBranchARM(inst, instAddr)
	case ClassARMSoftwareInterrupt:
		c.enterSoftwareInterrupt(instAddr, false)
		return 3, nil
	default: // ClassARMUndefined
		c.enterUndefined(instAddr)
		return 3, nil
	}
}

func (c *CPU) executeDataProcessing(inst InstructionARM) (int, error) {
	var op2 uint32
	var shifterCarry bool

	if inst.ImmediateOp2 {
		op2 = inst.Imm
		if inst.ImmNoRotate {
			shifterCarry = c.Regs.CPSR().C()
		} else {
			shifterCarry = inst.ImmCarryOut
		}
	} else {
		rm := c.operand(inst.Rm)
		ctx := ShiftImmediate
		amount := inst.ShiftAmount
		if inst.ShiftByReg {
			ctx = ShiftByRegister
			amount = c.operand(inst.Rs) & 0xff
		}
		op2, shifterCarry = Shift(inst.ShiftType, rm, amount, ctx, c.Regs.CPSR().C())
	}

	rn := c.operand(inst.Rn)

	var result uint32
	var carryOut, overflowOut bool
	logical := false
	isTest := false

	switch inst.OpCode {
	case 0x0: // AND
		result, logical = rn&op2, true
	case 0x1: // EOR
		result, logical = rn^op2, true
	case 0x2: // SUB
		result, carryOut, overflowOut = addWithCarry(rn, ^op2, true)
	case 0x3: // RSB
		result, carryOut, overflowOut = addWithCarry(op2, ^rn, true)
	case 0x4: // ADD
		result, carryOut, overflowOut = addWithCarry(rn, op2, false)
	case 0x5: // ADC
		result, carryOut, overflowOut = addWithCarry(rn, op2, c.Regs.CPSR().C())
	case 0x6: // SBC
		result, carryOut, overflowOut = addWithCarry(rn, ^op2, c.Regs.CPSR().C())
	case 0x7: // RSC
		result, carryOut, overflowOut = addWithCarry(op2, ^rn, c.Regs.CPSR().C())
	case 0x8: // TST
		result, logical, isTest = rn&op2, true, true
	case 0x9: // TEQ
		result, logical, isTest = rn^op2, true, true
	case 0xa: // CMP
		result, carryOut, overflowOut = addWithCarry(rn, ^op2, true)
		isTest = true
	case 0xb: // CMN
		result, carryOut, overflowOut = addWithCarry(rn, op2, false)
		isTest = true
	case 0xc: // ORR
		result, logical = rn|op2, true
	case 0xd: // MOV
		result, logical = op2, true
	case 0xe: // BIC
		result, logical = rn&^op2, true
	case 0xf: // MVN
		result, logical = ^op2, true
	}

	if inst.SetFlags {
		if inst.Rd == 15 && !isTest {
			// S=1 on a PC-writing opcode restores CPSR from SPSR instead of
			// touching flags individually (§4.4).
			c.Regs.WriteCPSR(c.Regs.SPSR())
		} else {
			cpsr := c.Regs.CPSR()
			cpsr.SetN(result>>31 == 1)
			cpsr.SetZ(result == 0)
			if logical {
				cpsr.SetC(shifterCarry)
			} else {
				cpsr.SetC(carryOut)
				cpsr.SetV(overflowOut)
			}
			c.Regs.WriteCPSR(cpsr)
		}
	}

	if !isTest {
		c.Regs.Write(inst.Rd, result)
		if inst.Rd == 15 {
			c.branchTo(result)
		}
	}

	return 0, nil
}

func (c *CPU) executeMultiply(inst InstructionARM) (int, error) {
	result := c.Regs.Read(inst.Rm) * c.Regs.Read(inst.Rs)
	if inst.Accumulate {
		result += c.Regs.Read(inst.Rn)
	}
	c.Regs.Write(inst.Rd, result)
	if inst.SetFlags {
		cpsr := c.Regs.CPSR()
		cpsr.SetN(result>>31 == 1)
		cpsr.SetZ(result == 0)
		// C is left unchanged: MUL/MLA give it no defined value (resolved
		// open question, see DESIGN.md).
		c.Regs.WriteCPSR(cpsr)
	}
	return 1, nil
}

func (c *CPU) executeMultiplyLong(inst InstructionARM) (int, error) {
	rm, rs := c.Regs.Read(inst.Rm), c.Regs.Read(inst.Rs)

	var hi, lo uint32
	if inst.UnsignedLong {
		full := uint64(rm) * uint64(rs)
		if inst.Accumulate {
			full += uint64(c.Regs.Read(inst.RdHi))<<32 | uint64(c.Regs.Read(inst.RdLo))
		}
		hi, lo = uint32(full>>32), uint32(full)
	} else {
		full := int64(int32(rm)) * int64(int32(rs))
		if inst.Accumulate {
			full += int64(uint64(c.Regs.Read(inst.RdHi))<<32 | uint64(c.Regs.Read(inst.RdLo)))
		}
		hi, lo = uint32(uint64(full)>>32), uint32(uint64(full))
	}

	c.Regs.Write(inst.RdHi, hi)
	c.Regs.Write(inst.RdLo, lo)
	if inst.SetFlags {
		cpsr := c.Regs.CPSR()
		cpsr.SetN(hi>>31 == 1)
		cpsr.SetZ(hi == 0 && lo == 0)
		c.Regs.WriteCPSR(cpsr)
	}
	return 2, nil
}

func (c *CPU) executeSwap(bus Bus, inst InstructionARM) (int, error) {
	addr := c.Regs.Read(inst.Rn)
	if inst.B {
		old, rc := bus.Read8(addr)
		wc := bus.Write8(addr, uint8(c.Regs.Read(inst.Rm)))
		c.Regs.Write(inst.Rd, uint32(old))
		return rc + wc, nil
	}
	old, rc := bus.Read32(addr)
	wc := bus.Write32(addr, c.Regs.Read(inst.Rm))
	c.Regs.Write(inst.Rd, old)
	return rc + wc, nil
}

func (c *CPU) executeBranchExchange(inst InstructionARM) (int, error) {
	target := c.Regs.Read(inst.Rm)
	cpsr := c.Regs.CPSR()
	cpsr.SetT(target&1 == 1)
	c.Regs.WriteCPSR(cpsr)
	c.branchTo(target)
	return 0, nil
}

func (c *CPU) executeHalfwordTransfer(bus Bus, inst InstructionARM) (int, error) {
	base := c.Regs.Read(inst.Rn)
	var offset uint32
	if inst.RegOffset {
		offset = c.Regs.Read(inst.Rm)
	} else {
		offset = inst.Imm
	}

	addr := base
	if inst.P {
		if inst.U {
			addr = base + offset
		} else {
			addr = base - offset
		}
	}

	var cycles int
	if inst.L {
		var v uint32
		switch {
		case inst.H && inst.SignedXfer: // LDRSH
			v16, rc := bus.Read16(addr)
			cycles += rc
			v = uint32(int32(int16(v16)))
		case inst.H: // LDRH
			v16, rc := bus.Read16(addr)
			cycles += rc
			v = uint32(v16)
		default: // LDRSB
			v8, rc := bus.Read8(addr)
			cycles += rc
			v = uint32(int32(int8(v8)))
		}
		c.Regs.Write(inst.Rd, v)
		if inst.Rd == 15 {
			c.branchTo(v)
		}
	} else { // STRH
		cycles += bus.Write16(addr, uint16(c.Regs.Read(inst.Rd)))
	}

	// a load into Rn itself must not have its writeback clobber the value
	// just loaded -- the loaded value wins (§4.4).
	writesBack := !(inst.L && inst.Rn == inst.Rd)
	if !inst.P {
		if inst.U {
			addr = base + offset
		} else {
			addr = base - offset
		}
		if writesBack {
			c.Regs.Write(inst.Rn, addr)
		}
	} else if inst.W {
		if writesBack {
			c.Regs.Write(inst.Rn, addr)
		}
	}
	return cycles, nil
}

func (c *CPU) executePSRTransfer(inst InstructionARM) (int, error) {
	if !inst.ToPSR {
		var v StatusRegister
		if inst.UseSPSR {
			v = c.Regs.SPSR()
		} else {
			v = c.Regs.CPSR()
		}
		c.Regs.Write(inst.Rd, uint32(v))
		return 0, nil
	}

	var src uint32
	if inst.ImmediateOp2 {
		src = inst.Imm
	} else {
		src = c.Regs.Read(inst.Rm)
	}

	var mask uint32
	if inst.PSRFieldMask&0x8 != 0 {
		mask |= 0xff000000 // flags field
	}
	if c.Regs.Mode().IsPrivileged() && inst.PSRFieldMask&0x1 != 0 {
		mask |= 0x000000ff // control field
	}

	if inst.UseSPSR {
		dst := uint32(c.Regs.SPSR())
		c.Regs.WriteSPSR(StatusRegister((dst &^ mask) | (src & mask)))
	} else {
		dst := uint32(c.Regs.CPSR())
		c.Regs.WriteCPSR(StatusRegister((dst &^ mask) | (src & mask)))
	}
	return 0, nil
}

func (c *CPU) executeSingleDataTransfer(bus Bus, inst InstructionARM) (int, error) {
	base := c.operand(inst.Rn)

	var offset uint32
	if inst.RegOffset {
		offset, _ = Shift(inst.ShiftType, c.Regs.Read(inst.Rm), inst.ShiftAmount, ShiftImmediate, c.Regs.CPSR().C())
	} else {
		offset = inst.Imm
	}

	addr := base
	if inst.P {
		if inst.U {
			addr = base + offset
		} else {
			addr = base - offset
		}
	}

	var cycles int
	if inst.L {
		var v uint32
		if inst.B {
			v8, rc := bus.Read8(addr)
			cycles += rc
			v = uint32(v8)
		} else {
			raw, rc := bus.Read32(addr)
			cycles += rc
			// a misaligned word load rotates the fetched word right by the
			// misalignment in bits, rather than faulting (§4.6).
			v, _ = Shift(ShiftROR, raw, (addr&3)*8, ShiftByRegister, false)
		}
		c.Regs.Write(inst.Rd, v)
		if inst.Rd == 15 {
			c.branchTo(v &^ 3)
		}
	} else {
		v := c.operand(inst.Rd)
		if inst.B {
			cycles += bus.Write8(addr, uint8(v))
		} else {
			cycles += bus.Write32(addr, v)
		}
	}

	// a load into Rn itself must not have its writeback clobber the value
	// just loaded -- the loaded value wins (§4.4).
	writesBack := !(inst.L && inst.Rn == inst.Rd)
	if !inst.P {
		if inst.U {
			addr = base + offset
		} else {
			addr = base - offset
		}
		if writesBack {
			c.Regs.Write(inst.Rn, addr)
		}
	} else if inst.W {
		if writesBack {
			c.Regs.Write(inst.Rn, addr)
		}
	}
	return cycles, nil
}

func (c *CPU) executeBlockDataTransfer(bus Bus, inst InstructionARM) (int, error) {
	base := c.Regs.Read(inst.Rn)

	count := bits.OnesCount16(inst.RegList)
	if count == 0 {
		count = 1
	}

	var start, writeback uint32
	if inst.U {
		start = base
		writeback = base + uint32(count)*4
	} else {
		start = base - uint32(count)*4
		writeback = start
	}
	if inst.P == inst.U {
		start += 4
	}

	userBank := inst.SBit && !(inst.L && inst.RegList&0x8000 != 0)

	var cycles int
	addr := start
	for r := 0; r < 16; r++ {
		if inst.RegList&(1<<uint(r)) == 0 {
			continue
		}
		if inst.L {
			v, rc := bus.Read32(addr)
			cycles += rc
			if userBank {
				c.Regs.BankedWrite(ModeUser, r, v)
			} else {
				c.Regs.Write(r, v)
				if r == 15 {
					if inst.SBit {
						c.Regs.WriteCPSR(c.Regs.SPSR())
					}
					c.branchTo(v)
				}
			}
		} else {
			var v uint32
			if userBank {
				v = c.Regs.BankedRead(ModeUser, r)
			} else if r == 15 {
				v = c.pcOperand() + 4
			} else {
				v = c.Regs.Read(r)
			}
			cycles += bus.Write32(addr, v)
		}
		addr += 4
	}

	writesBack := inst.W && !(inst.L && inst.RegList&(1<<uint(inst.Rn)) != 0)
	if writesBack {
		c.Regs.Write(inst.Rn, writeback)
	}
	return cycles, nil
}

func (c *CPU) executeBranchARM(inst InstructionARM, instAddr uint32) (int, error) {
	if inst.Link {
		c.Regs.Write(14, instAddr+4)
	}
	target := uint32(int32(c.pcOperand()) + inst.BranchOffset)
	c.branchTo(target)
	return 0, nil
}
