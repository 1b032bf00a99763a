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

// executeThumb classifies a 16 bit THUMB opcode by format and dispatches to
// its handler. THUMB has no per-instruction condition field (only format 16
// does, internally), so every handler here always runs once reached.
func (c *CPU) executeThumb(bus Bus, op16 uint16) (int, error) {
	op := uint32(op16)

	switch {
	case thumbBits(op, 15, 13) == 0b000 && thumbBits(op, 12, 11) != 0b11:
		return c.thumbMoveShiftedRegister(op)
	case thumbBits(op, 15, 11) == 0b00011:
		return c.thumbAddSubtract(op)
	case thumbBits(op, 15, 13) == 0b001:
		return c.thumbMovCmpAddSubImm(op)
	case thumbBits(op, 15, 10) == 0b010000:
		return c.thumbALU(op)
	case thumbBits(op, 15, 10) == 0b010001:
		return c.thumbHiRegisterOps(op)
	case thumbBits(op, 15, 11) == 0b01001:
		return c.thumbPCRelativeLoad(bus, op)
	case thumbBits(op, 15, 12) == 0b0101 && !thumbBit(op, 9):
		return c.thumbLoadStoreRegOffset(bus, op)
	case thumbBits(op, 15, 12) == 0b0101 && thumbBit(op, 9):
		return c.thumbLoadStoreSignExtended(bus, op)
	case thumbBits(op, 15, 13) == 0b011:
		return c.thumbLoadStoreImmOffset(bus, op)
	case thumbBits(op, 15, 12) == 0b1000:
		return c.thumbLoadStoreHalfword(bus, op)
	case thumbBits(op, 15, 12) == 0b1001:
		return c.thumbSPRelativeLoadStore(bus, op)
	case thumbBits(op, 15, 12) == 0b1010:
		return c.thumbLoadAddress(op)
	case thumbBits(op, 15, 8) == 0b10110000:
		return c.thumbAddOffsetToSP(op)
	case thumbBits(op, 15, 12) == 0b1011 && thumbBits(op, 10, 9) == 0b10:
		return c.thumbPushPopRegisters(bus, op)
	case thumbBits(op, 15, 12) == 0b1100:
		return c.thumbMultipleLoadStore(bus, op)
	case thumbBits(op, 15, 8) == 0b11011111:
		return c.thumbSoftwareInterrupt()
	case thumbBits(op, 15, 12) == 0b1101:
		return c.thumbConditionalBranch(op)
	case thumbBits(op, 15, 11) == 0b11100:
		return c.thumbUnconditionalBranch(op)
	case thumbBits(op, 15, 12) == 0b1111:
		return c.thumbLongBranchWithLink(op)
	default:
		c.enterUndefined(c.pcFetchAddress())
		return 3, nil
	}
}

func (c *CPU) setThumbLogicFlags(cpsr *StatusRegister, result uint32) {
	cpsr.SetN(result>>31 == 1)
	cpsr.SetZ(result == 0)
}

func (c *CPU) setThumbArithFlags(cpsr *StatusRegister, result uint32, carry, overflow bool) {
	cpsr.SetN(result>>31 == 1)
	cpsr.SetZ(result == 0)
	cpsr.SetC(carry)
	cpsr.SetV(overflow)
}

// format 1: move shifted register (LSL/LSR/ASR Rd, Rs, #imm5).
func (c *CPU) thumbMoveShiftedRegister(op uint32) (int, error) {
	opc := thumbBits(op, 12, 11)
	imm := thumbBits(op, 10, 6)
	rs := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))

	var st ShiftType
	switch opc {
	case 0b00:
		st = ShiftLSL
	case 0b01:
		st = ShiftLSR
	default:
		st = ShiftASR
	}

	cpsr := c.Regs.CPSR()
	result, carry := Shift(st, c.Regs.Read(rs), imm, ShiftImmediate, cpsr.C())
	c.Regs.Write(rd, result)
	cpsr.SetC(carry)
	c.setThumbLogicFlags(&cpsr, result)
	c.Regs.WriteCPSR(cpsr)
	return 0, nil
}

// format 2: add/subtract, register or 3 bit immediate operand.
func (c *CPU) thumbAddSubtract(op uint32) (int, error) {
	immediate := thumbBit(op, 10)
	sub := thumbBit(op, 9)
	rnOrImm := thumbBits(op, 8, 6)
	rs := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))

	var operand2 uint32
	if immediate {
		operand2 = rnOrImm
	} else {
		operand2 = c.Regs.Read(int(rnOrImm))
	}

	rsVal := c.Regs.Read(rs)
	var result uint32
	var carry, overflow bool
	if sub {
		result, carry, overflow = addWithCarry(rsVal, ^operand2, true)
	} else {
		result, carry, overflow = addWithCarry(rsVal, operand2, false)
	}

	c.Regs.Write(rd, result)
	cpsr := c.Regs.CPSR()
	c.setThumbArithFlags(&cpsr, result, carry, overflow)
	c.Regs.WriteCPSR(cpsr)
	return 0, nil
}

// format 3: move/compare/add/subtract with an 8 bit immediate.
func (c *CPU) thumbMovCmpAddSubImm(op uint32) (int, error) {
	opc := thumbBits(op, 12, 11)
	rd := int(thumbBits(op, 10, 8))
	imm := thumbBits(op, 7, 0)
	rdVal := c.Regs.Read(rd)

	cpsr := c.Regs.CPSR()
	switch opc {
	case 0b00: // MOV
		c.Regs.Write(rd, imm)
		c.setThumbLogicFlags(&cpsr, imm)
	case 0b01: // CMP
		result, carry, overflow := addWithCarry(rdVal, ^imm, true)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	case 0b10: // ADD
		result, carry, overflow := addWithCarry(rdVal, imm, false)
		c.Regs.Write(rd, result)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	case 0b11: // SUB
		result, carry, overflow := addWithCarry(rdVal, ^imm, true)
		c.Regs.Write(rd, result)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	}
	c.Regs.WriteCPSR(cpsr)
	return 0, nil
}

// format 4: the 16 two-operand ALU operations.
func (c *CPU) thumbALU(op uint32) (int, error) {
	opc := thumbBits(op, 9, 6)
	rs := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))
	rdVal := c.Regs.Read(rd)
	rsVal := c.Regs.Read(rs)

	cpsr := c.Regs.CPSR()
	var result uint32
	write := true

	switch opc {
	case 0x0: // AND
		result = rdVal & rsVal
		c.setThumbLogicFlags(&cpsr, result)
	case 0x1: // EOR
		result = rdVal ^ rsVal
		c.setThumbLogicFlags(&cpsr, result)
	case 0x2: // LSL
		var carry bool
		result, carry = Shift(ShiftLSL, rdVal, rsVal&0xff, ShiftByRegister, cpsr.C())
		cpsr.SetC(carry)
		c.setThumbLogicFlags(&cpsr, result)
	case 0x3: // LSR
		var carry bool
		result, carry = Shift(ShiftLSR, rdVal, rsVal&0xff, ShiftByRegister, cpsr.C())
		cpsr.SetC(carry)
		c.setThumbLogicFlags(&cpsr, result)
	case 0x4: // ASR
		var carry bool
		result, carry = Shift(ShiftASR, rdVal, rsVal&0xff, ShiftByRegister, cpsr.C())
		cpsr.SetC(carry)
		c.setThumbLogicFlags(&cpsr, result)
	case 0x5: // ADC
		var carry, overflow bool
		result, carry, overflow = addWithCarry(rdVal, rsVal, cpsr.C())
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	case 0x6: // SBC
		var carry, overflow bool
		result, carry, overflow = addWithCarry(rdVal, ^rsVal, cpsr.C())
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	case 0x7: // ROR
		var carry bool
		result, carry = Shift(ShiftROR, rdVal, rsVal&0xff, ShiftByRegister, cpsr.C())
		cpsr.SetC(carry)
		c.setThumbLogicFlags(&cpsr, result)
	case 0x8: // TST
		result = rdVal & rsVal
		c.setThumbLogicFlags(&cpsr, result)
		write = false
	case 0x9: // NEG
		var carry, overflow bool
		result, carry, overflow = addWithCarry(0, ^rsVal, true)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
	case 0xa: // CMP
		var carry, overflow bool
		result, carry, overflow = addWithCarry(rdVal, ^rsVal, true)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
		write = false
	case 0xb: // CMN
		var carry, overflow bool
		result, carry, overflow = addWithCarry(rdVal, rsVal, false)
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
		write = false
	case 0xc: // ORR
		result = rdVal | rsVal
		c.setThumbLogicFlags(&cpsr, result)
	case 0xd: // MUL
		result = rdVal * rsVal
		c.setThumbLogicFlags(&cpsr, result)
	case 0xe: // BIC
		result = rdVal &^ rsVal
		c.setThumbLogicFlags(&cpsr, result)
	case 0xf: // MVN
		result = ^rsVal
		c.setThumbLogicFlags(&cpsr, result)
	}

	c.Regs.WriteCPSR(cpsr)
	if write {
		c.Regs.Write(rd, result)
	}
	return 0, nil
}

// format 5: hi register operations and branch/exchange. Rs/Rd extend to the
// full R0-R15 range via the H1/H2 bits, reaching into the high registers low
// THUMB encodings otherwise can't address.
func (c *CPU) thumbHiRegisterOps(op uint32) (int, error) {
	opc := thumbBits(op, 9, 8)
	h1, h2 := thumbBit(op, 7), thumbBit(op, 6)

	rs := int(thumbBits(op, 5, 3))
	if h2 {
		rs += 8
	}
	rd := int(thumbBits(op, 2, 0))
	if h1 {
		rd += 8
	}

	rsVal := c.operand(rs)

	switch opc {
	case 0b00: // ADD
		result := c.operand(rd) + rsVal
		c.Regs.Write(rd, result)
		if rd == 15 {
			c.branchTo(result)
		}
	case 0b01: // CMP
		result, carry, overflow := addWithCarry(c.operand(rd), ^rsVal, true)
		cpsr := c.Regs.CPSR()
		c.setThumbArithFlags(&cpsr, result, carry, overflow)
		c.Regs.WriteCPSR(cpsr)
	case 0b10: // MOV
		c.Regs.Write(rd, rsVal)
		if rd == 15 {
			c.branchTo(rsVal)
		}
	case 0b11: // BX (and BLX in later cores, unused here)
		cpsr := c.Regs.CPSR()
		cpsr.SetT(rsVal&1 == 1)
		c.Regs.WriteCPSR(cpsr)
		c.branchTo(rsVal)
	}
	return 0, nil
}

// format 6: PC-relative load (LDR Rd, [PC, #imm]).
func (c *CPU) thumbPCRelativeLoad(bus Bus, op uint32) (int, error) {
	rd := int(thumbBits(op, 10, 8))
	imm := thumbBits(op, 7, 0) * 4
	addr := (c.pcOperand() &^ 3) + imm
	v, cycles := bus.Read32(addr)
	c.Regs.Write(rd, v)
	return cycles, nil
}

// format 7: load/store with a register offset.
func (c *CPU) thumbLoadStoreRegOffset(bus Bus, op uint32) (int, error) {
	l := thumbBit(op, 11)
	b := thumbBit(op, 10)
	ro := int(thumbBits(op, 8, 6))
	rb := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))
	addr := c.Regs.Read(rb) + c.Regs.Read(ro)

	var cycles int
	if l {
		var v uint32
		if b {
			v8, rc := bus.Read8(addr)
			cycles += rc
			v = uint32(v8)
		} else {
			raw, rc := bus.Read32(addr)
			cycles += rc
			v, _ = Shift(ShiftROR, raw, (addr&3)*8, ShiftByRegister, false)
		}
		c.Regs.Write(rd, v)
	} else if b {
		cycles += bus.Write8(addr, uint8(c.Regs.Read(rd)))
	} else {
		cycles += bus.Write32(addr, c.Regs.Read(rd))
	}
	return cycles, nil
}

// format 8: load/store sign-extended byte/halfword.
func (c *CPU) thumbLoadStoreSignExtended(bus Bus, op uint32) (int, error) {
	h := thumbBit(op, 11)
	s := thumbBit(op, 10)
	ro := int(thumbBits(op, 8, 6))
	rb := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))
	addr := c.Regs.Read(rb) + c.Regs.Read(ro)

	var cycles int
	switch {
	case !h && !s: // STRH
		cycles += bus.Write16(addr, uint16(c.Regs.Read(rd)))
		return cycles, nil
	case !h && s: // LDRSB
		v8, rc := bus.Read8(addr)
		cycles += rc
		c.Regs.Write(rd, uint32(int32(int8(v8))))
	case h && !s: // LDRH
		v16, rc := bus.Read16(addr)
		cycles += rc
		c.Regs.Write(rd, uint32(v16))
	default: // LDRSH
		v16, rc := bus.Read16(addr)
		cycles += rc
		c.Regs.Write(rd, uint32(int32(int16(v16))))
	}
	return cycles, nil
}

// format 9: load/store with a 5 bit immediate offset (word or byte, scaled
// by the transfer width).
func (c *CPU) thumbLoadStoreImmOffset(bus Bus, op uint32) (int, error) {
	b := thumbBit(op, 12)
	l := thumbBit(op, 11)
	imm5 := thumbBits(op, 10, 6)
	rb := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))

	var offset uint32
	if b {
		offset = imm5
	} else {
		offset = imm5 * 4
	}
	addr := c.Regs.Read(rb) + offset

	var cycles int
	if l {
		var v uint32
		if b {
			v8, rc := bus.Read8(addr)
			cycles += rc
			v = uint32(v8)
		} else {
			raw, rc := bus.Read32(addr)
			cycles += rc
			v, _ = Shift(ShiftROR, raw, (addr&3)*8, ShiftByRegister, false)
		}
		c.Regs.Write(rd, v)
	} else if b {
		cycles += bus.Write8(addr, uint8(c.Regs.Read(rd)))
	} else {
		cycles += bus.Write32(addr, c.Regs.Read(rd))
	}
	return cycles, nil
}

// format 10: load/store halfword with a 5 bit immediate offset, scaled by 2.
func (c *CPU) thumbLoadStoreHalfword(bus Bus, op uint32) (int, error) {
	l := thumbBit(op, 11)
	imm5 := thumbBits(op, 10, 6)
	rb := int(thumbBits(op, 5, 3))
	rd := int(thumbBits(op, 2, 0))
	addr := c.Regs.Read(rb) + imm5*2

	var cycles int
	if l {
		v16, rc := bus.Read16(addr)
		cycles += rc
		c.Regs.Write(rd, uint32(v16))
	} else {
		cycles += bus.Write16(addr, uint16(c.Regs.Read(rd)))
	}
	return cycles, nil
}

// format 11: SP-relative load/store.
func (c *CPU) thumbSPRelativeLoadStore(bus Bus, op uint32) (int, error) {
	l := thumbBit(op, 11)
	rd := int(thumbBits(op, 10, 8))
	imm := thumbBits(op, 7, 0) * 4
	addr := c.Regs.Read(13) + imm

	var cycles int
	if l {
		raw, rc := bus.Read32(addr)
		cycles += rc
		v, _ := Shift(ShiftROR, raw, (addr&3)*8, ShiftByRegister, false)
		c.Regs.Write(rd, v)
	} else {
		cycles += bus.Write32(addr, c.Regs.Read(rd))
	}
	return cycles, nil
}

// format 12: load address, relative to SP or to the word-aligned PC.
func (c *CPU) thumbLoadAddress(op uint32) (int, error) {
	sp := thumbBit(op, 11)
	rd := int(thumbBits(op, 10, 8))
	imm := thumbBits(op, 7, 0) * 4

	var base uint32
	if sp {
		base = c.Regs.Read(13)
	} else {
		base = c.pcOperand() &^ 3
	}
	c.Regs.Write(rd, base+imm)
	return 0, nil
}

// format 13: add a signed 7 bit word offset to SP.
func (c *CPU) thumbAddOffsetToSP(op uint32) (int, error) {
	negative := thumbBit(op, 7)
	imm := thumbBits(op, 6, 0) * 4
	sp := c.Regs.Read(13)
	if negative {
		sp -= imm
	} else {
		sp += imm
	}
	c.Regs.Write(13, sp)
	return 0, nil
}

// format 14: push/pop registers, with the LR/PC extension bit.
func (c *CPU) thumbPushPopRegisters(bus Bus, op uint32) (int, error) {
	l := thumbBit(op, 11)
	extend := thumbBit(op, 8)
	rlist := uint16(thumbBits(op, 7, 0))

	var cycles int
	if l {
		sp := c.Regs.Read(13)
		for i := 0; i < 8; i++ {
			if rlist&(1<<uint(i)) == 0 {
				continue
			}
			v, rc := bus.Read32(sp)
			cycles += rc
			c.Regs.Write(i, v)
			sp += 4
		}
		if extend {
			v, rc := bus.Read32(sp)
			cycles += rc
			sp += 4
			c.branchTo(v &^ 1)
		}
		c.Regs.Write(13, sp)
		return cycles, nil
	}

	count := bits.OnesCount16(rlist)
	if extend {
		count++
	}
	sp := c.Regs.Read(13) - uint32(count)*4
	addr := sp
	for i := 0; i < 8; i++ {
		if rlist&(1<<uint(i)) == 0 {
			continue
		}
		cycles += bus.Write32(addr, c.Regs.Read(i))
		addr += 4
	}
	if extend {
		cycles += bus.Write32(addr, c.Regs.Read(14))
	}
	c.Regs.Write(13, sp)
	return cycles, nil
}

// format 15: multiple load/store through a low register base, always
// increment-after with writeback (THUMB has no P/U/W bits to vary this).
func (c *CPU) thumbMultipleLoadStore(bus Bus, op uint32) (int, error) {
	l := thumbBit(op, 11)
	rb := int(thumbBits(op, 10, 8))
	rlist := uint16(thumbBits(op, 7, 0))
	addr := c.Regs.Read(rb)

	var cycles int
	for i := 0; i < 8; i++ {
		if rlist&(1<<uint(i)) == 0 {
			continue
		}
		if l {
			v, rc := bus.Read32(addr)
			cycles += rc
			c.Regs.Write(i, v)
		} else {
			cycles += bus.Write32(addr, c.Regs.Read(i))
		}
		addr += 4
	}

	if !(l && rlist&(1<<uint(rb)) != 0) {
		c.Regs.Write(rb, addr)
	}
	return cycles, nil
}

// format 16: conditional branch, PC-relative signed 9 bit range.
func (c *CPU) thumbConditionalBranch(op uint32) (int, error) {
	cond := thumbBits(op, 11, 8)
	if !c.Regs.CPSR().ConditionTrue(cond) {
		return 0, nil
	}
	offset := int32(int8(uint8(thumbBits(op, 7, 0)))) * 2
	target := uint32(int32(c.pcOperand()) + offset)
	c.branchTo(target)
	return 0, nil
}

// format 17: software interrupt.
func (c *CPU) thumbSoftwareInterrupt() (int, error) {
	c.enterSoftwareInterrupt(c.pcFetchAddress(), true)
	return 3, nil
}

// format 18: unconditional branch, PC-relative signed 12 bit range.
func (c *CPU) thumbUnconditionalBranch(op uint32) (int, error) {
	offset := thumbBits(op, 10, 0)
	signed := int32(offset<<21) >> 21 // sign-extend the 11 bit field
	target := uint32(int32(c.pcOperand()) + signed*2)
	c.branchTo(target)
	return 0, nil
}

// format 19: long branch with link, split across two consecutive halfword
// instructions (H=0 stashes the sign-extended high offset in LR, H=1 adds
// the low offset and branches, exactly mirroring the coprocessor's own
// two-half combination logic).
func (c *CPU) thumbLongBranchWithLink(op uint32) (int, error) {
	high := thumbBit(op, 11)
	offset11 := thumbBits(op, 10, 0)

	if !high {
		signed := int32(offset11<<21) >> 21
		lr := uint32(int32(c.pcOperand()) + (signed << 12))
		c.Regs.Write(14, lr)
		return 0, nil
	}

	next := c.pcFetchAddress() + 2
	target := c.Regs.Read(14) + offset11<<1
	c.Regs.Write(14, next|1)
	c.branchTo(target)
	return 0, nil
}
