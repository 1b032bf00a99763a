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

// ClassARM tags the mutually-exclusive instruction classes of spec.md §4.3.
type ClassARM int

const (
	ClassARMMultiply ClassARM = iota
	ClassARMMultiplyLong
	ClassARMSwap
	ClassARMBranchExchange
	ClassARMHalfwordTransfer
	ClassARMPSRTransfer
	ClassARMDataProcessing
	ClassARMSingleDataTransfer
	ClassARMUndefined
	ClassARMBlockDataTransfer
	ClassARMBranch
	ClassARMSoftwareInterrupt
)

// InstructionARM is the uniform decoded-instruction descriptor spec.md §4.3
// asks for: condition, operand indices, shift spec, immediate/offset,
// P/U/B/W/L/S/H flags, and a handler selector (Class). Mnemonic is
// diagnostics only and never consulted by the executor.
type InstructionARM struct {
	Raw   uint32
	Cond  uint32
	Class ClassARM

	Rn, Rd, Rs, Rm int

	OpCode       uint32 // 4 bit data-processing opcode, or multiply accumulate select
	SetFlags     bool   // S bit
	ImmediateOp2 bool   // data-processing operand 2 is an immediate (I bit)
	Imm          uint32 // rotated dp immediate, or load/store/halfword offset

	ShiftType   ShiftType
	ShiftAmount uint32
	ShiftByReg  bool // amount comes from Rs, not an immediate field
	ImmCarryOut  bool // carry produced by rotating an immediate operand2
	ImmNoRotate  bool // rotate amount was 0: operand2 carry is unaffected, keep current C

	P, U, B, W, L bool
	RegOffset     bool // single data transfer offset is a shifted register, not Imm

	H, SignedXfer bool // halfword transfer: H = halfword width, SignedXfer = sign-extend

	RegList uint16 // block data transfer register list
	SBit    bool   // LDM/STM S bit (user bank / CPSR restore)

	BranchOffset int32
	Link         bool

	Accumulate   bool
	UnsignedLong bool
	RdHi, RdLo   int

	UseSPSR      bool
	ToPSR        bool // true = MSR, false = MRS
	PSRFieldMask uint32

	SWIComment uint32

	Mnemonic string
}

func armBits(op uint32, hi, lo uint) uint32 {
	return (op >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func armBit(op uint32, pos uint) bool {
	return (op>>pos)&1 == 1
}

// DecodeARM classifies and decodes a 32 bit ARM opcode into a uniform
// descriptor, using the first-match classification order of spec.md §4.3.
//
// The top two bits (27:26) split the encoding space into the four classic
// groups (00 = data processing/PSR/multiply/halfword, 01 = single data
// transfer, 10 = block transfer/branch, 11 = coprocessor/SWI); bit 25 within
// group 00 is the data-processing "immediate operand2" bit and must not be
// mistaken for part of the group selector, or every immediate-operand2 data
// processing instruction misclassifies.
func DecodeARM(op uint32) InstructionARM {
	i := InstructionARM{Raw: op, Cond: armBits(op, 31, 28)}

	bits27_26 := armBits(op, 27, 26)
	bit25 := armBit(op, 25)
	bits7_4 := armBits(op, 7, 4)

	switch {
	case bits27_26 == 0b00 && !bit25 && bits7_4 == 0b1001 && armBits(op, 24, 23) == 0b00:
		decodeMultiply(op, &i)
	case bits27_26 == 0b00 && !bit25 && bits7_4 == 0b1001 && armBits(op, 24, 23) == 0b01:
		decodeMultiplyLong(op, &i)
	case bits27_26 == 0b00 && !bit25 && bits7_4 == 0b1001 && armBits(op, 24, 23) == 0b10:
		decodeSwap(op, &i)
	case armBits(op, 27, 20) == 0b00010010 && armBits(op, 19, 8) == 0xfff && bits7_4 == 0b0001:
		i.Class = ClassARMBranchExchange
		i.Rm = int(armBits(op, 3, 0))
		i.Mnemonic = "bx"
	case bits27_26 == 0b00 && !bit25 && armBit(op, 7) && armBit(op, 4) && armBits(op, 6, 5) != 0b00:
		decodeHalfword(op, &i)
	case bits27_26 == 0b00 && armBits(op, 24, 23) == 0b10 && !armBit(op, 20):
		decodePSRTransfer(op, &i)
	case bits27_26 == 0b00:
		decodeDataProcessing(op, &i)
	case bits27_26 == 0b01 && bit25 && armBit(op, 4):
		i.Class = ClassARMUndefined
		i.Mnemonic = "undefined"
	case bits27_26 == 0b01:
		decodeSingleDataTransfer(op, &i)
	case armBits(op, 27, 25) == 0b100:
		decodeBlockDataTransfer(op, &i)
	case armBits(op, 27, 25) == 0b101:
		decodeBranch(op, &i)
	case armBits(op, 27, 24) == 0b1111:
		i.Class = ClassARMSoftwareInterrupt
		i.SWIComment = armBits(op, 23, 0)
		i.Mnemonic = "swi"
	case armBits(op, 27, 25) == 0b110:
		// coprocessor data transfer: unused on this bus, no coprocessor exists
		i.Class = ClassARMUndefined
		i.Mnemonic = "undefined(coproc)"
	case armBits(op, 27, 24) == 0b1110:
		// coprocessor data operation / register transfer: unused
		i.Class = ClassARMUndefined
		i.Mnemonic = "undefined(coproc)"
	default:
		i.Class = ClassARMUndefined
		i.Mnemonic = "undefined"
	}

	return i
}

func decodeMultiply(op uint32, i *InstructionARM) {
	i.Class = ClassARMMultiply
	i.Accumulate = armBit(op, 21)
	i.SetFlags = armBit(op, 20)
	i.Rd = int(armBits(op, 19, 16))
	i.Rn = int(armBits(op, 15, 12))
	i.Rs = int(armBits(op, 11, 8))
	i.Rm = int(armBits(op, 3, 0))
	if i.Accumulate {
		i.Mnemonic = "mla"
	} else {
		i.Mnemonic = "mul"
	}
}

func decodeMultiplyLong(op uint32, i *InstructionARM) {
	i.Class = ClassARMMultiplyLong
	i.UnsignedLong = !armBit(op, 22)
	i.Accumulate = armBit(op, 21)
	i.SetFlags = armBit(op, 20)
	i.RdHi = int(armBits(op, 19, 16))
	i.RdLo = int(armBits(op, 15, 12))
	i.Rs = int(armBits(op, 11, 8))
	i.Rm = int(armBits(op, 3, 0))
	i.Mnemonic = "mull"
}

func decodeSwap(op uint32, i *InstructionARM) {
	i.Class = ClassARMSwap
	i.B = armBit(op, 22)
	i.Rn = int(armBits(op, 19, 16))
	i.Rd = int(armBits(op, 15, 12))
	i.Rm = int(armBits(op, 3, 0))
	i.Mnemonic = "swp"
}

func decodeHalfword(op uint32, i *InstructionARM) {
	i.Class = ClassARMHalfwordTransfer
	i.P = armBit(op, 24)
	i.U = armBit(op, 23)
	immediateOffset := armBit(op, 22)
	i.W = armBit(op, 21)
	i.L = armBit(op, 20)
	i.Rn = int(armBits(op, 19, 16))
	i.Rd = int(armBits(op, 15, 12))

	sh := armBits(op, 6, 5)
	i.H = sh == 0b01 || sh == 0b11
	i.SignedXfer = sh == 0b10 || sh == 0b11

	if immediateOffset {
		i.Imm = (armBits(op, 11, 8) << 4) | armBits(op, 3, 0)
	} else {
		i.RegOffset = true
		i.Rm = int(armBits(op, 3, 0))
	}
	i.Mnemonic = "halfword"
}

func decodePSRTransfer(op uint32, i *InstructionARM) {
	i.Class = ClassARMPSRTransfer
	i.UseSPSR = armBit(op, 22)
	i.ToPSR = armBit(op, 21)

	if i.ToPSR {
		i.PSRFieldMask = armBits(op, 19, 16)
		i.ImmediateOp2 = armBit(op, 25)
		if i.ImmediateOp2 {
			imm := armBits(op, 7, 0)
			rot := armBits(op, 11, 8) * 2
			i.Imm, _ = Shift(ShiftROR, imm, rot, ShiftImmediate, false)
		} else {
			i.Rm = int(armBits(op, 3, 0))
		}
		i.Mnemonic = "msr"
	} else {
		i.Rd = int(armBits(op, 15, 12))
		i.Mnemonic = "mrs"
	}
}

func decodeDataProcessing(op uint32, i *InstructionARM) {
	i.Class = ClassARMDataProcessing
	i.ImmediateOp2 = armBit(op, 25)
	i.OpCode = armBits(op, 24, 21)
	i.SetFlags = armBit(op, 20)
	i.Rn = int(armBits(op, 19, 16))
	i.Rd = int(armBits(op, 15, 12))

	if i.ImmediateOp2 {
		imm := armBits(op, 7, 0)
		rot := armBits(op, 11, 8) * 2
		if rot == 0 {
			i.Imm = imm
			i.ImmNoRotate = true
		} else {
			i.Imm, i.ImmCarryOut = Shift(ShiftROR, imm, rot, ShiftByRegister, false)
		}
	} else {
		i.Rm = int(armBits(op, 3, 0))
		i.ShiftType = ShiftType(armBits(op, 6, 5))
		i.ShiftByReg = armBit(op, 4)
		if i.ShiftByReg {
			i.Rs = int(armBits(op, 11, 8))
		} else {
			i.ShiftAmount = armBits(op, 11, 7)
		}
	}
	i.Mnemonic = "dataproc"
}

func decodeSingleDataTransfer(op uint32, i *InstructionARM) {
	i.Class = ClassARMSingleDataTransfer
	i.RegOffset = armBit(op, 25)
	i.P = armBit(op, 24)
	i.U = armBit(op, 23)
	i.B = armBit(op, 22)
	i.W = armBit(op, 21)
	i.L = armBit(op, 20)
	i.Rn = int(armBits(op, 19, 16))
	i.Rd = int(armBits(op, 15, 12))

	if i.RegOffset {
		i.Rm = int(armBits(op, 3, 0))
		i.ShiftType = ShiftType(armBits(op, 6, 5))
		i.ShiftAmount = armBits(op, 11, 7)
	} else {
		i.Imm = armBits(op, 11, 0)
	}
	i.Mnemonic = "ldrstr"
}

func decodeBlockDataTransfer(op uint32, i *InstructionARM) {
	i.Class = ClassARMBlockDataTransfer
	i.P = armBit(op, 24)
	i.U = armBit(op, 23)
	i.SBit = armBit(op, 22)
	i.W = armBit(op, 21)
	i.L = armBit(op, 20)
	i.Rn = int(armBits(op, 19, 16))
	i.RegList = uint16(armBits(op, 15, 0))
	i.Mnemonic = "ldmstm"
}

func decodeBranch(op uint32, i *InstructionARM) {
	i.Class = ClassARMBranch
	i.Link = armBit(op, 24)
	offset := armBits(op, 23, 0)
	// sign extend 24 bit offset, then shift left 2 (word aligned branch)
	signed := int32(offset << 8)
	signed >>= 8
	i.BranchOffset = signed << 2
	i.Mnemonic = "branch"
}
