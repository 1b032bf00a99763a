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

// Package memory implements arm7tdmi.Bus: region decode across
// BIOS/EWRAM/IWRAM/I-O/Palette/VRAM/OAM/cart ROM/cart SRAM, the I-O
// register window's dispatch to the DMA/timer/interrupt/PPU/keypad
// subsystems, and WAITCNT-driven cycle accounting. Interface-segregated
// the way the teacher's hardware/memory/bus/bus.go splits
// CPUBus/ChipBus/DebuggerBus, sized instead for this console's own
// region layout.
package memory

import (
	"github.com/jetsetilly/gba7tdmi/hardware/dma"
	"github.com/jetsetilly/gba7tdmi/hardware/input"
	"github.com/jetsetilly/gba7tdmi/hardware/interrupt"
	"github.com/jetsetilly/gba7tdmi/hardware/memory/cartridge"
	"github.com/jetsetilly/gba7tdmi/hardware/memory/memorymap"
	"github.com/jetsetilly/gba7tdmi/hardware/ppu"
	"github.com/jetsetilly/gba7tdmi/hardware/timer"
	"github.com/jetsetilly/gba7tdmi/logger"
)

// Bus owns every region of guest-addressable memory and routes I/O
// register accesses to the subsystem that owns each register.
type Bus struct {
	BIOS  [memorymap.BIOSSize]byte
	EWRAM [memorymap.EWRAMSize]byte
	IWRAM [memorymap.IWRAMSize]byte

	Cart *cartridge.Cartridge
	PPU  *ppu.PPU
	DMA  *dma.Bank
	Timers *timer.Bank
	IRQ  *interrupt.Controller
	Keypad *input.Keypad

	ws     waitStates
	shadow shadowRegs

	lastOpcode uint32 // most recent instruction fetch, stood in for open-bus reads
}

// NewBus wires together a fresh Bus. Cart may be nil until a ROM is
// attached; unmapped cart space then reads as open bus.
func NewBus(ppu *ppu.PPU, dmaBank *dma.Bank, timers *timer.Bank, irq *interrupt.Controller, keypad *input.Keypad) *Bus {
	return &Bus{
		PPU:    ppu,
		DMA:    dmaBank,
		Timers: timers,
		IRQ:    irq,
		Keypad: keypad,
		ws:     defaultWaitStates(),
	}
}

// AttachCartridge replaces the currently mapped cartridge.
func (b *Bus) AttachCartridge(c *cartridge.Cartridge) { b.Cart = c }

// NoteOpcodeFetch records the most recently fetched opcode, used as the
// open-bus stand-in value for reads from unmapped addresses (§4.6,
// "open bus returns the most recently prefetched opcode" simplification).
func (b *Bus) NoteOpcodeFetch(op uint32) { b.lastOpcode = op }

func (b *Bus) openBus32() uint32 { return b.lastOpcode }

// Read8 reads one byte from addr.
func (b *Bus) Read8(addr uint32) (uint8, int) {
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 8)

	switch region {
	case memorymap.RegionBIOS:
		return b.BIOS[off], cyc
	case memorymap.RegionEWRAM:
		return b.EWRAM[off], cyc
	case memorymap.RegionIWRAM:
		return b.IWRAM[off], cyc
	case memorymap.RegionIO:
		v16 := b.readIO(off &^ 1)
		if off&1 != 0 {
			return uint8(v16 >> 8), cyc
		}
		return uint8(v16), cyc
	case memorymap.RegionPalette:
		return b.PPU.Palette[off], cyc
	case memorymap.RegionVRAM:
		return b.PPU.VRAM[off], cyc
	case memorymap.RegionOAM:
		return b.PPU.OAM[off], cyc
	case memorymap.RegionCartROM:
		if b.Cart == nil {
			return uint8(b.openBus32()), cyc
		}
		return b.Cart.ReadROM(off), cyc
	case memorymap.RegionCartSRAM:
		if b.Cart == nil {
			return 0xff, cyc
		}
		return b.Cart.ReadSRAM(off), cyc
	default:
		logger.Logf(logger.Allow, "bus", "read8 from unmapped address %08x", addr)
		return uint8(b.openBus32()), cyc
	}
}

// Read16 reads a 16 bit value; addr is forced word-aligned to a halfword
// boundary (bus accesses are always aligned, §4.6 -- any rotation of a
// misaligned result is the CPU's responsibility, not the bus's).
func (b *Bus) Read16(addr uint32) (uint16, int) {
	addr &^= 1
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 16)

	switch region {
	case memorymap.RegionBIOS:
		return le16(b.BIOS[:], off), cyc
	case memorymap.RegionEWRAM:
		return le16(b.EWRAM[:], off), cyc
	case memorymap.RegionIWRAM:
		return le16(b.IWRAM[:], off), cyc
	case memorymap.RegionIO:
		return b.readIO(off), cyc
	case memorymap.RegionPalette:
		return le16(b.PPU.Palette[:], off), cyc
	case memorymap.RegionVRAM:
		return le16(b.PPU.VRAM[:], off), cyc
	case memorymap.RegionOAM:
		return le16(b.PPU.OAM[:], off), cyc
	case memorymap.RegionCartROM:
		if b.Cart == nil {
			return uint16(b.openBus32()), cyc
		}
		lo := b.Cart.ReadROM(off)
		hi := b.Cart.ReadROM(off + 1)
		return uint16(lo) | uint16(hi)<<8, cyc
	case memorymap.RegionCartSRAM:
		if b.Cart == nil {
			return 0xffff, cyc
		}
		return uint16(b.Cart.ReadSRAM(off)), cyc
	default:
		logger.Logf(logger.Allow, "bus", "read16 from unmapped address %08x", addr)
		return uint16(b.openBus32()), cyc
	}
}

// Read32 reads a 32 bit value; addr is forced word-aligned, per the same
// rule as Read16.
func (b *Bus) Read32(addr uint32) (uint32, int) {
	addr &^= 3
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 32)

	switch region {
	case memorymap.RegionBIOS:
		return le32(b.BIOS[:], off), cyc
	case memorymap.RegionEWRAM:
		return le32(b.EWRAM[:], off), cyc
	case memorymap.RegionIWRAM:
		return le32(b.IWRAM[:], off), cyc
	case memorymap.RegionIO:
		lo := uint32(b.readIO(off))
		hi := uint32(b.readIO(off + 2))
		return lo | hi<<16, cyc
	case memorymap.RegionPalette:
		return le32(b.PPU.Palette[:], off), cyc
	case memorymap.RegionVRAM:
		return le32(b.PPU.VRAM[:], off), cyc
	case memorymap.RegionOAM:
		return le32(b.PPU.OAM[:], off), cyc
	case memorymap.RegionCartROM:
		if b.Cart == nil {
			return b.openBus32(), cyc
		}
		var v uint32
		for i := uint32(0); i < 4; i++ {
			v |= uint32(b.Cart.ReadROM(off+i)) << (8 * i)
		}
		return v, cyc
	case memorymap.RegionCartSRAM:
		if b.Cart == nil {
			return 0xffffffff, cyc
		}
		return uint32(b.Cart.ReadSRAM(off)), cyc
	default:
		logger.Logf(logger.Allow, "bus", "read32 from unmapped address %08x", addr)
		return b.openBus32(), cyc
	}
}

// Write8 writes one byte to addr. Writes to cart ROM space are ignored
// (read-only from the CPU's perspective); an 8 bit write to VRAM/OAM in
// real hardware has odd special-casing this model does not reproduce, and
// is instead treated as a plain byte store.
func (b *Bus) Write8(addr uint32, v uint8) int {
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 8)

	switch region {
	case memorymap.RegionEWRAM:
		b.EWRAM[off] = v
	case memorymap.RegionIWRAM:
		b.IWRAM[off] = v
	case memorymap.RegionIO:
		cur := b.readIO(off &^ 1)
		if off&1 != 0 {
			cur = uint16(cur&0x00ff) | uint16(v)<<8
		} else {
			cur = uint16(cur&0xff00) | uint16(v)
		}
		b.writeIO(off&^1, cur)
	case memorymap.RegionPalette:
		b.PPU.Palette[off] = v
	case memorymap.RegionVRAM:
		b.PPU.VRAM[off] = v
	case memorymap.RegionOAM:
		b.PPU.OAM[off] = v
	case memorymap.RegionCartSRAM:
		if b.Cart != nil {
			b.Cart.WriteSRAM(off, v)
		}
	case memorymap.RegionCartROM:
		// read-only
	default:
		logger.Logf(logger.Allow, "bus", "write8 to unmapped address %08x", addr)
	}
	return cyc
}

// Write16 writes a 16 bit value; addr is forced halfword-aligned.
func (b *Bus) Write16(addr uint32, v uint16) int {
	addr &^= 1
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 16)

	switch region {
	case memorymap.RegionEWRAM:
		putLe16(b.EWRAM[:], off, v)
	case memorymap.RegionIWRAM:
		putLe16(b.IWRAM[:], off, v)
	case memorymap.RegionIO:
		b.writeIO(off, v)
	case memorymap.RegionPalette:
		putLe16(b.PPU.Palette[:], off, v)
	case memorymap.RegionVRAM:
		putLe16(b.PPU.VRAM[:], off, v)
	case memorymap.RegionOAM:
		putLe16(b.PPU.OAM[:], off, v)
	case memorymap.RegionCartSRAM:
		if b.Cart != nil {
			b.Cart.WriteSRAM(off, uint8(v))
		}
	case memorymap.RegionCartROM:
		// read-only
	default:
		logger.Logf(logger.Allow, "bus", "write16 to unmapped address %08x", addr)
	}
	return cyc
}

// Write32 writes a 32 bit value; addr is forced word-aligned.
func (b *Bus) Write32(addr uint32, v uint32) int {
	addr &^= 3
	region, off := memorymap.Decode(addr)
	cyc := b.ws.cycles(region, 32)

	switch region {
	case memorymap.RegionEWRAM:
		putLe32(b.EWRAM[:], off, v)
	case memorymap.RegionIWRAM:
		putLe32(b.IWRAM[:], off, v)
	case memorymap.RegionIO:
		b.writeIO(off, uint16(v))
		b.writeIO(off+2, uint16(v>>16))
	case memorymap.RegionPalette:
		putLe32(b.PPU.Palette[:], off, v)
	case memorymap.RegionVRAM:
		putLe32(b.PPU.VRAM[:], off, v)
	case memorymap.RegionOAM:
		putLe32(b.PPU.OAM[:], off, v)
	case memorymap.RegionCartSRAM:
		if b.Cart != nil {
			b.Cart.WriteSRAM(off, uint8(v))
		}
	case memorymap.RegionCartROM:
		// read-only
	default:
		logger.Logf(logger.Allow, "bus", "write32 to unmapped address %08x", addr)
	}
	return cyc
}

func le16(mem []byte, off uint32) uint16 {
	return uint16(mem[off]) | uint16(mem[off+1])<<8
}

func le32(mem []byte, off uint32) uint32 {
	return uint32(mem[off]) | uint32(mem[off+1])<<8 | uint32(mem[off+2])<<16 | uint32(mem[off+3])<<24
}

func putLe16(mem []byte, off uint32, v uint16) {
	mem[off] = byte(v)
	mem[off+1] = byte(v >> 8)
}

func putLe32(mem []byte, off uint32, v uint32) {
	mem[off] = byte(v)
	mem[off+1] = byte(v >> 8)
	mem[off+2] = byte(v >> 16)
	mem[off+3] = byte(v >> 24)
}
