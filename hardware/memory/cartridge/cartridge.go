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

// Package cartridge owns the loaded ROM image, its parsed header and its
// save backend, and answers the bus's ROM/SRAM reads and writes. The ROM
// itself is read-only from the CPU's point of view; writes to ROM space
// are ignored, matching real hardware's lack of a write path into cart
// ROM.
package cartridge

import (
	"github.com/jetsetilly/gba7tdmi/cartridgeloader"
)

// Cartridge is the attached ROM plus its save memory.
type Cartridge struct {
	rom    []byte
	Header Header
	save   SaveBackend
	backend cartridgeloader.SaveBackend
}

// Attach parses ld's data into a Cartridge, sniffing the save backend
// from the ROM body.
func Attach(ld cartridgeloader.Loader) (*Cartridge, error) {
	rom := *ld.Data

	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	backend := cartridgeloader.SniffSaveBackend(rom)

	return &Cartridge{
		rom:     rom,
		Header:  h,
		save:    NewSaveBackend(backend),
		backend: backend,
	}, nil
}

// SaveBackend reports which save backend was detected.
func (c *Cartridge) SaveBackend() cartridgeloader.SaveBackend { return c.backend }

// ReadROM reads a byte at offset within the (mirrored) ROM image. An
// offset beyond the end of a ROM image shorter than 32MiB wraps, matching
// how the address decoder already collapses all three wait-state windows
// onto the same underlying image via modulo CartROMSize.
func (c *Cartridge) ReadROM(offset uint32) byte {
	if len(c.rom) == 0 {
		return 0
	}
	return c.rom[int(offset)%len(c.rom)]
}

// ReadSRAM and WriteSRAM pass through to the save backend.
func (c *Cartridge) ReadSRAM(offset uint32) byte    { return c.save.Read(offset) }
func (c *Cartridge) WriteSRAM(offset uint32, v byte) { c.save.Write(offset, v) }
