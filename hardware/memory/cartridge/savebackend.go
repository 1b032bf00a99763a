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

package cartridge

import "github.com/jetsetilly/gba7tdmi/cartridgeloader"

// SaveBackend is the persistent-storage device behind cart SRAM space.
// Its internal command protocol (the Flash chip's bank-select and
// sector-erase sequences, EEPROM's serial bit-stream framing) is the kind
// of save-backend internals spec.md names as an external collaborator;
// this type only owns the byte array and the minimal read/write surface
// the bus needs, leaving protocol emulation to whichever save-backend
// collaborator is plugged in later.
type SaveBackend interface {
	Read(offset uint32) byte
	Write(offset uint32, v byte)
	Size() int
}

// plainSRAM is a flat byte array backend, correct for BackendSRAM and
// usable as a stand-in for the other backends until their real protocol
// state machines are implemented by a save-backend collaborator.
type plainSRAM struct {
	data []byte
}

func newPlainSRAM(size int) *plainSRAM {
	return &plainSRAM{data: make([]byte, size)}
}

func (s *plainSRAM) Read(offset uint32) byte {
	if int(offset) >= len(s.data) {
		return 0xff
	}
	return s.data[offset]
}

func (s *plainSRAM) Write(offset uint32, v byte) {
	if int(offset) >= len(s.data) {
		return
	}
	s.data[offset] = v
}

func (s *plainSRAM) Size() int { return len(s.data) }

// backendSizes gives the save memory's byte size per detected backend.
var backendSizes = map[cartridgeloader.SaveBackend]int{
	cartridgeloader.BackendSRAM:       0x8000,
	cartridgeloader.BackendEEPROM:     0x2000,
	cartridgeloader.BackendFlash64K:   0x10000,
	cartridgeloader.BackendFlash128K:  0x20000,
}

// NewSaveBackend builds the placeholder backend matching kind. Flash and
// EEPROM's real command protocols are out of scope (save-backend
// internals are an external collaborator per spec.md §1); guest code
// that only expects plain read/write access to its save region -- the
// common case for homebrew and for probing during boot -- works
// correctly against this stand-in, but games that depend on Flash's
// sector-erase or EEPROM's serial handshake will not.
func NewSaveBackend(kind cartridgeloader.SaveBackend) SaveBackend {
	size, ok := backendSizes[kind]
	if !ok {
		size = 0x8000
	}
	return newPlainSRAM(size)
}
