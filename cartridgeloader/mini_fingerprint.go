// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

package cartridgeloader

import "bytes"

// SaveBackend identifies the save memory type a cartridge was built
// against.
type SaveBackend int

const (
	BackendNone SaveBackend = iota
	BackendEEPROM
	BackendSRAM
	BackendFlash64K
	BackendFlash128K
)

// save-backend ID strings real carts embed in their ROM body, padded to a
// 4 byte boundary, for exactly the purpose SniffSaveBackend serves here.
var backendSignatures = []struct {
	id      []byte
	backend SaveBackend
}{
	{[]byte("EEPROM_V"), BackendEEPROM},
	{[]byte("SRAM_V"), BackendSRAM},
	{[]byte("FLASH1M_V"), BackendFlash128K},
	{[]byte("FLASH512_V"), BackendFlash64K},
	{[]byte("FLASH_V"), BackendFlash64K},
}

// SniffSaveBackend scans data for a save-backend ID string. Real
// cartridges may carry more than one candidate string left over from
// development; the first match, in signature-table order, wins, matching
// how reference emulators resolve the ambiguity (the longer, more
// specific FLASH1M/FLASH512 strings are checked before the bare FLASH_V
// they are prefixed by in spirit).
func SniffSaveBackend(data []byte) SaveBackend {
	for _, sig := range backendSignatures {
		if bytes.Contains(data, sig.id) {
			return sig.backend
		}
	}
	return BackendNone
}
