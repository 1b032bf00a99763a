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

// Package cartridgeloader loads a ROM image (and, separately, the 16KiB
// BIOS image) so the cartridge package can map it onto the bus.
//
// # File extensions
//
// ".gba" and ".agb" are recognised cartridge extensions; anything else is
// still loaded as raw binary data, since GBA ROM dumps circulate under a
// wide variety of extensions in practice.
//
// # Hashes
//
// NewLoaderFromData sets HashSHA1 to the SHA1 hash of the supplied data.
// For a loader made by NewLoaderFromFilename, Open computes the hash of the
// file it reads and returns an error if the caller populated HashSHA1
// beforehand (e.g. from a known-good ROM database) with a different value.
// Embedded data is not checked against a caller-supplied hash.
//
// # Save backend detection
//
// The cartridge header does not say which save backend (EEPROM/SRAM/
// FLASH) a ROM uses. SniffSaveBackend scans the ROM body for the ASCII
// ID strings real carts embed for exactly this purpose (EEPROM_Vnnn,
// SRAM_Vnnn, FLASH_Vnnn, FLASH512_Vnnn, FLASH1M_Vnnn).
package cartridgeloader
