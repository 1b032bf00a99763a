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

import "github.com/jetsetilly/gba7tdmi/curated"

// Header is the fixed 192 byte structure every GBA ROM begins with. Only
// the fields a bus/debugger consumer is likely to want are parsed; the
// Nintendo logo bitmap is not read.
type Header struct {
	EntryPoint   uint32
	Title        string
	GameCode     string
	MakerCode    string
	MainUnitCode byte
	DeviceType   byte
	Version      byte
	Complement   byte
	ComplementOK bool
}

const headerSize = 0xc0

// ParseHeader reads the cartridge header out of the first 192 bytes of
// rom. It returns an error if rom is too short to contain one.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerSize {
		return Header{}, curated.Errorf("cartridge: rom too short for a header (%d bytes)", len(rom))
	}

	h := Header{
		EntryPoint: uint32(rom[0]) | uint32(rom[1])<<8 | uint32(rom[2])<<16 | uint32(rom[3])<<24,
		Title:      trimTitle(rom[0xa0:0xac]),
		GameCode:   string(rom[0xac:0xb0]),
		MakerCode:  string(rom[0xb0:0xb2]),
	}
	h.MainUnitCode = rom[0xb3]
	h.DeviceType = rom[0xb4]
	h.Version = rom[0xbc]
	h.Complement = rom[0xbd]

	h.ComplementOK = checksumComplement(rom) == h.Complement

	return h, nil
}

func trimTitle(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// checksumComplement recomputes the header complement byte at 0xbd: the
// one's-complement sum (negated, minus 0x19) of header bytes 0xa0-0xbc,
// the standard BIOS boot check.
func checksumComplement(rom []byte) byte {
	var sum byte
	for i := 0xa0; i < 0xbd; i++ {
		sum += rom[i]
	}
	return -(sum + 0x19)
}
