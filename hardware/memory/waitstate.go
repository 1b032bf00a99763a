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

package memory

import "github.com/jetsetilly/gba7tdmi/hardware/memory/memorymap"

// waitStates is a coarse, WAITCNT-driven per-region cycle table, consulted
// once per bus access rather than modelled as a true cycle-by-cycle bus
// arbiter (spec.md's bus-arbitration concerns are explicitly out of scope;
// §9 Open Question resolution: "a table is enough").
type waitStates struct {
	sram               int
	ws0First, ws0Second int
	ws1First, ws1Second int
	ws2First, ws2Second int
}

// access-time codes used by WAITCNT's 2 bit first-access fields.
var firstAccessCycles = [4]int{4, 3, 2, 8}

func defaultWaitStates() waitStates {
	return waitStates{
		sram:      4,
		ws0First:  4, ws0Second: 2,
		ws1First:  4, ws1Second: 4,
		ws2First:  4, ws2Second: 8,
	}
}

// setWAITCNT decodes the WAITCNT register (§4.6) into per-region cycle
// counts. Bit layout: 0-1 SRAM, 2-3 WS0 first, 4 WS0 second, 5-6 WS1 first,
// 7 WS1 second, 8-9 WS2 first, 10 WS2 second (bits 11-15 -- PHI/prefetch/
// cart type -- do not affect the coarse model and are ignored).
func (w *waitStates) setWAITCNT(v uint16) {
	w.sram = firstAccessCycles[v&0x3]

	w.ws0First = firstAccessCycles[(v>>2)&0x3]
	if v&(1<<4) != 0 {
		w.ws0Second = 1
	} else {
		w.ws0Second = 2
	}

	w.ws1First = firstAccessCycles[(v>>5)&0x3]
	if v&(1<<7) != 0 {
		w.ws1Second = 1
	} else {
		w.ws1Second = 4
	}

	w.ws2First = firstAccessCycles[(v>>8)&0x3]
	if v&(1<<10) != 0 {
		w.ws2Second = 1
	} else {
		w.ws2Second = 8
	}
}

// cycles reports the access cost for region at the given bus width. An 8/16
// bit cart ROM access costs one first access and a 32 bit one a first plus a
// second (sequential) access, since the bus is 16 bits wide there (§4.6).
// Every cart ROM window is charged the WS0 timings; the WS1/WS2 fields are
// decoded by setWAITCNT but not consulted. Cart SRAM costs the SRAM wait
// count at every width.
func (w *waitStates) cycles(region memorymap.Region, width int) int {
	switch region {
	case memorymap.RegionBIOS, memorymap.RegionIWRAM, memorymap.RegionOAM:
		if width == 32 {
			return 1
		}
		return 1
	case memorymap.RegionEWRAM:
		if width == 32 {
			return 6
		}
		return 3
	case memorymap.RegionIO:
		return 1
	case memorymap.RegionPalette, memorymap.RegionVRAM:
		if width == 32 {
			return 2
		}
		return 1
	case memorymap.RegionCartROM:
		if width == 32 {
			return w.ws0First + w.ws0Second
		}
		return w.ws0First
	case memorymap.RegionCartSRAM:
		return w.sram
	default:
		return 1
	}
}
