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

// Bus is the narrow interface the CPU needs of the memory system. It says
// nothing about region decode, wait states or open-bus behaviour -- those
// live on the implementer's side (hardware/memory), keeping this package
// free of any dependency on the rest of the simulation, in the same spirit
// as the teacher's own CPUBus/ChipBus split.
type Bus interface {
	Read8(addr uint32) (uint8, int)
	Read16(addr uint32) (uint16, int)
	Read32(addr uint32) (uint32, int)

	Write8(addr uint32, v uint8) int
	Write16(addr uint32, v uint16) int
	Write32(addr uint32, v uint32) int
}

// the second return value of every Bus method is the number of cycles that
// access cost (wait states included); CPU.Step folds these into its own
// cycle count rather than assuming a fixed access time, per spec.md §4.5.
