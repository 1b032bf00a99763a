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

// Package arm7tdmi implements the ARM7TDMI CPU at the centre of the console:
// the banked register file, the CPSR/SPSR status model, the barrel shifter,
// the ARM and THUMB decoders, and the one-handler-per-instruction-class
// executor. It knows nothing about the rest of the console beyond the Bus
// interface it is given; the DMA/timer/interrupt/scheduler side effects of
// executing an instruction all happen through that interface.
//
// The THUMB decode and execute functions in this package began life as a
// generalisation of this project's own Harmony-cartridge ARM7TDMI-S
// coprocessor (formerly at hardware/memory/cartridge/arm7tdmi), which only
// ever needed a flat register file running permanently in System mode. This
// package adds full mode banking, the ARM instruction set, and the
// exception model that the coprocessor never required.
package arm7tdmi
