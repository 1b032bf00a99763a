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

// Package clocks names the console's fixed clock rate, replacing the
// teacher's NTSC/PAL television constants with the GBA's single clock
// domain (the console has no broadcast-standard concept to switch
// between).
package clocks

// CPUHz is the ARM7TDMI's fixed clock rate.
const CPUHz = 16777216

// FrameCycles is the number of CPU cycles in one video frame (228
// scanlines of 1232 cycles each), the interval a host shell should use to
// pace real-time playback.
const FrameCycles = 228 * 1232

// FPS is the console's fixed refresh rate derived from CPUHz/FrameCycles.
const FPS = float64(CPUHz) / float64(FrameCycles)
