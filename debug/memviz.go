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

// Package debug holds the opt-in introspection tooling built around
// Console: an object-graph dump and a live stats dashboard. Neither is
// reachable from the emulation's hot path; both exist for a developer
// attached to a running Console.
package debug

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gba7tdmi/hardware"
)

// DumpGraph writes a Graphviz rendering of console's object graph to
// path, following every pointer memviz can reach: CPU registers, the
// bus's memory regions, the DMA/timer/interrupt/PPU sub-systems. Useful
// for confirming two sub-systems share the pointer they're meant to
// (the interrupt controller, most often) rather than each holding a
// private copy.
func DumpGraph(console *hardware.Console, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debug: %w", err)
	}
	defer f.Close()

	memviz.Map(f, &console)

	return nil
}
