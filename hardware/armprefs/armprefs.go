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

// Package armprefs holds the prefs.Disk-backed tunables that are
// implementation choices rather than guest-visible registers: illegal
// memory access strictness, BIOS open-bus fidelity, and whether the debug
// HTTP stats view (debug/statsview.go) is started. Only StatsView is read
// (by cmd/gba); the other two are loaded and saved but nothing reads them.
package armprefs

import "github.com/jetsetilly/gba7tdmi/prefs"

// Preferences is the full set of ARM/bus tunables, persisted together in
// one prefs.Disk file.
type Preferences struct {
	dsk *prefs.Disk

	// AbortOnIllegalMemory is persisted but not read: the bus never stops
	// emulation on an access outside every mapped region.
	AbortOnIllegalMemory prefs.Bool

	// BIOSOpenBusFidelity is persisted but not read: BIOS region reads
	// always return the loaded BIOS image.
	BIOSOpenBusFidelity prefs.Bool

	// StatsView makes cmd/gba start the debug/statsview.go HTTP view.
	StatsView prefs.Bool
}

// NewPreferences creates a Preferences backed by filename. Load must be
// called to populate it from an existing file.
func NewPreferences(filename string) (*Preferences, error) {
	p := &Preferences{}

	dsk, err := prefs.NewDisk(filename)
	if err != nil {
		return nil, err
	}
	p.dsk = dsk

	if err := dsk.Add("arm.abortOnIllegalMemory", &p.AbortOnIllegalMemory); err != nil {
		return nil, err
	}
	if err := dsk.Add("arm.biosOpenBusFidelity", &p.BIOSOpenBusFidelity); err != nil {
		return nil, err
	}
	if err := dsk.Add("debug.statsView", &p.StatsView); err != nil {
		return nil, err
	}

	return p, nil
}

// Load reads the preferences file, leaving defaults in place for any
// preference absent from it.
func (p *Preferences) Load() error { return p.dsk.Load() }

// Save writes the current preference values to disk.
func (p *Preferences) Save() error { return p.dsk.Save() }
