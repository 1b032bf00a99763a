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

// Package prefs implements simple persisted preference values, used for the
// tunables spec.md leaves as implementation choices rather than guest-visible
// registers: ARM bus-abort strictness, BIOS open-bus fidelity and the debug
// HTTP view toggle (see hardware/armprefs and
// debug/statsview.go).
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// WarningBoilerPlate is written as the first line of every saved preferences
// file.
const WarningBoilerPlate = "; this file is automatically generated -- do not edit by hand"

// Value is anything that can be assigned to a Preference. Concrete types
// implement their own conversion rules in Set().
type Value interface{}

// Preference is satisfied by every typed preference value in this package.
type Preference interface {
	Set(Value) error
	String() string
}

// Bool is a persisted boolean preference.
type Bool struct {
	v bool
}

// Set assigns v, accepting a bool directly or a string parsed with
// strconv.ParseBool; a string ParseBool does not recognise sets false.
func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.v = t
	case string:
		p, _ := strconv.ParseBool(t)
		b.v = p
	default:
		return fmt.Errorf("prefs: bool: unsupported value type %T", v)
	}
	return nil
}

// Get returns the current value.
func (b *Bool) Get() bool { return b.v }

func (b Bool) String() string {
	if b.v {
		return "true"
	}
	return "false"
}

// String is a persisted string preference, optionally capped to a maximum
// length.
type String struct {
	v      string
	maxLen int
}

// Set assigns v, which must be a string.
func (s *String) Set(v Value) error {
	t, ok := v.(string)
	if !ok {
		return fmt.Errorf("prefs: string: unsupported value type %T", v)
	}
	s.v = t
	s.crop()
	return nil
}

// SetMaxLen caps the string to n runes of length, cropping any existing
// value immediately. A value of zero removes the cap but does not restore
// previously cropped content.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.crop()
}

func (s *String) crop() {
	if s.maxLen > 0 && len(s.v) > s.maxLen {
		s.v = s.v[:s.maxLen]
	}
}

func (s String) String() string { return s.v }

// Int is a persisted integer preference.
type Int struct {
	v int
}

// Set assigns v, accepting an int directly or a string parsed with
// strconv.Atoi.
func (n *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		n.v = t
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("prefs: int: %w", err)
		}
		n.v = p
	default:
		return fmt.Errorf("prefs: int: unsupported value type %T", v)
	}
	return nil
}

// Get returns the current value.
func (n *Int) Get() int { return n.v }

func (n Int) String() string { return strconv.Itoa(n.v) }

// Float is a persisted floating point preference. Unlike Int and Bool it
// does not accept a string on Set(); values must already be numeric.
type Float struct {
	v float64
}

// Set assigns v, which must be a float64.
func (f *Float) Set(v Value) error {
	t, ok := v.(float64)
	if !ok {
		return fmt.Errorf("prefs: float: unsupported value type %T", v)
	}
	f.v = t
	return nil
}

// Get returns the current value.
func (f *Float) Get() float64 { return f.v }

func (f Float) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }

// Generic wraps an arbitrary setter/getter pair as a Preference, for values
// that don't fit Bool/String/Int/Float (for example a width,height pair).
type Generic struct {
	set func(Value) error
	get func() Value
}

// NewGeneric creates a Generic preference from a setter and getter pair.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{set: set, get: get}
}

// Set assigns v using the wrapped setter.
func (g *Generic) Set(v Value) error { return g.set(v) }

func (g *Generic) String() string { return fmt.Sprintf("%v", g.get()) }

type diskEntry struct {
	label string
	pref  Preference
}

// Disk is a named group of Preference values that can be saved to and loaded
// from a single file on disk, in "label :: value" lines sorted by label.
type Disk struct {
	filename string
	entries  []diskEntry
}

// NewDisk prepares a Disk backed by filename. The file is not read or
// created until Load()/Save() is called.
func NewDisk(filename string) (*Disk, error) {
	if filename == "" {
		return nil, fmt.Errorf("prefs: disk: empty filename")
	}
	return &Disk{filename: filename}, nil
}

// Add registers pref under label. Adding the same label twice is an error.
func (d *Disk) Add(label string, pref Preference) error {
	for _, e := range d.entries {
		if e.label == label {
			return fmt.Errorf("prefs: disk: duplicate label %q", label)
		}
	}
	d.entries = append(d.entries, diskEntry{label: label, pref: pref})
	return nil
}

func (d *Disk) readExisting() (map[string]string, error) {
	out := make(map[string]string)

	f, err := os.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			if strings.HasPrefix(line, ";") {
				continue
			}
		}
		k, v, ok := strings.Cut(line, "::")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, sc.Err()
}

// Save writes every registered Preference's current value to the backing
// file, alongside any keys already present on disk under other labels (so
// that two Disk instances sharing a file do not clobber each other).
func (d *Disk) Save() error {
	merged, err := d.readExisting()
	if err != nil {
		return err
	}

	for _, e := range d.entries {
		merged[e.label] = e.pref.String()
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(d.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s :: %s\n", k, merged[k])
	}
	return w.Flush()
}

// Load reads the backing file and applies any matching keys to the
// registered Preference values. Unknown keys in the file are ignored.
func (d *Disk) Load() error {
	existing, err := d.readExisting()
	if err != nil {
		return err
	}

	for _, e := range d.entries {
		if v, ok := existing[e.label]; ok {
			if err := e.pref.Set(v); err != nil {
				return err
			}
		}
	}
	return nil
}
