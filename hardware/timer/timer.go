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

// Package timer implements the four cascading 16 bit timers (spec.md
// §4.7), each a small owned-state struct stepped once per cycle batch by
// the tick loop, matching the teacher's per-peripheral chip packages.
package timer

import "github.com/jetsetilly/gba7tdmi/hardware/interrupt"

// prescaler divisor selected by TMxCNT_H bits 0-1.
var prescalers = [4]int{1, 64, 256, 1024}

const numTimers = 4

// Source identifies which timer's overflow raised an interrupt, indexed
// by channel.
var irqSource = [numTimers]interrupt.Source{
	interrupt.Timer0, interrupt.Timer1, interrupt.Timer2, interrupt.Timer3,
}

// Timer is one of the four TMxCNT_L/TMxCNT_H channel pairs.
type Timer struct {
	reload    uint16
	counter   uint16
	divider   int // cycles accumulated toward the next prescaled tick
	prescaler int
	cascade   bool
	irqEnable bool
	running   bool

	overflows uint64
}

// Bank owns all four timers and the cascade wiring between them.
type Bank struct {
	timers [numTimers]Timer
	irq    *interrupt.Controller
}

// NewBank returns a Bank with every timer stopped, reporting overflows to
// irq.
func NewBank(irq *interrupt.Controller) *Bank {
	return &Bank{irq: irq}
}

// Step advances every running timer by cycles system clocks, cascading
// overflow into the next channel up (§4.7: "timer N's overflow clocks
// timer N+1 when N+1's cascade bit is set, instead of N+1's own
// prescaler").
func (b *Bank) Step(cycles int) {
	carry := 0
	for i := range b.timers {
		carry = b.timers[i].step(cycles, carry, b.irq, i)
	}
}

// step advances one timer by cycles system clocks (or, if cascading, by
// the number of times the previous timer overflowed this batch) and
// reports how many times it overflowed.
func (t *Timer) step(cycles int, prevOverflows int, irq *interrupt.Controller, ch int) int {
	if !t.running {
		return 0
	}

	overflows := 0

	if t.cascade {
		for ; prevOverflows > 0; prevOverflows-- {
			if t.tick(irq, ch) {
				overflows++
			}
		}
		return overflows
	}

	t.divider += cycles
	for t.divider >= t.prescaler {
		t.divider -= t.prescaler
		if t.tick(irq, ch) {
			overflows++
		}
	}
	return overflows
}

// tick increments the counter by one, reloading and requesting an
// interrupt on overflow.
func (t *Timer) tick(irq *interrupt.Controller, ch int) bool {
	t.counter++
	if t.counter != 0 {
		return false
	}
	t.counter = t.reload
	t.overflows++
	if t.irqEnable {
		irq.RequestInterrupt(irqSource[ch])
	}
	return true
}

// Overflows reports how many times channel ch has wrapped since reset,
// for the stats dashboard.
func (b *Bank) Overflows(ch int) uint64 { return b.timers[ch].overflows }

// ReadCounter returns the live TMxCNT_L value.
func (b *Bank) ReadCounter(ch int) uint16 { return b.timers[ch].counter }

// WriteReload sets the reload value latched on the next start or
// overflow; it does not affect a live counter immediately (§4.7).
func (b *Bank) WriteReload(ch int, v uint16) { b.timers[ch].reload = v }

// ReadControl packs TMxCNT_H back into its register bit layout.
func (b *Bank) ReadControl(ch int) uint16 {
	t := &b.timers[ch]
	var v uint16
	switch t.prescaler {
	case 1:
		v = 0
	case 64:
		v = 1
	case 256:
		v = 2
	case 1024:
		v = 3
	}
	if t.cascade {
		v |= 1 << 2
	}
	if t.irqEnable {
		v |= 1 << 6
	}
	if t.running {
		v |= 1 << 7
	}
	return v
}

// WriteControl decodes TMxCNT_H. Setting the start bit on a previously
// stopped timer reinitializes its counter from reload and clears its
// prescaler divider (§4.7 "run-bit 0→1 transition"); channel 0 ignores
// its own cascade bit since there is no timer -1 to cascade from.
func (b *Bank) WriteControl(ch int, v uint16) {
	t := &b.timers[ch]

	wasRunning := t.running

	t.prescaler = prescalers[v&0x3]
	t.cascade = ch != 0 && v&(1<<2) != 0
	t.irqEnable = v&(1<<6) != 0
	t.running = v&(1<<7) != 0

	if t.running && !wasRunning {
		t.counter = t.reload
		t.divider = 0
	}
}
