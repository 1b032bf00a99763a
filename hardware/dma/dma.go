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

// Package dma implements the four DMA channels (spec.md §4.5): a
// disabled/armed/active state machine owned per-channel and driven by the
// tick loop's Step, mirroring the teacher's small stepped-peripheral
// packages.
package dma

import "github.com/jetsetilly/gba7tdmi/hardware/interrupt"

// Timing selects when an armed channel becomes active.
type Timing int

const (
	TimingImmediate Timing = iota
	TimingVBlank
	TimingHBlank
	TimingSpecial
)

// state is the channel's position in its disabled/armed/active cycle.
type state int

const (
	stateDisabled state = iota
	stateArmed
	stateActive
)

// addrMask and countBits per channel (§4.5): channel 0 cannot address
// cart space at all (27 bit source/dest), channels 1-2 can read cart
// space (28 bit source, 27 bit dest), channel 3 can read or write it
// (28 bit both); word counts are 14 bit for channels 0-2 and 16 bit for
// channel 3, with a zero count meaning the maximum (0x4000/0x10000).
var srcMask = [4]uint32{0x07ffffff, 0x0fffffff, 0x0fffffff, 0x0fffffff}
var dstMask = [4]uint32{0x07ffffff, 0x07ffffff, 0x07ffffff, 0x0fffffff}
var countMask = [4]uint32{0x3fff, 0x3fff, 0x3fff, 0xffff}
var countMax = [4]uint32{0x4000, 0x4000, 0x4000, 0x10000}

var irqSource = [4]interrupt.Source{
	interrupt.DMA0, interrupt.DMA1, interrupt.DMA2, interrupt.DMA3,
}

// AddrControl selects how the source/destination pointer moves after
// each unit transferred.
type AddrControl int

const (
	AddrIncrement AddrControl = iota
	AddrDecrement
	AddrFixed
	AddrIncrementReload // destination only: increment, but reload to the original base when the channel repeats
)

// Channel is one DMA0-DMA3 channel's registers and live transfer state.
type Channel struct {
	id int

	srcBase, dstBase uint32
	count            uint32

	srcCtrl, dstCtrl AddrControl
	repeat           bool
	wordTransfer     bool // false = 16 bit, true = 32 bit
	timing           Timing
	irqOnEnd         bool
	enabled          bool

	state state
	src   uint32
	dst   uint32
	left  uint32
}

// Bank owns all four channels in priority order (channel 0 highest).
type Bank struct {
	channels [4]Channel
	irq      *interrupt.Controller
}

// NewBank returns a Bank with every channel disabled.
func NewBank(irq *interrupt.Controller) *Bank {
	b := &Bank{irq: irq}
	for i := range b.channels {
		b.channels[i].id = i
	}
	return b
}

// Bus is the narrow read/write surface a DMA transfer needs from the
// system bus; it is satisfied by hardware/memory's Bus implementation.
type Bus interface {
	Read16(addr uint32) (uint16, int)
	Read32(addr uint32) (uint32, int)
	Write16(addr uint32, v uint16) int
	Write32(addr uint32, v uint32) int
}

// WriteSrc, WriteDst and WriteCount back DMAxSAD/DMAxDAD/DMAxCNT_L.
func (b *Bank) WriteSrc(ch int, v uint32)   { b.channels[ch].srcBase = v & srcMask[ch] }
func (b *Bank) WriteDst(ch int, v uint32)   { b.channels[ch].dstBase = v & dstMask[ch] }
func (b *Bank) WriteCount(ch int, v uint32) { b.channels[ch].count = v & countMask[ch] }

// WriteControl decodes DMAxCNT_H. A 0→1 transition of the enable bit
// arms the channel (§4.5); TimingImmediate channels become active
// immediately, others wait for the scheduler to call Notify.
func (b *Bank) WriteControl(ch int, v uint16) {
	c := &b.channels[ch]

	wasEnabled := c.enabled

	c.dstCtrl = AddrControl((v >> 5) & 0x3)
	c.srcCtrl = AddrControl((v >> 7) & 0x3)
	c.repeat = v&(1<<9) != 0
	c.wordTransfer = v&(1<<10) != 0
	c.timing = Timing((v >> 12) & 0x3)
	c.irqOnEnd = v&(1<<14) != 0
	c.enabled = v&(1<<15) != 0

	if c.enabled && !wasEnabled {
		c.arm()
	} else if !c.enabled {
		c.state = stateDisabled
	}
}

// ReadControl packs DMAxCNT_H back into its register bit layout.
func (b *Bank) ReadControl(ch int) uint16 {
	c := &b.channels[ch]
	v := uint16(c.dstCtrl)<<5 | uint16(c.srcCtrl)<<7
	if c.repeat {
		v |= 1 << 9
	}
	if c.wordTransfer {
		v |= 1 << 10
	}
	v |= uint16(c.timing) << 12
	if c.irqOnEnd {
		v |= 1 << 14
	}
	if c.enabled {
		v |= 1 << 15
	}
	return v
}

// arm latches the live src/dst/count from the base registers, ready to
// run once its Timing condition is met.
func (c *Channel) arm() {
	c.src = c.srcBase
	c.dst = c.dstBase
	n := c.count
	if n == 0 {
		n = countMax[c.id]
	}
	c.left = n
	c.state = stateArmed
	if c.timing == TimingImmediate {
		c.state = stateActive
	}
}

// Notify transitions any armed channel whose Timing matches ev to
// active. Called by the console tick loop on HBLANK/VBLANK events;
// nothing notifies TimingSpecial, so special-timing channels stay armed.
func (b *Bank) Notify(ev Timing) {
	for i := range b.channels {
		c := &b.channels[i]
		if c.state == stateArmed && c.timing == ev {
			c.state = stateActive
		}
	}
}

// Active reports whether any channel currently has a transfer in
// progress; the tick loop pauses the CPU while this is true (§4.5,
// "CPU paused during transfer").
func (b *Bank) Active() bool {
	for i := range b.channels {
		if b.channels[i].state == stateActive {
			return true
		}
	}
	return false
}

// Run executes the highest-priority active channel's transfer (lowest id
// wins, §4.5) and returns the cycle cost. A channel
// completes its entire transfer within a single Run call; transfers do
// not interleave between channels once started.
func (b *Bank) Run(bus Bus) int {
	for i := range b.channels {
		c := &b.channels[i]
		if c.state != stateActive {
			continue
		}
		return b.runChannel(c, bus)
	}
	return 0
}

func (b *Bank) runChannel(c *Channel, bus Bus) int {
	cycles := 0
	unit := uint32(2)
	if c.wordTransfer {
		unit = 4
	}

	for c.left > 0 {
		if c.wordTransfer {
			v, cyc := bus.Read32(c.src)
			cycles += cyc
			cycles += bus.Write32(c.dst, v)
		} else {
			v, cyc := bus.Read16(c.src)
			cycles += cyc
			cycles += bus.Write16(c.dst, v)
		}

		c.src = stepAddr(c.src, c.srcCtrl, unit)
		c.dst = stepAddr(c.dst, c.dstCtrl, unit)
		c.left--
	}

	if c.irqOnEnd {
		b.irq.RequestInterrupt(irqSource[c.id])
	}

	if c.repeat && c.timing != TimingImmediate {
		n := c.count
		if n == 0 {
			n = countMax[c.id]
		}
		c.left = n
		if c.dstCtrl == AddrIncrementReload {
			c.dst = c.dstBase
		}
		c.state = stateArmed
	} else {
		c.state = stateDisabled
		c.enabled = false
	}

	return cycles
}

func stepAddr(addr uint32, ctrl AddrControl, unit uint32) uint32 {
	switch ctrl {
	case AddrIncrement, AddrIncrementReload:
		return addr + unit
	case AddrDecrement:
		return addr - unit
	default: // AddrFixed
		return addr
	}
}
