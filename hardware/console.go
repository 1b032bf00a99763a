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

package hardware

import (
	"sync/atomic"

	"github.com/jetsetilly/gba7tdmi/cartridgeloader"
	"github.com/jetsetilly/gba7tdmi/hardware/armprefs"
	"github.com/jetsetilly/gba7tdmi/hardware/cpu/arm7tdmi"
	"github.com/jetsetilly/gba7tdmi/hardware/dma"
	"github.com/jetsetilly/gba7tdmi/hardware/input"
	"github.com/jetsetilly/gba7tdmi/hardware/interrupt"
	"github.com/jetsetilly/gba7tdmi/hardware/memory"
	"github.com/jetsetilly/gba7tdmi/hardware/memory/cartridge"
	"github.com/jetsetilly/gba7tdmi/hardware/ppu"
	"github.com/jetsetilly/gba7tdmi/hardware/scheduler"
	"github.com/jetsetilly/gba7tdmi/hardware/timer"
)

// Console is the root of the emulation, owning every sub-system and
// driving them through the tick loop described in spec.md §4.10. It is
// the single owner of all simulation state; the only state shared with
// another goroutine is the atomic "active" flag, the PPU's
// front-framebuffer pointer and the keypad's atomic register, per §5.
type Console struct {
	CPU       *arm7tdmi.CPU
	Bus       *memory.Bus
	DMA       *dma.Bank
	Timers    *timer.Bank
	IRQ       *interrupt.Controller
	Scheduler *scheduler.Scheduler
	PPU       *ppu.PPU
	Keypad    *input.Keypad
	Prefs     *armprefs.Preferences

	active atomic.Bool
}

// NewConsole wires every sub-system together and returns a Console ready
// for AttachCartridge and Run. prefsPath may be empty, in which case
// armprefs tunables keep their zero-value defaults without being
// persisted.
func NewConsole(prefsPath string) (*Console, error) {
	irq := interrupt.NewController()
	p := ppu.New()
	dmaBank := dma.NewBank(irq)
	timers := timer.NewBank(irq)
	keypad := input.NewKeypad()
	bus := memory.NewBus(p, dmaBank, timers, irq, keypad)

	var prefs *armprefs.Preferences
	if prefsPath != "" {
		var err error
		prefs, err = armprefs.NewPreferences(prefsPath)
		if err != nil {
			return nil, err
		}
		if err := prefs.Load(); err != nil {
			return nil, err
		}
	}

	c := &Console{
		CPU:       arm7tdmi.NewCPU(),
		Bus:       bus,
		DMA:       dmaBank,
		Timers:    timers,
		IRQ:       irq,
		Scheduler: scheduler.New(),
		PPU:       p,
		Keypad:    keypad,
		Prefs:     prefs,
	}
	c.active.Store(true)
	c.CPU.Reset()

	return c, nil
}

// AttachCartridge parses ld and maps it onto the bus's cart ROM/SRAM
// space.
func (c *Console) AttachCartridge(ld cartridgeloader.Loader) error {
	cart, err := cartridge.Attach(ld)
	if err != nil {
		return err
	}
	c.Bus.AttachCartridge(cart)
	return nil
}

// LoadBIOS copies data into the BIOS region. data longer than the BIOS
// window is truncated; shorter data leaves the remainder zeroed.
func (c *Console) LoadBIOS(data []byte) {
	copy(c.Bus.BIOS[:], data)
}

// Active reports whether the host shell has requested a stop. Safe to
// call from another goroutine.
func (c *Console) Active() bool { return c.active.Load() }

// Stop clears the active flag. Safe to call from another goroutine (the
// host shell, typically, in response to a quit event).
func (c *Console) Stop() { c.active.Store(false) }

// Step runs exactly one CPU instruction (or DMA transfer slice, if a
// channel is active and therefore has the CPU paused) and advances every
// other sub-system by the cycles it cost. It returns the number of
// cycles consumed.
func (c *Console) Step() (int, error) {
	var cycles int
	var err error

	if c.DMA.Active() {
		cycles = c.DMA.Run(c.Bus)
	} else {
		irqLine := c.IRQ.Pending()
		cycles, err = c.CPU.Step(c.Bus, irqLine)
		c.Bus.NoteOpcodeFetch(c.CPU.LastFetchedOpcode())
	}

	c.Timers.Step(cycles)

	for _, fired := range c.Scheduler.Advance(cycles) {
		c.handleSchedulerEvent(fired)
	}

	return cycles, err
}

func (c *Console) handleSchedulerEvent(f scheduler.Fired) {
	switch f.Kind {
	case scheduler.KindHBlankStart:
		c.DMA.Notify(dma.TimingHBlank)
		c.PPU.SetLY(f.LY, f.HBlank, f.VBlank)
		if c.PPU.HBlankIRQEnabled() {
			c.IRQ.RequestInterrupt(interrupt.HBlank)
		}

	case scheduler.KindHBlankEnd:
		c.PPU.Step(f.LY)
		c.PPU.SetLY(f.LY, f.HBlank, f.VBlank)
		if c.PPU.VCountIRQEnabled() && f.LY == int((c.PPU.ReadDISPSTAT()>>8)&0xff) {
			c.IRQ.RequestInterrupt(interrupt.VCount)
		}
		if f.LY == scheduler.VisibleScanlines {
			c.PPU.Swap()
			c.DMA.Notify(dma.TimingVBlank)
			c.Keypad.CheckIRQ(c.IRQ)
			if c.PPU.VBlankIRQEnabled() {
				c.IRQ.RequestInterrupt(interrupt.VBlank)
			}
		}
	}
}

// Run steps the console until Stop is called or continue returns false.
// continue is checked once per video frame, not once per instruction, so
// a host shell pumping its own event loop doesn't need to synchronize on
// every single CPU step.
func (c *Console) Run(continue_ func() bool) error {
	lastLY := c.Scheduler.LY()

	for c.Active() {
		if _, err := c.Step(); err != nil {
			return err
		}

		ly := c.Scheduler.LY()
		if ly != lastLY && ly == 0 {
			if !continue_() {
				c.Stop()
			}
		}
		lastLY = ly
	}

	return nil
}
