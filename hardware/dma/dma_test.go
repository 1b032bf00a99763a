package dma_test

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/hardware/dma"
	"github.com/jetsetilly/gba7tdmi/hardware/interrupt"
	"github.com/jetsetilly/gba7tdmi/test"
)

type flatBus struct {
	mem [0x200]byte
}

func (b *flatBus) Read16(addr uint32) (uint16, int) {
	addr &= 0x1fe
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8, 1
}

func (b *flatBus) Read32(addr uint32) (uint32, int) {
	addr &= 0x1fc
	return uint32(b.mem[addr]) | uint32(b.mem[addr+1])<<8 | uint32(b.mem[addr+2])<<16 | uint32(b.mem[addr+3])<<24, 1
}

func (b *flatBus) Write16(addr uint32, v uint16) int {
	addr &= 0x1fe
	b.mem[addr] = byte(v)
	b.mem[addr+1] = byte(v >> 8)
	return 1
}

func (b *flatBus) Write32(addr uint32, v uint32) int {
	addr &= 0x1fc
	b.mem[addr] = byte(v)
	b.mem[addr+1] = byte(v >> 8)
	b.mem[addr+2] = byte(v >> 16)
	b.mem[addr+3] = byte(v >> 24)
	return 1
}

func TestImmediateTransferRunsToCompletionInOneRun(t *testing.T) {
	irq := interrupt.NewController()
	bank := dma.NewBank(irq)
	bus := &flatBus{}

	bus.Write16(0x100, 0xaaaa)
	bus.Write16(0x102, 0xbbbb)

	bank.WriteSrc(0, 0x100)
	bank.WriteDst(0, 0x180)
	bank.WriteCount(0, 2)
	bank.WriteControl(0, 1<<15) // enable, immediate, increment/increment

	test.Equate(t, bank.Active(), true)
	bank.Run(bus)
	test.Equate(t, bank.Active(), false)

	v, _ := bus.Read16(0x180)
	test.Equate(t, v, uint16(0xaaaa))
	v, _ = bus.Read16(0x182)
	test.Equate(t, v, uint16(0xbbbb))
}

func TestZeroCountMeansMaximum(t *testing.T) {
	irq := interrupt.NewController()
	bank := dma.NewBank(irq)
	bus := &flatBus{}

	bank.WriteSrc(3, 0)
	bank.WriteDst(3, 0)
	bank.WriteCount(3, 0)
	bank.WriteControl(3, 1<<15)

	test.Equate(t, bank.Active(), true)
	// 0x10000 halfword units, one read cycle plus one write cycle each
	test.Equate(t, bank.Run(bus), 2*0x10000)
	test.Equate(t, bank.Active(), false)
}

func TestVBlankTimingArmsWithoutActivatingUntilNotified(t *testing.T) {
	irq := interrupt.NewController()
	bank := dma.NewBank(irq)
	bus := &flatBus{}

	bank.WriteSrc(0, 0x100)
	bank.WriteDst(0, 0x180)
	bank.WriteCount(0, 1)
	bank.WriteControl(0, 1<<15|1<<12) // enable, VBlank timing

	test.Equate(t, bank.Active(), false)
	bank.Notify(dma.TimingVBlank)
	test.Equate(t, bank.Active(), true)
	bank.Run(bus)
	test.Equate(t, bank.Active(), false)
}

func TestIRQOnEndRequestsChannelSource(t *testing.T) {
	irq := interrupt.NewController()
	bank := dma.NewBank(irq)
	bus := &flatBus{}
	irq.WriteIE(uint16(interrupt.DMA1))

	bank.WriteSrc(1, 0x100)
	bank.WriteDst(1, 0x180)
	bank.WriteCount(1, 1)
	bank.WriteControl(1, 1<<15|1<<14) // enable, immediate, IRQ on end

	bank.Run(bus)
	test.Equate(t, irq.ReadIF(), uint16(interrupt.DMA1))
}
