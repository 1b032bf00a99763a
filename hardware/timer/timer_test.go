package timer_test

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/hardware/interrupt"
	"github.com/jetsetilly/gba7tdmi/hardware/timer"
	"github.com/jetsetilly/gba7tdmi/test"
)

func TestTimerOverflowReloadsAndRequestsIRQ(t *testing.T) {
	irq := interrupt.NewController()
	bank := timer.NewBank(irq)
	irq.WriteIE(uint16(interrupt.Timer0))

	bank.WriteReload(0, 0xfffe)
	bank.WriteControl(0, 1<<7|1<<6) // start, prescaler /1, IRQ enable

	bank.Step(1)
	test.Equate(t, bank.ReadCounter(0), uint16(0xffff))
	test.Equate(t, irq.ReadIF(), uint16(0))

	bank.Step(1)
	test.Equate(t, bank.ReadCounter(0), uint16(0xfffe))
	test.Equate(t, irq.ReadIF(), uint16(interrupt.Timer0))
}

func TestTimerPrescalerDivides(t *testing.T) {
	irq := interrupt.NewController()
	bank := timer.NewBank(irq)

	bank.WriteReload(0, 0)
	bank.WriteControl(0, 1<<7|0x1) // start, prescaler /64

	bank.Step(63)
	test.Equate(t, bank.ReadCounter(0), uint16(0))

	bank.Step(1)
	test.Equate(t, bank.ReadCounter(0), uint16(1))
}

func TestCascadeClocksNextTimerOnOverflow(t *testing.T) {
	irq := interrupt.NewController()
	bank := timer.NewBank(irq)

	bank.WriteReload(0, 0xffff)
	bank.WriteControl(0, 1<<7) // start, prescaler /1

	bank.WriteReload(1, 5)
	bank.WriteControl(1, 1<<7|1<<2) // start, cascade

	bank.Step(1) // timer 0 overflows, timer 1 should tick once
	test.Equate(t, bank.ReadCounter(0), uint16(0xffff))
	test.Equate(t, bank.ReadCounter(1), uint16(6))
}

func TestRunBitTransitionReinitializesCounter(t *testing.T) {
	irq := interrupt.NewController()
	bank := timer.NewBank(irq)

	bank.WriteReload(0, 100)
	bank.WriteControl(0, 1<<7)
	bank.Step(10)
	test.Equate(t, bank.ReadCounter(0), uint16(110))

	bank.WriteControl(0, 0) // stop
	bank.WriteReload(0, 200)
	bank.WriteControl(0, 1<<7) // start again
	test.Equate(t, bank.ReadCounter(0), uint16(200))
}
