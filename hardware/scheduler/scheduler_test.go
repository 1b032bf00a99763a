package scheduler_test

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/hardware/scheduler"
	"github.com/jetsetilly/gba7tdmi/test"
)

func TestHBlankFiresAfterVisiblePortion(t *testing.T) {
	s := scheduler.New()
	fired := s.Advance(scheduler.ScanlineCycles - scheduler.HBlankDuration)
	test.Equate(t, len(fired), 1)
	test.Equate(t, fired[0].Kind, scheduler.KindHBlankStart)
	test.Equate(t, fired[0].HBlank, true)
}

func TestLYIncrementsOnHBlankEnd(t *testing.T) {
	s := scheduler.New()
	s.Advance(scheduler.ScanlineCycles)
	test.Equate(t, s.LY(), 1)
}

func TestLYWrapsAfterTotalScanlines(t *testing.T) {
	s := scheduler.New()
	for i := 0; i < scheduler.TotalScanlines; i++ {
		s.Advance(scheduler.ScanlineCycles)
	}
	test.Equate(t, s.LY(), 0)
}

func TestVBlankFlagSetAtScanline160(t *testing.T) {
	s := scheduler.New()
	for i := 0; i < scheduler.VisibleScanlines; i++ {
		s.Advance(scheduler.ScanlineCycles)
	}
	test.Equate(t, s.VBlank(), true)
	test.Equate(t, s.LY(), scheduler.VisibleScanlines)
}

func TestLYMatchCallbackFiresOnce(t *testing.T) {
	s := scheduler.New()
	hits := 0
	s.SetLYMatch(5)
	s.OnLYMatch(func() { hits++ })
	for i := 0; i < 6; i++ {
		s.Advance(scheduler.ScanlineCycles)
	}
	test.Equate(t, hits, 1)
}
