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

// Package scheduler drives the HBLANK/VBLANK video timing model (spec.md
// §4.9) with a small min-heap of (kind, timestamp) events, in place of the
// teacher's own scanline-counting television spec -- the GBA's event
// cadence is irregular enough (226/1232/197120) that a heap reads more
// naturally than a per-cycle scanline counter.
package scheduler

import "container/heap"

// Kind identifies what should happen when an event's timestamp is
// reached.
type Kind int

const (
	KindHBlankStart Kind = iota
	KindHBlankEnd
	KindVBlankStart
)

// Timing constants from spec.md §4.9.
const (
	HBlankDuration  = 226  // cycles the HBLANK flag stays set once a scanline's visible window ends
	ScanlineCycles  = 1232 // total cycles per scanline, visible + HBLANK
	VBlankCycles    = 197120
	VisibleScanlines = 160
	TotalScanlines   = 228
)

type event struct {
	kind      Kind
	timestamp uint64
}

// eventQueue is a container/heap.Interface ordered by timestamp.
type eventQueue []event

func (q eventQueue) Len() int            { return len(q) }
func (q eventQueue) Less(i, j int) bool  { return q[i].timestamp < q[j].timestamp }
func (q eventQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x interface{}) { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Fired is reported back to the console tick loop each Advance call so it
// can toggle DISPSTAT/VCOUNT and notify DMA's video-timed channels.
type Fired struct {
	Kind    Kind
	LY      int // scanline VCOUNT should now report
	HBlank  bool
	VBlank  bool
}

// Scheduler owns the event heap and the derived LY/HBLANK/VBLANK state.
type Scheduler struct {
	now   uint64
	queue eventQueue

	ly       int
	hblank   bool
	vblank   bool
	lyMatch  int
	onLYMatch func()
}

// New returns a Scheduler primed with the HBLANK-start event of scanline
// 0 (the console starts at the beginning of the visible window, matching
// real hardware's post-reset state).
func New() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.queue)
	s.scheduleRelative(KindHBlankStart, ScanlineCycles-HBlankDuration)
	return s
}

// OnLYMatch installs a callback invoked whenever LY becomes equal to the
// value set by SetLYMatch (drives the VCOUNT-match interrupt source).
func (s *Scheduler) OnLYMatch(f func()) { s.onLYMatch = f }

// SetLYMatch sets the scanline VCOUNT_MATCH compares LY against.
func (s *Scheduler) SetLYMatch(ly int) { s.lyMatch = ly }

func (s *Scheduler) scheduleRelative(kind Kind, delta uint64) {
	heap.Push(&s.queue, event{kind: kind, timestamp: s.now + delta})
}

// Advance moves the scheduler's clock forward by cycles and returns every
// event that fired, in order, along with the HBLANK/VBLANK/LY state as of
// each firing.
func (s *Scheduler) Advance(cycles int) []Fired {
	target := s.now + uint64(cycles)
	var fired []Fired

	for len(s.queue) > 0 && s.queue[0].timestamp <= target {
		e := heap.Pop(&s.queue).(event)
		s.now = e.timestamp
		fired = append(fired, s.fire(e.kind))
	}

	s.now = target
	return fired
}

func (s *Scheduler) fire(kind Kind) Fired {
	switch kind {
	case KindHBlankStart:
		s.hblank = true
		s.scheduleRelative(KindHBlankEnd, HBlankDuration)
	case KindHBlankEnd:
		s.hblank = false
		s.ly++
		if s.ly >= TotalScanlines {
			s.ly = 0
		}
		if s.ly == VisibleScanlines {
			s.vblank = true
		} else if s.ly == 0 {
			s.vblank = false
		}
		if s.ly == s.lyMatch && s.onLYMatch != nil {
			s.onLYMatch()
		}
		s.scheduleRelative(KindHBlankStart, ScanlineCycles-HBlankDuration)
	}

	return Fired{Kind: kind, LY: s.ly, HBlank: s.hblank, VBlank: s.vblank}
}

// LY, HBlank and VBlank report the scheduler's current derived state
// without needing to wait for the next Advance.
func (s *Scheduler) LY() int       { return s.ly }
func (s *Scheduler) HBlank() bool  { return s.hblank }
func (s *Scheduler) VBlank() bool  { return s.vblank }

// QueueDepth reports how many events are currently pending. Always one
// between Advance calls, since each fired event schedules exactly one
// successor -- exposed for the stats dashboard, not the emulation itself.
func (s *Scheduler) QueueDepth() int { return len(s.queue) }
