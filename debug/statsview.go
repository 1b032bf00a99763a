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

package debug

import (
	"github.com/go-echarts/statsview"

	"github.com/jetsetilly/gba7tdmi/hardware"
)

// StartStatsView starts the go-echarts/statsview HTTP dashboard (runtime
// memory/goroutine graphs out of the box) and registers three extra
// graphs specific to this console: the scheduler's event queue depth,
// whether a DMA channel is currently holding the CPU paused, and each
// timer's cumulative overflow count. cmd/gba starts it when the -stats flag
// or armprefs.Preferences.StatsView is set; a host only pays for this when
// asked.
func StartStatsView(console *hardware.Console, addr string) {
	viewer := statsview.New(statsview.WithAddr(addr))

	statsview.AddRichGraph(&statsview.RichGraph{
		Name:   "scheduler_queue_depth",
		Title:  "scheduler queue depth",
		Legend: []string{"depth"},
	}, func() map[string]float64 {
		return map[string]float64{
			"depth": float64(console.Scheduler.QueueDepth()),
		}
	})

	statsview.AddRichGraph(&statsview.RichGraph{
		Name:   "dma_active",
		Title:  "DMA holding CPU",
		Legend: []string{"active"},
	}, func() map[string]float64 {
		v := 0.0
		if console.DMA.Active() {
			v = 1.0
		}
		return map[string]float64{"active": v}
	})

	statsview.AddRichGraph(&statsview.RichGraph{
		Name:   "timer_overflows",
		Title:  "timer overflow counts",
		Legend: []string{"t0", "t1", "t2", "t3"},
	}, func() map[string]float64 {
		return map[string]float64{
			"t0": float64(console.Timers.Overflows(0)),
			"t1": float64(console.Timers.Overflows(1)),
			"t2": float64(console.Timers.Overflows(2)),
			"t3": float64(console.Timers.Overflows(3)),
		}
	})

	go viewer.Start()
}
