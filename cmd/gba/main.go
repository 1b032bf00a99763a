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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/jetsetilly/gba7tdmi/cartridgeloader"
	"github.com/jetsetilly/gba7tdmi/debug"
	"github.com/jetsetilly/gba7tdmi/gui/sdl"
	"github.com/jetsetilly/gba7tdmi/gui/term"
	"github.com/jetsetilly/gba7tdmi/hardware"
	"github.com/jetsetilly/gba7tdmi/logger"
)

// shell is the minimal surface main needs from either host shell: a
// per-frame callback for Console.Run and teardown.
type shell interface {
	Continue() bool
	Close()
}

func main() {
	// SDL requires its event pump to run on the thread that created the
	// window.
	runtime.LockOSThread()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "* error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var biosPath string
	var prefsPath string
	var guiType string
	var scale int
	var stats bool
	var statsAddr string
	var graphPath string

	flgs := flag.NewFlagSet("gba7tdmi", flag.ExitOnError)
	flgs.StringVar(&biosPath, "bios", "", "path to GBA BIOS image")
	flgs.StringVar(&prefsPath, "prefs", "", "path to preferences file (empty disables persistence)")
	flgs.StringVar(&guiType, "gui", "sdl", "host shell: SDL, TERM or NONE")
	flgs.IntVar(&scale, "scale", 3, "SDL window scale factor")
	flgs.BoolVar(&stats, "stats", false, "serve a live statsview dashboard")
	flgs.StringVar(&statsAddr, "statsaddr", ":18066", "statsview listen address")
	flgs.StringVar(&graphPath, "memviz", "", "dump the console object graph to this path and exit")

	if err := flgs.Parse(args); err != nil {
		return err
	}
	args = flgs.Args()
	if len(args) != 1 {
		return fmt.Errorf("exactly one ROM file must be given")
	}

	console, err := hardware.NewConsole(prefsPath)
	if err != nil {
		return err
	}

	if biosPath != "" {
		data, err := os.ReadFile(biosPath)
		if err != nil {
			return fmt.Errorf("reading BIOS: %w", err)
		}
		console.LoadBIOS(data)
	}

	ld, err := cartridgeloader.NewLoaderFromFilename(args[0])
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	defer ld.Close()

	if err := console.AttachCartridge(ld); err != nil {
		return fmt.Errorf("attaching cartridge: %w", err)
	}
	logger.Logf(logger.Allow, "gba7tdmi", "loaded %s (%s)", console.Bus.Cart.Header.Title, args[0])

	if graphPath != "" {
		return debug.DumpGraph(console, graphPath)
	}

	if stats || (console.Prefs != nil && console.Prefs.StatsView.Get()) {
		debug.StartStatsView(console, statsAddr)
	}

	sh, err := newShell(console, guiType, int32(scale))
	if err != nil {
		return err
	}
	defer sh.Close()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		console.Stop()
	}()

	return console.Run(sh.Continue)
}

// nullShell satisfies shell for -gui=NONE: the console runs unattended,
// stopping only on an interrupt signal or a guest-triggered power off.
type nullShell struct{ console *hardware.Console }

func (n nullShell) Continue() bool { return n.console.Active() }
func (n nullShell) Close()         {}

func newShell(console *hardware.Console, guiType string, scale int32) (shell, error) {
	switch guiType {
	case "sdl", "SDL":
		return sdl.NewShell(console, scale)
	case "term", "TERM":
		return term.NewShell(console)
	case "none", "NONE":
		return nullShell{console: console}, nil
	default:
		return nil, errors.New("unknown gui type: " + guiType)
	}
}
