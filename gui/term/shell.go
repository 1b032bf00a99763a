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

// Package term is the headless fallback shell: no SDL, no framebuffer,
// just stdin put into cbreak mode (so keys arrive unbuffered, without
// waiting on Enter) and a one-line status print per frame. Adapted from
// the teacher's easyterm wrapper around pkg/term/termios, which exists
// for the very same reason there -- raw terminal control without
// pulling in a full curses binding.
package term

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"

	"github.com/jetsetilly/gba7tdmi/hardware"
	"github.com/jetsetilly/gba7tdmi/hardware/input"
)

// Shell drives the console from a plain terminal: it reports LY once per
// frame and maps a fixed set of keys onto the keypad, releasing each key
// the frame after it's read since a terminal gives no key-up event.
type Shell struct {
	console *hardware.Console

	canonAttr syscall.Termios
	held      []input.Key

	quit chan struct{}
	keys chan byte
}

// byteKeys maps a raw input byte to a console key. WASD drive the
// D-pad, J/K are A/B, Enter/Space are Start/Select.
var byteKeys = map[byte]input.Key{
	'd':  input.Right,
	'a':  input.Left,
	'w':  input.Up,
	's':  input.Down,
	'j':  input.A,
	'k':  input.B,
	'\r': input.Start,
	' ':  input.Select,
}

// NewShell puts stdin into cbreak mode and starts a goroutine feeding
// raw key bytes to PumpEvents.
func NewShell(console *hardware.Console) (*Shell, error) {
	var canon, cbreak syscall.Termios
	if err := termios.Tcgetattr(os.Stdin.Fd(), &canon); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	cbreak = canon
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &cbreak); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}

	s := &Shell{
		console:   console,
		canonAttr: canon,
		quit:      make(chan struct{}),
		keys:      make(chan byte, 16),
	}

	go s.readStdin()

	return s, nil
}

func (s *Shell) readStdin() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		select {
		case s.keys <- buf[0]:
		case <-s.quit:
			return
		}
	}
}

// Close restores the terminal to canonical mode.
func (s *Shell) Close() {
	close(s.quit)
	termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &s.canonAttr)
}

// releaseHeld clears every key pressed during the previous frame, since
// a raw terminal never tells us when a key is released.
func (s *Shell) releaseHeld() {
	for _, k := range s.held {
		s.console.Keypad.SetPressed(k, false)
	}
	s.held = s.held[:0]
}

// PumpEvents drains whatever key bytes arrived since the last call,
// presses the keypad bits they map to, and releases last frame's keys.
func (s *Shell) PumpEvents() {
	s.releaseHeld()

	for {
		select {
		case b := <-s.keys:
			if b == 0x1b { // Escape
				s.console.Stop()
				continue
			}
			key, ok := byteKeys[b]
			if !ok {
				continue
			}
			s.console.Keypad.SetPressed(key, true)
			s.held = append(s.held, key)
		default:
			return
		}
	}
}

// Continue is the callback to pass to Console.Run: it prints the
// current scanline, pumps terminal input, and reports whether the
// console should keep running.
func (s *Shell) Continue() bool {
	fmt.Printf("\rLY=%3d", s.console.Scheduler.LY())
	s.PumpEvents()
	return s.console.Active()
}
