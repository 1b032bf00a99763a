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

// Package sdl is the reference host shell: a go-sdl2 window that blits
// the PPU's framebuffer and maps keyboard input onto KEYINPUT, adapted
// from the teacher's gui/sdl "TV renderer" duty (window setup, a
// streaming texture, an SDL event pump) to this console's simpler
// fixed-size framebuffer.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gba7tdmi/hardware"
	"github.com/jetsetilly/gba7tdmi/hardware/input"
	"github.com/jetsetilly/gba7tdmi/hardware/ppu"
	"github.com/jetsetilly/gba7tdmi/logger"
)

// Shell owns the SDL window/renderer/texture and pumps SDL's event queue
// once per frame.
type Shell struct {
	console *hardware.Console

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// scancodeKeys maps host scancodes onto console keys. Arrow keys drive
// the D-pad; Z/X are A/B; Return/RShift are Start/Select; A/S are L/R.
var scancodeKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_RIGHT:  input.Right,
	sdl.SCANCODE_LEFT:   input.Left,
	sdl.SCANCODE_UP:     input.Up,
	sdl.SCANCODE_DOWN:   input.Down,
	sdl.SCANCODE_Z:      input.A,
	sdl.SCANCODE_X:      input.B,
	sdl.SCANCODE_RETURN: input.Start,
	sdl.SCANCODE_RSHIFT: input.Select,
	sdl.SCANCODE_A:      input.L,
	sdl.SCANCODE_S:      input.R,
}

// NewShell initializes SDL and opens a window scaled by factor.
func NewShell(console *hardware.Console, factor int32) (*Shell, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	window, err := sdl.CreateWindow("", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		ppu.ScreenWidth*factor, ppu.ScreenHeight*factor, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB555, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	return &Shell{
		console:  console,
		window:   window,
		renderer: renderer,
		texture:  texture,
	}, nil
}

// Close tears down the SDL window and subsystem.
func (s *Shell) Close() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}

// PumpEvents drains the SDL event queue, translating key transitions
// into keypad writes and a quit request into Console.Stop. Intended to
// be called once per frame from the continue_ callback passed to
// Console.Run.
func (s *Shell) PumpEvents() {
	for {
		event := sdl.PollEvent()
		if event == nil {
			return
		}

		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.console.Stop()
		case *sdl.KeyboardEvent:
			key, ok := scancodeKeys[e.Keysym.Scancode]
			if !ok {
				continue
			}
			s.console.Keypad.SetPressed(key, e.State == sdl.PRESSED)
		}
	}
}

// Present blits the PPU's front framebuffer to the window.
func (s *Shell) Present() error {
	fb := s.console.PPU.Framebuffer()

	pixels, _, err := s.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	for i, px := range fb {
		pixels[i*2] = byte(px)
		pixels[i*2+1] = byte(px >> 8)
	}
	s.texture.Unlock()

	if err := s.renderer.Clear(); err != nil {
		logger.Logf(logger.Allow, "sdl", "clear failed: %v", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	s.renderer.Present()

	return nil
}

// Continue is the callback to pass to Console.Run: it presents the just
// completed frame, pumps input, and reports whether the console should
// keep running.
func (s *Shell) Continue() bool {
	if err := s.Present(); err != nil {
		logger.Logf(logger.Allow, "sdl", "present failed: %v", err)
	}
	s.PumpEvents()
	return s.console.Active()
}
