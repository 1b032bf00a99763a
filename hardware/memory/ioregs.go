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

package memory

import "github.com/jetsetilly/gba7tdmi/logger"

// I/O register byte offsets within the 0x04000000 window. Registers this
// console doesn't implement (affine backgrounds, windowing, blending,
// sound) fall through to readIO/writeIO's default case, logged once per
// access rather than silently dropped.
const (
	regDISPCNT  = 0x000
	regDISPSTAT = 0x004
	regVCOUNT   = 0x006
	regBG0CNT   = 0x008
	regBG1CNT   = 0x00a
	regBG2CNT   = 0x00c
	regBG3CNT   = 0x00e
	regBG0HOFS  = 0x010
	regBG0VOFS  = 0x012
	regBG1HOFS  = 0x014
	regBG1VOFS  = 0x016
	regBG2HOFS  = 0x018
	regBG2VOFS  = 0x01a
	regBG3HOFS  = 0x01c
	regBG3VOFS  = 0x01e

	regDMA0SAD   = 0x0b0
	regDMA0DAD   = 0x0b4
	regDMA0CNT_L = 0x0b8
	regDMA0CNT_H = 0x0ba
	dmaChannelStride = 0x0c

	regTM0CNT_L = 0x100
	regTM0CNT_H = 0x102
	timerChannelStride = 0x4

	regKEYINPUT = 0x130
	regKEYCNT   = 0x132

	regIE     = 0x200
	regIF     = 0x202
	regWAITCNT = 0x204
	regIME    = 0x208
)

// shadowRegs holds both halves of 32 bit registers (DMA source/
// destination) that arrive as two separate 16 bit bus writes.
type shadowRegs struct {
	dmaSAD, dmaDAD [4]uint32
}

func (b *Bus) readIO(off uint32) uint16 {
	switch {
	case off == regDISPCNT:
		return b.PPU.ReadDISPCNT()
	case off == regDISPSTAT:
		return b.PPU.ReadDISPSTAT()
	case off == regVCOUNT:
		return b.PPU.ReadVCOUNT()
	case off == regBG0CNT, off == regBG1CNT, off == regBG2CNT, off == regBG3CNT:
		return b.PPU.ReadBGCNT(int((off - regBG0CNT) / 2))

	case off >= regDMA0CNT_H && off < regDMA0CNT_H+4*dmaChannelStride && (off-regDMA0CNT_H)%dmaChannelStride == 0:
		ch := int((off - regDMA0CNT_H) / dmaChannelStride)
		return b.DMA.ReadControl(ch)
	case off >= regDMA0CNT_L && off < regDMA0CNT_L+4*dmaChannelStride && (off-regDMA0CNT_L)%dmaChannelStride == 0:
		return 0 // DMAxCNT_L is write-only on real hardware

	case off >= regTM0CNT_L && off < regTM0CNT_L+4*timerChannelStride && (off-regTM0CNT_L)%timerChannelStride == 0:
		ch := int((off - regTM0CNT_L) / timerChannelStride)
		return b.Timers.ReadCounter(ch)
	case off >= regTM0CNT_H && off < regTM0CNT_H+4*timerChannelStride && (off-regTM0CNT_H)%timerChannelStride == 0:
		ch := int((off - regTM0CNT_H) / timerChannelStride)
		return b.Timers.ReadControl(ch)

	case off == regKEYINPUT:
		return b.Keypad.ReadKeyInput()
	case off == regKEYCNT:
		return b.Keypad.ReadKeyControl()

	case off == regIE:
		return b.IRQ.ReadIE()
	case off == regIF:
		return b.IRQ.ReadIF()
	case off == regIME:
		if b.IRQ.ReadIME() {
			return 1
		}
		return 0
	case off == regWAITCNT:
		return 0 // write-only shadow not modelled; reads return 0

	default:
		logger.Logf(logger.Allow, "bus", "read from unimplemented io register %#03x", off)
		return 0
	}
}

func (b *Bus) writeIO(off uint32, v uint16) {
	switch {
	case off == regDISPCNT:
		b.PPU.WriteDISPCNT(v)
	case off == regDISPSTAT:
		b.PPU.WriteDISPSTAT(v)
	case off == regBG0CNT, off == regBG1CNT, off == regBG2CNT, off == regBG3CNT:
		b.PPU.WriteBGCNT(int((off-regBG0CNT)/2), v)
	case off == regBG0HOFS, off == regBG1HOFS, off == regBG2HOFS, off == regBG3HOFS:
		b.PPU.WriteBGHOFS(int((off-regBG0HOFS)/4), v)
	case off == regBG0VOFS, off == regBG1VOFS, off == regBG2VOFS, off == regBG3VOFS:
		b.PPU.WriteBGVOFS(int((off-regBG0VOFS)/4), v)

	case off >= regDMA0SAD && off < regDMA0SAD+4*dmaChannelStride && (off-regDMA0SAD)%dmaChannelStride == 0:
		ch := int((off - regDMA0SAD) / dmaChannelStride)
		b.shadow.dmaSAD[ch] = b.shadow.dmaSAD[ch]&0xffff0000 | uint32(v)
		b.DMA.WriteSrc(ch, b.shadow.dmaSAD[ch])
	case off >= regDMA0SAD+2 && off < regDMA0SAD+2+4*dmaChannelStride && (off-regDMA0SAD-2)%dmaChannelStride == 0:
		ch := int((off - regDMA0SAD - 2) / dmaChannelStride)
		b.shadow.dmaSAD[ch] = b.shadow.dmaSAD[ch]&0x0000ffff | uint32(v)<<16
		b.DMA.WriteSrc(ch, b.shadow.dmaSAD[ch])
	case off >= regDMA0DAD && off < regDMA0DAD+4*dmaChannelStride && (off-regDMA0DAD)%dmaChannelStride == 0:
		ch := int((off - regDMA0DAD) / dmaChannelStride)
		b.shadow.dmaDAD[ch] = b.shadow.dmaDAD[ch]&0xffff0000 | uint32(v)
		b.DMA.WriteDst(ch, b.shadow.dmaDAD[ch])
	case off >= regDMA0DAD+2 && off < regDMA0DAD+2+4*dmaChannelStride && (off-regDMA0DAD-2)%dmaChannelStride == 0:
		ch := int((off - regDMA0DAD - 2) / dmaChannelStride)
		b.shadow.dmaDAD[ch] = b.shadow.dmaDAD[ch]&0x0000ffff | uint32(v)<<16
		b.DMA.WriteDst(ch, b.shadow.dmaDAD[ch])
	case off >= regDMA0CNT_L && off < regDMA0CNT_L+4*dmaChannelStride && (off-regDMA0CNT_L)%dmaChannelStride == 0:
		ch := int((off - regDMA0CNT_L) / dmaChannelStride)
		b.DMA.WriteCount(ch, uint32(v))
	case off >= regDMA0CNT_H && off < regDMA0CNT_H+4*dmaChannelStride && (off-regDMA0CNT_H)%dmaChannelStride == 0:
		ch := int((off - regDMA0CNT_H) / dmaChannelStride)
		b.DMA.WriteControl(ch, v)

	case off >= regTM0CNT_L && off < regTM0CNT_L+4*timerChannelStride && (off-regTM0CNT_L)%timerChannelStride == 0:
		ch := int((off - regTM0CNT_L) / timerChannelStride)
		b.Timers.WriteReload(ch, v)
	case off >= regTM0CNT_H && off < regTM0CNT_H+4*timerChannelStride && (off-regTM0CNT_H)%timerChannelStride == 0:
		ch := int((off - regTM0CNT_H) / timerChannelStride)
		b.Timers.WriteControl(ch, v)

	case off == regKEYCNT:
		b.Keypad.WriteKeyControl(v)

	case off == regIE:
		b.IRQ.WriteIE(v)
	case off == regIF:
		b.IRQ.WriteIF(v)
	case off == regIME:
		b.IRQ.WriteIME(v != 0)
	case off == regWAITCNT:
		b.ws.setWAITCNT(v)

	default:
		logger.Logf(logger.Allow, "bus", "write to unimplemented io register %#03x (%#04x)", off, v)
	}
}
