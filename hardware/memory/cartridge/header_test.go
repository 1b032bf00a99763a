package cartridge_test

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/hardware/memory/cartridge"
	"github.com/jetsetilly/gba7tdmi/test"
)

func makeROM(title, gameCode, makerCode string, version byte) []byte {
	rom := make([]byte, 0x1000)
	copy(rom[0xa0:0xac], title)
	copy(rom[0xac:0xb0], gameCode)
	copy(rom[0xb0:0xb2], makerCode)
	rom[0xbc] = version

	var sum byte
	for i := 0xa0; i < 0xbd; i++ {
		sum += rom[i]
	}
	rom[0xbd] = -(sum + 0x19)

	return rom
}

func TestParseHeaderRecoversFields(t *testing.T) {
	rom := makeROM("TESTGAME", "ABCE", "01", 0)
	h, err := cartridge.ParseHeader(rom)
	test.Equate(t, err, nil)
	test.Equate(t, h.Title, "TESTGAME")
	test.Equate(t, h.GameCode, "ABCE")
	test.Equate(t, h.MakerCode, "01")
	test.Equate(t, h.ComplementOK, true)
}

func TestParseHeaderDetectsBadComplement(t *testing.T) {
	rom := makeROM("TESTGAME", "ABCE", "01", 0)
	rom[0xbd] ^= 0xff
	h, err := cartridge.ParseHeader(rom)
	test.Equate(t, err, nil)
	test.Equate(t, h.ComplementOK, false)
}

func TestParseHeaderRejectsShortData(t *testing.T) {
	_, err := cartridge.ParseHeader(make([]byte, 16))
	if err == nil {
		t.Fatal("expected an error for undersized rom data")
	}
}
