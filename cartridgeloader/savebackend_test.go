package cartridgeloader_test

import (
	"testing"

	"github.com/jetsetilly/gba7tdmi/cartridgeloader"
	"github.com/jetsetilly/gba7tdmi/test"
)

func TestSniffSaveBackendFindsEEPROM(t *testing.T) {
	data := append([]byte("junk before"), []byte("EEPROM_V120")...)
	test.Equate(t, cartridgeloader.SniffSaveBackend(data), cartridgeloader.BackendEEPROM)
}

func TestSniffSaveBackendPrefersMoreSpecificFlashSignature(t *testing.T) {
	data := []byte("FLASH1M_V102")
	test.Equate(t, cartridgeloader.SniffSaveBackend(data), cartridgeloader.BackendFlash128K)
}

func TestSniffSaveBackendNoneWhenAbsent(t *testing.T) {
	test.Equate(t, cartridgeloader.SniffSaveBackend([]byte("no signature here")), cartridgeloader.BackendNone)
}
