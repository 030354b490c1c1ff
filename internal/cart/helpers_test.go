package cart

import (
	"encoding/binary"
	"testing"
)

// buildROM makes a synthetic ROM with a valid header & checksums. The first
// byte of every bank holds the bank number so tests can tell banks apart.
// size should match the ROM size code (e.g. 64*1024 for code 0x01).
func buildROM(title string, cartType, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)
	for bank := 1; bank < size/ROMBankSize; bank++ {
		rom[bank*ROMBankSize] = byte(bank)
	}

	copy(rom[LogoAddr:LogoAddr+len(Logo)], Logo[:])

	// Title 0x0134–0x0142 (15 bytes max)
	tbytes := []byte(title)
	if len(tbytes) > titleLen {
		tbytes = tbytes[:titleLen]
	}
	copy(rom[TitleAddr:TitleAddr+titleLen], tbytes)

	rom[ColorFlagAddr] = 0x00
	rom[NewLicenseeAddr], rom[NewLicenseeAddr+1] = '0', '1'
	rom[SuperFlagAddr] = 0x00
	rom[CartTypeAddr] = cartType
	rom[ROMSizeAddr] = romSizeCode
	rom[RAMSizeAddr] = ramSizeCode
	rom[DestinationAddr] = 0x01
	rom[OldLicenseeAddr] = 0x33
	rom[VersionAddr] = 0x01

	fixChecksums(rom)
	return rom
}

// fixChecksums recomputes both checksums after a test edited header bytes.
func fixChecksums(rom []byte) {
	var hsum byte
	for addr := TitleAddr; addr <= VersionAddr; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[HeaderChecksumAddr] = hsum

	var gsum uint16
	for i := 0; i < len(rom); i++ {
		if i == GlobalChecksumAddr || i == GlobalChecksumAddr+1 {
			continue
		}
		gsum += uint16(rom[i])
	}
	binary.BigEndian.PutUint16(rom[GlobalChecksumAddr:GlobalChecksumAddr+2], gsum)
}

// romSizeCode returns the size code matching a ROM of nbanks banks.
func romSizeCode(nbanks int) byte {
	for code := byte(0); code <= 0x08; code++ {
		if 2<<code == nbanks {
			return code
		}
	}
	panic("no size code for bank count")
}

func mustCart(t testing.TB, rom []byte) *Cartridge {
	t.Helper()
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func newTestROM(nbanks int) *ROM {
	data := make([]byte, nbanks*ROMBankSize)
	for bank := 0; bank < nbanks; bank++ {
		data[bank*ROMBankSize] = byte(bank)
		data[bank*ROMBankSize+ROMBankSize-1] = ^byte(bank)
	}
	r, err := NewROM(data)
	if err != nil {
		panic(err)
	}
	return r
}

func newTestSRAM(size int) *SRAM {
	s, err := NewSRAM(size, DefaultRAMFill)
	if err != nil {
		panic(err)
	}
	return s
}
