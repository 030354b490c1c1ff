package cart

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

// Controller is the memory bank controller chip. Addresses are full CPU bus
// addresses; the chip decodes its own windows. Reads of unmapped storage return
// 0xFF and ignored writes are dropped, nothing here fails at runtime.
type Controller interface {
	// ReadROM returns a byte from 0x0000-0x7FFF.
	ReadROM(addr uint16) byte
	// ReadRAM returns a byte from 0xA000-0xBFFF.
	ReadRAM(addr uint16) byte
	// WriteROM drives the control registers mapped over 0x0000-0x7FFF.
	WriteROM(addr uint16, val byte)
	// WriteRAM stores a byte into 0xA000-0xBFFF.
	WriteRAM(addr uint16, val byte)

	// Reset restores power-on register values and resets owned RAM.
	Reset()
	// Tick advances time-based chip state.
	Tick(cycles int)

	// ROMBank and RAMBank report the banks the next access will use.
	ROMBank() int
	RAMBank() int
	RAMEnabled() bool

	Name() string
}

// newController builds the chip for t. Every family has a case so that adding
// a chip is a matter of moving its tag out of the unsupported list.
func newController(t ControllerType, rom *ROM, ram *SRAM) (Controller, error) {
	switch t.Family {
	case FamilyNone:
		return NewROMOnly(rom, ram), nil
	case FamilyMBC1:
		return NewMBC1(rom, ram), nil
	case FamilyMBC3:
		if t.HasClock() {
			log.ModMBC.Warnf("%s: clock registers are not emulated, they read as open bus", t.Name)
		}
		return NewMBC3(rom, ram), nil
	case FamilyMBC5:
		return NewMBC5(rom, ram, t.HasRumble()), nil
	case FamilyMBC2, FamilyMMM01, FamilyMBC6, FamilyMBC7,
		FamilyCamera, FamilyTAMA5, FamilyHuC3, FamilyHuC1:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedController, t)
	default:
		return nil, fmt.Errorf("%w: unknown type code 0x%02X", ErrUnsupportedController, t.Code)
	}
}

func ramEnableValue(val byte) bool {
	return val&0x0F == 0x0A
}
