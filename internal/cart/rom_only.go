package cart

import "github.com/FabianRolfMatthiasNoll/gbcart/internal/log"

// ROMOnly implements a cartridge without a controller chip. ROM is wired
// straight to 0x0000-0x7FFF and RAM, if fitted, straight to 0xA000-0xBFFF.
type ROMOnly struct {
	rom *ROM
	ram *SRAM
}

func NewROMOnly(rom *ROM, ram *SRAM) *ROMOnly {
	if rom.Size() != MinROMSize {
		log.ModMBC.Warnf("rom-only cartridge with %d bytes of ROM, only the first %d are reachable", rom.Size(), MinROMSize)
	}
	c := &ROMOnly{rom: rom, ram: ram}
	if ram != nil {
		c.wireRAM()
	}
	return c
}

// wireRAM asserts the fixed wiring: there is no enable register and no bank
// selector, so RAM stays enabled on bank 0 even after a store reset.
func (c *ROMOnly) wireRAM() {
	c.ram.SetEnabled(true)
	c.ram.SelectBank(0)
}

func (c *ROMOnly) ReadROM(addr uint16) byte {
	return c.rom.Read(int(addr))
}

func (c *ROMOnly) ReadRAM(addr uint16) byte {
	if c.ram == nil {
		return 0xFF
	}
	c.wireRAM()
	return c.ram.Read(addr)
}

// WriteROM is ignored: there are no control registers.
func (c *ROMOnly) WriteROM(addr uint16, val byte) {}

func (c *ROMOnly) WriteRAM(addr uint16, val byte) {
	if c.ram != nil {
		c.wireRAM()
		c.ram.Write(addr, val)
	}
}

func (c *ROMOnly) Reset() {
	if c.ram != nil {
		c.ram.Reset()
		c.wireRAM()
	}
}

func (c *ROMOnly) Tick(cycles int) {}

func (c *ROMOnly) ROMBank() int     { return 0 }
func (c *ROMOnly) RAMBank() int     { return 0 }
func (c *ROMOnly) RAMEnabled() bool { return c.ram != nil }
func (c *ROMOnly) Name() string     { return "None" }
