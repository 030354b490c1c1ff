package cart

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

// Config contains settings that affect cartridge construction.
type Config struct {
	RAMFill byte // initial content of battery RAM
}

func DefaultConfig() Config {
	return Config{RAMFill: DefaultRAMFill}
}

// Cartridge is the bus-facing side of a cartridge: it claims 0x0000-0x7FFF and
// 0xA000-0xBFFF and forwards every access in those windows to its controller.
//
// A Cartridge is not safe for concurrent use; it expects to be driven by a
// single emulation loop.
type Cartridge struct {
	header Header
	rom    *ROM
	ram    *SRAM // nil when no external RAM is fitted
	mbc    Controller
}

// New builds a cartridge from a raw image using DefaultConfig.
func New(image []byte) (*Cartridge, error) {
	return NewWithConfig(image, DefaultConfig())
}

// NewWithConfig builds a cartridge from a raw image. It fails if the header is
// truncated or invalid, if the image or RAM geometry is unusable, or if the
// controller chip is not supported.
func NewWithConfig(image []byte, cfg Config) (*Cartridge, error) {
	h, err := ParseHeader(image)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	rom, err := NewROM(image)
	if err != nil {
		return nil, err
	}
	if h.ROMSize.Bytes != rom.Size() {
		log.ModCart.Warnf("header declares %d bytes of ROM, image holds %d", h.ROMSize.Bytes, rom.Size())
	}
	if sum := GlobalChecksum(image); sum != h.GlobalChecksum {
		log.ModCart.Warnf("global checksum mismatch: computed 0x%04x, stored 0x%04x", sum, h.GlobalChecksum)
	}

	var ram *SRAM
	if h.HasRAM() && h.RAMSize.Bytes > 0 {
		ram, err = NewSRAM(h.RAMSize.Bytes, cfg.RAMFill)
		if err != nil {
			return nil, err
		}
	}

	mbc, err := newController(h.Type, rom, ram)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{header: h, rom: rom, ram: ram, mbc: mbc}
	log.ModCart.WithFields(log.Fields{
		"title": h.Title,
		"type":  h.Type.Name,
		"banks": rom.BankCount(),
		"ram":   h.RAMSize.Bytes,
	}).Info("cartridge loaded")
	return c, nil
}

// Accepts reports whether addr falls in a window claimed by the cartridge.
func (c *Cartridge) Accepts(addr uint16) bool {
	return addr < ROMWindowEnd || (addr >= RAMWindowStart && addr < RAMWindowEnd)
}

// Read returns 0xFF for addresses the cartridge does not claim.
func (c *Cartridge) Read(addr uint16) byte {
	switch {
	case addr < ROMWindowEnd:
		return c.mbc.ReadROM(addr)
	case addr >= RAMWindowStart && addr < RAMWindowEnd:
		return c.mbc.ReadRAM(addr)
	default:
		return 0xFF
	}
}

// Write ignores addresses the cartridge does not claim.
func (c *Cartridge) Write(addr uint16, val byte) {
	switch {
	case addr < ROMWindowEnd:
		c.mbc.WriteROM(addr, val)
	case addr >= RAMWindowStart && addr < RAMWindowEnd:
		c.mbc.WriteRAM(addr, val)
	}
}

func (c *Cartridge) Tick(cycles int) {
	c.mbc.Tick(cycles)
}

// Reset resets the controller, then the RAM.
func (c *Cartridge) Reset() {
	c.mbc.Reset()
	if c.ram != nil {
		c.ram.Reset()
	}
}

func (c *Cartridge) Header() Header         { return c.header }
func (c *Cartridge) Title() string          { return c.header.Title }
func (c *Cartridge) Controller() Controller { return c.mbc }
func (c *Cartridge) ROM() *ROM              { return c.rom }

// RAM returns the external RAM, or nil if the cartridge has none.
func (c *Cartridge) RAM() *SRAM { return c.ram }

func (c *Cartridge) String() string {
	return fmt.Sprintf("cartridge{title=%q, mbc=%s, rom=%d KiB, ram=%d KiB}",
		c.header.Title, c.mbc.Name(), c.rom.Size()/1024, c.header.RAMSize.Bytes/1024)
}
