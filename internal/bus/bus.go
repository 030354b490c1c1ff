package bus

import (
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

// Device is anything mapped onto the bus. Accepts decides which addresses the
// device claims; the first attached device that accepts an address wins.
type Device interface {
	Accepts(addr uint16) bool
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// Ticker is implemented by devices that keep time-based state.
type Ticker interface {
	Tick(cycles int)
}

// Resetter is implemented by devices with a power-on state.
type Resetter interface {
	Reset()
}

type Bus struct {
	devices []Device

	wram [0x2000]byte // 8KB internal RAM
	hram [0x7F]byte
}

func New(devices ...Device) *Bus {
	return &Bus{devices: devices}
}

// Attach maps another device. Devices attached later have lower priority.
func (b *Bus) Attach(d Device) {
	b.devices = append(b.devices, d)
}

func (b *Bus) device(addr uint16) Device {
	for _, d := range b.devices {
		if d.Accepts(addr) {
			return d
		}
	}
	return nil
}

func (b *Bus) Read(addr uint16) byte {
	if d := b.device(addr); d != nil {
		return d.Read(addr)
	}
	switch {
	case addr >= 0xC000 && addr < 0xE000: // Internal RAM
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr < 0xFE00: // Echo of C000-DDFF
		return b.wram[addr-0xE000]
	case addr >= 0xFF80 && addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return 0xFF // unmapped
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	if d := b.device(addr); d != nil {
		d.Write(addr, value)
		return
	}
	switch {
	case addr >= 0xC000 && addr < 0xE000:
		b.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr < 0xFE00:
		b.wram[addr-0xE000] = value
	case addr >= 0xFF80 && addr < 0xFFFF:
		b.hram[addr-0xFF80] = value
	default:
		log.ModBus.WithField("addr", addr).Debugf("write 0x%02X to unmapped address", value)
	}
}

// ReadWord reads a little-endian 16-bit value.
func (b *Bus) ReadWord(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// WriteWord writes a little-endian 16-bit value.
func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

// Tick advances every device that keeps time.
func (b *Bus) Tick(cycles int) {
	for _, d := range b.devices {
		if t, ok := d.(Ticker); ok {
			t.Tick(cycles)
		}
	}
}

// Reset clears internal RAM and resets every attached device.
func (b *Bus) Reset() {
	b.wram = [0x2000]byte{}
	b.hram = [0x7F]byte{}
	for _, d := range b.devices {
		if r, ok := d.(Resetter); ok {
			r.Reset()
		}
	}
}
