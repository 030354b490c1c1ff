package bus

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
)

// makeROM builds a minimal image with a valid header for cartType.
func makeROM(cartType byte, banks int, ramCode byte) []byte {
	rom := make([]byte, banks*cart.ROMBankSize)
	for bank := 0; bank < banks; bank++ {
		rom[bank*cart.ROMBankSize] = byte(bank)
	}
	copy(rom[cart.LogoAddr:], cart.Logo[:])
	copy(rom[cart.TitleAddr:], "BUSTEST")
	rom[cart.CartTypeAddr] = cartType
	rom[cart.RAMSizeAddr] = ramCode
	rom[cart.HeaderChecksumAddr] = cart.HeaderChecksum(rom)
	return rom
}

func newCartBus(t *testing.T, cartType byte, banks int, ramCode byte) (*Bus, *cart.Cartridge) {
	t.Helper()
	c, err := cart.New(makeROM(cartType, banks, ramCode))
	if err != nil {
		t.Fatalf("cart.New: %v", err)
	}
	return New(c), c
}

func TestBus_ROMAndRAM(t *testing.T) {
	b, _ := newCartBus(t, 0x00, 2, 0x00)

	if got := b.Read(uint16(cart.CartTypeAddr)); got != 0x00 {
		t.Fatalf("ROM read got %02x, want 00", got)
	}
	if got := b.Read(0x4000); got != 0x01 {
		t.Fatalf("ROM bank 1 read got %02x, want 01", got)
	}

	// RAM write+read
	b.Write(0xC000, 0x99)
	if got := b.Read(0xC000); got != 0x99 {
		t.Fatalf("RAM read got %02x, want 99", got)
	}
	b.Write(0xDFFF, 0x98)
	if got := b.Read(0xDFFF); got != 0x98 {
		t.Fatalf("last WRAM byte got %02x, want 98", got)
	}

	// Echo RAM mirrors C000–DDFF
	b.Write(0xE000, 0x55)
	if got := b.Read(0xC000); got != 0x55 {
		t.Fatalf("Echo write did not mirror to WRAM: got %02x", got)
	}
	b.Write(0xDDFF, 0x44)
	if got := b.Read(0xFDFF); got != 0x44 {
		t.Fatalf("Echo read got %02x, want 44", got)
	}

	// HRAM read/write
	b.Write(0xFF80, 0xAB)
	if got := b.Read(0xFF80); got != 0xAB {
		t.Fatalf("HRAM read got %02x, want AB", got)
	}

	// ROM-only cart should return 0xFF for A000–BFFF
	if got := b.Read(0xA123); got != 0xFF {
		t.Fatalf("Ext RAM (ROM-only) got %02x, want FF", got)
	}

	// Nothing lives in video or IO space here.
	for _, addr := range []uint16{0x8000, 0xFE00, 0xFF00, 0xFFFF} {
		b.Write(addr, 0x12)
		if got := b.Read(addr); got != 0xFF {
			t.Errorf("unmapped %04x got %02x, want FF", addr, got)
		}
	}
}

func TestBus_ROMWritesReachController(t *testing.T) {
	b, c := newCartBus(t, 0x03, 8, 0x03)

	b.Write(0x2000, 0x05)
	if got := b.Read(0x4000); got != 0x05 {
		t.Fatalf("bank switch through bus got %02x, want 05", got)
	}
	if c.Controller().ROMBank() != 5 {
		t.Fatalf("controller bank got %d", c.Controller().ROMBank())
	}

	b.Write(0x0000, 0x0A)
	b.WriteWord(0xA000, 0xBEEF)
	if got := b.ReadWord(0xA000); got != 0xBEEF {
		t.Fatalf("cart RAM word got %04x, want BEEF", got)
	}
}

func TestBus_Reset(t *testing.T) {
	b, c := newCartBus(t, 0x01, 4, 0x00)
	b.Write(0x2000, 0x03)
	b.Write(0xC010, 0x77)
	b.Write(0xFF90, 0x66)

	b.Reset()
	if c.Controller().ROMBank() != 1 {
		t.Fatalf("cartridge not reset: bank %d", c.Controller().ROMBank())
	}
	if b.Read(0xC010) != 0 || b.Read(0xFF90) != 0 {
		t.Fatalf("internal RAM not cleared")
	}
}

type tickCounter struct {
	ticks int
}

func (d *tickCounter) Accepts(addr uint16) bool    { return addr >= 0xFF00 && addr < 0xFF80 }
func (d *tickCounter) Read(addr uint16) byte       { return byte(d.ticks) }
func (d *tickCounter) Write(addr uint16, val byte) { d.ticks = int(val) }
func (d *tickCounter) Tick(cycles int)             { d.ticks += cycles }

func TestBus_AttachAndTick(t *testing.T) {
	b, _ := newCartBus(t, 0x00, 2, 0x00)
	io := &tickCounter{}
	b.Attach(io)

	b.Tick(4)
	b.Tick(8)
	if got := b.Read(0xFF04); got != 12 {
		t.Fatalf("device ticks got %d, want 12", got)
	}
	b.Write(0xFF05, 0x00)
	if io.ticks != 0 {
		t.Fatalf("write did not reach attached device")
	}
	if got := b.Read(0xFF80); got != 0x00 {
		t.Fatalf("HRAM shadowed by device: %02x", got)
	}
}
