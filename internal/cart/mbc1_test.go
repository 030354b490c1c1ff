package cart

import "testing"

func TestMBC1_ROMBanking(t *testing.T) {
	m := NewMBC1(newTestROM(64), nil)

	if got := m.ReadROM(0x4000); got != 1 {
		t.Fatalf("power-on bank got %d want 1", got)
	}

	for _, bank := range []byte{1, 2, 3, 0x1F} {
		m.WriteROM(0x2000, bank)
		if got := m.ReadROM(0x4000); got != bank {
			t.Errorf("select %d: read %d", bank, got)
		}
		if got := m.ReadROM(0x0000); got != 0 {
			t.Errorf("select %d: fixed window read %d", bank, got)
		}
	}

	// Only the low five bits reach the register.
	m.WriteROM(0x3FFF, 0xE2)
	if got := m.ROMBank(); got != 2 {
		t.Fatalf("masked select got bank %d want 2", got)
	}

	// Upper bits come from the secondary register.
	m.WriteROM(0x2000, 0x05)
	m.WriteROM(0x4000, 0x01)
	if got := m.ReadROM(0x4000); got != 0x25 {
		t.Fatalf("upper bits: got bank %d want 0x25", got)
	}
}

func TestMBC1_BankZeroAliasing(t *testing.T) {
	m := NewMBC1(newTestROM(128), nil)

	tests := []struct {
		upper byte
		want  int
	}{
		{0, 0x01},
		{1, 0x21},
		{2, 0x41},
		{3, 0x61},
	}
	for _, tt := range tests {
		m.WriteROM(0x4000, tt.upper)
		m.WriteROM(0x2000, 0x00)
		if got := m.ROMBank(); got != tt.want {
			t.Errorf("bank 0x%02x aliased to 0x%02x, want 0x%02x", int(tt.upper)<<5, got, tt.want)
		}
		if got := m.ReadROM(0x4000); int(got) != tt.want {
			t.Errorf("read through alias got %d want %d", got, tt.want)
		}
	}
}

func TestMBC1_BankWrapsToROMSize(t *testing.T) {
	m := NewMBC1(newTestROM(4), nil)
	m.WriteROM(0x2000, 0x06)
	if got := m.ROMBank(); got != 2 {
		t.Fatalf("bank 6 on a 4-bank ROM got %d want 2", got)
	}
	if got := m.ReadROM(0x4000); got != 2 {
		t.Fatalf("read got %d want 2", got)
	}
}

func TestMBC1_RAMGating(t *testing.T) {
	m := NewMBC1(newTestROM(4), newTestSRAM(RAMBankSize))

	m.WriteRAM(0xA000, 0x55)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Fatalf("disabled RAM read got %#02x", got)
	}

	m.WriteROM(0x0000, 0x0A)
	if !m.RAMEnabled() {
		t.Fatalf("0x0A did not enable RAM")
	}
	if got := m.ReadRAM(0xA000); got != DefaultRAMFill {
		t.Fatalf("disabled write was stored: %#02x", got)
	}
	m.WriteRAM(0xA000, 0x55)
	if got := m.ReadRAM(0xA000); got != 0x55 {
		t.Fatalf("enabled RAM read got %#02x", got)
	}

	// Only the low nibble counts.
	m.WriteROM(0x1FFF, 0xFA)
	if !m.RAMEnabled() {
		t.Fatalf("0xFA should enable RAM")
	}
	m.WriteROM(0x1000, 0x0B)
	if m.RAMEnabled() {
		t.Fatalf("0x0B should disable RAM")
	}
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Fatalf("read after disable got %#02x", got)
	}
}

func TestMBC1_NoRAM(t *testing.T) {
	m := NewMBC1(newTestROM(4), nil)
	m.WriteROM(0x0000, 0x0A)
	m.WriteRAM(0xA000, 0x11)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Fatalf("got %#02x want open bus", got)
	}
}

func TestMBC1_RAMBankingMode(t *testing.T) {
	ram := newTestSRAM(4 * RAMBankSize)
	m := NewMBC1(newTestROM(128), ram)
	m.WriteROM(0x0000, 0x0A)

	// ROM mode: RAM is pinned to bank 0 whatever the secondary register holds.
	m.WriteROM(0x4000, 0x02)
	if m.RAMBank() != 0 {
		t.Fatalf("ROM mode RAM bank got %d", m.RAMBank())
	}
	m.WriteRAM(0xA000, 0x10)
	if ram.ReadBank(0, 0) != 0x10 {
		t.Fatalf("ROM mode write did not land in bank 0")
	}

	// RAM mode: the register selects the RAM bank and the fixed window.
	m.WriteROM(0x6000, 0x01)
	if !m.BankingMode() || m.RAMBank() != 2 {
		t.Fatalf("RAM mode: mode=%t bank=%d", m.BankingMode(), m.RAMBank())
	}
	m.WriteRAM(0xA000, 0x22)
	if ram.ReadBank(2, 0) != 0x22 || ram.ReadBank(0, 0) != 0x10 {
		t.Fatalf("RAM mode write landed in the wrong bank")
	}
	if got := m.ReadROM(0x0000); got != 0x40 {
		t.Fatalf("fixed window in RAM mode got bank %d want 0x40", got)
	}

	m.WriteROM(0x6000, 0x00)
	if got := m.ReadROM(0x0000); got != 0 {
		t.Fatalf("fixed window back in ROM mode got bank %d", got)
	}
	if got := m.ReadRAM(0xA000); got != 0x10 {
		t.Fatalf("ROM mode read got %#02x want bank 0 content", got)
	}
}

func TestMBC1_LowWindowWrapsOnSmallROM(t *testing.T) {
	m := NewMBC1(newTestROM(32), nil)
	m.WriteROM(0x4000, 0x01)
	m.WriteROM(0x6000, 0x01)
	// Bank 0x20 does not exist on a 32-bank ROM and wraps to bank 0.
	if got := m.ReadROM(0x0000); got != 0 {
		t.Fatalf("got bank %d want 0", got)
	}
}

func TestMBC1_Reset(t *testing.T) {
	ram := newTestSRAM(4 * RAMBankSize)
	m := NewMBC1(newTestROM(64), ram)

	m.WriteROM(0x0000, 0x0A)
	m.WriteROM(0x2000, 0x07)
	m.WriteROM(0x4000, 0x03)
	m.WriteROM(0x6000, 0x01)
	m.WriteRAM(0xA000, 0x99)

	m.Reset()
	if m.ROMBank() != 1 || m.RAMBank() != 0 || m.RAMEnabled() || m.BankingMode() {
		t.Fatalf("reset state: rom=%d ram=%d enabled=%t mode=%t",
			m.ROMBank(), m.RAMBank(), m.RAMEnabled(), m.BankingMode())
	}
	if ram.Enabled() || ram.Bank() != 0 {
		t.Fatalf("RAM store not reset")
	}
	if ram.ReadBank(3, 0) != 0x99 {
		t.Fatalf("reset lost RAM contents")
	}
}
