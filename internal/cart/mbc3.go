package cart

import "github.com/FabianRolfMatthiasNoll/gbcart/internal/log"

// MBC3 implements ROM/RAM banking (RTC not implemented here).
// Banking behavior:
// - 0000-1FFF: RAM enable (0x0A in low nibble)
// - 2000-3FFF: ROM bank low 7 bits (0 maps to 1)
// - 4000-5FFF: RAM bank (0-3) or RTC reg select (08-0C)
// - 6000-7FFF: Latch clock (ignored without RTC)
// - A000-BFFF: External RAM, or open bus while an RTC register is selected
type MBC3 struct {
	rom *ROM
	ram *SRAM

	ramEnabled bool
	romBank    byte // 7 bits (1..127)
	ramBank    byte // 0..3
	rtcSelect  byte // 0x08..0x0C when a clock register is mapped, else 0
}

func NewMBC3(rom *ROM, ram *SRAM) *MBC3 {
	m := &MBC3{rom: rom, ram: ram}
	m.Reset()
	return m
}

func (m *MBC3) ReadROM(addr uint16) byte {
	if addr < romBank0End {
		return m.rom.ReadBank(0, int(addr))
	}
	return m.rom.ReadBank(m.ROMBank(), int(addr-romBank0End))
}

func (m *MBC3) ReadRAM(addr uint16) byte {
	if !m.ramEnabled || m.ram == nil || m.rtcSelect != 0 {
		return 0xFF
	}
	m.ram.SelectBank(int(m.ramBank))
	return m.ram.Read(addr)
}

func (m *MBC3) WriteROM(addr uint16, val byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = ramEnableValue(val)
		if m.ram != nil {
			m.ram.SetEnabled(m.ramEnabled)
		}
	case addr < 0x4000:
		m.romBank = val & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
		log.ModMBC.WithField("bank", m.romBank).Debug("MBC3 rom bank")
	case addr < 0x6000:
		switch {
		case val <= 0x03:
			m.ramBank = val
			m.rtcSelect = 0
		case val >= 0x08 && val <= 0x0C:
			m.rtcSelect = val
		}
	case addr < 0x8000:
		// Latch clock: ignored without RTC
	}
}

func (m *MBC3) WriteRAM(addr uint16, val byte) {
	if !m.ramEnabled || m.ram == nil || m.rtcSelect != 0 {
		return
	}
	m.ram.SelectBank(int(m.ramBank))
	m.ram.Write(addr, val)
}

func (m *MBC3) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.rtcSelect = 0
	m.ramEnabled = false
	if m.ram != nil {
		m.ram.Reset()
	}
}

func (m *MBC3) Tick(cycles int) {}

func (m *MBC3) ROMBank() int     { return int(m.romBank) % m.rom.BankCount() }
func (m *MBC3) RAMBank() int     { return int(m.ramBank) }
func (m *MBC3) RAMEnabled() bool { return m.ramEnabled }
func (m *MBC3) Name() string     { return "MBC3" }
