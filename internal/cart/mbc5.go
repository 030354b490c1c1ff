package cart

import "github.com/FabianRolfMatthiasNoll/gbcart/internal/log"

// MBC5 supports up to 8MB ROM and 128KB RAM, simple banking. Unlike the older
// chips, bank 0 can be mapped in the switchable window.
//
// On rumble cartridges bit 3 of the RAM bank register drives the motor and
// only three bits select the RAM bank.
type MBC5 struct {
	rom *ROM
	ram *SRAM

	romBank    uint16 // 9 bits (0..511)
	ramBank    byte   // 0..15
	ramEnabled bool

	rumble   bool
	rumbling bool
}

func NewMBC5(rom *ROM, ram *SRAM, rumble bool) *MBC5 {
	m := &MBC5{rom: rom, ram: ram, rumble: rumble}
	m.Reset()
	return m
}

func (m *MBC5) ReadROM(addr uint16) byte {
	if addr < romBank0End {
		return m.rom.ReadBank(0, int(addr))
	}
	return m.rom.ReadBank(m.ROMBank(), int(addr-romBank0End))
}

func (m *MBC5) ReadRAM(addr uint16) byte {
	if !m.ramEnabled || m.ram == nil {
		return 0xFF
	}
	m.ram.SelectBank(int(m.ramBank))
	return m.ram.Read(addr)
}

func (m *MBC5) WriteROM(addr uint16, val byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = ramEnableValue(val)
		if m.ram != nil {
			m.ram.SetEnabled(m.ramEnabled)
		}
	case addr < 0x3000:
		// low 8 bits of ROM bank
		m.romBank = m.romBank&0x100 | uint16(val)
		log.ModMBC.WithField("bank", m.romBank).Debug("MBC5 rom bank")
	case addr < 0x4000:
		// high bit of ROM bank (bit8)
		m.romBank = m.romBank&0x0FF | uint16(val&0x01)<<8
		log.ModMBC.WithField("bank", m.romBank).Debug("MBC5 rom bank")
	case addr < 0x6000:
		if m.rumble {
			m.rumbling = val&0x08 != 0
			m.ramBank = val & 0x07
		} else {
			m.ramBank = val & 0x0F
		}
	}
}

func (m *MBC5) WriteRAM(addr uint16, val byte) {
	if !m.ramEnabled || m.ram == nil {
		return
	}
	m.ram.SelectBank(int(m.ramBank))
	m.ram.Write(addr, val)
}

func (m *MBC5) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.ramEnabled = false
	m.rumbling = false
	if m.ram != nil {
		m.ram.Reset()
	}
}

func (m *MBC5) Tick(cycles int) {}

func (m *MBC5) ROMBank() int     { return int(m.romBank) % m.rom.BankCount() }
func (m *MBC5) RAMBank() int     { return int(m.ramBank) }
func (m *MBC5) RAMEnabled() bool { return m.ramEnabled }
func (m *MBC5) Name() string     { return "MBC5" }

// Rumbling reports whether the rumble motor is currently driven.
func (m *MBC5) Rumbling() bool { return m.rumbling }
