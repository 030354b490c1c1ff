package cart

import "github.com/FabianRolfMatthiasNoll/gbcart/internal/log"

// MBC1 implements MBC1 ROM/RAM banking with its dual-purpose banking mode.
//
// Registers:
//   - 0000-1FFF: RAM enable (0x0A in low nibble)
//   - 2000-3FFF: ROM bank low 5 bits (0 maps to 1)
//   - 4000-5FFF: 2-bit RAM bank, also ROM bank bits 5-6
//   - 6000-7FFF: banking mode (0: ROM, 1: RAM)
type MBC1 struct {
	rom *ROM
	ram *SRAM

	romBank     byte // 1..31
	ramBank     byte // 0..3
	ramEnabled  bool
	bankingMode bool // false: ROM mode, true: RAM mode
}

func NewMBC1(rom *ROM, ram *SRAM) *MBC1 {
	m := &MBC1{rom: rom, ram: ram}
	m.Reset()
	return m
}

func (m *MBC1) ReadROM(addr uint16) byte {
	if addr < romBank0End {
		return m.rom.ReadBank(m.lowBank(), int(addr))
	}
	return m.rom.ReadBank(m.highBank(), int(addr-romBank0End))
}

func (m *MBC1) ReadRAM(addr uint16) byte {
	if !m.ramEnabled || m.ram == nil {
		return 0xFF
	}
	m.ram.SelectBank(m.RAMBank())
	return m.ram.Read(addr)
}

func (m *MBC1) WriteROM(addr uint16, val byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = ramEnableValue(val)
		if m.ram != nil {
			m.ram.SetEnabled(m.ramEnabled)
		}
	case addr < 0x4000:
		m.romBank = val & 0x1F
		if m.romBank == 0 {
			m.romBank = 1
		}
		log.ModMBC.WithField("bank", m.romBank).Debug("MBC1 rom bank")
	case addr < 0x6000:
		m.ramBank = val & 0x03
		log.ModMBC.WithField("bank", m.ramBank).Debug("MBC1 ram/upper bank")
	case addr < 0x8000:
		m.bankingMode = val&0x01 != 0
		log.ModMBC.WithField("ram_mode", m.bankingMode).Debug("MBC1 banking mode")
	}
}

func (m *MBC1) WriteRAM(addr uint16, val byte) {
	if !m.ramEnabled || m.ram == nil {
		return
	}
	m.ram.SelectBank(m.RAMBank())
	m.ram.Write(addr, val)
}

func (m *MBC1) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.ramEnabled = false
	m.bankingMode = false
	if m.ram != nil {
		m.ram.Reset()
	}
}

func (m *MBC1) Tick(cycles int) {}

// lowBank is the bank mapped at 0000-3FFF. In RAM mode the upper bank bits
// reach this window too.
func (m *MBC1) lowBank() int {
	if !m.bankingMode {
		return 0
	}
	return int(m.ramBank<<5) % m.rom.BankCount()
}

// highBank is the bank mapped at 4000-7FFF. Banks 0x00, 0x20, 0x40 and 0x60
// cannot be selected here, they alias to the following bank.
func (m *MBC1) highBank() int {
	bank := int(m.romBank) | int(m.ramBank)<<5
	if bank&0x1F == 0 {
		bank++
	}
	return bank % m.rom.BankCount()
}

func (m *MBC1) ROMBank() int { return m.highBank() }

func (m *MBC1) RAMBank() int {
	if m.bankingMode {
		return int(m.ramBank)
	}
	return 0
}

func (m *MBC1) RAMEnabled() bool  { return m.ramEnabled }
func (m *MBC1) BankingMode() bool { return m.bankingMode }
func (m *MBC1) Name() string      { return "MBC1" }
