package cart

import (
	"fmt"
)

// DefaultRAMFill is the value battery RAM holds right after construction.
// Real chips power up with unspecified contents; any fixed value is a
// modeling choice, which is why Config lets callers override it.
const DefaultRAMFill = 0xFF

// SRAM is the battery-backed external RAM, seen through an 8 KiB bus window
// that an enable latch gates and a bank selector positions.
type SRAM struct {
	data    []byte
	banks   int
	bank    int
	enabled bool
	fill    byte
}

// NewSRAM allocates size bytes of RAM filled with fill. size must be a
// positive power of two.
func NewSRAM(size int, fill byte) (*SRAM, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: size %d is not a positive power of two", ErrInvalidRAMLayout, size)
	}

	s := &SRAM{
		data:  make([]byte, size),
		banks: size / RAMBankSize,
		fill:  fill,
	}
	s.Fill(fill)
	return s, nil
}

func (s *SRAM) Size() int      { return len(s.data) }
func (s *SRAM) BankCount() int { return s.banks }
func (s *SRAM) Bank() int      { return s.bank }
func (s *SRAM) Enabled() bool  { return s.enabled }

func (s *SRAM) SetEnabled(enabled bool) { s.enabled = enabled }

// SelectBank positions the bus window on bank n, wrapped to the bank count.
// RAM smaller than one bank always stays on bank 0.
func (s *SRAM) SelectBank(n int) {
	if s.banks == 0 {
		s.bank = 0
		return
	}
	s.bank = n % s.banks
	if s.bank < 0 {
		s.bank += s.banks
	}
}

func (s *SRAM) offset(addr uint16) (int, bool) {
	off := s.bank*RAMBankSize + int(addr&0x1FFF)
	return off, off < len(s.data)
}

// Read returns the byte at the bus-relative addr in the selected bank.
// Disabled RAM and offsets past the end read as open bus.
func (s *SRAM) Read(addr uint16) byte {
	if !s.enabled {
		return 0xFF
	}
	off, ok := s.offset(addr)
	if !ok {
		return 0xFF
	}
	return s.data[off]
}

// Write stores val at the bus-relative addr in the selected bank. Writes
// while disabled or past the end are dropped.
func (s *SRAM) Write(addr uint16, val byte) {
	if !s.enabled {
		return
	}
	off, ok := s.offset(addr)
	if !ok {
		return
	}
	s.data[off] = val
}

// ReadBank reads bank/off directly, ignoring the enable latch and selector.
func (s *SRAM) ReadBank(bank, off int) byte {
	p, ok := s.physical(bank, off)
	if !ok {
		return 0xFF
	}
	return s.data[p]
}

// WriteBank writes bank/off directly, ignoring the enable latch and selector.
func (s *SRAM) WriteBank(bank, off int, val byte) {
	if p, ok := s.physical(bank, off); ok {
		s.data[p] = val
	}
}

func (s *SRAM) physical(bank, off int) (int, bool) {
	if bank < 0 || off < 0 || off >= RAMBankSize {
		return 0, false
	}
	p := bank*RAMBankSize + off
	return p, p < len(s.data)
}

// Reset deselects all banks and disables access. Contents are kept.
func (s *SRAM) Reset() {
	s.bank = 0
	s.enabled = false
}

// Fill overwrites the whole RAM with b.
func (s *SRAM) Fill(b byte) {
	for i := range s.data {
		s.data[i] = b
	}
}

// Dirty reports whether any byte differs from the construction fill value.
func (s *SRAM) Dirty() bool {
	for _, b := range s.data {
		if b != s.fill {
			return true
		}
	}
	return false
}

func (s *SRAM) String() string {
	return fmt.Sprintf("sram{size=%d, banks=%d, bank=%d, enabled=%t}", len(s.data), s.banks, s.bank, s.enabled)
}
