package cart

import (
	"fmt"
)

// ROM is the read-only program storage, addressed linearly or as 16 KiB banks.
// Out of range accesses read as open bus (0xFF).
type ROM struct {
	data  []byte
	banks int
}

// NewROM copies data into a new ROM. The length must be a multiple of the
// bank size and hold at least two banks.
func NewROM(data []byte) (*ROM, error) {
	if len(data) == 0 || len(data)%ROMBankSize != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of %d", ErrInvalidROMLayout, len(data), ROMBankSize)
	}
	if len(data) < MinROMSize {
		return nil, fmt.Errorf("%w: size %d is below the %d bytes minimum", ErrInvalidROMLayout, len(data), MinROMSize)
	}

	r := &ROM{
		data:  make([]byte, len(data)),
		banks: len(data) / ROMBankSize,
	}
	copy(r.data, data)
	return r, nil
}

func (r *ROM) Size() int      { return len(r.data) }
func (r *ROM) BankCount() int { return r.banks }
func (r *ROM) BankSize() int  { return ROMBankSize }

// Read returns the byte at a physical offset.
func (r *ROM) Read(addr int) byte {
	if addr < 0 || addr >= len(r.data) {
		return 0xFF
	}
	return r.data[addr]
}

// ReadBank returns the byte at off within bank.
func (r *ROM) ReadBank(bank, off int) byte {
	if bank < 0 || bank >= r.banks || off < 0 || off >= ROMBankSize {
		return 0xFF
	}
	return r.data[bank*ROMBankSize+off]
}

// ReadWord returns the little-endian 16-bit value at addr.
func (r *ROM) ReadWord(addr int) uint16 {
	return uint16(r.Read(addr)) | uint16(r.Read(addr+1))<<8
}

// BankStart returns the physical offset of the first byte of bank.
func (r *ROM) BankStart(bank int) (int, bool) {
	if bank < 0 || bank >= r.banks {
		return 0, false
	}
	return bank * ROMBankSize, true
}

// Bank returns a copy of the whole bank, or nil if bank does not exist.
func (r *ROM) Bank(bank int) []byte {
	start, ok := r.BankStart(bank)
	if !ok {
		return nil
	}
	return append([]byte(nil), r.data[start:start+ROMBankSize]...)
}

func (r *ROM) String() string {
	return fmt.Sprintf("rom{size=%d, banks=%d}", len(r.data), r.banks)
}
