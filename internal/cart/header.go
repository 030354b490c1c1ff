package cart

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Header is the metadata block at 0x0100-0x014F of every ROM image. It is a
// plain value: parsing the same bytes twice yields equal headers.
type Header struct {
	EntryPoint       [4]byte
	Logo             [logoLen]byte
	Title            string
	ManufacturerCode string // color carts only
	NewLicenseeCode  string
	Color            ColorSupport
	Super            bool
	Type             ControllerType
	ROMSize          ROMSize
	RAMSize          RAMSize
	Region           Region
	OldLicenseeCode  byte
	Version          byte
	HeaderChecksum   byte
	GlobalChecksum   uint16

	computedChecksum byte
}

// ParseHeader decodes the header of rom. It only fails when rom is too short
// to hold the header; use Validate to check the logo and checksum.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < HeaderEnd+1 {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformedROM, len(rom), HeaderEnd+1)
	}

	var h Header
	copy(h.EntryPoint[:], rom[EntryPointAddr:])
	copy(h.Logo[:], rom[LogoAddr:])

	h.Color = decodeColorSupport(rom[ColorFlagAddr])
	if h.Color != ColorNone {
		// Newer carts carve the manufacturer code and the color flag out of
		// the title area.
		h.Title = extractString(rom[TitleAddr : TitleAddr+colorTitleLen])
		h.ManufacturerCode = extractString(rom[ManufacturerAddr : ManufacturerAddr+manufacturerLen])
	} else {
		h.Title = extractString(rom[TitleAddr : TitleAddr+titleLen])
	}

	h.NewLicenseeCode = extractString(rom[NewLicenseeAddr : NewLicenseeAddr+2])
	h.Super = rom[SuperFlagAddr] == 0x03
	h.Type, _ = LookupControllerType(rom[CartTypeAddr])
	h.ROMSize = decodeROMSize(rom[ROMSizeAddr])
	h.RAMSize = decodeRAMSize(rom[RAMSizeAddr])
	h.Region = decodeRegion(rom[DestinationAddr])
	h.OldLicenseeCode = rom[OldLicenseeAddr]
	h.Version = rom[VersionAddr]
	h.HeaderChecksum = rom[HeaderChecksumAddr]
	h.GlobalChecksum = binary.BigEndian.Uint16(rom[GlobalChecksumAddr:])
	h.computedChecksum = HeaderChecksum(rom)
	return h, nil
}

// HeaderChecksum computes the header checksum of rom over the title through
// the version byte. rom must hold at least the header.
func HeaderChecksum(rom []byte) byte {
	var sum byte
	for addr := TitleAddr; addr <= VersionAddr; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum
}

// GlobalChecksum sums every byte of rom except the two global checksum bytes.
// The hardware never verifies it.
func GlobalChecksum(rom []byte) uint16 {
	var sum uint16
	for i, b := range rom {
		if i == GlobalChecksumAddr || i == GlobalChecksumAddr+1 {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

func (h Header) ChecksumValid() bool { return h.computedChecksum == h.HeaderChecksum }

func (h Header) LogoValid() bool { return h.Logo == Logo }

// Validate reports whether the header would be accepted by the boot
// sequence: the checksum must match and the logo must be intact.
func (h Header) Validate() error {
	if !h.ChecksumValid() {
		return fmt.Errorf("%w: computed 0x%02x, stored 0x%02x", ErrHeaderChecksum, h.computedChecksum, h.HeaderChecksum)
	}
	if !h.LogoValid() {
		for i := range h.Logo {
			if h.Logo[i] != Logo[i] {
				return fmt.Errorf("%w: first mismatch at 0x%04x", ErrInvalidLogo, LogoAddr+i)
			}
		}
	}
	return nil
}

func (h Header) HasBattery() bool { return h.Type.HasBattery() }
func (h Header) HasClock() bool   { return h.Type.HasClock() }
func (h Header) HasRumble() bool  { return h.Type.HasRumble() }

// HasRAM reports whether the cartridge carries external RAM. The type code
// and the RAM size code can disagree; either one is enough.
func (h Header) HasRAM() bool { return h.Type.HasRAM() || h.RAMSize.Bytes > 0 }

func (h Header) SupportsColor() bool    { return h.Color != ColorNone }
func (h Header) IsColorExclusive() bool { return h.Color == ColorExclusive }
func (h Header) SupportsSuper() bool    { return h.Super }

// LicenseeCode returns the publisher code: the two-character new code when the
// legacy byte is 0x33, else the legacy byte in hex.
func (h Header) LicenseeCode() string {
	if h.OldLicenseeCode == 0x33 {
		return h.NewLicenseeCode
	}
	return fmt.Sprintf("%02X", h.OldLicenseeCode)
}

func (h Header) String() string {
	return fmt.Sprintf("header{title=%q, type=%s, rom=%dKiB, ram=%dKiB, color=%s, super=%t, region=%s, version=%d}",
		h.Title, h.Type, h.ROMSize.Bytes/1024, h.RAMSize.Bytes/1024, h.Color, h.Super, h.Region, h.Version)
}

// extractString reads a fixed-width text field: it stops at the first NUL,
// drops non-printable bytes and trims surrounding spaces.
func extractString(field []byte) string {
	var sb strings.Builder
	for _, b := range field {
		if b == 0 {
			break
		}
		if b >= 0x20 && b <= 0x7E {
			sb.WriteByte(b)
		}
	}
	return strings.TrimSpace(sb.String())
}
