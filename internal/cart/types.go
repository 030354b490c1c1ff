package cart

import "fmt"

// Family identifies the controller chip soldered on the cartridge.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyNone           // no controller, ROM wired straight to the bus
	FamilyMBC1
	FamilyMBC2
	FamilyMMM01
	FamilyMBC3
	FamilyMBC5
	FamilyMBC6
	FamilyMBC7
	FamilyCamera
	FamilyTAMA5
	FamilyHuC3
	FamilyHuC1
)

var familyNames = [...]string{
	FamilyUnknown: "Unknown",
	FamilyNone:    "None",
	FamilyMBC1:    "MBC1",
	FamilyMBC2:    "MBC2",
	FamilyMMM01:   "MMM01",
	FamilyMBC3:    "MBC3",
	FamilyMBC5:    "MBC5",
	FamilyMBC6:    "MBC6",
	FamilyMBC7:    "MBC7",
	FamilyCamera:  "Camera",
	FamilyTAMA5:   "TAMA5",
	FamilyHuC3:    "HuC3",
	FamilyHuC1:    "HuC1",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return familyNames[FamilyUnknown]
}

// Capability is a set of hardware extras declared by the cartridge type code.
type Capability uint8

const (
	CapRAM Capability = 1 << iota
	CapBattery
	CapClock
	CapRumble
)

// ControllerType is the decoded cartridge type byte (0x0147).
type ControllerType struct {
	Code   byte
	Name   string
	Family Family
	Caps   Capability
}

func (t ControllerType) HasRAM() bool     { return t.Caps&CapRAM != 0 }
func (t ControllerType) HasBattery() bool { return t.Caps&CapBattery != 0 }
func (t ControllerType) HasClock() bool   { return t.Caps&CapClock != 0 }
func (t ControllerType) HasRumble() bool  { return t.Caps&CapRumble != 0 }

func (t ControllerType) String() string {
	return fmt.Sprintf("%s (0x%02X)", t.Name, t.Code)
}

var controllerTypes = map[byte]ControllerType{
	0x00: {0x00, "ROM ONLY", FamilyNone, 0},
	0x01: {0x01, "MBC1", FamilyMBC1, 0},
	0x02: {0x02, "MBC1+RAM", FamilyMBC1, CapRAM},
	0x03: {0x03, "MBC1+RAM+BATTERY", FamilyMBC1, CapRAM | CapBattery},
	0x05: {0x05, "MBC2", FamilyMBC2, CapRAM},
	0x06: {0x06, "MBC2+BATTERY", FamilyMBC2, CapRAM | CapBattery},
	0x08: {0x08, "ROM+RAM", FamilyNone, CapRAM},
	0x09: {0x09, "ROM+RAM+BATTERY", FamilyNone, CapRAM | CapBattery},
	0x0B: {0x0B, "MMM01", FamilyMMM01, 0},
	0x0C: {0x0C, "MMM01+RAM", FamilyMMM01, CapRAM},
	0x0D: {0x0D, "MMM01+RAM+BATTERY", FamilyMMM01, CapRAM | CapBattery},
	0x0F: {0x0F, "MBC3+TIMER+BATTERY", FamilyMBC3, CapBattery | CapClock},
	0x10: {0x10, "MBC3+TIMER+RAM+BATTERY", FamilyMBC3, CapRAM | CapBattery | CapClock},
	0x11: {0x11, "MBC3", FamilyMBC3, 0},
	0x12: {0x12, "MBC3+RAM", FamilyMBC3, CapRAM},
	0x13: {0x13, "MBC3+RAM+BATTERY", FamilyMBC3, CapRAM | CapBattery},
	0x19: {0x19, "MBC5", FamilyMBC5, 0},
	0x1A: {0x1A, "MBC5+RAM", FamilyMBC5, CapRAM},
	0x1B: {0x1B, "MBC5+RAM+BATTERY", FamilyMBC5, CapRAM | CapBattery},
	0x1C: {0x1C, "MBC5+RUMBLE", FamilyMBC5, CapRumble},
	0x1D: {0x1D, "MBC5+RUMBLE+RAM", FamilyMBC5, CapRAM | CapRumble},
	0x1E: {0x1E, "MBC5+RUMBLE+RAM+BATTERY", FamilyMBC5, CapRAM | CapBattery | CapRumble},
	0x20: {0x20, "MBC6", FamilyMBC6, CapRAM | CapBattery},
	0x22: {0x22, "MBC7+SENSOR+RUMBLE+RAM+BATTERY", FamilyMBC7, CapRAM | CapBattery | CapRumble},
	0xFC: {0xFC, "POCKET CAMERA", FamilyCamera, CapRAM | CapBattery},
	0xFD: {0xFD, "BANDAI TAMA5", FamilyTAMA5, CapBattery | CapClock},
	0xFE: {0xFE, "HuC3", FamilyHuC3, CapRAM | CapBattery | CapClock},
	0xFF: {0xFF, "HuC1+RAM+BATTERY", FamilyHuC1, CapRAM | CapBattery},
}

// LookupControllerType decodes a cartridge type byte. Codes outside the
// table decode to FamilyUnknown with ok set to false.
func LookupControllerType(code byte) (t ControllerType, ok bool) {
	t, ok = controllerTypes[code]
	if !ok {
		t = ControllerType{Code: code, Name: "UNKNOWN", Family: FamilyUnknown}
	}
	return t, ok
}

// ROMSize is the decoded ROM size byte (0x0148).
type ROMSize struct {
	Code  byte
	Bytes int
	Banks int
}

// RAMSize is the decoded RAM size byte (0x0149).
type RAMSize struct {
	Code  byte
	Bytes int
	Banks int
}

func decodeROMSize(code byte) ROMSize {
	var banks int
	switch {
	case code <= 0x08:
		banks = 2 << code
	case code == 0x52:
		banks = 72
	case code == 0x53:
		banks = 80
	case code == 0x54:
		banks = 96
	}
	return ROMSize{Code: code, Bytes: banks * ROMBankSize, Banks: banks}
}

func decodeRAMSize(code byte) RAMSize {
	var banks int
	switch code {
	case 0x02:
		banks = 1
	case 0x03:
		banks = 4
	case 0x04:
		banks = 16
	case 0x05:
		banks = 8
	default:
		// 0x00 is no RAM; 0x01 is listed in some documents but no licensed
		// cartridge uses it.
	}
	return RAMSize{Code: code, Bytes: banks * RAMBankSize, Banks: banks}
}

// ColorSupport is decoded from the top two bits of the color flag (0x0143).
type ColorSupport uint8

const (
	ColorNone ColorSupport = iota
	ColorCompatible
	ColorExclusive
)

func decodeColorSupport(b byte) ColorSupport {
	switch b & 0xC0 {
	case 0xC0:
		return ColorExclusive
	case 0x80:
		return ColorCompatible
	}
	return ColorNone
}

func (c ColorSupport) String() string {
	switch c {
	case ColorCompatible:
		return "compatible"
	case ColorExclusive:
		return "exclusive"
	}
	return "none"
}

// Region is decoded from the destination code (0x014A).
type Region uint8

const (
	RegionDomestic Region = iota
	RegionInternational
)

func decodeRegion(b byte) Region {
	if b == 0x00 {
		return RegionDomestic
	}
	return RegionInternational
}

func (r Region) String() string {
	if r == RegionDomestic {
		return "domestic"
	}
	return "international"
}
