package cart

// Header field offsets within the ROM image. The parser and the test image
// builders both use this single table.
const (
	EntryPointAddr     = 0x0100 // 4 bytes
	LogoAddr           = 0x0104 // 48 bytes
	TitleAddr          = 0x0134 // up to 15 bytes (11 on color carts)
	ManufacturerAddr   = 0x013F // 4 bytes, color carts only
	ColorFlagAddr      = 0x0143
	NewLicenseeAddr    = 0x0144 // 2 bytes
	SuperFlagAddr      = 0x0146
	CartTypeAddr       = 0x0147
	ROMSizeAddr        = 0x0148
	RAMSizeAddr        = 0x0149
	DestinationAddr    = 0x014A
	OldLicenseeAddr    = 0x014B
	VersionAddr        = 0x014C
	HeaderChecksumAddr = 0x014D
	GlobalChecksumAddr = 0x014E // 2 bytes, big-endian
	HeaderEnd          = 0x014F

	titleLen        = 15
	colorTitleLen   = 11
	manufacturerLen = 4
	logoLen         = 48
)

// Storage geometry.
const (
	ROMBankSize = 0x4000
	RAMBankSize = 0x2000
	MinROMSize  = 2 * ROMBankSize
)

// Bus windows claimed by the cartridge.
const (
	ROMWindowEnd   = 0x8000
	RAMWindowStart = 0xA000
	RAMWindowEnd   = 0xC000

	romBank0End = 0x4000
)

// Logo is the reference bitmap every cartridge must carry at LogoAddr.
var Logo = [logoLen]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}
