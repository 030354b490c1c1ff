package cart

import "errors"

// Construction failures. Every error returned by ParseHeader, NewROM, NewSRAM
// and New wraps exactly one of these.
var (
	ErrMalformedROM          = errors.New("malformed rom")
	ErrInvalidLogo           = errors.New("invalid logo")
	ErrHeaderChecksum        = errors.New("header checksum mismatch")
	ErrUnsupportedController = errors.New("unsupported controller")
	ErrInvalidROMLayout      = errors.New("invalid rom layout")
	ErrInvalidRAMLayout      = errors.New("invalid ram layout")
)
