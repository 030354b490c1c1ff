// Package bankview turns the switchable ROM window of a cartridge into an
// image: one byte per pixel, 128x128 pixels for the 16 KiB window.
package bankview

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
)

const (
	Width  = 128
	Height = 128

	windowStart = 0x4000
)

// Bus is the cartridge side of the CPU bus.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, val byte)
}

// Gray renders the window at 0x4000-0x7FFF as seen through b.
func Gray(b Bus) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for i := range img.Pix {
		img.Pix[i] = b.Read(uint16(windowStart + i))
	}
	return img
}

// RGBA fills pix (Width*Height*4 bytes) with the window as opaque gray
// pixels, the layout ebiten's WritePixels expects.
func RGBA(b Bus, pix []byte) {
	for i := 0; i < Width*Height; i++ {
		v := b.Read(uint16(windowStart + i))
		pix[4*i+0] = v
		pix[4*i+1] = v
		pix[4*i+2] = v
		pix[4*i+3] = 0xFF
	}
}

// Checksum returns the CRC32 of the window contents, handy to compare banks
// without looking at them.
func Checksum(b Bus) uint32 {
	return crc32.ChecksumIEEE(Gray(b).Pix)
}

// SelectBank drives the controller registers of c so that bank ends up in the
// switchable window. The register layout differs per chip family.
func SelectBank(c *cart.Cartridge, bank int) {
	switch c.Header().Type.Family {
	case cart.FamilyMBC1:
		c.Write(0x6000, 0x00) // ROM banking mode
		c.Write(0x4000, byte(bank>>5)&0x03)
		c.Write(0x2000, byte(bank)&0x1F)
	case cart.FamilyMBC5:
		c.Write(0x3000, byte(bank>>8)&0x01)
		c.Write(0x2000, byte(bank))
	default:
		c.Write(0x2000, byte(bank))
	}
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write PNG: %w", err)
	}
	return f.Close()
}
