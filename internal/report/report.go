package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-faster/jx"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
)

// HeaderJSON encodes the decoded header fields as a JSON object.
func HeaderJSON(h cart.Header) []byte {
	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("title")
	e.Str(h.Title)
	e.FieldStart("manufacturer")
	e.Str(h.ManufacturerCode)
	e.FieldStart("licensee")
	e.Str(h.LicenseeCode())

	e.FieldStart("type")
	e.ObjStart()
	e.FieldStart("code")
	e.UInt8(h.Type.Code)
	e.FieldStart("name")
	e.Str(h.Type.Name)
	e.FieldStart("controller")
	e.Str(h.Type.Family.String())
	e.FieldStart("ram")
	e.Bool(h.HasRAM())
	e.FieldStart("battery")
	e.Bool(h.HasBattery())
	e.FieldStart("clock")
	e.Bool(h.HasClock())
	e.FieldStart("rumble")
	e.Bool(h.HasRumble())
	e.ObjEnd()

	e.FieldStart("rom_size")
	e.Int(h.ROMSize.Bytes)
	e.FieldStart("rom_banks")
	e.Int(h.ROMSize.Banks)
	e.FieldStart("ram_size")
	e.Int(h.RAMSize.Bytes)
	e.FieldStart("ram_banks")
	e.Int(h.RAMSize.Banks)

	e.FieldStart("color")
	e.Str(h.Color.String())
	e.FieldStart("super")
	e.Bool(h.Super)
	e.FieldStart("region")
	e.Str(h.Region.String())
	e.FieldStart("version")
	e.UInt8(h.Version)

	e.FieldStart("header_checksum")
	e.UInt8(h.HeaderChecksum)
	e.FieldStart("header_checksum_ok")
	e.Bool(h.ChecksumValid())
	e.FieldStart("logo_ok")
	e.Bool(h.LogoValid())
	e.FieldStart("global_checksum")
	e.Int(int(h.GlobalChecksum))

	e.ObjEnd()
	return e.Bytes()
}

// WriteHeader prints a human readable table of the header fields.
func WriteHeader(w io.Writer, h cart.Header) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	rows := []struct {
		key string
		val any
	}{
		{"Title", h.Title},
		{"Manufacturer", h.ManufacturerCode},
		{"Licensee", h.LicenseeCode()},
		{"Type", h.Type},
		{"Controller", h.Type.Family},
		{"ROM", fmt.Sprintf("%d KiB (%d banks)", h.ROMSize.Bytes/1024, h.ROMSize.Banks)},
		{"RAM", fmt.Sprintf("%d KiB (%d banks)", h.RAMSize.Bytes/1024, h.RAMSize.Banks)},
		{"Battery", h.HasBattery()},
		{"Clock", h.HasClock()},
		{"Rumble", h.HasRumble()},
		{"Color", h.Color},
		{"Super", h.Super},
		{"Region", h.Region},
		{"Version", h.Version},
		{"Header checksum", checkMark(fmt.Sprintf("0x%02X", h.HeaderChecksum), h.ChecksumValid())},
		{"Logo", checkMark("", h.LogoValid())},
		{"Global checksum", fmt.Sprintf("0x%04X", h.GlobalChecksum)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%v\n", r.key, r.val); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func checkMark(s string, ok bool) string {
	mark := "ok"
	if !ok {
		mark = "BAD"
	}
	if s == "" {
		return mark
	}
	return s + " " + mark
}

// CheckLine formats the result of validating one ROM file.
func CheckLine(path string, c *cart.Cartridge, err error) string {
	if err != nil {
		return fmt.Sprintf("FAIL %s: %v", path, err)
	}
	return fmt.Sprintf("OK   %s: %q %s", path, c.Title(), c.Controller().Name())
}
