package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/config"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/loader"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/report"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/ui"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/ui/bankview"
)

func main() {
	cli := parseArgs(os.Args[1:])
	cfg := loadConfig(cli.Config)
	log.EnableDebugModules(cfg.LogMask())

	switch cli.mode {
	case infoMode:
		checkf(runInfo(os.Stdout, cli.Info.RomPath, cli.Info.JSON), "failed to show rom infos")
	case checkMode:
		failed, err := runCheck(context.Background(), os.Stdout, cfg, cli.Check.Paths)
		checkf(err, "failed to check roms")
		if failed > 0 {
			fmt.Fprintf(os.Stderr, "%d rom(s) failed\n", failed)
			os.Exit(1)
		}
	case peekMode:
		checkf(runPeek(os.Stdout, cfg, cli.Peek.RomPath, cli.Peek.Set, cli.Peek.Addrs), "peek failed")
	case dumpMode:
		checkf(runDump(os.Stdout, cfg, cli.Dump.RomPath, cli.Dump.Bank, cli.Dump.PNG), "dump failed")
	case viewMode:
		c, err := openCart(cli.View.RomPath, cfg)
		checkf(err, "failed to load cartridge")

		uiCfg := ui.Config{Title: cfg.Viewer.Title, Scale: cfg.Viewer.Scale}
		if cli.View.Scale > 0 {
			uiCfg.Scale = cli.View.Scale
		}
		checkf(ui.NewApp(uiCfg, c).Run(), "viewer error")
	}
}

// loadConfig loads the file named on the command line, which must exist, or
// the one in the user config directory if any.
func loadConfig(path string) config.Config {
	if path != "" {
		cfg, err := config.Load(path)
		checkf(err, "failed to load configuration")
		return cfg
	}
	def, err := config.DefaultPath()
	if err != nil {
		log.ModCart.Warnf("%v", err)
		return config.Default()
	}
	return config.LoadOrDefault(def)
}

func openCart(path string, cfg config.Config) (*cart.Cartridge, error) {
	data, _, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return cart.NewWithConfig(data, cfg.CartConfig())
}

func runInfo(w io.Writer, path string, asJSON bool) error {
	data, info, err := loader.Load(path)
	if err != nil {
		return err
	}
	h, err := cart.ParseHeader(data)
	if err != nil {
		return err
	}
	if asJSON {
		_, err := fmt.Fprintf(w, "%s\n", report.HeaderJSON(h))
		return err
	}
	if _, err := fmt.Fprintf(w, "File:\t%s (%d bytes)\n", info.Path, info.Size); err != nil {
		return err
	}
	return report.WriteHeader(w, h)
}

// runCheck validates every ROM found under paths and prints one line per ROM.
// It returns the number of ROMs that failed validation.
func runCheck(ctx context.Context, w io.Writer, cfg config.Config, paths []string) (int, error) {
	failed := 0
	err := loader.Walk(ctx, paths, func(info loader.Info, data []byte) error {
		c, err := cart.NewWithConfig(data, cfg.CartConfig())
		if err != nil {
			failed++
		}
		_, werr := fmt.Fprintln(w, report.CheckLine(info.Path, c, err))
		return werr
	})
	return failed, err
}

// runPeek applies writes in order on a bus holding the cartridge, then prints
// the byte read at each address.
func runPeek(w io.Writer, cfg config.Config, path string, sets, addrs []string) error {
	writes := make([]busWrite, 0, len(sets))
	for _, s := range sets {
		bw, err := parseWrite(s)
		if err != nil {
			return err
		}
		writes = append(writes, bw)
	}
	reads := make([]uint16, 0, len(addrs))
	for _, s := range addrs {
		addr, err := parseAddr(s)
		if err != nil {
			return err
		}
		reads = append(reads, addr)
	}

	c, err := openCart(path, cfg)
	if err != nil {
		return err
	}
	b := bus.New(c)
	for _, bw := range writes {
		log.ModBus.Debugf("write %s", bw)
		b.Write(bw.addr, bw.val)
	}
	for _, addr := range reads {
		if _, err := fmt.Fprintf(w, "0x%04X: 0x%02X\n", addr, b.Read(addr)); err != nil {
			return err
		}
	}
	mbc := c.Controller()
	_, err = fmt.Fprintf(w, "%s rom_bank=%d ram_bank=%d ram_enabled=%t\n", mbc.Name(), mbc.ROMBank(), mbc.RAMBank(), mbc.RAMEnabled())
	return err
}

// runDump maps bank into the switchable window and prints the CRC32 of its
// contents, optionally saving the window as a PNG.
func runDump(w io.Writer, cfg config.Config, path string, bank int, pngPath string) error {
	c, err := openCart(path, cfg)
	if err != nil {
		return err
	}
	if bank < 0 || bank >= c.ROM().BankCount() {
		return fmt.Errorf("bank %d out of range [0, %d)", bank, c.ROM().BankCount())
	}
	bankview.SelectBank(c, bank)

	mapped := c.Controller().ROMBank()
	if mapped != bank {
		log.ModMBC.Warnf("%s cannot map bank %d in the switchable window, showing bank %d", c.Controller().Name(), bank, mapped)
	}
	if _, err := fmt.Fprintf(w, "bank=%d crc32=%08x\n", mapped, bankview.Checksum(c)); err != nil {
		return err
	}
	if pngPath != "" {
		if err := bankview.SavePNG(bankview.Gray(c), pngPath); err != nil {
			return err
		}
		log.ModUI.Infof("wrote %s", pngPath)
	}
	return nil
}
