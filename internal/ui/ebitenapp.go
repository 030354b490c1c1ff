package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/ui/bankview"
)

// The bank image is drawn at twice its size so the debug font stays legible.
const (
	screenW = 2 * bankview.Width
	screenH = 2 * bankview.Height
)

// App is a window showing one ROM bank at a time.
type App struct {
	cfg  Config
	c    *cart.Cartridge
	tex  *ebiten.Image
	pix  []byte
	bank int

	showHelp bool
}

func NewApp(cfg Config, c *cart.Cartridge) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.Title, c.Title()))
	ebiten.SetWindowSize(bankview.Width*cfg.Scale, bankview.Height*cfg.Scale)
	return &App{
		cfg:  cfg,
		c:    c,
		pix:  make([]byte, bankview.Width*bankview.Height*4),
		bank: c.Controller().ROMBank(),
	}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.selectBank(a.bank + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.selectBank(a.bank - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.selectBank(a.bank + 16)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.selectBank(a.bank - 16)
	}

	// Reset (R)
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.c.Reset()
		a.bank = a.c.Controller().ROMBank()
		log.ModUI.Infof("cartridge reset, bank %d", a.bank)
	}

	// Help overlay (H)
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHelp = !a.showHelp
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := a.saveScreenshot(); err != nil {
			log.ModUI.Errorf("screenshot: %v", err)
		}
	}
	return nil
}

// selectBank wraps n to the ROM size and maps it in.
func (a *App) selectBank(n int) {
	banks := a.c.ROM().BankCount()
	n %= banks
	if n < 0 {
		n += banks
	}
	bankview.SelectBank(a.c, n)
	a.bank = n
	log.ModUI.WithField("requested", n).Debugf("mapped bank %d", a.c.Controller().ROMBank())
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(bankview.Width, bankview.Height)
	}
	bankview.RGBA(a.c, a.pix)
	a.tex.WritePixels(a.pix)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(2, 2)
	screen.DrawImage(a.tex, &op)

	mbc := a.c.Controller()
	status := fmt.Sprintf("%s  %s\nROM bank %d/%d", a.c.Title(), mbc.Name(), mbc.ROMBank(), a.c.ROM().BankCount())
	if mbc.RAMEnabled() {
		status += fmt.Sprintf("  RAM bank %d", mbc.RAMBank())
	}
	ebitenutil.DebugPrintAt(screen, status, 4, 4)

	if a.showHelp {
		overlay := ebiten.NewImage(screenW, screenH)
		overlay.Fill(color.RGBA{0, 0, 0, 160})
		screen.DrawImage(overlay, nil)
		lines := []string{
			"Up/Down: next/previous bank",
			"PgUp/PgDn: +/- 16 banks",
			"R: reset cartridge",
			"F12: screenshot",
			"H: close help  Esc: quit",
		}
		for i, s := range lines {
			ebitenutil.DebugPrintAt(screen, s, 10, 50+i*14)
		}
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }

func (a *App) saveScreenshot() error {
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("bank%03d_%s.png", a.bank, ts)
	if err := bankview.SavePNG(bankview.Gray(a.c), name); err != nil {
		return err
	}
	log.ModUI.Infof("wrote %s", name)
	return nil
}
