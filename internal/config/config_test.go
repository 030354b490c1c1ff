package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, `
[cart]
ram_fill = 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Cart.RAMFill = 0
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.CartConfig(); got != (cart.Config{RAMFill: 0}) {
		t.Fatalf("CartConfig got %+v", got)
	}
}

func TestLoad_Full(t *testing.T) {
	path := writeFile(t, `
[cart]
ram_fill = 170

[log]
modules = ["cart", "mbc"]

[viewer]
scale = 2
title = "banks"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Cart:   CartConfig{RAMFill: 0xAA},
		Log:    LogConfig{Modules: []string{"cart", "mbc"}},
		Viewer: ViewerConfig{Scale: 2, Title: "banks"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got, want := cfg.LogMask(), log.ModCart.Mask()|log.ModMBC.Mask(); got != want {
		t.Fatalf("LogMask got %b want %b", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[cart\nram_fill = 1"},
		{"fill out of range", "[cart]\nram_fill = 300"},
		{"bad scale", "[viewer]\nscale = 0"},
		{"unknown module", "[log]\nmodules = [\"cpu\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Fatalf("Load succeeded, want error")
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	_, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load missing file: %v", err)
	}
	if diff := cmp.Diff(Default(), LoadOrDefault(path)); diff != "" {
		t.Fatalf("LoadOrDefault mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Cart.RAMFill = 0x00
	cfg.Log.Modules = []string{"bus"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
