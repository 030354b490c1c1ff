package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

type Config struct {
	Cart   CartConfig   `toml:"cart"`
	Log    LogConfig    `toml:"log"`
	Viewer ViewerConfig `toml:"viewer"`
}

type CartConfig struct {
	// RAMFill is the byte battery RAM holds before the program writes it.
	RAMFill byte `toml:"ram_fill"`
}

type LogConfig struct {
	// Modules lists the log modules with debug output enabled.
	Modules []string `toml:"modules"`
}

type ViewerConfig struct {
	Scale int    `toml:"scale"`
	Title string `toml:"title"`
}

const (
	DefaultFileMode = os.FileMode(0755)
	cfgFilename     = "config.toml"
)

func Default() Config {
	return Config{
		Cart: CartConfig{RAMFill: cart.DefaultRAMFill},
		Viewer: ViewerConfig{
			Scale: 4,
			Title: "gbcart",
		},
	}
}

// DefaultPath returns the location of the configuration file in the user
// config directory.
func DefaultPath() (string, error) {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(cfgdir, "gbcart", cfgFilename), nil
}

// Load decodes the file at path over the defaults, so keys missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		log.ModCart.Warnf("config %s: unknown keys %v", path, undec)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the configuration at path, or provide a default one.
func LoadOrDefault(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModCart.Warnf("using default configuration: %v", err)
		}
		return Default()
	}
	return cfg
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultFileMode); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func (c Config) validate() error {
	if c.Viewer.Scale < 1 || c.Viewer.Scale > 16 {
		return fmt.Errorf("viewer scale %d out of range [1, 16]", c.Viewer.Scale)
	}
	for _, name := range c.Log.Modules {
		if _, ok := log.ModuleByName(name); !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
	}
	return nil
}

// CartConfig returns the settings passed to cartridge construction.
func (c Config) CartConfig() cart.Config {
	return cart.Config{RAMFill: c.Cart.RAMFill}
}

// LogMask returns the debug mask for the configured log modules.
func (c Config) LogMask() log.ModuleMask {
	var mask log.ModuleMask
	for _, name := range c.Log.Modules {
		if mod, ok := log.ModuleByName(name); ok {
			mask |= mod.Mask()
		}
	}
	return mask
}
