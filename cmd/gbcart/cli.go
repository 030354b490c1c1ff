package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

type mode byte

const (
	infoMode  mode = iota // Show header infos
	checkMode             // Validate ROM files
	peekMode              // Poke and peek the cartridge bus
	dumpMode              // Render a ROM bank to PNG
	viewMode              // Open the bank viewer window
)

type (
	CLI struct {
		Info  Info  `cmd:"" help:"Show cartridge header infos."`
		Check Check `cmd:"" help:"Validate ROM files and directories."`
		Peek  Peek  `cmd:"" help:"Write then read bytes through the cartridge bus."`
		Dump  Dump  `cmd:"" help:"Render a ROM bank as a grayscale image."`
		View  View  `cmd:"" help:"Open the ROM bank viewer."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `name:"config" help:"${config_help}" type:"existingfile" placeholder:"FILE"`

		mode mode
	}

	Info struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		JSON    bool   `name:"json" help:"Print infos as JSON."`
	}

	Check struct {
		Paths []string `arg:"" name:"path" help:"ROM files or directories to scan." type:"path"`
	}

	Peek struct {
		RomPath string   `arg:"" name:"/path/to/rom" type:"existingfile"`
		Addrs   []string `arg:"" name:"addr" help:"Bus addresses to read, decimal or 0x-prefixed." optional:""`
		Set     []string `name:"set" help:"${set_help}" placeholder:"ADDR=VAL" sep:"none"`
	}

	Dump struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		Bank    int    `name:"bank" help:"ROM bank to map in the switchable window." default:"1"`
		PNG     string `name:"png" help:"Write the bank image to FILE." type:"path" placeholder:"FILE"`
	}

	View struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		Scale   int    `name:"scale" help:"Window scale, overrides the config file."`
	}
)

var vars = kong.Vars{
	"log_help":    "Enable logging for specified modules.",
	"config_help": "Configuration file. (default: gbcart/config.toml in the user config directory)",
	"set_help":    "Bus write applied before reading, may be repeated. Writes are applied in order.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("gbcart"),
		kong.Description("GameBoy cartridge inspector."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "info":
		cfg.mode = infoMode
	case "check":
		cfg.mode = checkMode
	case "peek":
		cfg.mode = peekMode
	case "dump":
		cfg.mode = dumpMode
	case "view":
		cfg.mode = viewMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, nolog, err := parseLogMods(tok.Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}
	log.EnableDebugModules(mask)
	return nil
}

func parseLogMods(s string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(s, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}
	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

// parseAddr parses a 16-bit bus address, decimal or 0x-prefixed hexadecimal.
func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid bus address %q", s)
	}
	return uint16(v), nil
}

// busWrite is an ADDR=VAL pair.
type busWrite struct {
	addr uint16
	val  byte
}

func parseWrite(s string) (busWrite, error) {
	as, vs, ok := strings.Cut(s, "=")
	if !ok {
		return busWrite{}, fmt.Errorf("invalid bus write %q, want ADDR=VAL", s)
	}
	addr, err := parseAddr(as)
	if err != nil {
		return busWrite{}, err
	}
	val, err := strconv.ParseUint(vs, 0, 8)
	if err != nil {
		return busWrite{}, fmt.Errorf("invalid byte value %q", vs)
	}
	return busWrite{addr: addr, val: byte(val)}, nil
}

func (w busWrite) String() string { return fmt.Sprintf("0x%04X=0x%02X", w.addr, w.val) }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
