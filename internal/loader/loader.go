package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/FabianRolfMatthiasNoll/gbcart/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcart/internal/log"
)

var ErrTooSmall = errors.New("file too small")

// Info describes a loaded ROM file.
type Info struct {
	Name string // base name
	Path string // absolute path
	Size int64
}

func (i Info) String() string {
	return fmt.Sprintf("rom_info{filename=%q, size=%d bytes, path=%q}", i.Name, i.Size, i.Path)
}

// Load reads a ROM image from path. The file must be a regular file large
// enough to hold the cartridge header; anything else about the image is left
// to cart.New.
func Load(path string) ([]byte, Info, error) {
	if path == "" {
		return nil, Info{}, errors.New("empty rom path")
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, Info{}, err
	}
	if !fi.Mode().IsRegular() {
		return nil, Info{}, fmt.Errorf("%s: not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, err
	}
	if len(data) < cart.HeaderEnd+1 {
		return nil, Info{}, fmt.Errorf("%s: %w: %d bytes, header needs %d", path, ErrTooSmall, len(data), cart.HeaderEnd+1)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info := Info{
		Name: filepath.Base(path),
		Path: abs,
		Size: int64(len(data)),
	}
	log.ModLoader.WithField("size", info.Size).Debugf("loaded %s", info.Path)
	return data, info, nil
}

// IsROMFile reports whether path looks like a ROM image: a regular file with
// a .gb or .gbc extension holding at least the minimum ROM size.
func IsROMFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gb", ".gbc":
	default:
		return false
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return fi.Size() >= cart.MinROMSize
}

// Expand turns a list of files and directories into a sorted list of files.
// Directories are walked recursively and only ROM files are kept from them;
// files named explicitly are kept as is.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsROMFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Walk loads every ROM found in paths in parallel and calls fn for each of
// them. Calls to fn are serialized but happen in no particular order. The
// first error, from loading or from fn, stops the walk and is returned.
func Walk(ctx context.Context, paths []string, fn func(Info, []byte) error) error {
	files, err := Expand(paths)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, info, err := Load(f)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			return fn(info, data)
		})
	}
	return g.Wait()
}
