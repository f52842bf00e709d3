// Package config reads the user's pegboard settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pegboard/internal/errors"
	"pegboard/internal/geometry"
)

// FileName is the settings file looked up in the home directory.
const FileName = ".pegboard.toml"

const (
	DefaultGridWidth  = 20
	DefaultGridHeight = 15
	DefaultCellSize   = 30

	maxGridSide = 200
	maxCellSize = 200
)

// Config holds the editor settings.
type Config struct {
	GridWidth     int    `toml:"grid_width"`
	GridHeight    int    `toml:"grid_height"`
	CellSize      int    `toml:"cell_size"`
	SaveDirectory string `toml:"save_directory"`
	Confirmations bool   `toml:"confirmations"`
	// Catalog is an optional path to a tools TOML file that replaces the
	// built-in catalog.
	Catalog string `toml:"catalog"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		GridWidth:     DefaultGridWidth,
		GridHeight:    DefaultGridHeight,
		CellSize:      DefaultCellSize,
		Confirmations: true,
	}
}

// Grid returns the configured board size.
func (c *Config) Grid() geometry.Size {
	return geometry.Size{Width: c.GridWidth, Height: c.GridHeight}
}

// DefaultPath returns ~/.pegboard.toml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// LoadDefault reads the settings file from the home directory.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load reads settings from path. A missing file yields the defaults; keys
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	base := filepath.Dir(path)
	cfg.SaveDirectory = expandPath(cfg.SaveDirectory, "")
	cfg.Catalog = expandPath(cfg.Catalog, base)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	if c.GridWidth < 1 || c.GridWidth > maxGridSide {
		return errors.New(errors.ErrCodeInvalidConfig, "grid_width must be between 1 and %d, got %d", maxGridSide, c.GridWidth)
	}
	if c.GridHeight < 1 || c.GridHeight > maxGridSide {
		return errors.New(errors.ErrCodeInvalidConfig, "grid_height must be between 1 and %d, got %d", maxGridSide, c.GridHeight)
	}
	if c.CellSize < 4 || c.CellSize > maxCellSize {
		return errors.New(errors.ErrCodeInvalidConfig, "cell_size must be between 4 and %d, got %d", maxCellSize, c.CellSize)
	}
	return nil
}

// expandPath resolves a leading ~ and makes the path absolute. Relative paths
// are taken relative to base when it is set, otherwise to the working
// directory.
func expandPath(value, base string) string {
	if value == "" {
		return ""
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if base != "" {
			value = filepath.Join(base, value)
		}
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

// SavePath returns where an exported file named filename is written. The save
// directory is created on demand.
func (c *Config) SavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeExport, err, "create %s", c.SaveDirectory)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
