// Package config loads lsgrid settings from YAML files and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

// ErrUnknownColumn is returned for a column name that does not exist
var ErrUnknownColumn = errors.New("unknown column")

// Environment variables read by ApplyEnv
const (
	EnvGridRows = "LSGRID_GRID_ROWS"
	EnvColumns  = "COLUMNS"
)

// Config represents the lsgrid configuration
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Grid    GridConfig    `yaml:"grid"`
	Columns []string      `yaml:"columns"`
	Format  FormatConfig  `yaml:"format"`
	Sort    SortConfig    `yaml:"sort"`
}

// DisplayConfig controls the layout and decoration of the listing
type DisplayConfig struct {
	Long        bool   `yaml:"long"`
	Grid        bool   `yaml:"grid"`
	Across      bool   `yaml:"across"`
	Header      bool   `yaml:"header"`
	Icons       string `yaml:"icons"` // "never", "auto" or "always"
	IconSpacing int    `yaml:"iconSpacing"`
	Hyperlinks  bool   `yaml:"hyperlinks"`
	Classify    bool   `yaml:"classify"`
	QuoteSpaces bool   `yaml:"quoteSpaces"`
	Color       string `yaml:"color"` // "auto", "always" or "never"
	// Width overrides the detected console width when positive
	Width int `yaml:"width"`
}

// GridConfig controls when the grid-details view is used
type GridConfig struct {
	// MinRows is the fewest rows a grid needs; 0 always uses the grid
	MinRows    int  `yaml:"minRows"`
	AlwaysGrid bool `yaml:"alwaysGrid"`
}

// FormatConfig controls how attribute values are written
type FormatConfig struct {
	TimeFormat string `yaml:"timeFormat"` // "default", "iso", "long-iso", "full-iso" or "relative"
	Sizes      string `yaml:"sizes"`      // "decimal", "binary" or "bytes"
}

// SortConfig controls which files are listed and in what order
type SortConfig struct {
	Field     string `yaml:"field"`
	Reverse   bool   `yaml:"reverse"`
	DirsFirst bool   `yaml:"dirsFirst"`
	All       bool   `yaml:"all"`
}

// Load loads configuration with priority:
// 1. Project-level: ./.lsgrid.yaml
// 2. Global: $XDG_CONFIG_HOME/lsgrid/config.yaml (or the platform equivalent)
// 3. Default: built-in defaults
func Load(platform PlatformProvider) (*Config, error) {
	for _, path := range []string{ProjectConfigPath(platform), GlobalConfigPath(platform)} {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return LoadFile(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// validate resets invalid enum values to their defaults. Unknown column
// names are reported, since silently dropping a column is surprising.
func (c *Config) validate() error {
	def := DefaultConfig()

	if _, err := filename.ParseIconMode(c.Display.Icons); err != nil {
		c.Display.Icons = def.Display.Icons
	}
	if _, err := theme.ParseColorMode(c.Display.Color); err != nil {
		c.Display.Color = def.Display.Color
	}
	if c.Display.IconSpacing < 0 {
		c.Display.IconSpacing = def.Display.IconSpacing
	}
	if _, err := table.ParseTimeFormat(c.Format.TimeFormat); err != nil {
		c.Format.TimeFormat = def.Format.TimeFormat
	}
	if _, err := table.ParseSizeFormat(c.Format.Sizes); err != nil {
		c.Format.Sizes = def.Format.Sizes
	}
	if _, err := fs.ParseSortField(c.Sort.Field); err != nil {
		c.Sort.Field = def.Sort.Field
	}
	if c.Grid.MinRows < 0 {
		c.Grid.MinRows = def.Grid.MinRows
	}

	_, err := c.TableColumns()
	return err
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	columns := table.DefaultColumns()
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.String()
	}

	return &Config{
		Display: DisplayConfig{
			Icons:       "never",
			IconSpacing: 1,
			QuoteSpaces: true,
			Color:       string(theme.ColorAuto),
		},
		Columns: names,
		Format: FormatConfig{
			TimeFormat: string(table.TimeDefault),
			Sizes:      string(table.SizeDecimal),
		},
		Sort: SortConfig{
			Field: string(fs.SortName),
		},
	}
}

// ApplyEnv applies environment overrides: LSGRID_GRID_ROWS sets the row
// threshold and COLUMNS the console width
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvGridRows); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", EnvGridRows, v)
		}
		c.Grid.MinRows = n
		c.Grid.AlwaysGrid = n == 0
	}
	if v := getenv(EnvColumns); v != "" && c.Display.Width <= 0 {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvColumns, v)
		}
		c.Display.Width = n
	}
	return nil
}

// TableColumns returns the configured column schema
func (c *Config) TableColumns() ([]table.Column, error) {
	columns := make([]table.Column, 0, len(c.Columns))
	for _, name := range c.Columns {
		col, ok := table.ParseColumn(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// MinGridRows returns the fewest rows a grid needs, or 0 when any grid
// that fits is used
func (c *Config) MinGridRows() int {
	if c.Grid.AlwaysGrid || c.Grid.MinRows <= 0 {
		return 0
	}
	return c.Grid.MinRows
}

// TableOptions returns the table schema and formats
func (c *Config) TableOptions() (*table.Options, error) {
	columns, err := c.TableColumns()
	if err != nil {
		return nil, err
	}
	timeFormat, _ := table.ParseTimeFormat(c.Format.TimeFormat)
	sizeFormat, _ := table.ParseSizeFormat(c.Format.Sizes)
	return &table.Options{Columns: columns, TimeFormat: timeFormat, SizeFormat: sizeFormat}, nil
}

// FileStyle returns the file name options. isTerminal resolves automatic
// icons.
func (c *Config) FileStyle(isTerminal bool) filename.Options {
	icons, _ := filename.ParseIconMode(c.Display.Icons)
	quote := filename.NoQuotes
	if c.Display.QuoteSpaces {
		quote = filename.QuoteSpaces
	}
	return filename.Options{
		Classify:        c.Display.Classify,
		Icons:           icons,
		IconSpacing:     c.Display.IconSpacing,
		EmbedHyperlinks: c.Display.Hyperlinks,
		QuoteStyle:      quote,
		IsTerminal:      isTerminal,
	}
}

// Filter returns the file filter
func (c *Config) Filter() fs.Filter {
	field, _ := fs.ParseSortField(c.Sort.Field)
	return fs.Filter{
		ShowHidden: c.Sort.All,
		Sort:       field,
		Reverse:    c.Sort.Reverse,
		DirsFirst:  c.Sort.DirsFirst,
	}
}

// ColorMode returns the colour mode
func (c *Config) ColorMode() theme.ColorMode {
	mode, err := theme.ParseColorMode(c.Display.Color)
	if err != nil {
		return theme.ColorAuto
	}
	return mode
}
