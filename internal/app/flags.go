package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"pixeloid/internal/core"
	"pixeloid/internal/cull"
	"pixeloid/internal/engine"
	"pixeloid/internal/mesh"
	"pixeloid/internal/regen"
	"pixeloid/internal/space"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Scale     float64 `yaml:"scale"`
	MinScale  float64 `yaml:"min_scale"`
	MaxScale  float64 `yaml:"max_scale"`
	Padding   int     `yaml:"padding"`
	Signature string  `yaml:"signature"`
	TileSize  float64 `yaml:"tile_size"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TPS       int     `yaml:"tps"`
	Mapper    string  `yaml:"mapper"`
	LogLevel  string  `yaml:"log_level"`

	ConfigPath string `yaml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scale:     10,
		MinScale:  1,
		MaxScale:  64,
		Padding:   2,
		Signature: regen.ExactRange.String(),
		TileSize:  regen.DefaultTileSize,
		Width:     1280,
		Height:    720,
		TPS:       60,
		Mapper:    "arithmetic",
		LogLevel:  "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Scale, "scale", c.Scale, "initial screen pixels per pixeloid")
	fs.Float64Var(&c.MinScale, "min-scale", c.MinScale, "smallest zoom level")
	fs.Float64Var(&c.MaxScale, "max-scale", c.MaxScale, "largest zoom level")
	fs.IntVar(&c.Padding, "padding", c.Padding, "cells built beyond each viewport edge")
	fs.StringVar(&c.Signature, "signature", c.Signature, "regeneration key: exact or coarse")
	fs.Float64Var(&c.TileSize, "tile", c.TileSize, "coarse tile size in screen pixels")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Mapper, "mapper", c.Mapper, "coordinate mapper")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with defaults; explicit flags win")
}

// Parse binds c to fs, parses args and layers the -config file underneath
// any flag set on the command line.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.ConfigPath == "" {
		return c.Validate()
	}
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := c.ApplyYAML(data); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("reapply -%s: %w", name, err)
		}
	}
	return c.Validate()
}

// ApplyYAML overwrites the fields present in data.
func (c *Config) ApplyYAML(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate reports the first inconsistent field.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{"scale": c.Scale, "min-scale": c.MinScale, "max-scale": c.MaxScale} {
		if err := space.CheckScale(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("min-scale %v exceeds max-scale %v", c.MinScale, c.MaxScale)
	}
	if c.Scale < c.MinScale || c.Scale > c.MaxScale {
		return fmt.Errorf("scale %v outside [%v, %v]", c.Scale, c.MinScale, c.MaxScale)
	}
	if c.Padding < 0 {
		return fmt.Errorf("negative padding %d", c.Padding)
	}
	if _, err := regen.ParseMode(c.Signature); err != nil {
		return err
	}
	if !(c.TileSize > 0) {
		return fmt.Errorf("tile size must be positive, got %v", c.TileSize)
	}
	if c.Window().Area() == 0 {
		return fmt.Errorf("window size %dx%d", c.Width, c.Height)
	}
	if cells := c.cellsAt(c.MinScale); cells > mesh.DefaultMaxCells {
		return fmt.Errorf("min-scale %v needs %d cells for a %dx%d window, limit %d",
			c.MinScale, cells, c.Width, c.Height, mesh.DefaultMaxCells)
	}
	if _, ok := space.LookupMapper(c.Mapper); !ok {
		return fmt.Errorf("unknown mapper %q (have %v)", c.Mapper, space.MapperNames())
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// cellsAt returns the padded cell count the initial window covers at scale.
func (c *Config) cellsAt(scale float64) int {
	win := c.Window()
	corners, err := space.ViewportCorners(space.Pixeloid{}, space.Size{W: float64(win.W), H: float64(win.H)}, scale)
	if err != nil {
		return 0
	}
	return cull.Range(corners, c.Padding).Cells()
}

// Window returns the initial window size.
func (c *Config) Window() core.Size { return core.Size{W: c.Width, H: c.Height} }

// EngineConfig translates c into an engine configuration.
func (c *Config) EngineConfig(log *slog.Logger) (engine.Config, error) {
	mode, err := regen.ParseMode(c.Signature)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Padding:  c.Padding,
		MinScale: c.MinScale,
		Cache:    regen.Config{Mode: mode, TileSize: c.TileSize},
		Logger:   log,
	}, nil
}

// NewMapper constructs the configured mapper.
func (c *Config) NewMapper() (space.Mapper, error) {
	f, ok := space.LookupMapper(c.Mapper)
	if !ok {
		return nil, fmt.Errorf("unknown mapper %q", c.Mapper)
	}
	return f(), nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	return NewLogger(w, c.LogLevel)
}

// NewLogger returns a text logger writing to w at level, which is one of
// debug, info, warn or error. The command line tools share it.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

var errLogLevel = errors.New("unknown log level")

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w %q", errLogLevel, s)
	}
	return level, nil
}
