package config

import (
	"bytes"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"texmatte/internal/matte"
	"texmatte/internal/pipeline"
	"texmatte/internal/sample"
	"texmatte/internal/texture"
)

// ErrUnknownFormat is returned by Load for unsupported file extensions.
var ErrUnknownFormat = errors.New("config: unknown format")

// Config holds paths, stage toggles and stage parameters.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir" toml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	// Variant replaces every input before the other stages when set.
	Variant string `json:"variant" yaml:"variant" toml:"variant"`

	Matte  MatteConfig  `json:"matte" yaml:"matte" toml:"matte"`
	Extend ExtendConfig `json:"extend" yaml:"extend" toml:"extend"`
	Wrap   WrapConfig   `json:"wrap" yaml:"wrap" toml:"wrap"`

	// Output settings
	Format  string `json:"format" yaml:"format" toml:"format"`
	MaxSize int    `json:"max_size" yaml:"max_size" toml:"max_size"`
	Workers int    `json:"workers" yaml:"workers" toml:"workers"`
}

// MatteConfig configures background removal.
type MatteConfig struct {
	Enabled          bool              `json:"enabled" yaml:"enabled" toml:"enabled"`
	ColorSensitivity int               `json:"color_sensitivity" yaml:"color_sensitivity" toml:"color_sensitivity"`
	FeatherSize      int               `json:"feather_size" yaml:"feather_size" toml:"feather_size"`
	FeatherAmount    int               `json:"feather_amount" yaml:"feather_amount" toml:"feather_amount"`
	Continuous       bool              `json:"continuous" yaml:"continuous" toml:"continuous"`
	SamplePadding    float32           `json:"sample_padding" yaml:"sample_padding" toml:"sample_padding"`
	Samples          []sample.Position `json:"samples" yaml:"samples" toml:"samples"`
	Despeckle        float64           `json:"despeckle" yaml:"despeckle" toml:"despeckle"`
}

// ExtendConfig configures canvas extension.
type ExtendConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Percent    int    `json:"percent" yaml:"percent" toml:"percent"`
	Background string `json:"background" yaml:"background" toml:"background"`
}

// WrapConfig configures seamless wrapping.
type WrapConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
	Size    int  `json:"size" yaml:"size" toml:"size"`
}

// Load reads a JSON, TOML or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, errors.Wrapf(ErrUnknownFormat, "config: %s", ext)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Variant   string
	Format    string
	Workers   int
}

// Resolve applies flag overrides, fills defaults and clamps every
// percentage into range. The filters rely on this clamping.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Variant != "" {
		c.Variant = flags.Variant
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = filepath.Join(c.InputDir, "out")
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format != "png" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxSize < 0 {
		c.MaxSize = 0
	}

	m := &c.Matte
	if m.ColorSensitivity <= 0 {
		m.ColorSensitivity = 30
	}
	m.ColorSensitivity = clamp(m.ColorSensitivity, 0, 255)
	m.FeatherSize = clamp(m.FeatherSize, 0, 64)
	m.FeatherAmount = clamp(m.FeatherAmount, 0, 100)
	if m.SamplePadding <= 0 {
		m.SamplePadding = 0.05
	}
	if m.SamplePadding > 0.5 {
		m.SamplePadding = 0.5
	}
	if m.Despeckle < 0 {
		m.Despeckle = 0
	}
	if m.Despeckle > 1 {
		m.Despeckle = 1
	}

	c.Extend.Percent = clamp(c.Extend.Percent, 0, 100)
	if c.Extend.Background == "" {
		c.Extend.Background = "#ffffff"
	}
	c.Wrap.Size = clamp(c.Wrap.Size, 0, 100)
}

// Background parses the extend background color.
func (c *Config) Background() (texture.Color, error) {
	col, err := colorful.Hex(c.Extend.Background)
	if err != nil {
		return texture.Color{}, errors.Wrapf(err, "config: background %q", c.Extend.Background)
	}
	r, g, b := col.Clamped().RGB255()
	return texture.FromNRGBA(color.NRGBA{R: r, G: g, B: b, A: 255}), nil
}

// Pipeline converts the enabled stages into pipeline options. The variant
// texture is supplied by the caller since loading it is I/O.
func (c *Config) Pipeline(variant *texture.Texture) (pipeline.Options, error) {
	opts := pipeline.Options{Variant: variant}

	if c.Matte.Enabled {
		opts.Matte = &pipeline.MatteOptions{
			Params: matte.Params{
				ColorSensitivity: c.Matte.ColorSensitivity,
				FeatherSize:      c.Matte.FeatherSize,
				FeatherAmount:    c.Matte.FeatherAmount,
				Continuous:       c.Matte.Continuous,
			},
			Positions:     c.Matte.Samples,
			SamplePadding: c.Matte.SamplePadding,
			Despeckle:     c.Matte.Despeckle,
		}
	}
	if c.Extend.Enabled {
		bg, err := c.Background()
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Extend = &pipeline.ExtendOptions{Percent: c.Extend.Percent, Background: bg}
	}
	if c.Wrap.Enabled {
		opts.Wrap = &pipeline.WrapOptions{Size: c.Wrap.Size}
	}
	return opts, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
