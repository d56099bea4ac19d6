package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/shape"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// FileName is the config file looked up in the config directory, without
// extension.
const FileName = "drawing"

// EnvPrefix prefixes environment overrides, e.g. DRAWING_GRID_SIZE.
const EnvPrefix = "DRAWING"

type Config struct {
	LogLevel    string          `mapstructure:"logLevel"`
	Grid        GridConfig      `mapstructure:"grid"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Render      RenderConfig    `mapstructure:"render"`
	CatalogPath string          `mapstructure:"catalogPath"`
}

type GridConfig struct {
	Size int `mapstructure:"size"`
}

type GeneratorConfig struct {
	MaxAttempts int                    `mapstructure:"maxAttempts"`
	Tiers       map[string]shape.Range `mapstructure:"tiers"`
}

type RenderConfig struct {
	BlockSize       float64       `mapstructure:"blockSize"`
	CanvasWidth     float64       `mapstructure:"canvasWidth"`
	CanvasHeight    float64       `mapstructure:"canvasHeight"`
	DragSensitivity float64       `mapstructure:"dragSensitivity"`
	Colors          ColorsConfig  `mapstructure:"colors"`
	Shades          render.Shades `mapstructure:"shades"`
}

// ColorsConfig holds hex colour strings.
type ColorsConfig struct {
	Top          string `mapstructure:"top"`
	Front        string `mapstructure:"front"`
	Side         string `mapstructure:"side"`
	Hidden       string `mapstructure:"hidden"`
	HiddenStroke string `mapstructure:"hiddenStroke"`
	Outline      string `mapstructure:"outline"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("catalogPath", "")

	v.SetDefault("grid.size", voxel.DefaultSize)

	v.SetDefault("generator.maxAttempts", shape.DefaultMaxAttempts)
	for t, r := range shape.DefaultTiers() {
		v.SetDefault("generator.tiers."+string(t)+".min", r.Min)
		v.SetDefault("generator.tiers."+string(t)+".max", r.Max)
	}

	opts := render.DefaultOptions()
	v.SetDefault("render.blockSize", opts.BlockSize)
	v.SetDefault("render.canvasWidth", opts.CanvasWidth)
	v.SetDefault("render.canvasHeight", opts.CanvasHeight)
	v.SetDefault("render.dragSensitivity", render.DefaultDragSensitivity)

	p := opts.Shading.Palette
	v.SetDefault("render.colors.top", p.Top.Hex())
	v.SetDefault("render.colors.front", p.Front.Hex())
	v.SetDefault("render.colors.side", p.Side.Hex())
	v.SetDefault("render.colors.hidden", p.Hidden.Hex())
	v.SetDefault("render.colors.hiddenStroke", p.HiddenStroke.Hex())
	v.SetDefault("render.colors.outline", p.Outline.Hex())

	s := opts.Shading.Shades
	v.SetDefault("render.shades.front", s.Front)
	v.SetDefault("render.shades.side", s.Side)
	v.SetDefault("render.shades.bottom", s.Bottom)
}

// Load reads drawing.yaml from configDir, if present, on top of the
// defaults and applies DRAWING_* environment overrides. A missing file
// is not an error.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and colours.
func (c *Config) Validate() error {
	if c.Grid.Size < 1 || c.Grid.Size > voxel.MaxSize {
		return fmt.Errorf("config: grid.size %d outside 1..%d", c.Grid.Size, voxel.MaxSize)
	}
	if c.Generator.MaxAttempts < 1 {
		return fmt.Errorf("config: generator.maxAttempts must be positive")
	}
	if len(c.Generator.Tiers) == 0 {
		return fmt.Errorf("config: no generator tiers")
	}
	for name, r := range c.Generator.Tiers {
		if !r.Valid() {
			return fmt.Errorf("config: tier %q has invalid range %d..%d", name, r.Min, r.Max)
		}
	}
	if c.Render.BlockSize <= 0 || c.Render.CanvasWidth <= 0 || c.Render.CanvasHeight <= 0 {
		return fmt.Errorf("config: render sizes must be positive")
	}
	for name, f := range map[string]float64{
		"front":  c.Render.Shades.Front,
		"side":   c.Render.Shades.Side,
		"bottom": c.Render.Shades.Bottom,
	} {
		if f <= 0 || f > 1 {
			return fmt.Errorf("config: render.shades.%s %v outside (0,1]", name, f)
		}
	}
	if _, err := c.Shading(); err != nil {
		return err
	}
	return nil
}

// Tiers converts the configured tier table.
func (c *Config) Tiers() shape.Tiers {
	out := make(shape.Tiers, len(c.Generator.Tiers))
	for name, r := range c.Generator.Tiers {
		out[shape.Tier(strings.ToLower(name))] = r
	}
	return out
}

// Shading parses the configured palette.
func (c *Config) Shading() (render.Shading, error) {
	cc := c.Render.Colors
	var p render.Palette
	for _, f := range []struct {
		key string
		hex string
		dst *render.RGB
	}{
		{"top", cc.Top, &p.Top},
		{"front", cc.Front, &p.Front},
		{"side", cc.Side, &p.Side},
		{"hidden", cc.Hidden, &p.Hidden},
		{"hiddenStroke", cc.HiddenStroke, &p.HiddenStroke},
		{"outline", cc.Outline, &p.Outline},
	} {
		rgb, err := render.ParseHex(f.hex)
		if err != nil {
			return render.Shading{}, fmt.Errorf("config: render.colors.%s: %w", f.key, err)
		}
		*f.dst = rgb
	}
	return render.Shading{Palette: p, Shades: c.Render.Shades}, nil
}

// RenderOptions returns the renderer settings.
func (c *Config) RenderOptions() (render.Options, error) {
	shading, err := c.Shading()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		BlockSize:    c.Render.BlockSize,
		CanvasWidth:  c.Render.CanvasWidth,
		CanvasHeight: c.Render.CanvasHeight,
		Shading:      shading,
	}, nil
}
