package staircase

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config describes a panel render. It can be loaded from TOML or YAML files.
type Config struct {
	Theme  string   `toml:"theme" yaml:"theme"`
	Themes []string `toml:"themes" yaml:"themes"` // takes precedence over Theme and renders a blended panel

	WidthM       float64 `toml:"width_m" yaml:"width_m"`
	HeightM      float64 `toml:"height_m" yaml:"height_m"`
	ResolutionMM float64 `toml:"resolution_mm" yaml:"resolution_mm"`

	Level            int     `toml:"level" yaml:"level"`
	OverlapTolerance float64 `toml:"overlap_tolerance" yaml:"overlap_tolerance"`
	MinArea          float64 `toml:"min_area" yaml:"min_area"`
	Mode             string  `toml:"mode" yaml:"mode"`

	BlendFraction float64 `toml:"blend_fraction" yaml:"blend_fraction"`
	Axis          string  `toml:"axis" yaml:"axis"`

	Scale int `toml:"scale" yaml:"scale"` // output pixels per grid cell
}

// DefaultConfig returns a 3 by 3 meter penrose panel at 1 millimeter per pixel.
func DefaultConfig() Config {
	return Config{
		Theme:            "penrose",
		WidthM:           3.0,
		HeightM:          3.0,
		ResolutionMM:     1.0,
		Level:            DefaultLevel,
		OverlapTolerance: DefaultOverlapTolerance,
		MinArea:          DefaultMinArea,
		Mode:             SampleCenters.String(),
		BlendFraction:    DefaultBlendFraction,
		Axis:             AxisX.String(),
		Scale:            1,
	}
}

// LoadConfig reads the configuration file on top of the defaults. The format is chosen by the extension: .toml, .yaml or .yml.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		md, err := toml.DecodeFile(filename, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", filename, err)
		} else if undecoded := md.Undecoded(); 0 < len(undecoded) {
			return cfg, fmt.Errorf("config %s: unknown key %s", filename, undecoded[0])
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(filename)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", filename, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", filename, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unknown format %q", filename, ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be rendered.
func (cfg Config) Validate() error {
	if cfg.Theme == "" && len(cfg.Themes) == 0 {
		return fmt.Errorf("no theme")
	} else if !(0.0 < cfg.WidthM) || !(0.0 < cfg.HeightM) {
		return fmt.Errorf("panel size must be positive, got %gx%g m", cfg.WidthM, cfg.HeightM)
	} else if !(0.0 < cfg.ResolutionMM) {
		return fmt.Errorf("resolution must be positive, got %g mm", cfg.ResolutionMM)
	} else if w, h := cfg.Pixels(); w < 1 || h < 1 {
		return fmt.Errorf("panel is smaller than one pixel")
	} else if cfg.Level < 0 {
		return fmt.Errorf("level must be non-negative, got %d", cfg.Level)
	} else if cfg.OverlapTolerance < 0.0 || cfg.MinArea < 0.0 {
		return fmt.Errorf("tolerances must be non-negative")
	} else if !(0.0 <= cfg.BlendFraction && cfg.BlendFraction <= 0.5) {
		return fmt.Errorf("blend fraction must be in [0,0.5], got %g", cfg.BlendFraction)
	} else if cfg.Scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", cfg.Scale)
	}
	if _, err := ParseRasterMode(cfg.Mode); err != nil {
		return err
	} else if _, err := ParseAxis(cfg.Axis); err != nil {
		return err
	}
	return nil
}

// Pixels returns the panel size in pixels.
func (cfg Config) Pixels() (int, int) {
	return int(math.Round(cfg.WidthM * 1000.0 / cfg.ResolutionMM)), int(math.Round(cfg.HeightM * 1000.0 / cfg.ResolutionMM))
}

// Penrose returns the tiling renderer described by the configuration.
func (cfg Config) Penrose() (Penrose, error) {
	mode, err := ParseRasterMode(cfg.Mode)
	if err != nil {
		return Penrose{}, err
	}
	return Penrose{
		Level:            cfg.Level,
		OverlapTolerance: cfg.OverlapTolerance,
		MinArea:          cfg.MinArea,
		Mode:             mode,
	}, nil
}

// Panel returns the blended panel described by the configuration. A single Theme becomes a panel of one slice.
func (cfg Config) Panel() (Panel, error) {
	axis, err := ParseAxis(cfg.Axis)
	if err != nil {
		return Panel{}, err
	}
	names := cfg.Themes
	if len(names) == 0 {
		names = []string{cfg.Theme}
	}
	w, h := cfg.Pixels()
	return Panel{
		Themes:        names,
		Width:         w,
		Height:        h,
		BlendFraction: cfg.BlendFraction,
		Axis:          axis,
	}, nil
}
