package metaball

import (
	"errors"
	"fmt"
	"os"

	"github.com/kjkrol/metaball/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// Config is the session configuration of a Driver.
type Config struct {
	QuadCount      int        `toml:"quad_count"`
	QuadSize       float32    `toml:"quad_size"`
	PostProcessing bool       `toml:"post_processing"`
	MaxPixelRatio  float32    `toml:"max_pixel_ratio"`
	Background     [4]float32 `toml:"background"`
	// Spread scales the area the quad centers are scattered over, relative
	// to the viewport.
	Spread float32 `toml:"spread"`
	// FloatTarget requests an RGBA32F offscreen texture. The factory falls
	// back to RGBA16F or RGBA8 when the context cannot filter it.
	FloatTarget bool                  `toml:"float_target"`
	Window      platform.WindowConfig `toml:"window"`
	LogLevel    string                `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		QuadCount:      1000,
		QuadSize:       400,
		PostProcessing: true,
		MaxPixelRatio:  2,
		Background:     [4]float32{0.2, 0.2, 0.2, 1},
		Spread:         2,
		Window: platform.WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "metaball",
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML file over DefaultConfig, so keys missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parse config %s: %w", path, err)
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.QuadCount <= 0 {
		errs = append(errs, fmt.Errorf("quad_count must be positive, got %d", c.QuadCount))
	}
	if c.QuadSize <= 0 {
		errs = append(errs, fmt.Errorf("quad_size must be positive, got %v", c.QuadSize))
	}
	if c.MaxPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("max_pixel_ratio must be positive, got %v", c.MaxPixelRatio))
	}
	if c.Spread <= 0 {
		errs = append(errs, fmt.Errorf("spread must be positive, got %v", c.Spread))
	}
	return errors.Join(errs...)
}
