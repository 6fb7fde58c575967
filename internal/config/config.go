// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/qrgen/internal/qr"
)

const (
	DefaultURL       = "http://github.com/kaw393939"
	DefaultOutputDir = "qr_codes"
	DefaultSize      = 10
	DefaultLevel     = "M"

	EnvURL       = "DEFAULT_URL"
	EnvOutputDir = "OUTPUT_DIR"
)

// Config carries the fallbacks used when a flag is not given. The resolver
// consults values in the order flag, environment, Config.
type Config struct {
	// URL is the text encoded when neither --url nor DEFAULT_URL is set.
	URL string `yaml:"default_url"`
	// OutputDir is used when neither --output-dir nor OUTPUT_DIR is set.
	// Relative values are resolved against the working directory.
	OutputDir string `yaml:"output_dir"`
	// Size is the number of pixels per QR module.
	Size int `yaml:"pixels_per_module"`
	// Level is the recovery level, one of L, M, Q, H.
	Level string `yaml:"recovery_level"`
}

func Default() *Config {
	return &Config{
		URL:       DefaultURL,
		OutputDir: DefaultOutputDir,
		Size:      DefaultSize,
		Level:     DefaultLevel,
	}
}

// Load reads a YAML config file on top of the built-in defaults. An empty
// path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fileCfg.URL != "" {
		cfg.URL = fileCfg.URL
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.Size != 0 {
		cfg.Size = fileCfg.Size
	}
	if fileCfg.Level != "" {
		cfg.Level = fileCfg.Level
	}

	return cfg, nil
}

// Validate checks the rendering knobs. URL and OutputDir may be empty; an
// empty URL is reported later when no other source supplies text.
func (c *Config) Validate() error {
	var errs []error
	if c.Size < 1 {
		errs = append(errs, fmt.Errorf("pixels per module must be at least 1, got %d", c.Size))
	}
	if _, err := qr.ParseLevel(c.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
