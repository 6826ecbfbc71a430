package floatcp

// config.go: model-level configuration for the precision subsystem. The
// surrounding solver owns the file and the flags; this package just reads
// and validates them.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the precision subsystem settings a model exposes.
type Config struct {
	// Enabled toggles boundary propagation. Disabled means strict bounds
	// flow through unadjusted.
	Enabled bool `yaml:"enabled"`

	// StepSize controls adjustment granularity in ULPs. 1 is the exact
	// single-ULP adjustment and the only mode currently implemented;
	// larger values are reserved for coarser widening.
	StepSize float64 `yaml:"step_size"`

	// MaxWorkers bounds parallel branch propagation. Zero or negative
	// means one worker per CPU.
	MaxWorkers int `yaml:"max_workers"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		StepSize: 1,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig and validating the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.StepSize < 1 {
		return fmt.Errorf("step_size must be >= 1, got %g", c.StepSize)
	}
	return nil
}
