package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default solver tunables
const (
	DefaultTotalSimulations    = 10000
	DefaultTargetSimulations   = 250
	DefaultProgressInterval    = 200
	DefaultMaxSearchIterations = 10000
)

// Config holds the solver tunables
type Config struct {
	// TotalSimulations is the number of Monte-Carlo battles per undecided mission
	TotalSimulations int `yaml:"total_simulations"`
	// TargetSimulations is the number of battles per mission during progression search
	TargetSimulations int `yaml:"target_simulations"`
	// ProgressInterval is the number of battles between two progress reports
	ProgressInterval int `yaml:"progress_interval"`
	// MaxSearchIterations bounds the progression search
	MaxSearchIterations int `yaml:"max_search_iterations"`
	// Workers bounds concurrent mission sampling, 0 means GOMAXPROCS
	Workers int `yaml:"workers"`
	// Seed makes battle sampling reproducible, 0 picks a random seed
	Seed uint64 `yaml:"seed"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		TotalSimulations:    DefaultTotalSimulations,
		TargetSimulations:   DefaultTargetSimulations,
		ProgressInterval:    DefaultProgressInterval,
		MaxSearchIterations: DefaultMaxSearchIterations,
	}
}

// Load reads a YAML config file on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every tunable is within range
func (c *Config) Validate() error {
	if c.TotalSimulations < 1 {
		return fmt.Errorf("total_simulations must be at least 1, got %d", c.TotalSimulations)
	}
	if c.TargetSimulations < 1 {
		return fmt.Errorf("target_simulations must be at least 1, got %d", c.TargetSimulations)
	}
	if c.ProgressInterval < 1 || c.ProgressInterval > DefaultProgressInterval {
		return fmt.Errorf("progress_interval must be between 1 and %d, got %d", DefaultProgressInterval, c.ProgressInterval)
	}
	if c.MaxSearchIterations < 1 {
		return fmt.Errorf("max_search_iterations must be at least 1, got %d", c.MaxSearchIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
