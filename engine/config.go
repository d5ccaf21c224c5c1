package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the simulation core
type Config struct {
	// TickRate is the target frame rate of the Run loop, in Hz
	TickRate int `yaml:"tick_rate"`

	Collision CollisionConfig `yaml:"collision"`
}

// CollisionConfig tunes the broad-phase grid and its worker pool
type CollisionConfig struct {
	// CellSize is the broad-phase grid cell edge length in world units.
	// Zero derives it from the median collider radius each frame.
	CellSize float64 `yaml:"cell_size"`

	// Workers bounds the broad-phase worker pool. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() Config {
	return Config{
		TickRate: 60,
	}
}

// Validate checks the configuration for impossible values
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Collision.CellSize < 0 {
		return fmt.Errorf("config: collision.cell_size must not be negative, got %v", c.Collision.CellSize)
	}
	if c.Collision.Workers < 0 {
		return fmt.Errorf("config: collision.workers must not be negative, got %d", c.Collision.Workers)
	}
	return nil
}

// LoadConfig parses a YAML document over the defaults
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return LoadConfig(data)
}
