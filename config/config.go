// Package config loads the sandbox configuration from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/asteroid-forge/parameter"
	"github.com/lixenwraith/asteroid-forge/shape"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the sandbox configuration; every key is optional
type Config struct {
	Debug     bool           `yaml:"debug"`
	LogDir    string         `yaml:"log_dir"`
	Tick      time.Duration  `yaml:"tick"`
	Workers   int            `yaml:"workers"`
	Audio     bool           `yaml:"audio"`
	PresetDB  string         `yaml:"preset_db"`
	TuneAddr  string         `yaml:"tune_addr"`
	Asteroids []shape.Params `yaml:"asteroids"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		LogDir:    "logs",
		Tick:      parameter.GameUpdateInterval,
		Workers:   parameter.RegenerationWorkers,
		Audio:     true,
		PresetDB:  "presets.db",
		Asteroids: []shape.Params{shape.DefaultParams()},
	}
}

// Load reads the file at path over the defaults
// An empty path yields Default()
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("config: %w: tick must be positive, got %s", ErrInvalid, c.Tick)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: %w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	for i, p := range c.Asteroids {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("config: %w: asteroid %d: %w", ErrInvalid, i, err)
		}
	}
	return nil
}
