// Package config loads engine settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable commands read the config path from.
const EnvPath = "SNEK_CONFIG"

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Window  WindowConfig  `toml:"window"`
	Logging LoggingConfig `toml:"logging"`
	Input   InputConfig   `toml:"input"`
	Audio   AudioConfig   `toml:"audio"`
	Script  ScriptConfig  `toml:"script"`
}

type EngineConfig struct {
	TickRate time.Duration `toml:"tick_rate"` // 0 runs unpaced
	Workers  int           `toml:"workers"`
	MaxDelta time.Duration `toml:"max_delta"` // upper bound for a single tick's delta
}

type WindowConfig struct {
	Title      string  `toml:"title"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	CameraSize float32 `toml:"camera_size"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type InputConfig struct {
	Keymap string `toml:"keymap"` // optional YAML keymap path
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	SampleRate int  `toml:"sample_rate"`
}

type ScriptConfig struct {
	Dir string `toml:"dir"` // empty disables scripting
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by SNEK_CONFIG, or returns the defaults when it is unset.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.Workers < 1 {
		errs = append(errs, fmt.Errorf("engine.workers must be at least 1, got %d", c.Engine.Workers))
	}
	if c.Engine.TickRate < 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate must not be negative, got %s", c.Engine.TickRate))
	}
	if c.Engine.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_delta must be positive, got %s", c.Engine.MaxDelta))
	}
	if c.Window.CameraSize <= 0 {
		errs = append(errs, fmt.Errorf("window.camera_size must be positive, got %g", c.Window.CameraSize))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate: time.Second / 60,
			Workers:  1,
			MaxDelta: 250 * time.Millisecond,
		},
		Window: WindowConfig{
			Title:      "Snek",
			Width:      800,
			Height:     800,
			CameraSize: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
	}
}
