// Package config loads the game configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Errors
var (
	ErrInvalidTurnDuration = errors.New("config: turn_duration must be positive")
	ErrInvalidFov          = errors.New("config: camera fov must be between 1 and 179 degrees")
	ErrInvalidDistance     = errors.New("config: camera distance must be positive")
	ErrInvalidShuffle      = errors.New("config: shuffle_turns must not be negative")
)

// Duration is a time.Duration written as "250ms" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the whole configuration file.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Game      GameConfig      `toml:"game"`
	Camera    CameraConfig    `toml:"camera"`
	SmartCube SmartCubeConfig `toml:"smartcube"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type GameConfig struct {
	TurnDuration   Duration `toml:"turn_duration"`
	ShuffleTurns   int      `toml:"shuffle_turns"`
	RequireShuffle bool     `toml:"require_shuffle"`
	Seed           int64    `toml:"seed"` // 0 picks a random seed
}

type CameraConfig struct {
	Fov      float64 `toml:"fov"` // vertical, degrees
	Distance float64 `toml:"distance"`
	Yaw      float64 `toml:"yaw"`   // initial cube yaw, degrees
	Pitch    float64 `toml:"pitch"` // initial cube pitch, degrees
}

type SmartCubeConfig struct {
	Enabled     bool     `toml:"enabled"`
	ScanTimeout Duration `toml:"scan_timeout"`
	// Follow turns the on-screen cube with the physical one.
	Follow bool `toml:"follow_orientation"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Game: GameConfig{
			TurnDuration:   Duration{250 * time.Millisecond},
			ShuffleTurns:   25,
			RequireShuffle: true,
		},
		Camera: CameraConfig{
			Fov:      35,
			Distance: 9,
			Yaw:      -30,
			Pitch:    25,
		},
		SmartCube: SmartCubeConfig{
			ScanTimeout: Duration{10 * time.Second},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write stores cfg at path.
func Write(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Game.TurnDuration.Duration <= 0 {
		return ErrInvalidTurnDuration
	}
	if c.Game.ShuffleTurns < 0 {
		return ErrInvalidShuffle
	}
	if c.Camera.Fov < 1 || c.Camera.Fov > 179 {
		return ErrInvalidFov
	}
	if c.Camera.Distance <= 0 {
		return ErrInvalidDistance
	}
	return nil
}
