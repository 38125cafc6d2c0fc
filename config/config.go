package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Physics PhysicsConfig `toml:"physics"`
	Events  EventsConfig  `toml:"events"`
	Logging LoggingConfig `toml:"logging"`
	// Debug turns stale handle accesses during a frame into fatal panics
	// instead of a logged skip.
	Debug bool `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type PhysicsConfig struct {
	GravityX        float32 `toml:"gravity_x"`
	GravityY        float32 `toml:"gravity_y"`
	PixelsPerUnit   float32 `toml:"pixels_per_unit"`
	TickRate        int     `toml:"tick_rate"`          // fixed steps per second
	MaxCatchUpSteps int     `toml:"max_catch_up_steps"` // 0 = unlimited
	Iterations      int     `toml:"iterations"`
}

type EventsConfig struct {
	Capacity int `toml:"capacity"`
	// SnapshotDrainScene pins every intent of a drain to the scene active
	// when the drain started.
	SnapshotDrainScene bool `toml:"snapshot_drain_scene"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

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

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Physics.PixelsPerUnit <= 0 {
		return fmt.Errorf("physics.pixels_per_unit must be positive, got %v", c.Physics.PixelsPerUnit)
	}
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("physics.tick_rate must be positive, got %d", c.Physics.TickRate)
	}
	if c.Physics.MaxCatchUpSteps < 0 {
		return fmt.Errorf("physics.max_catch_up_steps must not be negative, got %d", c.Physics.MaxCatchUpSteps)
	}
	if c.Events.Capacity <= 0 {
		return fmt.Errorf("events.capacity must be positive, got %d", c.Events.Capacity)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "warpcore",
			Width:     640,
			Height:    480,
			Resizable: true,
		},
		Physics: PhysicsConfig{
			PixelsPerUnit: 50,
			TickRate:      60,
			Iterations:    10,
		},
		Events: EventsConfig{
			Capacity: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
