package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
	Scripts ScriptsConfig `toml:"scripts"`
}

type LoopConfig struct {
	FrameRate        time.Duration `toml:"frame_rate"`          // interval between rendered frames
	FixedStep        time.Duration `toml:"fixed_step"`          // physics simulation step
	MaxStepsPerFrame int           `toml:"max_steps_per_frame"` // catch-up clamp; excess backlog is dropped
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ScriptsConfig struct {
	Dir   string `toml:"dir"`   // Lua script directory; missing dir is skipped
	Scene string `toml:"scene"` // YAML scene file; empty disables scene loading
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
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.FrameRate <= 0 {
		return fmt.Errorf("loop.frame_rate must be positive, got %s", c.Loop.FrameRate)
	}
	if c.Loop.FixedStep <= 0 {
		return fmt.Errorf("loop.fixed_step must be positive, got %s", c.Loop.FixedStep)
	}
	if c.Loop.MaxStepsPerFrame < 1 {
		return fmt.Errorf("loop.max_steps_per_frame must be at least 1, got %d", c.Loop.MaxStepsPerFrame)
	}
	return nil
}

// Default returns the built-in configuration, used when no config file
// exists.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Loop: LoopConfig{
			FrameRate:        16666 * time.Microsecond, // ~60 fps
			FixedStep:        20 * time.Millisecond,    // 50 Hz physics
			MaxStepsPerFrame: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scripts: ScriptsConfig{
			Dir:   "scripts",
			Scene: "scene.yaml",
		},
	}
}
