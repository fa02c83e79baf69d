package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS          = 60
	DefaultWidth        = 160
	DefaultHeight       = 96
	DefaultFrames       = 600
	DefaultDamping      = 0.05
	DefaultPointerScale = 0.001
	DefaultTheme        = "sunset"
	DefaultLogLevel     = "info"

	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720

	envPrefix = "HEROSCENE_"
)

type Config struct {
	Seed        int64         `yaml:"seed" env:"SEED"`
	FPS         int           `yaml:"fps" env:"FPS"`
	Width       int           `yaml:"width" env:"WIDTH"`
	Height      int           `yaml:"height" env:"HEIGHT"`
	Frames      int           `yaml:"frames" env:"FRAMES"`
	Damping     float64       `yaml:"damping" env:"DAMPING"`
	Pointer     PointerConfig `yaml:"pointer" envPrefix:"POINTER_"`
	Theme       string        `yaml:"theme" env:"THEME"`
	CheckFinite bool          `yaml:"check_finite" env:"CHECK_FINITE"`
	Log         LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Window      WindowConfig  `yaml:"window" envPrefix:"WINDOW_"`
}

// PointerConfig scripts the pointer for headless runs. X and Y are offsets
// from the target center; Sweep moves the pointer on a circle of that radius.
type PointerConfig struct {
	Scale float64 `yaml:"scale" env:"SCALE"`
	X     float64 `yaml:"x" env:"X"`
	Y     float64 `yaml:"y" env:"Y"`
	Sweep float64 `yaml:"sweep" env:"SWEEP"`
}

// WindowConfig sizes the desktop window in screen pixels.
type WindowConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:        1,
		FPS:         DefaultFPS,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Frames:      DefaultFrames,
		Damping:     DefaultDamping,
		Pointer:     PointerConfig{Scale: DefaultPointerScale},
		Theme:       DefaultTheme,
		CheckFinite: true,
		Log:         LogConfig{Level: DefaultLogLevel},
		Window:      WindowConfig{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve layers the named preset (or the defaults), the yaml file at path
// and HEROSCENE_* variables, later layers winning. Empty preset or path
// skips that layer.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from HEROSCENE_* variables.
func (c *Config) ApplyEnv() error {
	return env.ParseWithOptions(c, env.Options{Prefix: envPrefix})
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("target size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.Damping <= 0 || c.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %f", c.Damping)
	}
	return nil
}

// FrameDuration is the display refresh interval.
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
