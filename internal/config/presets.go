package config

import "sort"

var Presets = map[string]*Config{
	"still": {
		Seed: 1, FPS: 60, Width: 160, Height: 96, Frames: 600, Damping: 0.05,
		Pointer: PointerConfig{Scale: 0.001},
	},
	"corner": {
		Seed: 1, FPS: 60, Width: 160, Height: 96, Frames: 600, Damping: 0.05,
		Pointer: PointerConfig{Scale: 0.001, X: 80, Y: -48},
	},
	"sweep": {
		Seed: 1, FPS: 60, Width: 160, Height: 96, Frames: 1800, Damping: 0.05,
		Pointer: PointerConfig{Scale: 0.001, Sweep: 60},
	},
	"sluggish": {
		Seed: 1, FPS: 30, Width: 160, Height: 96, Frames: 900, Damping: 0.01,
		Pointer: PointerConfig{Scale: 0.001, X: 40, Y: 20},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Window == (WindowConfig{}) {
		cfg.Window = WindowConfig{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	cfg.CheckFinite = true
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
