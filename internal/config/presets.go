package config

import "sort"

// Presets are complete configurations keyed by name.
var Presets = map[string]*Config{
	"calm": preset(func(c *Config) {
		c.Particles.Count = 8
		c.Particles.InitialSpeed = 0.3
		c.Physics.Damping = 0.985
		c.Physics.Restitution = 0.8
		c.Cursor.Level = 3
	}),
	"lively": preset(func(c *Config) {
		c.Particles.Count = 16
		c.Particles.InitialSpeed = 2.0
		c.Physics.Damping = 0.995
		c.Physics.Restitution = 0.95
		c.Physics.Jitter = 0.2
		c.Cursor.Level = 7
	}),
	"crowded": preset(func(c *Config) {
		c.Particles.Count = 40
		c.Particles.MinSize = 40
		c.Particles.MaxSize = 90
	}),
	"terminal": preset(func(c *Config) {
		c.Viewport.Width = 640
		c.Viewport.Height = 384
		c.Particles.Count = 10
		c.Particles.MinSize = 40
		c.Particles.MaxSize = 80
		c.TUI.CellWidth = 4
		c.TUI.CellHeight = 8
		c.Cursor.Level = 8
	}),
}

func preset(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
