package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/input"
	"github.com/san-kum/driftbox/internal/particle"
	"github.com/san-kum/driftbox/internal/physics"
	"github.com/san-kum/driftbox/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 1280.0
	DefaultHeight     = 800.0
	DefaultCount      = 12
	DefaultFPS        = 60
	DefaultSeed       = 1
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
	DefaultLogLevel   = "info"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Viewport  ViewportConfig `yaml:"viewport"`
	Particles ParticleConfig `yaml:"particles"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Input     InputConfig    `yaml:"input"`
	Cursor    CursorConfig   `yaml:"cursor"`
	FPS       int            `yaml:"fps"`
	Seed      int64          `yaml:"seed"`
	Log       LogConfig      `yaml:"log"`
	TUI       TUIConfig      `yaml:"tui"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ParticleConfig struct {
	Count        int     `yaml:"count"`
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	InitialSpeed float64 `yaml:"initial_speed"`
}

type PhysicsConfig struct {
	OverlapFactor float64 `yaml:"overlap_factor"`
	Restitution   float64 `yaml:"restitution"`
	DragKick      float64 `yaml:"drag_kick"`
	Damping       float64 `yaml:"damping"`
	FloorSpeed    float64 `yaml:"floor_speed"`
	Jitter        float64 `yaml:"jitter"`
	Recovery      float64 `yaml:"recovery"`
	DragSpin      float64 `yaml:"drag_spin"`
	Bounce        float64 `yaml:"bounce"`
	Squash        float64 `yaml:"squash"`
	Stretch       float64 `yaml:"stretch"`
}

type InputConfig struct {
	GrabScale float64 `yaml:"grab_scale"`
	ThrowCap  float64 `yaml:"throw_cap"`
}

type CursorConfig struct {
	Level int `yaml:"level"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TUIConfig sets how many world units one terminal cell covers.
type TUIConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

func DefaultConfig() *Config {
	t := physics.DefaultTuning()
	return &Config{
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Particles: ParticleConfig{
			Count:        DefaultCount,
			MinSize:      particle.DefaultMinSize,
			MaxSize:      particle.DefaultMaxSize,
			InitialSpeed: particle.DefaultInitialSpeed,
		},
		Physics: PhysicsConfig{
			OverlapFactor: t.OverlapFactor,
			Restitution:   t.Restitution,
			DragKick:      t.DragKick,
			Damping:       t.Damping,
			FloorSpeed:    t.FloorSpeed,
			Jitter:        t.Jitter,
			Recovery:      t.Recovery,
			DragSpin:      t.DragSpin,
			Bounce:        t.Bounce,
			Squash:        t.Squash,
			Stretch:       t.Stretch,
		},
		Input:  InputConfig{GrabScale: input.DefaultGrabScale, ThrowCap: input.DefaultThrowCap},
		Cursor: CursorConfig{Level: cursor.DefaultLevel},
		FPS:    DefaultFPS,
		Seed:   DefaultSeed,
		Log:    LogConfig{Level: DefaultLogLevel},
		TUI:    TUIConfig{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Viewport.Width < 0 || c.Viewport.Height < 0:
		return invalid("viewport %gx%g", c.Viewport.Width, c.Viewport.Height)
	case c.Particles.Count < 0:
		return invalid("particle count %d", c.Particles.Count)
	case c.Particles.MinSize <= 0 || c.Particles.MaxSize < c.Particles.MinSize:
		return invalid("size range [%g, %g]", c.Particles.MinSize, c.Particles.MaxSize)
	case c.Physics.Damping <= 0 || c.Physics.Damping > 1:
		return invalid("damping %g outside (0, 1]", c.Physics.Damping)
	case c.Physics.Restitution < 0 || c.Physics.Restitution > 1:
		return invalid("restitution %g outside [0, 1]", c.Physics.Restitution)
	case c.Physics.Bounce > 0:
		return invalid("bounce %g must not be positive", c.Physics.Bounce)
	case c.Physics.OverlapFactor <= 0:
		return invalid("overlap factor %g", c.Physics.OverlapFactor)
	case c.Physics.Recovery < 0 || c.Physics.Recovery > 1:
		return invalid("recovery %g outside [0, 1]", c.Physics.Recovery)
	case c.Cursor.Level < cursor.MinLevel || c.Cursor.Level > cursor.MaxLevel:
		return invalid("cursor level %d outside %d..%d", c.Cursor.Level, cursor.MinLevel, cursor.MaxLevel)
	case c.FPS <= 0:
		return invalid("fps %d", c.FPS)
	case c.TUI.CellWidth <= 0 || c.TUI.CellHeight <= 0:
		return invalid("tui cell %gx%g", c.TUI.CellWidth, c.TUI.CellHeight)
	}
	return nil
}

func (c *Config) Tuning() physics.Tuning {
	p := c.Physics
	return physics.Tuning{
		OverlapFactor: p.OverlapFactor,
		Restitution:   p.Restitution,
		DragKick:      p.DragKick,
		Damping:       p.Damping,
		FloorSpeed:    p.FloorSpeed,
		Jitter:        p.Jitter,
		Recovery:      p.Recovery,
		DragSpin:      p.DragSpin,
		Bounce:        p.Bounce,
		Squash:        p.Squash,
		Stretch:       p.Stretch,
	}
}

// SimOptions maps the file layout onto simulation options.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		Bounds:       particle.Bounds{Width: c.Viewport.Width, Height: c.Viewport.Height},
		Count:        c.Particles.Count,
		Seed:         c.Seed,
		MinSize:      c.Particles.MinSize,
		MaxSize:      c.Particles.MaxSize,
		InitialSpeed: c.Particles.InitialSpeed,
		GrabScale:    c.Input.GrabScale,
		ThrowCap:     c.Input.ThrowCap,
		CursorLevel:  c.Cursor.Level,
		FPS:          c.FPS,
		Tuning:       c.Tuning(),
	}
}

func (c *Config) Clone() *Config {
	out := *c
	return &out
}
