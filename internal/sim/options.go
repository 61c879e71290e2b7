package sim

import (
	"fmt"

	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/input"
	"github.com/san-kum/driftbox/internal/particle"
	"github.com/san-kum/driftbox/internal/physics"
	"github.com/san-kum/driftbox/internal/render"
	"go.uber.org/zap"
)

// Options is the plain configuration of a simulation.
type Options struct {
	Bounds particle.Bounds
	Count  int
	Seed   int64

	MinSize      float64
	MaxSize      float64
	InitialSpeed float64

	GrabScale float64
	ThrowCap  float64

	CursorLevel int
	FPS         int

	Tuning physics.Tuning
}

func DefaultOptions() Options {
	return Options{
		Bounds:       particle.Bounds{Width: 1280, Height: 800},
		Count:        12,
		Seed:         1,
		MinSize:      particle.DefaultMinSize,
		MaxSize:      particle.DefaultMaxSize,
		InitialSpeed: particle.DefaultInitialSpeed,
		GrabScale:    input.DefaultGrabScale,
		ThrowCap:     input.DefaultThrowCap,
		CursorLevel:  cursor.DefaultLevel,
		FPS:          60,
		Tuning:       physics.DefaultTuning(),
	}
}

func (o Options) Validate() error {
	if !o.Bounds.Valid() {
		return fmt.Errorf("%w: bounds %gx%g", ErrInvalidOptions, o.Bounds.Width, o.Bounds.Height)
	}
	if o.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidOptions, o.Count)
	}
	if o.MinSize <= 0 || o.MaxSize < o.MinSize {
		return fmt.Errorf("%w: size range [%g, %g]", ErrInvalidOptions, o.MinSize, o.MaxSize)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidOptions, o.FPS)
	}
	return nil
}

type Option func(*Simulation)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetric(m Metric) Option {
	return func(s *Simulation) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

func WithDriver(d Driver) Option {
	return func(s *Simulation) { s.drivers = append(s.drivers, d) }
}

func WithPalette(p render.Palette) Option {
	return func(s *Simulation) {
		if len(p) > 0 {
			s.palette = p
		}
	}
}
