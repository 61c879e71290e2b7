package sim

import (
	"github.com/san-kum/driftbox/internal/particle"
)

// Sample is what metrics and observers see after each tick. Particles is the
// live slice and must not be retained or modified.
type Sample struct {
	Tick      uint64
	Particles []*particle.Particle
	Bounds    particle.Bounds
	Contacts  int
	WallHits  int
	Dragging  bool
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Sample)
}

// Driver feeds input into a headless run. BeforeTick is called with the
// number of the tick about to run, starting at 1.
type Driver interface {
	BeforeTick(s *Simulation, tick uint64) error
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s Sample)

func (f ObserverFunc) OnTick(s Sample) { f(s) }

// Point is one row of a recorded run.
type Point struct {
	Tick      uint64
	Particles int
	Kinetic   float64
	Contacts  int
	WallHits  int
	Dragging  bool
}

type Result struct {
	Ticks   int
	Series  []Point
	Metrics map[string]float64
	Errors  []error
}

// Kinetic returns the kinetic energy column of the series.
func (r *Result) Kinetic() []float64 {
	out := make([]float64, len(r.Series))
	for i, p := range r.Series {
		out[i] = p.Kinetic
	}
	return out
}
