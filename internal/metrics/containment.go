package metrics

import (
	"github.com/san-kum/driftbox/internal/sim"
)

// Containment is the fraction of ticks in which every particle stayed within
// half its size of the viewport.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s sim.Sample) {
	c.samples++
	for _, p := range s.Particles {
		half := p.Size() / 2
		if p.Pos.X < -half || p.Pos.Y < -half ||
			p.Pos.X > s.Bounds.Width+half || p.Pos.Y > s.Bounds.Height+half {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
