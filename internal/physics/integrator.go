package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/driftbox/internal/particle"
)

// Stats reports what happened during one integration step.
type Stats struct {
	Contacts int
	WallHits int
}

type IntegratorOption func(*Integrator)

// WithoutReinjection disables the floor re-injection so damping can be
// observed in isolation.
func WithoutReinjection() IntegratorOption {
	return func(in *Integrator) { in.reinject = false }
}

// Integrator advances free particles one tick: motion, damping, idle
// re-injection, scale recovery and wall reflection, in that order.
type Integrator struct {
	tuning   Tuning
	rng      *rand.Rand
	reinject bool
}

func NewIntegrator(t Tuning, rng *rand.Rand, opts ...IntegratorOption) *Integrator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	in := &Integrator{tuning: t, rng: rng, reinject: true}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Integrator) SetTuning(t Tuning) { in.tuning = t }

func (in *Integrator) SetRand(rng *rand.Rand) {
	if rng != nil {
		in.rng = rng
	}
}

// Step integrates every particle and returns the number of wall contacts.
func (in *Integrator) Step(ps []*particle.Particle, b particle.Bounds) Stats {
	var st Stats
	for _, p := range ps {
		st.WallHits += in.StepOne(p, b)
	}
	return st
}

// StepOne integrates a single particle. A dragged particle only spins.
func (in *Integrator) StepOne(p *particle.Particle, b particle.Bounds) int {
	t := in.tuning
	if p.Dragging {
		p.Rotation += t.DragSpin
		return 0
	}

	p.Pos = p.Pos.Add(p.Vel)
	p.Rotation += p.RotationSpeed

	p.Vel = p.Vel.Mult(t.Damping)

	if in.reinject {
		if math.Abs(p.Vel.X) < t.FloorSpeed {
			p.Vel.X += (in.rng.Float64() - 0.5) * t.Jitter
		}
		if math.Abs(p.Vel.Y) < t.FloorSpeed {
			p.Vel.Y += (in.rng.Float64() - 0.5) * t.Jitter
		}
	}

	p.ScaleX += (1 - p.ScaleX) * t.Recovery
	p.ScaleY += (1 - p.ScaleY) * t.Recovery

	return in.walls(p, b)
}

// walls reflects a particle whose box has crossed an edge by more than half
// its size. Left and top clamp to the trigger line; right and bottom put the
// box edge back on the viewport edge, or on -size/2 when the viewport is
// narrower than half the box.
func (in *Integrator) walls(p *particle.Particle, b particle.Bounds) int {
	t := in.tuning
	half := p.Size() / 2
	hits := 0

	switch {
	case p.Pos.X <= -half:
		p.Pos.X = -half
		p.Vel.X *= t.Bounce
		p.ScaleX, p.ScaleY = t.Squash, t.Stretch
		hits++
	case p.Pos.X+p.Size() >= b.Width+half:
		p.Pos.X = math.Max(b.Width-p.Size(), -half)
		p.Vel.X *= t.Bounce
		p.ScaleX, p.ScaleY = t.Squash, t.Stretch
		hits++
	}

	switch {
	case p.Pos.Y <= -half:
		p.Pos.Y = -half
		p.Vel.Y *= t.Bounce
		p.ScaleX, p.ScaleY = t.Stretch, t.Squash
		hits++
	case p.Pos.Y+p.Size() >= b.Height+half:
		p.Pos.Y = math.Max(b.Height-p.Size(), -half)
		p.Vel.Y *= t.Bounce
		p.ScaleX, p.ScaleY = t.Stretch, t.Squash
		hits++
	}
	return hits
}
