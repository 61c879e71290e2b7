package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/particle"
)

// fallbackNormal is used when two centers coincide exactly.
var fallbackNormal = cp.Vector{X: 1, Y: 0}

// Resolver separates overlapping particles and exchanges momentum between them.
// A dragged particle behaves as if it had infinite mass.
type Resolver struct {
	tuning Tuning
}

func NewResolver(t Tuning) *Resolver {
	return &Resolver{tuning: t}
}

func (r *Resolver) SetTuning(t Tuning) { r.tuning = t }

// Resolve runs one pass over every unordered pair and returns the number of
// contacts found.
func (r *Resolver) Resolve(ps []*particle.Particle) int {
	contacts := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if r.ResolvePair(ps[i], ps[j]) {
				contacts++
			}
		}
	}
	return contacts
}

// ResolvePair handles a single pair and reports whether they were in contact.
func (r *Resolver) ResolvePair(a, b *particle.Particle) bool {
	delta := b.Center().Sub(a.Center())
	dist := delta.Length()
	limit := (a.Size() + b.Size()) * r.tuning.OverlapFactor
	if dist >= limit {
		return false
	}

	n := fallbackNormal
	if dist > 0 {
		n = delta.Mult(1 / dist)
	}
	overlap := limit - dist

	switch {
	case a.Dragging && b.Dragging:
		// single-pointer model; nothing sensible to do
	case a.Dragging:
		b.Pos = b.Pos.Add(n.Mult(overlap))
		b.Vel = b.Vel.Add(n.Mult(r.tuning.DragKick))
	case b.Dragging:
		a.Pos = a.Pos.Sub(n.Mult(overlap))
		a.Vel = a.Vel.Sub(n.Mult(r.tuning.DragKick))
	default:
		push := n.Mult(overlap * 0.5)
		a.Pos = a.Pos.Sub(push)
		b.Pos = b.Pos.Add(push)
		r.bounce(a, b, n)
	}
	return true
}

// bounce applies the elastic impulse along n, using size as mass. Pairs that
// are already separating are left alone.
func (r *Resolver) bounce(a, b *particle.Particle, n cp.Vector) {
	closing := a.Vel.Sub(b.Vel).Dot(n)
	if closing <= 0 {
		return
	}
	ma, mb := a.Size(), b.Size()
	impulse := 2 * closing / (ma + mb)
	e := r.tuning.Restitution

	a.Vel = a.Vel.Sub(n.Mult(impulse * mb * e))
	b.Vel = b.Vel.Add(n.Mult(impulse * ma * e))
}
