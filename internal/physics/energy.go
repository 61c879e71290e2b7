package physics

import "github.com/san-kum/driftbox/internal/particle"

// KineticEnergy sums 1/2 m v^2 over ps, using size as mass.
func KineticEnergy(ps []*particle.Particle) float64 {
	var e float64
	for _, p := range ps {
		e += 0.5 * p.Size() * p.Vel.Dot(p.Vel)
	}
	return e
}

// PeakSpeed is the largest speed in ps.
func PeakSpeed(ps []*particle.Particle) float64 {
	var peak float64
	for _, p := range ps {
		if s := p.Vel.Length(); s > peak {
			peak = s
		}
	}
	return peak
}
