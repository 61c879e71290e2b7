package metrics

import (
	"github.com/san-kum/driftbox/internal/physics"
	"github.com/san-kum/driftbox/internal/sim"
)

// KineticEnergy is the mean total kinetic energy per tick, with size as mass.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s sim.Sample) {
	e.total += physics.KineticEnergy(s.Particles)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyRetention is the final kinetic energy as a fraction of the first
// observed value. Damping pulls it well below 1 unless something keeps
// feeding motion in.
type EnergyRetention struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewEnergyRetention() *EnergyRetention {
	return &EnergyRetention{name: "energy_retention"}
}

func (e *EnergyRetention) Name() string { return e.name }

func (e *EnergyRetention) Observe(s sim.Sample) {
	energy := physics.KineticEnergy(s.Particles)
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++
}

func (e *EnergyRetention) Value() float64 {
	if e.initial == 0 {
		return 0
	}
	return e.current / e.initial
}

func (e *EnergyRetention) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// PeakSpeed is the highest particle speed seen in any tick.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{name: "peak_speed"} }

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(s sim.Sample) {
	if v := physics.PeakSpeed(s.Particles); v > p.peak {
		p.peak = v
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }
