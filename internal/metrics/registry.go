package metrics

import "github.com/san-kum/driftbox/internal/sim"

// Default returns a fresh set of every metric a recorded run reports.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyRetention(),
		NewPeakSpeed(),
		NewContactRate(),
		NewWallHits(),
		NewContainment(),
	}
}
