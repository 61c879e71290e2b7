package physics

// Tuning collects every constant the resolver and integrator use. Values are
// per tick; a tick is one display frame.
type Tuning struct {
	// Collision
	OverlapFactor float64 // contact threshold as a fraction of the summed sizes
	Restitution   float64
	DragKick      float64 // outward speed given to a body struck by a dragged one

	// Integration
	Damping    float64 // velocity multiplier per tick
	FloorSpeed float64 // per-axis speed below which motion is re-injected
	Jitter     float64 // width of the symmetric re-injection range
	Recovery   float64 // fraction of the scale error removed per tick
	DragSpin   float64 // degrees per tick while held

	// Walls
	Bounce  float64 // velocity multiplier on wall contact (negative reflects)
	Squash  float64 // scale along the impact axis
	Stretch float64 // scale across the impact axis
}

func DefaultTuning() Tuning {
	return Tuning{
		OverlapFactor: 0.45,
		Restitution:   0.9,
		DragKick:      2.0,
		Damping:       0.98,
		FloorSpeed:    0.2,
		Jitter:        0.05,
		Recovery:      0.05,
		DragSpin:      2.0,
		Bounce:        -0.7,
		Squash:        0.8,
		Stretch:       1.1,
	}
}
