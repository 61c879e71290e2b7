// Package particle holds the simulated bodies of the playground.
//
// A [Store] keeps particles in insertion order and only changes cardinality
// through [Store.Create], [Store.Add] and [Store.RemoveLast] (stack
// discipline). Physics never adds or removes bodies.
//
// Positions and velocities are [cp.Vector] values in world units, with y
// growing downward as on screen. Velocities are per-tick displacements.
package particle
