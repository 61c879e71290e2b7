// Package physics resolves contacts between particles and integrates their
// motion one display frame at a time. Quantities are per tick, not per second.
package physics
