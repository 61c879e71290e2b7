// Package render composes particle and cursor state into frames for the
// terminal and window front ends. Nothing here writes back into the
// simulation.
package render
