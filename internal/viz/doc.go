// Package viz holds the terminal drawing pieces shared by the playground and
// the CLI: a braille canvas with per-cell colour, lipgloss styles, and
// asciigraph plots of run series.
package viz
