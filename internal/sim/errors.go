package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a simulation after Close.
	ErrClosed = errors.New("sim: simulation closed")

	// ErrInvalidTicks is returned by Run for a non-positive tick count.
	ErrInvalidTicks = errors.New("sim: tick count must be positive")

	// ErrInvalidOptions wraps option validation failures.
	ErrInvalidOptions = errors.New("sim: invalid options")
)

// SimError records a problem detected at a specific tick.
type SimError struct {
	Tick    uint64
	ID      uint64
	Message string
}

func (e SimError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("tick %d: particle %d: %s", e.Tick, e.ID, e.Message)
	}
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
