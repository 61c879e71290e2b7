package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/driftbox/internal/physics"
	"go.uber.org/zap"
)

// maxPrealloc bounds the series capacity reserved up front.
const maxPrealloc = 1 << 16

// Run ticks the simulation headlessly and records one Point per tick. Drivers
// get their BeforeTick call ahead of every tick, and a driver error ends the
// run early. Metrics are reset first and their final values land in Result.Metrics. A particle
// whose state turns NaN or infinite stops the run with a SimError in
// Result.Errors.
func (s *Simulation) Run(ctx context.Context, ticks int) (*Result, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTicks, ticks)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	res := &Result{
		Series:  make([]Point, 0, min(ticks, maxPrealloc)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(res)
			return res, ctx.Err()
		default:
		}

		for _, d := range s.drivers {
			if err := d.BeforeTick(s, s.tick+1); err != nil {
				s.collect(res)
				return res, err
			}
		}

		s.Tick()
		res.Ticks++

		_, dragging := s.tracker.Active()
		res.Series = append(res.Series, Point{
			Tick:      s.tick,
			Particles: s.store.Len(),
			Kinetic:   physics.KineticEnergy(s.store.All()),
			Contacts:  s.last.Contacts,
			WallHits:  s.last.WallHits,
			Dragging:  dragging,
		})

		if err := s.validate(); err != nil {
			res.Errors = append(res.Errors, err)
			s.log.Warn("run stopped", zap.Error(err))
			break
		}
	}

	s.collect(res)
	return res, nil
}

func (s *Simulation) collect(res *Result) {
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulation) validate() error {
	for _, p := range s.store.All() {
		if !finite(p.Pos.X) || !finite(p.Pos.Y) || !finite(p.Vel.X) || !finite(p.Vel.Y) {
			return SimError{Tick: s.tick, ID: uint64(p.ID), Message: "invalid state (NaN/Inf)"}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
