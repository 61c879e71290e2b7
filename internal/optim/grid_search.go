package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/driftbox/internal/sim"
)

// Goal says whether the searched metric should be pushed down or up.
type Goal int

const (
	Minimize Goal = iota
	Maximize
)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs every grid point for ticks and returns the best trial by
// metricName along with all trials in grid order. build must return a fresh
// simulation that reports metricName.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*sim.Simulation, error),
	ticks int,
	metricName string,
	goal Goal,
) (Trial, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Trial{Value: math.Inf(1)}
	if goal == Maximize {
		best.Value = math.Inf(-1)
	}
	trials := make([]Trial, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		s, err := build(params)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := s.Run(ctx, ticks)
		if err != nil {
			return err
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: metric %q not reported", metricName)
		}

		trial := Trial{Params: params, Value: val}
		trials = append(trials, trial)
		if (goal == Minimize && val < best.Value) || (goal == Maximize && val > best.Value) {
			best = trial
		}
		return nil
	})
	if err != nil {
		return Trial{}, trials, err
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}
