package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent headless simulations with consecutive seeds in
// parallel. Each run gets its own metrics from the factory.
type Ensemble struct {
	opts      Options
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(opts Options, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{opts: opts, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts := e.opts
			opts.Seed = e.seedStart + int64(idx)

			var extra []Option
			if e.metrics != nil {
				for _, m := range e.metrics() {
					extra = append(extra, WithMetric(m))
				}
			}

			s, err := New(opts, extra...)
			if err != nil {
				errs[idx] = err
				return
			}
			defer s.Close()
			results[idx], errs[idx] = s.Run(ctx, ticks)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
