package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbsim/internal/trajectory"
)

// Ensemble flies several independent vehicles through the same planets
// concurrently. Each vehicle is stepped by exactly one goroutine; the
// planets are only read.
type Ensemble struct {
	planets  []*trajectory.Body
	vehicles []*trajectory.Body
	metrics  func(vehicle *trajectory.Body) []Metric
	limit    int
}

func NewEnsemble(planets []*trajectory.Body, vehicles ...*trajectory.Body) *Ensemble {
	return &Ensemble{planets: planets, vehicles: vehicles, limit: -1}
}

// WithMetrics builds a fresh metric set for every vehicle.
func (e *Ensemble) WithMetrics(factory func(vehicle *trajectory.Body) []Metric) *Ensemble {
	e.metrics = factory
	return e
}

// SetLimit caps the number of vehicles in flight; n < 0 means no limit.
func (e *Ensemble) SetLimit(n int) *Ensemble {
	e.limit = n
	return e
}

// Run returns one result per vehicle, in input order. The first failing
// run cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	seen := make(map[*trajectory.Body]bool, len(e.vehicles))
	for _, v := range e.vehicles {
		if seen[v] {
			return nil, fmt.Errorf("sim: vehicle %s listed twice in ensemble", v.Name())
		}
		seen[v] = true
	}

	results := make([]*Result, len(e.vehicles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i, v := range e.vehicles {
		i, v := i, v
		g.Go(func() error {
			sim := New(v, e.planets)
			if e.metrics != nil {
				for _, m := range e.metrics(v) {
					sim.AddMetric(m)
				}
			}
			res, err := sim.Run(ctx, cfg)
			results[i] = res
			if err != nil {
				return fmt.Errorf("%s: %w", v.Name(), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
