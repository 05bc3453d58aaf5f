// Package sim drives a vehicle through a scenario one simulated second at a
// time. Planets are read-only during a run: their motion must already be
// recorded, or they stay at their seed state.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/orbsim/internal/logging"
	"github.com/san-kum/orbsim/internal/telemetry"
	"github.com/san-kum/orbsim/internal/trajectory"
)

type Simulator struct {
	vehicle   *trajectory.Body
	planets   []*trajectory.Body
	metrics   []Metric
	observers []Observer
	telemetry *telemetry.Collector
	log       *logging.Logger
}

func New(vehicle *trajectory.Body, planets []*trajectory.Body) *Simulator {
	return &Simulator{
		vehicle:   vehicle,
		planets:   planets,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logging.Discard(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// WithTelemetry records every step into c.
func (s *Simulator) WithTelemetry(c *telemetry.Collector) *Simulator {
	s.telemetry = c
	return s
}

func (s *Simulator) WithLogger(l *logging.Logger) *Simulator {
	s.log = l.Component("sim")
	return s
}

func (s *Simulator) Vehicle() *trajectory.Body   { return s.vehicle }
func (s *Simulator) Planets() []*trajectory.Body { return s.planets }

// Run steps the vehicle cfg.Steps times. On a step failure or cancellation
// the partial result is returned together with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Vehicle:    s.vehicle,
		Planets:    s.planets,
		Collisions: make([]Event, 0),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("run started", "vehicle", s.vehicle.Name(), "planets", len(s.planets), "steps", cfg.Steps)

	err := s.loop(ctx, cfg, func(st trajectory.Snapshot, second int, hit *trajectory.Collision) bool {
		result.StepsTaken++
		for _, m := range s.metrics {
			m.Observe(st, second)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, second)
		}
		if hit == nil {
			return true
		}
		result.Collisions = append(result.Collisions, Event{
			Second: hit.Second,
			Target: hit.Body.Name(),
			Offset: hit.Offset,
		})
		if cfg.StopOnCollision {
			result.Stopped = true
			return false
		}
		return true
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if err != nil {
		s.log.Failure("run failed", err, "vehicle", s.vehicle.Name(), "steps_taken", result.StepsTaken)
		return result, err
	}
	s.log.Info("run finished",
		"vehicle", s.vehicle.Name(),
		"steps_taken", result.StepsTaken,
		"collisions", len(result.Collisions),
		"speed", result.Final().Speed(),
	)
	return result, nil
}

// RunWithCallback steps the vehicle, handing every committed state to
// callback, until cfg.Steps are done or callback returns false. Metrics and
// observers are not fed.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(trajectory.Snapshot, int, *trajectory.Collision) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	return s.loop(ctx, cfg, func(st trajectory.Snapshot, second int, hit *trajectory.Collision) bool {
		if !callback(st, second, hit) {
			return false
		}
		return hit == nil || !cfg.StopOnCollision
	})
}

func (s *Simulator) loop(ctx context.Context, cfg Config, onStep func(trajectory.Snapshot, int, *trajectory.Collision) bool) error {
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		st, hit, err := s.Step()
		if err != nil {
			return err
		}
		if !onStep(st, s.vehicle.LocalSecond(), hit) {
			return nil
		}
	}
	return nil
}

// Step advances the vehicle by one second and returns its new state. It is
// the single-tick form of Run for interactive drivers; metrics and
// observers are not fed.
func (s *Simulator) Step() (trajectory.Snapshot, *trajectory.Collision, error) {
	name := s.vehicle.Name()
	start := time.Now()
	hit, err := s.vehicle.Step(s.planets)
	if err != nil {
		return trajectory.Snapshot{}, nil, err
	}
	st := s.vehicle.Current()

	if s.telemetry != nil {
		s.telemetry.RecordStep(name, st.Speed(), time.Since(start))
	}
	if hit != nil {
		s.log.Info("collision", "vehicle", name, "target", hit.Body.Name(), "second", hit.Second)
		if s.telemetry != nil {
			s.telemetry.RecordCollision(name, hit.Body.Name())
		}
	}
	return st, hit, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSteps, cfg.Steps)
	}
	if s.vehicle == nil {
		return fmt.Errorf("sim: no vehicle")
	}
	return nil
}
