// Package trajectory integrates planar bodies one simulated second at a time
// and answers time-indexed queries against their recorded history.
//
// A Body is either inert (a plain trajectory or a celestial sphere with a
// radius) or powered by a Thruster. Every Step evaluates gravity from the
// given celestial bodies plus the body's own propulsion, integrates with
// semi-implicit Euler, resolves sticky collisions and records a snapshot on
// the configured interval.
package trajectory

import (
	"fmt"
	"math"
)

// StandardG is the universal gravitational constant in m³/(kg·s²).
const StandardG = 6.6743e-11

// Config holds the per-body simulation settings.
type Config struct {
	// G is the gravitational constant applied by this body's force model.
	G float64
	// SnapshotInterval is the stride, in seconds, between history entries.
	SnapshotInterval int
	// PhaseOffset shifts lookups by a fraction of the history length, for
	// bodies whose history is a closed, repeating orbit.
	PhaseOffset float64
}

func DefaultConfig() Config {
	return Config{
		G:                StandardG,
		SnapshotInterval: 1,
	}
}

func (c Config) validate() error {
	if c.SnapshotInterval < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidInterval, c.SnapshotInterval)
	}
	if math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return fmt.Errorf("trajectory: gravitational constant must be finite (got %g)", c.G)
	}
	return nil
}

// Body owns a live snapshot and the append-only history of committed ones.
// It is not safe for concurrent use while stepping.
type Body struct {
	name        string
	cfg         Config
	radius      float64
	drive       Propulsion
	current     Snapshot
	history     []Snapshot
	localSecond int
}

func newBody(name string, seed Snapshot, cfg Config, radius float64, drive Propulsion) (*Body, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Body{
		name:    name,
		cfg:     cfg,
		radius:  radius,
		drive:   drive,
		current: seed,
		history: []Snapshot{seed},
	}, nil
}

// NewBody creates an unpowered body that is neither a gravity source nor a
// collision target.
func NewBody(name string, seed Snapshot, cfg Config) (*Body, error) {
	return newBody(name, seed, cfg, 0, inert{})
}

// NewCelestial creates a non-propelled gravitating sphere.
func NewCelestial(name string, seed Snapshot, radius float64, cfg Config) (*Body, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%s: %w (got %g)", name, ErrInvalidRadius, radius)
	}
	return newBody(name, seed, cfg, radius, inert{length: radius * 2})
}

// NewThrustBody creates a powered vehicle.
func NewThrustBody(name string, seed Snapshot, params ThrustParams, cfg Config) (*Body, error) {
	thruster, err := NewThruster(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newBody(name, seed, cfg, 0, thruster)
}

// NewFromHistory restores a body from a precomputed history, such as a
// closed orbit or a stored run. A positive radius makes it celestial; a
// non-nil drive makes it powered. The live state is the last entry.
func NewFromHistory(name string, history []Snapshot, radius float64, drive Propulsion, cfg Config) (*Body, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyHistory)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i, s := range history {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: snapshot %d: %w", name, i, err)
		}
	}
	if radius < 0 {
		return nil, fmt.Errorf("%s: %w (got %g)", name, ErrInvalidRadius, radius)
	}
	if drive == nil {
		drive = inert{length: radius * 2}
	}
	return &Body{
		name:        name,
		cfg:         cfg,
		radius:      radius,
		drive:       drive,
		current:     history[len(history)-1],
		history:     append([]Snapshot(nil), history...),
		localSecond: (len(history) - 1) * cfg.SnapshotInterval,
	}, nil
}

func (b *Body) Name() string      { return b.name }
func (b *Body) Config() Config    { return b.cfg }
func (b *Body) Radius() float64   { return b.radius }
func (b *Body) IsCelestial() bool { return b.radius > 0 }

// Current returns the live state.
func (b *Body) Current() Snapshot { return b.current }

// LocalSecond is the number of seconds this body has been stepped through.
func (b *Body) LocalSecond() int { return b.localSecond }

// Len is the number of recorded snapshots.
func (b *Body) Len() int { return len(b.history) }

// History returns a copy of the recorded snapshots.
func (b *Body) History() []Snapshot {
	return append([]Snapshot(nil), b.history...)
}

// Propulsion returns the body's own force model.
func (b *Body) Propulsion() Propulsion { return b.drive }

// Thruster returns the vehicle's thruster, if the body is powered.
func (b *Body) Thruster() (*Thruster, bool) {
	t, ok := b.drive.(*Thruster)
	return t, ok
}
