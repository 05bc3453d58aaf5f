package sim

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/trajectory"
)

var ErrInvalidSteps = errors.New("sim: steps must be positive")

// Metric folds the vehicle's committed states into one number.
type Metric interface {
	Name() string
	Observe(s trajectory.Snapshot, second int)
	Value() float64
	Reset()
}

// Observer sees every committed vehicle state.
type Observer interface {
	OnStep(s trajectory.Snapshot, second int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s trajectory.Snapshot, second int)

func (f ObserverFunc) OnStep(s trajectory.Snapshot, second int) { f(s, second) }

type Config struct {
	Steps int
	// StopOnCollision ends the run after the first collision, leaving the
	// vehicle resting on the surface it struck.
	StopOnCollision bool
}

// Event records one collision of the vehicle.
type Event struct {
	Second int    `json:"second"`
	Target string `json:"target"`
	Offset r2.Vec `json:"offset"`
}

type Result struct {
	Vehicle    *trajectory.Body
	Planets    []*trajectory.Body
	StepsTaken int
	Collisions []Event
	Metrics    map[string]float64
	// Stopped is set when the run ended early on a collision.
	Stopped bool
}

// Final is the vehicle's state at the end of the run.
func (r *Result) Final() trajectory.Snapshot {
	return r.Vehicle.Current()
}
