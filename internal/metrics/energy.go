package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/trajectory"
	"github.com/san-kum/orbsim/internal/vmath"
)

// specificEnergy is v²/2 - GM/r about primary at second, per unit mass.
func specificEnergy(s trajectory.Snapshot, primary *trajectory.Body, second int, g float64) (float64, bool) {
	center, err := primary.PositionAt(second, false)
	if err != nil {
		return 0, false
	}
	r := vmath.Distance(s.Position, center)
	if r == 0 {
		return 0, false
	}
	mu := g * primary.Current().Mass
	return 0.5*vmath.SqrMagnitude(s.Velocity) - mu/r, true
}

// OrbitalEnergy is the mean specific orbital energy about a primary body.
// Negative values mean the vehicle is bound.
type OrbitalEnergy struct {
	name    string
	primary *trajectory.Body
	g       float64
	total   float64
	samples int
}

func NewOrbitalEnergy(primary *trajectory.Body, g float64) *OrbitalEnergy {
	return &OrbitalEnergy{
		name:    "orbital_energy",
		primary: primary,
		g:       g,
	}
}

func (e *OrbitalEnergy) Name() string { return e.name }

func (e *OrbitalEnergy) Observe(s trajectory.Snapshot, second int) {
	if eps, ok := specificEnergy(s, e.primary, second, e.g); ok {
		e.total += eps
		e.samples++
	}
}

func (e *OrbitalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *OrbitalEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of specific orbital energy
// from the first observation. For an unpowered coast it measures the
// integration error of the one-second step.
type EnergyDrift struct {
	name     string
	primary  *trajectory.Body
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(primary *trajectory.Body, g float64) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		primary: primary,
		g:       g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s trajectory.Snapshot, second int) {
	eps, ok := specificEnergy(s, e.primary, second, e.g)
	if !ok {
		return
	}
	if e.samples == 0 {
		e.initial = eps
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(eps-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
