package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/keyframe"
	"github.com/san-kum/orbsim/internal/vmath"
)

// Defaults taken from the Saturn V first stage.
const (
	DefaultExhaustVelocity = 2400.0   // m/s
	DefaultFuelBurnRate    = 14000.0  // kg/s
	DefaultMaxTorque       = 200000.0 // N·m
)

// Propulsion is the force and torque a body produces on its own, on top of
// gravity. Profiles are keyed on the body's local second.
type Propulsion interface {
	Thrust(s Snapshot, second int) r2.Vec
	Torque(s Snapshot, second int) float64
	// Length is the characteristic length used for the moment of inertia.
	Length() float64
}

// inert bodies never propel themselves.
type inert struct {
	length float64
}

func (inert) Thrust(Snapshot, int) r2.Vec  { return r2.Vec{} }
func (inert) Torque(Snapshot, int) float64 { return 0 }
func (i inert) Length() float64            { return i.length }

// ThrustParams configures a powered vehicle.
type ThrustParams struct {
	ThrustKeys      []keyframe.Key
	AngularKeys     []keyframe.Key
	Length          float64
	ExhaustVelocity float64
	FuelBurnRate    float64
	MaxTorque       float64
}

// DefaultThrustParams fills the engine figures with the package defaults.
func DefaultThrustParams(thrust, angular []keyframe.Key, length float64) ThrustParams {
	return ThrustParams{
		ThrustKeys:      thrust,
		AngularKeys:     angular,
		Length:          length,
		ExhaustVelocity: DefaultExhaustVelocity,
		FuelBurnRate:    DefaultFuelBurnRate,
		MaxTorque:       DefaultMaxTorque,
	}
}

// Thruster drives a vehicle from a thrust-level profile and an
// angular-thrust-level profile.
type Thruster struct {
	thrust          *keyframe.Profile
	angular         *keyframe.Profile
	length          float64
	exhaustVelocity float64
	fuelBurnRate    float64
	maxTorque       float64
}

func NewThruster(p ThrustParams) (*Thruster, error) {
	if !(p.Length > 0) {
		return nil, fmt.Errorf("%w (got %g)", ErrInvalidVehicleLength, p.Length)
	}
	thrust, err := keyframe.New(p.ThrustKeys)
	if err != nil {
		return nil, fmt.Errorf("thrust profile: %w", err)
	}
	angular, err := keyframe.New(p.AngularKeys)
	if err != nil {
		return nil, fmt.Errorf("angular thrust profile: %w", err)
	}
	return &Thruster{
		thrust:          thrust,
		angular:         angular,
		length:          p.Length,
		exhaustVelocity: p.ExhaustVelocity,
		fuelBurnRate:    p.FuelBurnRate,
		maxTorque:       p.MaxTorque,
	}, nil
}

// ThrustLevel is the thrust profile value at second.
func (t *Thruster) ThrustLevel(second int) float64 {
	return t.thrust.At(float64(second))
}

// AngularLevel is the angular-thrust profile value at second.
func (t *Thruster) AngularLevel(second int) float64 {
	return t.angular.At(float64(second))
}

// Thrust points along the vehicle's heading, 0° being +x.
func (t *Thruster) Thrust(s Snapshot, second int) r2.Vec {
	accel := t.exhaustVelocity * t.fuelBurnRate * t.ThrustLevel(second)
	return r2.Scale(accel, vmath.DirFromAngle(s.Angle))
}

// Torque is positive counter-clockwise.
func (t *Thruster) Torque(s Snapshot, second int) float64 {
	return t.maxTorque * t.AngularLevel(second) * t.length / 2
}

func (t *Thruster) Length() float64 { return t.length }

// Duration is the time of the last key across both profiles.
func (t *Thruster) Duration() float64 {
	return max(t.thrust.Duration(), t.angular.Duration())
}
