package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/vmath"
)

// Snapshot is the complete kinematic and dynamic state of a body at one
// simulated second. Angles are in degrees.
type Snapshot struct {
	Mass            float64 `json:"mass"`
	Position        r2.Vec  `json:"position"`
	Velocity        r2.Vec  `json:"velocity"`
	Force           r2.Vec  `json:"force"`
	Angle           float64 `json:"angle"`
	AngularVelocity float64 `json:"angular_velocity"`
	Torque          float64 `json:"torque"`
}

// NewSnapshot builds a seed snapshot with no applied force or torque.
func NewSnapshot(mass float64, position, velocity r2.Vec, angle, angularVelocity float64) Snapshot {
	return Snapshot{
		Mass:            mass,
		Position:        position,
		Velocity:        velocity,
		Angle:           angle,
		AngularVelocity: angularVelocity,
	}
}

// Validate checks the mass invariant.
func (s Snapshot) Validate() error {
	if !(s.Mass > 0) {
		return fmt.Errorf("%w (got %g)", ErrInvalidMass, s.Mass)
	}
	return nil
}

// Speed is the magnitude of the velocity.
func (s Snapshot) Speed() float64 {
	return vmath.Magnitude(s.Velocity)
}

// lerpSnapshot blends every field of a and b by t.
func lerpSnapshot(a, b Snapshot, t float64) Snapshot {
	return Snapshot{
		Mass:            vmath.Lerp(a.Mass, b.Mass, t),
		Position:        vmath.LerpVec(a.Position, b.Position, t),
		Velocity:        vmath.LerpVec(a.Velocity, b.Velocity, t),
		Force:           vmath.LerpVec(a.Force, b.Force, t),
		Angle:           vmath.Lerp(a.Angle, b.Angle, t),
		AngularVelocity: vmath.Lerp(a.AngularVelocity, b.AngularVelocity, t),
		Torque:          vmath.Lerp(a.Torque, b.Torque, t),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("velocity: [%g, %g]\nposition: [%g, %g]\nangle: %g\nangular velocity: %g",
		s.Velocity.X, s.Velocity.Y, s.Position.X, s.Position.Y, s.Angle, s.AngularVelocity)
}
