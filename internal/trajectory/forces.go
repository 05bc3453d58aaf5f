package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/vmath"
)

// Gravity sums the pull of every body on a point mass at pos, using each
// body's recorded position at second. Bodies must not coincide with pos.
func Gravity(pos r2.Vec, mass float64, bodies []*Body, second int, g float64) (r2.Vec, error) {
	var force r2.Vec
	for _, body := range bodies {
		bodyPos, err := body.PositionAt(second, false)
		if err != nil {
			return r2.Vec{}, err
		}
		force = r2.Add(force, pull(pos, mass, bodyPos, body.current.Mass, g))
	}
	return force, nil
}

// pull is the inverse-square attraction of a mass at to on a mass at from.
func pull(from r2.Vec, m1 float64, to r2.Vec, m2 float64, g float64) r2.Vec {
	dir := r2.Sub(to, from)
	raw := g * m1 * m2 / vmath.SqrMagnitude(dir)
	return r2.Scale(raw, vmath.Normalize(dir))
}

// angularDelta converts torque to a change of angular velocity in deg/s,
// treating the body as a uniform rod pivoting at its centre.
func angularDelta(torque, mass, length float64) (float64, error) {
	if torque == 0 {
		return 0, nil
	}
	if !(length > 0) {
		return 0, fmt.Errorf("%w (got %g)", ErrInvalidVehicleLength, length)
	}
	inertia := mass * length * length / 12
	return vmath.RadToDeg(torque / inertia), nil
}

// forces returns the total force on s: gravity plus the body's propulsion.
func (b *Body) forces(s Snapshot, others []*Body) (r2.Vec, error) {
	gravity, err := Gravity(s.Position, s.Mass, others, b.localSecond, b.cfg.G)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Add(gravity, b.drive.Thrust(s, b.localSecond)), nil
}

func (b *Body) torque(s Snapshot) (float64, error) {
	torque := b.drive.Torque(s, b.localSecond)
	if !vmath.IsFinite(torque) {
		return 0, fmt.Errorf("%w (got %g)", ErrNonFiniteTorque, torque)
	}
	return torque, nil
}
