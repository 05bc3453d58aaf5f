package trajectory

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/vmath"
)

// DetectCollision intersects the one-second path of a body at p moving with
// velocity v against a circle of radius r centred on q. On a hit it returns
// the displacement from p to the entry point.
//
// The path is the line y = m·x through p with m = v.y/v.x; substituting it
// into the circle gives a quadratic in the relative x coordinate. Mostly
// vertical motion solves the same quadratic with the axes swapped, so |m|
// never exceeds one.
func DetectCollision(p, v, q r2.Vec, r float64) (r2.Vec, bool) {
	if v.X == 0 && v.Y == 0 {
		return r2.Vec{}, false
	}
	c := r2.Sub(q, p)
	if math.Abs(v.X) >= math.Abs(v.Y) {
		along, across, ok := intersect(c.X, c.Y, v.X, v.Y, r)
		return r2.Vec{X: along, Y: across}, ok
	}
	along, across, ok := intersect(c.Y, c.X, v.Y, v.X, r)
	return r2.Vec{X: across, Y: along}, ok
}

// intersect solves along the axis whose velocity component vMain is
// non-zero. cMain and cCross are the circle centre's offsets on that axis
// and the other one.
func intersect(cMain, cCross, vMain, vCross, r float64) (along, across float64, ok bool) {
	m := vCross / vMain

	a := m*m + 1
	b := -2*cMain - 2*m*cCross
	c := cMain*cMain + cCross*cCross - r*r

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}

	// pick the intersection first reached in the direction of travel
	sign := vmath.Sign(vMain)
	root := (-b - sign*math.Sqrt(disc)) / (2 * a)

	if !(0 < sign*root && sign*root < math.Abs(vMain)) {
		return 0, 0, false
	}
	return root, root * m, true
}

// firstCollision checks others in slice order and stops at the first body
// whose surface lies on this step's path. It does not look for the nearest.
func (b *Body) firstCollision(s Snapshot, others []*Body) (*Body, r2.Vec, error) {
	for _, other := range others {
		q, err := other.PositionAt(b.localSecond, false)
		if err != nil {
			return nil, r2.Vec{}, err
		}
		if offset, ok := DetectCollision(s.Position, s.Velocity, q, other.radius); ok {
			return other, offset, nil
		}
	}
	return nil, r2.Vec{}, nil
}
