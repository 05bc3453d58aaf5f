package trajectory

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/keyframe"
	"github.com/san-kum/orbsim/internal/vmath"
)

func TestGravityMagnitude(t *testing.T) {
	g := NewWithT(t)

	const m1, m2 = 1e4, 5.9722e24
	offsets := []r2.Vec{
		{X: 3, Y: 4},
		{X: -6371000},
		{Y: 1e7},
		{X: -250, Y: -1e3},
	}

	for _, off := range offsets {
		origin := r2.Vec{X: 17, Y: -3}
		body := planet(t, "earth", r2.Add(origin, off), m2, 1)

		force, err := Gravity(origin, m1, []*Body{body}, 0, StandardG)
		g.Expect(err).NotTo(HaveOccurred())

		d2 := vmath.SqrMagnitude(off)
		want := StandardG * m1 * m2 / d2
		g.Expect(vmath.Magnitude(force)).To(BeNumerically("~", want, want*1e-12))

		// pulls toward the body
		g.Expect(r2.Dot(vmath.Normalize(force), vmath.Normalize(off))).To(BeNumerically("~", 1, 1e-12))
	}
}

func TestGravityNoSources(t *testing.T) {
	g := NewWithT(t)

	force, err := Gravity(r2.Vec{X: 1, Y: 1}, 100, nil, 0, StandardG)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(force).To(Equal(r2.Vec{}))
}

func TestGravitySumsSources(t *testing.T) {
	g := NewWithT(t)

	left := planet(t, "left", r2.Vec{X: -10}, 1e12, 1)
	right := planet(t, "right", r2.Vec{X: 10}, 1e12, 1)

	force, err := Gravity(r2.Vec{}, 1, []*Body{left, right}, 0, StandardG)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vmath.Magnitude(force)).To(BeNumerically("<", 1e-15))
}

func TestGravityUsesRecordedPosition(t *testing.T) {
	g := NewWithT(t)

	history := []Snapshot{
		NewSnapshot(1e12, r2.Vec{X: 10}, r2.Vec{}, 0, 0),
		NewSnapshot(1e12, r2.Vec{Y: 10}, r2.Vec{}, 0, 0),
	}
	orbit, err := NewFromHistory("orbit", history, 1, nil, DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())

	force, err := Gravity(r2.Vec{}, 1, []*Body{orbit}, 1, StandardG)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(force.X).To(BeNumerically("~", 0, 1e-18))
	g.Expect(force.Y).To(BeNumerically(">", 0))
}

func TestThrusterForceAndTorque(t *testing.T) {
	g := NewWithT(t)

	th, err := NewThruster(ThrustParams{
		ThrustKeys:      []keyframe.Key{{Time: 0, Value: 0}, {Time: 10, Value: 1}},
		AngularKeys:     []keyframe.Key{{Time: 0, Value: -0.5}},
		Length:          4,
		ExhaustVelocity: 100,
		FuelBurnRate:    10,
		MaxTorque:       1000,
	})
	g.Expect(err).NotTo(HaveOccurred())

	s := NewSnapshot(1, r2.Vec{}, r2.Vec{}, 90, 0)
	thrust := th.Thrust(s, 5)
	g.Expect(thrust.X).To(BeNumerically("~", 0, 1e-9))
	g.Expect(thrust.Y).To(BeNumerically("~", 500, 1e-9))

	g.Expect(th.Torque(s, 3)).To(Equal(-1000.0))
	g.Expect(th.Length()).To(Equal(4.0))
	g.Expect(th.Duration()).To(Equal(10.0))
}

func TestAngularDelta(t *testing.T) {
	g := NewWithT(t)

	dw, err := angularDelta(12, 1, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dw).To(BeNumerically("~", 144*180/math.Pi, 1e-9))

	_, err = angularDelta(1, 1, 0)
	g.Expect(err).To(MatchError(ErrInvalidVehicleLength))

	dw, err = angularDelta(0, 1, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dw).To(BeZero())
}
