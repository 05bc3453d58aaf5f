package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/keyframe"
	"github.com/san-kum/orbsim/internal/trajectory"
)

func earth(t *testing.T, pos r2.Vec) *trajectory.Body {
	t.Helper()
	seed := trajectory.NewSnapshot(5.9722e24, pos, r2.Vec{}, 0, 0)
	b, err := trajectory.NewCelestial("earth", seed, 6371000, trajectory.DefaultConfig())
	if err != nil {
		t.Fatalf("earth: %v", err)
	}
	return b
}

func TestOrbitalEnergy(t *testing.T) {
	e := earth(t, r2.Vec{})
	m := NewOrbitalEnergy(e, trajectory.StandardG)

	s := trajectory.NewSnapshot(1, r2.Vec{X: 7e6}, r2.Vec{Y: 7500}, 0, 0)
	m.Observe(s, 0)

	want := 0.5*7500*7500 - trajectory.StandardG*5.9722e24/7e6
	if math.Abs(m.Value()-want) > 1e-6*math.Abs(want) {
		t.Errorf("expected energy %g, got %g", want, m.Value())
	}
	if m.Value() >= 0 {
		t.Error("low orbit should be bound")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %g", m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	e := earth(t, r2.Vec{})
	m := NewEnergyDrift(e, trajectory.StandardG)

	s := trajectory.NewSnapshot(1, r2.Vec{X: 7e6}, r2.Vec{Y: 7500}, 0, 0)
	m.Observe(s, 0)
	m.Observe(s, 1)
	if m.Value() != 0 {
		t.Errorf("identical states should not drift, got %g", m.Value())
	}

	faster := s
	faster.Velocity = r2.Vec{Y: 7600}
	m.Observe(faster, 2)
	if m.Value() <= 0 {
		t.Error("expected drift after speed change")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestEnergySkipsCenter(t *testing.T) {
	e := earth(t, r2.Vec{})
	m := NewOrbitalEnergy(e, trajectory.StandardG)

	m.Observe(trajectory.NewSnapshot(1, r2.Vec{}, r2.Vec{}, 0, 0), 0)
	if m.Value() != 0 {
		t.Errorf("sample at the center should be skipped, got %g", m.Value())
	}
}

func TestThrustEffort(t *testing.T) {
	th, err := trajectory.NewThruster(trajectory.DefaultThrustParams(
		keyframe.FromValues([]float64{1, 0.5}),
		keyframe.FromValues([]float64{-0.5, 0}),
		10,
	))
	if err != nil {
		t.Fatal(err)
	}
	m := NewThrustEffort(th)

	m.Observe(trajectory.Snapshot{}, 0)
	m.Observe(trajectory.Snapshot{}, 1)
	if got := m.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected effort 1, got %g", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}

	idle := NewThrustEffort(nil)
	idle.Observe(trajectory.Snapshot{}, 0)
	if idle.Value() != 0 {
		t.Error("unpowered body should have no effort")
	}
}

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	for _, v := range []r2.Vec{{X: 3, Y: 4}, {X: 1}, {Y: -12}} {
		m.Observe(trajectory.NewSnapshot(1, r2.Vec{}, v, 0, 0), 0)
	}
	if m.Value() != 12 {
		t.Errorf("expected 12, got %g", m.Value())
	}
}

func TestClosestApproach(t *testing.T) {
	e := earth(t, r2.Vec{Y: -6371000})
	m := NewClosestApproach([]*trajectory.Body{e})

	if !math.IsInf(m.Value(), 1) {
		t.Errorf("expected +Inf before observing, got %g", m.Value())
	}

	for _, y := range []float64{500, 120, 300} {
		m.Observe(trajectory.NewSnapshot(1, r2.Vec{Y: y}, r2.Vec{}, 0, 0), 0)
	}
	if math.Abs(m.Value()-120) > 1e-6 {
		t.Errorf("expected 120, got %g", m.Value())
	}

	m.Observe(trajectory.NewSnapshot(1, r2.Vec{Y: -10}, r2.Vec{}, 0, 0), 0)
	if m.Value() != 0 {
		t.Errorf("below the surface should read 0, got %g", m.Value())
	}
}

func TestAltitudeNearest(t *testing.T) {
	a := earth(t, r2.Vec{X: -1e8})
	b := earth(t, r2.Vec{X: 1e7})

	alt, nearest := Altitude(trajectory.NewSnapshot(1, r2.Vec{}, r2.Vec{}, 0, 0), []*trajectory.Body{a, b}, 0)
	if nearest != b {
		t.Fatal("expected the closer planet")
	}
	if math.Abs(alt-(1e7-6371000)) > 1e-6 {
		t.Errorf("unexpected altitude %g", alt)
	}

	alt, nearest = Altitude(trajectory.Snapshot{}, nil, 0)
	if nearest != nil || !math.IsInf(alt, 1) {
		t.Error("expected no planet")
	}
}
