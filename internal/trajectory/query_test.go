package trajectory

import (
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

func linearHistory(t *testing.T, interval int, xs ...float64) *Body {
	t.Helper()
	history := make([]Snapshot, len(xs))
	for i, x := range xs {
		history[i] = NewSnapshot(1, r2.Vec{X: x}, r2.Vec{Y: x}, x, 2*x)
	}
	cfg := DefaultConfig()
	cfg.SnapshotInterval = interval
	b, err := NewFromHistory("track", history, 0, nil, cfg)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return b
}

func TestPositionAtMidSample(t *testing.T) {
	g := NewWithT(t)
	b := linearHistory(t, 10, 0, 10)

	pos, err := b.PositionAt(5, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 5}))

	vel, err := b.VelocityAt(5, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vel).To(Equal(r2.Vec{Y: 5}))

	angle, err := b.AngleAt(5, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(angle).To(Equal(5.0))

	omega, err := b.AngularVelocityAt(5, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(omega).To(Equal(10.0))
}

func TestPositionAtExactSample(t *testing.T) {
	g := NewWithT(t)
	b := linearHistory(t, 1, 0, 3.25, 7.5, -1)

	for i, want := range []float64{0, 3.25, 7.5, -1} {
		pos, err := b.PositionAt(i, false)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(pos.X).To(Equal(want))
	}
}

func TestInterpolatedFraction(t *testing.T) {
	b := linearHistory(t, 10, 0, 10, 20, 30)

	tests := []struct {
		name    string
		t       int
		clamped bool
		index   int
		next    int
		frac    float64
	}{
		{"start", 0, false, 0, 1, 0},
		{"inside", 15, false, 1, 2, 0.5},
		{"last wraps to first", 35, false, 3, 0, 0.5},
		{"beyond wraps", 45, false, 0, 1, 0.5},
		{"negative wraps", -5, false, 3, 0, 0.5},
		{"clamped inside", 15, true, 1, 2, 0.5},
		{"clamped start", 0, true, 0, 0, 0},
		{"clamped before", -20, true, 0, 0, 0},
		{"clamped at last", 30, true, 3, 3, 1},
		{"clamped after", 500, true, 3, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, frac, err := b.InterpolatedFraction(tt.t, tt.clamped)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if i != tt.index || j != tt.next {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.index, tt.next, i, j)
			}
			if frac != tt.frac {
				t.Errorf("expected fraction %v, got %v", tt.frac, frac)
			}
		})
	}
}

func TestClampedQueriesHoldEnds(t *testing.T) {
	g := NewWithT(t)
	b := linearHistory(t, 1, 0, 10, 20)

	pos, err := b.PositionAt(100, true)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 20}))

	pos, err = b.PositionAt(-3, true)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 0}))

	// unclamped, a closed history repeats
	pos, err = b.PositionAt(4, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 10}))
}

func TestPhaseOffset(t *testing.T) {
	g := NewWithT(t)

	history := make([]Snapshot, 4)
	for i := range history {
		history[i] = NewSnapshot(1, r2.Vec{X: float64(i)}, r2.Vec{}, 0, 0)
	}
	cfg := DefaultConfig()
	cfg.PhaseOffset = 0.25
	b, err := NewFromHistory("orbit", history, 1, nil, cfg)
	g.Expect(err).NotTo(HaveOccurred())

	pos, err := b.PositionAt(0, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 1}))

	pos, err = b.PositionAt(3, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(r2.Vec{X: 0}))
}

func TestSnapshotAt(t *testing.T) {
	g := NewWithT(t)
	b := linearHistory(t, 2, 0, 4)

	s, err := b.SnapshotAt(1, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Position).To(Equal(r2.Vec{X: 2}))
	g.Expect(s.Angle).To(Equal(2.0))
	g.Expect(s.Mass).To(Equal(1.0))
}

func TestQueryEmptyHistory(t *testing.T) {
	g := NewWithT(t)

	b := &Body{name: "ghost", cfg: DefaultConfig()}
	_, err := b.PositionAt(0, false)
	g.Expect(err).To(MatchError(ErrEmptyHistory))
}
