package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/vmath"
)

// InterpolatedFraction maps simulated second t to the pair of history
// entries bracketing it and the blend fraction between them.
//
// Unclamped lookups, and clamped lookups strictly inside the history, wrap
// modulo the history length so a recorded closed orbit repeats forever.
// Clamped lookups outside the history hold the first entry (fraction 0) or
// the last one (fraction 1).
func (b *Body) InterpolatedFraction(t int, clamped bool) (index, next int, frac float64, err error) {
	n := len(b.history)
	if n == 0 {
		return 0, 0, 0, fmt.Errorf("%s: %w", b.name, ErrEmptyHistory)
	}

	count := float64(n)
	raw := float64(t)/float64(b.cfg.SnapshotInterval) + count*b.cfg.PhaseOffset
	within := raw > 0 && raw < count-1

	if !clamped || within {
		raw = math.Mod(raw, count)
		if raw < 0 {
			raw += count
		}
		index = int(math.Floor(raw))
		if index == n {
			// raw rounded up to count after wrapping a tiny negative value
			index, raw = 0, 0
		}
		next = (index + 1) % n
		frac = raw - float64(index)
	} else if raw >= count-1 {
		index, next, frac = n-1, n-1, 1
	} else {
		index, next, frac = 0, 0, 0
	}

	if index < 0 || index >= n || next < 0 || next >= n {
		return 0, 0, 0, fmt.Errorf("%s: %w: %d | %d (history %d)", b.name, ErrIndexOutOfRange, index, next, n)
	}
	return index, next, frac, nil
}

func (b *Body) bracket(t int, clamped bool) (Snapshot, Snapshot, float64, error) {
	i, j, frac, err := b.InterpolatedFraction(t, clamped)
	if err != nil {
		return Snapshot{}, Snapshot{}, 0, err
	}
	return b.history[i], b.history[j], frac, nil
}

// SnapshotAt interpolates every field of the recorded state at second t.
func (b *Body) SnapshotAt(t int, clamped bool) (Snapshot, error) {
	a, c, frac, err := b.bracket(t, clamped)
	if err != nil {
		return Snapshot{}, err
	}
	return lerpSnapshot(a, c, frac), nil
}

func (b *Body) PositionAt(t int, clamped bool) (r2.Vec, error) {
	a, c, frac, err := b.bracket(t, clamped)
	if err != nil {
		return r2.Vec{}, err
	}
	return vmath.LerpVec(a.Position, c.Position, frac), nil
}

func (b *Body) VelocityAt(t int, clamped bool) (r2.Vec, error) {
	a, c, frac, err := b.bracket(t, clamped)
	if err != nil {
		return r2.Vec{}, err
	}
	return vmath.LerpVec(a.Velocity, c.Velocity, frac), nil
}

func (b *Body) AngleAt(t int, clamped bool) (float64, error) {
	a, c, frac, err := b.bracket(t, clamped)
	if err != nil {
		return 0, err
	}
	return vmath.Lerp(a.Angle, c.Angle, frac), nil
}

func (b *Body) AngularVelocityAt(t int, clamped bool) (float64, error) {
	a, c, frac, err := b.bracket(t, clamped)
	if err != nil {
		return 0, err
	}
	return vmath.Lerp(a.AngularVelocity, c.AngularVelocity, frac), nil
}
