package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Collision describes a sticky collision resolved during a step.
type Collision struct {
	Body   *Body
	Second int
	// Offset is the displacement from the pre-step position to the contact point.
	Offset r2.Vec
}

// Step advances the body by one simulated second under the pull of others,
// which must all be celestial. It returns the collision resolved during the
// step, if any. On error the body is left exactly as it was.
func (b *Body) Step(others []*Body) (*Collision, error) {
	sources, err := b.sources(others)
	if err != nil {
		return nil, &StepError{Body: b.name, Second: b.localSecond, Wrapped: err}
	}

	next, hit, err := b.advance(sources)
	if err != nil {
		return nil, &StepError{Body: b.name, Second: b.localSecond, Wrapped: err}
	}

	b.current = next
	b.localSecond++
	if b.localSecond%b.cfg.SnapshotInterval == 0 {
		b.history = append(b.history, next)
	}
	return hit, nil
}

// sources drops the body itself and rejects anything non-celestial.
func (b *Body) sources(others []*Body) ([]*Body, error) {
	out := make([]*Body, 0, len(others))
	for _, other := range others {
		if other == nil || other == b {
			continue
		}
		if !other.IsCelestial() {
			return nil, fmt.Errorf("%w: %s", ErrNotCelestial, other.name)
		}
		out = append(out, other)
	}
	return out, nil
}

// advance computes the next state from the current one without touching b.
func (b *Body) advance(others []*Body) (Snapshot, *Collision, error) {
	s := b.current
	if err := s.Validate(); err != nil {
		return Snapshot{}, nil, err
	}

	force, err := b.forces(s, others)
	if err != nil {
		return Snapshot{}, nil, err
	}
	s.Force = force
	s.Velocity = r2.Add(s.Velocity, r2.Scale(1/s.Mass, force))

	torque, err := b.torque(s)
	if err != nil {
		return Snapshot{}, nil, err
	}
	s.Torque = torque
	dw, err := angularDelta(torque, s.Mass, b.drive.Length())
	if err != nil {
		return Snapshot{}, nil, err
	}
	s.AngularVelocity += dw

	struck, offset, err := b.firstCollision(s, others)
	if err != nil {
		return Snapshot{}, nil, err
	}

	var hit *Collision
	if struck != nil {
		v, err := struck.VelocityAt(b.localSecond, false)
		if err != nil {
			return Snapshot{}, nil, err
		}
		s.Position = r2.Add(s.Position, offset)
		s.Velocity = v
		hit = &Collision{Body: struck, Second: b.localSecond, Offset: offset}
	} else {
		s.Position = r2.Add(s.Position, s.Velocity)
	}

	s.Angle += s.AngularVelocity
	return s, hit, nil
}
