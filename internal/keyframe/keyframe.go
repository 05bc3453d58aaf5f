// Package keyframe evaluates sparse, time-ordered control profiles such as
// thrust or angular-thrust levels.
//
// Between two keys the value is interpolated linearly; before the first key
// and after the last one the boundary value is held.
package keyframe

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// ErrInvalidProfile indicates an empty or unordered key list.
var ErrInvalidProfile = errors.New("keyframe: invalid profile")

// Key is a single (time, value) sample.
type Key struct {
	Time  float64 `yaml:"t" json:"t"`
	Value float64 `yaml:"v" json:"v"`
}

// Profile is a read-only, strictly ascending list of keys.
type Profile struct {
	keys []Key
	pl   interp.PiecewiseLinear
}

// New validates keys and prepares them for lookup. Keys must be sorted by
// strictly increasing time.
func New(keys []Key) (*Profile, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys", ErrInvalidProfile)
	}
	for i := 1; i < len(keys); i++ {
		if !(keys[i].Time > keys[i-1].Time) {
			return nil, fmt.Errorf("%w: key %d at t=%g does not follow t=%g",
				ErrInvalidProfile, i, keys[i].Time, keys[i-1].Time)
		}
	}

	p := &Profile{keys: append([]Key(nil), keys...)}
	if len(keys) > 1 {
		xs := make([]float64, len(keys))
		ys := make([]float64, len(keys))
		for i, k := range keys {
			xs[i], ys[i] = k.Time, k.Value
		}
		// Fit panics on invalid input; the checks above cover every case.
		if err := p.pl.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	}
	return p, nil
}

// At returns the profile value at t.
func (p *Profile) At(t float64) float64 {
	if len(p.keys) == 1 {
		return p.keys[0].Value
	}
	return p.pl.Predict(t)
}

func (p *Profile) Len() int { return len(p.keys) }

// Keys returns a copy of the profile's keys.
func (p *Profile) Keys() []Key {
	return append([]Key(nil), p.keys...)
}

// Duration is the time of the last key.
func (p *Profile) Duration() float64 {
	return p.keys[len(p.keys)-1].Time
}

// Lookup evaluates keys at t without keeping a Profile around.
func Lookup(keys []Key, t float64) (float64, error) {
	p, err := New(keys)
	if err != nil {
		return 0, err
	}
	return p.At(t), nil
}

// FromValues turns per-second levels into keys at t = 0, 1, 2, ...
func FromValues(values []float64) []Key {
	keys := make([]Key, len(values))
	for i, v := range values {
		keys[i] = Key{Time: float64(i), Value: v}
	}
	return keys
}
