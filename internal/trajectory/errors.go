package trajectory

import (
	"errors"
	"fmt"

	"github.com/san-kum/orbsim/internal/keyframe"
)

// Domain errors for trajectory bodies. None of them is transient; each one
// points at a configuration or bookkeeping defect upstream.
var (
	// ErrInvalidMass indicates a snapshot whose mass is not strictly positive.
	ErrInvalidMass = errors.New("trajectory: mass must be positive")

	// ErrInvalidVehicleLength indicates a zero or negative length used as a
	// moment-of-inertia divisor.
	ErrInvalidVehicleLength = errors.New("trajectory: vehicle length must be positive")

	// ErrNonFiniteTorque indicates a torque computation that produced NaN or Inf.
	ErrNonFiniteTorque = errors.New("trajectory: torque is not finite")

	// ErrInvalidProfile indicates an empty or unordered keyframe list.
	ErrInvalidProfile = keyframe.ErrInvalidProfile

	// ErrEmptyHistory indicates a query against a body with no recorded history.
	ErrEmptyHistory = errors.New("trajectory: empty history")

	// ErrIndexOutOfRange indicates a history index that does not fit the history.
	ErrIndexOutOfRange = errors.New("trajectory: history index out of range")

	// ErrInvalidInterval indicates a snapshot interval below one second.
	ErrInvalidInterval = errors.New("trajectory: snapshot interval must be at least 1")

	// ErrInvalidRadius indicates a celestial body without a positive radius.
	ErrInvalidRadius = errors.New("trajectory: radius must be positive")

	// ErrNotCelestial indicates a non-celestial body passed as a gravity source
	// or collision target.
	ErrNotCelestial = errors.New("trajectory: body is not celestial")
)

// StepError wraps a failure with the body and local second it happened at.
type StepError struct {
	Body    string
	Second  int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s at second %d: %v", e.Body, e.Second, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
