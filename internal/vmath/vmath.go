// Package vmath holds the small amount of planar math the simulation needs
// on top of gonum's r2 vectors.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Zero is the origin.
var Zero = r2.Vec{}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates each component of a and b by t.
func LerpVec(a, b r2.Vec, t float64) r2.Vec {
	return r2.Vec{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// DirFromAngle returns the unit vector at deg degrees from the +x axis,
// counter-clockwise.
func DirFromAngle(deg float64) r2.Vec {
	sin, cos := math.Sincos(DegToRad(deg))
	return r2.Vec{X: cos, Y: sin}
}

// AngleOf returns the heading of v in degrees.
func AngleOf(v r2.Vec) float64 {
	return RadToDeg(math.Atan2(v.Y, v.X))
}

func Magnitude(v r2.Vec) float64 { return r2.Norm(v) }

// SqrMagnitude avoids the square root when only comparisons or inverse-square
// laws are needed.
func SqrMagnitude(v r2.Vec) float64 { return r2.Norm2(v) }

// Normalize returns v scaled to unit length. The zero vector yields NaN
// components.
func Normalize(v r2.Vec) r2.Vec { return r2.Unit(v) }

func Distance(a, b r2.Vec) float64 { return r2.Norm(r2.Sub(a, b)) }

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func IsFiniteVec(v r2.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Equal reports whether a and b match component-wise within tol.
func Equal(a, b r2.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}
