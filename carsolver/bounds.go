// Public domain.

package carsolver

import (
	"math"

	"github.com/soniakeys/car/internal/roots"
)

// Bound is an ordinate interval.  OK false means no bound exists at the
// sample; Lower and Upper are then zero.  When OK, Lower <= Upper.
type Bound struct {
	Lower, Upper float64
	OK           bool
}

// Sample holds the bounds at one abscissa grid value X.
type Sample struct {
	X    float64
	AMin Bound // semi-major axis = amin
	AMax Bound // semi-major axis = amax
	EMax Bound // eccentricity = emax
}

// root polishing tolerance and the real root threshold.  a root is real
// when |imag| < realTol, strictly.
var rootTol = roots.Tolerance{Abs: 1e-12, Rel: 1e-12}

const realTol = 1e-11

// energyBound solves the energy equation at fixed abscissa for the
// ordinate, y² + w1·y + F = 2E.
func energyBound(w1, f, e float64) Bound {
	disc := w1*w1/4 - f + 2*e
	if !(disc >= 0) {
		return Bound{}
	}
	s := math.Sqrt(disc)
	return Bound{Lower: -w1/2 - s, Upper: -w1/2 + s, OK: true}
}

// quarticBound returns the span of real roots of the eccentricity
// quartic, coefficients lowest degree first.
func quarticBound(c []float64) Bound {
	lo, hi, ok := roots.RealSpan(roots.Solve(c, rootTol), realTol)
	if !ok {
		return Bound{}
	}
	return Bound{Lower: lo, Upper: hi, OK: true}
}
