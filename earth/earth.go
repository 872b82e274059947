// Public domain.

// Package earth, geocentric constants and conversions used to seed and
// check admissible regions of Earth orbits.
package earth

import (
	"math"
	"time"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

const (
	// Mu is the EGM96 gravitational parameter, km³/s².
	Mu = 398600.4415
	// Radius is the EGM96 equatorial radius, km.
	Radius = 6378.1363
	// RotationRate is the inertial rotation rate of the Earth, rad/s.
	RotationRate = 7.292115e-5

	// JDMJD is the offset from modified to full Julian date.
	JDMJD = 2400000.5
)

// canonical velocity unit, km/s.  in canonical units Mu = 1.
var vUnit = math.Sqrt(Mu / Radius)

// Elements solves semi-major axis (km), eccentricity and inclination
// (radians) from a geocentric inertial state in km and km/s.
//
// Ok is false for states astro.AeiHv rejects: unbound or nearly parabolic
// orbits (e > .99) and orbits with a beyond 100 Earth radii.
func Elements(r, v coord.Cart) (a, e float64, i unit.Angle, ok bool) {
	var p, w, hv coord.Cart
	p.MulScalar(&r, 1/Radius)
	w.MulScalar(&v, 1/vUnit)
	sa, se, si, ok := astro.AeiHv(&p, &w, math.Sqrt(p.Square()), &hv)
	if !ok {
		return
	}
	return sa * Radius, se, si, true
}

// MJD converts a time to a modified Julian date.
func MJD(t time.Time) float64 {
	return julian.TimeToJD(t) - JDMJD
}

// GMST computes Greenwich mean sidereal time at a UT modified Julian date.
func GMST(mjd float64) unit.Angle {
	return sidereal.Mean(mjd + JDMJD).Angle()
}
