// Public domain.

// Package station computes geocentric inertial states of ground sites.
package station

import (
	"github.com/soniakeys/coord"

	"github.com/soniakeys/car/earth"
	"github.com/soniakeys/car/mpc"
)

// State is a geocentric equatorial position, km, and velocity, km/s.
type State struct {
	Pos, Vel coord.Cart
}

// FromParallax returns the state of an observatory at a UT modified
// Julian date.
//
// Position is from the MPC parallax constants rotated by local sidereal
// time, velocity is ω × r for the Earth rotation rate.  Precession and
// polar motion are ignored.
func FromParallax(site *mpc.Site, mjd float64) State {
	θ := earth.GMST(mjd) + site.Longitude
	s, c := θ.Sincos()
	var st State
	st.Pos = coord.Cart{
		X: earth.Radius * site.RhoCosPhi * c,
		Y: earth.Radius * site.RhoCosPhi * s,
		Z: earth.Radius * site.RhoSinPhi,
	}
	st.Vel = coord.Cart{
		X: -earth.RotationRate * st.Pos.Y,
		Y: earth.RotationRate * st.Pos.X,
	}
	return st
}
