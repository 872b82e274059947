// Public domain.

// Package regime defines the Earth orbit classes used to preset
// admissible region constraints and to label hypotheses.
package regime

import (
	"strings"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/car/earth"
)

// Class is an orbit class.  AMin, AMax and EMax are the constraint
// envelope used to build an admissible region for the class, a in km.
type Class struct {
	Abbr, Heading    string
	AMin, AMax, EMax float64
	IsClass          func(a, e float64, i unit.Angle) bool
}

// altitudes, km
const (
	leoFloor = 160
	leoCeil  = 2000
	geoA     = 42164.17
	geoBand  = 500
	gtoBand  = 5000
)

// CList is the list of orbit classes.
var CList = []Class{
	{"LEO", "Low Earth", earth.Radius + leoFloor, earth.Radius + leoCeil, .1, isLeo},
	{"MEO", "Medium Earth", earth.Radius + leoCeil, geoA - geoBand, .25, isMeo},
	{"GEO", "Geosynchronous", geoA - geoBand, geoA + geoBand, .05, isGeo},
	{"GTO", "GEO transfer", 20000, 30000, .8, isGto},
	{"HEO", "Highly eccentric", earth.Radius + leoFloor, 60000, .9, isHeo},
	{"ANY", "Any bound orbit", earth.Radius + leoFloor, 100 * earth.Radius, .99, isAny},
}

// Lookup finds a class by abbreviation, ignoring case.
func Lookup(abbr string) (Class, bool) {
	for _, c := range CList {
		if strings.EqualFold(c.Abbr, abbr) {
			return c, true
		}
	}
	return Class{}, false
}

// Classify returns abbreviations of all classes an orbit belongs to,
// in CList order.  Orbits that intersect the Earth belong to none.
func Classify(a, e float64, i unit.Angle) (abbrs []string) {
	if a*(1-e) < earth.Radius {
		return nil
	}
	for _, c := range CList {
		if c.IsClass(a, e, i) {
			abbrs = append(abbrs, c.Abbr)
		}
	}
	return
}

// LEO: apogee below 2000 km altitude
func isLeo(a, e float64, i unit.Angle) bool {
	return a*(1+e) < earth.Radius+leoCeil
}

// MEO: near circular, between LEO and the geosynchronous band
func isMeo(a, e float64, i unit.Angle) bool {
	return e < .25 && a*(1+e) >= earth.Radius+leoCeil && a < geoA-geoBand
}

// GEO: near circular, a within the band, i < 15°
func isGeo(a, e float64, i unit.Angle) bool {
	return e < .05 && a >= geoA-geoBand && a <= geoA+geoBand && i.Deg() < 15
}

// GTO: perigee in LEO, apogee near geosynchronous altitude, i < 30°
func isGto(a, e float64, i unit.Angle) bool {
	q := a * (1 - e)
	Q := a * (1 + e)
	return q < earth.Radius+leoCeil && Q > geoA-gtoBand && Q < geoA+gtoBand &&
		i.Deg() < 30
}

// HEO: e >= .25, excluding transfer orbits
func isHeo(a, e float64, i unit.Angle) bool {
	return e >= .25 && !isGto(a, e, i)
}

func isAny(a, e float64, i unit.Angle) bool {
	return e < 1 && a < 100*earth.Radius
}
