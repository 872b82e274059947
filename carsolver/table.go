// Public domain.

package carsolver

import "math"

// row is one table entry: ordinate bounds at abscissa x.
type row struct {
	x, lower, upper float64
}

// table is a piecewise linear bound curve.  Rows are ordered by x.
type table []row

// ellipseRows is the number of rows in an ellipse table, one per degree
// of a half turn.
const ellipseRows = 180

// newEllipseTable samples the half turn of the ellipse with center
// (xc, yc) and semi-axes xs, ys from θ = π down to θ = π/180, so that x
// increases.
func newEllipseTable(xc, yc, xs, ys float64) table {
	t := make(table, ellipseRows)
	for i := range t {
		s, c := math.Sincos(float64(ellipseRows-i) * math.Pi / 180)
		t[i] = row{
			x:     xc + xs*c,
			lower: yc - ys*s,
			upper: yc + ys*s,
		}
	}
	return t
}

// interpolate returns the bounds at x.  The bracketing rows are found by
// a sequential scan; values outside the table extrapolate the first or
// last segment.
func (t table) interpolate(x float64) (lower, upper float64) {
	i := 0
	for i+2 < len(t) && x > t[i+1].x {
		i++
	}
	a, b := &t[i], &t[i+1]
	if x == a.x {
		return a.lower, a.upper
	}
	if x == b.x {
		return b.lower, b.upper
	}
	f := (x - a.x) / (b.x - a.x)
	return a.lower + f*(b.lower-a.lower), a.upper + f*(b.upper-a.upper)
}

// bound interpolates t at x.  The bound exists only where the
// interpolated interval is not empty.
func (t table) bound(x float64) Bound {
	l, u := t.interpolate(x)
	if !(l < u) {
		return Bound{}
	}
	return Bound{Lower: l, Upper: u, OK: true}
}
