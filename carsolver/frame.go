// Public domain.

package carsolver

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/car/earth"
)

// value forms of coord.Cart arithmetic.  coord methods take pointer
// operands and store through the receiver.
func add(a, b coord.Cart) (c coord.Cart) {
	c.Add(&a, &b)
	return
}

func scale(a coord.Cart, s float64) (c coord.Cart) {
	c.MulScalar(&a, s)
	return
}

func cross(a, b coord.Cart) (c coord.Cart) {
	c.Cross(&a, &b)
	return
}

func dot(a, b coord.Cart) float64 { return a.Dot(&b) }

func sq(a coord.Cart) float64 { return a.Square() }

// los holds the line of sight unit vector and its derivatives with
// respect to RA and Dec.
type los struct {
	p, a, d coord.Cart
}

func newLOS(ra, dec unit.Angle) los {
	sa, ca := ra.Sincos()
	sd, cd := dec.Sincos()
	return los{
		p: coord.Cart{X: ca * cd, Y: sa * cd, Z: sd},
		a: coord.Cart{X: -sa * cd, Y: ca * cd},
		d: coord.Cart{X: -ca * sd, Y: -sa * sd, Z: cd},
	}
}

// frame is a measurement model: the abscissa grid and bounds at each
// grid value.
type frame interface {
	grid() []float64
	sample(x float64) Sample
}

func newFrame(p *Params) frame {
	if p.Mode == RangeRate {
		return newRangeFrame(p)
	}
	return newOpticalFrame(p)
}

// sampleGrid evaluates bounds over the whole grid.
func sampleGrid(f frame) []Sample {
	xs := f.grid()
	s := make([]Sample, len(xs))
	for i, x := range xs {
		s[i] = f.sample(x)
	}
	return s
}

// energy at semi-major axis a
func energy(a float64) float64 { return -earth.Mu / (2 * a) }

// opticalFrame is the AngleRates model.  The abscissa is range r, the
// ordinate range-rate.
type opticalFrame struct {
	g, amax float64
	w       [6]float64
	c       [9]float64
	eMin    float64 // energy at amin
	eMax    float64 // energy at amax
	ecc     float64 // μ²(1-emax²)
}

func newOpticalFrame(p *Params) *opticalFrame {
	u := newLOS(p.RA, p.Dec)
	q, qd := p.StationPos, p.StationVel
	cd := p.Dec.Cos()
	f := &opticalFrame{
		g:    p.GridSpacing,
		amax: p.AMax,
		eMin: energy(p.AMin),
		eMax: energy(p.AMax),
		ecc:  earth.Mu * earth.Mu * (1 - p.EMax*p.EMax),
	}
	f.w[0] = sq(q)
	f.w[1] = 2 * dot(qd, u.p)
	f.w[2] = p.RARate*p.RARate*cd*cd + p.DecRate*p.DecRate
	f.w[3] = 2*p.RARate*dot(qd, u.a) + 2*p.DecRate*dot(qd, u.d)
	f.w[4] = sq(qd)
	f.w[5] = 2 * dot(q, u.p)

	rate := add(scale(u.a, p.RARate), scale(u.d, p.DecRate))
	h1 := cross(q, u.p)
	h2 := cross(u.p, rate)
	h3 := add(cross(u.p, qd), cross(q, rate))
	h4 := cross(q, qd)
	f.c = [9]float64{
		sq(h1),
		2 * dot(h1, h2),
		2 * dot(h1, h3),
		2 * dot(h1, h4),
		sq(h2),
		2 * dot(h2, h3),
		2*dot(h2, h4) + sq(h3),
		2 * dot(h3, h4),
		sq(h4),
	}
	return f
}

// grid is range from 0 to 2·amax.
func (f *opticalFrame) grid() []float64 {
	xs := make([]float64, int(2*f.amax/f.g)+1)
	for i := range xs {
		xs[i] = float64(i) * f.g
	}
	return xs
}

func (f *opticalFrame) sample(r float64) Sample {
	w, c := &f.w, &f.c
	r2 := r * r
	r3 := r2 * r
	r4 := r3 * r
	// twice the energy, less the range-rate terms
	F := w[2]*r2 + w[3]*r + w[4] - 2*earth.Mu/math.Sqrt(r2+w[5]*r+w[0])

	P := c[1]*r2 + c[2]*r + c[3]
	U := c[4]*r4 + c[5]*r3 + c[6]*r2 + c[7]*r + c[8]
	return Sample{
		X:    r,
		AMin: energyBound(w[1], F, f.eMin),
		AMax: energyBound(w[1], F, f.eMax),
		EMax: quarticBound([]float64{
			F*U + f.ecc,
			F*P + w[1]*U,
			U + c[0]*F + w[1]*P,
			P + c[0]*w[1],
			c[0],
		}),
	}
}

// rangeFrame is the RangeRate model.  The abscissa is RA-rate, the
// ordinate Dec-rate.
type rangeFrame struct {
	g    float64
	half float64 // half width of the grid
	// c[k][j] is the coefficient of y^k x^j in the eccentricity quartic,
	// x RA-rate and y Dec-rate.
	c          [5][5]float64
	ecc        float64
	tMin, tMax table
}

func newRangeFrame(p *Params) *rangeFrame {
	u := newLOS(p.RA, p.Dec)
	q, qd := p.StationPos, p.StationVel
	rho, rhod := p.Range, p.RangeRate
	cd := p.Dec.Cos()

	w0 := sq(q)
	w1 := 2 * dot(qd, u.p)
	w4 := sq(qd)
	w5 := 2 * dot(q, u.p)
	a11 := rho * rho * cd * cd
	a13 := rho * dot(qd, u.a)
	a22 := rho * rho
	a23 := rho * dot(qd, u.d)
	a33 := rhod*rhod + w1*rhod + w4 - 2*earth.Mu/math.Sqrt(a22+w5*rho+w0)

	r := add(q, scale(u.p, rho))
	hp := cross(r, add(qd, scale(u.p, rhod)))
	ha := cross(scale(r, rho), u.a)
	hd := cross(scale(r, rho), u.d)
	b11 := sq(ha)
	b12 := dot(ha, hd)
	b22 := sq(hd)
	b13 := dot(hp, ha)
	b23 := dot(hp, hd)
	b33 := sq(hp)

	f := &rangeFrame{
		g:   p.GridSpacing,
		ecc: earth.Mu * earth.Mu * (1 - p.EMax*p.EMax),
	}
	f.c[4][0] = a22 * b22
	f.c[3][1] = 2 * a22 * b12
	f.c[3][0] = 2*a22*b23 + 2*a23*b22
	f.c[2][2] = a11*b22 + a22*b11
	f.c[2][1] = 2*a22*b13 + 2*a13*b22 + 4*a23*b12
	f.c[2][0] = a22*b33 + 4*a23*b23 + a33*b22
	f.c[1][3] = 2 * a11 * b12
	f.c[1][2] = 2*a11*b23 + 4*a13*b12 + 2*a23*b11
	f.c[1][1] = 4*a13*b23 + 4*a23*b13 + 2*a33*b12
	f.c[1][0] = 2*a23*b33 + 2*a33*b23
	f.c[0][4] = a11 * b11
	f.c[0][3] = 2*a11*b13 + 2*a13*b11
	f.c[0][2] = a11*b33 + 4*a13*b13 + a33*b11
	f.c[0][1] = 2*a13*b33 + 2*a33*b13
	f.c[0][0] = a33 * b33

	// grid half width from the ellipse with no semi-major axis limit
	k := a13*a13/a11 + a23*a23/a22
	f.half = math.Abs(a13/a11) + math.Sqrt(math.Abs((k-a33)/a11))

	ellipse := func(a float64) table {
		a33x := a33 + earth.Mu/a
		return newEllipseTable(-a13/a11, -a23/a22,
			math.Sqrt(math.Abs((k-a33x)/a11)),
			math.Sqrt(math.Abs((k-a33x)/a22)))
	}
	f.tMin = ellipse(p.AMin)
	f.tMax = ellipse(p.AMax)
	return f
}

// grid is symmetric about zero RA-rate.
func (f *rangeFrame) grid() []float64 {
	xs := make([]float64, int(2*f.half/f.g)+1)
	for i := range xs {
		xs[i] = float64(i)*f.g - f.half
	}
	return xs
}

func (f *rangeFrame) sample(x float64) Sample {
	s := Sample{
		X:    x,
		AMin: f.tMin.bound(x),
		AMax: f.tMax.bound(x),
	}
	var p [5]float64
	for k := range p {
		// Horner in x
		for j := 4; j >= 0; j-- {
			p[k] = p[k]*x + f.c[k][j]
		}
	}
	p[0] += f.ecc
	s.EMax = quarticBound(p[:])
	return s
}

// State returns the geocentric state of an object at abscissa x and
// ordinate y.
func (p *Params) State(x, y float64) (r, v coord.Cart) {
	u := newLOS(p.RA, p.Dec)
	rho, rhod := x, y
	raRate, decRate := p.RARate, p.DecRate
	if p.Mode == RangeRate {
		rho, rhod = p.Range, p.RangeRate
		raRate, decRate = x, y
	}
	r = add(p.StationPos, scale(u.p, rho))
	v = add(p.StationVel, scale(u.p, rhod))
	v = add(v, scale(add(scale(u.a, raRate), scale(u.d, decRate)), rho))
	return
}
