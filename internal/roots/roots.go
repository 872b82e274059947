// Public domain.

// Package roots finds the complex roots of real polynomials.
//
// Roots are computed as eigenvalues of the companion matrix and then
// polished with Newton steps in complex arithmetic.
package roots

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Tolerance controls Newton polishing.  Polishing of a root stops when
// a step is no larger than Abs + Rel*|z|.
type Tolerance struct {
	Abs, Rel float64
}

// maximum Newton steps per root
const maxPolish = 20

// Solve returns all roots of the polynomial with coefficients c, lowest
// degree first: c[0] + c[1]x + ... + c[n]x^n.
//
// Vanishing leading coefficients reduce the degree.  A polynomial of
// degree zero has no roots and nil is returned.  The number of roots
// returned equals the reduced degree.
func Solve(c []float64, tol Tolerance) []complex128 {
	n := len(c) - 1
	for n > 0 && c[n] == 0 {
		n--
	}
	switch n {
	case -1, 0:
		return nil
	case 1:
		return []complex128{complex(-c[0]/c[1], 0)}
	}
	comp := mat.NewDense(n, n, nil)
	lead := c[n]
	for j := 0; j < n; j++ {
		comp.Set(0, j, -c[n-1-j]/lead)
	}
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if !eig.Factorize(comp, mat.EigenNone) {
		return nil
	}
	z := eig.Values(nil)
	p := c[:n+1]
	for i := range z {
		z[i] = polish(p, z[i], tol)
	}
	return z
}

// eval returns p(z) and p'(z) by Horner's rule.
func eval(p []float64, z complex128) (v, d complex128) {
	for i := len(p) - 1; i >= 0; i-- {
		d = d*z + v
		v = v*z + complex(p[i], 0)
	}
	return
}

func polish(p []float64, z complex128, tol Tolerance) complex128 {
	v, d := eval(p, z)
	for i := 0; i < maxPolish && v != 0 && d != 0; i++ {
		step := v / d
		if cmplx.IsNaN(step) || cmplx.IsInf(step) {
			break
		}
		zn := z - step
		vn, dn := eval(p, zn)
		if cmplx.Abs(vn) > cmplx.Abs(v) {
			break
		}
		z, v, d = zn, vn, dn
		if cmplx.Abs(step) <= tol.Abs+tol.Rel*cmplx.Abs(z) {
			break
		}
	}
	return z
}

// RealSpan classifies roots as real when the magnitude of the imaginary
// part is strictly less than imagTol, and returns the least and greatest
// real parts of those.  Ok is false if no root is real.
func RealSpan(z []complex128, imagTol float64) (lo, hi float64, ok bool) {
	for _, r := range z {
		if !(math.Abs(imag(r)) < imagTol) {
			continue
		}
		x := real(r)
		if !ok {
			lo, hi, ok = x, x, true
			continue
		}
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return
}
