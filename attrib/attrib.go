// Public domain.

// Package attrib reduces a tracklet of optical observations to an
// attributable: angles and angular rates at a single epoch.
package attrib

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/car/mpc"
)

const secPerDay = 86400

// Attributable is the linear motion of an object on the sky at MJD.
type Attributable struct {
	Desig   string
	Site    *mpc.Site
	MJD     float64    // mean epoch of the tracklet, UTC
	RA      unit.Angle // in [0, 2π)
	Dec     unit.Angle
	RARate  float64 // rad/s
	DecRate float64 // rad/s

	// Rms is the rms of residuals of the fit, an arc length.
	// It is zero for two observations.
	Rms unit.Angle
	// formal uncertainties of the rates, rad/s, scaled from the
	// observational error used for the fit.
	RARateSigma, DecRateSigma float64
}

// Fit fits RA and Dec of a tracklet linearly in time about the mean
// epoch.
//
// obsErr is the a priori error of a single observation.  It is clipped
// to the rms of the fit when the rms is larger; zero obsErr leaves the
// rate sigmas zero.
func Fit(tk *mpc.Tracklet, obsErr unit.Angle) (*Attributable, error) {
	n := len(tk.Obs)
	if n < 2 {
		return nil, fmt.Errorf("attrib: %s: %d observations, need 2", tk.Desig, n)
	}
	for _, o := range tk.Obs[1:] {
		if o.Site != tk.Obs[0].Site {
			return nil, errors.New("attrib: observations from multiple sites")
		}
	}
	var t0 float64
	for _, o := range tk.Obs {
		t0 += o.MJD
	}
	t0 /= float64(n)

	// design matrix [1, t], t in seconds from the mean epoch
	g := mat.NewDense(n, 2, nil)
	ra := mat.NewVecDense(n, nil)
	dec := mat.NewVecDense(n, nil)
	ra0 := tk.Obs[0].RA.Rad()
	for i, o := range tk.Obs {
		g.Set(i, 0, 1)
		g.Set(i, 1, (o.MJD-t0)*secPerDay)
		// unwrap RA about the first observation
		ra.SetVec(i, ra0+math.Remainder(o.RA.Rad()-ra0, 2*math.Pi))
		dec.SetVec(i, o.Dec.Rad())
	}
	var a mat.Dense
	a.Mul(g.T(), g)
	var cov mat.Dense
	if err := cov.Inverse(&a); err != nil {
		return nil, fmt.Errorf("attrib: %s: %w", tk.Desig, err)
	}
	solve := func(y *mat.VecDense) (*mat.VecDense, float64) {
		var b, x, r mat.VecDense
		b.MulVec(g.T(), y)
		x.MulVec(&cov, &b)
		r.MulVec(g, &x)
		r.SubVec(y, &r)
		return &x, mat.Dot(&r, &r)
	}
	xr, ssr := solve(ra)
	xd, ssd := solve(dec)

	dec0 := xd.AtVec(0)
	at := &Attributable{
		Desig:   tk.Desig,
		Site:    tk.Obs[0].Site,
		MJD:     t0,
		RA:      unit.Angle(xr.AtVec(0)).Mod1(),
		Dec:     unit.Angle(dec0),
		RARate:  xr.AtVec(1),
		DecRate: xd.AtVec(1),
	}
	if n > 2 {
		// RA residuals projected to arc length
		c := math.Cos(dec0)
		at.Rms = unit.Angle(math.Sqrt((ssr*c*c + ssd) / float64(n)))
	}
	if e := clipErr(at.Rms, obsErr); e > 0 {
		s := e.Rad() * math.Sqrt(cov.At(1, 1))
		at.RARateSigma = s / math.Cos(dec0)
		at.DecRateSigma = s
	}
	return at, nil
}

// clipErr returns the observational error to use: the larger of the
// a priori error and the computed rms.
func clipErr(computedRms, defaultErr unit.Angle) unit.Angle {
	if defaultErr == 0 {
		// configured zero takes precedence over any computed rms
		return 0
	} else if computedRms == 0 {
		return defaultErr
	}
	if defaultErr > computedRms {
		return defaultErr
	}
	return computedRms
}
