// Public domain.

// Package carsolver builds constrained admissible regions.
//
// A constrained admissible region (CAR) is the set of values of two
// unobserved coordinates consistent with a short-arc measurement and with
// limits on the semi-major axis and eccentricity of a geocentric orbit.
// The region is approximated by a weighted mixture of bivariate Gaussians
// suitable for seeding an orbit determination filter.
//
// Two measurement models are supported.  With Mode AngleRates, RA, Dec
// and their rates are measured and the region is in range, range-rate
// space.  With Mode RangeRate, RA, Dec, range and range-rate are measured
// and the region is in RA-rate, Dec-rate space.
//
// Construction proceeds in stages: bounds at each sample of a regular grid
// of the abscissa, splitting of the bounded region into upper, lower and
// main arcs, a fit of Gaussian weights along the abscissa, and splitting
// of each abscissa component along the ordinate.
package carsolver

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"go.uber.org/zap"

	"github.com/soniakeys/car/internal/lsq"
	"github.com/soniakeys/car/splitlib"
)

// Mode selects the measurement model.
type Mode int

const (
	// AngleRates: RA, Dec, RA-rate and Dec-rate measured.  The abscissa
	// is range, km, and the ordinate is range-rate, km/s.
	AngleRates Mode = iota
	// RangeRate: RA, Dec, range and range-rate measured.  The abscissa is
	// RA-rate and the ordinate is Dec-rate, both rad/s.
	RangeRate
)

func (m Mode) String() string {
	switch m {
	case AngleRates:
		return "angles"
	case RangeRate:
		return "range"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Params are the inputs of a CAR.
//
// RA, Dec and station state are geocentric equatorial.  Lengths are km,
// times are s, angular rates are rad/s.  RARate is the rate of change of
// RA itself, not of RA·cos(Dec).
type Params struct {
	Mode Mode

	RA, Dec unit.Angle
	// measured with AngleRates
	RARate, DecRate float64
	// measured with RangeRate
	Range, RangeRate float64

	StationPos, StationVel coord.Cart

	// Sigma1 is the measurement uncertainty along the abscissa, Sigma2
	// along the ordinate.
	Sigma1, Sigma2 float64
	// GridSpacing is the abscissa sample step.
	GridSpacing float64

	// semi-major axis limits, km, and eccentricity limit
	AMin, AMax, EMax float64
}

// maxGrid limits the number of abscissa samples.
const maxGrid = 1 << 22

// Validate checks that parameters describe a computable CAR.  Errors
// wrap ErrInvalidParams.
func (p *Params) Validate() error {
	bad := func(format string, a ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, a...))
	}
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch p.Mode {
	case AngleRates, RangeRate:
	default:
		return bad("unknown mode %v", p.Mode)
	}
	for _, v := range []float64{p.RA.Rad(), p.Dec.Rad(), p.RARate, p.DecRate,
		p.Range, p.RangeRate,
		p.StationPos.X, p.StationPos.Y, p.StationPos.Z,
		p.StationVel.X, p.StationVel.Y, p.StationVel.Z} {
		if !finite(v) {
			return bad("measurement or station state not finite")
		}
	}
	switch {
	case !(p.Sigma1 > 0) || !finite(p.Sigma1):
		return bad("sigma1 %v must be positive", p.Sigma1)
	case !(p.Sigma2 > 0) || !finite(p.Sigma2):
		return bad("sigma2 %v must be positive", p.Sigma2)
	case !(p.GridSpacing > 0) || !finite(p.GridSpacing):
		return bad("grid spacing %v must be positive", p.GridSpacing)
	case !(p.AMin > 0) || !(p.AMax > p.AMin) || !finite(p.AMax):
		return bad("semi-major axis limits %v, %v", p.AMin, p.AMax)
	case !(p.EMax >= 0) || !(p.EMax < 1):
		return bad("eccentricity limit %v not in [0,1)", p.EMax)
	}
	if p.Mode == RangeRate {
		if !(p.Range > 0) {
			return bad("range %v must be positive", p.Range)
		}
		if math.Cos(p.Dec.Rad()) == 0 {
			return bad("declination at a pole")
		}
		if !(2*newRangeFrame(p).half/p.GridSpacing < maxGrid) {
			return bad("grid spacing %v too fine", p.GridSpacing)
		}
	} else if 2*p.AMax/p.GridSpacing >= maxGrid {
		return bad("grid spacing %v too fine", p.GridSpacing)
	}
	return nil
}

// Solver builds CARs.  A Solver is safe for concurrent use.
type Solver struct {
	lib      splitlib.Library
	log      *zap.SugaredLogger
	settings lsq.Settings
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Solver) { s.log = l }
}

// WithFitBudget sets the iteration and evaluation limits of the weight
// fit.  Both default to 10000.
func WithFitBudget(maxIterations, maxEvaluations int) Option {
	return func(s *Solver) {
		s.settings.MaxIterations = maxIterations
		s.settings.MaxEvaluations = maxEvaluations
	}
}

// New creates a Solver using split library lib.
func New(lib splitlib.Library, opts ...Option) *Solver {
	s := &Solver{
		lib:      lib,
		log:      zap.NewNop().Sugar(),
		settings: lsq.DefaultSettings,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Build constructs a CAR with the embedded split library and no logging.
func Build(p Params) (*CAR, error) {
	lib, err := splitlib.Default()
	if err != nil {
		return nil, err
	}
	return New(lib).Build(p)
}

// CAR is a constructed admissible region.
type CAR struct {
	Params Params
	// Samples holds bounds at every abscissa grid value.
	Samples []Sample
	// Region is nil when no admissible region exists.
	Region *Region
	// Fit is the abscissa weight fit, nil without a region.
	Fit *Fit
	// Components is the Gaussian mixture.  It is empty when there is no
	// admissible region.
	Components Mixture
}

// Admissible reports whether an admissible region was found.
func (c *CAR) Admissible() bool { return c.Region != nil }

// Build constructs a CAR.
//
// Invalid parameters return a nil CAR and an error wrapping
// ErrInvalidParams.  Geometry admitting no region is not an error: the
// CAR is returned with Admissible false and no components.  If the
// weight fit exhausts its budget the best-effort CAR is returned together
// with an error wrapping ErrFitNotConverged.
func (s *Solver) Build(p Params) (*CAR, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.lib.Len() == 0 {
		return nil, fmt.Errorf("%w: empty library", splitlib.ErrResource)
	}
	log := s.log.With("mode", p.Mode)

	c := &CAR{Params: p}
	c.Samples = sampleGrid(newFrame(&p))
	c.Region = splitRegion(c.Samples)
	if c.Region == nil {
		log.Debugw("no admissible region", "samples", len(c.Samples))
		return c, nil
	}
	log.Debugw("region",
		"start", c.Region.Start, "end", c.Region.End,
		"upper", len(c.Region.Upper), "lower", len(c.Region.Lower),
		"main", len(c.Region.Main), "area", c.Region.Area)

	var err error
	c.Fit, err = s.fitAbscissa(c.Region, p.Sigma1)
	if err != nil {
		log.Warnw("weight fit not converged",
			"evaluations", c.Fit.Evaluations, "iterations", c.Fit.Iterations)
		err = fmt.Errorf("%w: %w", ErrFitNotConverged, err)
	}
	var lost float64
	c.Components, lost = s.hypotheses(c.Region, c.Fit, p.Sigma2)
	if lost > 0 {
		log.Warnw("abscissa components outside region dropped", "weight", lost)
	}
	log.Debugw("mixture", "abscissa", len(c.Fit.Means), "components", len(c.Components))
	return c, err
}
