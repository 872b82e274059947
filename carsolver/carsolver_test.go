// Public domain.

package carsolver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/soniakeys/car/carsolver"
	"github.com/soniakeys/car/earth"
	"github.com/soniakeys/car/internal/lsq"
	"github.com/soniakeys/car/splitlib"
)

// equatorial station on the x axis, looking along the x axis
var (
	stationPos = coord.Cart{X: earth.Radius}
	stationVel = coord.Cart{Y: earth.Radius * earth.RotationRate}
)

func angleParams() carsolver.Params {
	return carsolver.Params{
		Mode:        carsolver.AngleRates,
		RARate:      1.7e-4,
		DecRate:     1e-5,
		StationPos:  stationPos,
		StationVel:  stationVel,
		Sigma1:      500,
		Sigma2:      .2,
		GridSpacing: 100,
		AMin:        6578,
		AMax:        42164,
		EMax:        .1,
	}
}

func rangeParams() carsolver.Params {
	return carsolver.Params{
		Mode:        carsolver.RangeRate,
		Range:       20000,
		StationPos:  stationPos,
		StationVel:  stationVel,
		Sigma1:      5e-5,
		Sigma2:      5e-5,
		GridSpacing: 5e-6,
		AMin:        20000,
		AMax:        42164,
		EMax:        .3,
	}
}

// checkMixture checks properties every admissible CAR mixture has.
func checkMixture(t *testing.T, c *carsolver.CAR) {
	t.Helper()
	require.True(t, c.Admissible())
	require.NotEmpty(t, c.Components)
	assert.InDelta(t, 1, c.Components.TotalWeight(), 1e-9)
	for _, g := range c.Components {
		assert.True(t, g.Weight > 0 && g.Weight <= 1, g.Weight)
		assert.GreaterOrEqual(t, g.AbscissaMean, c.Region.DomainStart())
		assert.LessOrEqual(t, g.AbscissaMean, c.Region.DomainEnd())
		assert.Greater(t, g.AbscissaStd, 0.)
		assert.Greater(t, g.OrdinateStd, 0.)
	}
}

func TestBuildAngleRates(t *testing.T) {
	c, err := carsolver.Build(angleParams())
	require.NoError(t, err)
	require.Len(t, c.Samples, 844)
	for i, s := range c.Samples {
		assert.Equal(t, float64(i)*100, s.X)
	}
	checkMixture(t, c)

	// amin lies below the region, so a single main arc bounds it
	assert.Empty(t, c.Region.Upper)
	assert.Empty(t, c.Region.Lower)
	assert.InDelta(t, 19300, c.Region.DomainStart(), 100)
	assert.InDelta(t, 20800, c.Region.DomainEnd(), 100)
	assert.True(t, c.Fit.Converged)
	assert.Len(t, c.Fit.Means, 2)

	// every component mean is an orbit within the limits
	p := c.Params
	for _, g := range c.Components {
		a, e, _, ok := earth.Elements(p.State(g.AbscissaMean, g.OrdinateMean))
		require.True(t, ok)
		assert.Less(t, a, p.AMax)
		assert.Greater(t, a, p.AMin)
		assert.Less(t, e, p.EMax)
	}
}

// A station off the line of sight axis keeps the full quartic in play.
func TestBuildOffAxis(t *testing.T) {
	pos := coord.Cart{X: 4000, Y: 3000, Z: 3500}
	p := angleParams()
	p.RA = unit.Angle(.8)
	p.Dec = unit.Angle(.5)
	p.StationPos = pos
	p.StationVel = coord.Cart{
		X: -pos.Y * earth.RotationRate,
		Y: pos.X * earth.RotationRate,
	}
	c, err := carsolver.Build(p)
	require.NoError(t, err)
	checkMixture(t, c)
	assert.Empty(t, c.Region.Upper)
	assert.Empty(t, c.Region.Lower)
	assert.InDelta(t, 21700, c.Region.DomainStart(), 1e-9)
	assert.InDelta(t, 23400, c.Region.DomainEnd(), 1e-9)

	for _, s := range c.Samples {
		if s.X < 21700 || s.X > 23400 {
			continue
		}
		require.True(t, s.EMax.OK, s.X)
		for _, y := range []float64{s.EMax.Lower, s.EMax.Upper} {
			_, e, _, ok := earth.Elements(p.State(s.X, y))
			require.True(t, ok)
			assert.InDelta(t, p.EMax, e, 1e-6, "r=%g", s.X)
		}
	}
	for _, g := range c.Components {
		_, e, _, ok := earth.Elements(p.State(g.AbscissaMean, g.OrdinateMean))
		require.True(t, ok)
		assert.Less(t, e, p.EMax)
	}
}

func TestBuildRangeRate(t *testing.T) {
	c, err := carsolver.Build(rangeParams())
	require.NoError(t, err)
	checkMixture(t, c)
	// the amin bound splits the region
	assert.NotEmpty(t, c.Region.Upper)
	assert.NotEmpty(t, c.Region.Lower)
	assert.NotEmpty(t, c.Region.Main)
	assert.Less(t, c.Samples[0].X, 0.)
	assert.LessOrEqual(t, c.Samples[len(c.Samples)-1].X, -c.Samples[0].X)
}

func TestBuildIdempotent(t *testing.T) {
	for _, p := range []carsolver.Params{angleParams(), rangeParams()} {
		c1, err := carsolver.Build(p)
		require.NoError(t, err)
		c2, err := carsolver.Build(p)
		require.NoError(t, err)
		if d := cmp.Diff(c1.Components, c2.Components,
			cmpopts.EquateApprox(0, 1e-12)); d != "" {
			t.Fatalf("%v mode: %s", p.Mode, d)
		}
	}
}

func TestBuildNotAdmissible(t *testing.T) {
	// orbits entirely inside the Earth
	p := angleParams()
	p.AMin = 100
	p.AMax = 200
	c, err := carsolver.Build(p)
	require.NoError(t, err)
	assert.False(t, c.Admissible())
	assert.Empty(t, c.Components)
	assert.Nil(t, c.Fit)
	assert.Len(t, c.Samples, 5)
}

func TestBuildFitBudget(t *testing.T) {
	lib, err := splitlib.Default()
	require.NoError(t, err)
	core, logs := observer.New(zapcore.WarnLevel)
	s := carsolver.New(lib,
		carsolver.WithLogger(zap.New(core).Sugar()),
		carsolver.WithFitBudget(1, 1))
	c, err := s.Build(angleParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, carsolver.ErrFitNotConverged))
	assert.True(t, errors.Is(err, lsq.ErrMaxEvaluations))
	require.NotNil(t, c)
	assert.True(t, c.Admissible())
	assert.False(t, c.Fit.Converged)
	assert.Equal(t, 1, logs.FilterMessage("weight fit not converged").Len())
}

func TestBuildEmptyLibrary(t *testing.T) {
	_, err := carsolver.New(splitlib.Library{}).Build(angleParams())
	assert.ErrorIs(t, err, splitlib.ErrResource)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*carsolver.Params)
	}{
		{"mode", func(p *carsolver.Params) { p.Mode = 7 }},
		{"sigma1", func(p *carsolver.Params) { p.Sigma1 = 0 }},
		{"sigma2", func(p *carsolver.Params) { p.Sigma2 = -1 }},
		{"grid", func(p *carsolver.Params) { p.GridSpacing = 0 }},
		{"fine grid", func(p *carsolver.Params) { p.GridSpacing = 1e-3 }},
		{"amin", func(p *carsolver.Params) { p.AMin = 0 }},
		{"amax", func(p *carsolver.Params) { p.AMax = p.AMin }},
		{"emax", func(p *carsolver.Params) { p.EMax = 1 }},
		{"negative emax", func(p *carsolver.Params) { p.EMax = -.1 }},
		{"rate", func(p *carsolver.Params) { p.RARate = math.NaN() }},
		{"station", func(p *carsolver.Params) { p.StationVel.Z = math.Inf(1) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := angleParams()
			tc.modify(&p)
			assert.ErrorIs(t, p.Validate(), carsolver.ErrInvalidParams)
			c, err := carsolver.Build(p)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, carsolver.ErrInvalidParams)
		})
	}

	p := rangeParams()
	p.Range = 0
	assert.ErrorIs(t, p.Validate(), carsolver.ErrInvalidParams)
	p = rangeParams()
	p.GridSpacing = 1e-30
	assert.ErrorIs(t, p.Validate(), carsolver.ErrInvalidParams)
	c, err := carsolver.Build(p)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, carsolver.ErrInvalidParams)
	p = rangeParams()
	p.GridSpacing = 1e-3 // coarse is fine
	assert.NoError(t, p.Validate())

	p = angleParams()
	assert.NoError(t, p.Validate())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "angles", carsolver.AngleRates.String())
	assert.Equal(t, "range", carsolver.RangeRate.String())
	assert.Equal(t, "Mode(7)", carsolver.Mode(7).String())
}
