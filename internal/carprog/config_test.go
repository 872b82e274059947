// Public domain.

package carprog

import (
	"strings"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/car/carsolver"
	"github.com/soniakeys/car/mpc"
)

var testOcd = mpc.ParallaxMap{"000": {RhoCosPhi: .62411, RhoSinPhi: .77873, Name: "Greenwich"}}

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "ANY", c.class.Abbr)
	assert.Equal(t, carsolver.AngleRates, c.mode)
	assert.True(t, c.headings)
	assert.Equal(t, formatText, c.format)
	assert.Equal(t, unit.AngleFromSec(1), c.obsErr("000"))
	grid, s1, s2 := c.gridSigmas()
	assert.Equal(t, []float64{100, 500, .2}, []float64{grid, s1, s2})
	aMin, aMax, eMax := c.limits()
	assert.Equal(t, c.class.AMin, aMin)
	assert.Equal(t, c.class.AMax, aMax)
	assert.Equal(t, c.class.EMax, eMax)
}

func TestParseConfig(t *testing.T) {
	c, err := parseConfig(strings.NewReader(`
# comment
noheadings
class geo
amax=43000
emax = .02
grid=50
sigma1=300
sigma2=.1
format json
repeatable
samples=10
maxrms=2.5
plot=/tmp/car
obserr=.5
obserr000=.8
`), testOcd)
	require.NoError(t, err)
	assert.False(t, c.headings)
	assert.Equal(t, "GEO", c.class.Abbr)
	aMin, aMax, eMax := c.limits()
	assert.Equal(t, c.class.AMin, aMin)
	assert.Equal(t, 43000., aMax)
	assert.Equal(t, .02, eMax)
	grid, s1, s2 := c.gridSigmas()
	assert.Equal(t, []float64{50, 300, .1}, []float64{grid, s1, s2})
	assert.Equal(t, formatJSON, c.format)
	assert.True(t, c.repeatable)
	assert.Equal(t, 10, c.samples)
	assert.InDelta(t, 2.5, c.maxRms.Sec(), 1e-12)
	assert.Equal(t, "/tmp/car", c.plotDir)
	assert.InDelta(t, .5, c.obsErr("291").Sec(), 1e-12)
	assert.InDelta(t, .8, c.obsErr("000").Sec(), 1e-12)
}

func TestParseConfigRange(t *testing.T) {
	c, err := parseConfig(strings.NewReader("mode range\nrange=38000\nrangerate=-.5\n"), testOcd)
	require.NoError(t, err)
	assert.Equal(t, carsolver.RangeRate, c.mode)
	assert.Equal(t, 38000., c.rng)
	assert.Equal(t, -.5, c.rangeRate)
	grid, s1, s2 := c.gridSigmas()
	assert.Equal(t, []float64{1e-6, 5e-5, 5e-5}, []float64{grid, s1, s2})
}

func TestParseConfigErrors(t *testing.T) {
	for _, in := range []string{
		"bogus",
		"class XYZ",
		"mode radar",
		"format xml",
		"amin=-1",
		"amax=big",
		"emax=1",
		"samples=-3",
		"samples=2.5",
		"maxrms=0",
		"obserr=11",
		"obserr291=.5", // unknown obscode
		"obserr .5",
		"color=blue",
		"mode range", // no range
	} {
		_, err := parseConfig(strings.NewReader(in), testOcd)
		assert.Error(t, err, in)
	}
}
