// Public domain.

package earth_test

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/car/earth"
)

func TestElements(t *testing.T) {
	// perigee of an orbit with a = 8000 km, inclined 30°
	const rp, a = 7000., 8000.
	v := math.Sqrt(earth.Mu * (2/rp - 1/a))
	s, c := math.Sincos(math.Pi / 6)
	sa, e, i, ok := earth.Elements(
		coord.Cart{X: rp},
		coord.Cart{Y: v * c, Z: v * s})
	require.True(t, ok)
	assert.InDelta(t, a, sa, 1e-6)
	assert.InDelta(t, 1-rp/a, e, 1e-9)
	assert.InDelta(t, 30, i.Deg(), 1e-9)
}

func TestElementsRejectsEscape(t *testing.T) {
	_, _, _, ok := earth.Elements(
		coord.Cart{X: 7000},
		coord.Cart{Y: 12})
	assert.False(t, ok)
}

func TestMJD(t *testing.T) {
	assert.InDelta(t, 51544.5,
		earth.MJD(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
}

func TestGMST(t *testing.T) {
	// Meeus, eq. 12.4 at J2000.0
	assert.InDelta(t, 280.46061837, earth.GMST(51544.5).Deg(), 1e-6)
}
