// Public domain.

package carsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	tb := table{{0, 0, 1}, {1, 1, 3}, {2, 0, 2}}
	for _, tc := range []struct {
		x, l, u float64
	}{
		{0, 0, 1},
		{1, 1, 3},
		{2, 0, 2},
		{1.5, .5, 2.5},
		{.25, .25, 1.5},
		{-1, -1, -1}, // extrapolated
		{3, -1, 1},
	} {
		l, u := tb.interpolate(tc.x)
		assert.InDelta(t, tc.l, l, 1e-15, "x=%g", tc.x)
		assert.InDelta(t, tc.u, u, 1e-15, "x=%g", tc.x)
	}
}

func TestEllipseTable(t *testing.T) {
	tb := newEllipseTable(1, 2, 3, 4)
	assert.Len(t, tb, ellipseRows)
	for i := 1; i < len(tb); i++ {
		assert.Greater(t, tb[i].x, tb[i-1].x)
	}
	// stored rows are returned as stored
	for _, r := range tb {
		l, u := tb.interpolate(r.x)
		assert.Equal(t, r.lower, l)
		assert.Equal(t, r.upper, u)
	}
	// the end of the minor axis
	assert.InDelta(t, 1, tb[90].x, 1e-15)
	b := tb.bound(tb[90].x)
	assert.True(t, b.OK)
	assert.InDelta(t, -2, b.Lower, 1e-15)
	assert.InDelta(t, 6, b.Upper, 1e-15)
	// the end of the major axis, a vanishing interval
	assert.InDelta(t, -2, tb[0].x, 1e-15)
	b = tb.bound(tb[0].x)
	assert.InDelta(t, 2, b.Lower, 1e-14)
	assert.InDelta(t, 0, b.Upper-b.Lower, 1e-14)
	// beyond the ellipse extrapolation crosses over
	assert.False(t, tb.bound(-3).OK)
}
