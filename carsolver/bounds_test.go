// Public domain.

package carsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyBoundTangent(t *testing.T) {
	// w1²/4 - F + 2E = 1 - 0 - 1 = 0
	b := energyBound(2, 0, -.5)
	require.True(t, b.OK)
	assert.Equal(t, -1., b.Lower)
	assert.Equal(t, b.Lower, b.Upper)
}

func TestEnergyBound(t *testing.T) {
	// y² + 2y - 3 = 0
	b := energyBound(2, -3, 0)
	require.True(t, b.OK)
	assert.InDelta(t, -3, b.Lower, 1e-15)
	assert.InDelta(t, 1, b.Upper, 1e-15)

	assert.Equal(t, Bound{}, energyBound(2, 3, 0))
}

func TestQuarticBound(t *testing.T) {
	// (x-1)(x-3)(x²+2x+5)
	b := quarticBound([]float64{15, -14, 0, -2, 1})
	require.True(t, b.OK)
	assert.InDelta(t, 1, b.Lower, 1e-9)
	assert.InDelta(t, 3, b.Upper, 1e-9)

	// (x²+2x+5)(x²+1)
	b = quarticBound([]float64{5, 2, 6, 2, 1})
	assert.False(t, b.OK)
}
