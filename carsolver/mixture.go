// Public domain.

package carsolver

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is one bivariate Gaussian hypothesis with uncorrelated axes.
type Gaussian struct {
	AbscissaMean float64 `json:"abscissaMean" msgpack:"abscissa_mean"`
	OrdinateMean float64 `json:"ordinateMean" msgpack:"ordinate_mean"`
	AbscissaStd  float64 `json:"abscissaStd" msgpack:"abscissa_std"`
	OrdinateStd  float64 `json:"ordinateStd" msgpack:"ordinate_std"`
	Weight       float64 `json:"weight" msgpack:"weight"`
}

// Mixture is a weighted set of Gaussians.  Order is not significant.
type Mixture []Gaussian

// TotalWeight returns the sum of weights.
func (m Mixture) TotalWeight() (t float64) {
	for _, g := range m {
		t += g.Weight
	}
	return
}

// Density evaluates the mixture density at abscissa x, ordinate y.
func (m Mixture) Density(x, y float64) (d float64) {
	for _, g := range m {
		d += g.Weight *
			distuv.Normal{Mu: g.AbscissaMean, Sigma: g.AbscissaStd}.Prob(x) *
			distuv.Normal{Mu: g.OrdinateMean, Sigma: g.OrdinateStd}.Prob(y)
	}
	return
}

// Rand is the random source used by Sample.  golang.org/x/exp/rand.Rand
// and math/rand.Rand both satisfy it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Particle is a point drawn from a mixture.  C is the index of the
// component it was drawn from.
type Particle struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	C int     `json:"c" msgpack:"c"`
}

// Sample draws n particles from the mixture.  A component is chosen with
// probability proportional to its weight, then a point is drawn from it.
// Sample returns nil for a mixture of zero total weight.
func (m Mixture) Sample(rnd Rand, n int) []Particle {
	cum := make([]float64, len(m))
	var t float64
	for i, g := range m {
		t += g.Weight
		cum[i] = t
	}
	if !(t > 0) {
		return nil
	}
	p := make([]Particle, n)
	for i := range p {
		c := sort.SearchFloat64s(cum, rnd.Float64()*t)
		if c == len(m) {
			c--
		}
		g := &m[c]
		p[i] = Particle{
			X: g.AbscissaMean + g.AbscissaStd*rnd.NormFloat64(),
			Y: g.OrdinateMean + g.OrdinateStd*rnd.NormFloat64(),
			C: c,
		}
	}
	return p
}
