// Public domain.

package carsolver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/soniakeys/car/internal/lsq"
)

// Fit is the mixture along the abscissa.
type Fit struct {
	Means []float64
	// Sigma is the standard deviation shared by all components.
	Sigma float64
	// Weights are normalized to sum to 1.  Weights that are zero or not
	// in [0,1] mark components that are not used.
	Weights []float64

	Converged   bool
	Iterations  int
	Evaluations int
}

// usable reports whether a normalized weight contributes a component.
func usable(w float64) bool {
	return w > 0 && w <= 1
}

// fitAbscissa fits weights of equally spaced Gaussians along the
// abscissa to the region density.  On ErrMaxEvaluations the returned Fit
// holds the best point found.
func (s *Solver) fitAbscissa(r *Region, sigma1 float64) (*Fit, error) {
	span := r.Span()
	jp, frac := s.lib.Split(sigma1 / span)
	f := &Fit{
		Means: make([]float64, jp),
		Sigma: span * frac,
	}
	for k := range f.Means {
		f.Means[k] = r.DomainStart() + span*float64(k+1)/float64(jp+1)
	}

	// basis matrix, Gaussian densities at cell centers
	basis := mat.NewDense(len(r.Cells), jp, nil)
	for j, m := range f.Means {
		g := distuv.Normal{Mu: m, Sigma: f.Sigma}
		for i, x := range r.Cells {
			basis.Set(i, j, g.Prob(x))
		}
	}

	res, err := lsq.Solve(lsq.Problem{
		Model: func(value []float64, jac *mat.Dense, w []float64) {
			jac.Copy(basis)
			v := mat.NewVecDense(len(value), value)
			v.MulVec(basis, mat.NewVecDense(len(w), w))
		},
		Target:  r.Density,
		Start:   make([]float64, jp),
		Project: clampUnit,
	}, s.settings)
	if res == nil {
		return f, err
	}
	f.Converged = res.Converged
	f.Iterations = res.Iterations
	f.Evaluations = res.Evaluations
	f.Weights = res.X
	if sum := floats.Sum(f.Weights); sum != 0 {
		floats.Scale(1/sum, f.Weights)
	}
	for i, w := range f.Weights {
		if math.IsNaN(w) {
			f.Weights[i] = 0
		}
	}
	return f, err
}

// clampUnit projects parameters into [0,1].
func clampUnit(x []float64) {
	for i, v := range x {
		switch {
		case v < 0:
			x[i] = 0
		case v > 1:
			x[i] = 1
		}
	}
}
