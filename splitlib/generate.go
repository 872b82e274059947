// Public domain.

package splitlib

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/soniakeys/car/internal/lsq"
)

// residual samples per component
const samplesPerComponent = 1000

// Generate computes a library of n entries.
//
// Entry N is the sigma fraction minimizing the squared difference between
// the unit uniform density and N equally weighted Gaussians at k/(N+1),
// sampled over [-1, 2].
func Generate(n int) (Library, error) {
	if n < 1 {
		return Library{}, fmt.Errorf("%w: %d entries requested", ErrResource, n)
	}
	sigma := make([]float64, n)
	start := .35
	for i := range sigma {
		f, err := fitFraction(i+1, start)
		if err != nil {
			return Library{}, fmt.Errorf("%w: %d components: %v", ErrResource, i+1, err)
		}
		sigma[i] = f
		start = f
	}
	return Library{sigma}, nil
}

func fitFraction(n int, start float64) (float64, error) {
	m := samplesPerComponent * (n + 1)
	xs := make([]float64, m)
	target := make([]float64, m)
	for i := range xs {
		x := -1 + 3*(float64(i)+.5)/float64(m)
		xs[i] = x
		if x >= 0 && x <= 1 {
			target[i] = 1
		}
	}
	density := func(y, p []float64) {
		for i, x := range xs {
			y[i] = 0
			for k := 1; k <= n; k++ {
				y[i] += distuv.Normal{Mu: float64(k) / float64(n+1), Sigma: p[0]}.Prob(x)
			}
			y[i] /= float64(n)
		}
	}
	res, err := lsq.Solve(lsq.Problem{
		Model: func(value []float64, jac *mat.Dense, p []float64) {
			density(value, p)
			fd.Jacobian(jac, density, p, nil)
		},
		Target: target,
		Start:  []float64{start},
		Project: func(p []float64) {
			p[0] = math.Max(p[0], 1e-6)
		},
	}, lsq.DefaultSettings)
	if err != nil {
		return 0, err
	}
	return res.X[0], nil
}

// WriteTo writes the library in the format read by Parse.
func (l Library) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, s := range l.sigma {
		c, err := io.WriteString(w, strconv.FormatFloat(s, 'f', -1, 64)+"\n")
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
