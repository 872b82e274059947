// Public domain.

// Package lsq implements a projected Levenberg-Marquardt least squares
// solver.
//
// Parameters are kept feasible by a caller supplied projection applied to
// every proposed point before it is evaluated, which is how simple box
// constraints are enforced.
package lsq

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrMaxEvaluations is returned when the evaluation or iteration budget is
// exhausted before convergence.  The Result returned with it holds the
// best point found.
var ErrMaxEvaluations = errors.New("maximum evaluations exceeded")

// Problem describes a least squares problem: minimize |F(x) - Target|².
type Problem struct {
	// Model sets value to F(x) and jac to the Jacobian of F at x.
	// value has length len(Target); jac is len(Target) x len(x).
	Model func(value []float64, jac *mat.Dense, x []float64)
	// Target is the observed vector.
	Target []float64
	// Start is the initial point.  It is not modified.
	Start []float64
	// Project, if not nil, moves x into the feasible set in place.
	Project func(x []float64)
}

// Settings are solver limits and tolerances.
type Settings struct {
	MaxIterations  int
	MaxEvaluations int
	// relative reduction of cost considered converged
	CostTolerance float64
	// relative step length considered converged
	ParamTolerance float64
	// initial damping, relative to the largest diagonal of JᵀJ
	InitialDamping float64
}

// DefaultSettings match the budget used for mixture fitting.
var DefaultSettings = Settings{
	MaxIterations:  10000,
	MaxEvaluations: 10000,
	CostTolerance:  1e-10,
	ParamTolerance: 1e-10,
	InitialDamping: 1e-3,
}

// Result is the solution of a Problem.
type Result struct {
	X           []float64
	Cost        float64 // ½|F(x)-Target|²
	Iterations  int
	Evaluations int
	Converged   bool
}

// damping beyond which no step can make progress
const maxDamping = 1e16

// Solve runs the solver.  On ErrMaxEvaluations the returned Result is the
// best point found and is usable.
func Solve(p Problem, s Settings) (*Result, error) {
	m, n := len(p.Target), len(p.Start)
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("lsq: empty problem (%d residuals, %d parameters)", m, n)
	}
	x := append([]float64{}, p.Start...)
	if p.Project != nil {
		p.Project(x)
	}
	val := make([]float64, m)
	jac := mat.NewDense(m, n, nil)
	res := &Result{X: x}

	// residual r = F(x) - target
	r := make([]float64, m)
	evaluate := func(x, r []float64, jac *mat.Dense) float64 {
		res.Evaluations++
		p.Model(val, jac, x)
		floats.SubTo(r, val, p.Target)
		return .5 * floats.Dot(r, r)
	}
	res.Cost = evaluate(x, r, jac)

	xn := make([]float64, n)
	rn := make([]float64, m)
	jn := mat.NewDense(m, n, nil)
	var jtj mat.SymDense
	var g mat.VecDense
	var chol mat.Cholesky
	a := mat.NewSymDense(n, nil)
	step := mat.NewVecDense(n, nil)
	lambda := -1.

	for res.Iterations < s.MaxIterations {
		res.Iterations++
		jtj.SymOuterK(1, jac.T())
		g.MulVec(jac.T(), mat.NewVecDense(m, r))
		if lambda < 0 {
			dmax := 0.
			for i := 0; i < n; i++ {
				dmax = math.Max(dmax, jtj.At(i, i))
			}
			if dmax == 0 {
				dmax = 1
			}
			lambda = s.InitialDamping * dmax
		}
		for {
			if res.Evaluations >= s.MaxEvaluations {
				return res, ErrMaxEvaluations
			}
			a.CopySym(&jtj)
			for i := 0; i < n; i++ {
				d := jtj.At(i, i)
				if d == 0 {
					d = 1
				}
				a.SetSym(i, i, jtj.At(i, i)+lambda*d)
			}
			if !chol.Factorize(a) {
				lambda *= 10
				if lambda > maxDamping {
					res.Converged = true
					return res, nil
				}
				continue
			}
			if err := chol.SolveVecTo(step, &g); err != nil {
				lambda *= 10
				if lambda > maxDamping {
					res.Converged = true
					return res, nil
				}
				continue
			}
			for i := range xn {
				xn[i] = x[i] - step.AtVec(i)
			}
			if p.Project != nil {
				p.Project(xn)
			}
			cost := evaluate(xn, rn, jn)
			if cost <= res.Cost {
				dx := 0.
				for i := range xn {
					dx = math.Max(dx, math.Abs(xn[i]-x[i]))
				}
				reduction := res.Cost - cost
				copy(x, xn)
				copy(r, rn)
				jac.Copy(jn)
				res.Cost = cost
				lambda /= 10
				if reduction <= s.CostTolerance*cost ||
					dx <= s.ParamTolerance*(floats.Norm(x, math.Inf(1))+s.ParamTolerance) {
					res.Converged = true
					return res, nil
				}
				break
			}
			lambda *= 10
			if lambda > maxDamping {
				// no descent direction survives projection
				res.Converged = true
				return res, nil
			}
		}
	}
	return res, ErrMaxEvaluations
}
