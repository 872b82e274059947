// Public domain.

package carsolver

// hypotheses splits each usable abscissa component along the ordinate.
//
// The ordinate interval at an abscissa mean is interpolated from the
// segments of the cell containing the mean.  A cell crossed by both the
// upper and lower arcs yields components on each, sharing the parent
// weight.  Lost is the total weight of means where no ordinate interval
// exists; the remaining components are renormalized to compensate.
func (s *Solver) hypotheses(r *Region, f *Fit, sigma2 float64) (m Mixture, lost float64) {
	for i, w := range f.Weights {
		if !usable(w) {
			continue
		}
		x := f.Means[i]
		j := r.cell(x)
		if j < 0 || len(r.segs[j]) == 0 {
			lost += w
			continue
		}
		var sub Mixture
		for _, sg := range r.segs[j] {
			sub = append(sub, s.splitOrdinate(sg, x, f.Sigma, sigma2)...)
		}
		if len(sub) == 0 {
			lost += w
			continue
		}
		for k := range sub {
			sub[k].Weight = w / float64(len(sub))
		}
		m = append(m, sub...)
	}
	if lost > 0 {
		if t := m.TotalWeight(); t > 0 {
			for k := range m {
				m[k].Weight /= t
			}
		}
	}
	return m, lost
}

// splitOrdinate places equally spaced components across the ordinate
// interval of segment sg at abscissa x.  Weights are left zero.  An
// empty interval yields no components.
func (s *Solver) splitOrdinate(sg segment, x, xSigma, sigma2 float64) Mixture {
	lower, upper := sg.at(x)
	width := upper - lower
	if !(width > 0) {
		return nil
	}
	n, frac := s.lib.Split(sigma2 / width)
	m := make(Mixture, n)
	for k := range m {
		m[k] = Gaussian{
			AbscissaMean: x,
			OrdinateMean: lower + width*float64(k+1)/float64(n+1),
			AbscissaStd:  xSigma,
			OrdinateStd:  width * frac,
		}
	}
	return m
}
