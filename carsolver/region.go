// Public domain.

package carsolver

// Point is a vertex of a boundary curve: the admissible ordinate interval
// at abscissa X.
type Point struct {
	X, Lower, Upper float64
	i               int // cell index, relative to Region.Start
}

func (p Point) width() float64 { return p.Upper - p.Lower }

// segment is the piece of a boundary curve crossing one cell.
type segment struct {
	left, right Point
}

// area by the trapezoid rule
func (s segment) area() float64 {
	return (s.right.X - s.left.X) * (s.left.width() + s.right.width()) / 2
}

// at interpolates, or extrapolates, the ordinate interval at x.
func (s segment) at(x float64) (lower, upper float64) {
	f := (x - s.left.X) / (s.right.X - s.left.X)
	return s.left.Lower + f*(s.right.Lower-s.left.Lower),
		s.left.Upper + f*(s.right.Upper-s.left.Upper)
}

// Region is the admissible region over the truncated grid range.
//
// Where the semi-major axis lower limit cuts the region the bounds are
// split into an upper and a lower arc.  Elsewhere a single main arc
// bounds the region.
type Region struct {
	// Start and End are inclusive sample indexes of the truncated range.
	Start, End int
	// boundary curves
	Upper, Lower, Main []Point
	// Area is the area of the region.
	Area float64
	// Cells holds the abscissa of cell centers.  Cell i spans samples
	// Start+i and Start+i+1.
	Cells []float64
	// Density is the normalized region width per cell, the target for
	// the abscissa fit.
	Density []float64

	x    []float64   // abscissa of samples Start through End
	segs [][]segment // boundary segments of each cell
}

// DomainStart returns the abscissa of the first sample in range.
func (r *Region) DomainStart() float64 { return r.x[0] }

// DomainEnd returns the abscissa of the last sample in range.
func (r *Region) DomainEnd() float64 { return r.x[len(r.x)-1] }

// Span is DomainEnd - DomainStart.
func (r *Region) Span() float64 { return r.DomainEnd() - r.DomainStart() }

// cell returns the index of the first cell containing x, or -1.
func (r *Region) cell(x float64) int {
	for j := range r.Cells {
		if x >= r.x[j] && x <= r.x[j+1] {
			return j
		}
	}
	return -1
}

// truncate finds the sample range where the region begins and continues
// without a gap in the amax and emax bounds.
func truncate(s []Sample) (start, end int, ok bool) {
	start = -1
	for i := range s {
		p := &s[i]
		if !p.AMax.OK || !p.EMax.OK {
			continue
		}
		if !p.AMin.OK ||
			p.AMax.Upper > p.AMin.Upper && p.EMax.Upper > p.AMin.Upper &&
				p.AMax.Lower < p.AMin.Lower && p.EMax.Lower < p.AMin.Lower {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	end = len(s) - 1
	for i := start; i < len(s); i++ {
		if !s[i].AMax.OK || !s[i].EMax.OK {
			end = i - 1
			break
		}
	}
	return start, end, end > start
}

// splitRegion builds the region from grid samples.  It returns nil if
// there is no region of positive area.
func splitRegion(s []Sample) *Region {
	start, end, ok := truncate(s)
	if !ok {
		return nil
	}
	r := &Region{Start: start, End: end}
	for i, p := range s[start : end+1] {
		r.x = append(r.x, p.X)
		if p.AMin.OK {
			if p.EMax.Upper > p.AMin.Upper {
				r.Upper = append(r.Upper, Point{
					X:     p.X,
					Lower: p.AMin.Upper,
					Upper: min(p.AMax.Upper, p.EMax.Upper),
					i:     i,
				})
			}
			if p.EMax.Lower < p.AMin.Lower {
				r.Lower = append(r.Lower, Point{
					X:     p.X,
					Lower: max(p.AMax.Lower, p.EMax.Lower),
					Upper: p.AMin.Lower,
					i:     i,
				})
			}
			continue
		}
		r.Main = append(r.Main, Point{
			X:     p.X,
			Lower: max(p.AMax.Lower, p.EMax.Lower),
			Upper: min(p.AMax.Upper, p.EMax.Upper),
			i:     i,
		})
	}

	n := end - start
	r.segs = r.segments(n)
	for _, cs := range r.segs {
		for _, sg := range cs {
			r.Area += sg.area()
		}
	}
	if !(r.Area > 0) {
		return nil
	}
	r.Cells = make([]float64, n)
	r.Density = make([]float64, n)
	for i, cs := range r.segs {
		r.Cells[i] = r.x[i] + (r.x[i+1]-r.x[i])/2
		for _, sg := range cs {
			r.Density[i] += (sg.left.width() + sg.right.width()) / (2 * r.Area)
		}
	}
	return r
}

// cursor walks the points of one boundary curve in cell order.
type cursor struct {
	pts []Point
	k   int
}

// segment returns the segment of the curve crossing cell i.  The curve
// must have points at both ends of the cell.  Cells must be visited in
// increasing order.
func (c *cursor) segment(i int) (segment, bool) {
	for c.k < len(c.pts) && c.pts[c.k].i < i {
		c.k++
	}
	if c.k+1 >= len(c.pts) || c.pts[c.k].i != i || c.pts[c.k+1].i != i+1 {
		return segment{}, false
	}
	return segment{c.pts[c.k], c.pts[c.k+1]}, true
}

// point returns the point of the curve at the left of cell i.  Cells
// must be visited in increasing order.
func (c *cursor) point(i int) (Point, bool) {
	for c.k < len(c.pts) && c.pts[c.k].i < i {
		c.k++
	}
	if c.k < len(c.pts) && c.pts[c.k].i == i {
		return c.pts[c.k], true
	}
	return Point{}, false
}

// done reports whether the curve has no segment in cell i or later.
func (c *cursor) done(i int) bool {
	return len(c.pts) == 0 || c.pts[len(c.pts)-1].i <= i
}

// next returns the first point beyond cell i.
func (c *cursor) next(i int) (Point, bool) {
	for _, p := range c.pts {
		if p.i > i {
			return p, true
		}
	}
	return Point{}, false
}

// states of the segment walk
const (
	upperLowerActive = iota
	transition
	mainActive
)

// segments walks n cells and returns the boundary segments of each.
//
// Upper and lower arcs are active until both are exhausted.  A main
// point followed by upper and lower points opens into them with a
// single segment.  The cell where the arcs are exhausted gets a single
// transition segment joining the outer edges of the last upper and lower
// points to the next main point.  Main segments follow.
func (r *Region) segments(n int) [][]segment {
	up := &cursor{pts: r.Upper}
	lo := &cursor{pts: r.Lower}
	mn := &cursor{pts: r.Main}
	state := upperLowerActive
	segs := make([][]segment, n)
	for i := range segs {
		if state == upperLowerActive && up.done(i) && lo.done(i) {
			state = mainActive
			if len(r.Upper) > 0 && len(r.Lower) > 0 {
				state = transition
			}
		}
		switch state {
		case upperLowerActive:
			if sg, ok := up.segment(i); ok {
				segs[i] = append(segs[i], sg)
			}
			if sg, ok := lo.segment(i); ok {
				segs[i] = append(segs[i], sg)
			}
		case transition:
			if right, ok := mn.next(i); ok {
				segs[i] = append(segs[i], segment{
					left: Point{
						X:     r.x[i],
						Lower: r.Lower[len(r.Lower)-1].Lower,
						Upper: r.Upper[len(r.Upper)-1].Upper,
						i:     i,
					},
					right: right,
				})
			}
			state = mainActive
			continue
		}
		if sg, ok := mn.segment(i); ok {
			segs[i] = append(segs[i], sg)
		} else if state == upperLowerActive {
			if sg, ok := opening(mn, up, lo, i); ok {
				segs[i] = append(segs[i], sg)
			}
		}
	}
	return segs
}

// opening joins a main point at the left of cell i to the outer edges
// of the upper and lower points at its right, where the amin bound
// begins to cut the region.
func opening(mn, up, lo *cursor, i int) (segment, bool) {
	left, ok := mn.point(i)
	if !ok {
		return segment{}, false
	}
	u, uOK := up.point(i + 1)
	l, lOK := lo.point(i + 1)
	var right Point
	switch {
	case uOK && lOK:
		right = Point{X: u.X, Lower: l.Lower, Upper: u.Upper, i: i + 1}
	case uOK:
		right = u
	case lOK:
		right = l
	default:
		return segment{}, false
	}
	return segment{left, right}, true
}
