// Public domain.

// Package carplot draws admissible regions.
package carplot

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/soniakeys/car/carsolver"
)

// ErrNotAdmissible is returned for a CAR with no region to draw.
var ErrNotAdmissible = errors.New("no admissible region")

var (
	arcColor      = color.RGBA{B: 200, A: 255}
	mainColor     = color.RGBA{G: 120, A: 255}
	meanColor     = color.RGBA{R: 220, A: 255}
	particleColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

func axisLabels(m carsolver.Mode) (x, y string) {
	if m == carsolver.RangeRate {
		return "RA rate (rad/s)", "Dec rate (rad/s)"
	}
	return "range (km)", "range rate (km/s)"
}

// runs splits boundary points where consecutive abscissas are not
// adjacent grid values.
func runs(pts []carsolver.Point, g float64) (r [][]carsolver.Point) {
	start := 0
	for i := 1; i <= len(pts); i++ {
		if i == len(pts) || pts[i].X-pts[i-1].X > 1.5*g {
			r = append(r, pts[start:i])
			start = i
		}
	}
	return
}

// edges adds lines for the lower and upper edges of a boundary curve.
func edges(p *plot.Plot, pts []carsolver.Point, g float64, c color.Color) error {
	for _, run := range runs(pts, g) {
		if len(run) < 2 {
			continue
		}
		lo := make(plotter.XYs, len(run))
		up := make(plotter.XYs, len(run))
		for i, q := range run {
			lo[i] = plotter.XY{X: q.X, Y: q.Lower}
			up[i] = plotter.XY{X: q.X, Y: q.Upper}
		}
		for _, xys := range []plotter.XYs{lo, up} {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return err
			}
			l.Color = c
			l.Width = vg.Points(1)
			p.Add(l)
		}
	}
	return nil
}

// Save draws the region boundary, the component means and, optionally,
// particles sampled from the mixture.  The image format follows the
// extension of fn.
func Save(c *carsolver.CAR, particles []carsolver.Particle, fn string) error {
	if !c.Admissible() {
		return ErrNotAdmissible
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("CAR, %d components", len(c.Components))
	p.X.Label.Text, p.Y.Label.Text = axisLabels(c.Params.Mode)

	g := c.Params.GridSpacing
	r := c.Region
	if err := edges(p, r.Upper, g, arcColor); err != nil {
		return err
	}
	if err := edges(p, r.Lower, g, arcColor); err != nil {
		return err
	}
	if err := edges(p, r.Main, g, mainColor); err != nil {
		return err
	}

	if len(particles) > 0 {
		xys := make(plotter.XYs, len(particles))
		for i, q := range particles {
			xys[i] = plotter.XY{X: q.X, Y: q.Y}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = particleColor
		s.GlyphStyle.Radius = vg.Points(.5)
		p.Add(s)
	}

	if len(c.Components) > 0 {
		xys := make(plotter.XYs, len(c.Components))
		for i, m := range c.Components {
			xys[i] = plotter.XY{X: m.AbscissaMean, Y: m.OrdinateMean}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = meanColor
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add("means", s)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 6*vg.Inch, fn); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
