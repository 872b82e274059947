// Public domain.

package carprog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/car/attrib"
	"github.com/soniakeys/car/carsolver"
	"github.com/soniakeys/car/earth"
	"github.com/soniakeys/car/internal/carplot"
	"github.com/soniakeys/car/mpc"
	"github.com/soniakeys/car/regime"
	"github.com/soniakeys/car/station"
)

// record is the output for one tracklet.
type record struct {
	Desig      string  `json:"desig" msgpack:"desig"`
	Site       string  `json:"site" msgpack:"site"`
	MJD        float64 `json:"mjd" msgpack:"mjd"`
	RA         float64 `json:"ra" msgpack:"ra"`   // degrees
	Dec        float64 `json:"dec" msgpack:"dec"` // degrees
	RARate     float64 `json:"raRate" msgpack:"ra_rate"`
	DecRate    float64 `json:"decRate" msgpack:"dec_rate"`
	Rms        float64 `json:"rms" msgpack:"rms"` // arc seconds
	Mode       string  `json:"mode" msgpack:"mode"`
	Admissible bool    `json:"admissible" msgpack:"admissible"`
	Converged  bool    `json:"converged" msgpack:"converged"`
	Area       float64 `json:"area" msgpack:"area"`

	Components []hypothesis          `json:"components" msgpack:"components"`
	Samples    []carsolver.Particle `json:"samples,omitempty" msgpack:"samples,omitempty"`

	ra  unit.RA
	dec unit.Angle
}

// hypothesis is a mixture component with the orbit classes of its mean.
type hypothesis struct {
	carsolver.Gaussian
	Regimes []string `json:"regimes,omitempty" msgpack:"regimes,omitempty"`
}

// runner processes tracklets.
type runner struct {
	cfg    *config
	solver *carsolver.Solver
	log    *zap.SugaredLogger
	rnd    *xrand.Rand
}

func newRunner(cfg *config, s *carsolver.Solver, log *zap.SugaredLogger) *runner {
	rnd := xrand.New(&xrand.PCGSource{})
	if !cfg.repeatable {
		rnd.Seed(uint64(time.Now().UnixNano()))
	}
	return &runner{cfg: cfg, solver: s, log: log, rnd: rnd}
}

// process reads observations and writes a record for each tracklet.
// Tracklets that cannot be processed are logged and skipped.  The
// returned error is from reading or writing.
func (r *runner) process(w io.Writer, obs io.Reader, ocd mpc.ParallaxMap) error {
	out := newWriter(w, r.cfg)
	if r.cfg.headings {
		if err := out.heading(); err != nil {
			return err
		}
	}
	for next := mpc.TrackletSplitter(obs, ocd); ; {
		tk, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		rec, err := r.solve(tk)
		if err != nil {
			r.log.Warnw("tracklet skipped", "desig", tk.Desig, "error", err)
			continue
		}
		if rec == nil {
			continue
		}
		if err := out.write(rec); err != nil {
			return err
		}
	}
}

// solve builds the CAR of a tracklet.  A nil record without error is a
// tracklet rejected by configuration.
func (r *runner) solve(tk *mpc.Tracklet) (*record, error) {
	code := tk.Obs[0].Code
	a, err := attrib.Fit(tk, r.cfg.obsErr(code))
	if err != nil {
		return nil, err
	}
	if r.cfg.maxRms > 0 && a.Rms > r.cfg.maxRms {
		r.log.Infow("tracklet rms over limit", "desig", a.Desig, "rms", a.Rms.Sec())
		return nil, nil
	}
	st := station.FromParallax(a.Site, a.MJD)
	p := r.params(a, st)

	c, err := r.solver.Build(p)
	switch {
	case errors.Is(err, carsolver.ErrFitNotConverged):
		// best effort, already logged
	case err != nil:
		return nil, err
	}

	rec := &record{
		Desig:      a.Desig,
		Site:       code,
		MJD:        a.MJD,
		RA:         a.RA.Deg(),
		Dec:        a.Dec.Deg(),
		RARate:     a.RARate,
		DecRate:    a.DecRate,
		Rms:        a.Rms.Sec(),
		Mode:       p.Mode.String(),
		Admissible: c.Admissible(),
		Components: []hypothesis{},
		ra:         unit.RAFromRad(a.RA.Rad()),
		dec:        a.Dec,
	}
	if !c.Admissible() {
		return rec, nil
	}
	rec.Converged = c.Fit.Converged
	rec.Area = c.Region.Area
	for _, g := range c.Components {
		h := hypothesis{Gaussian: g}
		if ae, e, i, ok := earth.Elements(p.State(g.AbscissaMean, g.OrdinateMean)); ok {
			h.Regimes = regime.Classify(ae, e, i)
		}
		rec.Components = append(rec.Components, h)
	}
	if r.cfg.samples > 0 {
		if r.cfg.repeatable {
			r.rnd.Seed(3)
		}
		rec.Samples = c.Components.Sample(r.rnd, r.cfg.samples)
	}
	if r.cfg.plotDir != "" {
		fn := filepath.Join(r.cfg.plotDir, fileName(a.Desig)+".png")
		if err := carplot.Save(c, rec.Samples, fn); err != nil {
			r.log.Warnw("plot not written", "file", fn, "error", err)
		}
	}
	return rec, nil
}

// params assembles CAR parameters from an attributable and station.
func (r *runner) params(a *attrib.Attributable, st station.State) carsolver.Params {
	aMin, aMax, eMax := r.cfg.limits()
	grid, sigma1, sigma2 := r.cfg.gridSigmas()
	p := carsolver.Params{
		Mode:        r.cfg.mode,
		RA:          a.RA,
		Dec:         a.Dec,
		StationPos:  st.Pos,
		StationVel:  st.Vel,
		Sigma1:      sigma1,
		Sigma2:      sigma2,
		GridSpacing: grid,
		AMin:        aMin,
		AMax:        aMax,
		EMax:        eMax,
	}
	if r.cfg.mode == carsolver.RangeRate {
		p.Range = r.cfg.rng
		p.RangeRate = r.cfg.rangeRate
		// unless configured, split at the formal rate uncertainties
		if r.cfg.sigma1 == 0 && a.RARateSigma > 0 {
			p.Sigma1 = a.RARateSigma
		}
		if r.cfg.sigma2 == 0 && a.DecRateSigma > 0 {
			p.Sigma2 = a.DecRateSigma
		}
	} else {
		p.RARate = a.RARate
		p.DecRate = a.DecRate
	}
	return p
}

// fileName maps a designation to a safe file name.
func fileName(desig string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, desig)
}

type writer interface {
	heading() error
	write(*record) error
}

func newWriter(w io.Writer, cfg *config) writer {
	switch cfg.format {
	case formatJSON:
		return jsonWriter{json.NewEncoder(w)}
	case formatMsgpack:
		return msgpackWriter{msgpack.NewEncoder(w)}
	}
	return textWriter{w, cfg.mode}
}

// jsonWriter writes JSON lines.  Headings are not written.
type jsonWriter struct{ enc *json.Encoder }

func (jsonWriter) heading() error          { return nil }
func (j jsonWriter) write(r *record) error { return j.enc.Encode(r) }

// msgpackWriter writes a stream of MessagePack maps.
type msgpackWriter struct{ enc *msgpack.Encoder }

func (msgpackWriter) heading() error          { return nil }
func (m msgpackWriter) write(r *record) error { return m.enc.Encode(r) }

type textWriter struct {
	w    io.Writer
	mode carsolver.Mode
}

func (t textWriter) heading() error {
	x, y, sx, sy := "Range", "RngRate", "SigRng", "SigRate"
	if t.mode == carsolver.RangeRate {
		x, y, sx, sy = "RARate", "DecRate", "SigRA", "SigDec"
	}
	_, err := fmt.Fprintf(t.w, "%s\nDesig.  Site MJD          RA            Dec          RMS\n"+
		"      %12s %12s %10s %10s Weight  Classes\n",
		versionString, x, y, sx, sy)
	return err
}

func (t textWriter) write(r *record) error {
	fmt.Fprintf(t.w, "%-7s %3s %12.5f %.1d %.0d %5.2f\n",
		r.Desig, r.Site, r.MJD, sexa.FmtRA(r.ra), sexa.FmtAngle(r.dec), r.Rms)
	if !r.Admissible {
		_, err := fmt.Fprintln(t.w, "      no admissible region")
		return err
	}
	for _, h := range r.Components {
		fmt.Fprintf(t.w, "      %12.6g %12.6g %10.4g %10.4g %6.4f  %s\n",
			h.AbscissaMean, h.OrdinateMean, h.AbscissaStd, h.OrdinateStd,
			h.Weight, strings.Join(h.Regimes, " "))
	}
	for _, s := range r.Samples {
		fmt.Fprintf(t.w, "    s %12.6g %12.6g %3d\n", s.X, s.Y, s.C)
	}
	_, err := fmt.Fprintln(t.w)
	return err
}
