// Public domain.

package carprog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/car/carsolver"
	"github.com/soniakeys/car/mpc"
	"github.com/soniakeys/car/regime"
)

// output formats
const (
	formatText    = "text"
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

type config struct {
	mode  carsolver.Mode
	class regime.Class
	// limits, zero where the class value applies
	aMin, aMax, eMax float64
	// zero where the mode default applies
	grid, sigma1, sigma2 float64
	// measured range and range-rate for mode range
	rng, rangeRate float64
	rangeSet       bool

	headings   bool
	format     string
	repeatable bool
	samples    int
	maxRms     unit.Angle // zero for no limit
	plotDir    string

	obsErrDefault unit.Angle
	obsErrMap     map[string]unit.Angle
}

func defaultConfig() *config {
	cl, _ := regime.Lookup("ANY")
	return &config{
		class:         cl,
		headings:      true,
		format:        formatText,
		obsErrDefault: unit.AngleFromSec(1),
		obsErrMap:     map[string]unit.Angle{},
	}
}

// obsErr returns the observational error for an observatory code.
func (c *config) obsErr(code string) unit.Angle {
	if e, ok := c.obsErrMap[code]; ok {
		return e
	}
	return c.obsErrDefault
}

// limits returns the semi-major axis and eccentricity limits.
func (c *config) limits() (aMin, aMax, eMax float64) {
	aMin, aMax, eMax = c.class.AMin, c.class.AMax, c.class.EMax
	if c.aMin > 0 {
		aMin = c.aMin
	}
	if c.aMax > 0 {
		aMax = c.aMax
	}
	if c.eMax > 0 {
		eMax = c.eMax
	}
	return
}

// gridSigmas returns grid spacing and split sigmas, with defaults per
// mode where not configured.
func (c *config) gridSigmas() (grid, sigma1, sigma2 float64) {
	grid, sigma1, sigma2 = 100, 500, .2 // km, km, km/s
	if c.mode == carsolver.RangeRate {
		grid, sigma1, sigma2 = 1e-6, 5e-5, 5e-5 // rad/s
	}
	if c.grid > 0 {
		grid = c.grid
	}
	if c.sigma1 > 0 {
		sigma1 = c.sigma1
	}
	if c.sigma2 > 0 {
		sigma2 = c.sigma2
	}
	return
}

var (
	rxKeyValue = regexp.MustCompile(`^[ \t]*([a-z0-9]+)[ \t]*=[ \t]*(.+?)[ \t]*$`)
	rxObsErr   = regexp.MustCompile(`^[ \t]*(.*?)[ \t]*=[ \t]*(.+)$`)
)

// parseConfig reads config file keywords.  Obscodes named in obserr
// lines must be in ocd.
func parseConfig(r io.Reader, ocd mpc.ParallaxMap) (*config, error) {
	c := defaultConfig()
	lineErr := func(msg, l string) error {
		return fmt.Errorf("%s\nConfig file line: %s", msg, l)
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ls := strings.TrimSpace(sc.Text())
		if ls == "" || ls[0] == '#' {
			continue
		}
		switch ls {
		case "headings":
			c.headings = true
			continue
		case "noheadings":
			c.headings = false
			continue
		case "repeatable":
			c.repeatable = true
			continue
		case "random":
			c.repeatable = false
			continue
		}
		if strings.HasPrefix(ls, "obserr") {
			if msg := c.parseObsErr(ls[6:], ocd); msg != "" {
				return nil, lineErr(msg, ls)
			}
			continue
		}
		if f := strings.Fields(ls); len(f) == 2 {
			switch f[0] {
			case "class":
				cl, ok := regime.Lookup(f[1])
				if !ok {
					return nil, lineErr("Unknown orbit class.", ls)
				}
				c.class = cl
				continue
			case "mode":
				switch f[1] {
				case carsolver.AngleRates.String():
					c.mode = carsolver.AngleRates
				case carsolver.RangeRate.String():
					c.mode = carsolver.RangeRate
				default:
					return nil, lineErr("Mode must be angles or range.", ls)
				}
				continue
			case "format":
				switch f[1] {
				case formatText, formatJSON, formatMsgpack:
					c.format = f[1]
				default:
					return nil, lineErr("Format must be text, json, or msgpack.", ls)
				}
				continue
			}
		}
		if kv := rxKeyValue.FindStringSubmatch(ls); kv != nil {
			if msg := c.setValue(kv[1], kv[2]); msg != "" {
				return nil, lineErr(msg, ls)
			}
			continue
		}
		return nil, errors.New("Unrecognized line in config file: " + ls)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if c.mode == carsolver.RangeRate && !c.rangeSet {
		return nil, errors.New("Config file: mode range requires range=.")
	}
	return c, nil
}

// setValue sets a key=value keyword, returning a message for invalid
// input.
func (c *config) setValue(key, value string) string {
	if key == "plot" {
		c.plotDir = value
		return ""
	}
	if key == "samples" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return "Samples must be a non-negative integer."
		}
		c.samples = n
		return ""
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err.Error()
	}
	positive := func(p *float64) string {
		if !(v > 0) {
			return key + " must be positive."
		}
		*p = v
		return ""
	}
	switch key {
	case "amin":
		return positive(&c.aMin)
	case "amax":
		return positive(&c.aMax)
	case "emax":
		if !(v > 0) || v >= 1 {
			return "emax must be in (0,1)."
		}
		c.eMax = v
		return ""
	case "grid":
		return positive(&c.grid)
	case "sigma1":
		return positive(&c.sigma1)
	case "sigma2":
		return positive(&c.sigma2)
	case "range":
		c.rangeSet = true
		return positive(&c.rng)
	case "rangerate":
		c.rangeRate = v
		return ""
	case "maxrms":
		if !(v > 0) {
			return "maxrms must be positive."
		}
		c.maxRms = unit.AngleFromSec(v)
		return ""
	}
	return "Unrecognized keyword " + key + "."
}

func (c *config) parseObsErr(s string, ocd mpc.ParallaxMap) string {
	ss := rxObsErr.FindStringSubmatch(s)
	if len(ss) != 3 {
		return "Invalid format for obserr."
	}
	oe, err := strconv.ParseFloat(ss[2], 64)
	if err != nil {
		return err.Error()
	}
	if oe > 10 {
		return "Observational error > 10 arc seconds not allowed."
	}
	if ss[1] == "" {
		c.obsErrDefault = unit.AngleFromSec(oe)
		return ""
	}
	if _, ok := ocd[ss[1]]; !ok {
		return "Obscode not recognized."
	}
	c.obsErrMap[ss[1]] = unit.AngleFromSec(oe)
	return ""
}
