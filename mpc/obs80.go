// Public domain.

// Package mpc reads Minor Planet Center formats: the observatory code
// list and 80 column optical observations.
package mpc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// Obs is a single optical observation from a ground site.
type Obs struct {
	Desig string
	MJD   float64 // UTC
	RA    unit.RA
	Dec   unit.Angle
	Code  string
	Site  *Site
}

// ErrNotGround is returned by ParseObs80 for observations made from an
// observatory code without a fixed position, or marked as satellite or
// roving observations.
var ErrNotGround = errors.New("observation is not from a fixed ground site")

// ParseObs80 parses a single line observation in the MPC 80 column format.
// This function handles only ground observatory based observations.
//
// Input line80 must be a string of 80 characters.  Other lengths are an error.
// The observatory code in columns 78-80 must exist in the input map.
func ParseObs80(line80 string, ocm ParallaxMap) (o Obs, err error) {
	if len(line80) != 80 {
		err = errors.New("ParseObs80 requires 80 characters")
		return
	}
	o.Desig = strings.TrimSpace(line80[:12])

	d := line80[15:32]
	if o.MJD = parseDate(d); o.MJD == 0 {
		err = fmt.Errorf("ParseObs80: Invalid date (%s)", d)
		return
	}

	var rah, ram int
	var ras float64
	rah, err = strconv.Atoi(strings.TrimSpace(line80[32:34]))
	if err == nil {
		ram, err = strconv.Atoi(strings.TrimSpace(line80[35:37]))
		if err == nil {
			ras, err =
				strconv.ParseFloat(strings.TrimSpace(line80[38:44]), 64)
		}
	}
	if err != nil {
		err = fmt.Errorf("ParseObs80: Invalid RA (%s), %v", line80[32:44], err)
		return
	}
	o.RA = unit.NewRA(rah, ram, ras)

	decg := line80[44] // minus sign
	var decd, decm int
	var decs float64
	decd, err = strconv.Atoi(strings.TrimSpace(line80[45:47]))
	if err == nil {
		decm, err = strconv.Atoi(strings.TrimSpace(line80[48:50]))
		if err == nil {
			decs, err =
				strconv.ParseFloat(strings.TrimSpace(line80[51:56]), 64)
		}
	}
	if err != nil {
		err = fmt.Errorf("ParseObs80: Invalid Dec (%s), %v", line80[44:56], err)
		return
	}
	o.Dec = unit.NewAngle(decg, decd, decm, decs)

	o.Code = line80[77:80]
	site, ok := ocm[o.Code]
	if !ok {
		err = fmt.Errorf("ParseObs80: Unknown observatory code (%s)", o.Code)
		return
	}
	if site == nil || line80[14] == 'S' || line80[14] == 'V' {
		err = ErrNotGround
		return
	}
	o.Site = site
	return
}

var flookup = [13]int{0, 306, 337, 0, 31, 61, 92, 122, 153, 184, 214, 245, 275}

func parseDate(line80 string) float64 {
	year, err := strconv.Atoi(line80[:4])
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(line80[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0
	}
	day, err := strconv.ParseFloat(strings.TrimSpace(line80[8:]), 64)
	if err != nil {
		return 0
	}
	z := year + (month-14)/12
	m := flookup[month] + 365*z + z/4 - z/100 + z/400 - 678882
	return float64(m) + day
}

// Tracklet is a run of observations of one object from one site.
type Tracklet struct {
	Desig string
	Obs   []Obs
}

// TrackletSplitter returns a function that reads the next tracklet from
// an observation stream each time it is called.  It returns io.EOF after
// the last tracklet.
//
// The function does no sorting.  The stream must have observations grouped
// by object and sorted chronologically within each object.  A tracklet
// ends at a change of designation or observatory code.
//
// Read errors are returned and should be considered fatal.  Lines that do
// not parse and runs of observations not forming valid tracklets are
// unceremoniously dropped.
func TrackletSplitter(iObs io.Reader, ocdMap ParallaxMap) func() (*Tracklet, error) {
	bf := bufio.NewReader(iObs)
	var obuf []Obs
	var done bool
	return func() (*Tracklet, error) {
		for !done {
			bLine, pre, err := bf.ReadLine()
			if err == io.EOF {
				done = true
				break
			}
			if err != nil {
				return nil, err
			}
			if pre {
				return nil, errors.New("TrackletSplitter: unexpected long line")
			}
			if len(bLine) != 80 {
				continue
			}
			o, err := ParseObs80(string(bLine), ocdMap)
			if err != nil {
				// a bad line ends the current tracklet
				if t := valid(obuf); t != nil {
					obuf = nil
					return t, nil
				}
				obuf = nil
				continue
			}
			if len(obuf) > 0 &&
				(o.Desig != obuf[0].Desig || o.Code != obuf[0].Code) {
				t := valid(obuf)
				obuf = []Obs{o}
				if t != nil {
					return t, nil
				}
				continue
			}
			obuf = append(obuf, o)
		}
		if t := valid(obuf); t != nil {
			obuf = nil
			return t, nil
		}
		obuf = nil
		return nil, io.EOF
	}
}

// valid checks that observations make a valid tracklet and allocates it.
func valid(obuf []Obs) *Tracklet {
	if len(obuf) < 2 {
		return nil
	}
	// the first observation time must be positive and
	// observation times must increase after that
	var t0 float64
	for _, o := range obuf {
		if o.MJD <= t0 {
			return nil
		}
		t0 = o.MJD
	}
	// object must show motion over the tracklet
	first := obuf[0]
	last := obuf[len(obuf)-1]
	if first.RA == last.RA && first.Dec == last.Dec {
		return nil
	}
	return &Tracklet{
		Desig: first.Desig,
		Obs:   append([]Obs{}, obuf...),
	}
}
