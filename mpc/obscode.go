// Public domain.

package mpc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// OcdURL links to the present location of the file known as obscode.dat,
// a flat file containing three-character MPC assigned observatory codes,
// associated with parallax constants and observatory names.  The file
// linked by this url actually has enclosing <pre></pre> tags currently;
// these are safely ignored by the code here.
var OcdURL = "https://minorplanetcenter.net/iau/lists/ObsCodes.html"

// Site holds parallax constants of a ground observatory.
type Site struct {
	Longitude unit.Angle // east longitude
	RhoCosPhi float64    // Earth radii
	RhoSinPhi float64    // Earth radii
	Name      string
}

// ParallaxMap maps three-character MPC observatory codes to sites.
// A nil value marks a code with no fixed position, such as a spacecraft
// or roving observer.
type ParallaxMap map[string]*Site

// FetchOcd gets a fresh copy of the data at OcdURL (obscode.dat) and
// writes it to a new file with the path and file name ocdFile.
func FetchOcd(ocdFile string) error {
	r, err := http.Get(OcdURL)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("FetchOcd: %s: %s", OcdURL, r.Status)
	}
	f, err := os.Create(ocdFile)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadOcd reads an MPC obscode.dat file.
//
// Files obtained from OcdURL have column headings and an enclosing <pre>
// tag.  These lines are not required; lines that do not parse as data are
// quietly ignored.
func ReadOcd(ocdFile string) (ParallaxMap, error) {
	f, err := os.Open(ocdFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ParseOcd(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ocdFile, err)
	}
	return m, nil
}

// ParseOcd parses obscode.dat data from a reader.
func ParseOcd(r io.Reader) (ParallaxMap, error) {
	ocdMap := make(ParallaxMap)
	var longitude, rhoCosPhi, rhoSinPhi float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if len(line) < 30 {
			continue // quietly ignore extraneous lines such as <pre>
		}
		var err error
		if ts := strings.TrimSpace(line[4:13]); len(ts) == 0 {
			longitude = 0 // blank fields default to 0
		} else {
			longitude, err = strconv.ParseFloat(ts, 64)
			if err != nil || longitude < 0 || longitude >= 360 {
				// quietly ignore lines with invalid longitude,
				// such as column heading line.
				continue
			}
		}
		if ts := strings.TrimSpace(line[13:21]); len(ts) == 0 {
			rhoCosPhi = 0
		} else {
			rhoCosPhi, err = strconv.ParseFloat(ts, 64)
			if err != nil || rhoCosPhi < 0 || rhoCosPhi > 1 {
				continue
			}
		}
		if ts := strings.TrimSpace(line[21:30]); len(ts) == 0 {
			rhoSinPhi = 0
		} else {
			rhoSinPhi, err = strconv.ParseFloat(ts, 64)
			if err != nil || rhoSinPhi < -1 || rhoSinPhi > 1 {
				continue
			}
		}
		if rhoCosPhi == 0 && rhoSinPhi == 0 {
			ocdMap[line[0:3]] = nil
			continue
		}
		ocdMap[line[0:3]] = &Site{
			Longitude: unit.AngleFromDeg(longitude),
			RhoCosPhi: rhoCosPhi,
			RhoSinPhi: rhoSinPhi,
			Name:      strings.TrimSpace(line[30:]),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(ocdMap) == 0 {
		return nil, errors.New("obscode data unreadable")
	}
	return ocdMap, nil
}
