// Public domain.

// Package splitlib holds the Gaussian split-size library.
//
// The library is a list of sigma fractions, one per component count.
// Entry N-1 is the standard deviation, as a fraction of an interval, that
// N equally weighted Gaussians placed at k/(N+1), k = 1..N, across the
// interval should have so that their mixture approximates a uniform
// density on the interval.  Entries are listed by increasing N, so the
// fractions decrease.
package splitlib

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Rfn is the name of the embedded library resource.
const Rfn = "UniformSigmaValues.txt"

//go:embed UniformSigmaValues.txt
var uniformSigmaValues []byte

// ErrResource is returned, wrapped, for any failure to read or parse a
// split library.
var ErrResource = errors.New("split library unavailable")

// Library is an immutable split-size table.  The zero value is empty and
// not usable with Split.
type Library struct {
	sigma []float64
}

// Len returns the number of entries, which is also the largest component
// count Split can return.
func (l Library) Len() int { return len(l.sigma) }

// At returns the sigma fraction for n components, 1 <= n <= Len.
func (l Library) At(n int) float64 { return l.sigma[n-1] }

// Split selects a component count for a spread ratio, the measurement
// sigma divided by the width of the interval to be covered.
//
// The count is one more than the first index whose library value is
// below ratio, or Len if there is none.  The returned fraction is the
// library value for that count; multiplied by the interval width it gives
// the standard deviation of each component.
func (l Library) Split(ratio float64) (n int, fraction float64) {
	n = len(l.sigma)
	for i, s := range l.sigma {
		if ratio > s {
			n = i + 1
			break
		}
	}
	return n, l.sigma[n-1]
}

// Parse reads a library, one real number per line.  A trailing newline
// is allowed; blank lines elsewhere are not.
func Parse(r io.Reader, name string) (Library, error) {
	var sigma []float64
	sc := bufio.NewScanner(r)
	line := 0
	blank := 0
	for sc.Scan() {
		line++
		ts := strings.TrimSpace(sc.Text())
		if ts == "" {
			blank = line
			continue
		}
		if blank > 0 {
			return Library{}, fmt.Errorf("%w: %s line %d: blank line", ErrResource, name, blank)
		}
		v, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return Library{}, fmt.Errorf("%w: %s line %d: %v", ErrResource, name, line, err)
		}
		if !(v > 0) || math.IsInf(v, 1) {
			return Library{}, fmt.Errorf("%w: %s line %d: value %v not positive and finite",
				ErrResource, name, line, v)
		}
		sigma = append(sigma, v)
	}
	if err := sc.Err(); err != nil {
		return Library{}, fmt.Errorf("%w: %s: %v", ErrResource, name, err)
	}
	if len(sigma) == 0 {
		return Library{}, fmt.Errorf("%w: %s: no values", ErrResource, name)
	}
	return Library{sigma}, nil
}

// ReadFile reads a library from a file.
func ReadFile(fn string) (Library, error) {
	f, err := os.Open(fn)
	if err != nil {
		return Library{}, fmt.Errorf("%w: %v", ErrResource, err)
	}
	defer f.Close()
	return Parse(f, fn)
}

var loadDefault = sync.OnceValues(func() (Library, error) {
	return Parse(bytes.NewReader(uniformSigmaValues), Rfn)
})

// Default returns the embedded library.  It is parsed on first use;
// later calls return the same value without locking.
func Default() (Library, error) {
	return loadDefault()
}
