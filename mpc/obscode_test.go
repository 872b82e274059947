// Public domain.

package mpc_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/car/mpc"
)

const ocdData = `<pre>
Code  Long.   cos      sin    Name
000   0.0000 0.62411 +0.77873 Greenwich
291 248.4007 0.848194+0.528507Spacewatch
644 243.140220.836325+0.546877Palomar Mountain/NEAT
E12 149.0642 0.85563 -0.51621 Siding Spring Survey
250                           Hubble Space Telescope
</pre>
`

var siteTestCases = []struct {
	code          string
	lon, cos, sin float64
	name          string
}{
	{"000", 0, .62411, .77873, "Greenwich"},
	{"644", 243.14022, .836325, .546877, "Palomar Mountain/NEAT"},
	{"E12", 149.0642, .85563, -.51621, "Siding Spring Survey"},
}

func checkSites(t *testing.T, ocd mpc.ParallaxMap) {
	t.Helper()
	assert.Len(t, ocd, 5)
	for _, c := range siteTestCases {
		s, ok := ocd[c.code]
		require.True(t, ok, "missing %s", c.code)
		require.NotNil(t, s, c.code)
		assert.InDelta(t, c.lon, s.Longitude.Deg(), 1e-9, c.code)
		assert.Equal(t, c.cos, s.RhoCosPhi, c.code)
		assert.Equal(t, c.sin, s.RhoSinPhi, c.code)
		assert.Equal(t, c.name, s.Name)
	}
	s, ok := ocd["250"]
	assert.True(t, ok)
	assert.Nil(t, s, "space based site must have no position")
}

func TestParseOcd(t *testing.T) {
	ocd, err := mpc.ParseOcd(strings.NewReader(ocdData))
	require.NoError(t, err)
	checkSites(t, ocd)
}

func TestParseOcdEmpty(t *testing.T) {
	_, err := mpc.ParseOcd(strings.NewReader("<pre>\n</pre>\n"))
	assert.Error(t, err)
}

func TestFetchReadOcd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(ocdData))
		}))
	defer srv.Close()
	defer func(u string) { mpc.OcdURL = u }(mpc.OcdURL)
	mpc.OcdURL = srv.URL

	fn := filepath.Join(t.TempDir(), "obscode.dat")
	require.NoError(t, mpc.FetchOcd(fn))
	ocd, err := mpc.ReadOcd(fn)
	require.NoError(t, err)
	checkSites(t, ocd)
}

func TestFetchOcdStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	defer func(u string) { mpc.OcdURL = u }(mpc.OcdURL)
	mpc.OcdURL = srv.URL

	fn := filepath.Join(t.TempDir(), "obscode.dat")
	assert.Error(t, mpc.FetchOcd(fn))
	_, err := os.Stat(fn)
	assert.True(t, os.IsNotExist(err))
}

func TestReadOcdMissing(t *testing.T) {
	_, err := mpc.ReadOcd(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
