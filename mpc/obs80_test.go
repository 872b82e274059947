// Public domain.

package mpc_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/car/mpc"
)

const obsData = `     NE00030  C2004 09 16.15206 16 13 11.57 +20 52 23.7          21.1 V      291
     NE00030  C2004 09 16.15621 16 13 11.34 +20 52 16.8          20.8 V      291
     NE00030  C2004 09 16.16017 16 13 11.13 +20 52 09.6          20.7 V      291
     NE00199  C2007 02 09.24234 06 08 06.06 -43 13 26.2          20.1 V      E12
     NE00199  C2007 02 09.25415 06 08 05.51 -43 13 01.7          20.1 V      E12
`

func ocdMap(t *testing.T) mpc.ParallaxMap {
	ocd, err := mpc.ParseOcd(strings.NewReader(ocdData))
	require.NoError(t, err)
	return ocd
}

func TestParseObs80(t *testing.T) {
	line := strings.Split(obsData, "\n")[3]
	o, err := mpc.ParseObs80(line, ocdMap(t))
	require.NoError(t, err)
	assert.Equal(t, "NE00199", o.Desig)
	assert.Equal(t, "E12", o.Code)
	require.NotNil(t, o.Site)
	assert.Equal(t, "Siding Spring Survey", o.Site.Name)
	// 2007 Feb 9.0 is MJD 54140
	assert.InDelta(t, 54140.24234, o.MJD, 1e-9)
	assert.InDelta(t, (6+8/60.+6.06/3600)*15, o.RA.Angle().Deg(), 1e-9)
	assert.InDelta(t, -(43 + 13/60. + 26.2/3600), o.Dec.Deg(), 1e-9)
}

func TestParseObs80Errors(t *testing.T) {
	ocd := ocdMap(t)
	good := strings.Split(obsData, "\n")[0]
	for _, tc := range []struct {
		name string
		line string
	}{
		{"short", good[:79]},
		{"date", good[:15] + "2004 xx 16.15206 " + good[32:]},
		{"ra", good[:32] + "1x" + good[34:]},
		{"dec", good[:45] + "2x" + good[47:]},
		{"code", good[:77] + "zzz"},
	} {
		_, err := mpc.ParseObs80(tc.line, ocd)
		assert.Error(t, err, tc.name)
	}
}

func TestParseObs80NotGround(t *testing.T) {
	ocd := ocdMap(t)
	good := strings.Split(obsData, "\n")[0]
	_, err := mpc.ParseObs80(good[:14]+"S"+good[15:], ocd)
	assert.ErrorIs(t, err, mpc.ErrNotGround)
	_, err = mpc.ParseObs80(good[:77]+"250", ocd)
	assert.ErrorIs(t, err, mpc.ErrNotGround)
}

func TestTrackletSplitter(t *testing.T) {
	next := mpc.TrackletSplitter(strings.NewReader(obsData), ocdMap(t))
	tk, err := next()
	require.NoError(t, err)
	assert.Equal(t, "NE00030", tk.Desig)
	assert.Len(t, tk.Obs, 3)
	tk, err = next()
	require.NoError(t, err)
	assert.Equal(t, "NE00199", tk.Desig)
	assert.Len(t, tk.Obs, 2)
	_, err = next()
	assert.Equal(t, io.EOF, err)
}

func TestTrackletSplitterDropsSingles(t *testing.T) {
	lines := strings.Split(obsData, "\n")
	// a single observation and a stationary pair do not form tracklets
	data := lines[0] + "\n" + lines[3] + "\n" + lines[3][:25] + "5" + lines[3][26:] + "\n"
	next := mpc.TrackletSplitter(strings.NewReader(data), ocdMap(t))
	_, err := next()
	assert.Equal(t, io.EOF, err)
}
