// Public domain.

package carprog

import (
	"bufio"
	"flag"
	"fmt"
	"go/build"
	"os"
	"path/filepath"

	"github.com/soniakeys/exit"
	"go.uber.org/zap"

	"github.com/soniakeys/car/carsolver"
	"github.com/soniakeys/car/mpc"
	"github.com/soniakeys/car/regime"
	"github.com/soniakeys/car/splitlib"
)

const parentImport = "github.com/soniakeys/car"
const versionString = "car version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	if cl.v {
		os.Exit(0)
	}
	zl, err := newLogger(cl.d)
	if err != nil {
		exit.Log(err)
	}
	defer zl.Sync()

	ocd := readOcd(cl, zl.Sugar())
	cfg := readConfig(cl, ocd)

	lib, err := splitlib.Default()
	if err != nil {
		exit.Log(err)
	}
	solver := carsolver.New(lib, carsolver.WithLogger(zl.Sugar()))

	// open obs file
	f := os.Stdin
	if cl.fnObs != "-" {
		if f, err = os.Open(cl.fnObs); err != nil {
			exit.Log(err)
		}
		defer f.Close()
	}
	if cfg.plotDir != "" {
		if err := os.MkdirAll(cfg.plotDir, 0o755); err != nil {
			exit.Log(err)
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if err := newRunner(cfg, solver, zl.Sugar()).process(w, f, ocd); err != nil {
		exit.Log(err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type commandLine struct {
	dc    string // config file
	do    string // obscode file
	dp    string // default path
	d     bool   // -d option
	fnObs string // observations
	v     bool   // -v option
}

func parseCommandLine() *commandLine {
	// The module root is the default location for config and obscode
	// files.
	pp, ppErr := build.Import(parentImport, "", build.FindOnly)
	var cl commandLine
	if ppErr == nil {
		cl.dp = pp.Dir
	}
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.BoolVar(&cl.d, "d", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.StringVar(&cl.do, "o", "", "")
	flag.StringVar(&cl.dp, "p", cl.dp, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: car [options] <obsfile>    build admissible regions for observations in file
       car [options] -            build admissible regions for observations from stdin
       car -h                     display help and quick reference
       car -v                     display version and copyright

Options:
       -c <config-file>
       -o <obscode-file>
       -p <path>
       -d                         debug logging
`)
		if ppErr == nil {
			os.Stderr.WriteString(`
Default:
       -p=` + pp.Dir + "\n")
		}
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		cl.v = true
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	cl.fnObs = flag.Arg(0)
	return &cl
}

func readOcd(cl *commandLine, log *zap.SugaredLogger) mpc.ParallaxMap {
	ocdMap, err := loadOcd(cl.fixupCP(cl.do, "car.obscodes"), log)
	if err != nil {
		exit.Log(err)
	}
	return ocdMap
}

// loadOcd reads the obscode file, downloading a fresh copy if the file
// cannot be read.
func loadOcd(ocdFile string, log *zap.SugaredLogger) (mpc.ParallaxMap, error) {
	ocdMap, err := mpc.ReadOcd(ocdFile)
	if err == nil {
		return ocdMap, nil
	}
	log.Warnw("obscode file not read, fetching", "file", ocdFile, "error", err)
	if err := mpc.FetchOcd(ocdFile); err != nil {
		return nil, err
	}
	return mpc.ReadOcd(ocdFile)
}

func readConfig(cl *commandLine, ocd mpc.ParallaxMap) *config {
	f, err := os.Open(cl.fixupCP(cl.dc, "car.config"))
	if err != nil {
		if cl.dc == "" {
			return defaultConfig()
		}
		exit.Log(err)
	}
	defer f.Close()
	cfg, err := parseConfig(f, ocd)
	if err != nil {
		exit.Log(err)
	}
	return cfg
}

func (cl *commandLine) fixupCP(fnSpec, fnDefault string) string {
	if fnSpec > "" {
		return fnSpec
	}
	return filepath.Join(cl.dp, fnDefault)
}

func printHelp() {
	fmt.Println(`
Car builds constrained admissible regions from short arc astrometry of
Earth orbiting objects.  Input is a file of 80 column MPC-format
observations, with at least two observations per object.  Output is, for
each tracklet, a weighted mixture of Gaussians over the unobserved range
and range-rate.

Config file keywords:
   headings
   noheadings
   repeatable
   random
   class <class>
   mode angles | range
   format text | json | msgpack
   amin=  amax=  emax=
   grid=  sigma1=  sigma2=
   range=  rangerate=
   samples=
   maxrms=
   plot=
   obserr

Orbit classes:`)
	for _, c := range regime.CList {
		fmt.Printf("   %3s   %-18s a %6.0f to %6.0f km, e < %.2f\n",
			c.Abbr, c.Heading, c.AMin, c.AMax, c.EMax)
	}
	fmt.Println(`
For full documentation:
   go doc ` + parentImport)
}
