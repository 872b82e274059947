/*
Command car builds constrained admissible regions for short arcs of Earth
orbiting objects.

Contents

Version 0.1

  Program overview
  Installing
  Command line usage
  Configuring file locations
  File formats
  Algorithm outline


Program overview

Input is a file of 80 column MPC-format observations, with at least
two observations per object.  Output is, for each tracklet, a weighted
mixture of Gaussians over the two quantities the observations do not
measure, range and range-rate.  The mixture approximates the constrained
admissible region, the set of all range, range-rate pairs for which the
object would be on an orbit with semi-major axis and eccentricity within
configured limits.  It is meant to seed an orbit determination filter.

The MPC observation format is documented at
https://www.minorplanetcenter.net/iau/info/OpticalObs.html.

Sample run:

Here are three observations of a geostationary object, seen from Greenwich.

     GEO0001  C2023 02 25.10000 12 42 48.12 -07 24 40.8          21.1 V      000
     GEO0001  C2023 02 25.10694 12 52 49.77 -07 24 40.8          21.1 V      000
     GEO0001  C2023 02 25.11389 13 02 51.41 -07 24 40.8          21.1 V      000

With a config file containing the line "class GEO", "car geo.obs" gives

  car version 0.1 Go source.
  Desig.  Site MJD          RA            Dec          RMS
               Range      RngRate     SigRng    SigRate Weight  Classes
  GEO0001 000  60000.10694 12ʰ52ᵐ49.8ˢ -7°24′41″  0.02
               38500  -3.1e-09      173.4     0.1075 1.0000  GEO ANY

The region allowed by the GEO limits is small, so a single component
covers it.  The component mean, at range 38500 km and range-rate zero,
is on an orbit in the GEO class and so also in the ANY class.

The RMS figure is a root-mean-square of residuals in arc seconds of the
observations against a linear fit in time.


Installing

    go install github.com/soniakeys/car@latest

installs car.  The split library, a data file used to size mixture
components, is compiled into the program.  The command splitgen,

    go install github.com/soniakeys/car/splitgen@latest

regenerates it but is not needed to run car.


Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

  Usage: car [options] <obsfile>    build admissible regions for observations in file
         car [options] -            build admissible regions for observations from stdin
         car -h                     display help and quick reference
         car -v                     display version and copyright

  Options:
         -c <config-file>
         -o <obscode-file>
         -p <path>
         -d                         debug logging

Log messages are written to stderr as JSON, or in a readable development
format with -d.  -d also enables debug messages describing each region.


Configuring file locations

car reads observations either from a file specified on the command line or
from stdin.  It also reads an observatory code file and an optional
configuration file.

	File          Command line option
	car.obscodes  -o
	car.config    -c

By default both are taken from the car source directory, shown as the -p
default in the usage message.  -p specifies a different common path.  A path
given with -c or -o takes precedence over -p.  A configuration file is
required to be present if -c is used.


File formats

Observations should be sorted first by designation and then by time of
observation.  A tracklet ends at a change of designation or observatory
code.  Only observations from fixed ground sites are used.

car.obscodes is a text file containing observatory codes in the standard
MPC format.  If the file is missing, car downloads a copy from the Minor
Planet Center.

car.config, the optional configuration file, is a text file with a simple
format.  Empty lines and lines beginning with # are ignored.

Allowable keywords:

   headings | noheadings      column headings, text format only
   repeatable | random        seeding of Monte Carlo samples
   class <abbr>               orbit class limits, default ANY
   mode angles | range        measurement model, default angles
   format text | json | msgpack
   amin=<km> amax=<km>        semi-major axis limits, override the class
   emax=<e>                   eccentricity limit, overrides the class
   grid=<spacing>             abscissa sample spacing
   sigma1=<value>             measurement uncertainty along the abscissa
   sigma2=<value>             measurement uncertainty along the ordinate
   range=<km> rangerate=<km/s>  measured range, required with mode range
   samples=<n>                Monte Carlo particles drawn per tracklet
   maxrms=<arc seconds>       skip tracklets with a worse fit
   plot=<directory>           write a PNG of each region
   obserr                     observational error

With mode angles the abscissa is range in km and the ordinate range-rate
in km/s.  Defaults are grid=100, sigma1=500, sigma2=.2.  With mode range,
range and range-rate are taken as measured and the region is in RA-rate,
Dec-rate space, rad/s.  Default grid is 1e-6.  Unless configured, sigma1
and sigma2 are the formal RA-rate and Dec-rate uncertainties of the
tracklet fit, or 5e-5 when those are zero.

Keyword obserr specifies the observational error in arc seconds, used for
the formal uncertainty of the fitted rates.

  obserr=0.7
  obserrF51=.3

The default is 1.0 arc seconds.

Orbit classes:

   LEO   Low Earth
   MEO   Medium Earth
   GEO   Geosynchronous
   GTO   GEO transfer
   HEO   Highly eccentric
   ANY   Any bound orbit

Each class has semi-major axis and eccentricity limits, listed by car -h.
Components are labeled with all classes their mean orbit belongs to.

Format json writes one JSON object per line.  Format msgpack writes a
stream of MessagePack maps with the same content.


Algorithm outline

1.  For each tracklet, RA and Dec are fit linearly in time, giving an
attributable: RA, Dec and their rates at the mean epoch.  The station
position and velocity at the epoch come from the observatory parallax
constants and sidereal time.

2.  Over a regular grid of range, bounds on range-rate are computed for
each constraint.  Semi-major axis limits give bounds in closed form, from
the energy.  The eccentricity limit gives a quartic polynomial in
range-rate, solved numerically.

3.  The region is truncated to the first contiguous run of grid values
where it exists.  Where the lower semi-major axis limit cuts a hole in
the region, it is split into upper and lower arcs.

4.  A number of Gaussians, chosen so that their spacing matches the
configured uncertainty, is placed evenly along the range axis.  Their
weights are fit to the width of the region by constrained least squares.

5.  Each range component is split along the range-rate axis in the same
way, across the interval of the region at the component mean.

-------------
Public domain.
*/
package main
