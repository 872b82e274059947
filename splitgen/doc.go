/*
Command splitgen prepares the split library data file for car.

The split library lists, for each count N of equally weighted Gaussian
components spaced evenly across an interval, the standard deviation as a
fraction of the interval width that best approximates a uniform density
on the interval.  car splits admissible regions into Gaussian mixtures
with it.

A copy of the library is embedded in package splitlib, so splitlib does
not need this program.  splitgen regenerates the file, for example to
extend it to more entries.

Usage

  splitgen                 Write 100 entries to the default file.
  splitgen -n=<count>      Write count entries.
  splitgen -o=<file>       Write to file rather than the default.
  splitgen -v              Display version and copyright.

The default output file is UniformSigmaValues.txt in the splitlib package
source directory.

Method

Entry N is found by a least squares fit of the single sigma parameter,
minimizing the difference between the mixture density and the uniform
density at regularly spaced samples.  Each fit starts from the result for
N-1.  Run time grows with the square of the count; 100 entries take some
minutes.
*/
package main
