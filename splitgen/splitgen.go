// Public domain.

package main

import (
	"flag"
	"fmt"
	"go/build"
	"os"
	"path/filepath"

	"github.com/soniakeys/exit"

	"github.com/soniakeys/car/splitlib"
)

const libImport = "github.com/soniakeys/car/splitlib"
const versionString = "splitgen version 0.1 Go source."
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	// default output is the embedded resource in the splitlib source dir
	defPath := splitlib.Rfn
	if pkg, err := build.Import(libImport, "", build.FindOnly); err == nil {
		defPath = filepath.Join(pkg.Dir, splitlib.Rfn)
	}
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage:
  splitgen                 Write 100 entries to the default file.
  splitgen -n=<count>      Write count entries.
  splitgen -o=<file>       Write to file rather than the default.
  splitgen -v              Display version and copyright.

Default:
  -o=` + defPath + `
`)
	}
	n := flag.Int("n", 100, "number of entries")
	out := flag.String("o", defPath, "output file")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	lib, err := splitlib.Generate(*n)
	if err != nil {
		exit.Log(err)
	}
	f, err := os.Create(*out)
	if err != nil {
		exit.Log(err)
	}
	if _, err = lib.WriteTo(f); err != nil {
		f.Close()
		exit.Log(err)
	}
	if err = f.Close(); err != nil {
		exit.Log(err)
	}
	fmt.Printf("%d entries written to %s\n", lib.Len(), *out)
}
