// Public domain.

package main

import "github.com/soniakeys/car/internal/carprog"

func main() {
	carprog.Main()
}
