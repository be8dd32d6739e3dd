// gocube3d - a virtual 3x3 Rubik's cube for the terminal and the desktop.
package main

import (
	"github.com/SeamusWaldron/gocube3d/internal/cli"
)

func main() {
	cli.Execute()
}
