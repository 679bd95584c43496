// Command cssturing compiles Rule 110 evolution into a CSS stylesheet.
package main

import (
	"os"

	"github.com/roach88/cssturing/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
