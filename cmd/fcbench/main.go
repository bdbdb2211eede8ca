package main

import (
	"os"

	"github.com/kressler/fast-containers/internal/cli"
)

func main() {
	// Fatal run conditions already print their diagnostic; cobra prints
	// usage errors itself. Only the exit code is left to set here.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
