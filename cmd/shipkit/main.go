// shipkit - release management helper for the Caldera desktop app
package main

import (
	"os"

	"github.com/caldera-app/shipkit/internal/cli"
)

// Version information, set by ldflags during release builds.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
