package main

import (
	"os"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/cli"
)

func main() {
	command := cli.NewRootCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
