package main

import (
	"os"

	"taskdash/internal/cli"
)

func main() {
	if err := cli.New(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
