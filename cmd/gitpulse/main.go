package main

import (
	"os"

	"github.com/gitpulse/gitpulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
