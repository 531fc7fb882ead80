package main

import (
	"os"

	"github.com/docpeak/outline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
