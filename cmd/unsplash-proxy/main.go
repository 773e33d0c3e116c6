package main

import (
	"os"

	"github.com/jassus213/go-unsplash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
