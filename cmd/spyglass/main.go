package main

import (
	"os"

	"github.com/mkale/spyglass/cmd/spyglass/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
