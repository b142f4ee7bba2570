package main

import (
	"os"

	"github.com/spigell/tutor-features/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
