package main

import (
	"os"

	"github.com/raunakm/stepdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
