package main

import (
	"os"

	"github.com/HEADES94/MovieProjektFinal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
