package main

import (
	"os"

	"tajwid-pintar-be/cmd/tajwidctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
