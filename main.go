package main

import (
	"os"

	"github.com/abhisek/algolab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
