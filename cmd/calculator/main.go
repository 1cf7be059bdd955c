package main

import (
	"os"

	"github.com/ERRORIK404/Scientific_Calculator/cmd/calculator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
