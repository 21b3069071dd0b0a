package main

import (
	"os"

	"github.com/tradeconv-dev/tradeconv/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
