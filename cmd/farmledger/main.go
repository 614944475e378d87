package main

import (
	"os"

	"github.com/agrifaas/farmledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
