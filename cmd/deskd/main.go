package main

import (
	"os"

	"github.com/p2pdesk/backoffice/cmd/deskd/commands"
)

// main is the entry point for the back-office CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
