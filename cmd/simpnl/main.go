package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ledgerworks/simpnl/internal/commands"
)

func main() {
	// LOG_LEVEL and friends may come from a local .env file.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
