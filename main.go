package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/travislint/travislint/internal/adapters/inbound/cli"
)

func main() {
	_ = godotenv.Load()
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
