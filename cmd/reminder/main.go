package main

import (
	"github.com/joho/godotenv"

	"reminder/internal/cli"
)

func main() {
	// Load .env for local development; optional everywhere else.
	_ = godotenv.Load()

	cli.Execute()
}
