package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/slidesift/slidesift/internal/cli"
)

func main() {
	// Load .env if present; API keys come from the environment.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
