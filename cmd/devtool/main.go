package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&HealthCheckCommand{})
	registry.Register(&HUDCommand{})
	registry.Register(&WatchEventsCommand{})
	registry.Register(&CheckCatalogCommand{})

	os.Exit(registry.Execute(os.Args[1:]))
}
