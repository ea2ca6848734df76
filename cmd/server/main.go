package main

import (
	"log"

	approuters "github.com/michellexliu/journly/internal/app_routers"
	"github.com/michellexliu/journly/internal/configuration"

	"github.com/joho/godotenv"
)

func main() {
	// Secrets come from the environment; .env is optional in development.
	_ = godotenv.Load()

	container, err := configuration.BuildContainer()
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	// Setup routers
	approuters.StartServer(container)
}
