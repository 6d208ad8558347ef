package main

import (
	"log"
	"os"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/config"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/server"
)

func main() {
	// Seed the environment from .env when present
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Optional YAML config, overridden by PORT, DEBUG, TLS_CERT/TLS_KEY, LOG_LEVEL...
	cfg, err := config.Load(os.Getenv("CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv, err := server.New(cfg.ServerConfig())
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
