// Package main is the entry point for the PhotoShare server.
//
// The main package is kept minimal — its job is to:
// 1. Set up logging
// 2. Load configuration from the environment
// 3. Create the server and start it
//
// All actual logic lives in imported packages (internal/server,
// internal/graph, internal/service, ...). This separation keeps every
// component testable without going through main.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/photoshare/internal/config"
	"github.com/sakif/photoshare/internal/server"
)

func main() {
	// slog.New creates a structured logger; the text handler prints
	// human-readable lines to the terminal. In production you'd raise the
	// level to Info or Warn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Configuration is read exactly once, here, and treated as immutable
	// for the life of the process. See internal/config for the variables.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		GithubClientID:     cfg.GithubClientID,
		GithubClientSecret: cfg.GithubClientSecret,
		MongoURI:           cfg.MongoURI,
		MongoDB:            cfg.MongoDB,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
