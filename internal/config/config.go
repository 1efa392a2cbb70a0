// Package config handles loading of application configuration from
// environment variables.
//
// WHY A CONFIG PACKAGE?
// Configuration is read exactly once, at process start, and treated as
// immutable afterwards. Centralising it here means main.go stays a thin
// entry point and no other package ever reaches for os.Getenv directly.
//
// We use viper with AutomaticEnv: every key declared below is satisfied by
// the environment variable of the same name, with sensible defaults for
// local development.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// GitHub OAuth app credentials, from the registered OAuth App at
	// https://github.com/settings/developers. Both are required unless the
	// server runs with the in-memory store (local development).
	GithubClientID     string
	GithubClientSecret string

	// MongoURI is the document store address, e.g. "mongodb://localhost:27017".
	// If empty, the server falls back to an in-memory store so it can still
	// boot for local development — data is lost on restart.
	MongoURI string

	// MongoDB is the database name holding the users and photos collections.
	MongoDB string
}

// Load reads the configuration from the environment.
//
// It returns an error only for values that are present but malformed
// (e.g. a non-numeric PORT). Missing credentials are validated later, in
// server.New, because they are only required when a real store is in play.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("MONGO_DB", "photoshare")

	cfg := &Config{
		Port:               v.GetInt("PORT"),
		GithubClientID:     v.GetString("GITHUB_CLIENT_ID"),
		GithubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDB:            v.GetString("MONGO_DB"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %d", cfg.Port)
	}

	return cfg, nil
}
