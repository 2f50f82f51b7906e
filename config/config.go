// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Addr       string // address the HTTP server binds to
	DSN        string // MySQL data source name
	BcryptCost int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment. DSN is required; the rest
// fall back to sensible defaults.
func Load() Config {
	return Config{
		Addr:       getenv("ADDR", ":9069"),
		DSN:        must("DSN"),
		BcryptCost: getenvInt("BCRYPT_COST", 10),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
