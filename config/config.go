package config

import (
	"os"

	"github.com/joho/godotenv"
)

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

func init() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "workbridge_super_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DBPath returns the sqlite database path. Empty means the seeded in-memory
// store, which is the default for local development.
func DBPath() string {
	return getEnv("WORKBRIDGE_DB", "")
}

// Port the HTTP server listens on.
func Port() string {
	return getEnv("PORT", "8080")
}
