package config

import "os"

// Config carries the runtime settings. Values come from the environment,
// optionally preloaded from a .env file by the caller.
type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	JWTSecret   string
	CORSOrigins string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "file:mfp.db"),
		Env:         getEnv("APP_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "devjwtsecret"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool { return c.Env == "production" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
