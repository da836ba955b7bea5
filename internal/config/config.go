package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	LivenessInterval time.Duration
}

// Load reads .env if present; PORT and LIVENESS_INTERVAL are the only knobs.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:             "8080",
		LivenessInterval: 30 * time.Second,
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}
	if v := os.Getenv("LIVENESS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.LivenessInterval = d
		}
	}
	return cfg
}
