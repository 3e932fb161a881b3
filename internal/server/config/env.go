package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over .env entries (godotenv.Load never overrides).
//
// Variables:
//
//	GATEKEEPER_ADDR            HTTP bind address
//	GATEKEEPER_DATABASE_DSN    PostgreSQL DSN
//	GATEKEEPER_SECRET_KEY      JWT signing secret
//	GATEKEEPER_TOKEN_TTL       token lifetime, Go duration string ("1h")
//	GATEKEEPER_CORS_ORIGINS    comma-separated allowed origins
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GATEKEEPER_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("GATEKEEPER_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("GATEKEEPER_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("GATEKEEPER_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("GATEKEEPER_CORS_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = v
	}
}
