// Package config handles startup configuration loaded from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultAddress  = ":8080"
	DefaultTokenTTL = time.Hour
)

// Config holds runtime settings for the todoweb server.
//
// Fields:
//   - Address: HTTP bind address.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - JWTSecret: HMAC secret for signing session tokens (HS256). Required,
//     never logged.
//   - AccessTokenTTL: session token lifetime; also the cookie max-age.
//   - SecureCookies: set the Secure attribute on session cookies
//     (enable in production behind TLS).
type Config struct {
	Address        string
	DatabaseDSN    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	SecureCookies  bool
}

// Load builds a Config from the environment, after loading an optional
// .env file. It fails fast on a missing DSN or secret and on a malformed
// or non-positive TTL.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Address:        envOr("ADDRESS", DefaultAddress),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: DefaultTokenTTL,
		SecureCookies:  os.Getenv("SECURE_COOKIES") == "true",
	}

	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTokenTTL = ttl
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
