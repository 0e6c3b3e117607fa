package config

import (
	"fmt"
	"os"
	"time"
)

const defaultTokenTTL = 24 * time.Hour

type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenTTL      time.Duration
	RedisAddr     string
	RedisPassword string
}

// Load reads the environment into a Config. JWT_SECRET and MONGO_URI are
// required; everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        os.Getenv("DB"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      defaultTokenTTL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "estate_listings"
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI not set in environment")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in environment")
	}

	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL %q: %v", raw, err)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}
