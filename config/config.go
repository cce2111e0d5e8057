package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults matching the compact 3x3 game drawn from 1..25.
const (
	DefaultPort         = "4000"
	DefaultPoolMax      = 25
	DefaultCardRows     = 3
	DefaultCardCols     = 3
	DefaultDrawInterval = 7 * time.Second
	DefaultRetention    = 10 * time.Minute
)

// Config is everything the server reads from the environment.
type Config struct {
	Port         string
	DatabaseURL  string // empty runs on the in-memory store
	PoolMax      int
	CardRows     int
	CardCols     int
	DrawInterval time.Duration
	Retention    time.Duration
	CORSOrigins  []string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:         envOr("PORT", DefaultPort),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PoolMax:      envIntOr("BINGO_POOL_MAX", DefaultPoolMax),
		CardRows:     envIntOr("BINGO_CARD_ROWS", DefaultCardRows),
		CardCols:     envIntOr("BINGO_CARD_COLS", DefaultCardCols),
		DrawInterval: envDurationOr("BINGO_DRAW_INTERVAL", DefaultDrawInterval),
		Retention:    envDurationOr("BINGO_RETENTION", DefaultRetention),
		CORSOrigins:  []string{envOr("CORS_ORIGIN", "http://localhost:3000")},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
