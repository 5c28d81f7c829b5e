package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Web server
	Bind string

	// Database
	DBPath string

	// Invite links
	JWTSecret string

	// Room lifetime before expiry
	RoomTTL time.Duration

	// Currency rates
	RatesBaseURL    string
	RatesRefresh    time.Duration
	RatesCurrencies []string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Bind:         getEnvDefault("BIND", "0.0.0.0:8080"),
		DBPath:       getEnvDefault("DB_PATH", "data/chotta.db"),
		JWTSecret:    getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		RatesBaseURL: getEnvDefault("RATES_BASE_URL", "https://api.frankfurter.app"),
		LogLevel:     getEnvDefault("LOG_LEVEL", "info"),
	}

	ttlDays, err := getEnvInt("ROOM_TTL_DAYS", 14)
	if err != nil {
		return nil, err
	}
	if ttlDays <= 0 {
		return nil, fmt.Errorf("ROOM_TTL_DAYS must be positive, got %d", ttlDays)
	}
	cfg.RoomTTL = time.Duration(ttlDays) * 24 * time.Hour

	refreshHours, err := getEnvInt("RATES_REFRESH_HOURS", 12)
	if err != nil {
		return nil, err
	}
	if refreshHours <= 0 {
		return nil, fmt.Errorf("RATES_REFRESH_HOURS must be positive, got %d", refreshHours)
	}
	cfg.RatesRefresh = time.Duration(refreshHours) * time.Hour

	cfg.RatesCurrencies = splitCurrencies(getEnvDefault("RATES_CURRENCIES", "EUR,USD,GBP,CHF"))
	if len(cfg.RatesCurrencies) == 0 {
		return nil, fmt.Errorf("RATES_CURRENCIES must name at least one currency")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

func splitCurrencies(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
