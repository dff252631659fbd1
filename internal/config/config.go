package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	GRPCPort              int
	GRPCReflectionEnabled bool
	GRPCLoggingEnabled    bool
	CacheTTL              time.Duration
	CalculationTimeout    time.Duration
	StatusDisplayDelay    time.Duration
}

// LoadFromEnv loads configuration from environment variables. Malformed
// values fall back to their defaults.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", "./data/valuations.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getInt("REDIS_DB", 0),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		GRPCLoggingEnabled:    getBool("GRPC_LOGGING_ENABLED", true),
		CacheTTL:              getDuration("CACHE_TTL", 10*time.Minute),
		CalculationTimeout:    getDuration("CALCULATION_TIMEOUT", 10*time.Second),
		StatusDisplayDelay:    getDuration("STATUS_DISPLAY_DELAY", 2*time.Second),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("750ms", "2m"); negative values are
// rejected.
func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
