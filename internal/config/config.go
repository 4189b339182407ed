package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBUrl    string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	// EventsBackend is one of "none", "kafka" or "redis".
	EventsBackend string
	KafkaBrokers  []string
	EventsPrefix  string
	RedisAddr     string

	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string
	SlowRequest    time.Duration
}

const defaultJWTSecret = "default-secret-key-change-in-production"

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using environment and defaults")
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         os.Getenv("DB_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		EventsBackend: strings.ToLower(getEnv("EVENTS_BACKEND", "none")),
		KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		EventsPrefix:  getEnv("EVENTS_PREFIX", "ledger."),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RateLimit:     getFloat("RATE_LIMIT", 10),
		RateBurst:     getInt("RATE_BURST", 20),

		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		SlowRequest:    getDuration("SLOW_REQUEST", time.Second),
	}
}

// UsesDefaultSecret reports whether no JWT secret was configured.
func (c Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
