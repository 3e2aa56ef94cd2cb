package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port          int    // HTTP listen port
	MongoURI      string // ex: mongodb://localhost:27017
	MongoDatabase string // database holding bookmarks and categories

	AllowedOrigins []string // CORS allow list
	LogLevel       string   // "debug" | "info" | "warn" | "error"

	RateLimitRPS   float64 // per-visitor requests per second
	RateLimitBurst int

	// Redis (optional, empty addr disables the slug cache)
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisConnectTimeout time.Duration // total time to retry connecting
	SlugCacheTTL        time.Duration

	APIBaseURL string // base URL the CLI category client talks to
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first by godotenv.
func Load() (*Config, error) {
	port, err := getenvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	rps, err := getenvFloat("RATE_LIMIT_RPS", 3)
	if err != nil {
		return nil, err
	}
	burst, err := getenvInt("RATE_LIMIT_BURST", 5)
	if err != nil {
		return nil, err
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := getenvDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	slugTTL, err := getenvDuration("SLUG_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                port,
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       getenv("MONGO_DATABASE", "bookmarks"),
		AllowedOrigins:      splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		RateLimitRPS:        rps,
		RateLimitBurst:      burst,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		RedisConnectTimeout: connectTimeout,
		SlugCacheTTL:        slugTTL,
		APIBaseURL:          strings.TrimRight(getenv("API_BASE_URL", "http://127.0.0.1:8000"), "/"),
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable not set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
