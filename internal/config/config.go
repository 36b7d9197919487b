package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions. SessionTTL is the single source of truth for the
	// inactivity window: it drives both the cookie token expiry and
	// the server-side session row expiry.
	SessionSecret string
	SessionTTL    time.Duration

	// Exchange rate proxy
	ForexBaseURL string
	ForexTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "stash"),
		DBPassword: getEnv("DB_PASSWORD", "stash"),
		DBName:     getEnv("DB_NAME", "stash"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Sessions
		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),

		// Exchange rate proxy
		ForexBaseURL: getEnv("FOREX_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
	}

	// Parse session TTL (24h window; see SessionTTL doc)
	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 24h\n", ttlStr)
		ttl = 24 * time.Hour
	}
	config.SessionTTL = ttl

	timeoutStr := getEnv("FOREX_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid FOREX_TIMEOUT value '%s', falling back to 10s\n", timeoutStr)
		timeout = 10 * time.Second
	}
	config.ForexTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
