package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis
	Redis RedisConfig

	// External APIs
	Trading TradingConfig
	Payment PaymentConfig

	// Payout defaults
	Payout PayoutConfig

	// Order detail fetching
	Fetch FetchConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// TradingConfig holds trading-platform API configuration
type TradingConfig struct {
	BaseURL string
	// ServiceToken authenticates background jobs (digest, status checks)
	// that run without an operator session.
	ServiceToken string
	// RequestsPerSecond bounds outbound calls to the trading API.
	RequestsPerSecond int
}

// PaymentConfig holds bank payment API configuration
type PaymentConfig struct {
	BaseURL string
}

// PayoutConfig holds the desk's own settlement details applied to every
// outgoing bank transfer.
type PayoutConfig struct {
	// ClientAccountNumber is the desk's originating account (10 digits).
	ClientAccountNumber string
	SenderName          string
	ClientFeeCharge     string
}

// FetchConfig controls batched order-detail fetching
type FetchConfig struct {
	BatchSize  int
	ChunkDelay time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8085"),
		Env:  getEnv("ENV", "development"),

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		Trading: TradingConfig{
			BaseURL:           getEnv("TRADING_BASE_URL", "https://api.trading.example.com"),
			ServiceToken:      getEnv("TRADING_SERVICE_TOKEN", ""),
			RequestsPerSecond: getEnvAsInt("TRADING_RPS", 5),
		},

		Payment: PaymentConfig{
			BaseURL: getEnv("PAYMENT_BASE_URL", "https://api.payments.example.com"),
		},

		Payout: PayoutConfig{
			ClientAccountNumber: getEnv("PAYOUT_CLIENT_ACCOUNT", ""),
			SenderName:          getEnv("PAYOUT_SENDER_NAME", ""),
			ClientFeeCharge:     getEnv("PAYOUT_CLIENT_FEE_CHARGE", ""),
		},

		Fetch: FetchConfig{
			BatchSize:  getEnvAsInt("FETCH_BATCH_SIZE", 5),
			ChunkDelay: getEnvAsDuration("FETCH_CHUNK_DELAY", "500ms"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Trading.BaseURL == "" {
		return fmt.Errorf("TRADING_BASE_URL is required")
	}
	if c.Payment.BaseURL == "" {
		return fmt.Errorf("PAYMENT_BASE_URL is required")
	}

	// The originating account rides on every payment instruction; a wrong
	// length would fail schema validation on every single payout.
	if n := len(c.Payout.ClientAccountNumber); n != 0 && n != 10 {
		return fmt.Errorf("PAYOUT_CLIENT_ACCOUNT must be exactly 10 characters")
	}

	if c.Fetch.BatchSize <= 0 {
		return fmt.Errorf("FETCH_BATCH_SIZE must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}

	return value
}
