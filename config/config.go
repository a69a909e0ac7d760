package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Basket sync policies accepted by BASKET_SYNC_POLICY.
const (
	SyncPolicyOptimistic  = "optimistic"
	SyncPolicyCommitFirst = "commit_first"
)

type Config struct {
	Env      string
	LogLevel string
	// Remote services
	IdentityURL    string
	BasketURL      string
	CatalogURL     string
	HTTPTimeout    time.Duration
	HTTPMaxRetries int
	HTTPRateLimit  float64 // requests per second, 0 disables the limiter
	HTTPRateBurst  int
	// Cache
	CacheCatalogTTL      time.Duration
	CacheCleanupInterval time.Duration
	CatalogPageSize      int
	// Client state
	SettingsFile     string
	UseMocks         bool
	BasketSyncPolicy string
	// Mock identity
	MockJWTSecret   string
	MockTokenExpiry time.Duration
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env is optional, system env vars win anyway.
		_ = godotenv.Load()
	}

	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		IdentityURL:    getEnv("IDENTITY_URL", "http://localhost:5105"),
		BasketURL:      getEnv("BASKET_URL", "http://localhost:5103"),
		CatalogURL:     getEnv("CATALOG_URL", "http://localhost:5101"),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 10*time.Second),
		HTTPMaxRetries: getIntEnv("HTTP_MAX_RETRIES", 2),
		HTTPRateLimit:  getFloatEnv("HTTP_RATE_LIMIT", 20),
		HTTPRateBurst:  getIntEnv("HTTP_RATE_BURST", 40),

		// Brands and types barely change, products are never cached
		CacheCatalogTTL:      getDurationEnv("CACHE_CATALOG_TTL", 30*time.Minute),
		CacheCleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 60*time.Minute),
		CatalogPageSize:      getIntEnv("CATALOG_PAGE_SIZE", 100),

		SettingsFile:     getEnv("SETTINGS_FILE", "eshop.settings"),
		UseMocks:         getBoolEnv("USE_MOCKS", true),
		BasketSyncPolicy: getEnv("BASKET_SYNC_POLICY", SyncPolicyOptimistic),

		MockJWTSecret:   getEnv("MOCK_JWT_SECRET", "default_secret_CHANGE_ME"),
		MockTokenExpiry: getDurationEnv("MOCK_TOKEN_EXPIRY", 24*time.Hour),
	}
}

// Validate reports the first setting the client cannot run with.
func (c *Config) Validate() error {
	if !c.UseMocks {
		if c.IdentityURL == "" || c.BasketURL == "" || c.CatalogURL == "" {
			return fmt.Errorf("IDENTITY_URL, BASKET_URL and CATALOG_URL are required when USE_MOCKS=false")
		}
	}
	switch c.BasketSyncPolicy {
	case SyncPolicyOptimistic, SyncPolicyCommitFirst:
	default:
		return fmt.Errorf("unknown BASKET_SYNC_POLICY %q", c.BasketSyncPolicy)
	}
	if c.HTTPMaxRetries < 0 {
		return fmt.Errorf("HTTP_MAX_RETRIES must not be negative")
	}
	if c.CatalogPageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if c.MockJWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default mock JWT secret.")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
