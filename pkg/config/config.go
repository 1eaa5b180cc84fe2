// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, feed, cache and storage settings

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Feed contains public feed configuration
	Feed FeedConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Storage contains the content repository configuration
	Storage StorageConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel controls logger verbosity (debug/info/warn/error)
	LogLevel string

	// RateLimit is the allowed requests per second per client, 0 disables
	RateLimit int
}

// FeedConfig holds public feed configuration
type FeedConfig struct {
	// BaseURL is the public origin the feed is served from
	BaseURL string

	// DefaultItemType filters the feed when no type query parameter is
	// given; empty means no default filter
	DefaultItemType string

	// LiturgyURL is the supplementary daily-content provider endpoint;
	// empty disables the provider
	LiturgyURL string

	// LiturgyTimeoutSeconds bounds the supplementary fetch
	LiturgyTimeoutSeconds int

	// CacheTTLSeconds is how long a built feed document is cached
	CacheTTLSeconds int

	// PageSize is the number of items per feed page
	PageSize int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// StorageConfig holds the content repository configuration
type StorageConfig struct {
	// DSN is the SQLite database path
	DSN string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 20),
		},
		Feed: FeedConfig{
			BaseURL:               strings.TrimSuffix(getEnvOrDefault("BASE_URL", "http://localhost:8000"), "/"),
			DefaultItemType:       getEnvOrDefault("DEFAULT_ITEM_TYPE", ""),
			LiturgyURL:            getEnvOrDefault("LITURGY_URL", ""),
			LiturgyTimeoutSeconds: getEnvAsIntOrDefault("LITURGY_TIMEOUT", 5),
			CacheTTLSeconds:       getEnvAsIntOrDefault("FEED_CACHE_TTL", 60),
			PageSize:              getEnvAsIntOrDefault("FEED_PAGE_SIZE", 25),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		Storage: StorageConfig{
			DSN: getEnvOrDefault("STORAGE_DSN", "microfeed.db"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Feed.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}

	if c.Feed.PageSize < 1 {
		return errors.New("feed page size must be at least 1")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Storage.DSN == "" {
		return errors.New("storage DSN cannot be empty")
	}

	return nil
}
