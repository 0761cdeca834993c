package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	MarketData MarketDataConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// RedisConfig holds the OHLCV cache configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// KafkaConfig holds Kafka configuration; an empty broker list disables
// event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// MarketDataConfig holds market data provider configuration
type MarketDataConfig struct {
	RequestTimeout time.Duration
	DefaultPeriod  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CACHE_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "etf-analysis-events"),
		},
		MarketData: MarketDataConfig{
			RequestTimeout: getEnvDuration("MARKETDATA_TIMEOUT", 30*time.Second),
			DefaultPeriod:  getEnv("MARKETDATA_DEFAULT_PERIOD", "max"),
		},
	}
}

// Addr returns the host:port pair the HTTP server listens on
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
