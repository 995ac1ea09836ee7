package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации агента
type Config struct {
	// Upstream API
	APIBaseURL      string        `env:"API_BASE_URL"`
	APIToken        string        `env:"API_TOKEN"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	ResponderID int64  `env:"RESPONDER_ID"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Realtime transport: redis | kafka | off
	RealtimeTransport string `env:"REALTIME_TRANSPORT" envDefault:"redis"`
	IncidentsChannel  string `env:"INCIDENTS_CHANNEL" envDefault:"incidents"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka Config
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID"`

	// Sync Config
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s"`
	ListCacheTTL    time.Duration `env:"LIST_CACHE_TTL" envDefault:"10s"`
	HistoryCacheTTL time.Duration `env:"HISTORY_CACHE_TTL" envDefault:"30s"`
	IncludeResolved bool          `env:"INCLUDE_RESOLVED" envDefault:"true"`

	// Dispatch Config
	AutoDispatchEnabled bool `env:"AUTO_DISPATCH_ENABLED" envDefault:"true"`

	// Audit Config (пусто - аудит выключен)
	DatabaseURL string `env:"DATABASE_URL"`

	// API Keys for the local consumer API
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		APIBaseURL:          os.Getenv("API_BASE_URL"),
		APIToken:            os.Getenv("API_TOKEN"),
		UpstreamTimeout:     getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		ResponderID:         getEnvAsInt64("RESPONDER_ID", 0),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RealtimeTransport:   getEnv("REALTIME_TRANSPORT", "redis"),
		IncidentsChannel:    getEnv("INCIDENTS_CHANNEL", "incidents"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		KafkaGroupID:        os.Getenv("KAFKA_GROUP_ID"),
		RefreshInterval:     getEnvAsDuration("REFRESH_INTERVAL", 30*time.Second),
		ListCacheTTL:        getEnvAsDuration("LIST_CACHE_TTL", 10*time.Second),
		HistoryCacheTTL:     getEnvAsDuration("HISTORY_CACHE_TTL", 30*time.Second),
		IncludeResolved:     getEnvAsBool("INCLUDE_RESOLVED", true),
		AutoDispatchEnabled: getEnvAsBool("AUTO_DISPATCH_ENABLED", true),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
	}

	cfg.KafkaBrokers = splitAndTrim(os.Getenv("KAFKA_BROKERS"))
	cfg.APIKeys = splitAndTrim(os.Getenv("API_KEYS"))

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}
	if cfg.ResponderID == 0 {
		return nil, fmt.Errorf("RESPONDER_ID environment variable is required")
	}

	switch cfg.RealtimeTransport {
	case "redis", "kafka", "off":
	default:
		return nil, fmt.Errorf("REALTIME_TRANSPORT must be one of redis, kafka, off; got %q", cfg.RealtimeTransport)
	}
	if cfg.RealtimeTransport == "kafka" && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required when REALTIME_TRANSPORT=kafka")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 возвращает значение переменной окружения как int64 или значение по умолчанию
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// splitAndTrim разбивает список значений через запятую
func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
