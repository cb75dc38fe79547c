package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения, собранные из переменных окружения
type Config struct {
	Environment        string
	ServerPort         int
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string

	DB    DBConfig
	Redis RedisConfig

	CacheTTL           time.Duration
	ClassRetentionDays int
	PurgeCron          string

	// OTLPEndpoint задаёт адрес OTLP/HTTP коллектора; пустой отключает трассировку
	OTLPEndpoint string
}

// DBConfig описывает подключение к базе данных
type DBConfig struct {
	Driver       string // postgres, mysql или sqlite
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string // файл базы для sqlite
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig описывает подключение к Redis. Пустой Addr отключает кэш.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadDotEnv подгружает .env, если не выставлен ENV_CHEK.
// Отсутствие файла не считается ошибкой: в контейнере переменные приходят из окружения.
func LoadDotEnv(paths ...string) (bool, error) {
	if os.Getenv("ENV_CHEK") != "" {
		return false, nil
	}
	if err := godotenv.Load(paths...); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load .env: %w", err)
	}
	return true, nil
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	port, err := getInt("SERVER_PORT", 8000)
	if err != nil {
		return nil, err
	}

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}

	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getInt("CACHE_TTL_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	retention, err := getInt("CLASS_RETENTION_DAYS", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		ServerPort:         port,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		DB: DBConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "tgclasses"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			Path:         getEnv("DB_PATH", "sql_app.db"),
			MaxOpenConns: maxOpen,
			MaxIdleConns: maxIdle,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CacheTTL:           time.Duration(cacheTTL) * time.Second,
		ClassRetentionDays: retention,
		PurgeCron:          getEnv("PURGE_CRON", "0 0 3 * * *"),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}, nil
}

// Addr возвращает адрес, на котором слушает HTTP-сервер
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
