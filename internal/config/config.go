package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// StoreBackend selects where the snapshot lives.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreFile     StoreBackend = "file"
	StoreRedis    StoreBackend = "redis"
	StorePostgres StoreBackend = "postgres"
)

type Config struct {
	Addr     string
	LogLevel slog.Level

	StoreBackend StoreBackend
	SnapshotPath string
	DatabaseURL  string
	RedisURL     string

	KafkaBrokers []string
	EventTopic   string
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file for local development.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         getEnv("ADDR", ":8080"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StoreBackend: StoreBackend(getEnv("STORE_BACKEND", string(StoreFile))),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "data/portal_provas.json"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		EventTopic:   getEnv("EVENT_TOPIC", "exam-service.events"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreFile, StoreRedis, StorePostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == StorePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
	}
	if cfg.StoreBackend == StoreRedis && cfg.RedisURL == "" {
		return nil, fmt.Errorf("STORE_BACKEND=redis requires REDIS_URL")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
