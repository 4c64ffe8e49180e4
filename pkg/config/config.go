package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

// Events backends selectable via EVENTS_BACKEND.
const (
	EventsNone  = "none"
	EventsKafka = "kafka"
	EventsSQS   = "sqs"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Storage StorageConfig
	Events  EventsConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	Backend           string
	AccountsTable     string
	TransactionsTable string
}

// EventsConfig selects and parameterizes the transaction-event publisher.
type EventsConfig struct {
	Backend      string
	KafkaBrokers []string
	KafkaTopic   string
	SQSQueueURL  string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultKafkaTopic      = "pocketbank.transactions"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Storage: StorageConfig{
			Backend:           valueOrDefault("STORAGE_BACKEND", StorageMemory),
			AccountsTable:     os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
			TransactionsTable: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		},
		Events: EventsConfig{
			Backend:     valueOrDefault("EVENTS_BACKEND", EventsNone),
			KafkaTopic:  valueOrDefault("KAFKA_TOPIC", defaultKafkaTopic),
			SQSQueueURL: os.Getenv("SQS_QUEUE_URL"),
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", "info"),
			Format: valueOrDefault("LOG_FORMAT", "text"),
		},
	}

	port, err := parsePort("HTTP_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if trimmed := strings.TrimSpace(broker); trimmed != "" {
				cfg.Events.KafkaBrokers = append(cfg.Events.KafkaBrokers, trimmed)
			}
		}
	}

	for key, dst := range map[string]*time.Duration{
		"HTTP_READ_TIMEOUT":     &cfg.HTTP.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    &cfg.HTTP.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":     &cfg.HTTP.IdleTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": &cfg.HTTP.ShutdownTimeout,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case StorageMemory:
	case StorageDynamoDB:
		if c.Storage.AccountsTable == "" || c.Storage.TransactionsTable == "" {
			return fmt.Errorf("dynamodb backend requires DYNAMODB_ACCOUNTS_TABLE_NAME and DYNAMODB_TRANSACTIONS_TABLE_NAME")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Events.Backend {
	case EventsNone:
	case EventsKafka:
		if len(c.Events.KafkaBrokers) == 0 {
			return fmt.Errorf("kafka events backend requires KAFKA_BROKERS")
		}
	case EventsSQS:
		if c.Events.SQSQueueURL == "" {
			return fmt.Errorf("sqs events backend requires SQS_QUEUE_URL")
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.Events.Backend)
	}

	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
