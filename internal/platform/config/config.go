package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sahakari-society/members-console/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SinkMemory = "memory"
	SinkAMQP   = "amqp"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port string

	StorageBackend string
	DatabaseURL    string
	// RosterFile is an optional JSON roster for the memory backend.
	RosterFile string

	CommandSink    string
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	LogLevel  slog.Level
	LogFormat logging.Format

	ShutdownTimeout time.Duration
}

// LoadFromEnv reads Config from the environment. Every problem found is
// reported in one joined error.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		StorageBackend:  strings.ToLower(getenv("STORAGE_BACKEND", StorageMemory)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RosterFile:      os.Getenv("ROSTER_FILE"),
		CommandSink:     strings.ToLower(getenv("COMMAND_SINK", SinkMemory)),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AMQPExchange:    getenv("AMQP_EXCHANGE", "society.members"),
		AMQPRoutingKey:  getenv("AMQP_ROUTING_KEY", "member.commands"),
		ShutdownTimeout: 10 * time.Second,
	}

	var errs []error

	if n, err := strconv.Atoi(cfg.Port); err != nil || n < 1 || n > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port))
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres"))
		}
		if cfg.RosterFile != "" {
			errs = append(errs, errors.New("ROSTER_FILE only applies to STORAGE_BACKEND=memory"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be memory or postgres, got %q", cfg.StorageBackend))
	}

	switch cfg.CommandSink {
	case SinkMemory:
	case SinkAMQP:
		if cfg.AMQPURL == "" {
			errs = append(errs, errors.New("AMQP_URL is required when COMMAND_SINK=amqp"))
		}
	default:
		errs = append(errs, fmt.Errorf("COMMAND_SINK must be memory or amqp, got %q", cfg.CommandSink))
	}

	level, err := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	format, err := logging.ParseFormat(os.Getenv("LOG_FORMAT"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}
	cfg.LogFormat = format

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration (e.g. 10s), got %q", v))
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
