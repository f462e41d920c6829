// Package config loads the daemon's configuration from environment
// variables, with an optional YAML file overlay, using cleanenv the way
// its struct tags are designed for.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every knob the filed daemon reads at startup. Struct tags
// are the source of truth for defaults; there is deliberately no
// hardcoded per-environment map the way some daemons do it — every
// deployment is expected to set its own environment variables (or point
// FILED_CONFIG_FILE at a YAML overlay) rather than pick from a baked-in
// "production"/"development" table.
type Config struct {
	Environment string `env:"FILED_ENVIRONMENT" env-default:"development" yaml:"environment"`
	SentryDSN   string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	LogPretty   bool   `env:"FILED_LOG_PRETTY" env-default:"false" yaml:"log_pretty"`

	ChannelCapacity int `env:"FILED_CHANNEL_CAPACITY" env-default:"256" yaml:"channel_capacity"`

	DebugListenAddr string `env:"FILED_DEBUG_ADDR" env-default:":6061" yaml:"debug_listen_addr"`

	ArchiveBackend       string        `env:"FILED_ARCHIVE_BACKEND" env-default:"badger" yaml:"archive_backend"`
	ArchiveFlushInterval time.Duration `env:"FILED_ARCHIVE_FLUSH_INTERVAL" env-default:"30s" yaml:"archive_flush_interval"`
	ArchiveGCSBucket     string        `env:"FILED_GCS_BUCKET" yaml:"archive_gcs_bucket"`
	ArchiveGCSPrefix     string        `env:"FILED_GCS_PREFIX" yaml:"archive_gcs_prefix"`
	ArchiveBadgerDir     string        `env:"FILED_BADGER_DIR" env-default:"./data/badger" yaml:"archive_badger_dir"`

	EventsKafkaBrokers []string `env:"FILED_KAFKA_BROKERS" env-separator:"," yaml:"events_kafka_brokers"`
	EventsKafkaTopic   string   `env:"FILED_KAFKA_TOPIC" env-default:"filed-lifecycle-events" yaml:"events_kafka_topic"`
}

// Load reads Config from the environment, overlaying a YAML file named by
// FILED_CONFIG_FILE first if that variable is set. Values present in both
// are resolved by cleanenv's own precedence: environment variables win
// over file contents, file contents win over struct-tag defaults.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("FILED_CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	if cfg.ChannelCapacity <= 0 {
		return nil, fmt.Errorf("config: FILED_CHANNEL_CAPACITY must be positive, got %d", cfg.ChannelCapacity)
	}
	switch cfg.ArchiveBackend {
	case "badger", "gcs":
	default:
		return nil, fmt.Errorf("config: FILED_ARCHIVE_BACKEND must be %q or %q, got %q", "badger", "gcs", cfg.ArchiveBackend)
	}
	if cfg.ArchiveBackend == "gcs" && cfg.ArchiveGCSBucket == "" {
		return nil, fmt.Errorf("config: FILED_GCS_BUCKET is required when FILED_ARCHIVE_BACKEND=gcs")
	}
	return &cfg, nil
}
