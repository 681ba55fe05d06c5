// Package config provides configuration for the ingestion pipeline.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/roster"
)

// Config holds all pipeline settings.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Roster    RosterConfig    `mapstructure:"roster"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IngestConfig controls how the uploaded report is read.
type IngestConfig struct {
	Worksheet string `mapstructure:"worksheet"`
}

// RosterConfig selects the roster source. Path and URL are mutually
// exclusive; leaving both empty runs the pipeline without enrichment.
type RosterConfig struct {
	Path          string        `mapstructure:"path"`
	Worksheet     string        `mapstructure:"worksheet"`
	Table         string        `mapstructure:"table"`
	URL           string        `mapstructure:"url"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
}

// ReconcileConfig controls identity matching.
type ReconcileConfig struct {
	FuzzyThreshold int `mapstructure:"fuzzy_threshold"`
}

// Load reads configuration from the given file (optional), environment
// variables prefixed RADFLOW_, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("roster.fetch_timeout", roster.DefaultFetchTimeout)
	v.SetDefault("roster.retry_attempts", 3)
	v.SetDefault("reconcile.fuzzy_threshold", roster.DefaultThreshold)

	v.SetEnvPrefix("RADFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(ExpandPath(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Reconcile.FuzzyThreshold < 1 || c.Reconcile.FuzzyThreshold > 100 {
		return fmt.Errorf("%w: fuzzy_threshold must be between 1 and 100, got %d",
			common.ErrInvalidConfig, c.Reconcile.FuzzyThreshold)
	}

	if c.Roster.Path != "" && c.Roster.URL != "" {
		return fmt.Errorf("%w: roster.path and roster.url are mutually exclusive",
			common.ErrInvalidConfig)
	}

	if c.Roster.URL != "" && c.Roster.FetchTimeout <= 0 {
		return fmt.Errorf("%w: roster.fetch_timeout must be positive when roster.url is set",
			common.ErrInvalidConfig)
	}

	if c.Roster.RetryAttempts < 0 {
		return fmt.Errorf("%w: roster.retry_attempts cannot be negative",
			common.ErrInvalidConfig)
	}

	return nil
}
