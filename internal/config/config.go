// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port string `env:"PORT" env-default:"8090"`

	// APIKey enables bearer-token auth when set. Empty disables auth,
	// which is the default for a local exploration session.
	APIKey string `env:"API_KEY"`

	// Upload limits. Files over MaxUploadBytes are rejected; files over
	// WarnBytes are accepted but flagged large in the load response.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" env-default:"20971520"`
	WarnBytes      int64 `env:"WARN_BYTES" env-default:"10485760"`

	// Session lifetime and capacity.
	SessionTTL   time.Duration `env:"SESSION_TTL" env-default:"1h"`
	MaxDocuments int           `env:"MAX_DOCUMENTS" env-default:"32"`

	// PositionalPaths switches node paths from name chains to unique
	// tag[k] segments. Name-chain paths conflate same-tagged siblings;
	// keep the default when "highlight all same-shaped nodes" is the
	// wanted behavior.
	PositionalPaths bool `env:"POSITIONAL_PATHS" env-default:"false"`

	// Rolling window for operation latency stats.
	StatsWindow time.Duration `env:"STATS_WINDOW" env-default:"1h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.WarnBytes <= 0 || c.WarnBytes > c.MaxUploadBytes {
		return fmt.Errorf("WARN_BYTES must be positive and at most MAX_UPLOAD_BYTES")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxDocuments <= 0 {
		return fmt.Errorf("MAX_DOCUMENTS must be positive")
	}
	return nil
}
