package reactium

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds boot configuration for the framework runtime.
type Config struct {
	// LogLevel is the minimum slog level: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ServerAddr is the listen address handed to the HTTP surface.
	ServerAddr string `yaml:"server_addr" json:"server_addr"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// PulseTick is how often the pulse runner checks for due tasks.
	PulseTick time.Duration `yaml:"pulse_tick" json:"pulse_tick"`

	// CacheJanitor is how often the cache sweeps expired entries.
	CacheJanitor time.Duration `yaml:"cache_janitor" json:"cache_janitor"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		ServerAddr:      ":3030",
		ShutdownTimeout: 30 * time.Second,
		PulseTick:       1 * time.Second,
		CacheJanitor:    30 * time.Second,
	}
}

// LoadConfig reads a YAML configuration file and overlays it on the
// defaults. Zero-valued fields in the file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reactium: read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("reactium: parse config %s: %w", path, err)
	}

	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.ServerAddr != "" {
		cfg.ServerAddr = file.ServerAddr
	}
	if file.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = file.ShutdownTimeout
	}
	if file.PulseTick > 0 {
		cfg.PulseTick = file.PulseTick
	}
	if file.CacheJanitor > 0 {
		cfg.CacheJanitor = file.CacheJanitor
	}

	return cfg, nil
}
