// # internal/core/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"sherlock/internal/shared/version"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Version       int                 `toml:"version"`
	Server        Server              `toml:"server"`
	Paths         Paths               `toml:"paths"`
	Languages     map[string]Language `toml:"languages"`
	RateLimit     RateLimit           `toml:"rate_limit"`
	Observability Observability       `toml:"observability"`
	Log           Log                 `toml:"log"`
}

type Server struct {
	Address            string        `toml:"address"`
	ReadTimeout        time.Duration `toml:"read_timeout"`
	WriteTimeout       time.Duration `toml:"write_timeout"`
	ShutdownTimeout    time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes       int64         `toml:"max_body_bytes"`
	CORSAllowedOrigins []string      `toml:"cors_allowed_origins"`
}

// Paths controls how <repo>/<file> request paths map onto the filesystem.
// An empty Root keeps paths relative to the working directory.
type Paths struct {
	Root string   `toml:"root"`
	Deny []string `toml:"deny"`
}

// Language overrides one entry of the built-in language registry.
type Language struct {
	Enabled    *bool    `toml:"enabled"`
	Extensions []string `toml:"extensions"`
}

type RateLimit struct {
	Enabled           bool          `toml:"enabled"`
	RequestsPerMinute int           `toml:"requests_per_minute"`
	Burst             int           `toml:"burst"`
	IdleTTL           time.Duration `toml:"idle_ttl"`
}

type Observability struct {
	MetricsEnabled bool   `toml:"metrics_enabled"`
	TracingEnabled bool   `toml:"tracing_enabled"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	ServiceName    string `toml:"service_name"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Observability: Observability{MetricsEnabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads path, applies defaults and INDEXER_* environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Observability: Observability{MetricsEnabled: true},
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to Default when path is
// empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return finish(Default())
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return finish(Default())
	}
	return Load(path)
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	ApplyEnvOverrides(cfg)
	normalize(cfg)
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Server.Address) == "" {
		cfg.Server.Address = "0.0.0.0:8081"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.RateLimit.RequestsPerMinute <= 0 {
		cfg.RateLimit.RequestsPerMinute = 600
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 50
	}
	if cfg.RateLimit.IdleTTL <= 0 {
		cfg.RateLimit.IdleTTL = 10 * time.Minute
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = version.ServiceName
	}

	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}
}

func normalize(cfg *Config) {
	cfg.Server.Address = strings.TrimSpace(cfg.Server.Address)
	cfg.Paths.Root = strings.TrimSpace(cfg.Paths.Root)
	cfg.Paths.Deny = trimAll(cfg.Paths.Deny)
	cfg.Server.CORSAllowedOrigins = trimAll(cfg.Server.CORSAllowedOrigins)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if len(cfg.Languages) == 0 {
		return
	}
	normalized := make(map[string]Language, len(cfg.Languages))
	for id, lang := range cfg.Languages {
		lang.Extensions = trimAll(lang.Extensions)
		normalized[strings.ToLower(strings.TrimSpace(id))] = lang
	}
	cfg.Languages = normalized
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SlogLevel returns the configured log level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// RequestsPerSecond converts the per-minute budget for rate.Limiter.
func (r RateLimit) RequestsPerSecond() float64 {
	return float64(r.RequestsPerMinute) / 60.0
}
