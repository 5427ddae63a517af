// # internal/core/config/env.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: INDEXER_[SECTION]_[KEY] (e.g., INDEXER_SERVER_ADDRESS).
func ApplyEnvOverrides(cfg *Config) {
	// Server
	setEnvString(&cfg.Server.Address, "INDEXER_SERVER_ADDRESS")
	setEnvDuration(&cfg.Server.ReadTimeout, "INDEXER_SERVER_READ_TIMEOUT")
	setEnvDuration(&cfg.Server.WriteTimeout, "INDEXER_SERVER_WRITE_TIMEOUT")
	setEnvDuration(&cfg.Server.ShutdownTimeout, "INDEXER_SERVER_SHUTDOWN_TIMEOUT")
	setEnvList(&cfg.Server.CORSAllowedOrigins, "INDEXER_SERVER_CORS_ALLOWED_ORIGINS")

	// Paths
	setEnvString(&cfg.Paths.Root, "INDEXER_PATHS_ROOT")
	setEnvList(&cfg.Paths.Deny, "INDEXER_PATHS_DENY")

	// Rate limit
	setEnvBool(&cfg.RateLimit.Enabled, "INDEXER_RATE_LIMIT_ENABLED")
	setEnvInt(&cfg.RateLimit.RequestsPerMinute, "INDEXER_RATE_LIMIT_REQUESTS_PER_MINUTE")
	setEnvInt(&cfg.RateLimit.Burst, "INDEXER_RATE_LIMIT_BURST")

	// Observability
	setEnvBool(&cfg.Observability.MetricsEnabled, "INDEXER_OBSERVABILITY_METRICS_ENABLED")
	setEnvBool(&cfg.Observability.TracingEnabled, "INDEXER_OBSERVABILITY_TRACING_ENABLED")
	setEnvString(&cfg.Observability.OTLPEndpoint, "INDEXER_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvString(&cfg.Observability.ServiceName, "INDEXER_OBSERVABILITY_SERVICE_NAME")

	// Log
	setEnvString(&cfg.Log.Level, "INDEXER_LOG_LEVEL")
	setEnvString(&cfg.Log.Format, "INDEXER_LOG_FORMAT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

// setEnvList splits a comma-separated value.
func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = strings.Split(val, ",")
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
