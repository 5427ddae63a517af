// # internal/core/config/validator.go
package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Validate runs every check and returns all problems found.
func Validate(cfg *Config) []error {
	var errs []error

	if err := validateVersion(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateServer(cfg); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, validatePaths(cfg)...)
	errs = append(errs, validateLanguages(cfg)...)
	if err := validateRateLimit(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateObservability(cfg); err != nil {
		errs = append(errs, err)
	}
	if err := validateLog(cfg); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateServer(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.Server.Address); err != nil {
		return fmt.Errorf("server.address %q is not host:port: %w", cfg.Server.Address, err)
	}
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	return nil
}

func validatePaths(cfg *Config) []error {
	var errs []error
	for i, pattern := range cfg.Paths.Deny {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			errs = append(errs, fmt.Errorf("paths.deny[%d] %q is not a valid glob: %w", i, pattern, err))
		}
	}
	return errs
}

// validateLanguages checks the override shape only. Unknown language ids are
// rejected later, when the overrides are applied to the built-in registry.
func validateLanguages(cfg *Config) []error {
	var errs []error
	seen := make(map[string]string)
	for id, lang := range cfg.Languages {
		if id == "" {
			errs = append(errs, fmt.Errorf("languages: empty language id"))
			continue
		}
		if lang.Enabled != nil && !*lang.Enabled {
			continue
		}
		for _, ext := range lang.Extensions {
			normalized := strings.ToLower(ext)
			if !strings.HasPrefix(normalized, ".") {
				normalized = "." + normalized
			}
			if normalized == "." || strings.ContainsAny(normalized, `/\ `) {
				errs = append(errs, fmt.Errorf("languages.%s: invalid extension %q", id, ext))
				continue
			}
			if owner, ok := seen[normalized]; ok && owner != id {
				errs = append(errs, fmt.Errorf("languages: extension %q claimed by %s and %s", normalized, owner, id))
				continue
			}
			seen[normalized] = id
		}
	}
	return errs
}

func validateRateLimit(cfg *Config) error {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 1")
	}
	if cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be >= 1")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.TracingEnabled && cfg.Observability.OTLPEndpoint == "" {
		return fmt.Errorf("observability.otlp_endpoint must be set when tracing is enabled")
	}
	return nil
}

func validateLog(cfg *Config) error {
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	return nil
}
