// # internal/core/config/paths.go
package config

import (
	"path/filepath"
	"strings"
)

// ResolveRoot returns paths.root resolved against base, or "" when no root
// is configured.
func ResolveRoot(cfg *Config, base string) string {
	if strings.TrimSpace(cfg.Paths.Root) == "" {
		return ""
	}
	return ResolveRelative(base, cfg.Paths.Root)
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
