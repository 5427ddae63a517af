// # internal/core/config/config_test.go
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexer.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version = 1

[server]
address = "127.0.0.1:9000"
read_timeout = "5s"
cors_allowed_origins = ["https://app.example.com"]

[paths]
root = "/srv/repos"
deny = ["**/.git/**", "**/*.pem"]

[languages.python]
enabled = false

[languages.rust]
extensions = [".rs", ".rlib"]

[rate_limit]
enabled = true
requests_per_minute = 120
burst = 10

[observability]
metrics_enabled = false

[log]
level = "DEBUG"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout, "unset fields take defaults")
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "/srv/repos", cfg.Paths.Root)
	assert.Len(t, cfg.Paths.Deny, 2)

	require.Contains(t, cfg.Languages, "python")
	require.NotNil(t, cfg.Languages["python"].Enabled)
	assert.False(t, *cfg.Languages["python"].Enabled)
	assert.Equal(t, []string{".rs", ".rlib"}, cfg.Languages["rust"].Extensions)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerSecond())
	assert.False(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Empty(t, cfg.Paths.Root)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, "sherlock-indexer", cfg.Observability.ServiceName)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Empty(t, Validate(cfg))
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INDEXER_SERVER_ADDRESS", "127.0.0.1:7000")
	t.Setenv("INDEXER_PATHS_DENY", "**/secret/**, **/*.key")
	t.Setenv("INDEXER_RATE_LIMIT_BURST", "3")
	t.Setenv("INDEXER_RATE_LIMIT_ENABLED", "TRUE")
	t.Setenv("INDEXER_SERVER_READ_TIMEOUT", "not-a-duration")

	cfg, err := Load(writeConfig(t, "[server]\naddress = \"127.0.0.1:9000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
	assert.Equal(t, []string{"**/secret/**", "**/*.key"}, cfg.Paths.Deny)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout, "unparsable override is ignored")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[server\naddress = 1"},
		{"bad version", "version = 3\n"},
		{"bad address", "[server]\naddress = \"nowhere\"\n"},
		{"bad glob", "[paths]\ndeny = [\"[unclosed\"]\n"},
		{"bad log format", "[log]\nformat = \"xml\"\n"},
		{"tracing without endpoint", "[observability]\ntracing_enabled = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidateLanguages(t *testing.T) {
	disabled := false
	cfg := Default()
	cfg.Languages = map[string]Language{
		"go":     {Extensions: []string{".go", "bad/ext"}},
		"python": {Extensions: []string{".go"}},
		"rust":   {Enabled: &disabled, Extensions: []string{".go"}},
	}

	errs := Validate(cfg)
	assert.Len(t, errs, 2, "invalid extension and one duplicate claim: %v", errs)
}

func TestResolveRoot(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", ResolveRoot(cfg, "/base"))

	cfg.Paths.Root = "repos"
	assert.Equal(t, filepath.Clean("/base/repos"), ResolveRoot(cfg, "/base"))

	cfg.Paths.Root = "/abs/repos/"
	assert.Equal(t, filepath.Clean("/abs/repos"), ResolveRoot(cfg, "/base"))
}
