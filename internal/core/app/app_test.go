// # internal/core/app/app_test.go
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sherlock/internal/core/config"
	"sherlock/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) (*App, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Root = root
	if mutate != nil {
		mutate(cfg)
	}
	a, err := New(cfg, root)
	require.NoError(t, err)
	return a, root
}

func writeRepoFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestResolvePath(t *testing.T) {
	a, root := newTestApp(t, func(cfg *config.Config) {
		cfg.Paths.Deny = []string{"**/.git/**", "**/*.pem"}
	})

	got, err := a.ResolvePath("myrepo", "src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "myrepo", "src", "lib.rs"), got)

	tests := []struct {
		name string
		repo string
		file string
		code errors.ErrorCode
	}{
		{"empty repo", "", "a.go", errors.CodeValidationError},
		{"empty file", "repo", "", errors.CodeValidationError},
		{"parent repo", "..", "etc/passwd", errors.CodePermissionDenied},
		{"climbing file", "repo", "../../etc/passwd", errors.CodePermissionDenied},
		{"denied dir", "repo", ".git/config", errors.CodePermissionDenied},
		{"denied ext", "repo", "certs/server.pem", errors.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.ResolvePath(tt.repo, tt.file)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDenied(t *testing.T) {
	a, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.Paths.Deny = []string{"**/*.pem"}
	})
	assert.True(t, a.Denied("certs/server.pem"))
	assert.False(t, a.Denied("src/lib.rs"))
}

func TestResolvePath_NoRootKeepsRelativePath(t *testing.T) {
	cfg := config.Default()
	a, err := New(cfg, "/ignored")
	require.NoError(t, err)

	got, err := a.ResolvePath("repo", "/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "repo/src/main.go", got)
}

func TestNew_RejectsUnknownLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.Languages = map[string]config.Language{"cobol": {Extensions: []string{".cbl"}}}

	_, err := New(cfg, t.TempDir())
	assert.Error(t, err)
}

func TestNew_DisabledLanguage(t *testing.T) {
	disabled := false
	a, root := newTestApp(t, func(cfg *config.Config) {
		cfg.Languages = map[string]config.Language{"python": {Enabled: &disabled}}
	})
	writeRepoFile(t, root, "r/a.py", "def f(): pass\n")

	_, err := a.ExtractSymbols(context.Background(), "r", "a.py")
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedLanguage), "got %v", err)
}

func TestExtractSymbols(t *testing.T) {
	a, root := newTestApp(t, nil)
	writeRepoFile(t, root, "repo/src/lib.rs", "pub fn foo() {}\n")

	symbols, err := a.ExtractSymbols(context.Background(), "repo", "src/lib.rs")
	require.NoError(t, err)
	require.Len(t, symbols, 1)

	fullPath := filepath.Join(root, "repo", "src", "lib.rs")
	assert.Equal(t, fullPath, symbols[0].FilePath)
	assert.Equal(t, fullPath+"_foo_0", symbols[0].ID)
}

func TestExtractDependencies(t *testing.T) {
	a, _ := newTestApp(t, nil)

	deps, err := a.ExtractDependencies(context.Background(), "repo", "anything.go")
	require.NoError(t, err)
	assert.NotNil(t, deps)
	assert.Empty(t, deps)

	_, err = a.ExtractDependencies(context.Background(), "..", "x.go")
	assert.True(t, errors.IsCode(err, errors.CodePermissionDenied))
}

func TestChunkHash(t *testing.T) {
	a, root := newTestApp(t, nil)
	writeRepoFile(t, root, "repo/notes.txt", "a\nb\nc\n")

	one := 1
	three := 3
	full, err := a.ChunkHash(context.Background(), "repo", "notes.txt", nil, nil)
	require.NoError(t, err)
	explicit, err := a.ChunkHash(context.Background(), "repo", "notes.txt", &one, &three)
	require.NoError(t, err)
	assert.Equal(t, full, explicit)

	_, err = a.ChunkHash(context.Background(), "repo", "notes.txt", &three, &one)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidRange))
}

func TestHealthCheck(t *testing.T) {
	a, _ := newTestApp(t, nil)

	status := NewHealthService(a).Check(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "sherlock-indexer", status.Service)
	assert.Equal(t, "0.1.0", status.Version)
	assert.Equal(t, "8/8 loaded", status.Components["grammars"])
	assert.Equal(t, "ok", status.Components["root"])
	assert.Contains(t, status.Components, "memory")
}

func TestHealthCheck_MissingRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Root = filepath.Join(t.TempDir(), "gone")
	a, err := New(cfg, "/")
	require.NoError(t, err)

	status := NewHealthService(a).Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unavailable", status.Components["root"])

	assert.Equal(t, "degraded", NewHealthService(nil).Check(context.Background()).Status)
}
