// # internal/core/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"sherlock/internal/core/config"
	"sherlock/internal/core/errors"
	"sherlock/internal/engine/parser"
	"sherlock/internal/shared/util"
)

// App wires configuration to the extraction service and applies the path
// policy for <repo>/<file> requests.
type App struct {
	Config  *config.Config
	Service *parser.Service

	root string
	deny *util.PathMatcher
}

// New builds the language registry, grammars and extraction service for cfg.
// baseDir anchors a relative paths.root.
func New(cfg *config.Config, baseDir string) (*App, error) {
	specs, err := buildParserRegistry(cfg)
	if err != nil {
		return nil, err
	}
	registry := parser.NewRegistry(specs)
	grammars, err := parser.NewGrammarLoader(registry)
	if err != nil {
		return nil, err
	}

	deny, err := util.NewPathMatcher(cfg.Paths.Deny)
	if err != nil {
		return nil, fmt.Errorf("paths.deny: %w", err)
	}

	a := &App{
		Config:  cfg,
		Service: parser.NewService(registry, grammars),
		root:    config.ResolveRoot(cfg, baseDir),
		deny:    deny,
	}
	slog.Debug("app initialized",
		"languages", len(registry.Languages()),
		"root", a.root,
		"deny_patterns", deny.Len(),
	)
	return a, nil
}

func buildParserRegistry(cfg *config.Config) (map[parser.Language]parser.LanguageSpec, error) {
	overrides := make(map[string]parser.LanguageOverride, len(cfg.Languages))
	for _, lang := range util.SortedStringKeys(cfg.Languages) {
		languageCfg := cfg.Languages[lang]
		overrides[lang] = parser.LanguageOverride{
			Enabled:    languageCfg.Enabled,
			Extensions: append([]string(nil), languageCfg.Extensions...),
		}
	}
	return parser.BuildLanguageRegistry(overrides)
}

// Root returns the resolved repository root, or "" for working-directory
// relative paths.
func (a *App) Root() string {
	return a.root
}

// ResolvePath maps a repo and a file path within it to the path handed to the
// extraction service. Paths that climb out of the repo or match a deny
// pattern are rejected.
func (a *App) ResolvePath(repo, file string) (string, error) {
	repo = strings.Trim(repo, "/")
	file = strings.TrimLeft(file, "/")
	if repo == "" || file == "" {
		return "", errors.New(errors.CodeValidationError, "repo and file must not be empty")
	}

	rel := repo + "/" + file
	if util.EscapesRoot(repo) || util.EscapesRoot(file) || util.EscapesRoot(rel) {
		return "", errors.AddContext(
			errors.New(errors.CodePermissionDenied, "path escapes repository root"),
			errors.CtxPath, rel,
		)
	}
	if pattern, ok := a.deny.Match(rel); ok {
		return "", errors.AddContext(
			errors.AddContext(
				errors.New(errors.CodePermissionDenied, "path matches deny pattern"),
				errors.CtxPath, rel,
			),
			"pattern", pattern,
		)
	}

	if a.root == "" {
		return rel, nil
	}
	return filepath.Join(a.root, filepath.FromSlash(path.Clean(rel))), nil
}

// Denied reports whether a slash-separated relative path matches a deny
// pattern.
func (a *App) Denied(rel string) bool {
	_, ok := a.deny.Match(rel)
	return ok
}

// ExtractSymbols resolves repo/file and extracts its symbols.
func (a *App) ExtractSymbols(ctx context.Context, repo, file string) ([]parser.CodeSymbol, error) {
	fullPath, err := a.ResolvePath(repo, file)
	if err != nil {
		return nil, err
	}
	return a.Service.ExtractSymbols(ctx, fullPath)
}

// ExtractDependencies resolves repo/file; the result is always empty.
func (a *App) ExtractDependencies(ctx context.Context, repo, file string) ([]parser.CodeSymbol, error) {
	fullPath, err := a.ResolvePath(repo, file)
	if err != nil {
		return nil, err
	}
	return a.Service.ExtractDependencies(ctx, fullPath)
}

// ChunkHash resolves repo/file and hashes the requested line range.
func (a *App) ChunkHash(ctx context.Context, repo, file string, startLine, endLine *int) (string, error) {
	fullPath, err := a.ResolvePath(repo, file)
	if err != nil {
		return "", err
	}
	return a.Service.ChunkHash(ctx, fullPath, startLine, endLine)
}
