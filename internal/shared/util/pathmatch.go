// # internal/shared/util/pathmatch.go
package util

import (
	"fmt"

	"github.com/gobwas/glob"
)

// PathMatcher matches slash-separated paths against a set of globs, where
// "*" stays within one segment and "**" spans segments.
type PathMatcher struct {
	patterns []string
	globs    []glob.Glob
}

func NewPathMatcher(patterns []string) (*PathMatcher, error) {
	m := &PathMatcher{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}
	for _, p := range patterns {
		normalized := NormalizePatternPath(p)
		if normalized == "" {
			continue
		}
		g, err := glob.Compile(normalized, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match returns the first pattern matching path.
func (m *PathMatcher) Match(path string) (string, bool) {
	if m == nil {
		return "", false
	}
	normalized := NormalizePatternPath(path)
	for i, g := range m.globs {
		if g.Match(normalized) {
			return m.patterns[i], true
		}
	}
	return "", false
}

func (m *PathMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.globs)
}
