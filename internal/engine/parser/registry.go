// # internal/engine/parser/registry.go
package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type Language string

const (
	LangRust       Language = "rust"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangCpp        Language = "cpp"
)

type LanguageSpec struct {
	Name       Language
	Extensions []string
	Enabled    bool
}

type LanguageOverride struct {
	Enabled    *bool
	Extensions []string
}

func DefaultLanguageRegistry() map[Language]LanguageSpec {
	return map[Language]LanguageSpec{
		LangRust: {
			Name:       LangRust,
			Extensions: []string{".rs"},
			Enabled:    true,
		},
		LangJavaScript: {
			Name:       LangJavaScript,
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			Enabled:    true,
		},
		LangTypeScript: {
			Name:       LangTypeScript,
			Extensions: []string{".ts"},
			Enabled:    true,
		},
		LangTSX: {
			Name:       LangTSX,
			Extensions: []string{".tsx"},
			Enabled:    true,
		},
		LangGo: {
			Name:       LangGo,
			Extensions: []string{".go"},
			Enabled:    true,
		},
		LangPython: {
			Name:       LangPython,
			Extensions: []string{".py"},
			Enabled:    true,
		},
		LangJava: {
			Name:       LangJava,
			Extensions: []string{".java"},
			Enabled:    true,
		},
		LangCpp: {
			Name:       LangCpp,
			Extensions: []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp"},
			Enabled:    true,
		},
	}
}

func BuildLanguageRegistry(overrides map[string]LanguageOverride) (map[Language]LanguageSpec, error) {
	registry := cloneLanguageRegistry(DefaultLanguageRegistry())
	if overrides == nil {
		return registry, nil
	}

	for name, override := range overrides {
		lang := Language(strings.ToLower(strings.TrimSpace(name)))
		spec, ok := registry[lang]
		if !ok {
			return nil, fmt.Errorf("unknown language override %q", name)
		}
		if override.Enabled != nil {
			spec.Enabled = *override.Enabled
		}
		if len(override.Extensions) > 0 {
			spec.Extensions = normalizeExtensions(override.Extensions)
		}
		registry[lang] = spec
	}

	if err := validateLanguageRegistry(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// Registry resolves file paths to languages. It is immutable once built and
// safe for concurrent use.
type Registry struct {
	specs      map[Language]LanguageSpec
	extensions map[string]Language
}

func NewRegistry(specs map[Language]LanguageSpec) *Registry {
	r := &Registry{
		specs:      cloneLanguageRegistry(specs),
		extensions: make(map[string]Language),
	}
	for lang, spec := range r.specs {
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			r.extensions[strings.ToLower(ext)] = lang
		}
	}
	return r
}

// DetectLanguage maps the lowercased extension of path to a language. Paths
// without an extension, dotfiles such as ".rs", and disabled languages
// resolve to nothing.
func (r *Registry) DetectLanguage(path string) (Language, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return "", false
	}
	lang, ok := r.extensions[strings.ToLower(ext)]
	return lang, ok
}

// Languages returns the enabled languages in sorted order.
func (r *Registry) Languages() []Language {
	out := make([]Language, 0, len(r.specs))
	for lang, spec := range r.specs {
		if spec.Enabled {
			out = append(out, lang)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) Spec(lang Language) (LanguageSpec, bool) {
	spec, ok := r.specs[lang]
	if !ok {
		return LanguageSpec{}, false
	}
	spec.Extensions = append([]string(nil), spec.Extensions...)
	return spec, true
}

func (r *Registry) SupportedExtensions() []string {
	out := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func cloneLanguageRegistry(in map[Language]LanguageSpec) map[Language]LanguageSpec {
	out := make(map[Language]LanguageSpec, len(in))
	for id, spec := range in {
		copySpec := spec
		copySpec.Extensions = append([]string(nil), spec.Extensions...)
		out[id] = copySpec
	}
	return out
}

func validateLanguageRegistry(registry map[Language]LanguageSpec) error {
	extOwner := make(map[string]Language)
	for _, id := range sortedRegistryIDs(registry) {
		spec := registry[id]
		if !spec.Enabled {
			continue
		}
		if len(spec.Extensions) == 0 {
			return fmt.Errorf("language %q is enabled without extensions", id)
		}
		for _, ext := range normalizeExtensions(spec.Extensions) {
			if existing, ok := extOwner[ext]; ok && existing != id {
				return fmt.Errorf("duplicate extension %q owned by %q and %q", ext, existing, id)
			}
			extOwner[ext] = id
		}
	}
	return nil
}

func normalizeExtensions(values []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(values))
	for _, value := range values {
		raw := strings.TrimSpace(strings.ToLower(value))
		if raw == "" || raw == "." {
			continue
		}
		if !strings.HasPrefix(raw, ".") {
			raw = "." + raw
		}
		if seen[raw] {
			continue
		}
		seen[raw] = true
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

func sortedRegistryIDs(registry map[Language]LanguageSpec) []Language {
	ids := make([]Language, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
