// # internal/engine/parser/loader.go
package parser

import (
	"fmt"

	"sherlock/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// GrammarLoader holds one compiled-in grammar per enabled language. The table
// is filled once by NewGrammarLoader and only read afterwards.
type GrammarLoader struct {
	languages map[Language]*sitter.Language
}

func NewGrammarLoader(registry *Registry) (*GrammarLoader, error) {
	gl := &GrammarLoader{
		languages: make(map[Language]*sitter.Language),
	}

	for _, lang := range registry.Languages() {
		switch lang {
		case LangRust:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_rust.Language())
		case LangJavaScript:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_javascript.Language())
		case LangTypeScript:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
		case LangTSX:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
		case LangGo:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_go.Language())
		case LangPython:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_python.Language())
		case LangJava:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_java.Language())
		case LangCpp:
			gl.languages[lang] = sitter.NewLanguage(tree_sitter_cpp.Language())
		default:
			return nil, fmt.Errorf("language %q is enabled but no grammar is compiled in", lang)
		}
	}

	return gl, nil
}

// Grammar returns the grammar for lang. A language that passed detection but
// has no loaded grammar is reported as unsupported.
func (gl *GrammarLoader) Grammar(lang Language) (*sitter.Language, error) {
	grammar, ok := gl.languages[lang]
	if !ok || grammar == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeUnsupportedLanguage, "language parser not available"),
			errors.CtxLanguage, string(lang),
		)
	}
	return grammar, nil
}

func (gl *GrammarLoader) Count() int {
	return len(gl.languages)
}
