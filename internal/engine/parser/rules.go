// # internal/engine/parser/rules.go
package parser

import "sherlock/internal/core/errors"

// Ruleset is one language's extraction table: which node kinds become
// symbols, how export status and visibility are derived, and whether a
// signature that cannot be decoded aborts the request.
type Ruleset struct {
	Language Language
	Kinds    map[string]SymbolType
	// SignatureFatal propagates signature decode errors instead of leaving
	// the signature empty. Python and C++ behave this way, the rest do not.
	SignatureFatal bool
	Exported       func(node Node, name string) bool
	Visibility     func(exported bool) *string
}

// Apply extracts a draft from node. It returns (nil, nil) for node kinds the
// ruleset does not know and for matched nodes without a name field.
func (r Ruleset) Apply(node Node, source []byte) (*SymbolDraft, error) {
	symbolType, ok := r.Kinds[node.Kind()]
	if !ok {
		return nil, nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, nil
	}
	name, err := NodeText(nameNode, source)
	if err != nil {
		return nil, err
	}

	draft := &SymbolDraft{
		Name:     name,
		Type:     symbolType,
		StartRow: node.StartPosition().Row,
		EndRow:   node.EndPosition().Row,
	}

	signature, err := Signature(node, source)
	switch {
	case err == nil:
		draft.Signature = &signature
	case r.SignatureFatal:
		return nil, errors.AddContext(err, errors.CtxSymbol, name)
	}

	if r.Exported != nil {
		draft.Exported = r.Exported(node, name)
	}
	if r.Visibility != nil {
		draft.Visibility = r.Visibility(draft.Exported)
	}
	return draft, nil
}

var rulesets = map[Language]Ruleset{
	LangRust:       rustRules,
	LangJavaScript: javascriptRules(LangJavaScript),
	LangTypeScript: javascriptRules(LangTypeScript),
	LangTSX:        javascriptRules(LangTSX),
	LangGo:         goRules,
	LangPython:     pythonRules,
	LangJava:       javaRules,
	LangCpp:        cppRules,
}

// RulesetFor returns the extraction rules for lang.
func RulesetFor(lang Language) (Ruleset, bool) {
	r, ok := rulesets[lang]
	return r, ok
}
