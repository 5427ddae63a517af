// # internal/engine/parser/java.go
package parser

// Java members are reported public regardless of their modifiers.
var javaRules = Ruleset{
	Language: LangJava,
	Kinds: map[string]SymbolType{
		"class_declaration":     SymbolClass,
		"interface_declaration": SymbolInterface,
		"method_declaration":    SymbolMethod,
	},
	Exported: func(Node, string) bool { return true },
	Visibility: func(bool) *string {
		return stringPtr(VisibilityPublic)
	},
}
