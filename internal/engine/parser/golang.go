// # internal/engine/parser/golang.go
package parser

var goRules = Ruleset{
	Language: LangGo,
	Kinds: map[string]SymbolType{
		"function_declaration": SymbolFunction,
		"method_declaration":   SymbolMethod,
		"type_declaration":     SymbolTypeDecl,
	},
	Exported: func(_ Node, name string) bool {
		return isExportedName(name)
	},
}
