// # internal/engine/parser/cpp.go
package parser

var cppRules = Ruleset{
	Language: LangCpp,
	Kinds: map[string]SymbolType{
		"function_definition":  SymbolFunction,
		"class_specifier":      SymbolClass,
		"namespace_definition": SymbolNamespace,
	},
	SignatureFatal: true,
}
