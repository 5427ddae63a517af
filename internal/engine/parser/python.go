// # internal/engine/parser/python.go
package parser

var pythonRules = Ruleset{
	Language: LangPython,
	Kinds: map[string]SymbolType{
		"function_definition": SymbolFunction,
		"class_definition":    SymbolClass,
	},
	SignatureFatal: true,
}
