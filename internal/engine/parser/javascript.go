// # internal/engine/parser/javascript.go
package parser

// javascriptRules covers javascript, typescript and tsx. Export statements
// are not inspected, so every symbol is reported unexported.
func javascriptRules(lang Language) Ruleset {
	return Ruleset{
		Language: lang,
		Kinds: map[string]SymbolType{
			"function_declaration": SymbolFunction,
			"function":             SymbolFunction,
			"function_expression":  SymbolFunction,
			"method_definition":    SymbolMethod,
			"class_declaration":    SymbolClass,
			"variable_declaration": SymbolVariable,
		},
	}
}
