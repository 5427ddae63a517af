// # internal/engine/parser/rust.go
package parser

var rustRules = Ruleset{
	Language: LangRust,
	Kinds: map[string]SymbolType{
		"function_item": SymbolFunction,
		"impl_item":     SymbolImpl,
		"struct_item":   SymbolStruct,
		"enum_item":     SymbolEnum,
		"trait_item":    SymbolTrait,
		"type_item":     SymbolTypeDecl,
		"const_item":    SymbolConst,
		"static_item":   SymbolStatic,
	},
	Exported:   rustExported,
	Visibility: rustVisibility,
}

// rustExported reports whether the item opens with a visibility modifier
// such as pub or pub(crate).
func rustExported(node Node, _ string) bool {
	if node.ChildCount() == 0 {
		return false
	}
	first := node.Child(0)
	return first != nil && first.Kind() == "visibility_modifier"
}

func rustVisibility(exported bool) *string {
	if exported {
		return stringPtr(VisibilityPublic)
	}
	return stringPtr(VisibilityPrivate)
}
