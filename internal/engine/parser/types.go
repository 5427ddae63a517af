// # internal/engine/parser/types.go
package parser

type SymbolType string

const (
	SymbolFunction  SymbolType = "function"
	SymbolMethod    SymbolType = "method"
	SymbolClass     SymbolType = "class"
	SymbolStruct    SymbolType = "struct"
	SymbolEnum      SymbolType = "enum"
	SymbolTrait     SymbolType = "trait"
	SymbolImpl      SymbolType = "impl"
	SymbolInterface SymbolType = "interface"
	SymbolTypeDecl  SymbolType = "type"
	SymbolConst     SymbolType = "const"
	SymbolStatic    SymbolType = "static"
	SymbolNamespace SymbolType = "namespace"
	SymbolVariable  SymbolType = "variable"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// CodeSymbol is one extracted declaration. Lines are 1-based and inclusive.
// Signature and Visibility serialize as null when absent.
type CodeSymbol struct {
	ID           string     `json:"id"`
	SymbolName   string     `json:"symbol_name"`
	SymbolType   SymbolType `json:"symbol_type"`
	FilePath     string     `json:"file_path"`
	LineStart    int        `json:"line_start"`
	LineEnd      int        `json:"line_end"`
	Signature    *string    `json:"signature"`
	Dependencies []string   `json:"dependencies"`
	Exported     bool       `json:"exported"`
	Visibility   *string    `json:"visibility"`
}

// SymbolDraft is what a ruleset extracts from a single node before the
// builder assigns an id and line numbers.
type SymbolDraft struct {
	Name       string
	Type       SymbolType
	StartRow   uint
	EndRow     uint
	Signature  *string
	Exported   bool
	Visibility *string
}

// ExtractRequest is the optional request body shared by every extraction
// route. Only the chunk hash route reads the bounds.
type ExtractRequest struct {
	StartLine *int `json:"start_line,omitempty"`
	EndLine   *int `json:"end_line,omitempty"`
}

type ExtractResponse struct {
	Symbols []CodeSymbol `json:"symbols"`
	Success bool         `json:"success"`
}

type HashResponse struct {
	Hash    string `json:"hash"`
	Success bool   `json:"success"`
}
