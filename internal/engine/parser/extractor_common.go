// # internal/engine/parser/extractor_common.go
package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Signature returns the first line of the node's text with surrounding
// whitespace trimmed. Multi-line declarations are cut at the first newline.
func Signature(n Node, source []byte) (string, error) {
	end := n.EndByte()
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	text, err := sliceText(source, n.StartByte(), end, n.Kind())
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text), nil
}

// BuildSymbol turns a draft into a CodeSymbol for filePath. The id combines
// the path, the name and the 0-based start row, so two same-named symbols
// starting on the same row collide.
func BuildSymbol(draft SymbolDraft, filePath string) CodeSymbol {
	return CodeSymbol{
		ID:           symbolID(filePath, draft.Name, draft.StartRow),
		SymbolName:   draft.Name,
		SymbolType:   draft.Type,
		FilePath:     filePath,
		LineStart:    int(draft.StartRow) + 1,
		LineEnd:      int(draft.EndRow) + 1,
		Signature:    draft.Signature,
		Dependencies: []string{},
		Exported:     draft.Exported,
		Visibility:   draft.Visibility,
	}
}

func symbolID(filePath, name string, row uint) string {
	var b strings.Builder
	b.Grow(len(filePath) + len(name) + 8)
	b.WriteString(filePath)
	b.WriteByte('_')
	b.WriteString(name)
	b.WriteByte('_')
	b.WriteString(strconv.FormatUint(uint64(row), 10))
	return b.String()
}

func isExportedName(name string) bool {
	if name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}

func stringPtr(value string) *string {
	return &value
}
