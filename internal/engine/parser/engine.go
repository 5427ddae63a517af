// # internal/engine/parser/engine.go
package parser

// ExtractionContext carries the per-request state of one walk.
type ExtractionContext struct {
	Source   []byte
	FilePath string
	Symbols  []CodeSymbol
}

func NewExtractionContext(source []byte, filePath string) *ExtractionContext {
	return &ExtractionContext{
		Source:   source,
		FilePath: filePath,
		Symbols:  make([]CodeSymbol, 0),
	}
}

// ExtractorEngine walks the syntax tree in pre-order and applies one
// language's ruleset at every node.
type ExtractorEngine struct {
	rules Ruleset
}

func NewExtractorEngine(rules Ruleset) *ExtractorEngine {
	return &ExtractorEngine{rules: rules}
}

// Walk visits node and then every child in source order, whether or not node
// produced a symbol. The first extraction error stops the walk.
func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node Node) error {
	if node == nil {
		return nil
	}

	draft, err := e.rules.Apply(node, ctx.Source)
	if err != nil {
		return err
	}
	if draft != nil {
		ctx.Symbols = append(ctx.Symbols, BuildSymbol(*draft, ctx.FilePath))
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if err := e.Walk(ctx, node.Child(i)); err != nil {
			return err
		}
	}
	return nil
}
