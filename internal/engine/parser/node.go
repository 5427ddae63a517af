// # internal/engine/parser/node.go
package parser

import (
	"unicode/utf8"

	"sherlock/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Point is a 0-based row/column position in the source.
type Point struct {
	Row    uint
	Column uint
}

// Node is the read-only view of a syntax tree node used by the extraction
// engine. Child and ChildByFieldName return nil when there is no such node.
type Node interface {
	Kind() string
	ChildCount() uint
	Child(i uint) Node
	ChildByFieldName(name string) Node
	StartPosition() Point
	EndPosition() Point
	StartByte() uint
	EndByte() uint
}

type sitterNode struct {
	n *sitter.Node
}

// WrapNode adapts a tree-sitter node. A nil node yields a nil Node.
func WrapNode(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n: n}
}

func (s sitterNode) Kind() string     { return s.n.Kind() }
func (s sitterNode) ChildCount() uint { return s.n.ChildCount() }
func (s sitterNode) StartByte() uint  { return s.n.StartByte() }
func (s sitterNode) EndByte() uint    { return s.n.EndByte() }

func (s sitterNode) Child(i uint) Node {
	return WrapNode(s.n.Child(i))
}

func (s sitterNode) ChildByFieldName(name string) Node {
	return WrapNode(s.n.ChildByFieldName(name))
}

func (s sitterNode) StartPosition() Point {
	p := s.n.StartPosition()
	return Point{Row: p.Row, Column: p.Column}
}

func (s sitterNode) EndPosition() Point {
	p := s.n.EndPosition()
	return Point{Row: p.Row, Column: p.Column}
}

// NodeText returns the source text covered by n. It fails when the byte range
// falls outside source or is not valid UTF-8.
func NodeText(n Node, source []byte) (string, error) {
	return sliceText(source, n.StartByte(), n.EndByte(), n.Kind())
}

func sliceText(source []byte, start, end uint, kind string) (string, error) {
	if start > end || end > uint(len(source)) {
		return "", errors.AddContext(
			errors.New(errors.CodeTextDecodeFailure, "node byte range out of bounds"),
			errors.CtxNodeKind, kind,
		)
	}
	b := source[start:end]
	if !utf8.Valid(b) {
		return "", errors.AddContext(
			errors.New(errors.CodeTextDecodeFailure, "node text is not valid utf-8"),
			errors.CtxNodeKind, kind,
		)
	}
	return string(b), nil
}
