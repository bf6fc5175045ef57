package ast

import (
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// SimpleType 简单类型名：int、string、Foo\Bar、mixed …
type SimpleType struct {
	BaseNode
	Name lexer.ByteString `json:"name"`
}

func (n *SimpleType) typeNode()      {}
func (n *SimpleType) String() string { return n.Name.String() }

// NullableType ?T
type NullableType struct {
	BaseNode
	Inner Type `json:"inner"`
}

func (n *NullableType) typeNode()           {}
func (n *NullableType) GetChildren() []Node { return []Node{n.Inner} }
func (n *NullableType) String() string      { return "?" + n.Inner.String() }

// UnionType A|B|C
type UnionType struct {
	BaseNode
	Types []Type `json:"types"`
}

func (n *UnionType) typeNode() {}
func (n *UnionType) GetChildren() []Node {
	nodes := make([]Node, 0, len(n.Types))
	for _, t := range n.Types {
		nodes = append(nodes, t)
	}
	return nodes
}
func (n *UnionType) String() string { return typesJoin(n.Types, "|") }

// IntersectionType A&B&C
type IntersectionType struct {
	BaseNode
	Types []Type `json:"types"`
}

func (n *IntersectionType) typeNode() {}
func (n *IntersectionType) GetChildren() []Node {
	nodes := make([]Node, 0, len(n.Types))
	for _, t := range n.Types {
		nodes = append(nodes, t)
	}
	return nodes
}
func (n *IntersectionType) String() string { return typesJoin(n.Types, "&") }

func typesJoin(types []Type, sep string) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, sep)
}
