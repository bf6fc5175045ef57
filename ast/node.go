package ast

import (
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// Node 表示抽象语法树中的节点接口
type Node interface {
	// GetKind 返回节点的 AST Kind 类型
	GetKind() ASTKind
	// GetPosition 返回节点在源代码中的位置
	GetPosition() lexer.Position
	// GetSpan 返回节点覆盖的字节区间
	GetSpan() lexer.Span
	// GetChildren 返回子节点
	GetChildren() []Node
	// String 返回节点的规范字符串表示
	String() string
}

// Statement 表示语句节点
type Statement interface {
	Node
	statementNode()
}

// Expression 表示表达式节点
type Expression interface {
	Node
	expressionNode()
}

// Type 表示类型标注节点
type Type interface {
	Node
	typeNode()
}

// BaseNode 基础节点，提供公共字段和方法
type BaseNode struct {
	Kind     ASTKind        `json:"kind"`
	Position lexer.Position `json:"position"`
	Span     lexer.Span     `json:"span"`
}

// NewBaseNode 由起始 token 构造基础节点
func NewBaseNode(kind ASTKind, tok lexer.Token) BaseNode {
	return BaseNode{Kind: kind, Position: tok.Position, Span: tok.Span}
}

// GetKind 返回节点的 AST Kind 类型
func (b *BaseNode) GetKind() ASTKind {
	return b.Kind
}

// GetPosition 返回节点位置
func (b *BaseNode) GetPosition() lexer.Position {
	return b.Position
}

// GetSpan 返回节点字节区间
func (b *BaseNode) GetSpan() lexer.Span {
	return b.Span
}

// GetChildren 返回子节点，叶子节点使用该默认实现
func (b *BaseNode) GetChildren() []Node {
	return nil
}

// String 默认实现，具体类型应当重写
func (b *BaseNode) String() string {
	return b.Kind.String()
}

// ============= PROGRAM =============

// Program 表示整个 PHP 程序
type Program struct {
	BaseNode
	Statements []Statement `json:"statements"`
}

func (p *Program) GetChildren() []Node {
	children := make([]Node, 0, len(p.Statements))
	for _, stmt := range p.Statements {
		children = append(children, stmt)
	}
	return children
}

func (p *Program) String() string {
	return joinStatements(p.Statements, "\n")
}

// ============= 字面量 =============

// IntegerLiteral 整数字面量，保留源码中的原始字节（含 _ 分隔符与进制前缀）
type IntegerLiteral struct {
	BaseNode
	Raw lexer.ByteString `json:"raw"`
}

func (n *IntegerLiteral) expressionNode() {}
func (n *IntegerLiteral) String() string  { return n.Raw.String() }

// FloatLiteral 浮点数字面量
type FloatLiteral struct {
	BaseNode
	Raw lexer.ByteString `json:"raw"`
}

func (n *FloatLiteral) expressionNode() {}
func (n *FloatLiteral) String() string  { return n.Raw.String() }

// StringLiteral 无插值的字符串常量。Raw 保留含引号的原始字节，
// Value 是解码后的内容
type StringLiteral struct {
	BaseNode
	Raw   lexer.ByteString `json:"raw"`
	Value lexer.ByteString `json:"value"`
}

func (n *StringLiteral) expressionNode() {}
func (n *StringLiteral) String() string  { return n.Raw.String() }

// BooleanLiteral true / false
type BooleanLiteral struct {
	BaseNode
	Value bool `json:"value"`
}

func (n *BooleanLiteral) expressionNode() {}
func (n *BooleanLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// NullLiteral null
type NullLiteral struct {
	BaseNode
}

func (n *NullLiteral) expressionNode() {}
func (n *NullLiteral) String() string  { return "null" }

// MagicConstant __LINE__ 一族
type MagicConstant struct {
	BaseNode
	Name lexer.ByteString `json:"name"`
}

func (n *MagicConstant) expressionNode() {}
func (n *MagicConstant) String() string  { return n.Name.String() }

// ============= 字符串插值 =============

// StringPart 插值字符串的组成部分：字面片段或嵌入表达式
type StringPart interface {
	Node
	stringPartNode()
}

// LiteralStringPart 字面片段，内容已解码
type LiteralStringPart struct {
	BaseNode
	Value lexer.ByteString `json:"value"`
}

func (n *LiteralStringPart) stringPartNode() {}
func (n *LiteralStringPart) String() string  { return n.Value.String() }

// ExpressionStringPart 嵌入表达式
type ExpressionStringPart struct {
	BaseNode
	Expr   Expression `json:"expr"`
	Braced bool       `json:"braced"` // {$expr} 或 ${…} 形式
}

func (n *ExpressionStringPart) stringPartNode()     {}
func (n *ExpressionStringPart) GetChildren() []Node { return []Node{n.Expr} }
func (n *ExpressionStringPart) String() string {
	if n.Braced {
		return "{" + n.Expr.String() + "}"
	}
	return n.Expr.String()
}

// InterpolatedString 双引号插值字符串
type InterpolatedString struct {
	BaseNode
	Parts []StringPart `json:"parts"`
}

func (n *InterpolatedString) expressionNode() {}
func (n *InterpolatedString) GetChildren() []Node {
	children := make([]Node, 0, len(n.Parts))
	for _, p := range n.Parts {
		children = append(children, p)
	}
	return children
}
func (n *InterpolatedString) String() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, p := range n.Parts {
		sb.WriteString(p.String())
	}
	sb.WriteByte('"')
	return sb.String()
}

// HeredocString heredoc 字面量
type HeredocString struct {
	BaseNode
	Label      lexer.ByteString               `json:"label"`
	Parts      []StringPart                   `json:"parts"`
	IndentKind lexer.DocStringIndentationKind `json:"indentKind"`
	Indent     int                            `json:"indent"`
}

func (n *HeredocString) expressionNode() {}
func (n *HeredocString) GetChildren() []Node {
	children := make([]Node, 0, len(n.Parts))
	for _, p := range n.Parts {
		children = append(children, p)
	}
	return children
}
func (n *HeredocString) String() string {
	var sb strings.Builder
	sb.WriteString("<<<")
	sb.WriteString(n.Label.String())
	sb.WriteByte('\n')
	for _, p := range n.Parts {
		sb.WriteString(p.String())
	}
	sb.WriteByte('\n')
	sb.WriteString(n.Label.String())
	return sb.String()
}

// NowdocString nowdoc 字面量，内容不插值不转义
type NowdocString struct {
	BaseNode
	Label      lexer.ByteString               `json:"label"`
	Value      lexer.ByteString               `json:"value"`
	IndentKind lexer.DocStringIndentationKind `json:"indentKind"`
	Indent     int                            `json:"indent"`
}

func (n *NowdocString) expressionNode() {}
func (n *NowdocString) String() string {
	return "<<<'" + n.Label.String() + "'\n" + n.Value.String() + "\n" + n.Label.String()
}

// ============= 变量与名字 =============

// Variable 命名变量，Name 不含 $ 前缀
type Variable struct {
	BaseNode
	Name lexer.ByteString `json:"name"`
}

func (n *Variable) expressionNode() {}
func (n *Variable) String() string  { return "$" + n.Name.String() }

// DynamicVariable 动态变量 ${expr} 或 $$var
type DynamicVariable struct {
	BaseNode
	Expr Expression `json:"expr"`
}

func (n *DynamicVariable) expressionNode()     {}
func (n *DynamicVariable) GetChildren() []Node { return []Node{n.Expr} }
func (n *DynamicVariable) String() string      { return "${" + n.Expr.String() + "}" }

// Identifier 名字：非限定、限定（含 \）或完全限定（\ 开头）。
// 在表达式位置即常量引用
type Identifier struct {
	BaseNode
	Value lexer.ByteString `json:"value"`
}

func (n *Identifier) expressionNode() {}
func (n *Identifier) String() string  { return n.Value.String() }

// ============= 内部工具 =============

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}

func joinExpressions(exprs []Expression, sep string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, sep)
}

func statementsToNodes(stmts []Statement) []Node {
	nodes := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, s)
	}
	return nodes
}

func expressionsToNodes(exprs []Expression) []Node {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, e)
	}
	return nodes
}

// blockString 渲染花括号块
func blockString(stmts []Statement) string {
	if len(stmts) == 0 {
		return "{\n}"
	}
	return "{\n" + indentLines(joinStatements(stmts, "\n")) + "\n}"
}

func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}
