package ast

import (
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// ExpressionStatement 表达式语句
type ExpressionStatement struct {
	BaseNode
	Expr Expression `json:"expr"`
}

func (n *ExpressionStatement) statementNode()      {}
func (n *ExpressionStatement) GetChildren() []Node { return []Node{n.Expr} }
func (n *ExpressionStatement) String() string      { return n.Expr.String() + ";" }

// EchoStatement echo e1, e2, …;
type EchoStatement struct {
	BaseNode
	Values []Expression `json:"values"`
}

func (n *EchoStatement) statementNode()      {}
func (n *EchoStatement) GetChildren() []Node { return expressionsToNodes(n.Values) }
func (n *EchoStatement) String() string      { return "echo " + joinExpressions(n.Values, ", ") + ";" }

// BlockStatement { … }
type BlockStatement struct {
	BaseNode
	Statements []Statement `json:"statements"`
}

func (n *BlockStatement) statementNode()      {}
func (n *BlockStatement) GetChildren() []Node { return statementsToNodes(n.Statements) }
func (n *BlockStatement) String() string      { return blockString(n.Statements) }

// ElseIfClause elseif 分支
type ElseIfClause struct {
	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

// ElseClause else 分支
type ElseClause struct {
	Body []Statement `json:"body"`
}

// IfStatement if 语句，花括号形式与 :/endif 形式共用一个节点
type IfStatement struct {
	BaseNode
	Condition   Expression      `json:"condition"`
	Body        []Statement     `json:"body"`
	ElseIfs     []*ElseIfClause `json:"elseIfs,omitempty"`
	Else        *ElseClause     `json:"else,omitempty"`
	Alternative bool            `json:"alternative,omitempty"` // :/endif 形式
}

func (n *IfStatement) statementNode() {}
func (n *IfStatement) GetChildren() []Node {
	nodes := []Node{n.Condition}
	nodes = append(nodes, statementsToNodes(n.Body)...)
	for _, ei := range n.ElseIfs {
		nodes = append(nodes, ei.Condition)
		nodes = append(nodes, statementsToNodes(ei.Body)...)
	}
	if n.Else != nil {
		nodes = append(nodes, statementsToNodes(n.Else.Body)...)
	}
	return nodes
}
func (n *IfStatement) String() string {
	var sb strings.Builder
	sb.WriteString("if (" + n.Condition.String() + ") " + blockString(n.Body))
	for _, ei := range n.ElseIfs {
		sb.WriteString(" elseif (" + ei.Condition.String() + ") " + blockString(ei.Body))
	}
	if n.Else != nil {
		sb.WriteString(" else " + blockString(n.Else.Body))
	}
	return sb.String()
}

// WhileStatement while 循环
type WhileStatement struct {
	BaseNode
	Condition   Expression  `json:"condition"`
	Body        []Statement `json:"body"`
	Alternative bool        `json:"alternative,omitempty"`
}

func (n *WhileStatement) statementNode() {}
func (n *WhileStatement) GetChildren() []Node {
	return append([]Node{n.Condition}, statementsToNodes(n.Body)...)
}
func (n *WhileStatement) String() string {
	return "while (" + n.Condition.String() + ") " + blockString(n.Body)
}

// DoWhileStatement do-while 循环
type DoWhileStatement struct {
	BaseNode
	Body      []Statement `json:"body"`
	Condition Expression  `json:"condition"`
}

func (n *DoWhileStatement) statementNode() {}
func (n *DoWhileStatement) GetChildren() []Node {
	return append(statementsToNodes(n.Body), n.Condition)
}
func (n *DoWhileStatement) String() string {
	return "do " + blockString(n.Body) + " while (" + n.Condition.String() + ");"
}

// ForStatement for 循环，三段都允许逗号分隔的多个表达式
type ForStatement struct {
	BaseNode
	Init        []Expression `json:"init"`
	Condition   []Expression `json:"condition"`
	Loop        []Expression `json:"loop"`
	Body        []Statement  `json:"body"`
	Alternative bool         `json:"alternative,omitempty"`
}

func (n *ForStatement) statementNode() {}
func (n *ForStatement) GetChildren() []Node {
	nodes := expressionsToNodes(n.Init)
	nodes = append(nodes, expressionsToNodes(n.Condition)...)
	nodes = append(nodes, expressionsToNodes(n.Loop)...)
	return append(nodes, statementsToNodes(n.Body)...)
}
func (n *ForStatement) String() string {
	return "for (" + joinExpressions(n.Init, ", ") + "; " +
		joinExpressions(n.Condition, ", ") + "; " +
		joinExpressions(n.Loop, ", ") + ") " + blockString(n.Body)
}

// ForeachStatement foreach 循环
type ForeachStatement struct {
	BaseNode
	Iterable    Expression  `json:"iterable"`
	KeyVar      Expression  `json:"keyVar,omitempty"`
	ByRef       bool        `json:"byRef,omitempty"`
	ValueVar    Expression  `json:"valueVar"`
	Body        []Statement `json:"body"`
	Alternative bool        `json:"alternative,omitempty"`
}

func (n *ForeachStatement) statementNode() {}
func (n *ForeachStatement) GetChildren() []Node {
	nodes := []Node{n.Iterable}
	if n.KeyVar != nil {
		nodes = append(nodes, n.KeyVar)
	}
	nodes = append(nodes, n.ValueVar)
	return append(nodes, statementsToNodes(n.Body)...)
}
func (n *ForeachStatement) String() string {
	var sb strings.Builder
	sb.WriteString("foreach (" + n.Iterable.String() + " as ")
	if n.KeyVar != nil {
		sb.WriteString(n.KeyVar.String() + " => ")
	}
	if n.ByRef {
		sb.WriteString("&")
	}
	sb.WriteString(n.ValueVar.String() + ") " + blockString(n.Body))
	return sb.String()
}

// CaseClause switch 分支；Condition 为 nil 表示 default
type CaseClause struct {
	Condition Expression  `json:"condition,omitempty"`
	Body      []Statement `json:"body"`
}

func (c *CaseClause) String() string {
	head := "default:"
	if c.Condition != nil {
		head = "case " + c.Condition.String() + ":"
	}
	if len(c.Body) == 0 {
		return head
	}
	return head + "\n" + indentLines(joinStatements(c.Body, "\n"))
}

// SwitchStatement switch 语句
type SwitchStatement struct {
	BaseNode
	Condition   Expression    `json:"condition"`
	Cases       []*CaseClause `json:"cases"`
	Alternative bool          `json:"alternative,omitempty"`
}

func (n *SwitchStatement) statementNode() {}
func (n *SwitchStatement) GetChildren() []Node {
	nodes := []Node{n.Condition}
	for _, c := range n.Cases {
		if c.Condition != nil {
			nodes = append(nodes, c.Condition)
		}
		nodes = append(nodes, statementsToNodes(c.Body)...)
	}
	return nodes
}
func (n *SwitchStatement) String() string {
	parts := make([]string, 0, len(n.Cases))
	for _, c := range n.Cases {
		parts = append(parts, indentLines(c.String()))
	}
	return "switch (" + n.Condition.String() + ") {\n" + strings.Join(parts, "\n") + "\n}"
}

// BreakStatement break，可带层级
type BreakStatement struct {
	BaseNode
	Level Expression `json:"level,omitempty"`
}

func (n *BreakStatement) statementNode() {}
func (n *BreakStatement) String() string {
	if n.Level == nil {
		return "break;"
	}
	return "break " + n.Level.String() + ";"
}

// ContinueStatement continue，可带层级
type ContinueStatement struct {
	BaseNode
	Level Expression `json:"level,omitempty"`
}

func (n *ContinueStatement) statementNode() {}
func (n *ContinueStatement) String() string {
	if n.Level == nil {
		return "continue;"
	}
	return "continue " + n.Level.String() + ";"
}

// ReturnStatement return
type ReturnStatement struct {
	BaseNode
	Value Expression `json:"value,omitempty"`
}

func (n *ReturnStatement) statementNode() {}
func (n *ReturnStatement) GetChildren() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}
func (n *ReturnStatement) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}

// GlobalStatement global $a, $b;
type GlobalStatement struct {
	BaseNode
	Vars []Expression `json:"vars"`
}

func (n *GlobalStatement) statementNode()      {}
func (n *GlobalStatement) GetChildren() []Node { return expressionsToNodes(n.Vars) }
func (n *GlobalStatement) String() string      { return "global " + joinExpressions(n.Vars, ", ") + ";" }

// StaticVar 静态变量声明项
type StaticVar struct {
	Var     *Variable  `json:"var"`
	Default Expression `json:"default,omitempty"`
}

func (v *StaticVar) String() string {
	if v.Default == nil {
		return v.Var.String()
	}
	return v.Var.String() + " = " + v.Default.String()
}

// StaticStatement static $a = 1, $b;
type StaticStatement struct {
	BaseNode
	Vars []*StaticVar `json:"vars"`
}

func (n *StaticStatement) statementNode() {}
func (n *StaticStatement) String() string {
	parts := make([]string, 0, len(n.Vars))
	for _, v := range n.Vars {
		parts = append(parts, v.String())
	}
	return "static " + strings.Join(parts, ", ") + ";"
}

// InlineHTMLStatement 代码区之外的字面内容
type InlineHTMLStatement struct {
	BaseNode
	Value lexer.ByteString `json:"value"`
}

func (n *InlineHTMLStatement) statementNode() {}
func (n *InlineHTMLStatement) String() string { return n.Value.String() }

// CommentStatement 注释。解析器默认收集后丢弃，该形态用于需要保留注释的消费方
type CommentStatement struct {
	BaseNode
	Value       lexer.ByteString `json:"value"`
	CommentKind lexer.TokenType  `json:"commentKind"`
}

func (n *CommentStatement) statementNode() {}
func (n *CommentStatement) String() string { return n.Value.String() }

// GotoStatement goto label;
type GotoStatement struct {
	BaseNode
	Label *Identifier `json:"label"`
}

func (n *GotoStatement) statementNode() {}
func (n *GotoStatement) String() string { return "goto " + n.Label.String() + ";" }

// LabelStatement label:
type LabelStatement struct {
	BaseNode
	Name *Identifier `json:"name"`
}

func (n *LabelStatement) statementNode() {}
func (n *LabelStatement) String() string { return n.Name.String() + ":" }

// DeclareItem declare 指令项
type DeclareItem struct {
	Key   *Identifier `json:"key"`
	Value Expression  `json:"value"`
}

func (d *DeclareItem) String() string {
	return d.Key.String() + "=" + d.Value.String()
}

// DeclareStatement declare(strict_types=1); 或带块形式
type DeclareStatement struct {
	BaseNode
	Items       []*DeclareItem `json:"items"`
	Body        []Statement    `json:"body,omitempty"`
	HasBody     bool           `json:"hasBody,omitempty"`
	Alternative bool           `json:"alternative,omitempty"`
}

func (n *DeclareStatement) statementNode()      {}
func (n *DeclareStatement) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *DeclareStatement) String() string {
	parts := make([]string, 0, len(n.Items))
	for _, d := range n.Items {
		parts = append(parts, d.String())
	}
	head := "declare(" + strings.Join(parts, ", ") + ")"
	if n.HasBody {
		return head + " " + blockString(n.Body)
	}
	return head + ";"
}

// CatchClause catch (T1|T2 $e) { … }
type CatchClause struct {
	Types []*Identifier `json:"types"`
	Var   *Variable     `json:"var,omitempty"`
	Body  []Statement   `json:"body"`
}

func (c *CatchClause) String() string {
	var sb strings.Builder
	sb.WriteString("catch (" + identifiersJoin(c.Types, "|"))
	if c.Var != nil {
		sb.WriteString(" " + c.Var.String())
	}
	sb.WriteString(") " + blockString(c.Body))
	return sb.String()
}

// TryStatement try 语句；Catches 与 Finally 至少有其一
type TryStatement struct {
	BaseNode
	Body       []Statement    `json:"body"`
	Catches    []*CatchClause `json:"catches"`
	Finally    []Statement    `json:"finally,omitempty"`
	HasFinally bool           `json:"hasFinally,omitempty"`
}

func (n *TryStatement) statementNode() {}
func (n *TryStatement) GetChildren() []Node {
	nodes := statementsToNodes(n.Body)
	for _, c := range n.Catches {
		nodes = append(nodes, statementsToNodes(c.Body)...)
	}
	return append(nodes, statementsToNodes(n.Finally)...)
}
func (n *TryStatement) String() string {
	var sb strings.Builder
	sb.WriteString("try " + blockString(n.Body))
	for _, c := range n.Catches {
		sb.WriteString(" " + c.String())
	}
	if n.HasFinally {
		sb.WriteString(" finally " + blockString(n.Finally))
	}
	return sb.String()
}

// ThrowStatement throw expr;
type ThrowStatement struct {
	BaseNode
	Value Expression `json:"value"`
}

func (n *ThrowStatement) statementNode()      {}
func (n *ThrowStatement) GetChildren() []Node { return []Node{n.Value} }
func (n *ThrowStatement) String() string      { return "throw " + n.Value.String() + ";" }

// UnsetStatement unset(...);
type UnsetStatement struct {
	BaseNode
	Vars []Expression `json:"vars"`
}

func (n *UnsetStatement) statementNode()      {}
func (n *UnsetStatement) GetChildren() []Node { return expressionsToNodes(n.Vars) }
func (n *UnsetStatement) String() string      { return "unset(" + joinExpressions(n.Vars, ", ") + ");" }

// HaltCompilerStatement __halt_compiler();
type HaltCompilerStatement struct {
	BaseNode
}

func (n *HaltCompilerStatement) statementNode() {}
func (n *HaltCompilerStatement) String() string { return "__halt_compiler();" }

// NoopStatement 孤立的分号
type NoopStatement struct {
	BaseNode
}

func (n *NoopStatement) statementNode() {}
func (n *NoopStatement) String() string { return ";" }

// NamespaceStatement namespace X; 或 namespace X { … }
type NamespaceStatement struct {
	BaseNode
	Name   *Identifier `json:"name,omitempty"`
	Body   []Statement `json:"body,omitempty"`
	Braced bool        `json:"braced,omitempty"`
}

func (n *NamespaceStatement) statementNode()      {}
func (n *NamespaceStatement) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *NamespaceStatement) String() string {
	head := "namespace"
	if n.Name != nil {
		head += " " + n.Name.String()
	}
	if n.Braced {
		return head + " " + blockString(n.Body)
	}
	return head + ";"
}

// UseKind use 导入的种类
type UseKind int

const (
	UseNormal UseKind = iota
	UseFunction
	UseConst
)

func (k UseKind) String() string {
	switch k {
	case UseFunction:
		return "function"
	case UseConst:
		return "const"
	}
	return ""
}

// UseClause 单个导入项
type UseClause struct {
	UseKind UseKind     `json:"useKind"` // 组导入中允许逐项指定
	Name    *Identifier `json:"name"`
	Alias   *Identifier `json:"alias,omitempty"`
}

func (u *UseClause) String() string {
	var sb strings.Builder
	if u.UseKind != UseNormal {
		sb.WriteString(u.UseKind.String() + " ")
	}
	sb.WriteString(u.Name.String())
	if u.Alias != nil {
		sb.WriteString(" as " + u.Alias.String())
	}
	return sb.String()
}

// UseStatement use 导入；Group 为真时是 prefix\{a, b as c} 组导入
type UseStatement struct {
	BaseNode
	UseKind UseKind      `json:"useKind"`
	Prefix  *Identifier  `json:"prefix,omitempty"`
	Clauses []*UseClause `json:"clauses"`
	Group   bool         `json:"group,omitempty"`
}

func (n *UseStatement) statementNode() {}
func (n *UseStatement) String() string {
	var sb strings.Builder
	sb.WriteString("use ")
	if n.UseKind != UseNormal {
		sb.WriteString(n.UseKind.String() + " ")
	}
	parts := make([]string, 0, len(n.Clauses))
	for _, c := range n.Clauses {
		parts = append(parts, c.String())
	}
	if n.Group {
		sb.WriteString(n.Prefix.String() + "\\{" + strings.Join(parts, ", ") + "}")
	} else {
		sb.WriteString(strings.Join(parts, ", "))
	}
	sb.WriteString(";")
	return sb.String()
}

// ConstantDecl 常量声明项
type ConstantDecl struct {
	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func (c *ConstantDecl) String() string {
	return c.Name.String() + " = " + c.Value.String()
}

// ConstStatement const A = 1, B = 2;
type ConstStatement struct {
	BaseNode
	Consts []*ConstantDecl `json:"consts"`
}

func (n *ConstStatement) statementNode() {}
func (n *ConstStatement) String() string {
	parts := make([]string, 0, len(n.Consts))
	for _, c := range n.Consts {
		parts = append(parts, c.String())
	}
	return "const " + strings.Join(parts, ", ") + ";"
}

func identifiersJoin(ids []*Identifier, sep string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, sep)
}

func identifiersString(ids []*Identifier) string {
	return identifiersJoin(ids, ", ")
}
