package ast

import (
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// ============= 访问与取值 =============

// PropertyFetch 属性访问 $obj->prop / $obj?->prop
type PropertyFetch struct {
	BaseNode
	Object   Expression `json:"object"`
	Property Expression `json:"property"` // Identifier、Variable 或 {expr}
	Nullsafe bool       `json:"nullsafe"`
}

func (n *PropertyFetch) expressionNode()     {}
func (n *PropertyFetch) GetChildren() []Node { return []Node{n.Object, n.Property} }
func (n *PropertyFetch) String() string {
	op := "->"
	if n.Nullsafe {
		op = "?->"
	}
	return n.Object.String() + op + n.Property.String()
}

// StaticPropertyFetch 静态属性访问 C::$prop
type StaticPropertyFetch struct {
	BaseNode
	Class    Expression `json:"class"`
	Property Expression `json:"property"`
}

func (n *StaticPropertyFetch) expressionNode()     {}
func (n *StaticPropertyFetch) GetChildren() []Node { return []Node{n.Class, n.Property} }
func (n *StaticPropertyFetch) String() string {
	return n.Class.String() + "::" + n.Property.String()
}

// ClassConstFetch 类常量访问 C::CONST
type ClassConstFetch struct {
	BaseNode
	Class    Expression `json:"class"`
	Constant Expression `json:"constant"`
}

func (n *ClassConstFetch) expressionNode()     {}
func (n *ClassConstFetch) GetChildren() []Node { return []Node{n.Class, n.Constant} }
func (n *ClassConstFetch) String() string {
	return n.Class.String() + "::" + n.Constant.String()
}

// IndexExpression 数组下标 $a[0]，Index 为 nil 时表示追加形式 $a[]
type IndexExpression struct {
	BaseNode
	Array Expression `json:"array"`
	Index Expression `json:"index,omitempty"`
}

func (n *IndexExpression) expressionNode() {}
func (n *IndexExpression) GetChildren() []Node {
	if n.Index == nil {
		return []Node{n.Array}
	}
	return []Node{n.Array, n.Index}
}
func (n *IndexExpression) String() string {
	if n.Index == nil {
		return n.Array.String() + "[]"
	}
	return n.Array.String() + "[" + n.Index.String() + "]"
}

// ============= 调用 =============

// Argument 实参：可带名字（命名实参）或 ... 展开
type Argument struct {
	Name   lexer.ByteString `json:"name,omitempty"`
	Unpack bool             `json:"unpack,omitempty"`
	Value  Expression       `json:"value"`
}

func (a *Argument) String() string {
	var sb strings.Builder
	if len(a.Name) > 0 {
		sb.WriteString(a.Name.String())
		sb.WriteString(": ")
	}
	if a.Unpack {
		sb.WriteString("...")
	}
	sb.WriteString(a.Value.String())
	return sb.String()
}

func argsString(args []*Argument, firstClassCallable bool) string {
	if firstClassCallable {
		return "(...)"
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func argsToNodes(args []*Argument) []Node {
	nodes := make([]Node, 0, len(args))
	for _, a := range args {
		nodes = append(nodes, a.Value)
	}
	return nodes
}

// FunctionCall 函数调用，Target 可以是名字或任意可调用表达式
type FunctionCall struct {
	BaseNode
	Target             Expression  `json:"target"`
	Args               []*Argument `json:"args"`
	FirstClassCallable bool        `json:"firstClassCallable,omitempty"`
}

func (n *FunctionCall) expressionNode() {}
func (n *FunctionCall) GetChildren() []Node {
	return append([]Node{n.Target}, argsToNodes(n.Args)...)
}
func (n *FunctionCall) String() string {
	return n.Target.String() + argsString(n.Args, n.FirstClassCallable)
}

// MethodCall 方法调用 $obj->m() / $obj?->m()
type MethodCall struct {
	BaseNode
	Object             Expression  `json:"object"`
	Method             Expression  `json:"method"`
	Args               []*Argument `json:"args"`
	Nullsafe           bool        `json:"nullsafe,omitempty"`
	FirstClassCallable bool        `json:"firstClassCallable,omitempty"`
}

func (n *MethodCall) expressionNode() {}
func (n *MethodCall) GetChildren() []Node {
	return append([]Node{n.Object, n.Method}, argsToNodes(n.Args)...)
}
func (n *MethodCall) String() string {
	op := "->"
	if n.Nullsafe {
		op = "?->"
	}
	return n.Object.String() + op + n.Method.String() + argsString(n.Args, n.FirstClassCallable)
}

// StaticCall 静态方法调用 C::m()，Method 为 {expr} 时是强制调用形式
type StaticCall struct {
	BaseNode
	Class              Expression  `json:"class"`
	Method             Expression  `json:"method"`
	Args               []*Argument `json:"args"`
	FirstClassCallable bool        `json:"firstClassCallable,omitempty"`
}

func (n *StaticCall) expressionNode() {}
func (n *StaticCall) GetChildren() []Node {
	return append([]Node{n.Class, n.Method}, argsToNodes(n.Args)...)
}
func (n *StaticCall) String() string {
	return n.Class.String() + "::" + n.Method.String() + argsString(n.Args, n.FirstClassCallable)
}

// NewExpression 对象实例化
type NewExpression struct {
	BaseNode
	Class Expression  `json:"class"`
	Args  []*Argument `json:"args"`
}

func (n *NewExpression) expressionNode() {}
func (n *NewExpression) GetChildren() []Node {
	return append([]Node{n.Class}, argsToNodes(n.Args)...)
}
func (n *NewExpression) String() string {
	return "new " + n.Class.String() + argsString(n.Args, false)
}

// AnonymousClass 匿名类 new class(...) extends B implements I { … }
type AnonymousClass struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Args       []*Argument       `json:"args"`
	Extends    *Identifier       `json:"extends,omitempty"`
	Implements []*Identifier     `json:"implements,omitempty"`
	Body       []Statement       `json:"body"`
}

func (n *AnonymousClass) expressionNode() {}
func (n *AnonymousClass) GetChildren() []Node {
	return append(argsToNodes(n.Args), statementsToNodes(n.Body)...)
}
func (n *AnonymousClass) String() string {
	var sb strings.Builder
	sb.WriteString("new class")
	sb.WriteString(argsString(n.Args, false))
	if n.Extends != nil {
		sb.WriteString(" extends ")
		sb.WriteString(n.Extends.String())
	}
	if len(n.Implements) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(identifiersString(n.Implements))
	}
	sb.WriteString(" ")
	sb.WriteString(blockString(n.Body))
	return sb.String()
}

// ============= 操作符 =============

// PrefixExpression 前缀操作：+ - ! ~ ++ --
type PrefixExpression struct {
	BaseNode
	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func (n *PrefixExpression) expressionNode()     {}
func (n *PrefixExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *PrefixExpression) String() string      { return n.Operator + n.Operand.String() }

// PostfixExpression 后缀操作：++ --
type PostfixExpression struct {
	BaseNode
	Operand  Expression `json:"operand"`
	Operator string     `json:"operator"`
}

func (n *PostfixExpression) expressionNode()     {}
func (n *PostfixExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *PostfixExpression) String() string      { return n.Operand.String() + n.Operator }

// CastExpression 类型转换。Raw 保留源码拼写（如 "( int )"）
type CastExpression struct {
	BaseNode
	CastType string           `json:"castType"` // int bool float string array object unset
	Raw      lexer.ByteString `json:"raw"`
	Operand  Expression       `json:"operand"`
}

func (n *CastExpression) expressionNode()     {}
func (n *CastExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *CastExpression) String() string      { return "(" + n.CastType + ")" + n.Operand.String() }

// ErrorSuppressExpression @expr
type ErrorSuppressExpression struct {
	BaseNode
	Operand Expression `json:"operand"`
}

func (n *ErrorSuppressExpression) expressionNode()     {}
func (n *ErrorSuppressExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *ErrorSuppressExpression) String() string      { return "@" + n.Operand.String() }

// PrintExpression print expr
type PrintExpression struct {
	BaseNode
	Operand Expression `json:"operand"`
}

func (n *PrintExpression) expressionNode()     {}
func (n *PrintExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *PrintExpression) String() string      { return "print " + n.Operand.String() }

// BinaryExpression 中缀二元操作
type BinaryExpression struct {
	BaseNode
	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func (n *BinaryExpression) expressionNode()     {}
func (n *BinaryExpression) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// AssignmentExpression 赋值族：= 与所有复合赋值；ByRef 表示 =& 引用赋值
type AssignmentExpression struct {
	BaseNode
	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
	ByRef    bool       `json:"byRef,omitempty"`
}

func (n *AssignmentExpression) expressionNode()     {}
func (n *AssignmentExpression) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *AssignmentExpression) String() string {
	op := n.Operator
	if n.ByRef {
		op = "=&"
	}
	return n.Left.String() + " " + op + " " + n.Right.String()
}

// TernaryExpression 三目与短三目（Then 为 nil）
type TernaryExpression struct {
	BaseNode
	Condition Expression `json:"condition"`
	Then      Expression `json:"then,omitempty"`
	Else      Expression `json:"else"`
}

func (n *TernaryExpression) expressionNode() {}
func (n *TernaryExpression) GetChildren() []Node {
	if n.Then == nil {
		return []Node{n.Condition, n.Else}
	}
	return []Node{n.Condition, n.Then, n.Else}
}
func (n *TernaryExpression) String() string {
	if n.Then == nil {
		return n.Condition.String() + " ?: " + n.Else.String()
	}
	return n.Condition.String() + " ? " + n.Then.String() + " : " + n.Else.String()
}

// CoalesceExpression null 合并 a ?? b
type CoalesceExpression struct {
	BaseNode
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func (n *CoalesceExpression) expressionNode()     {}
func (n *CoalesceExpression) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *CoalesceExpression) String() string {
	return n.Left.String() + " ?? " + n.Right.String()
}

// YieldExpression yield / yield k => v
type YieldExpression struct {
	BaseNode
	Key   Expression `json:"key,omitempty"`
	Value Expression `json:"value,omitempty"`
}

func (n *YieldExpression) expressionNode() {}
func (n *YieldExpression) GetChildren() []Node {
	var children []Node
	if n.Key != nil {
		children = append(children, n.Key)
	}
	if n.Value != nil {
		children = append(children, n.Value)
	}
	return children
}
func (n *YieldExpression) String() string {
	switch {
	case n.Key != nil:
		return "yield " + n.Key.String() + " => " + n.Value.String()
	case n.Value != nil:
		return "yield " + n.Value.String()
	}
	return "yield"
}

// YieldFromExpression yield from expr
type YieldFromExpression struct {
	BaseNode
	Value Expression `json:"value"`
}

func (n *YieldFromExpression) expressionNode()     {}
func (n *YieldFromExpression) GetChildren() []Node { return []Node{n.Value} }
func (n *YieldFromExpression) String() string      { return "yield from " + n.Value.String() }

// ThrowExpression throw 作为表达式
type ThrowExpression struct {
	BaseNode
	Value Expression `json:"value"`
}

func (n *ThrowExpression) expressionNode()     {}
func (n *ThrowExpression) GetChildren() []Node { return []Node{n.Value} }
func (n *ThrowExpression) String() string      { return "throw " + n.Value.String() }

// CloneExpression clone expr
type CloneExpression struct {
	BaseNode
	Operand Expression `json:"operand"`
}

func (n *CloneExpression) expressionNode()     {}
func (n *CloneExpression) GetChildren() []Node { return []Node{n.Operand} }
func (n *CloneExpression) String() string      { return "clone " + n.Operand.String() }

// IncludeExpression include/require 族。既是表达式也可独立成句
type IncludeExpression struct {
	BaseNode
	IncludeKind string     `json:"includeKind"` // include include_once require require_once
	Path        Expression `json:"path"`
}

func (n *IncludeExpression) expressionNode()     {}
func (n *IncludeExpression) statementNode()      {}
func (n *IncludeExpression) GetChildren() []Node { return []Node{n.Path} }
func (n *IncludeExpression) String() string      { return n.IncludeKind + " " + n.Path.String() }

// ============= 结构化表达式 =============

// ArrayItem 数组元素：可选键、引用标记、... 展开。Unpack 为真时 Key 必为 nil
type ArrayItem struct {
	Key    Expression `json:"key,omitempty"`
	ByRef  bool       `json:"byRef,omitempty"`
	Unpack bool       `json:"unpack,omitempty"`
	Value  Expression `json:"value"`
}

func (a *ArrayItem) String() string {
	var sb strings.Builder
	if a.Unpack {
		sb.WriteString("...")
	}
	if a.Key != nil {
		sb.WriteString(a.Key.String())
		sb.WriteString(" => ")
	}
	if a.ByRef {
		sb.WriteString("&")
	}
	if a.Value != nil {
		sb.WriteString(a.Value.String())
	}
	return sb.String()
}

func itemsString(items []*ArrayItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, ", ")
}

func itemsToNodes(items []*ArrayItem) []Node {
	var nodes []Node
	for _, it := range items {
		if it.Key != nil {
			nodes = append(nodes, it.Key)
		}
		if it.Value != nil {
			nodes = append(nodes, it.Value)
		}
	}
	return nodes
}

// ArrayExpression 数组字面量，Short 区分 [] 与 array() 形式
type ArrayExpression struct {
	BaseNode
	Items []*ArrayItem `json:"items"`
	Short bool         `json:"short"`
}

func (n *ArrayExpression) expressionNode()     {}
func (n *ArrayExpression) GetChildren() []Node { return itemsToNodes(n.Items) }
func (n *ArrayExpression) String() string {
	if n.Short {
		return "[" + itemsString(n.Items) + "]"
	}
	return "array(" + itemsString(n.Items) + ")"
}

// ListExpression list(...) 解构
type ListExpression struct {
	BaseNode
	Items []*ArrayItem `json:"items"`
}

func (n *ListExpression) expressionNode()     {}
func (n *ListExpression) GetChildren() []Node { return itemsToNodes(n.Items) }
func (n *ListExpression) String() string      { return "list(" + itemsString(n.Items) + ")" }

// MatchArm match 分支；Conditions 为 nil 表示 default 分支
type MatchArm struct {
	Conditions []Expression `json:"conditions,omitempty"`
	Body       Expression   `json:"body"`
}

func (a *MatchArm) String() string {
	if a.Conditions == nil {
		return "default => " + a.Body.String()
	}
	return joinExpressions(a.Conditions, ", ") + " => " + a.Body.String()
}

// IsDefault 是否 default 分支
func (a *MatchArm) IsDefault() bool {
	return a.Conditions == nil
}

// MatchExpression match 表达式，default 分支至多一个
type MatchExpression struct {
	BaseNode
	Condition Expression  `json:"condition"`
	Arms      []*MatchArm `json:"arms"`
}

func (n *MatchExpression) expressionNode() {}
func (n *MatchExpression) GetChildren() []Node {
	nodes := []Node{n.Condition}
	for _, arm := range n.Arms {
		nodes = append(nodes, expressionsToNodes(arm.Conditions)...)
		nodes = append(nodes, arm.Body)
	}
	return nodes
}
func (n *MatchExpression) String() string {
	parts := make([]string, 0, len(n.Arms))
	for _, arm := range n.Arms {
		parts = append(parts, arm.String())
	}
	return "match (" + n.Condition.String() + ") {" + strings.Join(parts, ", ") + "}"
}

// ClosureUse 闭包 use 捕获
type ClosureUse struct {
	Name  lexer.ByteString `json:"name"`
	ByRef bool             `json:"byRef,omitempty"`
}

func (u *ClosureUse) String() string {
	if u.ByRef {
		return "&$" + u.Name.String()
	}
	return "$" + u.Name.String()
}

// ClosureExpression 匿名函数
type ClosureExpression struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Static     bool              `json:"static,omitempty"`
	ByRef      bool              `json:"byRef,omitempty"`
	Params     []*Parameter      `json:"params"`
	Uses       []*ClosureUse     `json:"uses,omitempty"`
	ReturnType Type              `json:"returnType,omitempty"`
	Body       []Statement       `json:"body"`
}

func (n *ClosureExpression) expressionNode() {}
func (n *ClosureExpression) GetChildren() []Node {
	return statementsToNodes(n.Body)
}
func (n *ClosureExpression) String() string {
	var sb strings.Builder
	if n.Static {
		sb.WriteString("static ")
	}
	sb.WriteString("function ")
	if n.ByRef {
		sb.WriteString("&")
	}
	sb.WriteString(paramsString(n.Params))
	if len(n.Uses) > 0 {
		uses := make([]string, 0, len(n.Uses))
		for _, u := range n.Uses {
			uses = append(uses, u.String())
		}
		sb.WriteString(" use (" + strings.Join(uses, ", ") + ")")
	}
	if n.ReturnType != nil {
		sb.WriteString(": " + n.ReturnType.String())
	}
	sb.WriteString(" ")
	sb.WriteString(blockString(n.Body))
	return sb.String()
}

// ArrowFunctionExpression 箭头函数 fn(...) => expr
type ArrowFunctionExpression struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Static     bool              `json:"static,omitempty"`
	ByRef      bool              `json:"byRef,omitempty"`
	Params     []*Parameter      `json:"params"`
	ReturnType Type              `json:"returnType,omitempty"`
	Body       Expression        `json:"body"`
}

func (n *ArrowFunctionExpression) expressionNode()     {}
func (n *ArrowFunctionExpression) GetChildren() []Node { return []Node{n.Body} }
func (n *ArrowFunctionExpression) String() string {
	var sb strings.Builder
	if n.Static {
		sb.WriteString("static ")
	}
	sb.WriteString("fn ")
	if n.ByRef {
		sb.WriteString("&")
	}
	sb.WriteString(paramsString(n.Params))
	if n.ReturnType != nil {
		sb.WriteString(": " + n.ReturnType.String())
	}
	sb.WriteString(" => ")
	sb.WriteString(n.Body.String())
	return sb.String()
}

// IssetExpression isset(...)
type IssetExpression struct {
	BaseNode
	Vars []Expression `json:"vars"`
}

func (n *IssetExpression) expressionNode()     {}
func (n *IssetExpression) GetChildren() []Node { return expressionsToNodes(n.Vars) }
func (n *IssetExpression) String() string      { return "isset(" + joinExpressions(n.Vars, ", ") + ")" }

// EmptyExpression empty(expr)
type EmptyExpression struct {
	BaseNode
	Expr Expression `json:"expr"`
}

func (n *EmptyExpression) expressionNode()     {}
func (n *EmptyExpression) GetChildren() []Node { return []Node{n.Expr} }
func (n *EmptyExpression) String() string      { return "empty(" + n.Expr.String() + ")" }

// EvalExpression eval(expr)
type EvalExpression struct {
	BaseNode
	Expr Expression `json:"expr"`
}

func (n *EvalExpression) expressionNode()     {}
func (n *EvalExpression) GetChildren() []Node { return []Node{n.Expr} }
func (n *EvalExpression) String() string      { return "eval(" + n.Expr.String() + ")" }

// ExitExpression exit / die，可带状态表达式
type ExitExpression struct {
	BaseNode
	Expr Expression `json:"expr,omitempty"`
}

func (n *ExitExpression) expressionNode() {}
func (n *ExitExpression) GetChildren() []Node {
	if n.Expr == nil {
		return nil
	}
	return []Node{n.Expr}
}
func (n *ExitExpression) String() string {
	if n.Expr == nil {
		return "exit"
	}
	return "exit(" + n.Expr.String() + ")"
}
