package ast

import (
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// Attribute 单个属性 Attr(args)
type Attribute struct {
	Name *Identifier `json:"name"`
	Args []*Argument `json:"args,omitempty"`
}

func (a *Attribute) String() string {
	if len(a.Args) == 0 {
		return a.Name.String()
	}
	return a.Name.String() + argsString(a.Args, false)
}

// AttributeGroup 一组属性 #[A, B(1)]
type AttributeGroup struct {
	Attributes []*Attribute `json:"attributes"`
}

func (g *AttributeGroup) String() string {
	parts := make([]string, 0, len(g.Attributes))
	for _, a := range g.Attributes {
		parts = append(parts, a.String())
	}
	return "#[" + strings.Join(parts, ", ") + "]"
}

func attributesString(groups []*AttributeGroup) string {
	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(g.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Parameter 形参。Modifiers 非空时是构造器属性提升
type Parameter struct {
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers,omitempty"`
	Type       Type              `json:"type,omitempty"`
	ByRef      bool              `json:"byRef,omitempty"`
	Variadic   bool              `json:"variadic,omitempty"`
	Name       lexer.ByteString  `json:"name"`
	Default    Expression        `json:"default,omitempty"`
}

func (p *Parameter) String() string {
	var sb strings.Builder
	if len(p.Modifiers) > 0 {
		sb.WriteString(strings.Join(p.Modifiers, " ") + " ")
	}
	if p.Type != nil {
		sb.WriteString(p.Type.String() + " ")
	}
	if p.ByRef {
		sb.WriteString("&")
	}
	if p.Variadic {
		sb.WriteString("...")
	}
	sb.WriteString("$" + p.Name.String())
	if p.Default != nil {
		sb.WriteString(" = " + p.Default.String())
	}
	return sb.String()
}

func paramsString(params []*Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FunctionDeclaration 具名函数声明
type FunctionDeclaration struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	ByRef      bool              `json:"byRef,omitempty"`
	Name       *Identifier       `json:"name"`
	Params     []*Parameter      `json:"params"`
	ReturnType Type              `json:"returnType,omitempty"`
	Body       []Statement       `json:"body"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *FunctionDeclaration) statementNode()      {}
func (n *FunctionDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *FunctionDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	sb.WriteString("function ")
	if n.ByRef {
		sb.WriteString("&")
	}
	sb.WriteString(n.Name.String())
	sb.WriteString(paramsString(n.Params))
	if n.ReturnType != nil {
		sb.WriteString(": " + n.ReturnType.String())
	}
	sb.WriteString(" " + blockString(n.Body))
	return sb.String()
}

// ClassDeclaration 类声明
type ClassDeclaration struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers,omitempty"` // abstract final readonly
	Name       *Identifier       `json:"name"`
	Extends    *Identifier       `json:"extends,omitempty"`
	Implements []*Identifier     `json:"implements,omitempty"`
	Body       []Statement       `json:"body"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *ClassDeclaration) statementNode()      {}
func (n *ClassDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *ClassDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	if len(n.Modifiers) > 0 {
		sb.WriteString(strings.Join(n.Modifiers, " ") + " ")
	}
	sb.WriteString("class " + n.Name.String())
	if n.Extends != nil {
		sb.WriteString(" extends " + n.Extends.String())
	}
	if len(n.Implements) > 0 {
		sb.WriteString(" implements " + identifiersString(n.Implements))
	}
	sb.WriteString(" " + blockString(n.Body))
	return sb.String()
}

// InterfaceDeclaration 接口声明
type InterfaceDeclaration struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier       `json:"name"`
	Extends    []*Identifier     `json:"extends,omitempty"`
	Body       []Statement       `json:"body"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *InterfaceDeclaration) statementNode()      {}
func (n *InterfaceDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *InterfaceDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	sb.WriteString("interface " + n.Name.String())
	if len(n.Extends) > 0 {
		sb.WriteString(" extends " + identifiersString(n.Extends))
	}
	sb.WriteString(" " + blockString(n.Body))
	return sb.String()
}

// TraitDeclaration trait 声明
type TraitDeclaration struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier       `json:"name"`
	Body       []Statement       `json:"body"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *TraitDeclaration) statementNode()      {}
func (n *TraitDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *TraitDeclaration) String() string {
	return attributesString(n.Attributes) + "trait " + n.Name.String() + " " + blockString(n.Body)
}

// EnumDeclaration enum 声明，BackingType 非空时是 backed enum
type EnumDeclaration struct {
	BaseNode
	Attributes  []*AttributeGroup `json:"attributes,omitempty"`
	Name        *Identifier       `json:"name"`
	BackingType Type              `json:"backingType,omitempty"`
	Implements  []*Identifier     `json:"implements,omitempty"`
	Body        []Statement       `json:"body"`
	DocComment  lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *EnumDeclaration) statementNode()      {}
func (n *EnumDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *EnumDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	sb.WriteString("enum " + n.Name.String())
	if n.BackingType != nil {
		sb.WriteString(": " + n.BackingType.String())
	}
	if len(n.Implements) > 0 {
		sb.WriteString(" implements " + identifiersString(n.Implements))
	}
	sb.WriteString(" " + blockString(n.Body))
	return sb.String()
}

// EnumCase enum 成员；Value 非空时属于 backed enum
type EnumCase struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier       `json:"name"`
	Value      Expression        `json:"value,omitempty"`
}

func (n *EnumCase) statementNode() {}
func (n *EnumCase) String() string {
	if n.Value == nil {
		return "case " + n.Name.String() + ";"
	}
	return "case " + n.Name.String() + " = " + n.Value.String() + ";"
}

// PropertyEntry 属性声明项
type PropertyEntry struct {
	Name    lexer.ByteString `json:"name"`
	Default Expression       `json:"default,omitempty"`
}

func (p *PropertyEntry) String() string {
	if p.Default == nil {
		return "$" + p.Name.String()
	}
	return "$" + p.Name.String() + " = " + p.Default.String()
}

// PropertyStatement 类属性声明
type PropertyStatement struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers"`
	Type       Type              `json:"type,omitempty"`
	Props      []*PropertyEntry  `json:"props"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *PropertyStatement) statementNode() {}
func (n *PropertyStatement) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	sb.WriteString(strings.Join(n.Modifiers, " "))
	if n.Type != nil {
		sb.WriteString(" " + n.Type.String())
	}
	parts := make([]string, 0, len(n.Props))
	for _, p := range n.Props {
		parts = append(parts, p.String())
	}
	sb.WriteString(" " + strings.Join(parts, ", ") + ";")
	return sb.String()
}

// ClassConstStatement 类常量声明
type ClassConstStatement struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers,omitempty"`
	Type       Type              `json:"type,omitempty"`
	Consts     []*ConstantDecl   `json:"consts"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *ClassConstStatement) statementNode() {}
func (n *ClassConstStatement) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	if len(n.Modifiers) > 0 {
		sb.WriteString(strings.Join(n.Modifiers, " ") + " ")
	}
	sb.WriteString("const ")
	if n.Type != nil {
		sb.WriteString(n.Type.String() + " ")
	}
	parts := make([]string, 0, len(n.Consts))
	for _, c := range n.Consts {
		parts = append(parts, c.String())
	}
	sb.WriteString(strings.Join(parts, ", ") + ";")
	return sb.String()
}

// MethodDeclaration 方法声明；抽象方法和接口方法没有方法体
type MethodDeclaration struct {
	BaseNode
	Attributes []*AttributeGroup `json:"attributes,omitempty"`
	Modifiers  []string          `json:"modifiers,omitempty"`
	ByRef      bool              `json:"byRef,omitempty"`
	Name       *Identifier       `json:"name"`
	Params     []*Parameter      `json:"params"`
	ReturnType Type              `json:"returnType,omitempty"`
	Body       []Statement       `json:"body,omitempty"`
	HasBody    bool              `json:"hasBody"`
	DocComment lexer.ByteString  `json:"docComment,omitempty"`
}

func (n *MethodDeclaration) statementNode()      {}
func (n *MethodDeclaration) GetChildren() []Node { return statementsToNodes(n.Body) }
func (n *MethodDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributesString(n.Attributes))
	if len(n.Modifiers) > 0 {
		sb.WriteString(strings.Join(n.Modifiers, " ") + " ")
	}
	sb.WriteString("function ")
	if n.ByRef {
		sb.WriteString("&")
	}
	sb.WriteString(n.Name.String())
	sb.WriteString(paramsString(n.Params))
	if n.ReturnType != nil {
		sb.WriteString(": " + n.ReturnType.String())
	}
	if n.HasBody {
		sb.WriteString(" " + blockString(n.Body))
	} else {
		sb.WriteString(";")
	}
	return sb.String()
}

// TraitAdaptation use 块中的别名或冲突解决项
type TraitAdaptation struct {
	Trait      *Identifier   `json:"trait,omitempty"` // T::m 中的 T
	Method     *Identifier   `json:"method"`
	Insteadof  []*Identifier `json:"insteadof,omitempty"`
	Alias      *Identifier   `json:"alias,omitempty"`
	Visibility string        `json:"visibility,omitempty"`
}

func (a *TraitAdaptation) String() string {
	var sb strings.Builder
	if a.Trait != nil {
		sb.WriteString(a.Trait.String() + "::")
	}
	sb.WriteString(a.Method.String())
	if len(a.Insteadof) > 0 {
		sb.WriteString(" insteadof " + identifiersString(a.Insteadof))
	} else {
		sb.WriteString(" as")
		if a.Visibility != "" {
			sb.WriteString(" " + a.Visibility)
		}
		if a.Alias != nil {
			sb.WriteString(" " + a.Alias.String())
		}
	}
	sb.WriteString(";")
	return sb.String()
}

// TraitUseStatement 类体内的 use T1, T2 { … }
type TraitUseStatement struct {
	BaseNode
	Traits      []*Identifier      `json:"traits"`
	Adaptations []*TraitAdaptation `json:"adaptations,omitempty"`
}

func (n *TraitUseStatement) statementNode() {}
func (n *TraitUseStatement) String() string {
	head := "use " + identifiersString(n.Traits)
	if len(n.Adaptations) == 0 {
		return head + ";"
	}
	parts := make([]string, 0, len(n.Adaptations))
	for _, a := range n.Adaptations {
		parts = append(parts, indentLines(a.String()))
	}
	return head + " {\n" + strings.Join(parts, "\n") + "\n}"
}
