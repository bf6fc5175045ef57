package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wudi/php-parser/lexer"
)

func ident(name string) *Identifier {
	return &Identifier{BaseNode: BaseNode{Kind: ASTIdentifier}, Value: lexer.ByteStringFrom(name)}
}

func variable(name string) *Variable {
	return &Variable{BaseNode: BaseNode{Kind: ASTVariable}, Name: lexer.ByteStringFrom(name)}
}

func integer(raw string) *IntegerLiteral {
	return &IntegerLiteral{BaseNode: BaseNode{Kind: ASTIntegerLiteral}, Raw: lexer.ByteStringFrom(raw)}
}

func TestVariable_String(t *testing.T) {
	assert.Equal(t, "$name", variable("name").String())
}

func TestBinaryExpression_String(t *testing.T) {
	expr := &BinaryExpression{
		BaseNode: BaseNode{Kind: ASTBinaryExpression},
		Left:     integer("1"),
		Operator: "+",
		Right: &BinaryExpression{
			BaseNode: BaseNode{Kind: ASTBinaryExpression},
			Left:     integer("2"),
			Operator: "*",
			Right:    integer("3"),
		},
	}
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestMethodCall_String(t *testing.T) {
	call := &MethodCall{
		BaseNode: BaseNode{Kind: ASTMethodCall},
		Object:   variable("obj"),
		Method:   ident("run"),
		Args:     []*Argument{{Value: integer("1")}, {Unpack: true, Value: variable("rest")}},
		Nullsafe: true,
	}
	assert.Equal(t, "$obj?->run(1, ...$rest)", call.String())
}

func TestArrayExpression_String(t *testing.T) {
	arr := &ArrayExpression{
		BaseNode: BaseNode{Kind: ASTArrayExpression},
		Short:    true,
		Items: []*ArrayItem{
			{Key: ident("K"), Value: integer("1")},
			{Unpack: true, Value: variable("more")},
		},
	}
	assert.Equal(t, "[K => 1, ...$more]", arr.String())
}

func TestMatchExpression_String(t *testing.T) {
	m := &MatchExpression{
		BaseNode:  BaseNode{Kind: ASTMatchExpression},
		Condition: variable("x"),
		Arms: []*MatchArm{
			{Conditions: []Expression{integer("1"), integer("2")}, Body: ident("A")},
			{Body: ident("B")},
		},
	}
	assert.Equal(t, "match ($x) {1, 2 => A, default => B}", m.String())
	assert.False(t, m.Arms[0].IsDefault())
	assert.True(t, m.Arms[1].IsDefault())
}

func TestIfStatement_String(t *testing.T) {
	stmt := &IfStatement{
		BaseNode:  BaseNode{Kind: ASTIfStatement},
		Condition: variable("a"),
		Body: []Statement{
			&EchoStatement{BaseNode: BaseNode{Kind: ASTEchoStatement}, Values: []Expression{integer("1")}},
		},
		Else: &ElseClause{Body: []Statement{
			&EchoStatement{BaseNode: BaseNode{Kind: ASTEchoStatement}, Values: []Expression{integer("2")}},
		}},
	}
	assert.Equal(t, "if ($a) {\n    echo 1;\n} else {\n    echo 2;\n}", stmt.String())
}

func TestWalk_VisitsAllChildren(t *testing.T) {
	program := &Program{
		BaseNode: BaseNode{Kind: ASTProgram},
		Statements: []Statement{
			&ExpressionStatement{
				BaseNode: BaseNode{Kind: ASTExpressionStatement},
				Expr: &AssignmentExpression{
					BaseNode: BaseNode{Kind: ASTAssignmentExpression},
					Left:     variable("x"),
					Operator: "=",
					Right: &BinaryExpression{
						BaseNode: BaseNode{Kind: ASTBinaryExpression},
						Left:     integer("1"),
						Operator: "+",
						Right:    integer("2"),
					},
				},
			},
		},
	}

	var kinds []ASTKind
	Walk(VisitorFunc(func(n Node) bool {
		kinds = append(kinds, n.GetKind())
		return true
	}), program)

	assert.Equal(t, []ASTKind{
		ASTProgram, ASTExpressionStatement, ASTAssignmentExpression,
		ASTVariable, ASTBinaryExpression, ASTIntegerLiteral, ASTIntegerLiteral,
	}, kinds)
}

func TestWalk_PruneSubtree(t *testing.T) {
	program := &Program{
		BaseNode: BaseNode{Kind: ASTProgram},
		Statements: []Statement{
			&ExpressionStatement{
				BaseNode: BaseNode{Kind: ASTExpressionStatement},
				Expr:     variable("x"),
			},
		},
	}

	count := 0
	Walk(VisitorFunc(func(n Node) bool {
		count++
		return n.GetKind() != ASTExpressionStatement
	}), program)
	assert.Equal(t, 2, count)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "Program", ASTProgram.String())
	assert.Equal(t, "MatchExpression", ASTMatchExpression.String())
	assert.Equal(t, "Unknown", ASTKind(-1).String())
}
