package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := ParseSource([]byte(src))
	require.NoErrorf(t, err, "parse failed for %q", src)
	require.NotNil(t, program)
	return program
}

func parseFails(t *testing.T, src string) *errors.ParseError {
	t.Helper()
	tokens, lerr := lexer.Tokenize([]byte(src))
	require.Nilf(t, lerr, "unexpected lex error for %q", src)
	_, perr := Parse(tokens)
	require.NotNilf(t, perr, "expected a parse error for %q", src)
	return perr
}

func firstExpr(t *testing.T, program *ast.Program) ast.Expression {
	t.Helper()
	require.NotEmpty(t, program.Statements)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.Truef(t, ok, "statement is %T, want ExpressionStatement", program.Statements[0])
	return stmt.Expr
}

func TestParsing_PrecedenceAndAssignment(t *testing.T) {
	program := parseSource(t, `<?php $x = 1 + 2 * 3;`)
	require.Len(t, program.Statements, 1)

	assign, ok := firstExpr(t, program).(*ast.AssignmentExpression)
	require.True(t, ok)
	assert.Equal(t, "=", assign.Operator)

	v, ok := assign.Left.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.String())

	sum, ok := assign.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Operator)
	assert.Equal(t, "1", sum.Left.(*ast.IntegerLiteral).Raw.String())

	prod, ok := sum.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", prod.Operator)
	assert.Equal(t, "2", prod.Left.(*ast.IntegerLiteral).Raw.String())
	assert.Equal(t, "3", prod.Right.(*ast.IntegerLiteral).Raw.String())
}

func TestParsing_AssignmentIsRightAssociative(t *testing.T) {
	program := parseSource(t, `<?php $a = $b = 1;`)
	outer := firstExpr(t, program).(*ast.AssignmentExpression)
	inner, ok := outer.Right.(*ast.AssignmentExpression)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Left.(*ast.Variable).Name.String())
}

func TestParsing_MixedIfFormsRejected(t *testing.T) {
	perr := parseFails(t, `<?php if ($a) { echo 1; } elseif ($b): echo 2; endif;`)
	assert.Equal(t, errors.ExpectedOneOf, perr.Kind)
	assert.Equal(t, []string{"{"}, perr.Expected)
	assert.Equal(t, ":", perr.Found)
}

func TestParsing_StringInterpolation(t *testing.T) {
	program := parseSource(t, `<?php $s = "hello, {$name}!";`)
	assign := firstExpr(t, program).(*ast.AssignmentExpression)
	str, ok := assign.Right.(*ast.InterpolatedString)
	require.True(t, ok)
	require.Len(t, str.Parts, 3)

	lit1, ok := str.Parts[0].(*ast.LiteralStringPart)
	require.True(t, ok)
	assert.Equal(t, "hello, ", lit1.Value.String())

	expr, ok := str.Parts[1].(*ast.ExpressionStringPart)
	require.True(t, ok)
	assert.Equal(t, "name", expr.Expr.(*ast.Variable).Name.String())

	lit2, ok := str.Parts[2].(*ast.LiteralStringPart)
	require.True(t, ok)
	assert.Equal(t, "!", lit2.Value.String())
}

func TestParsing_TryFinallyWithoutCatch(t *testing.T) {
	program := parseSource(t, `<?php try { f(); } finally { g(); }`)
	try, ok := program.Statements[0].(*ast.TryStatement)
	require.True(t, ok)
	assert.Empty(t, try.Catches)
	assert.True(t, try.HasFinally)
	require.Len(t, try.Body, 1)
	require.Len(t, try.Finally, 1)
}

func TestParsing_TryWithoutCatchOrFinally(t *testing.T) {
	perr := parseFails(t, `<?php try { f(); }`)
	assert.Equal(t, errors.TryWithoutCatchOrFinally, perr.Kind)
}

func TestParsing_MatchMultipleDefaultArms(t *testing.T) {
	perr := parseFails(t, `<?php match ($x) { 1, 2 => "a", default => "b", default => "c" };`)
	assert.Equal(t, errors.MatchExpressionWithMultipleDefaultArms, perr.Kind)
}

func TestParsing_FunctionDeclVersusClosure(t *testing.T) {
	program := parseSource(t, `<?php function &name() {} function () {};`)
	require.Len(t, program.Statements, 2)

	decl, ok := program.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "first statement should be a function declaration")
	assert.True(t, decl.ByRef)
	assert.Equal(t, "name", decl.Name.Value.String())

	stmt, ok := program.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok, "second statement should be an expression statement")
	_, ok = stmt.Expr.(*ast.ClosureExpression)
	assert.True(t, ok, "expression should be an anonymous function")
}

func TestParsing_CommentsCollectedNotEmitted(t *testing.T) {
	tokens, lerr := lexer.Tokenize([]byte("<?php // just a comment\n/* and another */"))
	require.Nil(t, lerr)

	p := &Parser{}
	p.registerPrefixFns()
	p.load(tokens)
	program, perr := p.parseProgram()
	require.Nil(t, perr)

	assert.Empty(t, program.Statements)
	assert.Len(t, p.Comments(), 2)
}

func TestParsing_DocCommentAttachedToDeclaration(t *testing.T) {
	program := parseSource(t, "<?php /** Does things. */\nfunction foo() {}")
	decl := program.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "/** Does things. */", decl.DocComment.String())
}

func TestParsing_EmptyInputEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "<?php", "<?php   "} {
		program := parseSource(t, src)
		assert.Emptyf(t, program.Statements, "src=%q", src)
	}
}

func TestParsing_InlineHTMLStatement(t *testing.T) {
	program := parseSource(t, "before\n<?php echo 1; ?>\nafter")
	require.Len(t, program.Statements, 3)
	html, ok := program.Statements[0].(*ast.InlineHTMLStatement)
	require.True(t, ok)
	assert.Equal(t, "before\n", html.Value.String())
	_, ok = program.Statements[1].(*ast.EchoStatement)
	assert.True(t, ok)
	html2, ok := program.Statements[2].(*ast.InlineHTMLStatement)
	require.True(t, ok)
	assert.Equal(t, "after", html2.Value.String())
}

func TestParsing_ShortEchoTag(t *testing.T) {
	program := parseSource(t, `<?= $x ?>`)
	require.Len(t, program.Statements, 1)
	echo, ok := program.Statements[0].(*ast.EchoStatement)
	require.True(t, ok)
	require.Len(t, echo.Values, 1)
}

func TestParsing_RecursionDepthCapped(t *testing.T) {
	src := "<?php $x = " + strings.Repeat("(", 600) + "1" + strings.Repeat(")", 600) + ";"
	tokens, lerr := lexer.Tokenize([]byte(src))
	require.Nil(t, lerr)
	_, perr := Parse(tokens)
	require.NotNil(t, perr, "deeply nested input must fail, not overflow")
}

func TestParsing_ParenthesizationIdempotent(t *testing.T) {
	program := parseSource(t, `<?php $x = 1 + 2 * 3 - 4;`)
	rendered := program.String()

	program2 := parseSource(t, "<?php "+rendered)
	assert.Equal(t, rendered, program2.String())
}

func TestParsing_UnexpectedTokenError(t *testing.T) {
	perr := parseFails(t, `<?php $x = ;`)
	assert.Equal(t, errors.UnexpectedToken, perr.Kind)
	assert.Equal(t, ";", perr.Found)
}

func TestParsing_UnexpectedEOF(t *testing.T) {
	perr := parseFails(t, `<?php $x = 1 +`)
	assert.Equal(t, errors.UnexpectedEndOfFile, perr.Kind)
}
