package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
)

func TestStmt_IfElseifElse(t *testing.T) {
	program := parseSource(t, `<?php if ($a) { echo 1; } elseif ($b) { echo 2; } else { echo 3; }`)
	stmt := program.Statements[0].(*ast.IfStatement)
	assert.False(t, stmt.Alternative)
	require.Len(t, stmt.ElseIfs, 1)
	require.NotNil(t, stmt.Else)
	assert.Len(t, stmt.Else.Body, 1)
}

func TestStmt_IfAlternativeSyntax(t *testing.T) {
	program := parseSource(t, `<?php if ($a): echo 1; elseif ($b): echo 2; else: echo 3; endif;`)
	stmt := program.Statements[0].(*ast.IfStatement)
	assert.True(t, stmt.Alternative)
	require.Len(t, stmt.ElseIfs, 1)
	require.NotNil(t, stmt.Else)
}

func TestStmt_IfSingleStatementBody(t *testing.T) {
	program := parseSource(t, `<?php if ($a) echo 1; else echo 2;`)
	stmt := program.Statements[0].(*ast.IfStatement)
	require.Len(t, stmt.Body, 1)
	require.NotNil(t, stmt.Else)
}

func TestStmt_ElseIfNested(t *testing.T) {
	program := parseSource(t, `<?php if ($a) { echo 1; } else if ($b) { echo 2; }`)
	stmt := program.Statements[0].(*ast.IfStatement)
	require.NotNil(t, stmt.Else)
	require.Len(t, stmt.Else.Body, 1)
	_, ok := stmt.Else.Body[0].(*ast.IfStatement)
	assert.True(t, ok)
}

func TestStmt_Loops(t *testing.T) {
	program := parseSource(t, `<?php
while ($x) { f(); }
do { g(); } while ($y);
for ($i = 0; $i < 10; $i++) { h(); }
for (;;) { break 2; }
`)
	require.Len(t, program.Statements, 4)

	_, ok := program.Statements[0].(*ast.WhileStatement)
	assert.True(t, ok)
	_, ok = program.Statements[1].(*ast.DoWhileStatement)
	assert.True(t, ok)

	forStmt := program.Statements[2].(*ast.ForStatement)
	assert.Len(t, forStmt.Init, 1)
	assert.Len(t, forStmt.Condition, 1)
	assert.Len(t, forStmt.Loop, 1)

	bare := program.Statements[3].(*ast.ForStatement)
	assert.Empty(t, bare.Init)
	assert.Empty(t, bare.Condition)
	assert.Empty(t, bare.Loop)
	brk := bare.Body[0].(*ast.BreakStatement)
	assert.Equal(t, "2", brk.Level.(*ast.IntegerLiteral).Raw.String())
}

func TestStmt_AlternativeLoopSyntax(t *testing.T) {
	program := parseSource(t, `<?php
while ($x): f(); endwhile;
for ($i = 0; $i < 3; $i++): g(); endfor;
foreach ($xs as $x): h(); endforeach;
`)
	require.Len(t, program.Statements, 3)
	assert.True(t, program.Statements[0].(*ast.WhileStatement).Alternative)
	assert.True(t, program.Statements[1].(*ast.ForStatement).Alternative)
	assert.True(t, program.Statements[2].(*ast.ForeachStatement).Alternative)
}

func TestStmt_Foreach(t *testing.T) {
	program := parseSource(t, `<?php foreach ($map as $k => &$v) { $v *= 2; } foreach ($xs as [$a, $b]) {}`)
	require.Len(t, program.Statements, 2)

	fe := program.Statements[0].(*ast.ForeachStatement)
	assert.NotNil(t, fe.KeyVar)
	assert.True(t, fe.ByRef)

	destructure := program.Statements[1].(*ast.ForeachStatement)
	_, ok := destructure.ValueVar.(*ast.ArrayExpression)
	assert.True(t, ok)
}

func TestStmt_Switch(t *testing.T) {
	program := parseSource(t, `<?php switch ($x) { case 1: f(); break; case 2; g(); break; default: h(); }`)
	sw := program.Statements[0].(*ast.SwitchStatement)
	require.Len(t, sw.Cases, 3)
	assert.NotNil(t, sw.Cases[0].Condition)
	assert.NotNil(t, sw.Cases[1].Condition)
	assert.Nil(t, sw.Cases[2].Condition)
	assert.Len(t, sw.Cases[0].Body, 2)
}

func TestStmt_SwitchAlternativeSyntax(t *testing.T) {
	program := parseSource(t, `<?php switch ($x): case 1: f(); break; endswitch;`)
	sw := program.Statements[0].(*ast.SwitchStatement)
	assert.True(t, sw.Alternative)
	require.Len(t, sw.Cases, 1)
}

func TestStmt_TryCatchUnionTypes(t *testing.T) {
	program := parseSource(t, `<?php try { f(); } catch (A\E1 | E2 $e) { g(); } catch (E3) { h(); }`)
	try := program.Statements[0].(*ast.TryStatement)
	require.Len(t, try.Catches, 2)

	first := try.Catches[0]
	require.Len(t, first.Types, 2)
	assert.Equal(t, `A\E1`, first.Types[0].Value.String())
	require.NotNil(t, first.Var)
	assert.Equal(t, "e", first.Var.Name.String())

	second := try.Catches[1]
	assert.Nil(t, second.Var)
}

func TestStmt_ThrowStatement(t *testing.T) {
	program := parseSource(t, `<?php throw new RuntimeException("boom");`)
	th := program.Statements[0].(*ast.ThrowStatement)
	_, ok := th.Value.(*ast.NewExpression)
	assert.True(t, ok)
}

func TestStmt_Declare(t *testing.T) {
	program := parseSource(t, `<?php declare(strict_types=1); declare(ticks=1) { f(); }`)
	require.Len(t, program.Statements, 2)

	d1 := program.Statements[0].(*ast.DeclareStatement)
	require.Len(t, d1.Items, 1)
	assert.Equal(t, "strict_types", d1.Items[0].Key.Value.String())
	assert.False(t, d1.HasBody)

	d2 := program.Statements[1].(*ast.DeclareStatement)
	assert.True(t, d2.HasBody)
	assert.Len(t, d2.Body, 1)
}

func TestStmt_GotoAndLabel(t *testing.T) {
	program := parseSource(t, "<?php start:\ngoto start;")
	require.Len(t, program.Statements, 2)
	label := program.Statements[0].(*ast.LabelStatement)
	assert.Equal(t, "start", label.Name.Value.String())
	gt := program.Statements[1].(*ast.GotoStatement)
	assert.Equal(t, "start", gt.Label.Value.String())
}

func TestStmt_GlobalAndStaticVars(t *testing.T) {
	program := parseSource(t, `<?php global $a, $b; static $c = 1, $d;`)
	require.Len(t, program.Statements, 2)

	g := program.Statements[0].(*ast.GlobalStatement)
	assert.Len(t, g.Vars, 2)

	s := program.Statements[1].(*ast.StaticStatement)
	require.Len(t, s.Vars, 2)
	assert.NotNil(t, s.Vars[0].Default)
	assert.Nil(t, s.Vars[1].Default)
}

func TestStmt_Unset(t *testing.T) {
	program := parseSource(t, `<?php unset($a, $b[0]);`)
	un := program.Statements[0].(*ast.UnsetStatement)
	assert.Len(t, un.Vars, 2)
}

func TestStmt_Namespace(t *testing.T) {
	program := parseSource(t, `<?php namespace App\Core;`)
	ns := program.Statements[0].(*ast.NamespaceStatement)
	assert.Equal(t, `App\Core`, ns.Name.Value.String())
	assert.False(t, ns.Braced)
}

func TestStmt_NamespaceBraced(t *testing.T) {
	program := parseSource(t, `<?php namespace App { function f() {} } namespace { $x = 1; }`)
	require.Len(t, program.Statements, 2)

	ns := program.Statements[0].(*ast.NamespaceStatement)
	assert.True(t, ns.Braced)
	assert.Len(t, ns.Body, 1)

	global := program.Statements[1].(*ast.NamespaceStatement)
	assert.Nil(t, global.Name)
	assert.True(t, global.Braced)
}

func TestStmt_UseImports(t *testing.T) {
	program := parseSource(t, `<?php
use Foo\Bar;
use Foo\Baz as Qux;
use function Foo\strlen;
use const Foo\LIMIT;
use Foo\{A, function b, const C as D};
`)
	require.Len(t, program.Statements, 5)

	plain := program.Statements[0].(*ast.UseStatement)
	assert.Equal(t, ast.UseNormal, plain.UseKind)
	assert.Equal(t, `Foo\Bar`, plain.Clauses[0].Name.Value.String())

	aliased := program.Statements[1].(*ast.UseStatement)
	assert.Equal(t, "Qux", aliased.Clauses[0].Alias.Value.String())

	fn := program.Statements[2].(*ast.UseStatement)
	assert.Equal(t, ast.UseFunction, fn.UseKind)

	cst := program.Statements[3].(*ast.UseStatement)
	assert.Equal(t, ast.UseConst, cst.UseKind)

	group := program.Statements[4].(*ast.UseStatement)
	assert.True(t, group.Group)
	assert.Equal(t, "Foo", group.Prefix.Value.String())
	require.Len(t, group.Clauses, 3)
	assert.Equal(t, ast.UseFunction, group.Clauses[1].UseKind)
	assert.Equal(t, ast.UseConst, group.Clauses[2].UseKind)
	assert.Equal(t, "D", group.Clauses[2].Alias.Value.String())
}

func TestStmt_TopLevelConst(t *testing.T) {
	program := parseSource(t, `<?php const A = 1, B = 2;`)
	cs := program.Statements[0].(*ast.ConstStatement)
	require.Len(t, cs.Consts, 2)
	assert.Equal(t, "A", cs.Consts[0].Name.Value.String())
}

func TestStmt_HaltCompiler(t *testing.T) {
	program := parseSource(t, "<?php $x = 1; __halt_compiler(); raw data here")
	require.Len(t, program.Statements, 2)
	_, ok := program.Statements[1].(*ast.HaltCompilerStatement)
	assert.True(t, ok)
}

func TestStmt_NoopAndEcho(t *testing.T) {
	program := parseSource(t, `<?php ; echo 1, "two", $three;`)
	require.Len(t, program.Statements, 2)
	_, ok := program.Statements[0].(*ast.NoopStatement)
	assert.True(t, ok)
	echo := program.Statements[1].(*ast.EchoStatement)
	assert.Len(t, echo.Values, 3)
}

func TestStmt_HTMLInsideAlternativeIf(t *testing.T) {
	program := parseSource(t, "<?php if ($a): ?>text<?php endif;")
	stmt := program.Statements[0].(*ast.IfStatement)
	require.Len(t, stmt.Body, 1)
	_, ok := stmt.Body[0].(*ast.InlineHTMLStatement)
	assert.True(t, ok)
}

func TestStmt_SwitchRequiresCaseOrDefault(t *testing.T) {
	perr := parseFails(t, `<?php switch ($x) { echo 1; }`)
	assert.Equal(t, errors.ExpectedOneOf, perr.Kind)
}
