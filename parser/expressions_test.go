package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
)

func TestExpr_TernaryAndShortTernary(t *testing.T) {
	program := parseSource(t, `<?php $a = $b ? 1 : 2; $c = $d ?: 3;`)
	require.Len(t, program.Statements, 2)

	full := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	ternary := full.Right.(*ast.TernaryExpression)
	assert.NotNil(t, ternary.Then)

	short := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	shortTernary := short.Right.(*ast.TernaryExpression)
	assert.Nil(t, shortTernary.Then)
}

func TestExpr_CoalesceRightAssociative(t *testing.T) {
	program := parseSource(t, `<?php $x = $a ?? $b ?? $c;`)
	assign := firstExpr(t, program).(*ast.AssignmentExpression)
	outer := assign.Right.(*ast.CoalesceExpression)
	assert.Equal(t, "a", outer.Left.(*ast.Variable).Name.String())
	inner, ok := outer.Right.(*ast.CoalesceExpression)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Left.(*ast.Variable).Name.String())
}

func TestExpr_NonAssociativeComparison(t *testing.T) {
	perr := parseFails(t, `<?php $x = 1 < 2 < 3;`)
	assert.Equal(t, errors.UnexpectedToken, perr.Kind)
	assert.Equal(t, "<", perr.Found)
}

func TestExpr_Instanceof(t *testing.T) {
	program := parseSource(t, `<?php $ok = $x instanceof Foo\Bar;`)
	assign := firstExpr(t, program).(*ast.AssignmentExpression)
	bin := assign.Right.(*ast.BinaryExpression)
	assert.Equal(t, "instanceof", bin.Operator)
	assert.Equal(t, `Foo\Bar`, bin.Right.(*ast.Identifier).Value.String())
}

func TestExpr_ReferenceAssignment(t *testing.T) {
	program := parseSource(t, `<?php $a = &$b;`)
	assign := firstExpr(t, program).(*ast.AssignmentExpression)
	assert.True(t, assign.ByRef)
	assert.Equal(t, "b", assign.Right.(*ast.Variable).Name.String())
}

func TestExpr_UnaryAndCasts(t *testing.T) {
	program := parseSource(t, `<?php $x = -$a + ~$b; $y = (int) $z; $w = @f(); $p = print "x";`)
	require.Len(t, program.Statements, 4)

	cast := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.CastExpression)
	assert.Equal(t, "int", cast.CastType)
	assert.Equal(t, "(int)", cast.Raw.String())

	supp := program.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right
	_, ok := supp.(*ast.ErrorSuppressExpression)
	assert.True(t, ok)

	pr := program.Statements[3].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right
	_, ok = pr.(*ast.PrintExpression)
	assert.True(t, ok)
}

func TestExpr_IncDec(t *testing.T) {
	program := parseSource(t, `<?php ++$i; $i++; --$j; $j--;`)
	require.Len(t, program.Statements, 4)

	pre := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.PrefixExpression)
	assert.Equal(t, "++", pre.Operator)

	post := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.PostfixExpression)
	assert.Equal(t, "++", post.Operator)
}

func TestExpr_PowRightAssociative(t *testing.T) {
	program := parseSource(t, `<?php $x = 2 ** 3 ** 2;`)
	assign := firstExpr(t, program).(*ast.AssignmentExpression)
	outer := assign.Right.(*ast.BinaryExpression)
	assert.Equal(t, "**", outer.Operator)
	inner := outer.Right.(*ast.BinaryExpression)
	assert.Equal(t, "**", inner.Operator)
}

func TestExpr_CallsAndMemberAccess(t *testing.T) {
	program := parseSource(t, `<?php $r = $obj->m(1)->p; $s = Foo::bar($x); $t = $o?->q; $u = Foo::$prop; $v = Foo::BAZ;`)
	require.Len(t, program.Statements, 5)

	chained := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.PropertyFetch)
	call := chained.Object.(*ast.MethodCall)
	assert.Equal(t, "m", call.Method.(*ast.Identifier).Value.String())
	require.Len(t, call.Args, 1)

	static := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.StaticCall)
	assert.Equal(t, "Foo", static.Class.(*ast.Identifier).Value.String())
	assert.Equal(t, "bar", static.Method.(*ast.Identifier).Value.String())

	nullsafe := program.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.PropertyFetch)
	assert.True(t, nullsafe.Nullsafe)

	sprop := program.Statements[3].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.StaticPropertyFetch)
	assert.Equal(t, "prop", sprop.Property.(*ast.Variable).Name.String())

	cfetch := program.Statements[4].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ClassConstFetch)
	assert.Equal(t, "BAZ", cfetch.Constant.(*ast.Identifier).Value.String())
}

func TestExpr_ClassKeywordConstant(t *testing.T) {
	program := parseSource(t, `<?php $n = Foo::class;`)
	fetch := firstExpr(t, program).(*ast.AssignmentExpression).Right.(*ast.ClassConstFetch)
	assert.Equal(t, "class", fetch.Constant.(*ast.Identifier).Value.String())
}

func TestExpr_ReservedMemberNames(t *testing.T) {
	program := parseSource(t, `<?php $a = $obj->list; $b = $obj->class;`)
	require.Len(t, program.Statements, 2)
	fetch := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.PropertyFetch)
	assert.Equal(t, "list", fetch.Property.(*ast.Identifier).Value.String())
}

func TestExpr_FirstClassCallable(t *testing.T) {
	program := parseSource(t, `<?php $f = strlen(...); $g = $obj->m(...);`)
	fn := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.FunctionCall)
	assert.True(t, fn.FirstClassCallable)
	assert.Empty(t, fn.Args)

	m := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.MethodCall)
	assert.True(t, m.FirstClassCallable)
}

func TestExpr_NamedAndSpreadArguments(t *testing.T) {
	program := parseSource(t, `<?php f(1, name: 2, ...$rest);`)
	call := firstExpr(t, program).(*ast.FunctionCall)
	require.Len(t, call.Args, 3)
	assert.Empty(t, call.Args[0].Name)
	assert.Equal(t, "name", call.Args[1].Name.String())
	assert.True(t, call.Args[2].Unpack)
}

func TestExpr_Arrays(t *testing.T) {
	program := parseSource(t, `<?php $a = [1, 'k' => 2, ...$more, &$ref]; $b = array(3);`)

	short := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ArrayExpression)
	assert.True(t, short.Short)
	require.Len(t, short.Items, 4)
	assert.Nil(t, short.Items[0].Key)
	assert.NotNil(t, short.Items[1].Key)
	assert.True(t, short.Items[2].Unpack)
	assert.Nil(t, short.Items[2].Key, "unpack implies no key")
	assert.True(t, short.Items[3].ByRef)

	long := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ArrayExpression)
	assert.False(t, long.Short)
}

func TestExpr_ListDestructuring(t *testing.T) {
	program := parseSource(t, `<?php list($a, , $b) = $arr; [$c, $d] = $arr;`)
	require.Len(t, program.Statements, 2)

	first := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	lst := first.Left.(*ast.ListExpression)
	require.Len(t, lst.Items, 3)
	assert.Nil(t, lst.Items[1].Value)

	second := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	_, ok := second.Left.(*ast.ArrayExpression)
	assert.True(t, ok)
}

func TestExpr_Match(t *testing.T) {
	program := parseSource(t, `<?php $r = match ($x) { 1, 2 => "a", default => "b" };`)
	m := firstExpr(t, program).(*ast.AssignmentExpression).Right.(*ast.MatchExpression)
	require.Len(t, m.Arms, 2)
	assert.Len(t, m.Arms[0].Conditions, 2)
	assert.True(t, m.Arms[1].IsDefault())
}

func TestExpr_MatchEmptyBodyAndTrailingComma(t *testing.T) {
	program := parseSource(t, `<?php $r = match ($x) {}; $s = match ($y) { default, => 1 };`)
	m := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.MatchExpression)
	assert.Empty(t, m.Arms)

	m2 := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.MatchExpression)
	require.Len(t, m2.Arms, 1)
	assert.True(t, m2.Arms[0].IsDefault())
}

func TestExpr_ClosureWithUses(t *testing.T) {
	program := parseSource(t, `<?php $f = function (int $a, &$b) use ($c, &$d): ?string { return "x"; };`)
	fn := firstExpr(t, program).(*ast.AssignmentExpression).Right.(*ast.ClosureExpression)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Params[0].Type.String())
	assert.True(t, fn.Params[1].ByRef)
	require.Len(t, fn.Uses, 2)
	assert.True(t, fn.Uses[1].ByRef)
	assert.Equal(t, "?string", fn.ReturnType.String())
	require.Len(t, fn.Body, 1)
}

func TestExpr_StaticClosureAndArrowFn(t *testing.T) {
	program := parseSource(t, `<?php $f = static function () {}; $g = static fn ($x) => $x + 1; $h = fn () => 2;`)

	closure := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ClosureExpression)
	assert.True(t, closure.Static)

	arrow := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.Static)
	_, ok := arrow.Body.(*ast.BinaryExpression)
	assert.True(t, ok)

	plain := program.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ArrowFunctionExpression)
	assert.False(t, plain.Static)
}

func TestExpr_NewAndAnonymousClass(t *testing.T) {
	program := parseSource(t, `<?php $a = new Foo(1); $b = new $cls; $c = new class(2) extends Base implements I { public function m() {} };`)

	n1 := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.NewExpression)
	assert.Equal(t, "Foo", n1.Class.(*ast.Identifier).Value.String())
	require.Len(t, n1.Args, 1)

	n2 := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.NewExpression)
	_, ok := n2.Class.(*ast.Variable)
	assert.True(t, ok)

	anon := program.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.AnonymousClass)
	require.Len(t, anon.Args, 1)
	assert.Equal(t, "Base", anon.Extends.Value.String())
	require.Len(t, anon.Implements, 1)
	require.Len(t, anon.Body, 1)
}

func TestExpr_CloneAndThrowExpression(t *testing.T) {
	program := parseSource(t, `<?php $c = clone $o; $v = $x ?? throw new E();`)

	_, ok := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.CloneExpression)
	assert.True(t, ok)

	coalesce := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.CoalesceExpression)
	_, ok = coalesce.Right.(*ast.ThrowExpression)
	assert.True(t, ok)
}

func TestExpr_YieldForms(t *testing.T) {
	program := parseSource(t, `<?php function g() { yield; yield 1; yield $k => $v; yield from $inner; }`)
	fn := program.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 4)

	bare := fn.Body[0].(*ast.ExpressionStatement).Expr.(*ast.YieldExpression)
	assert.Nil(t, bare.Key)
	assert.Nil(t, bare.Value)

	valued := fn.Body[1].(*ast.ExpressionStatement).Expr.(*ast.YieldExpression)
	assert.NotNil(t, valued.Value)

	keyed := fn.Body[2].(*ast.ExpressionStatement).Expr.(*ast.YieldExpression)
	assert.NotNil(t, keyed.Key)

	_, ok := fn.Body[3].(*ast.ExpressionStatement).Expr.(*ast.YieldFromExpression)
	assert.True(t, ok)
}

func TestExpr_DynamicVariables(t *testing.T) {
	program := parseSource(t, `<?php $a = $$name; $b = ${'x' . 'y'};`)

	dv := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.DynamicVariable)
	_, ok := dv.Expr.(*ast.Variable)
	assert.True(t, ok)

	dv2 := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.DynamicVariable)
	_, ok = dv2.Expr.(*ast.BinaryExpression)
	assert.True(t, ok)
}

func TestExpr_MagicConstants(t *testing.T) {
	program := parseSource(t, `<?php $a = __LINE__; $b = __DIR__;`)
	mc := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.MagicConstant)
	assert.Equal(t, "__LINE__", mc.Name.String())
}

func TestExpr_IssetEmptyEvalExit(t *testing.T) {
	program := parseSource(t, `<?php $a = isset($x, $y); $b = empty($z); $c = eval('1;'); exit(1); die;`)
	require.Len(t, program.Statements, 5)

	is := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.IssetExpression)
	assert.Len(t, is.Vars, 2)

	ex := program.Statements[3].(*ast.ExpressionStatement).Expr.(*ast.ExitExpression)
	assert.NotNil(t, ex.Expr)

	die := program.Statements[4].(*ast.ExpressionStatement).Expr.(*ast.ExitExpression)
	assert.Nil(t, die.Expr)
}

func TestExpr_IncludeFamily(t *testing.T) {
	program := parseSource(t, `<?php include 'a.php'; require_once 'b.php'; $ok = include 'c.php';`)
	require.Len(t, program.Statements, 3)

	inc := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.IncludeExpression)
	assert.Equal(t, "include", inc.IncludeKind)

	ro := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.IncludeExpression)
	assert.Equal(t, "require_once", ro.IncludeKind)

	assigned := program.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	_, ok := assigned.Right.(*ast.IncludeExpression)
	assert.True(t, ok)
}

func TestExpr_HeredocAndNowdocAST(t *testing.T) {
	program := parseSource(t, "<?php $a = <<<EOT\nHello $name\nEOT;\n$b = <<<'RAW'\nno $interp\nRAW;")
	require.Len(t, program.Statements, 2)

	heredoc := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.HeredocString)
	assert.Equal(t, "EOT", heredoc.Label.String())
	require.Len(t, heredoc.Parts, 2)

	nowdoc := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.NowdocString)
	assert.Equal(t, "RAW", nowdoc.Label.String())
	assert.Equal(t, "no $interp", nowdoc.Value.String())
}

func TestExpr_StringVarOffsetAST(t *testing.T) {
	program := parseSource(t, `<?php $s = "$a[3] and $o->p";`)
	str := firstExpr(t, program).(*ast.AssignmentExpression).Right.(*ast.InterpolatedString)
	require.Len(t, str.Parts, 3)

	idx := str.Parts[0].(*ast.ExpressionStringPart).Expr.(*ast.IndexExpression)
	assert.Equal(t, "3", idx.Index.(*ast.IntegerLiteral).Raw.String())

	prop := str.Parts[2].(*ast.ExpressionStringPart).Expr.(*ast.PropertyFetch)
	assert.Equal(t, "p", prop.Property.(*ast.Identifier).Value.String())
}

func TestExpr_ForcedStaticCallWithBracedMethod(t *testing.T) {
	program := parseSource(t, `<?php $r = Foo::{$name}(1);`)
	call := firstExpr(t, program).(*ast.AssignmentExpression).Right.(*ast.StaticCall)
	_, ok := call.Method.(*ast.Variable)
	assert.True(t, ok)
	require.Len(t, call.Args, 1)
}

func TestExpr_KeywordLogicalOperators(t *testing.T) {
	program := parseSource(t, `<?php $r = $a and $b or $c xor $d;`)
	// and/or/xor 的优先级低于 =
	assign := firstExpr(t, program)
	bin, ok := assign.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "or", bin.Operator)
}
