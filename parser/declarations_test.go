package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
)

func TestDecl_FunctionSignature(t *testing.T) {
	program := parseSource(t, `<?php function f(int $a, ?string $b = null, A|B $c, X&Y $d, ...$rest): static {}`)
	fn := program.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "f", fn.Name.Value.String())
	require.Len(t, fn.Params, 5)

	assert.Equal(t, "int", fn.Params[0].Type.String())
	assert.Equal(t, "?string", fn.Params[1].Type.String())
	assert.NotNil(t, fn.Params[1].Default)
	assert.Equal(t, "A|B", fn.Params[2].Type.String())
	assert.Equal(t, "X&Y", fn.Params[3].Type.String())
	assert.True(t, fn.Params[4].Variadic)
	assert.Equal(t, "static", fn.ReturnType.String())
}

func TestDecl_DNFTypesRejected(t *testing.T) {
	perr := parseFails(t, `<?php function f((A&B)|C $x) {}`)
	assert.Equal(t, errors.UnexpectedToken, perr.Kind)
}

func TestDecl_ClassComplete(t *testing.T) {
	program := parseSource(t, `<?php
abstract class Widget extends Base implements I1, I2 {
    const LIMIT = 10;
    public const int TYPED = 1;
    public static ?int $count = 0;
    private readonly string $name;
    var $legacy;

    abstract protected function render(): string;

    final public function id(): int { return 1; }
}
`)
	cls := program.Statements[0].(*ast.ClassDeclaration)
	assert.Equal(t, []string{"abstract"}, cls.Modifiers)
	assert.Equal(t, "Base", cls.Extends.Value.String())
	require.Len(t, cls.Implements, 2)
	require.Len(t, cls.Body, 7)

	plain := cls.Body[0].(*ast.ClassConstStatement)
	assert.Nil(t, plain.Type)

	typed := cls.Body[1].(*ast.ClassConstStatement)
	require.NotNil(t, typed.Type)
	assert.Equal(t, "int", typed.Type.String())
	assert.Equal(t, []string{"public"}, typed.Modifiers)

	count := cls.Body[2].(*ast.PropertyStatement)
	assert.Equal(t, []string{"public", "static"}, count.Modifiers)
	assert.Equal(t, "?int", count.Type.String())
	require.Len(t, count.Props, 1)
	assert.Equal(t, "count", count.Props[0].Name.String())

	name := cls.Body[3].(*ast.PropertyStatement)
	assert.Equal(t, []string{"private", "readonly"}, name.Modifiers)

	legacy := cls.Body[4].(*ast.PropertyStatement)
	assert.Equal(t, []string{"var"}, legacy.Modifiers)
	assert.Nil(t, legacy.Type)

	abstractMethod := cls.Body[5].(*ast.MethodDeclaration)
	assert.False(t, abstractMethod.HasBody)
	assert.Equal(t, []string{"abstract", "protected"}, abstractMethod.Modifiers)

	finalMethod := cls.Body[6].(*ast.MethodDeclaration)
	assert.True(t, finalMethod.HasBody)
	assert.Equal(t, []string{"final", "public"}, finalMethod.Modifiers)
}

func TestDecl_ReadonlyClass(t *testing.T) {
	program := parseSource(t, `<?php readonly class Point { public function __construct(public readonly int $x, private string $y = "a") {} }`)
	cls := program.Statements[0].(*ast.ClassDeclaration)
	assert.Equal(t, []string{"readonly"}, cls.Modifiers)

	ctor := cls.Body[0].(*ast.MethodDeclaration)
	require.Len(t, ctor.Params, 2)
	assert.Equal(t, []string{"public", "readonly"}, ctor.Params[0].Modifiers)
	assert.Equal(t, []string{"private"}, ctor.Params[1].Modifiers)
	assert.NotNil(t, ctor.Params[1].Default)
}

func TestDecl_Interface(t *testing.T) {
	program := parseSource(t, `<?php interface Shape extends Drawable, Countable { const SIDES = 0; public function area(): float; }`)
	iface := program.Statements[0].(*ast.InterfaceDeclaration)
	require.Len(t, iface.Extends, 2)
	require.Len(t, iface.Body, 2)

	method := iface.Body[1].(*ast.MethodDeclaration)
	assert.False(t, method.HasBody)
}

func TestDecl_TraitWithAdaptations(t *testing.T) {
	program := parseSource(t, `<?php
trait Greets { public function hi() {} }
class User {
    use Greets, Loud {
        Greets::hi insteadof Loud;
        Loud::hi as protected shout;
    }
}
`)
	require.Len(t, program.Statements, 2)
	_, ok := program.Statements[0].(*ast.TraitDeclaration)
	assert.True(t, ok)

	cls := program.Statements[1].(*ast.ClassDeclaration)
	use := cls.Body[0].(*ast.TraitUseStatement)
	require.Len(t, use.Traits, 2)
	require.Len(t, use.Adaptations, 2)

	insteadof := use.Adaptations[0]
	assert.Equal(t, "Greets", insteadof.Trait.Value.String())
	require.Len(t, insteadof.Insteadof, 1)

	alias := use.Adaptations[1]
	assert.Equal(t, "protected", alias.Visibility)
	assert.Equal(t, "shout", alias.Alias.Value.String())
}

func TestDecl_Enum(t *testing.T) {
	program := parseSource(t, `<?php
enum Suit: string implements HasColor {
    case Hearts = 'H';
    case Spades = 'S';

    public function color(): string { return 'red'; }
}
enum Direction { case Up; case Down; }
`)
	require.Len(t, program.Statements, 2)

	backed := program.Statements[0].(*ast.EnumDeclaration)
	assert.Equal(t, "string", backed.BackingType.String())
	require.Len(t, backed.Implements, 1)
	require.Len(t, backed.Body, 3)

	hearts := backed.Body[0].(*ast.EnumCase)
	assert.Equal(t, "Hearts", hearts.Name.Value.String())
	assert.NotNil(t, hearts.Value)

	pure := program.Statements[1].(*ast.EnumDeclaration)
	assert.Nil(t, pure.BackingType)
	up := pure.Body[0].(*ast.EnumCase)
	assert.Nil(t, up.Value)
}

func TestDecl_Attributes(t *testing.T) {
	program := parseSource(t, `<?php
#[Route("/home", method: "GET")]
#[Deprecated]
class Controller {
    #[Inject]
    private Service $svc;

    public function handle(#[FromQuery] int $page) {}
}
`)
	cls := program.Statements[0].(*ast.ClassDeclaration)
	require.Len(t, cls.Attributes, 2)
	route := cls.Attributes[0].Attributes[0]
	assert.Equal(t, "Route", route.Name.Value.String())
	require.Len(t, route.Args, 2)
	assert.Equal(t, "method", route.Args[1].Name.String())

	prop := cls.Body[0].(*ast.PropertyStatement)
	require.Len(t, prop.Attributes, 1)

	method := cls.Body[1].(*ast.MethodDeclaration)
	require.Len(t, method.Params, 1)
	require.Len(t, method.Params[0].Attributes, 1)
}

func TestDecl_AttributesRequireDefinition(t *testing.T) {
	perr := parseFails(t, `<?php #[Attr] $x = 1;`)
	assert.Equal(t, errors.ExpectedItemDefinitionAfterAttributes, perr.Kind)
}

func TestDecl_AttributedClosureExpression(t *testing.T) {
	program := parseSource(t, `<?php $f = #[Pure] function () {}; $g = #[Pure] static fn () => 1;`)
	closure := program.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ClosureExpression)
	require.Len(t, closure.Attributes, 1)

	arrow := program.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression).Right.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.Static)
	require.Len(t, arrow.Attributes, 1)
}

func TestDecl_ClassMemberError(t *testing.T) {
	perr := parseFails(t, `<?php class C { 42; }`)
	assert.Equal(t, errors.ExpectedOneOf, perr.Kind)
}
