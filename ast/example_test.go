package ast_test

import (
	"fmt"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/parser"
)

func ExampleWalk() {
	program, err := parser.ParseSource([]byte(`<?php echo 1 + 2;`))
	if err != nil {
		panic(err)
	}

	ast.Walk(ast.VisitorFunc(func(n ast.Node) bool {
		fmt.Println(n.GetKind())
		return true
	}), program)

	// Output:
	// Program
	// EchoStatement
	// BinaryExpression
	// IntegerLiteral
	// IntegerLiteral
}

func ExampleProgram_String() {
	program, err := parser.ParseSource([]byte(`<?php $x = 1 + 2 * 3;`))
	if err != nil {
		panic(err)
	}
	fmt.Println(program.String())

	// Output:
	// $x = (1 + (2 * 3));
}
