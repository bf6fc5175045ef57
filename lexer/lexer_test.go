package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenExpectation struct {
	expectedType  TokenType
	expectedValue string
}

func runTokenTest(t *testing.T, input string, tests []tokenExpectation) {
	t.Helper()
	lex := New([]byte(input))
	for i, tt := range tests {
		tok, err := lex.NextToken()
		require.Nilf(t, err, "test[%d] - unexpected lex error: %v", i, err)
		assert.Equal(t, tt.expectedType, tok.Type,
			"test[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		assert.Equal(t, tt.expectedValue, tok.Value.String(),
			"test[%d] - value wrong. expected=%q, got=%q", i, tt.expectedValue, tok.Value.String())
	}
}

func TestLexer_BasicTokens(t *testing.T) {
	runTokenTest(t, `<?php echo "Hello, World!"; ?>`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_ECHO, "echo"},
		{T_CONSTANT_ENCAPSED_STRING, `"Hello, World!"`},
		{TOKEN_SEMICOLON, ";"},
		{T_CLOSE_TAG, "?>"},
		{T_EOF, ""},
	})
}

func TestLexer_Variables(t *testing.T) {
	runTokenTest(t, `<?php $name = 'John'; $age = 25;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_VARIABLE, "name"},
		{TOKEN_EQUAL, "="},
		{T_CONSTANT_ENCAPSED_STRING, `'John'`},
		{TOKEN_SEMICOLON, ";"},
		{T_VARIABLE, "age"},
		{TOKEN_EQUAL, "="},
		{T_LNUMBER, "25"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_NumericLiterals(t *testing.T) {
	runTokenTest(t, `<?php 0xFF; 0b1010; 0o17; 0777; 1_000_000; 3.14; .5; 1.5e3; 2E-1;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_LNUMBER, "0xFF"},
		{TOKEN_SEMICOLON, ";"},
		{T_LNUMBER, "0b1010"},
		{TOKEN_SEMICOLON, ";"},
		{T_LNUMBER, "0o17"},
		{TOKEN_SEMICOLON, ";"},
		{T_LNUMBER, "0777"},
		{TOKEN_SEMICOLON, ";"},
		{T_LNUMBER, "1_000_000"},
		{TOKEN_SEMICOLON, ";"},
		{T_DNUMBER, "3.14"},
		{TOKEN_SEMICOLON, ";"},
		{T_DNUMBER, ".5"},
		{TOKEN_SEMICOLON, ";"},
		{T_DNUMBER, "1.5e3"},
		{TOKEN_SEMICOLON, ";"},
		{T_DNUMBER, "2E-1"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_CompoundOperators(t *testing.T) {
	runTokenTest(t, `<?php $a ??= $b <=> $c ** 2; $o?->m; $x <<= 1; $y !== $z;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_VARIABLE, "a"},
		{T_COALESCE_EQUAL, "??="},
		{T_VARIABLE, "b"},
		{T_SPACESHIP, "<=>"},
		{T_VARIABLE, "c"},
		{T_POW, "**"},
		{T_LNUMBER, "2"},
		{TOKEN_SEMICOLON, ";"},
		{T_VARIABLE, "o"},
		{T_NULLSAFE_OBJECT_OPERATOR, "?->"},
		{T_STRING, "m"},
		{TOKEN_SEMICOLON, ";"},
		{T_VARIABLE, "x"},
		{T_SL_EQUAL, "<<="},
		{T_LNUMBER, "1"},
		{TOKEN_SEMICOLON, ";"},
		{T_VARIABLE, "y"},
		{T_IS_NOT_IDENTICAL, "!=="},
		{T_VARIABLE, "z"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_QualifiedNames(t *testing.T) {
	runTokenTest(t, `<?php \Foo\Bar; Foo\Baz; namespace\Qux; foo;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_NAME_FULLY_QUALIFIED, `\Foo\Bar`},
		{TOKEN_SEMICOLON, ";"},
		{T_NAME_QUALIFIED, `Foo\Baz`},
		{TOKEN_SEMICOLON, ";"},
		{T_NAME_RELATIVE, `namespace\Qux`},
		{TOKEN_SEMICOLON, ";"},
		{T_STRING, "foo"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_Comments(t *testing.T) {
	input := "<?php // line\n# hash\n/* block */ /** doc */ $x;"
	runTokenTest(t, input, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_LINE_COMMENT, "// line"},
		{T_HASH_COMMENT, "# hash"},
		{T_BLOCK_COMMENT, "/* block */"},
		{T_DOC_COMMENT, "/** doc */"},
		{T_VARIABLE, "x"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_AttributeIsNotComment(t *testing.T) {
	runTokenTest(t, `<?php #[Attr] $x;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_ATTRIBUTE, "#["},
		{T_STRING, "Attr"},
		{TOKEN_RBRACKET, "]"},
		{T_VARIABLE, "x"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_TypeCasts(t *testing.T) {
	runTokenTest(t, `<?php (int) $a; ( string ) $b; (BOOL) $c; (integer) $d;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_INT_CAST, "(int)"},
		{T_VARIABLE, "a"},
		{TOKEN_SEMICOLON, ";"},
		{T_STRING_CAST, "( string )"},
		{T_VARIABLE, "b"},
		{TOKEN_SEMICOLON, ";"},
		{T_BOOL_CAST, "(BOOL)"},
		{T_VARIABLE, "c"},
		{TOKEN_SEMICOLON, ";"},
		{T_INT_CAST, "(integer)"},
		{T_VARIABLE, "d"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_KeywordsCaseInsensitive(t *testing.T) {
	runTokenTest(t, `<?php FUNCTION Foo() {} ECHO 1;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_FUNCTION, "FUNCTION"},
		{T_STRING, "Foo"},
		{TOKEN_LPAREN, "("},
		{TOKEN_RPAREN, ")"},
		{TOKEN_LBRACE, "{"},
		{TOKEN_RBRACE, "}"},
		{T_ECHO, "ECHO"},
		{T_LNUMBER, "1"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_YieldFrom(t *testing.T) {
	runTokenTest(t, `<?php yield from $gen; yield $v;`, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_YIELD_FROM, "yield from"},
		{T_VARIABLE, "gen"},
		{TOKEN_SEMICOLON, ";"},
		{T_YIELD, "yield"},
		{T_VARIABLE, "v"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_InlineHTML(t *testing.T) {
	runTokenTest(t, "header\n<?php echo 1; ?>\nfooter", []tokenExpectation{
		{T_INLINE_HTML, "header\n"},
		{T_OPEN_TAG, "<?php "},
		{T_ECHO, "echo"},
		{T_LNUMBER, "1"},
		{TOKEN_SEMICOLON, ";"},
		{T_CLOSE_TAG, "?>"},
		{T_INLINE_HTML, "footer"},
		{T_EOF, ""},
	})
}

func TestLexer_OpenTagWithEcho(t *testing.T) {
	runTokenTest(t, `<?= $x ?>`, []tokenExpectation{
		{T_OPEN_TAG_WITH_ECHO, "<?="},
		{T_VARIABLE, "x"},
		{T_CLOSE_TAG, "?>"},
		{T_EOF, ""},
	})
}

func TestLexer_Shebang(t *testing.T) {
	input := "#!/usr/bin/env php\n<?php $x;"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)
	require.GreaterOrEqual(t, len(tokens), 3)
	assert.Equal(t, T_OPEN_TAG, tokens[0].Type)
	assert.Equal(t, 19, tokens[0].Span.Start)
	assert.Equal(t, T_VARIABLE, tokens[1].Type)
}

func TestLexer_HaltCompiler(t *testing.T) {
	input := "<?php $x = 1; __halt_compiler(); this is not php at all"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)
	last := tokens[len(tokens)-1]
	assert.Equal(t, T_EOF, last.Type)
	// __halt_compiler 之后的内容被吞掉
	for _, tok := range tokens {
		assert.NotEqual(t, T_INLINE_HTML, tok.Type)
	}
}

func TestLexer_SpanInvariant(t *testing.T) {
	input := `<?php function foo(int $a): ?string { return "x" . $a; }`
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)

	for i, tok := range tokens {
		if tok.Type == T_EOF {
			assert.Equal(t, tok.Span.Start, tok.Span.End)
			assert.Equal(t, len(input), tok.Span.Start)
			continue
		}
		assert.Lessf(t, tok.Span.Start, tok.Span.End, "token[%d] %s span not ordered", i, tok.Type)
	}
	// 序列里只有一个 EOF 且在末尾
	for i, tok := range tokens[:len(tokens)-1] {
		assert.NotEqualf(t, T_EOF, tok.Type, "token[%d] premature EOF", i)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  LexErrorKind
	}{
		{"unexpected character", "<?php $x = `ls`;", UnexpectedCharacter},
		{"unterminated single quote", "<?php $x = 'abc", UnterminatedString},
		{"unterminated double quote", `<?php $x = "abc`, UnterminatedString},
		{"unterminated block comment", "<?php /* never closed", UnterminatedBlockComment},
		{"identifier glued to number", "<?php 123abc;", InvalidNumericLiteral},
		{"double underscore separator", "<?php 1__2;", InvalidNumericLiteral},
		{"empty hex literal", "<?php 0x;", InvalidNumericLiteral},
		{"bad legacy octal", "<?php 0789;", InvalidNumericLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input))
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	lex := New([]byte("<?php `"))
	for {
		tok, err := lex.NextToken()
		if err != nil {
			_, err2 := lex.NextToken()
			assert.Equal(t, err, err2)
			return
		}
		require.NotEqual(t, T_EOF, tok.Type, "expected a lex error before EOF")
	}
}
