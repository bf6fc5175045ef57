package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_HeredocBasic(t *testing.T) {
	input := "<?php $x = <<<EOT\nHello $name\nEOT;"
	runTokenTest(t, input, []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_VARIABLE, "x"},
		{TOKEN_EQUAL, "="},
		{T_START_HEREDOC, "EOT"},
		{T_ENCAPSED_AND_WHITESPACE, "Hello "},
		{T_VARIABLE, "name"},
		{T_END_HEREDOC, "EOT"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_HeredocKindMetadata(t *testing.T) {
	tokens, err := Tokenize([]byte("<?php $x = <<<EOT\nbody\nEOT;"))
	require.Nil(t, err)

	var start, end *Token
	for i := range tokens {
		switch tokens[i].Type {
		case T_START_HEREDOC:
			start = &tokens[i]
		case T_END_HEREDOC:
			end = &tokens[i]
		}
	}
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, DocStringHeredoc, start.DocKind)
	assert.Equal(t, IndentNone, end.DocIndentKind)
	assert.Equal(t, 0, end.DocIndent)
}

func TestLexer_HeredocIndentationStripped(t *testing.T) {
	input := "<?php $x = <<<EOT\n    line1\n    line2\n    EOT;"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)

	var body *Token
	var end *Token
	for i := range tokens {
		switch tokens[i].Type {
		case T_ENCAPSED_AND_WHITESPACE:
			body = &tokens[i]
		case T_END_HEREDOC:
			end = &tokens[i]
		}
	}
	require.NotNil(t, body)
	require.NotNil(t, end)
	assert.Equal(t, "line1\nline2", body.Value.String())
	assert.Equal(t, IndentSpace, end.DocIndentKind)
	assert.Equal(t, 4, end.DocIndent)
}

func TestLexer_HeredocTabIndentation(t *testing.T) {
	input := "<?php $x = <<<EOT\n\tbody\n\tEOT;"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)

	for _, tok := range tokens {
		if tok.Type == T_END_HEREDOC {
			assert.Equal(t, IndentTab, tok.DocIndentKind)
			assert.Equal(t, 1, tok.DocIndent)
			return
		}
	}
	t.Fatal("no T_END_HEREDOC produced")
}

func TestLexer_HeredocEmptyBody(t *testing.T) {
	runTokenTest(t, "<?php $x = <<<EOT\nEOT;", []tokenExpectation{
		{T_OPEN_TAG, "<?php "},
		{T_VARIABLE, "x"},
		{TOKEN_EQUAL, "="},
		{T_START_HEREDOC, "EOT"},
		{T_END_HEREDOC, "EOT"},
		{TOKEN_SEMICOLON, ";"},
		{T_EOF, ""},
	})
}

func TestLexer_Nowdoc(t *testing.T) {
	input := "<?php $x = <<<'EOT'\nraw $notavar\nEOT;"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)

	var start, body *Token
	for i := range tokens {
		switch tokens[i].Type {
		case T_START_HEREDOC:
			start = &tokens[i]
		case T_ENCAPSED_AND_WHITESPACE:
			body = &tokens[i]
		case T_VARIABLE:
			if tokens[i].Value.EqualString("notavar") {
				t.Fatal("nowdoc must not interpolate")
			}
		}
	}
	require.NotNil(t, start)
	require.NotNil(t, body)
	assert.Equal(t, DocStringNowdoc, start.DocKind)
	assert.Equal(t, "raw $notavar", body.Value.String())
}

func TestLexer_HeredocInterpolation(t *testing.T) {
	input := "<?php $x = <<<EOT\na {$v} b\nEOT;"
	tokens, err := Tokenize([]byte(input))
	require.Nil(t, err)

	var kinds []TokenType
	for _, tok := range tokens {
		kinds = append(kinds, tok.Type)
	}
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_VARIABLE, TOKEN_EQUAL,
		T_START_HEREDOC,
		T_ENCAPSED_AND_WHITESPACE, T_CURLY_OPEN, T_VARIABLE, TOKEN_RBRACE, T_ENCAPSED_AND_WHITESPACE,
		T_END_HEREDOC, TOKEN_SEMICOLON, T_EOF,
	}, kinds)
}

func TestLexer_HeredocErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  LexErrorKind
	}{
		{"missing end label", "<?php $x = <<<EOT\nno end in sight", UnexpectedEndInDocString},
		{"mixed indentation on closing label", "<?php $x = <<<EOT\n \tbody\n \tEOT;", InconsistentDocStringIndentation},
		{"body line under-indented", "<?php $x = <<<EOT\nab\n  EOT;", InconsistentDocStringIndentation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input))
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}
}
