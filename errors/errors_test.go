package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wudi/php-parser/lexer"
)

func tokenAt(t lexer.TokenType, value string, start, end int) lexer.Token {
	return lexer.Token{
		Type:     t,
		Value:    lexer.ByteStringFrom(value),
		Position: lexer.Position{Line: 1, Column: start, Offset: start},
		Span:     lexer.Span{Start: start, End: end},
	}
}

func TestUnexpectedToken(t *testing.T) {
	err := NewUnexpectedToken(tokenAt(lexer.TOKEN_RBRACE, "", 10, 11))
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, "unexpected token `}` on line 1 column 10", err.Error())
	assert.Equal(t, `UnexpectedToken("}", (10, 11))`, err.Debug())
}

func TestUnexpectedTokenOnEOFBecomesEndOfFile(t *testing.T) {
	err := NewUnexpectedToken(lexer.Token{Type: lexer.T_EOF})
	assert.Equal(t, UnexpectedEndOfFile, err.Kind)
	assert.Equal(t, "unexpected end of file", err.Error())
	assert.Equal(t, "UnexpectedEndOfFile", err.Debug())
}

func TestExpectedOneOf(t *testing.T) {
	err := NewExpectedOneOf([]string{"{", ":"}, tokenAt(lexer.TOKEN_SEMICOLON, "", 5, 6))
	assert.Equal(t, "expected one of `{`, `:`, found `;` on line 1 column 5", err.Error())
	assert.Equal(t, `ExpectedOneOf(["{", ":"], ";", (5, 6))`, err.Debug())
}

func TestVariableTokenSpelling(t *testing.T) {
	err := NewUnexpectedToken(tokenAt(lexer.T_VARIABLE, "name", 3, 8))
	assert.Equal(t, "unexpected token `$name` on line 1 column 3", err.Error())
}

func TestTryWithoutCatchOrFinally(t *testing.T) {
	err := NewTryWithoutCatchOrFinally(lexer.Span{Start: 6, End: 9}, lexer.Position{Line: 1, Column: 6})
	assert.Equal(t, "TryWithoutCatchOrFinally((6, 9))", err.Debug())
}
