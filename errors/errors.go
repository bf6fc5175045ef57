// Package errors 定义解析阶段的错误值。
// 每个错误都是一个带类型标签和 0-2 个位置参数的值；解析是 fail-fast 的，
// 第一个错误即终止。Error() 产生一句人类可读的消息，Debug() 是
// golden 测试使用的规范结构形式。
package errors

import (
	"fmt"
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// ErrorKind 语法错误类型
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEndOfFile
	ExpectedOneOf
	ExpectedItemDefinitionAfterAttributes
	TryWithoutCatchOrFinally
	MatchExpressionWithMultipleDefaultArms
)

// ParseError 语法错误
type ParseError struct {
	Kind     ErrorKind      `json:"kind"`
	Found    string         `json:"found,omitempty"`    // 实际遇到的 token 拼写
	Expected []string       `json:"expected,omitempty"` // 期望的拼写集合
	Span     lexer.Span     `json:"span"`
	Position lexer.Position `json:"position"`
}

// NewUnexpectedToken 创建意外 token 错误
func NewUnexpectedToken(tok lexer.Token) *ParseError {
	if tok.Type == lexer.T_EOF {
		return NewUnexpectedEndOfFile(tok)
	}
	return &ParseError{
		Kind:     UnexpectedToken,
		Found:    tok.Describe(),
		Span:     tok.Span,
		Position: tok.Position,
	}
}

// NewUnexpectedEndOfFile 创建意外文件结束错误
func NewUnexpectedEndOfFile(tok lexer.Token) *ParseError {
	return &ParseError{
		Kind:     UnexpectedEndOfFile,
		Span:     tok.Span,
		Position: tok.Position,
	}
}

// NewExpectedOneOf 创建期望集合错误
func NewExpectedOneOf(expected []string, tok lexer.Token) *ParseError {
	if tok.Type == lexer.T_EOF {
		return NewUnexpectedEndOfFile(tok)
	}
	return &ParseError{
		Kind:     ExpectedOneOf,
		Found:    tok.Describe(),
		Expected: expected,
		Span:     tok.Span,
		Position: tok.Position,
	}
}

// NewExpectedItemDefinitionAfterAttributes 属性后面必须跟可标注的定义
func NewExpectedItemDefinitionAfterAttributes(tok lexer.Token) *ParseError {
	return &ParseError{
		Kind:     ExpectedItemDefinitionAfterAttributes,
		Found:    tok.Describe(),
		Span:     tok.Span,
		Position: tok.Position,
	}
}

// NewTryWithoutCatchOrFinally try 至少需要一个 catch 或 finally
func NewTryWithoutCatchOrFinally(span lexer.Span, pos lexer.Position) *ParseError {
	return &ParseError{
		Kind:     TryWithoutCatchOrFinally,
		Span:     span,
		Position: pos,
	}
}

// NewMatchExpressionWithMultipleDefaultArms match 中出现第二个 default 分支
func NewMatchExpressionWithMultipleDefaultArms(tok lexer.Token) *ParseError {
	return &ParseError{
		Kind:     MatchExpressionWithMultipleDefaultArms,
		Span:     tok.Span,
		Position: tok.Position,
	}
}

// Error 实现 error 接口：一句话说明期望集合与实际 token
func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token `%s` on line %d column %d",
			e.Found, e.Position.Line, e.Position.Column)
	case UnexpectedEndOfFile:
		return "unexpected end of file"
	case ExpectedOneOf:
		quoted := make([]string, 0, len(e.Expected))
		for _, s := range e.Expected {
			quoted = append(quoted, "`"+s+"`")
		}
		return fmt.Sprintf("expected one of %s, found `%s` on line %d column %d",
			strings.Join(quoted, ", "), e.Found, e.Position.Line, e.Position.Column)
	case ExpectedItemDefinitionAfterAttributes:
		return fmt.Sprintf("expected item definition after attributes, found `%s` on line %d column %d",
			e.Found, e.Position.Line, e.Position.Column)
	case TryWithoutCatchOrFinally:
		return fmt.Sprintf("cannot use try without catch or finally on line %d column %d",
			e.Position.Line, e.Position.Column)
	case MatchExpressionWithMultipleDefaultArms:
		return fmt.Sprintf("match expressions may only contain one default arm, found a second on line %d column %d",
			e.Position.Line, e.Position.Column)
	}
	return "unknown parse error"
}

// Debug 返回规范的结构化形式
func (e *ParseError) Debug() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("UnexpectedToken(%q, (%d, %d))", e.Found, e.Span.Start, e.Span.End)
	case UnexpectedEndOfFile:
		return "UnexpectedEndOfFile"
	case ExpectedOneOf:
		quoted := make([]string, 0, len(e.Expected))
		for _, s := range e.Expected {
			quoted = append(quoted, fmt.Sprintf("%q", s))
		}
		return fmt.Sprintf("ExpectedOneOf([%s], %q, (%d, %d))",
			strings.Join(quoted, ", "), e.Found, e.Span.Start, e.Span.End)
	case ExpectedItemDefinitionAfterAttributes:
		return fmt.Sprintf("ExpectedItemDefinitionAfterAttributes((%d, %d))", e.Span.Start, e.Span.End)
	case TryWithoutCatchOrFinally:
		return fmt.Sprintf("TryWithoutCatchOrFinally((%d, %d))", e.Span.Start, e.Span.End)
	case MatchExpressionWithMultipleDefaultArms:
		return fmt.Sprintf("MatchExpressionWithMultipleDefaultArms((%d, %d))", e.Span.Start, e.Span.End)
	}
	return "UnknownParseError"
}
