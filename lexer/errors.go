package lexer

import "fmt"

// LexErrorKind 词法错误类型
type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	UnterminatedString
	UnterminatedBlockComment
	InvalidNumericLiteral
	UnexpectedEndInDocString
	InconsistentDocStringIndentation
)

// LexError 词法错误：类型标签加上 0-2 个位置参数。
// Error() 产生一句人类可读的消息，Debug() 是 golden 测试使用的规范形式。
type LexError struct {
	Kind     LexErrorKind `json:"kind"`
	Byte     byte         `json:"byte,omitempty"`  // UnexpectedCharacter 的触发字节
	Label    ByteString   `json:"label,omitempty"` // doc string 标签
	Span     Span         `json:"span"`
	Position Position     `json:"position"`
}

// Error 实现 error 接口
func (e *LexError) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character `%s` on line %d column %d",
			ByteString{e.Byte}.String(), e.Position.Line, e.Position.Column)
	case UnterminatedString:
		return fmt.Sprintf("unterminated string starting on line %d column %d",
			e.Position.Line, e.Position.Column)
	case UnterminatedBlockComment:
		return fmt.Sprintf("unterminated block comment starting on line %d column %d",
			e.Position.Line, e.Position.Column)
	case InvalidNumericLiteral:
		return fmt.Sprintf("invalid numeric literal on line %d column %d",
			e.Position.Line, e.Position.Column)
	case UnexpectedEndInDocString:
		return fmt.Sprintf("unexpected end of file inside doc string `%s`", e.Label.String())
	case InconsistentDocStringIndentation:
		return fmt.Sprintf("inconsistent doc string indentation on line %d", e.Position.Line)
	}
	return "unknown lexical error"
}

// Debug 返回规范的结构化形式
func (e *LexError) Debug() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("UnexpectedCharacter(%d, %d)", e.Byte, e.Span.Start)
	case UnterminatedString:
		return fmt.Sprintf("UnterminatedString(%d)", e.Span.Start)
	case UnterminatedBlockComment:
		return fmt.Sprintf("UnterminatedBlockComment(%d)", e.Span.Start)
	case InvalidNumericLiteral:
		return fmt.Sprintf("InvalidNumericLiteral(%d..%d)", e.Span.Start, e.Span.End)
	case UnexpectedEndInDocString:
		return fmt.Sprintf("UnexpectedEndInDocString(%s)", e.Label.Debug())
	case InconsistentDocStringIndentation:
		return fmt.Sprintf("InconsistentDocStringIndentation(%d..%d)", e.Span.Start, e.Span.End)
	}
	return "UnknownLexError"
}
