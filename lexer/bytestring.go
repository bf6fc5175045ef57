package lexer

import (
	"bytes"
	"fmt"
	"strings"
)

// ByteString 二进制安全的字节串。PHP 源码不要求是合法的 UTF-8，
// 因此标识符、字面量和注释内容统一以原始字节保存，不做转码。
type ByteString []byte

// NewByteString 从字节切片创建 ByteString（拷贝）
func NewByteString(b []byte) ByteString {
	out := make(ByteString, len(b))
	copy(out, b)
	return out
}

// ByteStringFrom 从字符串创建 ByteString
func ByteStringFrom(s string) ByteString {
	return ByteString(s)
}

// String 返回原始字节的字符串形式
func (b ByteString) String() string {
	return string(b)
}

// Bytes 返回底层字节
func (b ByteString) Bytes() []byte {
	return []byte(b)
}

// Len 返回字节数
func (b ByteString) Len() int {
	return len(b)
}

// IsEmpty 检查是否为空
func (b ByteString) IsEmpty() bool {
	return len(b) == 0
}

// Equal 按字节比较
func (b ByteString) Equal(other ByteString) bool {
	return bytes.Equal(b, other)
}

// EqualString 与 Go 字符串按字节比较
func (b ByteString) EqualString(s string) bool {
	return string(b) == s
}

// Debug 返回带引号的调试形式：控制字节与高位字节转义为 \xNN，
// 换行、回车、制表符使用 C 风格转义，可打印 ASCII 原样输出。
// 诊断信息和测试 golden 依赖这个固定格式。
func (b ByteString) Debug() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		switch {
		case c == 0:
			sb.WriteString(`\0`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c <= 0x19 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// MarshalJSON 以调试转义形式输出，保证非 UTF-8 内容可序列化
func (b ByteString) MarshalJSON() ([]byte, error) {
	debug := b.Debug()
	inner := debug[1 : len(debug)-1]
	inner = strings.ReplaceAll(inner, `\`, `\\`)
	inner = strings.ReplaceAll(inner, `"`, `\"`)
	return []byte(`"` + inner + `"`), nil
}
