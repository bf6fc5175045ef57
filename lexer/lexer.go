package lexer

import (
	"bytes"
)

// Lexer 词法分析器。持有源字节、游标和模式栈，
// NextToken 按当前模式产出下一个词法单元，遇到第一个错误即停止。
type Lexer struct {
	input        []byte // 输入源字节
	position     int    // 当前位置（指向当前字符）
	readPosition int    // 当前读取位置（指向当前字符之后的字符）
	ch           byte   // 当前字符
	line         int    // 当前行号
	column       int    // 当前列号

	// 模式管理
	state LexerState
	stack *StateStack

	// 当前 heredoc/nowdoc 帧，仅 ST_HEREDOC / ST_NOWDOC 下有效
	doc StateFrame
	// 正文首行的缩进尚未剥除
	docStripPending bool

	// __halt_compiler 处理
	haltPending bool

	err *LexError
}

// New 创建新的词法分析器
func New(input []byte) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		state:  ST_INITIAL,
		stack:  NewStateStack(),
	}

	l.skipShebang()
	l.readChar()
	return l
}

// Tokenize 扫描完整输入并返回以 T_EOF 结尾的 token 序列，
// 或返回遇到的第一个词法错误
func Tokenize(input []byte) ([]Token, *LexError) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == T_EOF {
			return tokens, nil
		}
	}
}

// skipShebang 跳过文件开头的 shebang 行（如 #!/usr/bin/php）。
// 只移动游标，不截断输入，保证 Span 仍指向原始字节。
func (l *Lexer) skipShebang() {
	if len(l.input) < 2 || l.input[0] != '#' || l.input[1] != '!' {
		return
	}
	i := 0
	for i < len(l.input) && l.input[i] != '\n' {
		i++
	}
	if i < len(l.input) {
		i++ // 跳过 \n
	}
	l.readPosition = i
	if i > 0 {
		l.line = 1 // readChar 跨过换行时自增
	}
}

// readChar 读取下一个字符并前进指针
func (l *Lexer) readChar() {
	l.position = l.readPosition
	l.readPosition++

	if l.position >= len(l.input) {
		l.ch = 0
		return
	}

	l.ch = l.input[l.position]

	if l.position == 0 {
		l.line = 1
		l.column = 0
	} else {
		if l.input[l.position-1] == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
}

// advanceTo 逐字符前进到指定偏移，保持行列信息正确
func (l *Lexer) advanceTo(offset int) {
	for l.position < offset && l.position < len(l.input) {
		l.readChar()
	}
	if l.position >= len(l.input) {
		l.position = len(l.input)
		l.ch = 0
	}
}

// peekChar 查看下一个字符但不移动指针
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// peekCharN 查看当前字符之后第 n+1 个字符（peekCharN(0) == peekChar()）
func (l *Lexer) peekCharN(n int) byte {
	pos := l.readPosition + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// currentPos 获取当前位置
func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

func isLabelStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isLabelPart(ch byte) bool {
	return isLabelStart(ch) || (ch >= '0' && ch <= '9')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// token 构造一个覆盖 [start, l.position) 的 Token
func (l *Lexer) token(t TokenType, start int, pos Position, value []byte) Token {
	return Token{Type: t, Value: ByteString(value), Position: pos, Span: Span{Start: start, End: l.position}}
}

func (l *Lexer) eofToken() Token {
	n := len(l.input)
	return Token{
		Type:     T_EOF,
		Position: Position{Line: l.line, Column: l.column, Offset: n},
		Span:     Span{Start: n, End: n},
	}
}

func (l *Lexer) fail(kind LexErrorKind, span Span, pos Position) (Token, *LexError) {
	l.err = &LexError{Kind: kind, Span: span, Position: pos}
	return Token{}, l.err
}

// State 返回当前扫描模式
func (l *Lexer) State() LexerState {
	return l.state
}

// popState 弹出栈顶帧并恢复其模式；heredoc/nowdoc 帧同时恢复 doc 信息
func (l *Lexer) popState() {
	frame := l.stack.Pop()
	l.state = frame.State
	if frame.State == ST_HEREDOC || frame.State == ST_NOWDOC {
		l.doc = frame
	}
}

// NextToken 返回下一个 token，遇到错误时返回该错误并停止
func (l *Lexer) NextToken() (Token, *LexError) {
	if l.err != nil {
		return Token{}, l.err
	}

	switch l.state {
	case ST_INITIAL:
		return l.nextTokenInitial()
	case ST_IN_SCRIPTING:
		return l.nextTokenInScripting()
	case ST_DOUBLE_QUOTES:
		return l.nextTokenInDoubleQuotes()
	case ST_HEREDOC:
		return l.nextTokenInHeredoc()
	case ST_NOWDOC:
		return l.nextTokenInNowdoc()
	case ST_VAR_OFFSET:
		return l.nextTokenInVarOffset()
	case ST_LOOKING_FOR_PROPERTY:
		return l.nextTokenLookingForProperty()
	case ST_LOOKING_FOR_VARNAME:
		return l.nextTokenLookingForVarname()
	case ST_HALTED:
		return l.eofToken(), nil
	}
	return l.eofToken(), nil
}

// matchOpenTag 检查 offset 处是否是开放标签，返回标签长度和类型
func (l *Lexer) matchOpenTag(offset int) (int, TokenType, bool) {
	rest := l.input[offset:]
	if len(rest) >= 3 && rest[0] == '<' && rest[1] == '?' && rest[2] == '=' {
		return 3, T_OPEN_TAG_WITH_ECHO, true
	}
	if len(rest) >= 5 && rest[0] == '<' && rest[1] == '?' &&
		lowerByte(rest[2]) == 'p' && lowerByte(rest[3]) == 'h' && lowerByte(rest[4]) == 'p' {
		// <?php 必须后跟空白或文件结束
		if len(rest) == 5 || isWhitespace(rest[5]) {
			return 5, T_OPEN_TAG, true
		}
	}
	return 0, T_UNKNOWN, false
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}

// nextTokenInitial 扫描代码区之外的字面内容
func (l *Lexer) nextTokenInitial() (Token, *LexError) {
	if l.position >= len(l.input) {
		return l.eofToken(), nil
	}

	start := l.position
	pos := l.currentPos()

	if n, tt, ok := l.matchOpenTag(l.position); ok {
		l.advanceTo(l.position + n)
		if tt == T_OPEN_TAG {
			// 开放标签吞掉紧随其后的一个空白字符
			if l.ch == '\r' && l.peekChar() == '\n' {
				l.readChar()
				l.readChar()
			} else if isWhitespace(l.ch) {
				l.readChar()
			}
		}
		l.state = ST_IN_SCRIPTING
		return l.token(tt, start, pos, l.input[start:l.position]), nil
	}

	// 收集直到下一个开放标签或文件结束的字面内容
	end := l.position + 1
	for end < len(l.input) {
		if l.input[end] == '<' {
			if _, _, ok := l.matchOpenTag(end); ok {
				break
			}
		}
		end++
	}
	l.advanceTo(end)
	return l.token(T_INLINE_HTML, start, pos, l.input[start:end]), nil
}

// nextTokenInScripting 扫描 PHP 代码
func (l *Lexer) nextTokenInScripting() (Token, *LexError) {
	l.skipWhitespace()

	if l.position >= len(l.input) {
		return l.eofToken(), nil
	}

	start := l.position
	pos := l.currentPos()

	switch {
	case l.ch == '?':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			tok := l.token(T_CLOSE_TAG, start, pos, l.input[start:l.position])
			// ?> 之后紧随的一个换行被吞掉
			if l.ch == '\r' && l.peekChar() == '\n' {
				l.readChar()
				l.readChar()
			} else if l.ch == '\n' {
				l.readChar()
			}
			l.state = ST_INITIAL
			return tok, nil
		}
		if l.peekChar() == '-' && l.peekCharN(1) == '>' {
			l.readChar()
			l.readChar()
			l.readChar()
			return l.token(T_NULLSAFE_OBJECT_OPERATOR, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '?' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_COALESCE_EQUAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_COALESCE, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_QUESTION, start, pos, l.input[start:l.position]), nil

	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber()

	case l.ch == '\'':
		return l.readSingleQuotedString()

	case l.ch == '"':
		return l.beginDoubleQuotedString()

	case l.ch == '$':
		if isLabelStart(l.peekChar()) {
			l.readChar() // 跳过 $
			nameStart := l.position
			for isLabelPart(l.ch) {
				l.readChar()
			}
			return l.token(T_VARIABLE, start, pos, l.input[nameStart:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_DOLLAR, start, pos, l.input[start:l.position]), nil

	case isLabelStart(l.ch) || l.ch == '\\':
		return l.readNameOrKeyword()

	case l.ch == '(':
		if tok, ok := l.checkTypeCast(start, pos); ok {
			return tok, nil
		}
		l.readChar()
		return l.token(TOKEN_LPAREN, start, pos, l.input[start:l.position]), nil

	case l.ch == '/':
		switch l.peekChar() {
		case '/':
			return l.readLineComment(T_LINE_COMMENT)
		case '*':
			return l.readBlockComment()
		case '=':
			l.readChar()
			l.readChar()
			return l.token(T_DIV_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_DIVIDE, start, pos, l.input[start:l.position]), nil

	case l.ch == '#':
		if l.peekChar() == '[' {
			l.readChar()
			l.readChar()
			return l.token(T_ATTRIBUTE, start, pos, l.input[start:l.position]), nil
		}
		return l.readLineComment(T_HASH_COMMENT)

	case l.ch == '<':
		if l.peekChar() == '<' && l.peekCharN(1) == '<' {
			return l.beginDocString()
		}
		if l.peekChar() == '<' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_SL_EQUAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_SL, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			if l.peekCharN(1) == '>' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_SPACESHIP, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_IS_SMALLER_OR_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.token(T_IS_NOT_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_LT, start, pos, l.input[start:l.position]), nil

	case l.ch == '>':
		if l.peekChar() == '>' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_SR_EQUAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_SR, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_IS_GREATER_OR_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_GT, start, pos, l.input[start:l.position]), nil

	case l.ch == '=':
		if l.peekChar() == '=' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_IS_IDENTICAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_IS_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.token(T_DOUBLE_ARROW, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_EQUAL, start, pos, l.input[start:l.position]), nil

	case l.ch == '!':
		if l.peekChar() == '=' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_IS_NOT_IDENTICAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_IS_NOT_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_EXCLAMATION, start, pos, l.input[start:l.position]), nil

	case l.ch == '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return l.token(T_INC, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_PLUS_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_PLUS, start, pos, l.input[start:l.position]), nil

	case l.ch == '-':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return l.token(T_DEC, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_MINUS_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.token(T_OBJECT_OPERATOR, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_MINUS, start, pos, l.input[start:l.position]), nil

	case l.ch == '*':
		if l.peekChar() == '*' {
			if l.peekCharN(1) == '=' {
				l.readChar()
				l.readChar()
				l.readChar()
				return l.token(T_POW_EQUAL, start, pos, l.input[start:l.position]), nil
			}
			l.readChar()
			l.readChar()
			return l.token(T_POW, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_MUL_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_MULTIPLY, start, pos, l.input[start:l.position]), nil

	case l.ch == '%':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_MOD_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_MODULO, start, pos, l.input[start:l.position]), nil

	case l.ch == '.':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_CONCAT_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '.' && l.peekCharN(1) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return l.token(T_ELLIPSIS, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_DOT, start, pos, l.input[start:l.position]), nil

	case l.ch == ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return l.token(T_PAAMAYIM_NEKUDOTAYIM, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_COLON, start, pos, l.input[start:l.position]), nil

	case l.ch == '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return l.token(T_BOOLEAN_AND, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_AND_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_AMPERSAND, start, pos, l.input[start:l.position]), nil

	case l.ch == '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return l.token(T_BOOLEAN_OR, start, pos, l.input[start:l.position]), nil
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_OR_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_PIPE, start, pos, l.input[start:l.position]), nil

	case l.ch == '^':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.token(T_XOR_EQUAL, start, pos, l.input[start:l.position]), nil
		}
		l.readChar()
		return l.token(TOKEN_CARET, start, pos, l.input[start:l.position]), nil

	case l.ch == '{':
		l.stack.Push(StateFrame{State: ST_IN_SCRIPTING})
		l.readChar()
		return l.token(TOKEN_LBRACE, start, pos, l.input[start:l.position]), nil

	case l.ch == '}':
		if !l.stack.IsEmpty() {
			l.popState()
		}
		l.readChar()
		return l.token(TOKEN_RBRACE, start, pos, l.input[start:l.position]), nil

	case l.ch == '~' || l.ch == '@' || l.ch == ';' || l.ch == ',' ||
		l.ch == '[' || l.ch == ']' || l.ch == ')':
		ch := l.ch
		l.readChar()
		tok := l.token(TokenType(1000+int(ch)), start, pos, l.input[start:l.position])
		if ch == ';' && l.haltPending {
			l.haltPending = false
			l.state = ST_HALTED
		}
		return tok, nil
	}

	b := l.ch
	l.readChar()
	l.err = &LexError{Kind: UnexpectedCharacter, Byte: b, Span: Span{Start: start, End: l.position}, Position: pos}
	return Token{}, l.err
}

// readNameOrKeyword 读取标识符、限定名或关键字
func (l *Lexer) readNameOrKeyword() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	if l.ch == '\\' {
		l.readChar()
		if !isLabelStart(l.ch) {
			return l.token(T_NS_SEPARATOR, start, pos, l.input[start:l.position]), nil
		}
		for isLabelPart(l.ch) {
			l.readChar()
		}
		for l.ch == '\\' && isLabelStart(l.peekChar()) {
			l.readChar()
			for isLabelPart(l.ch) {
				l.readChar()
			}
		}
		return l.token(T_NAME_FULLY_QUALIFIED, start, pos, l.input[start:l.position]), nil
	}

	for isLabelPart(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.position]

	if l.ch == '\\' && isLabelStart(l.peekChar()) {
		tt := T_NAME_QUALIFIED
		if string(bytes.ToLower(word)) == "namespace" {
			tt = T_NAME_RELATIVE
		}
		for l.ch == '\\' && isLabelStart(l.peekChar()) {
			l.readChar()
			for isLabelPart(l.ch) {
				l.readChar()
			}
		}
		return l.token(tt, start, pos, l.input[start:l.position]), nil
	}

	if tt, ok := IsKeyword(string(word)); ok {
		if tt == T_YIELD {
			if tok, ok := l.tryYieldFrom(start, pos); ok {
				return tok, nil
			}
		}
		if tt == T_HALT_COMPILER {
			l.haltPending = true
		}
		return l.token(tt, start, pos, word), nil
	}

	return l.token(T_STRING, start, pos, word), nil
}

// tryYieldFrom 在 yield 之后探测 from，组合为 T_YIELD_FROM
func (l *Lexer) tryYieldFrom(start int, pos Position) (Token, bool) {
	i := l.position
	for i < len(l.input) && isWhitespace(l.input[i]) {
		i++
	}
	if i+4 > len(l.input) {
		return Token{}, false
	}
	word := l.input[i : i+4]
	if string(bytes.ToLower(word)) != "from" {
		return Token{}, false
	}
	if i+4 < len(l.input) && isLabelPart(l.input[i+4]) {
		return Token{}, false
	}
	l.advanceTo(i + 4)
	return l.token(T_YIELD_FROM, start, pos, l.input[start:l.position]), true
}

// checkTypeCast 探测类型转换 (int) (bool) … 括号内允许空白
func (l *Lexer) checkTypeCast(start int, pos Position) (Token, bool) {
	i := l.position + 1
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	wordStart := i
	for i < len(l.input) && isLabelPart(l.input[i]) {
		i++
	}
	word := string(bytes.ToLower(l.input[wordStart:i]))
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	if i >= len(l.input) || l.input[i] != ')' {
		return Token{}, false
	}

	var tt TokenType
	switch word {
	case "int", "integer":
		tt = T_INT_CAST
	case "bool", "boolean":
		tt = T_BOOL_CAST
	case "float", "double", "real":
		tt = T_DOUBLE_CAST
	case "string", "binary":
		tt = T_STRING_CAST
	case "array":
		tt = T_ARRAY_CAST
	case "object":
		tt = T_OBJECT_CAST
	case "unset":
		tt = T_UNSET_CAST
	default:
		return Token{}, false
	}

	l.advanceTo(i + 1)
	return l.token(tt, start, pos, l.input[start:l.position]), true
}

// readNumber 读取数字字面量，原始字节（含 _ 分隔符）保留在 Value 中
func (l *Lexer) readNumber() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	// 0x / 0b / 0o 前缀
	if l.ch == '0' {
		switch lowerByte(l.peekChar()) {
		case 'x':
			l.readChar()
			l.readChar()
			if ok := l.readDigitRun(isHexDigit); !ok {
				return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
			}
			return l.token(T_LNUMBER, start, pos, l.input[start:l.position]), nil
		case 'o':
			l.readChar()
			l.readChar()
			if ok := l.readDigitRun(isOctalDigit); !ok {
				return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
			}
			return l.token(T_LNUMBER, start, pos, l.input[start:l.position]), nil
		case 'b':
			l.readChar()
			l.readChar()
			if ok := l.readDigitRun(isBinaryDigit); !ok {
				return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
			}
			return l.token(T_LNUMBER, start, pos, l.input[start:l.position]), nil
		}
	}

	isFloat := false

	if l.ch == '.' {
		// .5 形式
		isFloat = true
		l.readChar()
		if ok := l.readDigitRun(isDigit); !ok {
			return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
		}
	} else {
		if ok := l.readDigitRun(isDigit); !ok {
			return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
		}
		if l.ch == '.' {
			if isDigit(l.peekChar()) {
				isFloat = true
				l.readChar()
				if ok := l.readDigitRun(isDigit); !ok {
					return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
				}
			} else if !isLabelStart(l.peekChar()) && l.peekChar() != '.' {
				// "1." 也是合法浮点
				isFloat = true
				l.readChar()
			}
		}
	}

	// 指数部分
	if lowerByte(l.ch) == 'e' {
		next := l.peekChar()
		afterSign := next
		signLen := 0
		if next == '+' || next == '-' {
			afterSign = l.peekCharN(1)
			signLen = 1
		}
		if isDigit(afterSign) {
			isFloat = true
			l.readChar() // e
			for i := 0; i < signLen; i++ {
				l.readChar()
			}
			if ok := l.readDigitRun(isDigit); !ok {
				return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
			}
		}
	}

	// 数字后直接跟标识符是错误的字面量，例如 123abc
	if isLabelStart(l.ch) {
		for isLabelPart(l.ch) {
			l.readChar()
		}
		return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
	}

	// 传统八进制中的非法数字：0 开头的整数不得包含 8/9
	raw := l.input[start:l.position]
	if !isFloat && len(raw) > 1 && raw[0] == '0' && raw[1] != '.' {
		for _, c := range raw[1:] {
			if c == '8' || c == '9' {
				return l.fail(InvalidNumericLiteral, Span{Start: start, End: l.position}, pos)
			}
		}
	}

	tt := T_LNUMBER
	if isFloat {
		tt = T_DNUMBER
	}
	return l.token(tt, start, pos, raw), nil
}

// readDigitRun 读取一段数字，校验 _ 分隔符必须位于两个数字之间。
// 返回 false 表示这一段不是合法的数字串。
func (l *Lexer) readDigitRun(valid func(byte) bool) bool {
	if !valid(l.ch) {
		return false
	}
	for {
		if valid(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '_' {
			if !valid(l.peekChar()) {
				// 吞掉非法的下划线，让错误 Span 覆盖它
				l.readChar()
				return false
			}
			l.readChar()
			continue
		}
		return true
	}
}

// readSingleQuotedString 读取单引号字符串，只识别 \\ 和 \' 转义。
// Value 保留含引号的原始字节
func (l *Lexer) readSingleQuotedString() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()
	l.readChar() // 跳过开头的 '

	for {
		if l.position >= len(l.input) {
			return l.fail(UnterminatedString, Span{Start: start, End: l.position}, pos)
		}
		if l.ch == '\\' && (l.peekChar() == '\\' || l.peekChar() == '\'') {
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '\'' {
			l.readChar()
			break
		}
		l.readChar()
	}

	return l.token(T_CONSTANT_ENCAPSED_STRING, start, pos, l.input[start:l.position]), nil
}

// beginDoubleQuotedString 区分纯字面双引号串与插值串
func (l *Lexer) beginDoubleQuotedString() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	interpolated, terminated := l.scanDoubleQuoted()
	if !terminated {
		l.advanceTo(len(l.input))
		return l.fail(UnterminatedString, Span{Start: start, End: l.position}, pos)
	}

	if !interpolated {
		// 无插值：整体作为字符串常量
		l.readChar() // 跳过 "
		for l.ch != '"' {
			if l.ch == '\\' {
				l.readChar()
			}
			l.readChar()
		}
		l.readChar() // 跳过结尾 "
		return l.token(T_CONSTANT_ENCAPSED_STRING, start, pos, l.input[start:l.position]), nil
	}

	l.readChar() // 跳过 "
	l.state = ST_DOUBLE_QUOTES
	return l.token(TOKEN_QUOTE, start, pos, l.input[start:l.position]), nil
}

// scanDoubleQuoted 预扫描当前双引号串，报告是否含插值、是否闭合
func (l *Lexer) scanDoubleQuoted() (interpolated bool, terminated bool) {
	j := l.position + 1
	for j < len(l.input) {
		switch l.input[j] {
		case '\\':
			j += 2
			continue
		case '"':
			return interpolated, true
		case '$':
			if j+1 < len(l.input) && (isLabelStart(l.input[j+1]) || l.input[j+1] == '{') {
				interpolated = true
			}
		case '{':
			if j+1 < len(l.input) && l.input[j+1] == '$' {
				interpolated = true
			}
		}
		j++
	}
	return interpolated, false
}

// nextTokenInDoubleQuotes 扫描插值字符串内部
func (l *Lexer) nextTokenInDoubleQuotes() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	if l.position >= len(l.input) {
		return l.fail(UnterminatedString, Span{Start: start, End: l.position}, pos)
	}

	if l.ch == '"' {
		l.readChar()
		l.state = ST_IN_SCRIPTING
		return l.token(TOKEN_QUOTE, start, pos, l.input[start:l.position]), nil
	}

	if tok, err, handled := l.interpolationToken(ST_DOUBLE_QUOTES); handled {
		return tok, err
	}

	// 字面片段
	value, err := l.readEncapsedRun(ST_DOUBLE_QUOTES, start, pos)
	if err != nil {
		return Token{}, err
	}
	return l.token(T_ENCAPSED_AND_WHITESPACE, start, pos, value), nil
}

// interpolationToken 处理 $var、${、{$ 三种插值引导。返回 handled=false 表示
// 当前位置是普通字面内容
func (l *Lexer) interpolationToken(ret LexerState) (Token, *LexError, bool) {
	start := l.position
	pos := l.currentPos()

	if l.ch == '$' && isLabelStart(l.peekChar()) {
		l.readChar()
		nameStart := l.position
		for isLabelPart(l.ch) {
			l.readChar()
		}
		tok := l.token(T_VARIABLE, start, pos, l.input[nameStart:l.position])
		if l.ch == '[' {
			l.pushReturn(ret)
			l.state = ST_VAR_OFFSET
		} else if (l.ch == '-' && l.peekChar() == '>' && isLabelStart(l.peekCharN(1))) ||
			(l.ch == '?' && l.peekChar() == '-' && l.peekCharN(1) == '>' && isLabelStart(l.peekCharN(2))) {
			l.pushReturn(ret)
			l.state = ST_LOOKING_FOR_PROPERTY
		}
		return tok, nil, true
	}

	if l.ch == '$' && l.peekChar() == '{' {
		l.readChar()
		l.readChar()
		tok := l.token(T_DOLLAR_OPEN_CURLY_BRACES, start, pos, l.input[start:l.position])
		l.pushReturn(ret)
		l.state = ST_LOOKING_FOR_VARNAME
		return tok, nil, true
	}

	if l.ch == '{' && l.peekChar() == '$' {
		l.readChar() // 只吞 {，$var 由脚本模式继续
		tok := l.token(T_CURLY_OPEN, start, pos, l.input[start:l.position])
		l.pushReturn(ret)
		l.state = ST_IN_SCRIPTING
		return tok, nil, true
	}

	return Token{}, nil, false
}

// pushReturn 把返回模式压栈；heredoc/nowdoc 连同 doc 帧一起保存
func (l *Lexer) pushReturn(ret LexerState) {
	if ret == ST_HEREDOC || ret == ST_NOWDOC {
		frame := l.doc
		frame.State = ret
		l.stack.Push(frame)
		return
	}
	l.stack.Push(StateFrame{State: ret})
}

// readEncapsedRun 读取插值字符串中的一段字面内容并解码转义
func (l *Lexer) readEncapsedRun(mode LexerState, start int, pos Position) ([]byte, *LexError) {
	var out []byte
	inHeredoc := mode == ST_HEREDOC

	for {
		if l.position >= len(l.input) {
			if inHeredoc {
				l.err = &LexError{Kind: UnexpectedEndInDocString, Label: l.doc.DocLabel,
					Span: Span{Start: start, End: l.position}, Position: pos}
			} else {
				l.err = &LexError{Kind: UnterminatedString,
					Span: Span{Start: start, End: l.position}, Position: pos}
			}
			return nil, l.err
		}

		if inHeredoc {
			if l.position >= l.docBodyEnd() {
				break
			}
		} else if l.ch == '"' {
			break
		}

		// 插值引导符结束当前片段
		if l.ch == '$' && (isLabelStart(l.peekChar()) || l.peekChar() == '{') {
			break
		}
		if l.ch == '{' && l.peekChar() == '$' {
			break
		}

		if l.ch == '\\' {
			decoded, consumed := decodeEscape(l.input[l.position:], inHeredoc)
			out = append(out, decoded...)
			l.advanceTo(l.position + consumed)
			continue
		}

		out = append(out, l.ch)
		wasNewline := l.ch == '\n'
		l.readChar()

		// heredoc 正文的每一行都要剥掉结束标签的缩进前缀
		if inHeredoc && wasNewline && l.position < l.docBodyEnd() {
			if err := l.stripDocIndent(); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// decodeEscape 解码一个反斜杠转义序列，返回解码字节与消耗长度
func decodeEscape(in []byte, inHeredoc bool) ([]byte, int) {
	if len(in) < 2 {
		return []byte{'\\'}, 1
	}
	switch in[1] {
	case 'n':
		return []byte{'\n'}, 2
	case 't':
		return []byte{'\t'}, 2
	case 'r':
		return []byte{'\r'}, 2
	case 'v':
		return []byte{'\v'}, 2
	case 'f':
		return []byte{'\f'}, 2
	case 'e':
		return []byte{0x1b}, 2
	case '\\':
		return []byte{'\\'}, 2
	case '$':
		return []byte{'$'}, 2
	case '"':
		if inHeredoc {
			// heredoc 中 \" 无需转义，但仍按 PHP 语义解码
			return []byte{'"'}, 2
		}
		return []byte{'"'}, 2
	case 'x':
		n := 0
		for n < 2 && 2+n < len(in) && isHexDigit(in[2+n]) {
			n++
		}
		if n == 0 {
			return []byte{'\\', 'x'}, 2
		}
		v := 0
		for _, c := range in[2 : 2+n] {
			v = v*16 + hexVal(c)
		}
		return []byte{byte(v)}, 2 + n
	case 'u':
		if 2 < len(in) && in[2] == '{' {
			j := 3
			v := 0
			for j < len(in) && isHexDigit(in[j]) {
				v = v*16 + hexVal(in[j])
				j++
			}
			if j < len(in) && in[j] == '}' && j > 3 {
				return encodeUTF8(v), j + 1
			}
		}
		return []byte{'\\', 'u'}, 2
	case '0', '1', '2', '3', '4', '5', '6', '7':
		n := 0
		v := 0
		for n < 3 && 1+n < len(in) && isOctalDigit(in[1+n]) {
			v = v*8 + int(in[1+n]-'0')
			n++
		}
		return []byte{byte(v)}, 1 + n
	}
	// 未识别的转义保留反斜杠
	return []byte{'\\', in[1]}, 2
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func encodeUTF8(v int) []byte {
	r := rune(v)
	return []byte(string(r))
}

// beginDocString 处理 <<<LABEL / <<<'LABEL' / <<<"LABEL"
func (l *Lexer) beginDocString() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	l.readChar()
	l.readChar()
	l.readChar() // 跳过 <<<
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	kind := DocStringHeredoc
	quote := byte(0)
	if l.ch == '\'' {
		kind = DocStringNowdoc
		quote = '\''
		l.readChar()
	} else if l.ch == '"' {
		quote = '"'
		l.readChar()
	}

	if !isLabelStart(l.ch) {
		b := l.ch
		l.readChar()
		l.err = &LexError{Kind: UnexpectedCharacter, Byte: b, Span: Span{Start: start, End: l.position}, Position: pos}
		return Token{}, l.err
	}
	labelStart := l.position
	for isLabelPart(l.ch) {
		l.readChar()
	}
	label := NewByteString(l.input[labelStart:l.position])

	if quote != 0 {
		if l.ch != quote {
			b := l.ch
			l.readChar()
			l.err = &LexError{Kind: UnexpectedCharacter, Byte: b, Span: Span{Start: start, End: l.position}, Position: pos}
			return Token{}, l.err
		}
		l.readChar()
	}

	// 标签后必须换行
	if l.ch == '\r' && l.peekChar() == '\n' {
		l.readChar()
	}
	if l.ch != '\n' {
		if l.position >= len(l.input) {
			l.err = &LexError{Kind: UnexpectedEndInDocString, Label: label,
				Span: Span{Start: start, End: l.position}, Position: pos}
			return Token{}, l.err
		}
		b := l.ch
		l.readChar()
		l.err = &LexError{Kind: UnexpectedCharacter, Byte: b, Span: Span{Start: start, End: l.position}, Position: pos}
		return Token{}, l.err
	}
	l.readChar() // 跳过换行，正文开始

	// 定位结束标签行并测量其缩进
	frame, lerr := l.locateDocEnd(label, kind, pos)
	if lerr != nil {
		l.err = lerr
		return Token{}, lerr
	}
	l.doc = frame
	l.docStripPending = len(frame.DocIndent) > 0
	if kind == DocStringNowdoc {
		l.state = ST_NOWDOC
	} else {
		l.state = ST_HEREDOC
	}

	tok := l.token(T_START_HEREDOC, start, pos, label)
	tok.DocKind = kind
	return tok, nil
}

// locateDocEnd 从正文起点向后找到结束标签所在行，返回携带缩进信息的帧
func (l *Lexer) locateDocEnd(label ByteString, kind DocStringKind, pos Position) (StateFrame, *LexError) {
	lineStart := l.position
	for lineStart <= len(l.input) {
		i := lineStart
		for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
			i++
		}
		if i+len(label) <= len(l.input) && bytes.Equal(l.input[i:i+len(label)], []byte(label)) {
			after := i + len(label)
			if after >= len(l.input) || !isLabelPart(l.input[after]) {
				indent := NewByteString(l.input[lineStart:i])
				ik, bad := classifyIndent(indent)
				if bad {
					return StateFrame{}, &LexError{
						Kind:     InconsistentDocStringIndentation,
						Span:     Span{Start: lineStart, End: i},
						Position: pos,
					}
				}
				return StateFrame{
					State:      ST_IN_SCRIPTING,
					DocLabel:   label,
					DocKind:    kind,
					DocIndent:  indent,
					IndentKind: ik,
					DocEnd:     lineStart,
				}, nil
			}
		}
		// 下一行
		nl := bytes.IndexByte(l.input[lineStart:], '\n')
		if nl < 0 {
			break
		}
		lineStart += nl + 1
	}
	return StateFrame{}, &LexError{
		Kind:     UnexpectedEndInDocString,
		Label:    label,
		Span:     Span{Start: l.position, End: len(l.input)},
		Position: pos,
	}
}

// classifyIndent 判定缩进类型；空格制表符混用报告 Both 并视为错误
func classifyIndent(indent ByteString) (DocStringIndentationKind, bool) {
	hasSpace := bytes.IndexByte(indent, ' ') >= 0
	hasTab := bytes.IndexByte(indent, '\t') >= 0
	switch {
	case hasSpace && hasTab:
		return IndentBoth, true
	case hasSpace:
		return IndentSpace, false
	case hasTab:
		return IndentTab, false
	}
	return IndentNone, false
}

// docBodyEnd 返回正文的结束偏移：结束标签行之前的换行不属于正文
func (l *Lexer) docBodyEnd() int {
	end := l.doc.DocEnd
	if end > 0 && end <= len(l.input) && l.input[end-1] == '\n' {
		end--
		if end > 0 && l.input[end-1] == '\r' {
			end--
		}
	}
	return end
}

// stripDocIndent 在行首剥掉结束标签的缩进前缀
func (l *Lexer) stripDocIndent() *LexError {
	indent := l.doc.DocIndent
	if len(indent) == 0 {
		return nil
	}
	lineStart := l.position
	// 空行不要求缩进
	if l.ch == '\n' || (l.ch == '\r' && l.peekChar() == '\n') {
		return nil
	}
	for i := 0; i < len(indent); i++ {
		if l.position >= l.docBodyEnd() {
			return nil
		}
		if l.ch != indent[i] {
			l.err = &LexError{
				Kind:     InconsistentDocStringIndentation,
				Span:     Span{Start: lineStart, End: l.position + 1},
				Position: l.currentPos(),
			}
			return l.err
		}
		l.readChar()
	}
	return nil
}

// nextTokenInHeredoc 扫描 heredoc 正文
func (l *Lexer) nextTokenInHeredoc() (Token, *LexError) {
	if l.position >= l.docBodyEnd() {
		return l.finishDocString()
	}

	// 正文首行先剥缩进
	if l.docStripPending {
		l.docStripPending = false
		if err := l.stripDocIndent(); err != nil {
			return Token{}, err
		}
		if l.position >= l.docBodyEnd() {
			return l.finishDocString()
		}
	}

	start := l.position
	pos := l.currentPos()

	if tok, err, handled := l.interpolationToken(ST_HEREDOC); handled {
		return tok, err
	}

	value, err := l.readEncapsedRun(ST_HEREDOC, start, pos)
	if err != nil {
		return Token{}, err
	}
	return l.token(T_ENCAPSED_AND_WHITESPACE, start, pos, value), nil
}

// nextTokenInNowdoc 扫描 nowdoc 正文：不解码、不插值
func (l *Lexer) nextTokenInNowdoc() (Token, *LexError) {
	if l.position >= l.docBodyEnd() {
		return l.finishDocString()
	}

	start := l.position
	pos := l.currentPos()
	bodyEnd := l.docBodyEnd()

	var out []byte
	if len(l.doc.DocIndent) > 0 {
		if err := l.stripDocIndent(); err != nil {
			return Token{}, err
		}
	}
	for l.position < bodyEnd {
		out = append(out, l.ch)
		wasNewline := l.ch == '\n'
		l.readChar()
		if wasNewline && l.position < bodyEnd {
			if err := l.stripDocIndent(); err != nil {
				return Token{}, err
			}
		}
	}
	return l.token(T_ENCAPSED_AND_WHITESPACE, start, pos, out), nil
}

// finishDocString 消费结束标签并发出 T_END_HEREDOC
func (l *Lexer) finishDocString() (Token, *LexError) {
	l.advanceTo(l.doc.DocEnd + len(l.doc.DocIndent))
	start := l.position
	pos := l.currentPos()

	l.advanceTo(l.doc.DocEnd + len(l.doc.DocIndent) + len(l.doc.DocLabel))

	tok := l.token(T_END_HEREDOC, start, pos, l.doc.DocLabel)
	tok.DocKind = l.doc.DocKind
	tok.DocIndentKind = l.doc.IndentKind
	tok.DocIndent = len(l.doc.DocIndent)
	l.state = ST_IN_SCRIPTING
	l.doc = StateFrame{}
	return tok, nil
}

// nextTokenInVarOffset 扫描字符串内 $arr[...] 的受限下标
func (l *Lexer) nextTokenInVarOffset() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	switch {
	case l.position >= len(l.input):
		return l.fail(UnterminatedString, Span{Start: start, End: l.position}, pos)

	case l.ch == '[':
		l.readChar()
		return l.token(TOKEN_LBRACKET, start, pos, l.input[start:l.position]), nil

	case l.ch == ']':
		l.readChar()
		l.popState()
		return l.token(TOKEN_RBRACKET, start, pos, l.input[start:l.position]), nil

	case l.ch == '-':
		l.readChar()
		return l.token(TOKEN_MINUS, start, pos, l.input[start:l.position]), nil

	case isDigit(l.ch):
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.token(T_LNUMBER, start, pos, l.input[start:l.position]), nil

	case l.ch == '$' && isLabelStart(l.peekChar()):
		l.readChar()
		nameStart := l.position
		for isLabelPart(l.ch) {
			l.readChar()
		}
		return l.token(T_VARIABLE, start, pos, l.input[nameStart:l.position]), nil

	case isLabelStart(l.ch):
		for isLabelPart(l.ch) {
			l.readChar()
		}
		return l.token(T_STRING, start, pos, l.input[start:l.position]), nil
	}

	b := l.ch
	l.readChar()
	l.err = &LexError{Kind: UnexpectedCharacter, Byte: b, Span: Span{Start: start, End: l.position}, Position: pos}
	return Token{}, l.err
}

// nextTokenLookingForProperty 扫描字符串内 -> / ?-> 之后的属性名
func (l *Lexer) nextTokenLookingForProperty() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	if l.ch == '?' && l.peekChar() == '-' && l.peekCharN(1) == '>' {
		l.readChar()
		l.readChar()
		l.readChar()
		return l.token(T_NULLSAFE_OBJECT_OPERATOR, start, pos, l.input[start:l.position]), nil
	}
	if l.ch == '-' && l.peekChar() == '>' {
		l.readChar()
		l.readChar()
		return l.token(T_OBJECT_OPERATOR, start, pos, l.input[start:l.position]), nil
	}
	if isLabelStart(l.ch) {
		for isLabelPart(l.ch) {
			l.readChar()
		}
		l.popState()
		return l.token(T_STRING, start, pos, l.input[start:l.position]), nil
	}

	// 理论上不可达：进入该模式前已经探测过属性形状
	l.popState()
	return l.NextToken()
}

// nextTokenLookingForVarname 扫描 ${ 之后的内容
func (l *Lexer) nextTokenLookingForVarname() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	if isLabelStart(l.ch) {
		i := l.position
		for i < len(l.input) && isLabelPart(l.input[i]) {
			i++
		}
		if i < len(l.input) && (l.input[i] == '}' || l.input[i] == '[') {
			l.advanceTo(i)
			l.state = ST_IN_SCRIPTING
			return l.token(T_STRING_VARNAME, start, pos, l.input[start:l.position]), nil
		}
	}

	// 一般表达式形式 ${expr}，交给脚本模式
	l.state = ST_IN_SCRIPTING
	return l.NextToken()
}

// readLineComment 读取 // 或 # 行注释，到行尾或 ?> 之前为止
func (l *Lexer) readLineComment(tt TokenType) (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	for l.position < len(l.input) {
		if l.ch == '\n' || l.ch == '\r' {
			break
		}
		if l.ch == '?' && l.peekChar() == '>' {
			break
		}
		l.readChar()
	}

	return l.token(tt, start, pos, l.input[start:l.position]), nil
}

// readBlockComment 读取 /* */ 或 /** */ 注释
func (l *Lexer) readBlockComment() (Token, *LexError) {
	start := l.position
	pos := l.currentPos()

	l.readChar() // /
	l.readChar() // *

	for {
		if l.position >= len(l.input) {
			return l.fail(UnterminatedBlockComment, Span{Start: start, End: l.position}, pos)
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}

	raw := l.input[start:l.position]
	tt := T_BLOCK_COMMENT
	if len(raw) >= 5 && raw[2] == '*' {
		tt = T_DOC_COMMENT
	}
	return l.token(tt, start, pos, raw), nil
}

// DecodeStringLiteral 解码一个带引号的字符串常量 token 的内容。
// 单引号只处理 \\ 与 \'，双引号按完整转义规则解码。
func DecodeStringLiteral(raw ByteString) ByteString {
	if len(raw) < 2 {
		return nil
	}
	quote := raw[0]
	body := raw[1 : len(raw)-1]

	var out []byte
	if quote == '\'' {
		for i := 0; i < len(body); i++ {
			if body[i] == '\\' && i+1 < len(body) && (body[i+1] == '\\' || body[i+1] == '\'') {
				out = append(out, body[i+1])
				i++
				continue
			}
			out = append(out, body[i])
		}
		return out
	}

	for i := 0; i < len(body); {
		if body[i] == '\\' {
			decoded, consumed := decodeEscape(body[i:], false)
			out = append(out, decoded...)
			i += consumed
			continue
		}
		out = append(out, body[i])
		i++
	}
	return out
}
