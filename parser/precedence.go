package parser

import "github.com/wudi/php-parser/lexer"

// Precedence 操作符优先级，值越大绑定越紧
type Precedence int

const (
	_ Precedence = iota
	PrecLowest
	PrecKeywordOr  // or
	PrecKeywordXor // xor
	PrecKeywordAnd // and
	PrecPrint      // print
	PrecYield      // yield
	PrecIncludes   // include / require
	PrecAssignment // = += … ??=
	PrecTernary    // ? :
	PrecCoalesce   // ??
	PrecBooleanOr  // ||
	PrecBooleanAnd // &&
	PrecBitOr      // |
	PrecBitXor     // ^
	PrecBitAnd     // &
	PrecEquality   // == != === !== <>
	PrecComparison // < <= > >= <=>
	PrecConcat     // .
	PrecShift      // << >>
	PrecSum        // + -
	PrecProduct    // * / %
	PrecBang       // ! 前缀
	PrecInstanceof // instanceof
	PrecPrefix     // 一元 + - ~ 强制转换 @
	PrecPow        // **
	PrecCloneNew   // clone new
	PrecIncDec     // 后缀 ++ --
	PrecCallDim    // 调用、下标、成员访问
)

// Associativity 结合性
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// infixPrecedence 返回中缀操作符的优先级与结合性。
// 语法层的全部优先级决策集中在这一个函数里
func infixPrecedence(t lexer.TokenType) (Precedence, Associativity, bool) {
	switch t {
	case lexer.TOKEN_EQUAL,
		lexer.T_PLUS_EQUAL, lexer.T_MINUS_EQUAL, lexer.T_MUL_EQUAL,
		lexer.T_DIV_EQUAL, lexer.T_CONCAT_EQUAL, lexer.T_MOD_EQUAL,
		lexer.T_POW_EQUAL, lexer.T_AND_EQUAL, lexer.T_OR_EQUAL,
		lexer.T_XOR_EQUAL, lexer.T_SL_EQUAL, lexer.T_SR_EQUAL,
		lexer.T_COALESCE_EQUAL:
		return PrecAssignment, AssocRight, true

	case lexer.TOKEN_QUESTION:
		return PrecTernary, AssocRight, true

	case lexer.T_COALESCE:
		return PrecCoalesce, AssocRight, true

	case lexer.T_BOOLEAN_OR:
		return PrecBooleanOr, AssocLeft, true
	case lexer.T_LOGICAL_OR:
		return PrecKeywordOr, AssocLeft, true
	case lexer.T_BOOLEAN_AND:
		return PrecBooleanAnd, AssocLeft, true
	case lexer.T_LOGICAL_AND:
		return PrecKeywordAnd, AssocLeft, true
	case lexer.T_LOGICAL_XOR:
		return PrecKeywordXor, AssocLeft, true

	case lexer.TOKEN_PIPE:
		return PrecBitOr, AssocLeft, true
	case lexer.TOKEN_CARET:
		return PrecBitXor, AssocLeft, true
	case lexer.TOKEN_AMPERSAND:
		return PrecBitAnd, AssocLeft, true

	case lexer.T_IS_EQUAL, lexer.T_IS_NOT_EQUAL, lexer.T_IS_IDENTICAL,
		lexer.T_IS_NOT_IDENTICAL:
		return PrecEquality, AssocNone, true

	case lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.T_IS_SMALLER_OR_EQUAL,
		lexer.T_IS_GREATER_OR_EQUAL, lexer.T_SPACESHIP:
		return PrecComparison, AssocNone, true

	case lexer.TOKEN_DOT:
		return PrecConcat, AssocLeft, true

	case lexer.T_SL, lexer.T_SR:
		return PrecShift, AssocLeft, true

	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS:
		return PrecSum, AssocLeft, true

	case lexer.TOKEN_MULTIPLY, lexer.TOKEN_DIVIDE, lexer.TOKEN_MODULO:
		return PrecProduct, AssocLeft, true

	case lexer.T_INSTANCEOF:
		return PrecInstanceof, AssocNone, true

	case lexer.T_POW:
		return PrecPow, AssocRight, true
	}
	return PrecLowest, AssocLeft, false
}

// postfixPrecedence 返回后缀操作的优先级
func postfixPrecedence(t lexer.TokenType) (Precedence, bool) {
	switch t {
	case lexer.T_INC, lexer.T_DEC:
		return PrecIncDec, true
	case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACKET,
		lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR,
		lexer.T_PAAMAYIM_NEKUDOTAYIM:
		return PrecCallDim, true
	}
	return PrecLowest, false
}

// infixOperatorString 中缀操作符在 AST 中的拼写
func infixOperatorString(t lexer.TokenType) string {
	return t.Describe()
}
