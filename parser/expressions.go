package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// registerPrefixFns 注册全部 nud 解析函数
func (p *Parser) registerPrefixFns() {
	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.T_VARIABLE:                 p.parseVariable,
		lexer.TOKEN_DOLLAR:               p.parseDynamicVariable,
		lexer.T_LNUMBER:                  p.parseIntegerLiteral,
		lexer.T_DNUMBER:                  p.parseFloatLiteral,
		lexer.T_CONSTANT_ENCAPSED_STRING: p.parseStringLiteral,
		lexer.TOKEN_QUOTE:                p.parseInterpolatedString,
		lexer.T_START_HEREDOC:            p.parseDocString,
		lexer.T_STRING:                   p.parseIdentifier,
		lexer.T_NAME_QUALIFIED:           p.parseIdentifier,
		lexer.T_NAME_FULLY_QUALIFIED:     p.parseIdentifier,
		lexer.T_NAME_RELATIVE:            p.parseIdentifier,
		lexer.T_TRUE:                     p.parseBooleanLiteral,
		lexer.T_FALSE:                    p.parseBooleanLiteral,
		lexer.T_NULL:                     p.parseNullLiteral,
		lexer.T_LINE:                     p.parseMagicConstant,
		lexer.T_FILE:                     p.parseMagicConstant,
		lexer.T_DIR:                      p.parseMagicConstant,
		lexer.T_CLASS_C:                  p.parseMagicConstant,
		lexer.T_TRAIT_C:                  p.parseMagicConstant,
		lexer.T_METHOD_C:                 p.parseMagicConstant,
		lexer.T_FUNC_C:                   p.parseMagicConstant,
		lexer.T_NS_C:                     p.parseMagicConstant,
		lexer.T_SELF:                     p.parseReservedIdentifier,
		lexer.T_PARENT:                   p.parseReservedIdentifier,
		lexer.T_STATIC:                   p.parseStaticPrefix,

		lexer.TOKEN_PLUS:        p.parseUnaryPrefix,
		lexer.TOKEN_MINUS:       p.parseUnaryPrefix,
		lexer.TOKEN_TILDE:       p.parseUnaryPrefix,
		lexer.TOKEN_EXCLAMATION: p.parseBangPrefix,
		lexer.T_INC:             p.parseIncDecPrefix,
		lexer.T_DEC:             p.parseIncDecPrefix,
		lexer.TOKEN_AT:          p.parseErrorSuppress,
		lexer.T_PRINT:           p.parsePrint,

		lexer.T_INT_CAST:    p.parseCast,
		lexer.T_DOUBLE_CAST: p.parseCast,
		lexer.T_STRING_CAST: p.parseCast,
		lexer.T_ARRAY_CAST:  p.parseCast,
		lexer.T_OBJECT_CAST: p.parseCast,
		lexer.T_BOOL_CAST:   p.parseCast,
		lexer.T_UNSET_CAST:  p.parseCast,

		lexer.T_NEW:        p.parseNewExpression,
		lexer.T_CLONE:      p.parseCloneExpression,
		lexer.T_THROW:      p.parseThrowExpression,
		lexer.T_YIELD:      p.parseYield,
		lexer.T_YIELD_FROM: p.parseYieldFrom,

		lexer.T_FUNCTION:  p.parseClosurePrefix,
		lexer.T_FN:        p.parseArrowFnPrefix,
		lexer.T_MATCH:     p.parseMatchExpression,
		lexer.T_ATTRIBUTE: p.parseAttributedExpression,

		lexer.T_ARRAY:        p.parseLongArray,
		lexer.T_LIST:         p.parseListExpression,
		lexer.TOKEN_LBRACKET: p.parseShortArray,
		lexer.TOKEN_LPAREN:   p.parseGroupedExpression,

		lexer.T_ISSET: p.parseIsset,
		lexer.T_EMPTY: p.parseEmpty,
		lexer.T_EVAL:  p.parseEval,
		lexer.T_EXIT:  p.parseExit,

		lexer.T_INCLUDE:      p.parseInclude,
		lexer.T_INCLUDE_ONCE: p.parseInclude,
		lexer.T_REQUIRE:      p.parseInclude,
		lexer.T_REQUIRE_ONCE: p.parseInclude,
	}
}

// parseExpression Pratt 主循环：nud 之后按优先级表折叠中缀与后缀
func (p *Parser) parseExpression(min Precedence) (ast.Expression, *errors.ParseError) {
	if p.depth >= maxDepth {
		return nil, errors.NewUnexpectedToken(p.current())
	}
	p.depth++
	defer func() { p.depth-- }()

	prefix := p.prefixParseFns[p.current().Type]
	if prefix == nil {
		return nil, errors.NewUnexpectedToken(p.current())
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for {
		t := p.current().Type

		if pp, ok := postfixPrecedence(t); ok {
			if pp < min {
				break
			}
			left, err = p.parsePostfix(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		ip, assoc, ok := infixPrecedence(t)
		if !ok || ip < min {
			break
		}

		left, err = p.parseInfix(left, t, ip, assoc)
		if err != nil {
			return nil, err
		}

		// 非结合操作符不允许在同一层级再次出现
		if assoc == AssocNone {
			if ip2, a2, ok2 := infixPrecedence(p.current().Type); ok2 && ip2 == ip && a2 == AssocNone {
				return nil, errors.NewUnexpectedToken(p.current())
			}
		}
	}

	return left, nil
}

func (p *Parser) parseInfix(left ast.Expression, t lexer.TokenType, prec Precedence, assoc Associativity) (ast.Expression, *errors.ParseError) {
	opTok := p.current()

	switch t {
	case lexer.TOKEN_QUESTION:
		p.advance()
		if p.currentIs(lexer.TOKEN_COLON) {
			p.advance()
			elseExpr, err := p.parseExpression(PrecTernary)
			if err != nil {
				return nil, err
			}
			return &ast.TernaryExpression{
				BaseNode:  ast.NewBaseNode(ast.ASTTernaryExpression, opTok),
				Condition: left,
				Else:      elseExpr,
			}, nil
		}
		thenExpr, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_COLON); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseExpression(PrecTernary)
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpression{
			BaseNode:  ast.NewBaseNode(ast.ASTTernaryExpression, opTok),
			Condition: left,
			Then:      thenExpr,
			Else:      elseExpr,
		}, nil

	case lexer.TOKEN_EQUAL,
		lexer.T_PLUS_EQUAL, lexer.T_MINUS_EQUAL, lexer.T_MUL_EQUAL,
		lexer.T_DIV_EQUAL, lexer.T_CONCAT_EQUAL, lexer.T_MOD_EQUAL,
		lexer.T_POW_EQUAL, lexer.T_AND_EQUAL, lexer.T_OR_EQUAL,
		lexer.T_XOR_EQUAL, lexer.T_SL_EQUAL, lexer.T_SR_EQUAL,
		lexer.T_COALESCE_EQUAL:
		p.advance()
		byRef := false
		if t == lexer.TOKEN_EQUAL && p.currentIs(lexer.TOKEN_AMPERSAND) {
			p.advance()
			byRef = true
		}
		rhs, err := p.parseExpression(PrecAssignment)
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{
			BaseNode: ast.NewBaseNode(ast.ASTAssignmentExpression, opTok),
			Left:     left,
			Operator: infixOperatorString(t),
			Right:    rhs,
			ByRef:    byRef,
		}, nil

	case lexer.T_COALESCE:
		p.advance()
		rhs, err := p.parseExpression(PrecCoalesce)
		if err != nil {
			return nil, err
		}
		return &ast.CoalesceExpression{
			BaseNode: ast.NewBaseNode(ast.ASTCoalesceExpression, opTok),
			Left:     left,
			Right:    rhs,
		}, nil
	}

	p.advance()
	rmin := prec + 1
	if assoc == AssocRight {
		rmin = prec
	}
	rhs, err := p.parseExpression(rmin)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{
		BaseNode: ast.NewBaseNode(ast.ASTBinaryExpression, opTok),
		Left:     left,
		Operator: infixOperatorString(t),
		Right:    rhs,
	}, nil
}

// parsePostfix 应用一个后缀：++ -- 调用 下标 成员访问
func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, *errors.ParseError) {
	tok := p.current()

	switch tok.Type {
	case lexer.T_INC, lexer.T_DEC:
		p.advance()
		return &ast.PostfixExpression{
			BaseNode: ast.NewBaseNode(ast.ASTPostfixExpression, tok),
			Operand:  left,
			Operator: tok.Type.Describe(),
		}, nil

	case lexer.TOKEN_LBRACKET:
		p.advance()
		idx := &ast.IndexExpression{BaseNode: ast.NewBaseNode(ast.ASTIndexExpression, tok), Array: left}
		if !p.currentIs(lexer.TOKEN_RBRACKET) {
			index, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			idx.Index = index
		}
		if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		return idx, nil

	case lexer.TOKEN_LPAREN:
		args, fcc, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		switch target := left.(type) {
		case *ast.PropertyFetch:
			return &ast.MethodCall{
				BaseNode:           ast.NewBaseNode(ast.ASTMethodCall, tok),
				Object:             target.Object,
				Method:             target.Property,
				Args:               args,
				Nullsafe:           target.Nullsafe,
				FirstClassCallable: fcc,
			}, nil
		case *ast.StaticPropertyFetch:
			return &ast.StaticCall{
				BaseNode:           ast.NewBaseNode(ast.ASTStaticCall, tok),
				Class:              target.Class,
				Method:             target.Property,
				Args:               args,
				FirstClassCallable: fcc,
			}, nil
		case *ast.ClassConstFetch:
			return &ast.StaticCall{
				BaseNode:           ast.NewBaseNode(ast.ASTStaticCall, tok),
				Class:              target.Class,
				Method:             target.Constant,
				Args:               args,
				FirstClassCallable: fcc,
			}, nil
		}
		return &ast.FunctionCall{
			BaseNode:           ast.NewBaseNode(ast.ASTFunctionCall, tok),
			Target:             left,
			Args:               args,
			FirstClassCallable: fcc,
		}, nil

	case lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR:
		p.advance()
		prop, err := p.parseMemberName()
		if err != nil {
			return nil, err
		}
		return &ast.PropertyFetch{
			BaseNode: ast.NewBaseNode(ast.ASTPropertyFetch, tok),
			Object:   left,
			Property: prop,
			Nullsafe: tok.Type == lexer.T_NULLSAFE_OBJECT_OPERATOR,
		}, nil

	case lexer.T_PAAMAYIM_NEKUDOTAYIM:
		p.advance()
		switch p.current().Type {
		case lexer.T_VARIABLE:
			vtok := p.advance()
			return &ast.StaticPropertyFetch{
				BaseNode: ast.NewBaseNode(ast.ASTStaticPropertyFetch, tok),
				Class:    left,
				Property: &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value},
			}, nil
		case lexer.TOKEN_DOLLAR:
			dyn, err := p.parseDynamicVariable()
			if err != nil {
				return nil, err
			}
			return &ast.StaticPropertyFetch{
				BaseNode: ast.NewBaseNode(ast.ASTStaticPropertyFetch, tok),
				Class:    left,
				Property: dyn,
			}, nil
		case lexer.TOKEN_LBRACE:
			// ::{expr} 强制为静态方法调用
			p.advance()
			method, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
				return nil, err
			}
			args, fcc, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			return &ast.StaticCall{
				BaseNode:           ast.NewBaseNode(ast.ASTStaticCall, tok),
				Class:              left,
				Method:             method,
				Args:               args,
				FirstClassCallable: fcc,
			}, nil
		case lexer.T_CLASS:
			ctok := p.advance()
			return &ast.ClassConstFetch{
				BaseNode: ast.NewBaseNode(ast.ASTClassConstFetch, tok),
				Class:    left,
				Constant: &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, ctok), Value: ctok.Value},
			}, nil
		}
		ident, err := p.parseReservedName()
		if err != nil {
			return nil, err
		}
		return &ast.ClassConstFetch{
			BaseNode: ast.NewBaseNode(ast.ASTClassConstFetch, tok),
			Class:    left,
			Constant: ident,
		}, nil
	}

	return nil, errors.NewUnexpectedToken(tok)
}

// parseMemberName -> 之后的成员：标识符（允许保留字）、变量、{expr}
func (p *Parser) parseMemberName() (ast.Expression, *errors.ParseError) {
	tok := p.current()
	switch tok.Type {
	case lexer.T_VARIABLE:
		p.advance()
		return &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, tok), Name: tok.Value}, nil
	case lexer.TOKEN_DOLLAR:
		return p.parseDynamicVariable()
	case lexer.TOKEN_LBRACE:
		p.advance()
		expr, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return p.parseReservedName()
}

// parseReservedName 读取允许保留字的名字（成员名、常量名等）
func (p *Parser) parseReservedName() (*ast.Identifier, *errors.ParseError) {
	tok := p.current()
	if !isIdentLike(tok) {
		return nil, errors.NewUnexpectedToken(tok)
	}
	p.advance()
	return &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}, nil
}

// isIdentLike token 是否可作名字使用（标识符或任意保留字）
func isIdentLike(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.T_STRING, lexer.T_NAME_QUALIFIED, lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE:
		return true
	case lexer.T_VARIABLE, lexer.T_LNUMBER, lexer.T_DNUMBER,
		lexer.T_CONSTANT_ENCAPSED_STRING, lexer.T_ENCAPSED_AND_WHITESPACE,
		lexer.T_INLINE_HTML, lexer.T_EOF, lexer.T_STRING_VARNAME:
		return false
	}
	v := tok.Value
	if len(v) == 0 {
		return false
	}
	for i, c := range v {
		ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80 ||
			(i > 0 && c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}

// ============= nud =============

func (p *Parser) parseVariable() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, tok), Name: tok.Value}, nil
}

// parseDynamicVariable $$var 与 ${expr}
func (p *Parser) parseDynamicVariable() (ast.Expression, *errors.ParseError) {
	tok, err := p.expect(lexer.TOKEN_DOLLAR)
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.TOKEN_LBRACE:
		p.advance()
		expr, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
			return nil, err
		}
		return &ast.DynamicVariable{BaseNode: ast.NewBaseNode(ast.ASTDynamicVariable, tok), Expr: expr}, nil
	case lexer.T_VARIABLE:
		inner, _ := p.parseVariable()
		return &ast.DynamicVariable{BaseNode: ast.NewBaseNode(ast.ASTDynamicVariable, tok), Expr: inner}, nil
	case lexer.TOKEN_DOLLAR:
		inner, err := p.parseDynamicVariable()
		if err != nil {
			return nil, err
		}
		return &ast.DynamicVariable{BaseNode: ast.NewBaseNode(ast.ASTDynamicVariable, tok), Expr: inner}, nil
	}
	return nil, errors.NewUnexpectedToken(p.current())
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.IntegerLiteral{BaseNode: ast.NewBaseNode(ast.ASTIntegerLiteral, tok), Raw: tok.Value}, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.FloatLiteral{BaseNode: ast.NewBaseNode(ast.ASTFloatLiteral, tok), Raw: tok.Value}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.StringLiteral{
		BaseNode: ast.NewBaseNode(ast.ASTStringLiteral, tok),
		Raw:      tok.Value,
		Value:    lexer.DecodeStringLiteral(tok.Value),
	}, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}, nil
}

func (p *Parser) parseReservedIdentifier() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}, nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.BooleanLiteral{
		BaseNode: ast.NewBaseNode(ast.ASTBooleanLiteral, tok),
		Value:    tok.Type == lexer.T_TRUE,
	}, nil
}

func (p *Parser) parseNullLiteral() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.NullLiteral{BaseNode: ast.NewBaseNode(ast.ASTNullLiteral, tok)}, nil
}

func (p *Parser) parseMagicConstant() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	return &ast.MagicConstant{BaseNode: ast.NewBaseNode(ast.ASTMagicConstant, tok), Name: tok.Value}, nil
}

// parseStaticPrefix static 作表达式前缀：static fn / static function / 作用域名
func (p *Parser) parseStaticPrefix() (ast.Expression, *errors.ParseError) {
	switch p.peek(1).Type {
	case lexer.T_FUNCTION:
		p.advance()
		return p.parseClosureExpression(nil, true)
	case lexer.T_FN:
		p.advance()
		return p.parseArrowFnExpression(nil, true)
	}
	tok := p.advance()
	return &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}, nil
}

func (p *Parser) parseUnaryPrefix() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpression{
		BaseNode: ast.NewBaseNode(ast.ASTPrefixExpression, tok),
		Operator: tok.Type.Describe(),
		Operand:  operand,
	}, nil
}

func (p *Parser) parseBangPrefix() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecBang)
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpression{
		BaseNode: ast.NewBaseNode(ast.ASTPrefixExpression, tok),
		Operator: "!",
		Operand:  operand,
	}, nil
}

func (p *Parser) parseIncDecPrefix() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpression{
		BaseNode: ast.NewBaseNode(ast.ASTPrefixExpression, tok),
		Operator: tok.Type.Describe(),
		Operand:  operand,
	}, nil
}

func (p *Parser) parseErrorSuppress() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.ErrorSuppressExpression{
		BaseNode: ast.NewBaseNode(ast.ASTErrorSuppress, tok),
		Operand:  operand,
	}, nil
}

func (p *Parser) parsePrint() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecPrint)
	if err != nil {
		return nil, err
	}
	return &ast.PrintExpression{
		BaseNode: ast.NewBaseNode(ast.ASTPrintExpression, tok),
		Operand:  operand,
	}, nil
}

func (p *Parser) parseCast() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.CastExpression{
		BaseNode: ast.NewBaseNode(ast.ASTCastExpression, tok),
		CastType: castTypeName(tok.Type),
		Raw:      tok.Value,
		Operand:  operand,
	}, nil
}

func castTypeName(t lexer.TokenType) string {
	switch t {
	case lexer.T_INT_CAST:
		return "int"
	case lexer.T_DOUBLE_CAST:
		return "float"
	case lexer.T_STRING_CAST:
		return "string"
	case lexer.T_ARRAY_CAST:
		return "array"
	case lexer.T_OBJECT_CAST:
		return "object"
	case lexer.T_BOOL_CAST:
		return "bool"
	case lexer.T_UNSET_CAST:
		return "unset"
	}
	return "unknown"
}

func (p *Parser) parseCloneExpression() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	operand, err := p.parseExpression(PrecCloneNew)
	if err != nil {
		return nil, err
	}
	return &ast.CloneExpression{BaseNode: ast.NewBaseNode(ast.ASTCloneExpression, tok), Operand: operand}, nil
}

func (p *Parser) parseThrowExpression() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	value, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	return &ast.ThrowExpression{BaseNode: ast.NewBaseNode(ast.ASTThrowExpression, tok), Value: value}, nil
}

func (p *Parser) parseYield() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	node := &ast.YieldExpression{BaseNode: ast.NewBaseNode(ast.ASTYieldExpression, tok)}

	if p.currentIs(lexer.TOKEN_SEMICOLON, lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET,
		lexer.TOKEN_COMMA, lexer.TOKEN_RBRACE, lexer.T_CLOSE_TAG, lexer.T_EOF) {
		return node, nil
	}

	value, err := p.parseExpression(PrecYield)
	if err != nil {
		return nil, err
	}
	if p.currentIs(lexer.T_DOUBLE_ARROW) {
		p.advance()
		node.Key = value
		v2, err := p.parseExpression(PrecYield)
		if err != nil {
			return nil, err
		}
		node.Value = v2
		return node, nil
	}
	node.Value = value
	return node, nil
}

func (p *Parser) parseYieldFrom() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	value, err := p.parseExpression(PrecYield)
	if err != nil {
		return nil, err
	}
	return &ast.YieldFromExpression{BaseNode: ast.NewBaseNode(ast.ASTYieldFromExpression, tok), Value: value}, nil
}

func (p *Parser) parseInclude() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	path, err := p.parseExpression(PrecIncludes)
	if err != nil {
		return nil, err
	}
	return &ast.IncludeExpression{
		BaseNode:    ast.NewBaseNode(ast.ASTIncludeExpression, tok),
		IncludeKind: tok.Type.Describe(),
		Path:        path,
	}, nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, *errors.ParseError) {
	p.advance() // (
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIsset() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	var vars []ast.Expression
	for !p.currentIs(lexer.TOKEN_RPAREN) {
		v, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &ast.IssetExpression{BaseNode: ast.NewBaseNode(ast.ASTIssetExpression, tok), Vars: vars}, nil
}

func (p *Parser) parseEmpty() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &ast.EmptyExpression{BaseNode: ast.NewBaseNode(ast.ASTEmptyExpression, tok), Expr: expr}, nil
}

func (p *Parser) parseEval() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &ast.EvalExpression{BaseNode: ast.NewBaseNode(ast.ASTEvalExpression, tok), Expr: expr}, nil
}

func (p *Parser) parseExit() (ast.Expression, *errors.ParseError) {
	tok := p.advance()
	node := &ast.ExitExpression{BaseNode: ast.NewBaseNode(ast.ASTExitExpression, tok)}
	if p.currentIs(lexer.TOKEN_LPAREN) {
		p.advance()
		if !p.currentIs(lexer.TOKEN_RPAREN) {
			expr, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			node.Expr = expr
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ============= new =============

func (p *Parser) parseNewExpression() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // new

	if p.currentIs(lexer.T_CLASS, lexer.T_ATTRIBUTE) {
		return p.parseAnonymousClass(tok)
	}

	target, err := p.parseNewTarget()
	if err != nil {
		return nil, err
	}

	node := &ast.NewExpression{BaseNode: ast.NewBaseNode(ast.ASTNewExpression, tok), Class: target}
	if p.currentIs(lexer.TOKEN_LPAREN) {
		args, _, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		node.Args = args
	}
	return node, nil
}

// parseNewTarget 实例化目标：名字、变量或成员链，但不吞掉调用括号
func (p *Parser) parseNewTarget() (ast.Expression, *errors.ParseError) {
	tok := p.current()

	var target ast.Expression
	switch tok.Type {
	case lexer.T_STRING, lexer.T_NAME_QUALIFIED, lexer.T_NAME_FULLY_QUALIFIED,
		lexer.T_NAME_RELATIVE, lexer.T_STATIC, lexer.T_SELF, lexer.T_PARENT:
		p.advance()
		target = &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}
	case lexer.T_VARIABLE:
		p.advance()
		target = &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, tok), Name: tok.Value}
	case lexer.TOKEN_DOLLAR:
		dyn, err := p.parseDynamicVariable()
		if err != nil {
			return nil, err
		}
		target = dyn
	case lexer.TOKEN_LPAREN:
		expr, err := p.parseGroupedExpression()
		if err != nil {
			return nil, err
		}
		target = expr
	default:
		return nil, errors.NewUnexpectedToken(tok)
	}

	// 成员链：->prop ::$prop ::CONST [idx]，不含调用
	for {
		cur := p.current()
		switch cur.Type {
		case lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR:
			p.advance()
			prop, err := p.parseMemberName()
			if err != nil {
				return nil, err
			}
			target = &ast.PropertyFetch{
				BaseNode: ast.NewBaseNode(ast.ASTPropertyFetch, cur),
				Object:   target,
				Property: prop,
				Nullsafe: cur.Type == lexer.T_NULLSAFE_OBJECT_OPERATOR,
			}
		case lexer.T_PAAMAYIM_NEKUDOTAYIM:
			if p.peek(1).Type == lexer.T_VARIABLE {
				p.advance()
				vtok := p.advance()
				target = &ast.StaticPropertyFetch{
					BaseNode: ast.NewBaseNode(ast.ASTStaticPropertyFetch, cur),
					Class:    target,
					Property: &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value},
				}
				continue
			}
			if isIdentLike(p.peek(1)) {
				p.advance()
				ident, err := p.parseReservedName()
				if err != nil {
					return nil, err
				}
				target = &ast.ClassConstFetch{
					BaseNode: ast.NewBaseNode(ast.ASTClassConstFetch, cur),
					Class:    target,
					Constant: ident,
				}
				continue
			}
			return nil, errors.NewUnexpectedToken(p.peek(1))
		case lexer.TOKEN_LBRACKET:
			p.advance()
			idx := &ast.IndexExpression{BaseNode: ast.NewBaseNode(ast.ASTIndexExpression, cur), Array: target}
			if !p.currentIs(lexer.TOKEN_RBRACKET) {
				index, err := p.parseExpression(PrecLowest)
				if err != nil {
					return nil, err
				}
				idx.Index = index
			}
			if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
				return nil, err
			}
			target = idx
		default:
			return target, nil
		}
	}
}

// ============= 实参 =============

// parseArguments 解析 ( … )；返回 fcc=true 表示一等可调用语法 f(...)
func (p *Parser) parseArguments() ([]*ast.Argument, bool, *errors.ParseError) {
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, false, err
	}

	if p.currentIs(lexer.T_ELLIPSIS) && p.peek(1).Type == lexer.TOKEN_RPAREN {
		p.advance()
		p.advance()
		return nil, true, nil
	}

	var args []*ast.Argument
	for !p.currentIs(lexer.TOKEN_RPAREN) {
		arg := &ast.Argument{}

		if isIdentLike(p.current()) && p.peek(1).Type == lexer.TOKEN_COLON {
			name := p.advance()
			p.advance() // :
			arg.Name = name.Value
		}
		if p.currentIs(lexer.T_ELLIPSIS) {
			p.advance()
			arg.Unpack = true
		}
		value, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, false, err
		}
		arg.Value = value
		args = append(args, arg)

		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, false, err
	}
	return args, false, nil
}

// ============= 数组 =============

func (p *Parser) parseShortArray() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // [
	items, err := p.parseArrayItems(lexer.TOKEN_RBRACKET)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{BaseNode: ast.NewBaseNode(ast.ASTArrayExpression, tok), Items: items, Short: true}, nil
}

func (p *Parser) parseLongArray() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // array
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	items, err := p.parseArrayItems(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{BaseNode: ast.NewBaseNode(ast.ASTArrayExpression, tok), Items: items, Short: false}, nil
}

func (p *Parser) parseListExpression() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // list
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	items, err := p.parseArrayItems(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &ast.ListExpression{BaseNode: ast.NewBaseNode(ast.ASTListExpression, tok), Items: items}, nil
}

// parseArrayItems 数组元素序列；Unpack 元素不允许键
func (p *Parser) parseArrayItems(end lexer.TokenType) ([]*ast.ArrayItem, *errors.ParseError) {
	var items []*ast.ArrayItem
	for !p.currentIs(end) {
		if p.currentIs(lexer.T_EOF) {
			return nil, errors.NewUnexpectedEndOfFile(p.current())
		}
		// list(, $b) 中的空槽
		if p.currentIs(lexer.TOKEN_COMMA) {
			items = append(items, &ast.ArrayItem{})
			p.advance()
			continue
		}

		item := &ast.ArrayItem{}
		if p.currentIs(lexer.T_ELLIPSIS) {
			p.advance()
			item.Unpack = true
		}
		if p.currentIs(lexer.TOKEN_AMPERSAND) {
			p.advance()
			item.ByRef = true
		}
		expr, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if p.currentIs(lexer.T_DOUBLE_ARROW) && !item.Unpack {
			p.advance()
			item.Key = expr
			if p.currentIs(lexer.TOKEN_AMPERSAND) {
				p.advance()
				item.ByRef = true
			}
			value, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			item.Value = value
		} else {
			item.Value = expr
		}
		items = append(items, item)

		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

// ============= match =============

func (p *Parser) parseMatchExpression() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // match
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}

	node := &ast.MatchExpression{BaseNode: ast.NewBaseNode(ast.ASTMatchExpression, tok), Condition: condition}
	seenDefault := false

	for !p.currentIs(lexer.TOKEN_RBRACE) {
		if p.currentIs(lexer.T_EOF) {
			return nil, errors.NewUnexpectedEndOfFile(p.current())
		}

		arm := &ast.MatchArm{}
		if p.currentIs(lexer.T_DEFAULT) {
			dtok := p.advance()
			if seenDefault {
				return nil, errors.NewMatchExpressionWithMultipleDefaultArms(dtok)
			}
			seenDefault = true
			// default 之后、=> 之前允许一个逗号
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
			}
		} else {
			for {
				cond, err := p.parseExpression(PrecLowest)
				if err != nil {
					return nil, err
				}
				arm.Conditions = append(arm.Conditions, cond)
				if p.currentIs(lexer.TOKEN_COMMA) {
					p.advance()
					if p.currentIs(lexer.T_DOUBLE_ARROW) {
						break
					}
					continue
				}
				break
			}
		}

		if _, err := p.expect(lexer.T_DOUBLE_ARROW); err != nil {
			return nil, err
		}
		body, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		arm.Body = body
		node.Arms = append(node.Arms, arm)

		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return node, nil
}

// ============= 闭包与箭头函数 =============

func (p *Parser) parseClosurePrefix() (ast.Expression, *errors.ParseError) {
	return p.parseClosureExpression(nil, false)
}

func (p *Parser) parseArrowFnPrefix() (ast.Expression, *errors.ParseError) {
	return p.parseArrowFnExpression(nil, false)
}

// parseAttributedExpression 表达式位置的 #[…]：匿名函数或箭头函数
func (p *Parser) parseAttributedExpression() (ast.Expression, *errors.ParseError) {
	attrs, err := p.parseAttributeGroups()
	if err != nil {
		return nil, err
	}
	switch p.current().Type {
	case lexer.T_FUNCTION:
		return p.parseClosureExpression(attrs, false)
	case lexer.T_FN:
		return p.parseArrowFnExpression(attrs, false)
	case lexer.T_STATIC:
		switch p.peek(1).Type {
		case lexer.T_FUNCTION:
			p.advance()
			return p.parseClosureExpression(attrs, true)
		case lexer.T_FN:
			p.advance()
			return p.parseArrowFnExpression(attrs, true)
		}
	}
	return nil, errors.NewExpectedItemDefinitionAfterAttributes(p.current())
}

func (p *Parser) parseClosureExpression(attrs []*ast.AttributeGroup, static bool) (ast.Expression, *errors.ParseError) {
	tok, err := p.expect(lexer.T_FUNCTION)
	if err != nil {
		return nil, err
	}

	node := &ast.ClosureExpression{
		BaseNode:   ast.NewBaseNode(ast.ASTClosure, tok),
		Attributes: attrs,
		Static:     static,
	}
	if p.currentIs(lexer.TOKEN_AMPERSAND) {
		p.advance()
		node.ByRef = true
	}

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	node.Params = params

	if p.currentIs(lexer.T_USE) {
		p.advance()
		if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
			return nil, err
		}
		for !p.currentIs(lexer.TOKEN_RPAREN) {
			use := &ast.ClosureUse{}
			if p.currentIs(lexer.TOKEN_AMPERSAND) {
				p.advance()
				use.ByRef = true
			}
			vtok, err := p.expect(lexer.T_VARIABLE)
			if err != nil {
				return nil, err
			}
			use.Name = vtok.Value
			node.Uses = append(node.Uses, use)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		rt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.ReturnType = rt
	}

	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseArrowFnExpression(attrs []*ast.AttributeGroup, static bool) (ast.Expression, *errors.ParseError) {
	tok, err := p.expect(lexer.T_FN)
	if err != nil {
		return nil, err
	}

	node := &ast.ArrowFunctionExpression{
		BaseNode:   ast.NewBaseNode(ast.ASTArrowFunction, tok),
		Attributes: attrs,
		Static:     static,
	}
	if p.currentIs(lexer.TOKEN_AMPERSAND) {
		p.advance()
		node.ByRef = true
	}

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	node.Params = params

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		rt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.ReturnType = rt
	}

	if _, err := p.expect(lexer.T_DOUBLE_ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

// parseInterpolatedString "…{$x}…" 形式
func (p *Parser) parseInterpolatedString() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // 开头引号
	node := &ast.InterpolatedString{BaseNode: ast.NewBaseNode(ast.ASTInterpolatedString, tok)}

	parts, err := p.parseInterpolationParts(lexer.TOKEN_QUOTE)
	if err != nil {
		return nil, err
	}
	node.Parts = parts
	p.advance() // 结尾引号
	return node, nil
}

// parseDocString heredoc / nowdoc
func (p *Parser) parseDocString() (ast.Expression, *errors.ParseError) {
	tok := p.advance() // T_START_HEREDOC

	if tok.DocKind == lexer.DocStringNowdoc {
		node := &ast.NowdocString{BaseNode: ast.NewBaseNode(ast.ASTNowdocString, tok), Label: tok.Value}
		if p.currentIs(lexer.T_ENCAPSED_AND_WHITESPACE) {
			body := p.advance()
			node.Value = body.Value
		}
		endTok, err := p.expect(lexer.T_END_HEREDOC)
		if err != nil {
			return nil, err
		}
		node.IndentKind = endTok.DocIndentKind
		node.Indent = endTok.DocIndent
		return node, nil
	}

	node := &ast.HeredocString{BaseNode: ast.NewBaseNode(ast.ASTHeredocString, tok), Label: tok.Value}
	parts, err := p.parseInterpolationParts(lexer.T_END_HEREDOC)
	if err != nil {
		return nil, err
	}
	node.Parts = parts
	endTok := p.advance() // T_END_HEREDOC
	node.IndentKind = endTok.DocIndentKind
	node.Indent = endTok.DocIndent
	return node, nil
}

// parseInterpolationParts 收集插值片段直到 end（不消费 end）
func (p *Parser) parseInterpolationParts(end lexer.TokenType) ([]ast.StringPart, *errors.ParseError) {
	var parts []ast.StringPart

	for !p.currentIs(end) {
		tok := p.current()
		switch tok.Type {
		case lexer.T_EOF:
			return nil, errors.NewUnexpectedEndOfFile(tok)

		case lexer.T_ENCAPSED_AND_WHITESPACE:
			p.advance()
			parts = append(parts, &ast.LiteralStringPart{
				BaseNode: ast.NewBaseNode(ast.ASTStringLiteral, tok),
				Value:    tok.Value,
			})

		case lexer.T_VARIABLE:
			expr, err := p.parseStringVariable()
			if err != nil {
				return nil, err
			}
			parts = append(parts, &ast.ExpressionStringPart{
				BaseNode: ast.NewBaseNode(ast.ASTVariable, tok),
				Expr:     expr,
			})

		case lexer.T_CURLY_OPEN:
			p.advance()
			expr, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
				return nil, err
			}
			parts = append(parts, &ast.ExpressionStringPart{
				BaseNode: ast.NewBaseNode(ast.ASTInterpolatedString, tok),
				Expr:     expr,
				Braced:   true,
			})

		case lexer.T_DOLLAR_OPEN_CURLY_BRACES:
			p.advance()
			expr, err := p.parseDollarBraceVariable()
			if err != nil {
				return nil, err
			}
			parts = append(parts, &ast.ExpressionStringPart{
				BaseNode: ast.NewBaseNode(ast.ASTDynamicVariable, tok),
				Expr:     expr,
				Braced:   true,
			})

		default:
			return nil, errors.NewUnexpectedToken(tok)
		}
	}
	return parts, nil
}

// parseStringVariable 字符串中的 $var 及受限的 [idx] / ->prop 后缀
func (p *Parser) parseStringVariable() (ast.Expression, *errors.ParseError) {
	vtok := p.advance()
	var expr ast.Expression = &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value}

	switch p.current().Type {
	case lexer.TOKEN_LBRACKET:
		btok := p.advance()
		index, err := p.parseStringVarOffset()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		expr = &ast.IndexExpression{BaseNode: ast.NewBaseNode(ast.ASTIndexExpression, btok), Array: expr, Index: index}

	case lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR:
		otok := p.advance()
		name, err := p.expect(lexer.T_STRING)
		if err != nil {
			return nil, err
		}
		expr = &ast.PropertyFetch{
			BaseNode: ast.NewBaseNode(ast.ASTPropertyFetch, otok),
			Object:   expr,
			Property: &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
			Nullsafe: otok.Type == lexer.T_NULLSAFE_OBJECT_OPERATOR,
		}
	}
	return expr, nil
}

// parseStringVarOffset 受限下标：整数、负整数、裸标识符（视为字符串键）、变量
func (p *Parser) parseStringVarOffset() (ast.Expression, *errors.ParseError) {
	tok := p.current()
	switch tok.Type {
	case lexer.T_LNUMBER:
		p.advance()
		return &ast.IntegerLiteral{BaseNode: ast.NewBaseNode(ast.ASTIntegerLiteral, tok), Raw: tok.Value}, nil
	case lexer.TOKEN_MINUS:
		p.advance()
		num, err := p.expect(lexer.T_LNUMBER)
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpression{
			BaseNode: ast.NewBaseNode(ast.ASTPrefixExpression, tok),
			Operator: "-",
			Operand:  &ast.IntegerLiteral{BaseNode: ast.NewBaseNode(ast.ASTIntegerLiteral, num), Raw: num.Value},
		}, nil
	case lexer.T_STRING:
		p.advance()
		return &ast.StringLiteral{
			BaseNode: ast.NewBaseNode(ast.ASTStringLiteral, tok),
			Raw:      tok.Value,
			Value:    tok.Value,
		}, nil
	case lexer.T_VARIABLE:
		p.advance()
		return &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, tok), Name: tok.Value}, nil
	}
	return nil, errors.NewUnexpectedToken(tok)
}

// parseDollarBraceVariable ${name} / ${name[idx]} / ${expr}
func (p *Parser) parseDollarBraceVariable() (ast.Expression, *errors.ParseError) {
	if p.currentIs(lexer.T_STRING_VARNAME) {
		vtok := p.advance()
		var expr ast.Expression = &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value}
		if p.currentIs(lexer.TOKEN_LBRACKET) {
			btok := p.advance()
			index, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpression{BaseNode: ast.NewBaseNode(ast.ASTIndexExpression, btok), Array: expr, Index: index}
		}
		if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
			return nil, err
		}
		return expr, nil
	}

	inner, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return &ast.DynamicVariable{BaseNode: ast.NewBaseNode(ast.ASTDynamicVariable, p.current()), Expr: inner}, nil
}
