package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// parseParenExpression ( expr )
func (p *Parser) parseParenExpression() (ast.Expression, *errors.ParseError) {
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
	return expr, nil
}

// parseBranchBody 花括号块或单条语句；返回是否使用了花括号
func (p *Parser) parseBranchBody() ([]ast.Statement, bool, *errors.ParseError) {
	if p.currentIs(lexer.TOKEN_LBRACE) {
		stmts, err := p.parseBracedBlock()
		return stmts, true, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, false, err
	}
	return []ast.Statement{stmt}, false, nil
}

// parseIfStatement if 语句。花括号形式与 :/endif 形式不允许混用
func (p *Parser) parseIfStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // if
	condition, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	node := &ast.IfStatement{BaseNode: ast.NewBaseNode(ast.ASTIfStatement, tok), Condition: condition}

	if p.currentIs(lexer.TOKEN_COLON) {
		// 替代语法：if (…): … elseif (…): … else: … endif;
		p.advance()
		node.Alternative = true

		body, err := p.parseBlockUntil(lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
		if err != nil {
			return nil, err
		}
		node.Body = body

		for p.currentIs(lexer.T_ELSEIF) {
			p.advance()
			cond, err := p.parseParenExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TOKEN_COLON); err != nil {
				return nil, err
			}
			b, err := p.parseBlockUntil(lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
			if err != nil {
				return nil, err
			}
			node.ElseIfs = append(node.ElseIfs, &ast.ElseIfClause{Condition: cond, Body: b})
		}

		if p.currentIs(lexer.T_ELSE) {
			p.advance()
			if _, err := p.expect(lexer.TOKEN_COLON); err != nil {
				return nil, err
			}
			b, err := p.parseBlockUntil(lexer.T_ENDIF)
			if err != nil {
				return nil, err
			}
			node.Else = &ast.ElseClause{Body: b}
		}

		if _, err := p.expect(lexer.T_ENDIF); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return node, nil
	}

	body, braced, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	node.Body = body

	for p.currentIs(lexer.T_ELSEIF) {
		p.advance()
		cond, err := p.parseParenExpression()
		if err != nil {
			return nil, err
		}
		var b []ast.Statement
		if braced {
			// 花括号形式的 if 链里每个分支都必须用花括号
			b, err = p.parseBracedBlock()
		} else {
			b, _, err = p.parseBranchBody()
		}
		if err != nil {
			return nil, err
		}
		node.ElseIfs = append(node.ElseIfs, &ast.ElseIfClause{Condition: cond, Body: b})
	}

	if p.currentIs(lexer.T_ELSE) {
		p.advance()
		if p.currentIs(lexer.T_IF) {
			// else if 嵌套为单条语句
			nested, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			node.Else = &ast.ElseClause{Body: []ast.Statement{nested}}
		} else {
			var b []ast.Statement
			var err *errors.ParseError
			if braced {
				b, err = p.parseBracedBlock()
			} else {
				b, _, err = p.parseBranchBody()
			}
			if err != nil {
				return nil, err
			}
			node.Else = &ast.ElseClause{Body: b}
		}
	}

	return node, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // while
	condition, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	node := &ast.WhileStatement{BaseNode: ast.NewBaseNode(ast.ASTWhileStatement, tok), Condition: condition}

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		node.Alternative = true
		body, err := p.parseBlockUntil(lexer.T_ENDWHILE)
		if err != nil {
			return nil, err
		}
		node.Body = body
		p.advance() // endwhile
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return node, nil
	}

	body, _, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseDoWhileStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // do
	body, _, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.T_WHILE); err != nil {
		return nil, err
	}
	condition, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{
		BaseNode:  ast.NewBaseNode(ast.ASTDoWhileStatement, tok),
		Body:      body,
		Condition: condition,
	}, nil
}

// parseExpressionList 逗号分隔的表达式序列，直到给定终结 token
func (p *Parser) parseExpressionList(terminator lexer.TokenType) ([]ast.Expression, *errors.ParseError) {
	var exprs []ast.Expression
	for !p.currentIs(terminator) {
		e, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	return exprs, nil
}

func (p *Parser) parseForStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // for
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	node := &ast.ForStatement{BaseNode: ast.NewBaseNode(ast.ASTForStatement, tok)}

	init, err := p.parseExpressionList(lexer.TOKEN_SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.Init = init
	if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
		return nil, err
	}

	cond, err := p.parseExpressionList(lexer.TOKEN_SEMICOLON)
	if err != nil {
		return nil, err
	}
	node.Condition = cond
	if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
		return nil, err
	}

	loop, err := p.parseExpressionList(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	node.Loop = loop
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		node.Alternative = true
		body, err := p.parseBlockUntil(lexer.T_ENDFOR)
		if err != nil {
			return nil, err
		}
		node.Body = body
		p.advance() // endfor
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return node, nil
	}

	body, _, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseForeachStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // foreach
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	node := &ast.ForeachStatement{BaseNode: ast.NewBaseNode(ast.ASTForeachStatement, tok)}

	iterable, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.Iterable = iterable

	if _, err := p.expect(lexer.T_AS); err != nil {
		return nil, err
	}

	if p.currentIs(lexer.TOKEN_AMPERSAND) {
		p.advance()
		node.ByRef = true
	}
	first, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}

	if p.currentIs(lexer.T_DOUBLE_ARROW) {
		p.advance()
		node.KeyVar = first
		if p.currentIs(lexer.TOKEN_AMPERSAND) {
			p.advance()
			node.ByRef = true
		}
		value, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		node.ValueVar = value
	} else {
		node.ValueVar = first
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		node.Alternative = true
		body, err := p.parseBlockUntil(lexer.T_ENDFOREACH)
		if err != nil {
			return nil, err
		}
		node.Body = body
		p.advance() // endforeach
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return node, nil
	}

	body, _, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseSwitchStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // switch
	condition, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	node := &ast.SwitchStatement{BaseNode: ast.NewBaseNode(ast.ASTSwitchStatement, tok), Condition: condition}

	terminator := lexer.TOKEN_RBRACE
	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		node.Alternative = true
		terminator = lexer.T_ENDSWITCH
	} else if _, err := p.expect(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}

	for {
		p.skipTags()
		if p.currentIs(terminator) {
			break
		}
		switch p.current().Type {
		case lexer.T_EOF:
			return nil, errors.NewUnexpectedEndOfFile(p.current())

		case lexer.T_CASE:
			p.advance()
			cond, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			if !p.currentIs(lexer.TOKEN_COLON, lexer.TOKEN_SEMICOLON) {
				return nil, errors.NewExpectedOneOf([]string{":", ";"}, p.current())
			}
			p.advance()
			body, err := p.parseBlockUntil(lexer.T_CASE, lexer.T_DEFAULT, terminator)
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, &ast.CaseClause{Condition: cond, Body: body})

		case lexer.T_DEFAULT:
			p.advance()
			if !p.currentIs(lexer.TOKEN_COLON, lexer.TOKEN_SEMICOLON) {
				return nil, errors.NewExpectedOneOf([]string{":", ";"}, p.current())
			}
			p.advance()
			body, err := p.parseBlockUntil(lexer.T_CASE, lexer.T_DEFAULT, terminator)
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, &ast.CaseClause{Body: body})

		default:
			return nil, errors.NewExpectedOneOf([]string{"case", "default"}, p.current())
		}
	}

	p.advance() // } 或 endswitch
	if node.Alternative {
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseTryStatement try 至少需要一个 catch 或 finally
func (p *Parser) parseTryStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // try
	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.TryStatement{BaseNode: ast.NewBaseNode(ast.ASTTryStatement, tok), Body: body}

	for p.currentIs(lexer.T_CATCH) {
		p.advance()
		if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
			return nil, err
		}

		clause := &ast.CatchClause{}
		for {
			name, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			clause.Types = append(clause.Types, name)
			if p.currentIs(lexer.TOKEN_PIPE) {
				p.advance()
				continue
			}
			break
		}
		if p.currentIs(lexer.T_VARIABLE) {
			vtok := p.advance()
			clause.Var = &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value}
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}

		catchBody, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		clause.Body = catchBody
		node.Catches = append(node.Catches, clause)
	}

	if p.currentIs(lexer.T_FINALLY) {
		p.advance()
		finallyBody, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		node.Finally = finallyBody
		node.HasFinally = true
	}

	if len(node.Catches) == 0 && !node.HasFinally {
		return nil, errors.NewTryWithoutCatchOrFinally(tok.Span, tok.Position)
	}
	return node, nil
}

// parseTypeName catch 或继承列表中的一个名字
func (p *Parser) parseTypeName() (*ast.Identifier, *errors.ParseError) {
	tok := p.current()
	switch tok.Type {
	case lexer.T_STRING, lexer.T_NAME_QUALIFIED, lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE:
		p.advance()
		return &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}, nil
	}
	return nil, errors.NewExpectedOneOf([]string{"identifier"}, tok)
}

func (p *Parser) parseDeclareStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // declare
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	node := &ast.DeclareStatement{BaseNode: ast.NewBaseNode(ast.ASTDeclareStatement, tok)}
	for {
		name, err := p.expect(lexer.T_STRING)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_EQUAL); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, &ast.DeclareItem{
			Key:   &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
			Value: value,
		})
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.TOKEN_LBRACE:
		body, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		node.Body = body
		node.HasBody = true
	case lexer.TOKEN_COLON:
		p.advance()
		node.Alternative = true
		node.HasBody = true
		body, err := p.parseBlockUntil(lexer.T_ENDDECLARE)
		if err != nil {
			return nil, err
		}
		node.Body = body
		p.advance() // enddeclare
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	default:
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *Parser) parseNamespaceStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // namespace
	node := &ast.NamespaceStatement{BaseNode: ast.NewBaseNode(ast.ASTNamespaceStatement, tok)}

	if p.currentIs(lexer.T_STRING, lexer.T_NAME_QUALIFIED) {
		name := p.advance()
		node.Name = &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value}
	}

	if p.currentIs(lexer.TOKEN_LBRACE) {
		body, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		node.Body = body
		node.Braced = true
		return node, nil
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseUseStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // use
	node := &ast.UseStatement{BaseNode: ast.NewBaseNode(ast.ASTUseStatement, tok)}

	switch p.current().Type {
	case lexer.T_FUNCTION:
		p.advance()
		node.UseKind = ast.UseFunction
	case lexer.T_CONST:
		p.advance()
		node.UseKind = ast.UseConst
	}

	first, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}

	// 组导入：prefix\{a, b as c}
	if p.currentIs(lexer.T_NS_SEPARATOR) && p.peek(1).Type == lexer.TOKEN_LBRACE {
		p.advance()
		p.advance()
		node.Group = true
		node.Prefix = first

		for !p.currentIs(lexer.TOKEN_RBRACE) {
			clause := &ast.UseClause{UseKind: ast.UseNormal}
			switch p.current().Type {
			case lexer.T_FUNCTION:
				p.advance()
				clause.UseKind = ast.UseFunction
			case lexer.T_CONST:
				p.advance()
				clause.UseKind = ast.UseConst
			}
			name, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			clause.Name = name
			if p.currentIs(lexer.T_AS) {
				p.advance()
				alias, err := p.expect(lexer.T_STRING)
				if err != nil {
					return nil, err
				}
				clause.Alias = &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, alias), Value: alias.Value}
			}
			node.Clauses = append(node.Clauses, clause)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.TOKEN_RBRACE); err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return node, nil
	}

	clause := &ast.UseClause{UseKind: node.UseKind, Name: first}
	if p.currentIs(lexer.T_AS) {
		p.advance()
		alias, err := p.expect(lexer.T_STRING)
		if err != nil {
			return nil, err
		}
		clause.Alias = &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, alias), Value: alias.Value}
	}
	node.Clauses = append(node.Clauses, clause)

	for p.currentIs(lexer.TOKEN_COMMA) {
		p.advance()
		name, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		c := &ast.UseClause{UseKind: node.UseKind, Name: name}
		if p.currentIs(lexer.T_AS) {
			p.advance()
			alias, err := p.expect(lexer.T_STRING)
			if err != nil {
				return nil, err
			}
			c.Alias = &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, alias), Value: alias.Value}
		}
		node.Clauses = append(node.Clauses, c)
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseConstStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // const
	node := &ast.ConstStatement{BaseNode: ast.NewBaseNode(ast.ASTConstStatement, tok)}

	for {
		name, err := p.parseReservedName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_EQUAL); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		node.Consts = append(node.Consts, &ast.ConstantDecl{Name: name, Value: value})
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return node, nil
}
