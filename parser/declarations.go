package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// parseAttributeGroups 连续的 #[…] 组
func (p *Parser) parseAttributeGroups() ([]*ast.AttributeGroup, *errors.ParseError) {
	var groups []*ast.AttributeGroup

	for p.currentIs(lexer.T_ATTRIBUTE) {
		p.advance() // #[
		group := &ast.AttributeGroup{}
		for !p.currentIs(lexer.TOKEN_RBRACKET) {
			name, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			attr := &ast.Attribute{Name: name}
			if p.currentIs(lexer.TOKEN_LPAREN) {
				args, _, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				attr.Args = args
			}
			group.Attributes = append(group.Attributes, attr)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// parseFunctionDeclaration 具名函数
func (p *Parser) parseFunctionDeclaration(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	tok := p.advance() // function

	node := &ast.FunctionDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTFunctionDeclaration, tok),
		Attributes: attrs,
		DocComment: doc,
	}
	if p.currentIs(lexer.TOKEN_AMPERSAND) {
		p.advance()
		node.ByRef = true
	}

	name, err := p.parseReservedName()
	if err != nil {
		return nil, err
	}
	node.Name = name

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

	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

// parseClassLikeDeclaration 带修饰符的类声明
func (p *Parser) parseClassLikeDeclaration(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	head := p.current()

	var modifiers []string
	for p.currentIs(lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_READONLY) {
		modifiers = append(modifiers, p.advance().Type.Describe())
	}

	if _, err := p.expect(lexer.T_CLASS); err != nil {
		return nil, err
	}

	name, err := p.expect(lexer.T_STRING)
	if err != nil {
		return nil, err
	}

	node := &ast.ClassDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTClassDeclaration, head),
		Attributes: attrs,
		Modifiers:  modifiers,
		Name:       &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
		DocComment: doc,
	}

	if p.currentIs(lexer.T_EXTENDS) {
		p.advance()
		parent, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		node.Extends = parent
	}
	if p.currentIs(lexer.T_IMPLEMENTS) {
		p.advance()
		for {
			iface, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			node.Implements = append(node.Implements, iface)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	body, err := p.parseClassBody(false)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseInterfaceDeclaration(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	tok := p.advance() // interface

	name, err := p.expect(lexer.T_STRING)
	if err != nil {
		return nil, err
	}

	node := &ast.InterfaceDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTInterfaceDeclaration, tok),
		Attributes: attrs,
		Name:       &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
		DocComment: doc,
	}

	if p.currentIs(lexer.T_EXTENDS) {
		p.advance()
		for {
			parent, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			node.Extends = append(node.Extends, parent)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	body, err := p.parseClassBody(false)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseTraitDeclaration(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	tok := p.advance() // trait

	name, err := p.expect(lexer.T_STRING)
	if err != nil {
		return nil, err
	}

	node := &ast.TraitDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTTraitDeclaration, tok),
		Attributes: attrs,
		Name:       &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
		DocComment: doc,
	}

	body, err := p.parseClassBody(false)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseEnumDeclaration(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	tok := p.advance() // enum

	name, err := p.expect(lexer.T_STRING)
	if err != nil {
		return nil, err
	}

	node := &ast.EnumDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTEnumDeclaration, tok),
		Attributes: attrs,
		Name:       &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value},
		DocComment: doc,
	}

	if p.currentIs(lexer.TOKEN_COLON) {
		p.advance()
		bt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.BackingType = bt
	}
	if p.currentIs(lexer.T_IMPLEMENTS) {
		p.advance()
		for {
			iface, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			node.Implements = append(node.Implements, iface)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	body, err := p.parseClassBody(true)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

// parseClassBody 类体，语句列表。enum 体额外允许 case 成员
func (p *Parser) parseClassBody(isEnum bool) ([]ast.Statement, *errors.ParseError) {
	if _, err := p.expect(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}

	var stmts []ast.Statement
	for !p.currentIs(lexer.TOKEN_RBRACE) {
		if p.currentIs(lexer.T_EOF) {
			return nil, errors.NewUnexpectedEndOfFile(p.current())
		}
		stmt, err := p.parseClassMember(isEnum)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // }
	return stmts, nil
}

// parseClassMember 单个类成员
func (p *Parser) parseClassMember(isEnum bool) (ast.Statement, *errors.ParseError) {
	p.stmtDoc = p.docComment()

	var attrs []*ast.AttributeGroup
	if p.currentIs(lexer.T_ATTRIBUTE) {
		var err *errors.ParseError
		attrs, err = p.parseAttributeGroups()
		if err != nil {
			return nil, err
		}
	}

	// trait 引入
	if p.currentIs(lexer.T_USE) {
		return p.parseTraitUse()
	}

	// enum case
	if isEnum && p.currentIs(lexer.T_CASE) {
		tok := p.advance()
		name, err := p.parseReservedName()
		if err != nil {
			return nil, err
		}
		node := &ast.EnumCase{
			BaseNode:   ast.NewBaseNode(ast.ASTEnumCase, tok),
			Attributes: attrs,
			Name:       name,
		}
		if p.currentIs(lexer.TOKEN_EQUAL) {
			p.advance()
			value, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			node.Value = value
		}
		if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
		return node, nil
	}

	head := p.current()
	var modifiers []string
	for p.currentIs(lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE,
		lexer.T_STATIC, lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_READONLY, lexer.T_VAR) {
		modifiers = append(modifiers, p.advance().Type.Describe())
	}

	switch p.current().Type {
	case lexer.T_CONST:
		return p.parseClassConst(head, attrs, modifiers)

	case lexer.T_FUNCTION:
		return p.parseMethod(head, attrs, modifiers)

	case lexer.T_VARIABLE:
		return p.parseProperty(head, attrs, modifiers, nil)
	}

	// 带类型标注的属性
	if p.typeStartAhead() {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return p.parseProperty(head, attrs, modifiers, t)
	}

	if len(attrs) > 0 {
		return nil, errors.NewExpectedItemDefinitionAfterAttributes(p.current())
	}
	return nil, errors.NewExpectedOneOf([]string{"const", "function", "$property"}, p.current())
}

// typeStartAhead 当前 token 是否可以开启一个类型标注
func (p *Parser) typeStartAhead() bool {
	switch p.current().Type {
	case lexer.TOKEN_QUESTION, lexer.T_STRING, lexer.T_NAME_QUALIFIED,
		lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE,
		lexer.T_ARRAY, lexer.T_CALLABLE, lexer.T_STATIC, lexer.T_SELF,
		lexer.T_PARENT, lexer.T_NULL, lexer.T_TRUE, lexer.T_FALSE:
		return true
	}
	return false
}

func (p *Parser) parseClassConst(head lexer.Token, attrs []*ast.AttributeGroup, modifiers []string) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	p.advance() // const

	node := &ast.ClassConstStatement{
		BaseNode:   ast.NewBaseNode(ast.ASTClassConstStatement, head),
		Attributes: attrs,
		Modifiers:  modifiers,
		DocComment: doc,
	}

	// 类型化常量：const int X = 1
	if p.typeStartAhead() && p.peek(1).Type != lexer.TOKEN_EQUAL {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.Type = t
	}

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
	if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseMethod(head lexer.Token, attrs []*ast.AttributeGroup, modifiers []string) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc
	p.advance() // function

	node := &ast.MethodDeclaration{
		BaseNode:   ast.NewBaseNode(ast.ASTMethodDeclaration, head),
		Attributes: attrs,
		Modifiers:  modifiers,
		DocComment: doc,
	}
	if p.currentIs(lexer.TOKEN_AMPERSAND) {
		p.advance()
		node.ByRef = true
	}

	name, err := p.parseReservedName()
	if err != nil {
		return nil, err
	}
	node.Name = name

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

	if p.currentIs(lexer.TOKEN_SEMICOLON) {
		p.advance()
		return node, nil
	}

	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	node.HasBody = true
	return node, nil
}

func (p *Parser) parseProperty(head lexer.Token, attrs []*ast.AttributeGroup, modifiers []string, t ast.Type) (ast.Statement, *errors.ParseError) {
	doc := p.stmtDoc

	node := &ast.PropertyStatement{
		BaseNode:   ast.NewBaseNode(ast.ASTPropertyStatement, head),
		Attributes: attrs,
		Modifiers:  modifiers,
		Type:       t,
		DocComment: doc,
	}

	for {
		vtok, err := p.expect(lexer.T_VARIABLE)
		if err != nil {
			return nil, err
		}
		entry := &ast.PropertyEntry{Name: vtok.Value}
		if p.currentIs(lexer.TOKEN_EQUAL) {
			p.advance()
			def, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			entry.Default = def
		}
		node.Props = append(node.Props, entry)
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	return node, nil
}

// parseTraitUse 类体内的 use T1, T2 [{ 适配项 }]
func (p *Parser) parseTraitUse() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // use
	node := &ast.TraitUseStatement{BaseNode: ast.NewBaseNode(ast.ASTTraitUseStatement, tok)}

	for {
		name, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		node.Traits = append(node.Traits, name)
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}

	if p.currentIs(lexer.TOKEN_SEMICOLON) {
		p.advance()
		return node, nil
	}

	if _, err := p.expect(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}
	for !p.currentIs(lexer.TOKEN_RBRACE) {
		adaptation, err := p.parseTraitAdaptation()
		if err != nil {
			return nil, err
		}
		node.Adaptations = append(node.Adaptations, adaptation)
	}
	p.advance() // }
	return node, nil
}

func (p *Parser) parseTraitAdaptation() (*ast.TraitAdaptation, *errors.ParseError) {
	first, err := p.parseReservedName()
	if err != nil {
		return nil, err
	}

	adaptation := &ast.TraitAdaptation{Method: first}
	if p.currentIs(lexer.T_PAAMAYIM_NEKUDOTAYIM) {
		p.advance()
		method, err := p.parseReservedName()
		if err != nil {
			return nil, err
		}
		adaptation.Trait = first
		adaptation.Method = method
	}

	switch p.current().Type {
	case lexer.T_INSTEADOF:
		p.advance()
		for {
			name, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			adaptation.Insteadof = append(adaptation.Insteadof, name)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
	case lexer.T_AS:
		p.advance()
		if p.currentIs(lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE) {
			adaptation.Visibility = p.advance().Type.Describe()
		}
		if !p.currentIs(lexer.TOKEN_SEMICOLON) {
			alias, err := p.parseReservedName()
			if err != nil {
				return nil, err
			}
			adaptation.Alias = alias
		}
	default:
		return nil, errors.NewExpectedOneOf([]string{"insteadof", "as"}, p.current())
	}

	if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	return adaptation, nil
}

// ============= 形参与类型 =============

func (p *Parser) parseParameterList() ([]*ast.Parameter, *errors.ParseError) {
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Parameter
	for !p.currentIs(lexer.TOKEN_RPAREN) {
		param := &ast.Parameter{}

		if p.currentIs(lexer.T_ATTRIBUTE) {
			attrs, err := p.parseAttributeGroups()
			if err != nil {
				return nil, err
			}
			param.Attributes = attrs
		}

		// 构造器属性提升修饰符
		for p.currentIs(lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE, lexer.T_READONLY) {
			param.Modifiers = append(param.Modifiers, p.advance().Type.Describe())
		}

		if !p.currentIs(lexer.TOKEN_AMPERSAND, lexer.T_ELLIPSIS, lexer.T_VARIABLE) {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Type = t
		}

		if p.currentIs(lexer.TOKEN_AMPERSAND) {
			p.advance()
			param.ByRef = true
		}
		if p.currentIs(lexer.T_ELLIPSIS) {
			p.advance()
			param.Variadic = true
		}

		vtok, err := p.expect(lexer.T_VARIABLE)
		if err != nil {
			return nil, err
		}
		param.Name = vtok.Value

		if p.currentIs(lexer.TOKEN_EQUAL) {
			p.advance()
			def, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}

		params = append(params, param)
		if p.currentIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseType 类型标注：?T、A|B、A&B。带括号的 DNF 形式不支持
func (p *Parser) parseType() (ast.Type, *errors.ParseError) {
	if p.currentIs(lexer.TOKEN_QUESTION) {
		tok := p.advance()
		inner, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		return &ast.NullableType{BaseNode: ast.NewBaseNode(ast.ASTNullableType, tok), Inner: inner}, nil
	}

	head := p.current()
	first, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}

	if p.currentIs(lexer.TOKEN_PIPE) {
		union := &ast.UnionType{BaseNode: ast.NewBaseNode(ast.ASTUnionType, head), Types: []ast.Type{first}}
		for p.currentIs(lexer.TOKEN_PIPE) {
			p.advance()
			t, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			union.Types = append(union.Types, t)
		}
		return union, nil
	}

	// 交集类型；& 后面跟变量或 ... 时是引用/变长参数标记
	if p.currentIs(lexer.TOKEN_AMPERSAND) && p.typeAtomStart(p.peek(1)) {
		inter := &ast.IntersectionType{BaseNode: ast.NewBaseNode(ast.ASTIntersectionType, head), Types: []ast.Type{first}}
		for p.currentIs(lexer.TOKEN_AMPERSAND) && p.typeAtomStart(p.peek(1)) {
			p.advance()
			t, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			inter.Types = append(inter.Types, t)
		}
		return inter, nil
	}

	return first, nil
}

func (p *Parser) typeAtomStart(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.T_STRING, lexer.T_NAME_QUALIFIED, lexer.T_NAME_FULLY_QUALIFIED,
		lexer.T_NAME_RELATIVE, lexer.T_ARRAY, lexer.T_CALLABLE, lexer.T_STATIC,
		lexer.T_SELF, lexer.T_PARENT, lexer.T_NULL, lexer.T_TRUE, lexer.T_FALSE:
		return true
	}
	return false
}

func (p *Parser) parseTypeAtom() (ast.Type, *errors.ParseError) {
	tok := p.current()
	if !p.typeAtomStart(tok) {
		return nil, errors.NewUnexpectedToken(tok)
	}
	p.advance()
	return &ast.SimpleType{BaseNode: ast.NewBaseNode(ast.ASTSimpleType, tok), Name: tok.Value}, nil
}

// parseAnonymousClass new class(...) { … }
func (p *Parser) parseAnonymousClass(newTok lexer.Token) (ast.Expression, *errors.ParseError) {
	var attrs []*ast.AttributeGroup
	if p.currentIs(lexer.T_ATTRIBUTE) {
		var err *errors.ParseError
		attrs, err = p.parseAttributeGroups()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.T_CLASS); err != nil {
		return nil, err
	}

	node := &ast.AnonymousClass{
		BaseNode:   ast.NewBaseNode(ast.ASTAnonymousClass, newTok),
		Attributes: attrs,
	}

	if p.currentIs(lexer.TOKEN_LPAREN) {
		args, _, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		node.Args = args
	}
	if p.currentIs(lexer.T_EXTENDS) {
		p.advance()
		parent, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		node.Extends = parent
	}
	if p.currentIs(lexer.T_IMPLEMENTS) {
		p.advance()
		for {
			iface, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			node.Implements = append(node.Implements, iface)
			if p.currentIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	body, err := p.parseClassBody(false)
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}
