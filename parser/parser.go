package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// maxDepth 表达式递归深度上限，防止恶意嵌套打爆栈
const maxDepth = 512

// 前缀解析函数类型
type prefixParseFn func() (ast.Expression, *errors.ParseError)

// Parser 解析器。持有完整 token 向量和游标；注释在构造时被剥离收集，
// 文档注释挂到紧随其后的声明上
type Parser struct {
	tokens []lexer.Token // 有效 token，以 T_EOF 结尾
	pos    int

	comments []lexer.Token               // 收集到的全部注释
	docAhead map[int]lexer.ByteString    // 有效 token 下标 -> 紧邻其前的文档注释

	// 前缀解析函数表
	prefixParseFns map[lexer.TokenType]prefixParseFn

	// 当前语句头位置的文档注释，声明解析函数从这里取走
	stmtDoc lexer.ByteString

	depth int

	lex *lexer.Lexer // New 形式下延迟求值的词法器
}

// New 创建新的解析器，token 流来自给定词法器
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.registerPrefixFns()
	return p
}

// Parse 消费 token 向量并返回完整 AST，或第一个语法错误
func Parse(tokens []lexer.Token) (*ast.Program, *errors.ParseError) {
	p := &Parser{}
	p.registerPrefixFns()
	p.load(tokens)
	return p.parseProgram()
}

// ParseSource 便捷入口：词法加语法一步到位
func ParseSource(input []byte) (*ast.Program, error) {
	tokens, lerr := lexer.Tokenize(input)
	if lerr != nil {
		return nil, lerr
	}
	program, perr := Parse(tokens)
	if perr != nil {
		return nil, perr
	}
	return program, nil
}

// ParseProgram teacher 风格入口：从词法器取完 token 再解析
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if p.lex != nil {
		var tokens []lexer.Token
		for {
			tok, lerr := p.lex.NextToken()
			if lerr != nil {
				return nil, lerr
			}
			tokens = append(tokens, tok)
			if tok.Type == lexer.T_EOF {
				break
			}
		}
		p.load(tokens)
		p.lex = nil
	}
	program, perr := p.parseProgram()
	if perr != nil {
		return nil, perr
	}
	return program, nil
}

// Comments 返回解析过程中收集到的注释 token
func (p *Parser) Comments() []lexer.Token {
	return p.comments
}

// load 剥离注释并建立 文档注释->声明 的邻接映射
func (p *Parser) load(tokens []lexer.Token) {
	p.docAhead = make(map[int]lexer.ByteString)
	var pendingDoc lexer.ByteString
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.T_LINE_COMMENT, lexer.T_HASH_COMMENT, lexer.T_BLOCK_COMMENT:
			p.comments = append(p.comments, tok)
			continue
		case lexer.T_DOC_COMMENT:
			p.comments = append(p.comments, tok)
			pendingDoc = tok.Value
			continue
		}
		if pendingDoc != nil {
			p.docAhead[len(p.tokens)] = pendingDoc
			pendingDoc = nil
		}
		p.tokens = append(p.tokens, tok)
	}
	if len(p.tokens) == 0 {
		p.tokens = []lexer.Token{{Type: lexer.T_EOF}}
	}
}

// ============= 游标 =============

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// peek 向前看第 n 个 token（peek(0) == current()）
func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) currentIs(types ...lexer.TokenType) bool {
	cur := p.current().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// expect 断言当前 token 类型并前进
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, *errors.ParseError) {
	if p.current().Type != t {
		return lexer.Token{}, errors.NewExpectedOneOf([]string{t.Describe()}, p.current())
	}
	return p.advance(), nil
}

// docComment 取出挂在当前 token 前的文档注释
func (p *Parser) docComment() lexer.ByteString {
	return p.docAhead[p.pos]
}

// skipTags 跳过开放/关闭标签，语句循环在每次派发前调用
func (p *Parser) skipTags() {
	for p.currentIs(lexer.T_OPEN_TAG, lexer.T_CLOSE_TAG) {
		p.advance()
	}
}

// expectStatementEnd 语句终结：分号、关闭标签，或文件结束
func (p *Parser) expectStatementEnd() *errors.ParseError {
	switch p.current().Type {
	case lexer.TOKEN_SEMICOLON:
		p.advance()
		return nil
	case lexer.T_CLOSE_TAG, lexer.T_EOF:
		// 关闭标签由语句循环吞掉
		return nil
	}
	return errors.NewExpectedOneOf([]string{";"}, p.current())
}

// ============= 程序与语句 =============

func (p *Parser) parseProgram() (*ast.Program, *errors.ParseError) {
	program := &ast.Program{BaseNode: ast.NewBaseNode(ast.ASTProgram, p.current())}

	for {
		p.skipTags()
		if p.currentIs(lexer.T_EOF) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, nil
}

// parseBlockUntil 收集语句直到给定终结 token（不消费终结符）
func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) ([]ast.Statement, *errors.ParseError) {
	var stmts []ast.Statement
	for {
		p.skipTags()
		if p.currentIs(lexer.T_EOF) {
			return nil, errors.NewUnexpectedEndOfFile(p.current())
		}
		if p.currentIs(terminators...) {
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
}

// parseBracedBlock { … }
func (p *Parser) parseBracedBlock() ([]ast.Statement, *errors.ParseError) {
	if _, err := p.expect(lexer.TOKEN_LBRACE); err != nil {
		return nil, err
	}
	stmts, err := p.parseBlockUntil(lexer.TOKEN_RBRACE)
	if err != nil {
		return nil, err
	}
	p.advance() // }
	return stmts, nil
}

// parseStatement 按当前 token 派发一条语句
func (p *Parser) parseStatement() (ast.Statement, *errors.ParseError) {
	tok := p.current()
	p.stmtDoc = p.docComment()

	switch tok.Type {
	case lexer.T_INLINE_HTML:
		p.advance()
		return &ast.InlineHTMLStatement{BaseNode: ast.NewBaseNode(ast.ASTInlineHTMLStatement, tok), Value: tok.Value}, nil

	case lexer.T_OPEN_TAG_WITH_ECHO:
		p.advance()
		return p.parseEchoTail(tok)

	case lexer.TOKEN_SEMICOLON:
		p.advance()
		return &ast.NoopStatement{BaseNode: ast.NewBaseNode(ast.ASTNoopStatement, tok)}, nil

	case lexer.T_ECHO:
		p.advance()
		return p.parseEchoTail(tok)

	case lexer.TOKEN_LBRACE:
		stmts, err := p.parseBracedBlock()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{BaseNode: ast.NewBaseNode(ast.ASTBlockStatement, tok), Statements: stmts}, nil

	case lexer.T_IF:
		return p.parseIfStatement()
	case lexer.T_WHILE:
		return p.parseWhileStatement()
	case lexer.T_DO:
		return p.parseDoWhileStatement()
	case lexer.T_FOR:
		return p.parseForStatement()
	case lexer.T_FOREACH:
		return p.parseForeachStatement()
	case lexer.T_SWITCH:
		return p.parseSwitchStatement()
	case lexer.T_TRY:
		return p.parseTryStatement()
	case lexer.T_DECLARE:
		return p.parseDeclareStatement()

	case lexer.T_THROW:
		p.advance()
		value, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{BaseNode: ast.NewBaseNode(ast.ASTThrowStatement, tok), Value: value}, nil

	case lexer.T_RETURN:
		p.advance()
		stmt := &ast.ReturnStatement{BaseNode: ast.NewBaseNode(ast.ASTReturnStatement, tok)}
		if !p.currentIs(lexer.TOKEN_SEMICOLON, lexer.T_CLOSE_TAG, lexer.T_EOF) {
			value, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return stmt, nil

	case lexer.T_BREAK, lexer.T_CONTINUE:
		p.advance()
		var level ast.Expression
		if !p.currentIs(lexer.TOKEN_SEMICOLON, lexer.T_CLOSE_TAG, lexer.T_EOF) {
			var err *errors.ParseError
			level, err = p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		if tok.Type == lexer.T_BREAK {
			return &ast.BreakStatement{BaseNode: ast.NewBaseNode(ast.ASTBreakStatement, tok), Level: level}, nil
		}
		return &ast.ContinueStatement{BaseNode: ast.NewBaseNode(ast.ASTContinueStatement, tok), Level: level}, nil

	case lexer.T_GLOBAL:
		p.advance()
		var vars []ast.Expression
		for {
			v, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			vars = append(vars, v)
			if !p.currentIs(lexer.TOKEN_COMMA) {
				break
			}
			p.advance()
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.GlobalStatement{BaseNode: ast.NewBaseNode(ast.ASTGlobalStatement, tok), Vars: vars}, nil

	case lexer.T_STATIC:
		// static $v 是静态变量声明；static fn/function 是表达式前缀；
		// static:: 是作用域目标
		if p.peek(1).Type == lexer.T_VARIABLE {
			return p.parseStaticVarStatement()
		}
		return p.parseExpressionStatement()

	case lexer.T_GOTO:
		p.advance()
		name, err := p.expect(lexer.T_STRING)
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		label := &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, name), Value: name.Value}
		return &ast.GotoStatement{BaseNode: ast.NewBaseNode(ast.ASTGotoStatement, tok), Label: label}, nil

	case lexer.T_UNSET:
		return p.parseUnsetStatement()

	case lexer.T_NAMESPACE:
		return p.parseNamespaceStatement()
	case lexer.T_USE:
		return p.parseUseStatement()
	case lexer.T_CONST:
		return p.parseConstStatement()

	case lexer.T_HALT_COMPILER:
		p.advance()
		if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.HaltCompilerStatement{BaseNode: ast.NewBaseNode(ast.ASTHaltCompilerStatement, tok)}, nil

	case lexer.T_FUNCTION:
		// 具名函数声明要求 function 后面是名字或 & 名字；
		// 其余情况是匿名函数表达式
		if p.functionIsDeclaration() {
			return p.parseFunctionDeclaration(nil)
		}
		return p.parseExpressionStatement()

	case lexer.T_ABSTRACT, lexer.T_FINAL:
		return p.parseClassLikeDeclaration(nil)

	case lexer.T_READONLY:
		if p.peek(1).Type == lexer.T_CLASS || p.peek(1).Type == lexer.T_ABSTRACT || p.peek(1).Type == lexer.T_FINAL {
			return p.parseClassLikeDeclaration(nil)
		}
		return p.parseExpressionStatement()

	case lexer.T_CLASS:
		return p.parseClassLikeDeclaration(nil)
	case lexer.T_INTERFACE:
		return p.parseInterfaceDeclaration(nil)
	case lexer.T_TRAIT:
		return p.parseTraitDeclaration(nil)
	case lexer.T_ENUM:
		if p.peek(1).Type == lexer.T_STRING {
			return p.parseEnumDeclaration(nil)
		}
		return p.parseExpressionStatement()

	case lexer.T_ATTRIBUTE:
		return p.parseAttributedStatement()

	case lexer.T_STRING:
		// 一个 token 的前瞻区分标签和表达式
		if p.peek(1).Type == lexer.TOKEN_COLON {
			p.advance()
			p.advance()
			name := &ast.Identifier{BaseNode: ast.NewBaseNode(ast.ASTIdentifier, tok), Value: tok.Value}
			return &ast.LabelStatement{BaseNode: ast.NewBaseNode(ast.ASTLabelStatement, tok), Name: name}, nil
		}
		return p.parseExpressionStatement()
	}

	return p.parseExpressionStatement()
}

// functionIsDeclaration 多 token 前瞻判断 function 是否开启具名声明
func (p *Parser) functionIsDeclaration() bool {
	next := p.peek(1)
	if next.Type == lexer.TOKEN_AMPERSAND {
		next = p.peek(2)
	}
	switch next.Type {
	case lexer.T_STRING, lexer.T_NULL, lexer.T_TRUE, lexer.T_FALSE:
		return true
	}
	return false
}

func (p *Parser) parseEchoTail(tok lexer.Token) (ast.Statement, *errors.ParseError) {
	var values []ast.Expression
	for {
		v, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if !p.currentIs(lexer.TOKEN_COMMA) {
			break
		}
		p.advance()
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.EchoStatement{BaseNode: ast.NewBaseNode(ast.ASTEchoStatement, tok), Values: values}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, *errors.ParseError) {
	tok := p.current()
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{BaseNode: ast.NewBaseNode(ast.ASTExpressionStatement, tok), Expr: expr}, nil
}

func (p *Parser) parseStaticVarStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // static
	var vars []*ast.StaticVar
	for {
		vtok, err := p.expect(lexer.T_VARIABLE)
		if err != nil {
			return nil, err
		}
		sv := &ast.StaticVar{
			Var: &ast.Variable{BaseNode: ast.NewBaseNode(ast.ASTVariable, vtok), Name: vtok.Value},
		}
		if p.currentIs(lexer.TOKEN_EQUAL) {
			p.advance()
			def, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			sv.Default = def
		}
		vars = append(vars, sv)
		if !p.currentIs(lexer.TOKEN_COMMA) {
			break
		}
		p.advance()
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.StaticStatement{BaseNode: ast.NewBaseNode(ast.ASTStaticStatement, tok), Vars: vars}, nil
}

func (p *Parser) parseUnsetStatement() (ast.Statement, *errors.ParseError) {
	tok := p.advance() // unset
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
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.UnsetStatement{BaseNode: ast.NewBaseNode(ast.ASTUnsetStatement, tok), Vars: vars}, nil
}

// parseAttributedStatement #[…] 之后必须跟可标注的定义
func (p *Parser) parseAttributedStatement() (ast.Statement, *errors.ParseError) {
	attrs, err := p.parseAttributeGroups()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.T_FUNCTION:
		if p.functionIsDeclaration() {
			return p.parseFunctionDeclaration(attrs)
		}
		// 匿名函数表达式上的属性
		return p.finishAttributedClosureStatement(attrs)
	case lexer.T_FN, lexer.T_STATIC:
		return p.finishAttributedClosureStatement(attrs)
	case lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_READONLY, lexer.T_CLASS:
		return p.parseClassLikeDeclaration(attrs)
	case lexer.T_INTERFACE:
		return p.parseInterfaceDeclaration(attrs)
	case lexer.T_TRAIT:
		return p.parseTraitDeclaration(attrs)
	case lexer.T_ENUM:
		return p.parseEnumDeclaration(attrs)
	}
	return nil, errors.NewExpectedItemDefinitionAfterAttributes(p.current())
}

// finishAttributedClosureStatement 语句位置上带属性的匿名函数或箭头函数
func (p *Parser) finishAttributedClosureStatement(attrs []*ast.AttributeGroup) (ast.Statement, *errors.ParseError) {
	tok := p.current()

	var expr ast.Expression
	var err *errors.ParseError
	switch tok.Type {
	case lexer.T_FUNCTION:
		expr, err = p.parseClosureExpression(attrs, false)
	case lexer.T_FN:
		expr, err = p.parseArrowFnExpression(attrs, false)
	case lexer.T_STATIC:
		switch p.peek(1).Type {
		case lexer.T_FUNCTION:
			p.advance()
			expr, err = p.parseClosureExpression(attrs, true)
		case lexer.T_FN:
			p.advance()
			expr, err = p.parseArrowFnExpression(attrs, true)
		default:
			return nil, errors.NewExpectedItemDefinitionAfterAttributes(p.peek(1))
		}
	}
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{BaseNode: ast.NewBaseNode(ast.ASTExpressionStatement, tok), Expr: expr}, nil
}
