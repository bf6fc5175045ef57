package ast

// ASTKind 标识节点的具体类型，消费方据此做穷尽匹配
type ASTKind int

const (
	ASTUnknown ASTKind = iota
	ASTProgram

	// 字面量与变量
	ASTIntegerLiteral
	ASTFloatLiteral
	ASTStringLiteral
	ASTInterpolatedString
	ASTHeredocString
	ASTNowdocString
	ASTBooleanLiteral
	ASTNullLiteral
	ASTMagicConstant
	ASTVariable
	ASTDynamicVariable
	ASTIdentifier

	// 复合左值与访问
	ASTPropertyFetch
	ASTStaticPropertyFetch
	ASTClassConstFetch
	ASTIndexExpression

	// 调用
	ASTFunctionCall
	ASTMethodCall
	ASTStaticCall
	ASTNewExpression
	ASTAnonymousClass

	// 操作符
	ASTPrefixExpression
	ASTPostfixExpression
	ASTCastExpression
	ASTErrorSuppress
	ASTPrintExpression
	ASTBinaryExpression
	ASTAssignmentExpression
	ASTTernaryExpression
	ASTCoalesceExpression
	ASTYieldExpression
	ASTYieldFromExpression
	ASTThrowExpression
	ASTCloneExpression
	ASTIncludeExpression

	// 结构化表达式
	ASTArrayExpression
	ASTListExpression
	ASTMatchExpression
	ASTClosure
	ASTArrowFunction
	ASTIssetExpression
	ASTEmptyExpression
	ASTEvalExpression
	ASTExitExpression

	// 语句
	ASTExpressionStatement
	ASTEchoStatement
	ASTBlockStatement
	ASTIfStatement
	ASTWhileStatement
	ASTDoWhileStatement
	ASTForStatement
	ASTForeachStatement
	ASTSwitchStatement
	ASTBreakStatement
	ASTContinueStatement
	ASTReturnStatement
	ASTGlobalStatement
	ASTStaticStatement
	ASTInlineHTMLStatement
	ASTCommentStatement
	ASTGotoStatement
	ASTLabelStatement
	ASTDeclareStatement
	ASTTryStatement
	ASTThrowStatement
	ASTUnsetStatement
	ASTHaltCompilerStatement
	ASTNoopStatement
	ASTNamespaceStatement
	ASTUseStatement
	ASTConstStatement

	// 声明
	ASTFunctionDeclaration
	ASTClassDeclaration
	ASTInterfaceDeclaration
	ASTTraitDeclaration
	ASTEnumDeclaration
	ASTEnumCase
	ASTPropertyStatement
	ASTClassConstStatement
	ASTMethodDeclaration
	ASTTraitUseStatement

	// 类型
	ASTSimpleType
	ASTNullableType
	ASTUnionType
	ASTIntersectionType
)

var kindNames = map[ASTKind]string{
	ASTUnknown:               "Unknown",
	ASTProgram:               "Program",
	ASTIntegerLiteral:        "IntegerLiteral",
	ASTFloatLiteral:          "FloatLiteral",
	ASTStringLiteral:         "StringLiteral",
	ASTInterpolatedString:    "InterpolatedString",
	ASTHeredocString:         "HeredocString",
	ASTNowdocString:          "NowdocString",
	ASTBooleanLiteral:        "BooleanLiteral",
	ASTNullLiteral:           "NullLiteral",
	ASTMagicConstant:         "MagicConstant",
	ASTVariable:              "Variable",
	ASTDynamicVariable:       "DynamicVariable",
	ASTIdentifier:            "Identifier",
	ASTPropertyFetch:         "PropertyFetch",
	ASTStaticPropertyFetch:   "StaticPropertyFetch",
	ASTClassConstFetch:       "ClassConstFetch",
	ASTIndexExpression:       "IndexExpression",
	ASTFunctionCall:          "FunctionCall",
	ASTMethodCall:            "MethodCall",
	ASTStaticCall:            "StaticCall",
	ASTNewExpression:         "NewExpression",
	ASTAnonymousClass:        "AnonymousClass",
	ASTPrefixExpression:      "PrefixExpression",
	ASTPostfixExpression:     "PostfixExpression",
	ASTCastExpression:        "CastExpression",
	ASTErrorSuppress:         "ErrorSuppress",
	ASTPrintExpression:       "PrintExpression",
	ASTBinaryExpression:      "BinaryExpression",
	ASTAssignmentExpression:  "AssignmentExpression",
	ASTTernaryExpression:     "TernaryExpression",
	ASTCoalesceExpression:    "CoalesceExpression",
	ASTYieldExpression:       "YieldExpression",
	ASTYieldFromExpression:   "YieldFromExpression",
	ASTThrowExpression:       "ThrowExpression",
	ASTCloneExpression:       "CloneExpression",
	ASTIncludeExpression:     "IncludeExpression",
	ASTArrayExpression:       "ArrayExpression",
	ASTListExpression:        "ListExpression",
	ASTMatchExpression:       "MatchExpression",
	ASTClosure:               "Closure",
	ASTArrowFunction:         "ArrowFunction",
	ASTIssetExpression:       "IssetExpression",
	ASTEmptyExpression:       "EmptyExpression",
	ASTEvalExpression:        "EvalExpression",
	ASTExitExpression:        "ExitExpression",
	ASTExpressionStatement:   "ExpressionStatement",
	ASTEchoStatement:         "EchoStatement",
	ASTBlockStatement:        "BlockStatement",
	ASTIfStatement:           "IfStatement",
	ASTWhileStatement:        "WhileStatement",
	ASTDoWhileStatement:      "DoWhileStatement",
	ASTForStatement:          "ForStatement",
	ASTForeachStatement:      "ForeachStatement",
	ASTSwitchStatement:       "SwitchStatement",
	ASTBreakStatement:        "BreakStatement",
	ASTContinueStatement:     "ContinueStatement",
	ASTReturnStatement:       "ReturnStatement",
	ASTGlobalStatement:       "GlobalStatement",
	ASTStaticStatement:       "StaticStatement",
	ASTInlineHTMLStatement:   "InlineHTMLStatement",
	ASTCommentStatement:      "CommentStatement",
	ASTGotoStatement:         "GotoStatement",
	ASTLabelStatement:        "LabelStatement",
	ASTDeclareStatement:      "DeclareStatement",
	ASTTryStatement:          "TryStatement",
	ASTThrowStatement:        "ThrowStatement",
	ASTUnsetStatement:        "UnsetStatement",
	ASTHaltCompilerStatement: "HaltCompilerStatement",
	ASTNoopStatement:         "NoopStatement",
	ASTNamespaceStatement:    "NamespaceStatement",
	ASTUseStatement:          "UseStatement",
	ASTConstStatement:        "ConstStatement",
	ASTFunctionDeclaration:   "FunctionDeclaration",
	ASTClassDeclaration:      "ClassDeclaration",
	ASTInterfaceDeclaration:  "InterfaceDeclaration",
	ASTTraitDeclaration:      "TraitDeclaration",
	ASTEnumDeclaration:       "EnumDeclaration",
	ASTEnumCase:              "EnumCase",
	ASTPropertyStatement:     "PropertyStatement",
	ASTClassConstStatement:   "ClassConstStatement",
	ASTMethodDeclaration:     "MethodDeclaration",
	ASTTraitUseStatement:     "TraitUseStatement",
	ASTSimpleType:            "SimpleType",
	ASTNullableType:          "NullableType",
	ASTUnionType:             "UnionType",
	ASTIntersectionType:      "IntersectionType",
}

// String 返回节点类型名称
func (k ASTKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
