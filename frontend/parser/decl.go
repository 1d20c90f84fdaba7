package parser

import (
	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/lexer"
)

// parseImport parses `'import' qualified_path`.
func (p *Parser) parseImport() (ast.Definition, bool) {
	kwPos, _ := p.expectKeyword("import")
	ident, ok := p.parseQualifiedPath()
	if !ok {
		p.errorAt(kwPos, "expected a module path after 'import'")
		return nil, false
	}
	return ast.NewImport(kwPos, ident), true
}

// parseModuleDef parses `'module' qualified_path '{' program '}'`.
func (p *Parser) parseModuleDef() (ast.Definition, bool) {
	p.expectKeyword("module")
	identPos := p.peek().Pos
	ident, ok := p.parseQualifiedPath()
	if !ok {
		p.errorAt(identPos, "expected a module path after 'module'")
		return nil, false
	}
	if _, ok := p.expectPunct("{"); !ok {
		return nil, false
	}
	defs := p.parseProgram(true)
	p.expectPunct("}")
	return ast.NewModuleDefinition(identPos, ident, defs), true
}

// parseInstanceDef parses `'instance' ['template'] (var_def | fun_def | type_def)`,
// wrapping the underlying definition in the matching *InstanceDefinition node.
func (p *Parser) parseInstanceDef() (ast.Definition, bool) {
	p.expectKeyword("instance")

	template := false
	var instParams []string
	if p.atKeyword("template") {
		p.advance()
		template = true
		if p.atPunct("(") {
			instParams = p.parseTypeParamList()
		}
	}

	var annots []ast.Annotation
	for p.atPunct("@") {
		a, ok := p.parseAnnotation()
		if ok {
			annots = append(annots, a)
		}
	}

	if p.atKeyword("datatype") || p.atKeyword("unique") || p.atKeyword("type") {
		def, ok := p.parseTypeDef(instParams, ast.AccessNone, template, annots)
		if !ok {
			return nil, false
		}
		if tf, isFunc := def.(*ast.TypeFunctionDefinition); isFunc {
			return ast.NewTypeFunctionInstanceDefinition(tf.Pos(), tf), true
		}
		// A non-parameterized `instance type`/`instance datatype` has no
		// dedicated wrapper in the node family (only TypeFunctionInstanceDefinition
		// is named), so it surfaces as the plain TypeVariableDefinition itself.
		return def, true
	}

	inline := ast.InlineNone
	if p.atKeyword("inline") {
		p.advance()
		inline = ast.InlineInline
	}
	primitive := ast.FunctionModifierNone
	if p.atKeyword("primitive") {
		p.advance()
		primitive = ast.FunctionModifierPrimitive
	}

	switch {
	case p.atKeyword("extern"):
		def, ok := p.parseExternDef(ast.AccessNone, template, instParams, annots, inline, primitive)
		if !ok {
			return nil, false
		}
		return wrapVarOrFunInstance(def.Pos(), def), true
	case p.atKeyword("native"):
		def, ok := p.parseNativeDef(ast.AccessNone, template, instParams, annots, inline, primitive)
		if !ok {
			return nil, false
		}
		return wrapVarOrFunInstance(def.Pos(), def), true
	default:
		def, ok := p.parseVarOrFunDef(ast.AccessNone, template, instParams, annots, inline, primitive)
		if !ok {
			return nil, false
		}
		return wrapVarOrFunInstance(def.Pos(), def), true
	}
}

func wrapVarOrFunInstance(pos frontend.Position, def ast.Definition) ast.Definition {
	switch d := def.(type) {
	case *ast.VariableDefinition:
		return ast.NewVariableInstanceDefinition(pos, d)
	case *ast.FunctionDefinition:
		return ast.NewFunctionInstanceDefinition(pos, d)
	default:
		return def
	}
}

// parseModifiedDefinition parses the shared modifier prefix
// `private? (template(params)?)? (@annot)* (inline)? (primitive)?`
// and then dispatches to a type, extern, native, or plain var/fun
// definition, in their canonical order.
func (p *Parser) parseModifiedDefinition() (ast.Definition, bool) {
	access := ast.AccessNone
	if p.atKeyword("private") {
		p.advance()
		access = ast.AccessPrivate
		if p.atKeyword("private") {
			p.errorAtKind(p.peek().Pos, frontend.DuplicateModifierError, "duplicate 'private' modifier")
			p.advance()
		}
	}

	template := false
	var instParams []string
	if p.atKeyword("template") {
		p.advance()
		template = true
		if p.atPunct("(") {
			instParams = p.parseTypeParamList()
		}
		if p.atKeyword("template") {
			p.errorAtKind(p.peek().Pos, frontend.DuplicateModifierError, "duplicate 'template' modifier")
			p.advance()
		}
	}

	var annots []ast.Annotation
	for p.atPunct("@") {
		a, ok := p.parseAnnotation()
		if ok {
			annots = append(annots, a)
		}
	}

	if p.atKeyword("datatype") || p.atKeyword("unique") || p.atKeyword("type") {
		if len(annots) > 0 {
			p.errorAtKind(p.peek().Pos, frontend.ConflictingModifierError, "annotations are not allowed on a type definition")
		}
		return p.parseTypeDef(instParams, access, template, annots)
	}

	inline := ast.InlineNone
	if p.atKeyword("inline") {
		p.advance()
		inline = ast.InlineInline
		if p.atKeyword("inline") {
			p.errorAtKind(p.peek().Pos, frontend.DuplicateModifierError, "duplicate 'inline' modifier")
			p.advance()
		}
	}

	primitive := ast.FunctionModifierNone
	if p.atKeyword("primitive") {
		p.advance()
		primitive = ast.FunctionModifierPrimitive
		if p.atKeyword("primitive") {
			p.errorAtKind(p.peek().Pos, frontend.DuplicateModifierError, "duplicate 'primitive' modifier")
			p.advance()
		}
	}

	switch {
	case p.atKeyword("extern"):
		return p.parseExternDef(access, template, instParams, annots, inline, primitive)
	case p.atKeyword("native"):
		return p.parseNativeDef(access, template, instParams, annots, inline, primitive)
	default:
		return p.parseVarOrFunDef(access, template, instParams, annots, inline, primitive)
	}
}

// parseExternDef parses either the variable or function extern shape,
// deciding on a 2-token lookahead: a function head as recognized by
// atFunctionHeadStart (`extern ident (`, an operator head) is a function,
// anything else is a variable.
func (p *Parser) parseExternDef(access ast.AccessModifier, template bool, instParams []string, annots []ast.Annotation, inline ast.InlineModifier, primitive ast.FunctionModifier) (ast.Definition, bool) {
	p.expectKeyword("extern")

	if !p.atFunctionHeadStart() {
		nameTok, ok := p.expectIdentLike()
		if !ok {
			return nil, false
		}
		if len(annots) > 0 || inline == ast.InlineInline || primitive == ast.FunctionModifierPrimitive {
			p.errorAtKind(nameTok.Pos, frontend.ConflictingModifierError, "'extern' variables cannot carry annotations, inline, or primitive modifiers")
		}
		var typeExpr ast.TypeExpression
		if _, ok := p.expectPunct(":"); ok {
			typeExpr, _ = p.parseTypeExpr()
		}
		if _, ok := p.expectPunct("="); !ok {
			return nil, false
		}
		externNameTok, ok := p.expectIdentLike()
		if !ok {
			return nil, false
		}
		v := &ast.ExternalVariable{
			VariableBase: ast.VariableBase{Template: template, InstParams: instParams},
			Type:         typeExpr,
			ExternName:   externNameTok.Text,
		}
		return ast.NewVariableDefinition(nameTok.Pos, nameTok.Text, access, v), true
	}

	name, args, resultType, headPos, ok := p.parseHead()
	if !ok {
		return nil, false
	}
	if resultType == nil {
		p.errorAt(headPos, "'extern' function definition requires a result type")
	}
	if _, ok := p.expectPunct("="); !ok {
		return nil, false
	}
	externNameTok, ok := p.expectIdentLike()
	if !ok {
		return nil, false
	}
	f := &ast.ExternalFunction{
		FunctionBase: ast.FunctionBase{Template: template, InstParams: instParams, Mod: primitive, InlineMod: inline, Annots: annots},
		Args:         args,
		ResultType:   resultType,
		ExternName:   externNameTok.Text,
	}
	return ast.NewFunctionDefinition(headPos, name, access, f), true
}

// parseNativeDef parses `[access] [template] [annot*] [inline] [primitive]
// 'native' head ':' type_expr '=' ident`.
func (p *Parser) parseNativeDef(access ast.AccessModifier, template bool, instParams []string, annots []ast.Annotation, inline ast.InlineModifier, primitive ast.FunctionModifier) (ast.Definition, bool) {
	p.expectKeyword("native")
	name, args, resultType, headPos, ok := p.parseHead()
	if !ok {
		return nil, false
	}
	if resultType == nil {
		p.errorAt(headPos, "'native' function definition requires a result type")
	}
	if _, ok := p.expectPunct("="); !ok {
		return nil, false
	}
	nativeNameTok, ok := p.expectIdentLike()
	if !ok {
		return nil, false
	}
	f := &ast.NativeFunction{
		FunctionBase: ast.FunctionBase{Template: template, InstParams: instParams, Mod: primitive, InlineMod: inline, Annots: annots},
		Args:         args,
		ResultType:   resultType,
		NativeName:   nativeNameTok.Text,
	}
	return ast.NewFunctionDefinition(headPos, name, access, f), true
}

// parseVarOrFunDef decides between a variable and a function definition by
// a small lookahead on the head shape, then parses the `'=' expr` body
// (optional, for a bodyless template declaration).
func (p *Parser) parseVarOrFunDef(access ast.AccessModifier, template bool, instParams []string, annots []ast.Annotation, inline ast.InlineModifier, primitive ast.FunctionModifier) (ast.Definition, bool) {
	if p.atFunctionHeadStart() {
		name, args, resultType, headPos, ok := p.parseHead()
		if !ok {
			return nil, false
		}
		var body ast.Expression
		if p.atPunct("=") {
			p.advance()
			body, _ = p.parseExpr()
		} else if !template {
			p.errorAt(headPos, "function definition requires a body")
		}
		f := &ast.UserDefinedFunction{
			FunctionBase: ast.FunctionBase{Template: template, InstParams: instParams, Mod: primitive, InlineMod: inline, Annots: annots},
			Args:         args,
			ResultType:   resultType,
			Body:         body,
		}
		return ast.NewFunctionDefinition(headPos, name, access, f), true
	}

	if len(annots) > 0 || inline == ast.InlineInline || primitive == ast.FunctionModifierPrimitive {
		p.errorAtKind(p.peek().Pos, frontend.ConflictingModifierError, "variable definitions cannot carry annotations, inline, or primitive modifiers")
	}

	nameTok, ok := p.expectIdentLike()
	if !ok {
		return nil, false
	}

	var typeExpr ast.TypeExpression
	if p.atPunct(":") {
		p.advance()
		typeExpr, _ = p.parseTypeExpr()
	}

	if p.atPunct("=") {
		p.advance()
		value, _ := p.parseExpr()
		v := ast.UserDefinedVariable{
			VariableBase: ast.VariableBase{Template: template, InstParams: instParams},
			Type:         typeExpr,
			Value:        value,
		}
		return ast.NewVariableDefinition(nameTok.Pos, nameTok.Text, access, v), true
	}

	if !template {
		p.errorAt(nameTok.Pos, "variable definition requires a value")
	}
	v := ast.UserDefinedVariable{
		VariableBase: ast.VariableBase{Template: template, InstParams: instParams},
		Type:         typeExpr,
	}
	return ast.NewVariableDefinition(nameTok.Pos, nameTok.Text, access, v), true
}

// atFunctionHeadStart reports whether the current position begins a
// function head rather than a bare variable name: a leading operator
// token (prefix operator definition), or `name (` (call-style head), or
// `name OPERATOR` (infix operator definition with an untyped first arg).
func (p *Parser) atFunctionHeadStart() bool {
	t := p.peek()
	if isOperatorToken(t) {
		return true
	}
	if !isIdentLike(t) {
		return false
	}
	n := p.peek2()
	if n.Kind == lexer.Punct && n.Text == "(" {
		return true
	}
	return isOperatorToken(n)
}

func isOperatorToken(t lexer.Token) bool {
	return t.Kind == lexer.OperatorIdent || t.Kind == lexer.BacktickIdent
}

func isIdentLike(t lexer.Token) bool {
	return t.Kind == lexer.Ident || t.Kind == lexer.UpperIdent || t.Kind == lexer.BacktickIdent
}

func (p *Parser) expectIdentLike() (lexer.Token, bool) {
	if isIdentLike(p.peek()) {
		return p.advance(), true
	}
	p.unexpected("an identifier")
	return p.peek(), false
}

// parseHead parses the `head` production: a call-style name with
// parenthesized arguments, or an infix/prefix operator definition.
func (p *Parser) parseHead() (name string, args []ast.Argument, resultType ast.TypeExpression, headPos frontend.Position, ok bool) {
	if isOperatorToken(p.peek()) {
		opTok := p.advance()
		arg, argOK := p.parseArg()
		if !argOK {
			return "", nil, nil, opTok.Pos, false
		}
		if p.atPunct(":") {
			p.advance()
			resultType, _ = p.parseTypeExpr()
		}
		return opTok.Text, []ast.Argument{arg}, resultType, opTok.Pos, true
	}

	nameTok, identOK := p.expectIdentLike()
	if !identOK {
		return "", nil, nil, p.peek().Pos, false
	}

	if p.atPunct("(") {
		p.advance()
		var args2 []ast.Argument
		if !p.atPunct(")") {
			for {
				arg, argOK := p.parseArg()
				if argOK {
					args2 = append(args2, arg)
				}
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
		if p.atPunct(":") {
			p.advance()
			resultType, _ = p.parseTypeExpr()
		}
		return nameTok.Text, args2, resultType, nameTok.Pos, true
	}

	// Infix operator head: the name token was actually the first argument.
	firstArg := ast.Argument{Pos: nameTok.Pos, Ident: nameTok.Text}
	if isOperatorToken(p.peek()) {
		opTok := p.advance()
		secondArg, argOK := p.parseArg()
		if !argOK {
			return "", nil, nil, nameTok.Pos, false
		}
		if p.atPunct(":") {
			p.advance()
			resultType, _ = p.parseTypeExpr()
		}
		return opTok.Text, []ast.Argument{firstArg, secondArg}, resultType, nameTok.Pos, true
	}

	p.unexpected("'(' or an infix operator")
	return "", nil, nil, nameTok.Pos, false
}

// parseArg parses the `arg` production: a bare name with optional type
// annotation, or the same wrapped in parentheses.
func (p *Parser) parseArg() (ast.Argument, bool) {
	if p.atPunct("(") {
		p.advance()
		nameTok, ok := p.expectIdentLike()
		if !ok {
			return ast.Argument{}, false
		}
		var typeExpr ast.TypeExpression
		if p.atPunct(":") {
			p.advance()
			typeExpr, _ = p.parseTypeExpr()
		}
		p.expectPunct(")")
		return ast.Argument{Pos: nameTok.Pos, Ident: nameTok.Text, Type: typeExpr}, true
	}
	nameTok, ok := p.expectIdentLike()
	if !ok {
		return ast.Argument{}, false
	}
	arg := ast.Argument{Pos: nameTok.Pos, Ident: nameTok.Text}
	if p.atPunct(":") {
		p.advance()
		arg.Type, _ = p.parseTypeExpr()
	}
	return arg, true
}

func (p *Parser) parseAnnotation() (ast.Annotation, bool) {
	atPos, _ := p.expectPunct("@")
	nameTok, ok := p.expectIdentLike()
	if !ok {
		return ast.Annotation{}, false
	}
	var args []ast.Expression
	if p.atPunct("(") {
		p.advance()
		if !p.atPunct(")") {
			for {
				arg, exprOK := p.parseExpr()
				if exprOK {
					args = append(args, arg)
				}
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
	}
	return ast.Annotation{NamePos: atPos, Name: nameTok.Text, Args: args}, true
}

// parseTypeParamList parses `'(' name (',' name)* ')'`.
func (p *Parser) parseTypeParamList() []string {
	p.expectPunct("(")
	var names []string
	if !p.atPunct(")") {
		for {
			tok, ok := p.expectIdentLike()
			if ok {
				names = append(names, tok.Text)
			}
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	p.expectPunct(")")
	return names
}

// parseQualifiedPath parses `'.'? segment ('.' segment)*`. A leading '.'
// with no following segment yields the empty AbsoluteIdentifier (the root
// module, a legal `import .` target); without a leading '.' at least one
// segment is required.
func (p *Parser) parseQualifiedPath() (frontend.Identifier, bool) {
	absolute := false
	if p.atPunct(".") {
		absolute = true
		p.advance()
	}

	var segs []string
	for {
		if !isIdentLike(p.peek()) {
			break
		}
		tok := p.advance()
		segs = append(segs, tok.Text)
		if p.atPunct(".") && isIdentLike(p.peek2()) {
			p.advance()
			continue
		}
		break
	}

	if absolute {
		return frontend.AbsoluteIdent(frontend.NewAbsoluteIdentifier(segs...)), true
	}
	if len(segs) == 0 {
		return frontend.Identifier{}, false
	}
	return frontend.RelativeIdent(frontend.NewRelativeIdentifier(segs...)), true
}
