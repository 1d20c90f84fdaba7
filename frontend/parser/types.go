package parser

import (
	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/lexer"
)

// parseTypeDef parses a type/datatype definition body after its shared
// modifier prefix has already been consumed: `['unique'] ('datatype' |
// 'type') name ['(' params ')'] '=' body`. ownParams is nil unless the
// type itself is parameterized (distinct from template's instParams,
// which govern specialization rather than the type's own arity).
func (p *Parser) parseTypeDef(templateInstParams []string, access ast.AccessModifier, template bool, _ []ast.Annotation) (ast.Definition, bool) {
	unique := false
	isDatatype := false
	switch {
	case p.atKeyword("unique"):
		p.advance()
		unique = true
		if _, ok := p.expectKeyword("datatype"); !ok {
			return nil, false
		}
		isDatatype = true
	case p.atKeyword("datatype"):
		p.advance()
		isDatatype = true
	case p.atKeyword("type"):
		p.advance()
	default:
		p.unexpected("'type' or 'datatype'")
		return nil, false
	}

	nameTok, ok := p.expectIdentLike()
	if !ok {
		return nil, false
	}

	var ownParams []string
	hasOwnParams := false
	if p.atPunct("(") {
		ownParams = p.parseTypeParamList()
		hasOwnParams = true
	}

	if !p.atPunct("=") {
		if !template {
			p.errorAt(nameTok.Pos, "type definition requires a body")
		}
		if hasOwnParams {
			tf := ast.TypeSynonymFunction{Args: ownParams}
			return ast.NewTypeFunctionDefinition(nameTok.Pos, nameTok.Text, access, tf), true
		}
		return ast.NewTypeVariableDefinition(nameTok.Pos, nameTok.Text, access, ast.TypeSynonymVariable{}), true
	}
	p.advance() // '='

	if isDatatype {
		constrs := p.parseDatatypeBody()
		var dt ast.Datatype
		if unique {
			dt = ast.UniqueDatatype{Constrs: constrs}
		} else {
			dt = ast.NonUniqueDatatype{Constrs: constrs}
		}
		if hasOwnParams {
			tf := ast.DatatypeFunction{Args: ownParams, Datatype: dt}
			return ast.NewTypeFunctionDefinition(nameTok.Pos, nameTok.Text, access, tf), true
		}
		return ast.NewTypeVariableDefinition(nameTok.Pos, nameTok.Text, access, ast.DatatypeVariable{Datatype: dt}), true
	}

	body, _ := p.parseTypeExpr()
	if hasOwnParams {
		tf := ast.TypeSynonymFunction{Args: ownParams, Body: body}
		return ast.NewTypeFunctionDefinition(nameTok.Pos, nameTok.Text, access, tf), true
	}
	return ast.NewTypeVariableDefinition(nameTok.Pos, nameTok.Text, access, ast.TypeSynonymVariable{Expr: body}), true
}

// parseDatatypeBody parses a `|`-separated list of constructors.
func (p *Parser) parseDatatypeBody() []*ast.Constructor {
	var constrs []*ast.Constructor
	for {
		c, ok := p.parseConstructor()
		if ok {
			constrs = append(constrs, c)
		}
		if p.atOperator("|") {
			p.advance()
			continue
		}
		break
	}
	return constrs
}

// parseConstructor parses `[access] [inline] [annot*] name
// ('(' type_expr (',' type_expr)* ')' | '{' (name ':' type_expr (','
// name ':' type_expr)* '}')?`.
func (p *Parser) parseConstructor() (*ast.Constructor, bool) {
	access := ast.AccessNone
	if p.atKeyword("private") {
		p.advance()
		access = ast.AccessPrivate
	}
	inline := ast.InlineNone
	if p.atKeyword("inline") {
		p.advance()
		inline = ast.InlineInline
	}
	var annots []ast.Annotation
	for p.atPunct("@") {
		a, ok := p.parseAnnotation()
		if ok {
			annots = append(annots, a)
		}
	}

	nameTok, ok := p.expectIdentLike()
	if !ok {
		return nil, false
	}

	c := &ast.Constructor{Pos: nameTok.Pos, Ident: nameTok.Text, Access: access, Inline: inline, Annotations: annots}

	switch {
	case p.atPunct("("):
		p.advance()
		if !p.atPunct(")") {
			for {
				t, texprOK := p.parseTypeExpr()
				if texprOK {
					c.FieldTypes = append(c.FieldTypes, t)
				}
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
		c.Kind = ast.UnnamedFieldConstructorKind
	case p.atPunct("{"):
		p.advance()
		if !p.atPunct("}") {
			for {
				fieldName, fieldOK := p.expectIdentLike()
				if !fieldOK {
					break
				}
				p.expectPunct(":")
				t, _ := p.parseTypeExpr()
				c.NamedFields = append(c.NamedFields, ast.NamedConstructorField{Name: fieldName.Text, Type: t})
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct("}")
		c.Kind = ast.NamedFieldConstructorKind
	default:
		c.Kind = ast.UnnamedFieldConstructorKind
	}

	return c, true
}

// parseTypeExpr parses the type-expression grammar: a variable/parameter
// reference, optionally applied to arguments, or a parenthesized function
// or tuple type.
//
//	type_expr      = qualified_path ['(' type_expr (',' type_expr)* ')']
//	               | '(' type_expr_list ')' ['->' type_expr]
func (p *Parser) parseTypeExpr() (ast.TypeExpression, bool) {
	if p.atPunct("(") {
		pos := p.peek().Pos
		p.advance()
		var elems []ast.TypeExpression
		if !p.atPunct(")") {
			for {
				t, ok := p.parseTypeExpr()
				if ok {
					elems = append(elems, t)
				}
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
		if p.atOperator("->") {
			p.advance()
			result, _ := p.parseTypeExpr()
			return ast.NewFunctionTypeExpression(pos, elems, result), true
		}
		if len(elems) == 1 {
			return elems[0], true
		}
		return ast.NewTupleTypeExpression(pos, elems), true
	}

	if !isIdentLike(p.peek()) {
		p.unexpected("a type")
		return nil, false
	}

	pos := p.peek().Pos
	ident, ok := p.parseQualifiedPath()
	if !ok {
		return nil, false
	}

	if len(ident.Segments()) == 1 && !ident.IsAbsolute() && isLowerTypeParam(ident.Segments()[0]) && !p.atPunct("(") {
		return ast.NewTypeParameterExpression(pos, ident.Segments()[0]), true
	}

	if p.atPunct("(") {
		p.advance()
		var args []ast.TypeExpression
		if !p.atPunct(")") {
			for {
				t, targOK := p.parseTypeExpr()
				if targOK {
					args = append(args, t)
				}
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
		return ast.NewTypeApplication(pos, ident, args), true
	}

	return ast.NewTypeVariableExpression(pos, ident), true
}

// isLowerTypeParam distinguishes a bare lowercase name (a template type
// parameter reference, e.g. `t` in `template(t) id(x: t): t = x`) from a
// reference to a named type, which is conventionally UpperIdent. This
// convention-based split is a deliberate simplification: the grammar alone
// doesn't disambiguate a single-segment lowercase identifier used as a type.
func isLowerTypeParam(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'a' && c <= 'z' || c == '_'
}

func (p *Parser) atOperator(text string) bool {
	t := p.peek()
	return t.Kind == lexer.OperatorIdent && t.Text == text
}
