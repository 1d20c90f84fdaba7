package parser

import (
	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/lexer"
)

// precedence levels, high binds tighter: member access -> prefix -> * / %
// -> + - -> comparisons -> && -> || -> $ low. Qualified-name '.' is
// handled at the identifier-lexing level (parseQualifiedPath), not as a
// general binary operator here, since the grammar names no expression
// node for field projection; backtick operators bind at the same level
// as comparisons, a default chosen in the absence of a declared
// precedence for user-defined operator spellings.
const (
	precLowest = iota
	precPipe      // $
	precOr        // ||
	precAnd       // &&
	precCompare   // == != < > <= >=
	precAdd       // + -
	precMul       // * / %
)

func precedenceOf(tok lexer.Token) int {
	if tok.Kind == lexer.BacktickIdent {
		return precCompare
	}
	if tok.Kind != lexer.OperatorIdent {
		return precLowest
	}
	switch tok.Text {
	case "$":
		return precPipe
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", "<", ">", "<=", ">=":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	default:
		// An unrecognized operator spelling (a user-defined infix operator
		// from a function definition head) defaults to the loosest
		// arithmetic-comparison tier rather than refusing to parse.
		return precCompare
	}
}

func isInfixOperator(tok lexer.Token) bool {
	return tok.Kind == lexer.OperatorIdent || tok.Kind == lexer.BacktickIdent
}

// parseExpr parses a full expression at the lowest precedence.
func (p *Parser) parseExpr() (ast.Expression, bool) {
	switch {
	case p.atKeyword("let"):
		return p.parseLet()
	case p.atKeyword("match"):
		return p.parseMatch()
	case p.atKeyword("if"):
		return p.parseIf()
	default:
		return p.parseBinary(precLowest + 1)
	}
}

// parseBinary implements precedence climbing: parse a prefix/primary term,
// then repeatedly fold in infix operators whose precedence is >= minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, bool) {
	lhs, ok := p.parsePrefix()
	if !ok {
		return nil, false
	}
	for {
		tok := p.peek()
		if !isInfixOperator(tok) {
			break
		}
		prec := precedenceOf(tok)
		if prec < minPrec {
			break
		}
		p.advance()
		rhs, rhsOK := p.parseBinary(prec + 1)
		if !rhsOK {
			return lhs, false
		}
		lhs = p.buildBinary(tok, lhs, rhs)
	}
	return lhs, true
}

// buildBinary either constant-folds a `literal +/- literal` pair of
// matching kind into a single Literal, or builds a NonUniqueApplication
// of the operator's surface spelling as a variable.
func (p *Parser) buildBinary(opTok lexer.Token, lhs, rhs ast.Expression) ast.Expression {
	if opTok.Kind == lexer.OperatorIdent && (opTok.Text == "+" || opTok.Text == "-") {
		if folded, ok := foldLiteralBinary(opTok.Text, lhs, rhs); ok {
			return folded
		}
	}
	fun := ast.NewVariableExpression(opTok.Pos, frontend.RelativeIdent(frontend.NewRelativeIdentifier(opTok.Text)))
	return ast.NewNonUniqueApplication(lhs.Pos(), ast.FunctionModifierNone, fun, []ast.Expression{lhs, rhs})
}

func foldLiteralBinary(op string, lhs, rhs ast.Expression) (ast.Expression, bool) {
	lhsLit, ok := lhs.(*ast.Literal)
	if !ok {
		return nil, false
	}
	rhsLit, ok := rhs.(*ast.Literal)
	if !ok {
		return nil, false
	}
	switch lv := lhsLit.Value.(type) {
	case ast.IntValue:
		rv, ok := rhsLit.Value.(ast.IntValue)
		if !ok || rv.IntKind != lv.IntKind {
			return nil, false
		}
		var v int64
		if op == "+" {
			v = lv.Value + rv.Value
		} else {
			v = lv.Value - rv.Value
		}
		return ast.NewLiteral(lhsLit.Pos(), ast.IntValue{IntKind: lv.IntKind, Value: v}), true
	case ast.FloatValue:
		rv, ok := rhsLit.Value.(ast.FloatValue)
		if !ok || rv.FloatKind != lv.FloatKind {
			return nil, false
		}
		var v float64
		if op == "+" {
			v = lv.Value + rv.Value
		} else {
			v = lv.Value - rv.Value
		}
		return ast.NewLiteral(lhsLit.Pos(), ast.FloatValue{FloatKind: lv.FloatKind, Value: v}), true
	default:
		return nil, false
	}
}

// parsePrefix handles a leading unary '-', folding it directly into an
// immediately-following literal and falling back to a `unary_-`
// application for any other operand shape.
func (p *Parser) parsePrefix() (ast.Expression, bool) {
	if p.atOperator("-") {
		opPos := p.peek().Pos
		p.advance()
		operand, ok := p.parsePrefix()
		if !ok {
			return nil, false
		}
		if lit, isLit := operand.(*ast.Literal); isLit {
			if negated, negOK := negateLiteral(lit.Value); negOK {
				return ast.NewLiteral(opPos, negated), true
			}
		}
		fun := ast.NewVariableExpression(opPos, frontend.RelativeIdent(frontend.NewRelativeIdentifier("unary_-")))
		return ast.NewNonUniqueApplication(opPos, ast.FunctionModifierNone, fun, []ast.Expression{operand}), true
	}
	return p.parsePostfix()
}

func negateLiteral(v ast.LiteralValue) (ast.LiteralValue, bool) {
	switch lv := v.(type) {
	case ast.IntValue:
		return ast.IntValue{IntKind: lv.IntKind, Value: -lv.Value}, true
	case ast.FloatValue:
		return ast.FloatValue{FloatKind: lv.FloatKind, Value: -lv.Value}, true
	default:
		return nil, false
	}
}

// parsePostfix parses a primary expression followed by zero or more call
// applications `expr(args)`.
func (p *Parser) parsePostfix() (ast.Expression, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.atPunct("(") {
		pos := expr.Pos()
		p.advance()
		var args []ast.Expression
		if !p.atPunct(")") {
			for {
				arg, argOK := p.parseExpr()
				if argOK {
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
		expr = ast.NewNonUniqueApplication(pos, ast.FunctionModifierNone, expr, args)
	}
	return expr, true
}

// parsePrimary parses a literal, variable reference, constructor
// application, lambda, or parenthesized expression.
func (p *Parser) parsePrimary() (ast.Expression, bool) {
	t := p.peek()
	switch {
	case t.Kind == lexer.IntLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.IntValue{IntKind: t.IntKind, Value: t.IntVal}), true
	case t.Kind == lexer.FloatLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.FloatValue{FloatKind: t.FloatKind, Value: t.FloatVal}), true
	case t.Kind == lexer.CharLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.CharValue{Value: t.CharVal}), true
	case t.Kind == lexer.WCharLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.WideCharValue{Value: t.WCharVal}), true
	case t.Kind == lexer.StringLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.StringValue{Value: t.StrVal}), true
	case t.Kind == lexer.WStringLit:
		p.advance()
		return ast.NewLiteral(t.Pos, ast.WideStringValue{Value: t.WStrVal}), true
	case t.Kind == lexer.Keyword && t.Text == "true":
		p.advance()
		return ast.NewLiteral(t.Pos, ast.BoolValue{Value: true}), true
	case t.Kind == lexer.Keyword && t.Text == "false":
		p.advance()
		return ast.NewLiteral(t.Pos, ast.BoolValue{Value: false}), true
	case t.Kind == lexer.Keyword && t.Text == "nil":
		p.advance()
		return ast.NewLiteral(t.Pos, ast.NilValue{}), true
	case t.Kind == lexer.Keyword && isInfinityOrNaNKeyword(t.Text):
		p.advance()
		v, _ := lexer.InfinityOrNaN(t.Text)
		return ast.NewLiteral(t.Pos, v), true
	case p.atPunct("("):
		return p.parseParenOrTupleExpr()
	case isIdentLike(t):
		return p.parseIdentOrConstructorExpr()
	default:
		p.unexpected("an expression")
		return nil, false
	}
}

func isInfinityOrNaNKeyword(text string) bool {
	switch text {
	case "inff", "infd", "inf", "nanf", "nand", "nan":
		return true
	default:
		return false
	}
}

// parseParenOrTupleExpr parses `'(' expr ')'`, a tuple `(e1, e2, ...)`
// (a ConstructorValue named "tuple"), `()` (the nil literal), or the
// zero-argument lambda `() -> body`. A non-empty parenthesized list
// followed by `->` is not parsed as a lambda parameter list.
func (p *Parser) parseParenOrTupleExpr() (ast.Expression, bool) {
	pos := p.peek().Pos
	p.advance()
	if p.atPunct(")") {
		p.advance()
		if p.atOperator("->") {
			p.advance()
			body, _ := p.parseExpr()
			return ast.NewLambda(pos, nil, body), true
		}
		return ast.NewLiteral(pos, ast.NilValue{}), true
	}
	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if p.atPunct(")") {
		p.advance()
		return first, true
	}
	if p.atPunct(",") {
		exprs := []ast.Expression{first}
		for p.atPunct(",") {
			p.advance()
			next, nextOK := p.parseExpr()
			if nextOK {
				exprs = append(exprs, next)
			}
		}
		p.expectPunct(")")
		return ast.NewConstructorValue(pos, frontend.RelativeIdent(frontend.NewRelativeIdentifier("tuple")), exprs), true
	}
	p.expectPunct(")")
	return first, true
}

// parseIdentOrConstructorExpr parses a qualified variable/constructor
// reference, or a single-argument lambda `ident -> body`. A comma-separated
// name list before '->' is not parsed as a lambda.
func (p *Parser) parseIdentOrConstructorExpr() (ast.Expression, bool) {
	pos := p.peek().Pos
	ident, ok := p.parseQualifiedPath()
	if !ok {
		return nil, false
	}
	if p.atOperator("->") {
		p.advance()
		body, _ := p.parseExpr()
		arg := ast.Argument{Pos: pos, Ident: lastSegment(ident)}
		return ast.NewLambda(pos, []ast.Argument{arg}, body), true
	}
	segs := ident.Segments()
	if len(segs) > 0 && isUpperName(segs[len(segs)-1]) {
		return ast.NewConstructorValue(pos, ident, nil), true
	}
	return ast.NewVariableExpression(pos, ident), true
}

func lastSegment(id frontend.Identifier) string {
	segs := id.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func isUpperName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// parseLet parses `'let' binding (';' binding)* 'in' expr`.
func (p *Parser) parseLet() (ast.Expression, bool) {
	pos, _ := p.expectKeyword("let")
	var bindings []ast.LetBinding
	for {
		b, ok := p.parseLetBinding()
		if ok {
			bindings = append(bindings, b)
		}
		if p.atPunct(";") {
			p.advance()
			p.skipStatementSeparators()
			continue
		}
		if p.peek().Kind == lexer.Newline {
			p.skipStatementSeparators()
			if p.atKeyword("in") {
				break
			}
			continue
		}
		break
	}
	if _, ok := p.expectKeyword("in"); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return ast.NewLet(pos, bindings, body), true
}

func (p *Parser) parseLetBinding() (ast.LetBinding, bool) {
	nameTok, ok := p.expectIdentLike()
	if !ok {
		return ast.LetBinding{}, false
	}
	var typeExpr ast.TypeExpression
	if p.atPunct(":") {
		p.advance()
		typeExpr, _ = p.parseTypeExpr()
	}
	if _, ok := p.expectPunct("="); !ok {
		return ast.LetBinding{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.LetBinding{}, false
	}
	return ast.LetBinding{Pos: nameTok.Pos, Name: nameTok.Text, Type: typeExpr, Value: value}, true
}

// parseMatch parses `'match' expr 'with' case ('|' case)*`.
func (p *Parser) parseMatch() (ast.Expression, bool) {
	pos, _ := p.expectKeyword("match")
	scrutinee, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectKeyword("with"); !ok {
		return nil, false
	}
	p.skipStatementSeparators()
	if p.atOperator("|") {
		p.advance()
	}
	var cases []ast.MatchCase
	for {
		c, caseOK := p.parseMatchCase()
		if caseOK {
			cases = append(cases, c)
		}
		p.skipStatementSeparators()
		if p.atOperator("|") {
			p.advance()
			continue
		}
		break
	}
	return ast.NewMatch(pos, scrutinee, cases), true
}

func (p *Parser) parseMatchCase() (ast.MatchCase, bool) {
	pattern, ok := p.parsePattern()
	if !ok {
		return ast.MatchCase{}, false
	}
	if p.atOperator("->") {
		p.advance()
	} else {
		p.expectPunct("=")
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.MatchCase{}, false
	}
	return ast.MatchCase{Pattern: pattern, Body: body}, true
}

// parsePattern parses a match-arm pattern: a literal, a wildcard `_`, a
// constructor applied to sub-patterns, or a bare variable binding.
func (p *Parser) parsePattern() (ast.Pattern, bool) {
	t := p.peek()
	switch {
	case t.Kind == lexer.Ident && t.Text == "_":
		p.advance()
		return ast.NewWildcardPattern(t.Pos), true
	case t.Kind == lexer.IntLit:
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.IntValue{IntKind: t.IntKind, Value: t.IntVal}), true
	case t.Kind == lexer.FloatLit:
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.FloatValue{FloatKind: t.FloatKind, Value: t.FloatVal}), true
	case t.Kind == lexer.CharLit:
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.CharValue{Value: t.CharVal}), true
	case t.Kind == lexer.StringLit:
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.StringValue{Value: t.StrVal}), true
	case t.Kind == lexer.Keyword && t.Text == "true":
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.BoolValue{Value: true}), true
	case t.Kind == lexer.Keyword && t.Text == "false":
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.BoolValue{Value: false}), true
	case t.Kind == lexer.Keyword && t.Text == "nil":
		p.advance()
		return ast.NewLiteralPattern(t.Pos, ast.NilValue{}), true
	case isIdentLike(t):
		pos := t.Pos
		ident, ok := p.parseQualifiedPath()
		if !ok {
			return nil, false
		}
		segs := ident.Segments()
		isConstructor := len(segs) > 0 && isUpperName(segs[len(segs)-1])
		if !isConstructor {
			return ast.NewVariablePattern(pos, segs[len(segs)-1]), true
		}
		var sub []ast.Pattern
		if p.atPunct("(") {
			p.advance()
			if !p.atPunct(")") {
				for {
					sp, spOK := p.parsePattern()
					if spOK {
						sub = append(sub, sp)
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
		return ast.NewConstructorPattern(pos, ident, sub), true
	default:
		p.unexpected("a pattern")
		return nil, false
	}
}

// parseIf parses `'if' expr 'then' expr 'else' expr`.
func (p *Parser) parseIf() (ast.Expression, bool) {
	pos, _ := p.expectKeyword("if")
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectKeyword("then"); !ok {
		return nil, false
	}
	thenExpr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectKeyword("else"); !ok {
		return nil, false
	}
	elseExpr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return ast.NewIf(pos, cond, thenExpr, elseExpr), true
}
