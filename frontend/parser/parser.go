// Package parser builds an ast.Tree from one or more source units by
// recursive descent, collecting every error into a frontend.ErrorList
// instead of aborting. It never panics on malformed input: a parse failure
// is recorded and parsing resynchronizes at the next safe point.
package parser

import (
	"fmt"

	"github.com/xrash/smetrics"

	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
	"github.com/emberlang/emberc/frontend/lexer"
)

// SourceUnit pairs a frontend.Source handle with the text to lex. The
// lexer package only turns text into tokens for one source at a time, so
// the multi-source Parse entry point needs both.
type SourceUnit struct {
	Source frontend.Source
	Text   string
}

// Parse lexes and parses every unit in order, appending one ast.DefinitionList
// per unit to tree in order, and returns true iff errors stayed empty.
// Every unit is always drained, even after earlier units produced errors.
func Parse(units []SourceUnit, tree *ast.Tree, errors *frontend.ErrorList) bool {
	for _, u := range units {
		defs := parseOne(u, errors)
		tree.Append(defs)
	}
	return errors.Empty()
}

func parseOne(u SourceUnit, errors *frontend.ErrorList) ast.DefinitionList {
	lx, err := lexer.New(u.Source, u.Text, lexer.Options{}, errors)
	if err != nil {
		errors.Add(frontend.NewPosition(u.Source, 1, 1), frontend.SyntaxError, fmt.Sprintf("cannot read source: %s", err))
		return nil
	}
	p := &Parser{lex: lx, errors: errors, source: u.Source}
	return p.parseProgram(false)
}

// Parser holds the mutable state of one recursive-descent pass: a
// two-token lookahead buffer over the Lexer, and the bracket-nesting depth
// that governs whether Newline tokens are statement separators or purely
// layout noise to be discarded.
type Parser struct {
	lex    *lexer.Lexer
	errors *frontend.ErrorList
	source frontend.Source

	buf    [2]lexer.Token
	bufLen int
	depth  int

	lastSignificant lexer.Token
}

// fetchRaw pulls the next token straight from the lexer, dropping Newline
// tokens while inside brackets (the lexer always emits them; the parser
// is the layer that knows about bracket depth) and also dropping a Newline
// that immediately follows a line-continuing token (a binary operator, '=',
// ',', a bracket opener, ':', or a keyword that demands a following
// expression) so a physical line break there isn't read as a statement end.
func (p *Parser) fetchRaw() lexer.Token {
	for {
		t := p.lex.Next()
		if t.Kind == lexer.Newline {
			if p.depth > 0 || p.lastSignificant.IsLineContinuing() {
				continue
			}
			return t
		}
		p.lastSignificant = t
		return t
	}
}

func (p *Parser) fill(n int) {
	for p.bufLen < n {
		p.buf[p.bufLen] = p.fetchRaw()
		p.bufLen++
	}
}

// peek returns the current lookahead token without consuming it.
func (p *Parser) peek() lexer.Token {
	p.fill(1)
	return p.buf[0]
}

// peek2 returns the token after the current lookahead.
func (p *Parser) peek2() lexer.Token {
	p.fill(2)
	return p.buf[1]
}

// advance consumes and returns the current lookahead token, updating
// bracket depth as brackets are crossed.
func (p *Parser) advance() lexer.Token {
	p.fill(1)
	t := p.buf[0]
	p.buf[0] = p.buf[1]
	p.bufLen--
	if t.OpensBracket() {
		p.depth++
	} else if t.ClosesBracket() {
		if p.depth > 0 {
			p.depth--
		}
	}
	return t
}

func (p *Parser) errorAt(pos frontend.Position, format string, args ...any) {
	p.errors.Add(pos, frontend.SyntaxError, fmt.Sprintf(format, args...))
}

// errorAtKind is errorAt with an explicit ErrorKind, for diagnostics that
// merit their own cause rather than the generic SyntaxError.
func (p *Parser) errorAtKind(pos frontend.Position, kind frontend.ErrorKind, format string, args ...any) {
	p.errors.Add(pos, kind, fmt.Sprintf(format, args...))
}

// unexpected reports an "unexpected token" error at the current lookahead,
// suggesting the closest keyword spelling when the token looks like a
// near-miss on a reserved word (e.g. "improt" -> "import").
func (p *Parser) unexpected(want string) {
	t := p.peek()
	msg := fmt.Sprintf("unexpected %s %q, expected %s", t.Kind, t.Text, want)
	if t.Kind == lexer.Ident {
		if suggestion, ok := suggestKeyword(t.Text); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
	}
	p.errorAt(t.Pos, "%s", msg)
}

// suggestKeyword finds the closest reserved word to text by Jaro-Winkler
// distance, for "did you mean" hints on near-miss misspellings.
func suggestKeyword(text string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, kw := range lexer.Keywords {
		score := smetrics.JaroWinkler(text, kw, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = kw
		}
	}
	if bestScore >= 0.85 {
		return best, true
	}
	return "", false
}

func (p *Parser) atPunct(text string) bool {
	t := p.peek()
	return t.Kind == lexer.Punct && t.Text == text
}

func (p *Parser) atKeyword(text string) bool {
	t := p.peek()
	return t.Kind == lexer.Keyword && t.Text == text
}

// expectPunct consumes the current token if it matches, else records a
// syntax error and leaves the stream positioned for recovery.
func (p *Parser) expectPunct(text string) (frontend.Position, bool) {
	if p.atPunct(text) {
		t := p.advance()
		return t.Pos, true
	}
	p.unexpected(fmt.Sprintf("%q", text))
	return p.peek().Pos, false
}

func (p *Parser) expectKeyword(text string) (frontend.Position, bool) {
	if p.atKeyword(text) {
		t := p.advance()
		return t.Pos, true
	}
	p.unexpected(fmt.Sprintf("keyword %q", text))
	return p.peek().Pos, false
}

// skipStatementSeparators consumes any run of ';' and/or Newline tokens
// between definitions.
func (p *Parser) skipStatementSeparators() {
	for {
		t := p.peek()
		if t.Kind == lexer.Newline || (t.Kind == lexer.Punct && t.Text == ";") {
			p.advance()
			continue
		}
		return
	}
}

// atStatementEnd reports whether the current token legally ends a
// definition: ';', Newline, '}', or EOF.
func (p *Parser) atStatementEnd() bool {
	t := p.peek()
	if t.Kind == lexer.EOF || t.Kind == lexer.Newline {
		return true
	}
	if t.Kind == lexer.Punct && (t.Text == ";" || t.Text == "}") {
		return true
	}
	return false
}

// parseProgram parses `{ definition (';' | NEWLINE) } EOF`, or, when
// inModule is true, stops at a closing '}' instead of EOF (a nested
// `module p { ... }` body).
func (p *Parser) parseProgram(inModule bool) ast.DefinitionList {
	var defs ast.DefinitionList
	p.skipStatementSeparators()
	for {
		t := p.peek()
		if t.Kind == lexer.EOF {
			return defs
		}
		if inModule && t.Kind == lexer.Punct && t.Text == "}" {
			return defs
		}
		def, ok := p.parseDefinition()
		if ok && def != nil {
			defs = append(defs, def)
		}
		if !ok {
			p.recoverToNextDefinition()
		}
		p.skipStatementSeparators()
	}
}

// parseDefinition dispatches on the current token to one of the
// definition productions.
func (p *Parser) parseDefinition() (ast.Definition, bool) {
	switch {
	case p.atKeyword("import"):
		return p.parseImport()
	case p.atKeyword("module"):
		return p.parseModuleDef()
	case p.atKeyword("instance"):
		return p.parseInstanceDef()
	case p.atKeyword("datatype"), p.atKeyword("unique"), p.atKeyword("type"):
		return p.parseTypeDef(nil, ast.AccessNone, false, nil)
	default:
		return p.parseModifiedDefinition()
	}
}
