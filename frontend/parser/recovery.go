package parser

import "github.com/emberlang/emberc/frontend/lexer"

// recoverToNextDefinition synchronizes after a parse error: skip tokens
// until the next ';' or newline at bracket depth 0, a closing '}', EOF,
// or a token that starts a new top-level definition.
func (p *Parser) recoverToNextDefinition() {
	// An error inside an unclosed bracket (e.g. a missing ')') would
	// otherwise leave p.depth permanently positive, suppressing every
	// subsequent Newline and making resynchronization impossible before
	// EOF. The definition being abandoned owns any bracket nesting it
	// opened, so recovery starts fresh at depth 0.
	p.depth = 0
	for {
		t := p.peek()
		if t.Kind == lexer.EOF {
			return
		}
		if p.depth == 0 && (t.Kind == lexer.Newline || (t.Kind == lexer.Punct && t.Text == ";")) {
			return
		}
		if t.Kind == lexer.Punct && t.Text == "}" {
			return
		}
		if p.depth == 0 && startsDefinition(t) {
			return
		}
		p.advance()
	}
}

// startsDefinition reports whether t could begin a new top-level (or
// module-scoped) definition: a modifier/definition keyword, an
// annotation's leading '@', or an Ident/UpperIdent sitting at column 1.
func startsDefinition(t lexer.Token) bool {
	if t.Kind == lexer.Keyword {
		switch t.Text {
		case "private", "template", "instance", "module", "import",
			"datatype", "unique", "type", "extern", "native":
			return true
		}
		return false
	}
	if t.Kind == lexer.Punct && t.Text == "@" {
		return true
	}
	if (t.Kind == lexer.Ident || t.Kind == lexer.UpperIdent) && t.Pos.Column == 1 {
		return true
	}
	return false
}
