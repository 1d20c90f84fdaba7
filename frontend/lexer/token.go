// Package lexer turns a frontend.Source into a finite, forward-only token
// stream. The raw scan is delegated to a stateful regex lexer built on
// github.com/alecthomas/participle/v2/lexer (nested block comments become a
// Push/Pop state machine instead of a hand-rolled counter); literal text is
// then decoded into typed values by hand, since the literal grammar needs
// to be bit-exact.
package lexer

import (
	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
)

// Kind identifies the syntactic category of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	UpperIdent
	OperatorIdent
	BacktickIdent
	IntLit
	FloatLit
	CharLit
	WCharLit
	StringLit
	WStringLit
	Punct
	Keyword
	Newline
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case UpperIdent:
		return "upper identifier"
	case OperatorIdent:
		return "operator"
	case BacktickIdent:
		return "quoted identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case CharLit:
		return "character literal"
	case WCharLit:
		return "wide character literal"
	case StringLit:
		return "string literal"
	case WStringLit:
		return "wide string literal"
	case Punct:
		return "punctuation"
	case Keyword:
		return "keyword"
	case Newline:
		return "newline"
	default:
		return "token"
	}
}

// Keywords is the full reserved-word set, used by the parser's "did you
// mean" suggestions. The lexer recognizes keywords through its own Keyword
// regex rule (stateful.go), which lists the same words.
var Keywords = []string{
	"module", "import", "template", "instance", "private", "inline",
	"primitive", "extern", "native", "unique", "datatype", "type",
	"if", "then", "else", "let", "in", "match", "with",
	"true", "false", "nil",
	"inff", "infd", "inf", "nanf", "nand", "nan", "w",
}

var keywordSet = func() map[string]bool {
	m := make(map[string]bool, len(Keywords))
	for _, k := range Keywords {
		m[k] = true
	}
	return m
}()

// Token is one lexeme: its Kind, raw Text, Position, and — for literal kinds
// — its decoded value.
type Token struct {
	Kind Kind
	Text string
	Pos  frontend.Position

	IntKind   ast.IntKind
	IntVal    int64
	FloatKind ast.FloatKind
	FloatVal  float64
	CharVal   byte
	WCharVal  rune
	StrVal    []byte
	WStrVal   []rune
}

// IsLineContinuing reports whether this token syntactically requires an
// expression to follow, so a physical newline right after it is not a
// logical statement separator.
func (t Token) IsLineContinuing() bool {
	switch t.Kind {
	case OperatorIdent:
		return true
	case Punct:
		switch t.Text {
		case "=", ",", "(", "[", "{", ":":
			return true
		}
		return false
	case Keyword:
		switch t.Text {
		case "if", "then", "else", "let", "in", "match", "with",
			"import", "module", "template", "instance", "private",
			"inline", "primitive", "extern", "native", "unique",
			"datatype", "type":
			return true
		}
		return false
	default:
		return false
	}
}

// OpensBracket/ClosesBracket let the parser (not the lexer) track bracket
// depth: the lexer always emits Newline tokens; the parser discards them
// while depth > 0.
func (t Token) OpensBracket() bool {
	return t.Kind == Punct && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

func (t Token) ClosesBracket() bool {
	return t.Kind == Punct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}
