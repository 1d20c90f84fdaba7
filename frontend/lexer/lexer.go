package lexer

import (
	"fmt"
	"strings"

	stateful "github.com/alecthomas/participle/v2/lexer"

	"github.com/emberlang/emberc/frontend"
)

var _ stateful.Definition = rawLexer

// Options tunes lexing behaviour. The zero value is the default: one
// column per rune, including tabs.
type Options struct {
	// TabWidth is how many columns a '\t' advances. 0 means 1. Only
	// meaningful if the caller post-processes positions; the underlying
	// stateful lexer itself counts one column per rune.
	TabWidth int
}

// Lexer produces a finite, forward-only token stream for one Source. It
// does not buffer lookahead itself — the parser keeps its own lookahead
// buffer on top of Next.
type Lexer struct {
	source  frontend.Source
	inner   stateful.Lexer
	opts    Options
	errors  *frontend.ErrorList
	depth   int // nested block-comment depth, tracked for unterminated-comment detection
}

// New builds a Lexer over src's text.
func New(source frontend.Source, text string, opts Options, errors *frontend.ErrorList) (*Lexer, error) {
	inner, err := rawLexer.Lex(source.Name(), strings.NewReader(normalizeNewlines(text)))
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return &Lexer{source: source, inner: inner, opts: opts, errors: errors}, nil
}

// normalizeNewlines turns "\r\n" and lone "\r" into "\n" before scanning, so
// the stateful lexer's Newline rule and every downstream line/column count
// only has to reason about "\n". The lone "\r" rule still matches raw
// input for robustness, but this keeps position math simple for the common
// CRLF/CR cases.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

func (l *Lexer) pos(p stateful.Position) frontend.Position {
	return frontend.NewPosition(l.source, uint32(p.Line), uint32(p.Column))
}

// Next returns the next Token. At end of input it returns a Kind == EOF
// token forever after. Lexical errors (unterminated literal, bad escape,
// bad suffix) are appended to the error list and lexing resynchronizes at
// the next token rather than aborting. An unterminated block comment is not
// appended to the error list; UnterminatedComment reports it after EOF.
func (l *Lexer) Next() Token {
	for {
		raw, err := l.inner.Next()
		if err != nil {
			// The underlying scanner found no rule match at this byte: an
			// invalid/unexpected character. The error is recorded and no
			// token is returned for the bad input; the loop asks the scanner
			// for its next token, relying on participle to have advanced
			// past the bad byte internally before the next Next() call.
			l.errors.Add(l.pos(raw.Pos), frontend.LexicalError, err.Error())
			continue
		}
		name := symbolName(raw.Type)
		switch name {
		case "EOF":
			return Token{Kind: EOF, Pos: l.pos(raw.Pos)}
		case "Whitespace", "LineComment":
			continue
		case "CommentOpen", "CommentOpenNested":
			l.depth++
			continue
		case "CommentClose":
			if l.depth > 0 {
				l.depth--
			}
			continue
		case "CommentText", "CommentStray":
			continue
		case "Newline":
			return Token{Kind: Newline, Text: "\n", Pos: l.pos(raw.Pos)}
		case "WStringLit":
			return l.decodeWString(raw)
		case "WCharLit":
			return l.decodeWChar(raw)
		case "StringLit":
			return l.decodeString(raw)
		case "CharLit":
			return l.decodeChar(raw)
		case "BacktickIdent1", "BacktickIdent2":
			return l.decodeBacktick(raw, name)
		case "NumberLit":
			return l.decodeNumber(raw)
		case "Keyword":
			return Token{Kind: Keyword, Text: raw.Value, Pos: l.pos(raw.Pos)}
		case "UpperIdent":
			return Token{Kind: UpperIdent, Text: raw.Value, Pos: l.pos(raw.Pos)}
		case "Ident":
			return Token{Kind: Ident, Text: raw.Value, Pos: l.pos(raw.Pos)}
		case "OperatorIdent":
			if raw.Value == "=" {
				return Token{Kind: Punct, Text: "=", Pos: l.pos(raw.Pos)}
			}
			return Token{Kind: OperatorIdent, Text: raw.Value, Pos: l.pos(raw.Pos)}
		case "Punct":
			return Token{Kind: Punct, Text: raw.Value, Pos: l.pos(raw.Pos)}
		default:
			l.errors.Add(l.pos(raw.Pos), frontend.LexicalError, fmt.Sprintf("unrecognized token %q", raw.Value))
			continue
		}
	}
}

// UnterminatedComment reports whether the input ended while still inside a
// nested block comment.
func (l *Lexer) UnterminatedComment() bool {
	return l.depth > 0
}

func (l *Lexer) decodeBacktick(raw stateful.Token, ruleName string) Token {
	text := raw.Value
	var inner string
	if ruleName == "BacktickIdent2" {
		inner = strings.TrimSuffix(strings.TrimPrefix(text, "``"), "``")
	} else {
		inner = strings.TrimSuffix(strings.TrimPrefix(text, "`"), "`")
	}
	return Token{Kind: BacktickIdent, Text: inner, Pos: l.pos(raw.Pos)}
}
