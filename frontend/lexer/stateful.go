package lexer

import (
	stateful "github.com/alecthomas/participle/v2/lexer"
)

// rawLexer is the participle stateful regex lexer used for the raw token
// scan. Nested block comments are a Push/Pop state rather than a hand-rolled
// depth counter: entering "/*" pushes the Comment state (again, for
// nesting), leaving "*/" pops one level, so `/* /* */ */` naturally
// balances.
var rawLexer = stateful.MustStateful(stateful.Rules{
	"Root": {
		{"CommentOpen", `/\*`, stateful.Push("Comment")},
		{"LineComment", `//[^\n]*`, nil},
		{"Newline", `\r\n|\n|\r`, nil},
		{"Whitespace", `[ \t]+`, nil},
		{"WStringLit", `(?s)w"(?:\\.|[^"\\])*"`, nil},
		{"WCharLit", `(?s)w'(?:\\.|[^'\\])*'`, nil},
		{"StringLit", `(?s)"(?:\\.|[^"\\])*"`, nil},
		{"CharLit", `(?s)'(?:\\.|[^'\\])*'`, nil},
		{"BacktickIdent2", "``[^`]*``", nil},
		{"BacktickIdent1", "`[^`]*`", nil},
		{"NumberLit", `0[xX][0-9a-fA-F]+[A-Za-z0-9]*|(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)(?:[eE][+-]?[0-9]+)?[A-Za-z0-9]*`, nil},
		{"Keyword", `\b(module|import|template|instance|private|inline|primitive|extern|native|unique|datatype|type|if|then|else|let|in|match|with|true|false|nil|inff|infd|inf|nanf|nand|nan|w)\b`, nil},
		{"UpperIdent", `[A-Z][A-Za-z0-9_']*`, nil},
		{"Ident", `[a-z_][A-Za-z0-9_']*`, nil},
		{"OperatorIdent", `[+\-*/%<>=!&|^~$]+`, nil},
		{"Punct", `[.,;:(){}\[\]@]`, nil},
	},
	"Comment": {
		{"CommentOpenNested", `/\*`, stateful.Push("Comment")},
		{"CommentClose", `\*/`, stateful.Pop()},
		{"CommentText", `(?s:[^/*]+)`, nil},
		{"CommentStray", `(?s:.)`, nil},
	},
})

var symbolNames = buildSymbolNames()

func buildSymbolNames() map[stateful.TokenType]string {
	names := make(map[stateful.TokenType]string)
	for name, typ := range rawLexer.Symbols() {
		names[typ] = name
	}
	return names
}

func symbolName(t stateful.TokenType) string {
	if t == stateful.EOF {
		return "EOF"
	}
	return symbolNames[t]
}
