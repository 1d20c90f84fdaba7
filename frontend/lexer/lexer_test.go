package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
)

func lexAll(t *testing.T, text string) ([]Token, *frontend.ErrorList) {
	t.Helper()
	errs := &frontend.ErrorList{}
	src := frontend.NewSource("test.ember")
	l, err := New(src, text, Options{}, errs)
	require.NoError(t, err)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks, errs
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestNestedBlockCommentsBalance(t *testing.T) {
	toks, errs := lexAll(t, "/* outer /* inner */ still outer */ x")
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, []Kind{Ident, EOF}, kinds(toks))
}

func TestUnterminatedNestedCommentIsReported(t *testing.T) {
	src := frontend.NewSource("test.ember")
	errs := &frontend.ErrorList{}
	l, err := New(src, "/* outer /* inner */ x", Options{}, errs)
	require.NoError(t, err)
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
	}
	assert.True(t, l.UnterminatedComment())
}

func TestNewlineTokensAreEmitted(t *testing.T) {
	toks, errs := lexAll(t, "x\ny")
	require.True(t, errs.Empty())
	assert.Equal(t, []Kind{Ident, Newline, Ident, EOF}, kinds(toks))
}

func TestLineCommentConsumesToEndOfLine(t *testing.T) {
	toks, errs := lexAll(t, "x // a comment\ny")
	require.True(t, errs.Empty())
	assert.Equal(t, []Kind{Ident, Newline, Ident, EOF}, kinds(toks))
}

func TestHexIntegerLiteral(t *testing.T) {
	toks, errs := lexAll(t, "0xFFi32")
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, IntLit, toks[0].Kind)
	assert.Equal(t, ast.I32, toks[0].IntKind)
	assert.Equal(t, int64(255), toks[0].IntVal)
}

func TestUnsuffixedIntLiteralDefaultsToI64(t *testing.T) {
	toks, errs := lexAll(t, "42")
	require.True(t, errs.Empty())
	require.Equal(t, IntLit, toks[0].Kind)
	assert.Equal(t, ast.I64, toks[0].IntKind)
	assert.Equal(t, int64(42), toks[0].IntVal)
}

func TestUnsuffixedFloatLiteralDefaultsToDouble(t *testing.T) {
	toks, errs := lexAll(t, "3.14")
	require.True(t, errs.Empty())
	require.Equal(t, FloatLit, toks[0].Kind)
	assert.Equal(t, ast.Double, toks[0].FloatKind)
	assert.InDelta(t, 3.14, toks[0].FloatVal, 1e-9)
}

func TestFloatLiteralWithSingleSuffix(t *testing.T) {
	toks, errs := lexAll(t, "2.5f")
	require.True(t, errs.Empty())
	require.Equal(t, FloatLit, toks[0].Kind)
	assert.Equal(t, ast.Single, toks[0].FloatKind)
}

func TestOversizedI8LiteralReportsError(t *testing.T) {
	_, errs := lexAll(t, "200i8")
	assert.False(t, errs.Empty())
}

func TestKeywordRecognition(t *testing.T) {
	toks, errs := lexAll(t, "let x in match")
	require.True(t, errs.Empty())
	require.Equal(t, Keyword, toks[0].Kind)
	assert.Equal(t, "let", toks[0].Text)
}

func TestUpperAndLowerIdentifiersAreDistinguished(t *testing.T) {
	toks, errs := lexAll(t, "Foo foo")
	require.True(t, errs.Empty())
	assert.Equal(t, UpperIdent, toks[0].Kind)
	assert.Equal(t, Ident, toks[1].Kind)
}

func TestBareEqualsIsPunctNotOperator(t *testing.T) {
	toks, errs := lexAll(t, "x = y")
	require.True(t, errs.Empty())
	require.Len(t, toks, 4)
	assert.Equal(t, Punct, toks[1].Kind)
	assert.Equal(t, "=", toks[1].Text)
}

func TestMultiCharOperatorStaysOperatorIdent(t *testing.T) {
	toks, errs := lexAll(t, "x >= y")
	require.True(t, errs.Empty())
	assert.Equal(t, OperatorIdent, toks[1].Kind)
	assert.Equal(t, ">=", toks[1].Text)
}

func TestQualifiedPathTokenizesAsDotPunct(t *testing.T) {
	toks, errs := lexAll(t, "Foo.Bar.baz")
	require.True(t, errs.Empty())
	assert.Equal(t, []Kind{UpperIdent, Punct, UpperIdent, Punct, Ident, EOF}, kinds(toks))
}

func TestBacktickIdentifierBothDelimiters(t *testing.T) {
	toks, errs := lexAll(t, "`weird name` ``also weird``")
	require.True(t, errs.Empty())
	require.Equal(t, BacktickIdent, toks[0].Kind)
	assert.Equal(t, "weird name", toks[0].Text)
	require.Equal(t, BacktickIdent, toks[1].Kind)
	assert.Equal(t, "also weird", toks[1].Text)
}

func TestStringLiteralDecodesCommonEscapes(t *testing.T) {
	toks, errs := lexAll(t, `"a\nb\tc"`)
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, []byte("a\nb\tc"), toks[0].StrVal)
}

func TestStringLiteralLineContinuationSwallowsNewline(t *testing.T) {
	toks, errs := lexAll(t, "\"a\\\nb\"")
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, []byte("ab"), toks[0].StrVal)
}

func TestCharLiteralHexEscape(t *testing.T) {
	toks, errs := lexAll(t, `'\x41'`)
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, CharLit, toks[0].Kind)
	assert.Equal(t, byte('A'), toks[0].CharVal)
}

func TestCharLiteralOctalEscape(t *testing.T) {
	toks, errs := lexAll(t, `'\101'`)
	require.True(t, errs.Empty(), errs.Error())
	assert.Equal(t, byte('A'), toks[0].CharVal)
}

func TestWideCharLiteralDecodesUTF8(t *testing.T) {
	toks, errs := lexAll(t, `w'é'`)
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, WCharLit, toks[0].Kind)
	assert.Equal(t, rune(0xe9), toks[0].WCharVal)
}

func TestWideStringLiteralUpperUEscape(t *testing.T) {
	toks, errs := lexAll(t, `w"\U0001F600"`)
	require.True(t, errs.Empty(), errs.Error())
	require.Equal(t, WStringLit, toks[0].Kind)
	require.Len(t, toks[0].WStrVal, 1)
	assert.Equal(t, rune(0x1F600), toks[0].WStrVal[0])
}

func TestLowerUEscapeRejectedInNarrowString(t *testing.T) {
	_, errs := lexAll(t, "\"\\u00e9\"")
	assert.False(t, errs.Empty())
}

func TestInfinityAndNaNKeywordsResolve(t *testing.T) {
	toks, errs := lexAll(t, "inff infd inf nanf nand nan")
	require.True(t, errs.Empty())
	for _, tok := range toks {
		if tok.Kind != Keyword {
			continue
		}
		v, ok := InfinityOrNaN(tok.Text)
		require.True(t, ok)
		_ = v
	}
}

func TestImportQualifiedPathTokenization(t *testing.T) {
	toks, errs := lexAll(t, "import Std.Io")
	require.True(t, errs.Empty())
	assert.Equal(t, []Kind{Keyword, UpperIdent, Punct, UpperIdent, EOF}, kinds(toks))
}
