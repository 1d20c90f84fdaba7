package lexer

import (
	"math"
	"strconv"
	"strings"

	stateful "github.com/alecthomas/participle/v2/lexer"

	"github.com/emberlang/emberc/frontend"
	"github.com/emberlang/emberc/frontend/ast"
)

// decodeNumber turns a captured NumberLit token (digits plus an optional
// trailing alphanumeric suffix) into a typed IntLit or FloatLit token,
// following this grammar:
//
//	integer: 0x hex | 0 octal | decimal digits, optional i8|i16|i32|i64
//	         suffix; unsuffixed is INT64.
//	float:   digits with a '.' and/or exponent, optional f|d suffix;
//	         unsuffixed is DOUBLE.
func (l *Lexer) decodeNumber(raw stateful.Token) Token {
	text := raw.Value
	pos := l.pos(raw.Pos)

	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return l.decodeHexInt(text, pos)
	}

	body, suffix := splitNumericSuffix(text)
	isFloat := strings.ContainsAny(body, ".eE")

	switch suffix {
	case "i8", "i16", "i32", "i64":
		if isFloat {
			l.errors.Add(pos, frontend.LexicalError, "integer suffix "+suffix+" on a floating-point literal")
			return Token{Kind: IntLit, Text: text, Pos: pos}
		}
		return l.finishIntLit(body, suffix, pos, text)
	case "f", "d":
		return l.finishFloatLit(body, suffix, pos, text)
	case "":
		if isFloat {
			return l.finishFloatLit(body, "d", pos, text)
		}
		return l.finishIntLit(body, "i64", pos, text)
	default:
		l.errors.Add(pos, frontend.LexicalError, "bad number suffix "+strconv.Quote(suffix))
		if isFloat {
			return l.finishFloatLit(body, "d", pos, text)
		}
		return l.finishIntLit(body, "i64", pos, text)
	}
}

// splitNumericSuffix splits "123i8" into ("123", "i8"), "1.5f" into
// ("1.5", "f"), "1e10" into ("1e10", ""), etc. A suffix starting with 'i'
// or 'I' runs from that letter to the end; otherwise the suffix is the
// maximal trailing run of letters (after any exponent digits have been
// consumed).
func splitNumericSuffix(text string) (body, suffix string) {
	if j := strings.IndexAny(text, "iI"); j >= 0 {
		return text[:j], text[j:]
	}
	i := len(text)
	for i > 0 {
		c := text[i-1]
		if c >= '0' && c <= '9' {
			break
		}
		// An 'e'/'E' immediately preceded by a digit and followed only by
		// digits is an exponent marker, not a suffix letter; but since we
		// scan from the right, by the time we reach the exponent's digits
		// we've already stopped (digits break the loop). So any leftover
		// letters here are genuinely a suffix.
		i--
	}
	return text[:i], text[i:]
}

func (l *Lexer) finishIntLit(digits, suffix string, pos frontend.Position, text string) Token {
	kind := intKindForSuffix(suffix)
	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		base = 8
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		l.errors.Add(pos, frontend.LexicalError, "invalid integer literal "+strconv.Quote(text))
	}
	if !fitsIntKind(v, kind) {
		l.errors.Add(pos, frontend.LexicalError, "integer literal "+strconv.Quote(text)+" out of range for "+kind.String())
	}
	return Token{Kind: IntLit, Text: text, Pos: pos, IntKind: kind, IntVal: v}
}

func (l *Lexer) decodeHexInt(text string, pos frontend.Position) Token {
	n := 2
	for n < len(text) && isHexDigit(text[n]) {
		n++
	}
	body, suffix := text[2:n], text[n:]
	kind := ast.I64
	if suffix != "" {
		kind = intKindForSuffix(suffix)
		if kind == ast.I64 && suffix != "i64" {
			l.errors.Add(pos, frontend.LexicalError, "bad number suffix "+strconv.Quote(suffix))
		}
	}
	v, err := strconv.ParseUint(body, 16, 64)
	if err != nil {
		l.errors.Add(pos, frontend.LexicalError, "invalid hex integer literal "+strconv.Quote(text))
	}
	return Token{Kind: IntLit, Text: text, Pos: pos, IntKind: kind, IntVal: int64(v)}
}

func (l *Lexer) finishFloatLit(digits, suffix string, pos frontend.Position, text string) Token {
	kind := ast.Double
	if suffix == "f" {
		kind = ast.Single
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		l.errors.Add(pos, frontend.LexicalError, "invalid float literal "+strconv.Quote(text))
	}
	return Token{Kind: FloatLit, Text: text, Pos: pos, FloatKind: kind, FloatVal: v}
}

func intKindForSuffix(suffix string) ast.IntKind {
	switch suffix {
	case "i8":
		return ast.I8
	case "i16":
		return ast.I16
	case "i32":
		return ast.I32
	default:
		return ast.I64
	}
}

func fitsIntKind(v int64, kind ast.IntKind) bool {
	switch kind {
	case ast.I8:
		return v >= -128 && v <= 127
	case ast.I16:
		return v >= -32768 && v <= 32767
	case ast.I32:
		return v >= -2147483648 && v <= 2147483647
	default:
		return true
	}
}

// InfinityOrNaN resolves a keyword token spelling one of the
// inff/infd/inf/nanf/nand/nan literals into its FloatValue: inff/infd/inf
// are +infinity of kind Single/Double/Double; the nan* variants are NaN
// of the same kind mapping.
func InfinityOrNaN(keyword string) (ast.FloatValue, bool) {
	switch keyword {
	case "inff":
		return ast.FloatValue{FloatKind: ast.Single, Value: math.Inf(1)}, true
	case "infd", "inf":
		return ast.FloatValue{FloatKind: ast.Double, Value: math.Inf(1)}, true
	case "nanf":
		return ast.FloatValue{FloatKind: ast.Single, Value: math.NaN()}, true
	case "nand", "nan":
		return ast.FloatValue{FloatKind: ast.Double, Value: math.NaN()}, true
	default:
		return ast.FloatValue{}, false
	}
}
