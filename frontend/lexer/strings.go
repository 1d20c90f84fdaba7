package lexer

import (
	"strconv"

	stateful "github.com/alecthomas/participle/v2/lexer"

	"github.com/emberlang/emberc/frontend"
)

// decodeChar decodes a 'x' token into a single-byte CharLit.
func (l *Lexer) decodeChar(raw stateful.Token) Token {
	pos := l.pos(raw.Pos)
	body := trimQuotes(raw.Value, 1)
	bytes, wide, ok := l.decodeEscapes(body, pos, false)
	if !ok || (len(bytes) == 0 && len(wide) == 0) {
		if ok {
			l.errors.Add(pos, frontend.LexicalError, "empty character literal")
		}
		return Token{Kind: CharLit, Text: raw.Value, Pos: pos}
	}
	if len(bytes) != 1 {
		l.errors.Add(pos, frontend.LexicalError, "character literal must contain exactly one byte")
	}
	var v byte
	if len(bytes) > 0 {
		v = bytes[0]
	}
	return Token{Kind: CharLit, Text: raw.Value, Pos: pos, CharVal: v}
}

// decodeWChar decodes a w'x' token into a code-point WCharLit.
func (l *Lexer) decodeWChar(raw stateful.Token) Token {
	pos := l.pos(raw.Pos)
	body := trimQuotes(raw.Value[1:], 1)
	_, runes, ok := l.decodeEscapes(body, pos, true)
	if !ok || len(runes) == 0 {
		if ok {
			l.errors.Add(pos, frontend.LexicalError, "empty wide character literal")
		}
		return Token{Kind: WCharLit, Text: raw.Value, Pos: pos}
	}
	if len(runes) != 1 {
		l.errors.Add(pos, frontend.LexicalError, "wide character literal must contain exactly one code point")
	}
	return Token{Kind: WCharLit, Text: raw.Value, Pos: pos, WCharVal: runes[0]}
}

// decodeString decodes a "..." token into a byte-string StringLit.
func (l *Lexer) decodeString(raw stateful.Token) Token {
	pos := l.pos(raw.Pos)
	body := trimQuotes(raw.Value, 1)
	bytes, _, ok := l.decodeEscapes(body, pos, false)
	if !ok {
		bytes = nil
	}
	return Token{Kind: StringLit, Text: raw.Value, Pos: pos, StrVal: bytes}
}

// decodeWString decodes a w"..." token into a code-point WStringLit.
func (l *Lexer) decodeWString(raw stateful.Token) Token {
	pos := l.pos(raw.Pos)
	body := trimQuotes(raw.Value[1:], 1)
	_, runes, ok := l.decodeEscapes(body, pos, true)
	if !ok {
		runes = nil
	}
	return Token{Kind: WStringLit, Text: raw.Value, Pos: pos, WStrVal: runes}
}

func trimQuotes(s string, n int) string {
	if len(s) < 2*n {
		return ""
	}
	return s[n : len(s)-n]
}

// decodeEscapes walks body (the text strictly between the delimiting
// quotes) interpreting the shared escape grammar:
//
//	\n \r \t \\ \' \"          common escapes
//	\ddd   (1-3 octal digits)  octal escape
//	\xhh   (1-2 hex digits)    hex escape
//	\uhhhh (exactly 4 hex)     wide-only: 16-bit code point
//	\Uhhhhhhhh (exactly 8 hex) wide-only: 32-bit code point
//	\<newline>                 line continuation (consumed, emits nothing)
//
// For narrow literals it returns decoded bytes; for wide literals it returns
// decoded runes. Reports false if the escape grammar was violated (in which
// case an Error has already been appended).
func (l *Lexer) decodeEscapes(body string, pos frontend.Position, wide bool) (bytes []byte, runes []rune, ok bool) {
	ok = true
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			r, size := decodeRuneAt(body[i:])
			if wide {
				runes = append(runes, r)
			} else {
				bytes = append(bytes, body[i:i+size]...)
			}
			i += size
			continue
		}
		// c == '\\'
		if i+1 >= len(body) {
			l.errors.Add(pos, frontend.LexicalError, "unterminated escape sequence")
			ok = false
			break
		}
		esc := body[i+1]
		switch esc {
		case '\n':
			i += 2 // line continuation: swallow backslash-newline entirely
			continue
		case 'n':
			bytes, runes = appendEscaped(bytes, runes, wide, '\n')
			i += 2
		case 'r':
			bytes, runes = appendEscaped(bytes, runes, wide, '\r')
			i += 2
		case 't':
			bytes, runes = appendEscaped(bytes, runes, wide, '\t')
			i += 2
		case '\\':
			bytes, runes = appendEscaped(bytes, runes, wide, '\\')
			i += 2
		case '\'':
			bytes, runes = appendEscaped(bytes, runes, wide, '\'')
			i += 2
		case '"':
			bytes, runes = appendEscaped(bytes, runes, wide, '"')
			i += 2
		case 'x':
			v, n, perr := hexEscape(body[i+2:], 1, 2)
			if perr {
				l.errors.Add(pos, frontend.LexicalError, "bad hex escape")
				ok = false
				i += 2
				continue
			}
			bytes, runes = appendEscaped(bytes, runes, wide, rune(v))
			i += 2 + n
		case 'u':
			if !wide {
				l.errors.Add(pos, frontend.LexicalError, `\u escape is only valid in wide literals`)
				ok = false
				i += 2
				continue
			}
			v, n, perr := hexEscapeExact(body[i+2:], 4)
			if perr {
				l.errors.Add(pos, frontend.LexicalError, `bad \u escape, expected exactly 4 hex digits`)
				ok = false
				i += 2
				continue
			}
			runes = append(runes, rune(v))
			i += 2 + n
		case 'U':
			if !wide {
				l.errors.Add(pos, frontend.LexicalError, `\U escape is only valid in wide literals`)
				ok = false
				i += 2
				continue
			}
			v, n, perr := hexEscapeExact(body[i+2:], 8)
			if perr {
				l.errors.Add(pos, frontend.LexicalError, `bad \U escape, expected exactly 8 hex digits`)
				ok = false
				i += 2
				continue
			}
			runes = append(runes, rune(v))
			i += 2 + n
		default:
			if isOctalDigit(esc) {
				v, n := octalEscape(body[i+1:], 3)
				bytes, runes = appendEscaped(bytes, runes, wide, rune(v))
				i += 1 + n
				continue
			}
			l.errors.Add(pos, frontend.LexicalError, "unknown escape sequence \\"+string(esc))
			ok = false
			i += 2
		}
	}
	return bytes, runes, ok
}

func appendEscaped(bytes []byte, runes []rune, wide bool, r rune) ([]byte, []rune) {
	if wide {
		return bytes, append(runes, r)
	}
	return append(bytes, byte(r)), runes
}

func decodeRuneAt(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	b := s[0]
	if b < 0x80 {
		return rune(b), 1
	}
	// Multi-byte UTF-8 sequences are passed through byte-for-byte for
	// narrow literals and decoded properly for wide literals by the
	// caller's append path; a conservative single-byte step keeps narrow
	// StringValue byte-for-byte faithful to the source encoding.
	n := utf8SeqLen(b)
	if n == 0 || n > len(s) {
		return rune(b), 1
	}
	r := decodeUTF8(s[:n])
	return r, n
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

func decodeUTF8(s string) rune {
	switch len(s) {
	case 1:
		return rune(s[0])
	case 2:
		return rune(s[0]&0x1F)<<6 | rune(s[1]&0x3F)
	case 3:
		return rune(s[0]&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F)
	case 4:
		return rune(s[0]&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F)
	default:
		return rune(s[0])
	}
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// octalEscape reads up to maxDigits octal digits from s, returning the
// decoded value and how many digits were consumed.
func octalEscape(s string, maxDigits int) (value int64, consumed int) {
	for consumed < maxDigits && consumed < len(s) && isOctalDigit(s[consumed]) {
		consumed++
	}
	v, _ := strconv.ParseInt(s[:consumed], 8, 32)
	return v, consumed
}

// hexEscape reads between minDigits and maxDigits hex digits from s.
func hexEscape(s string, minDigits, maxDigits int) (value int64, consumed int, err bool) {
	for consumed < maxDigits && consumed < len(s) && isHexDigit(s[consumed]) {
		consumed++
	}
	if consumed < minDigits {
		return 0, consumed, true
	}
	v, perr := strconv.ParseInt(s[:consumed], 16, 64)
	return v, consumed, perr != nil
}

// hexEscapeExact requires exactly n hex digits.
func hexEscapeExact(s string, n int) (value int64, consumed int, err bool) {
	if len(s) < n {
		return 0, 0, true
	}
	for i := 0; i < n; i++ {
		if !isHexDigit(s[i]) {
			return 0, 0, true
		}
	}
	v, perr := strconv.ParseInt(s[:n], 16, 64)
	return v, n, perr != nil
}
