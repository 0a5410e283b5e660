package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"ember/internal/token"
)

// scanString reads a double-quoted string literal body, unescaping common
// escape sequences and normalizing the result to NFC so that constant-fold
// string concatenation composes on a canonical byte sequence.
func (lx *Lexer) scanString(cPrefixed bool) token.Token {
	start := lx.cursor.Mark()
	if cPrefixed {
		lx.cursor.Bump() // 'c'
	}
	lx.cursor.Bump() // opening quote

	var raw strings.Builder
	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
		b := lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			esc := lx.cursor.Bump()
			raw.WriteByte(unescape(esc))
			continue
		}
		raw.WriteByte(b)
	}
	lx.cursor.Eat('"')

	span := lx.cursor.SpanFrom(start)
	kind := token.StringLit
	if cPrefixed {
		kind = token.CStringLit
	}
	return token.Token{Kind: kind, Span: span, Text: norm.NFC.String(raw.String())}
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return b
	}
}
