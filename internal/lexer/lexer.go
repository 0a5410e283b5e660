package lexer

import (
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// Lexer produces a token stream for one source file on demand.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), reporter: reporter}
}

func (lx *Lexer) text(span source.Span) string {
	return string(lx.file.Content[span.Start:span.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Next returns the next significant token, skipping whitespace and comments.
// Past EOF it always returns an EOF token.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == 'c' && lx.cursor.PeekAt(1) == '"':
		return lx.scanString(true)
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '.' && isDigit(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString(false)
	default:
		return lx.scanOperator()
	}
}

// All tokenizes the entire file, including a trailing EOF token.
func (lx *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch {
		case isSpace(lx.cursor.Peek()):
			lx.cursor.Bump()
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for !lx.cursor.EOF() && !(lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/') {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	span := lx.cursor.SpanFrom(start)
	text := lx.text(span)
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

type opRule struct {
	text string
	kind token.Kind
}

// ordered longest-match-first
var opRules = []opRule{
	{"<<=", token.ShlAssign}, {">>=", token.ShrAssign}, {"..=", token.DotDotEq},
	{"+=", token.PlusAssign}, {"-=", token.MinusAssign}, {"*=", token.StarAssign},
	{"/=", token.SlashAssign}, {"%=", token.PercentAssign}, {"&=", token.AmpAssign},
	{"|=", token.PipeAssign}, {"^=", token.CaretAssign}, {"==", token.EqEq},
	{"!=", token.BangEq}, {"<=", token.LtEq}, {">=", token.GtEq},
	{"<<", token.Shl}, {">>", token.Shr}, {"++", token.Concat},
	{"::", token.ColonColon}, {"..", token.DotDot},
	{"->", token.Arrow},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash},
	{"%", token.Percent}, {"=", token.Assign}, {"!", token.Bang}, {"<", token.Lt},
	{">", token.Gt}, {"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret},
	{"?", token.Question}, {":", token.Colon}, {";", token.Semicolon},
	{",", token.Comma}, {".", token.Dot}, {"(", token.LParen}, {")", token.RParen},
	{"{", token.LBrace}, {"}", token.RBrace}, {"[", token.LBracket}, {"]", token.RBracket},
	{"@", token.At},
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	remaining := lx.file.Content[lx.cursor.Off:]
	for _, rule := range opRules {
		if hasPrefix(remaining, rule.text) {
			for range rule.text {
				lx.cursor.Bump()
			}
			span := lx.cursor.SpanFrom(start)
			return token.Token{Kind: rule.kind, Span: span, Text: rule.text}
		}
	}
	lx.cursor.Bump()
	span := lx.cursor.SpanFrom(start)
	if lx.reporter != nil {
		diag.ReportError(lx.reporter, diag.LexUnknownChar, span, "unexpected character").Emit()
	}
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.text(span)}
}

func hasPrefix(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}
