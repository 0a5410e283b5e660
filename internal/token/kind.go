// Package token defines the lexical token vocabulary shared by the lexer
// and parser.
package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// Keywords
	KwFn
	KwLet
	KwConst
	KwMut
	KwPub
	KwExport
	KwStruct
	KwEnum
	KwError
	KwImport
	KwAs
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwSwitch
	KwBreak
	KwContinue
	KwReturn
	KwGoto
	KwAnd
	KwOr
	KwTrue
	KwFalse
	KwUndefined

	// Literals
	IntLit
	FloatLit
	StringLit
	CStringLit

	// Punctuation / operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Shl
	Shr
	Amp
	Pipe
	Caret
	Concat
	Question
	Colon
	ColonColon
	Semicolon
	Comma
	Dot
	DotDot
	DotDotEq
	Arrow
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	At
)

var keywords = map[string]Kind{
	"fn":        KwFn,
	"let":       KwLet,
	"const":     KwConst,
	"mut":       KwMut,
	"pub":       KwPub,
	"export":    KwExport,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"error":     KwError,
	"import":    KwImport,
	"as":        KwAs,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"in":        KwIn,
	"switch":    KwSwitch,
	"break":     KwBreak,
	"continue":  KwContinue,
	"return":    KwReturn,
	"goto":      KwGoto,
	"and":       KwAnd,
	"or":        KwOr,
	"true":      KwTrue,
	"false":     KwFalse,
	"undefined": KwUndefined,
}

// LookupKeyword returns the keyword Kind for ident, or (Invalid, false) if
// ident is an ordinary identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	case CStringLit:
		return "c-string literal"
	default:
		return "token"
	}
}
