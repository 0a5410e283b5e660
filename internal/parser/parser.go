// Package parser turns a token stream into the AST the analyzer walks. Its
// job is deliberately thin: recognize the grammar, recover from the first
// error per construct, and hand the analyzer a realistic tree — it does not
// itself decide type or scope questions.
package parser

import (
	"slices"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state needed to parse one file: a one-token lookahead
// buffer over the lexer, the shared builder and string interner, and the
// span of the last consumed token (used to anchor diagnostics at EOF).
type Parser struct {
	lx       *lexer.Lexer
	cur      token.Token
	peek     token.Token
	b        *ast.Builder
	strs     *source.Interner
	file     ast.FileID
	opts     Options
	lastSpan source.Span

	// noStructLit suppresses "Type{...}" struct-literal parsing while
	// parsing an if/while/for/switch condition, so the opening brace of
	// the construct's body is never mistaken for one.
	noStructLit bool
}

// ParseFile parses one file's token stream into b, returning the new
// FileID and the diagnostic bag collected along the way (nil if opts did
// not supply a diag.BagReporter).
func ParseFile(lx *lexer.Lexer, b *ast.Builder, strs *source.Interner, opts Options) Result {
	p := Parser{
		lx:   lx,
		b:    b,
		strs: strs,
		opts: opts,
	}
	p.cur = p.lx.Next()
	p.peek = p.lx.Next()
	startSpan := p.cur.Span
	p.file = b.NewFile(startSpan)

	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if ok {
			p.b.PushItem(p.file, itemID)
		} else {
			p.resyncTop()
		}
	}
	b.Files.Get(p.file).Span = startSpan.Cover(p.cur.Span)

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) atAny(kinds ...token.Kind) bool { return slices.Contains(kinds, p.cur.Kind) }

// intern interns tok's text as an identifier name.
func (p *Parser) intern(tok token.Token) source.StringID { return p.strs.Intern(tok.Text) }

func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		return p.intern(p.advance()), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.cur.Text+"\"")
	return source.NoStringID, false
}

var itemStarters = []token.Kind{
	token.KwFn, token.KwLet, token.KwConst, token.KwStruct, token.KwEnum,
	token.KwError, token.KwImport, token.KwPub, token.KwExport, token.At,
}

// parseItem dispatches on the leading token of a top-level declaration.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	vis, hasVis := p.parseVisibilityPrefix()

	switch p.cur.Kind {
	case token.KwFn:
		return p.parseFnItem(vis)
	case token.KwLet:
		return p.parseVarItem(vis, false)
	case token.KwConst:
		return p.parseVarItem(vis, true)
	case token.KwStruct:
		return p.parseStructItem(vis)
	case token.KwEnum:
		return p.parseEnumItem(vis)
	case token.KwError:
		return p.parseErrorItem(vis)
	case token.KwImport:
		if hasVis {
			p.err(diag.SynUnexpectedToken, "import declarations cannot have a visibility modifier")
		}
		return p.parseImportItem()
	case token.At:
		if hasVis {
			p.err(diag.SynUnexpectedToken, "unexpected visibility modifier before '@'")
		}
		return p.parseCImportItem()
	default:
		p.err(diag.SynUnexpectedToken, "unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// parseVisibilityPrefix consumes an optional "pub"/"export" prefix.
func (p *Parser) parseVisibilityPrefix() (ast.Visibility, bool) {
	switch p.cur.Kind {
	case token.KwPub:
		p.advance()
		return ast.VisPub, true
	case token.KwExport:
		p.advance()
		return ast.VisExport, true
	default:
		return ast.VisPrivate, false
	}
}

// resyncTop skips tokens until a semicolon or the start of the next
// top-level item, consuming a trailing semicolon if present.
func (p *Parser) resyncTop() {
	p.resyncUntil(append(append([]token.Kind{token.Semicolon}, itemStarters...), token.EOF)...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncUntil advances past tokens until one of kinds (or EOF) is current.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.atAny(kinds...) && !p.at(token.EOF) {
		p.advance()
	}
}
