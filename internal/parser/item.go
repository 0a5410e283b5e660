package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// parseFnItem parses a function prototype or definition:
//
//	fn add(a: i32, b: i32) -> i32 { return a + b; }
//	fn puts(s: &const u8) -> i32;
func (p *Parser) parseFnItem(vis ast.Visibility) (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'fn'
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}
	retType := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		t, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		retType = t
	}

	if p.at(token.Semicolon) {
		p.advance()
		return p.b.Items.NewFnProto(name, vis, params, retType, start.Cover(p.lastSpan)), true
	}
	body := p.parseBlock()
	return p.b.Items.NewFnDef(name, vis, params, retType, body, start.Cover(p.lastSpan)), true
}

func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pStart := p.cur.Span
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.RParen, token.Comma, token.Semicolon)
			break
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
			p.resyncUntil(token.RParen, token.Comma, token.Semicolon)
			break
		}
		typ, ok := p.parseType()
		if !ok {
			p.resyncUntil(token.RParen, token.Comma, token.Semicolon)
			break
		}
		params = append(params, ast.FnParam{Name: name, Type: typ, Span: pStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after function parameters"); !ok {
		return nil, false
	}
	return params, true
}

// parseVarItem parses a top-level "let"/"const" declaration:
//
//	let mut counter: i32 = 0;
//	const Limit: i32 = 100;
func (p *Parser) parseVarItem(vis ast.Visibility, isConst bool) (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'let' or 'const'
	mutable := false
	if !isConst && p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		typ = t
	}
	value := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		v, ok := p.parseExpr()
		if !ok {
			return ast.NoItemID, false
		}
		value = v
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewVar(name, typ, value, mutable, isConst, vis, start.Cover(p.lastSpan)), true
}

// parseStructItem parses "struct Name { field: Type, ... }".
func (p *Parser) parseStructItem(vis ast.Visibility) (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'struct'
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' for struct body"); !ok {
		return ast.NoItemID, false
	}
	var fields []ast.StructField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fStart := p.cur.Span
		fname, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		ftype, ok := p.parseType()
		if !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		fields = append(fields, ast.StructField{Name: fname, Type: ftype, Span: fStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct body"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewStruct(name, vis, fields, start.Cover(p.lastSpan)), true
}

// parseEnumItem parses "enum Name { Variant, Variant(Type), ... }".
func (p *Parser) parseEnumItem(vis ast.Visibility) (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'enum'
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' for enum body"); !ok {
		return ast.NoItemID, false
	}
	var variants []ast.EnumVariant
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vStart := p.cur.Span
		vname, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		payload := ast.NoTypeID
		if p.at(token.LParen) {
			p.advance()
			t, ok := p.parseType()
			if !ok {
				p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
				break
			}
			payload = t
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after variant payload type"); !ok {
				p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
				break
			}
		}
		variants = append(variants, ast.EnumVariant{Name: vname, Payload: payload, Span: vStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewEnum(name, vis, variants, start.Cover(p.lastSpan)), true
}

// parseErrorItem parses "error NotFound, PermissionDenied;".
func (p *Parser) parseErrorItem(vis ast.Visibility) (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'error'
	var names []source.StringID
	for {
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Semicolon)
			break
		}
		names = append(names, name)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after error declaration"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewErrorDecl(names, vis, start.Cover(p.lastSpan)), true
}

// parseImportItem parses "import \"path/to/file.mbr\" as alias;".
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // 'import'
	pathTok, ok := p.expect(token.StringLit, diag.SynExpectExpression, "expected a string path after 'import'")
	if !ok {
		return ast.NoItemID, false
	}
	path := p.intern(pathTok)
	alias := source.NoStringID
	if p.at(token.KwAs) {
		p.advance()
		a, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		alias = a
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after import declaration"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewImport(path, alias, start.Cover(p.lastSpan)), true
}

// parseCImportItem parses "@c_import { @c_include(\"stdio.h\"); ... }": a
// block of builtin statements whose bodies the analyzer hands to the
// C-header importer once their string arguments are constant-folded.
func (p *Parser) parseCImportItem() (ast.ItemID, bool) {
	start := p.cur.Span
	p.advance() // '@'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected 'c_import' after '@'")
	if !ok {
		return ast.NoItemID, false
	}
	if nameTok.Text != "c_import" {
		p.err(diag.SynUnexpectedToken, "expected 'c_import' after '@'")
		return ast.NoItemID, false
	}
	body := p.parseBlock()
	return p.b.Items.NewCImport(body, start.Cover(p.lastSpan)), true
}
