package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/token"
)

// parseType parses a type expression: a path, or one of the "&", "[...]",
// "?", "!" or "fn(...)" prefix forms wrapping a child type.
func (p *Parser) parseType() (ast.TypeID, bool) {
	start := p.cur.Span
	switch p.cur.Kind {
	case token.Amp:
		p.advance()
		isConst := false
		if p.at(token.KwConst) {
			p.advance()
			isConst = true
		}
		child, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewPointer(start.Cover(p.lastSpan), child, isConst), true

	case token.LBracket:
		p.advance()
		var length ast.ExprID = ast.NoExprID
		if !p.at(token.RBracket) {
			e, ok := p.parseExpr()
			if !ok {
				p.resyncUntil(token.RBracket, token.Semicolon)
			}
			length = e
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array/slice type"); !ok {
			return ast.NoTypeID, false
		}
		isConst := false
		if p.at(token.KwConst) {
			p.advance()
			isConst = true
		}
		child, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		span := start.Cover(p.lastSpan)
		if length.IsValid() {
			return p.b.Types.NewArray(span, child, length), true
		}
		return p.b.Types.NewSlice(span, child, isConst), true

	case token.Question:
		p.advance()
		child, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewOptional(start.Cover(p.lastSpan), child), true

	case token.Bang:
		p.advance()
		child, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewErrorUnion(start.Cover(p.lastSpan), child), true

	case token.KwFn:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' in function type"); !ok {
			return ast.NoTypeID, false
		}
		var params []ast.TypeID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			t, ok := p.parseType()
			if !ok {
				p.resyncUntil(token.RParen, token.Semicolon)
				break
			}
			params = append(params, t)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after function type parameters"); !ok {
			return ast.NoTypeID, false
		}
		ret := ast.NoTypeID
		if p.at(token.Arrow) {
			p.advance()
			t, ok := p.parseType()
			if !ok {
				return ast.NoTypeID, false
			}
			ret = t
		}
		return p.b.Types.NewFn(start.Cover(p.lastSpan), params, ret), true

	case token.Ident:
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewPath(p.lastSpan, name), true

	default:
		p.err(diag.SynExpectType, "expected a type")
		return ast.NoTypeID, false
	}
}
