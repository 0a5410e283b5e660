package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignment()
}

// parseAssignment parses "=" and the compound-assignment operators, which
// right-associate and bind looser than every other binary operator.
func (p *Parser) parseAssignment() (ast.ExprID, bool) {
	start := p.cur.Span
	left, ok := p.parseBinary(1)
	if !ok {
		return ast.NoExprID, false
	}
	if op, ok := assignOp(p.cur.Kind); ok {
		p.advance()
		right, ok := p.parseAssignment()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right), true
	}
	return left, true
}

// parseBinary implements precedence climbing over the left-associative
// binary operators (everything but assignment).
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	start := p.cur.Span
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, _ := binaryOpPrec(p.cur.Kind)
		if prec == 0 || prec < minPrec {
			return left, true
		}
		op := tokenToBinaryOp(p.cur.Kind)
		p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	start := p.cur.Span
	if op, ok := tokenToUnaryOp(p.cur.Kind); ok {
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewUnary(start.Cover(p.lastSpan), op, operand), true
	}
	return p.parseCastOrPostfix()
}

// parseCastOrPostfix parses a postfix expression and then zero or more
// trailing "as Type" casts.
func (p *Parser) parseCastOrPostfix() (ast.ExprID, bool) {
	start := p.cur.Span
	e, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	e, ok = p.parsePostfix(e)
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAs) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.NoExprID, false
		}
		e = p.b.Exprs.NewCast(start.Cover(p.lastSpan), e, typ)
	}
	return e, true
}

func (p *Parser) parsePostfix(e ast.ExprID) (ast.ExprID, bool) {
	start := p.cur.Span
	for {
		switch p.cur.Kind {
		case token.Dot:
			p.advance()
			field, ok := p.parseIdent()
			if !ok {
				return ast.NoExprID, false
			}
			if p.at(token.LParen) {
				args, ok := p.parseCallArgs()
				if !ok {
					return ast.NoExprID, false
				}
				e = p.b.Exprs.NewMethodCall(start.Cover(p.lastSpan), e, field, args)
				continue
			}
			e = p.b.Exprs.NewMember(start.Cover(p.lastSpan), e, field)

		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			e = p.b.Exprs.NewCall(start.Cover(p.lastSpan), e, args)

		case token.LBracket:
			p.advance()
			isConst := false
			if p.at(token.KwConst) {
				p.advance()
				isConst = true
			}

			first, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}

			if p.atAny(token.DotDot, token.DotDotEq) {
				p.advance()
				end := ast.NoExprID
				if !p.at(token.RBracket) {
					v, ok := p.parseExpr()
					if !ok {
						return ast.NoExprID, false
					}
					end = v
				}
				if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after slice expression"); !ok {
					return ast.NoExprID, false
				}
				e = p.b.Exprs.NewSlice(start.Cover(p.lastSpan), e, first, end, isConst)
				continue
			}

			if isConst {
				p.err(diag.SynUnexpectedToken, "expected '..' after 'const' in slice expression")
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index expression"); !ok {
				return ast.NoExprID, false
			}
			e = p.b.Exprs.NewIndex(start.Cover(p.lastSpan), e, first)

		default:
			return e, true
		}
	}
}

func (p *Parser) parseCallArgs() ([]ast.CallArg, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	var args []ast.CallArg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		v, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RParen, token.Semicolon)
			break
		}
		args = append(args, ast.CallArg{Value: v})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	start := p.cur.Span
	switch p.cur.Kind {
	case token.IntLit:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitInt, p.intern(tok)), true
	case token.FloatLit:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.intern(tok)), true
	case token.StringLit:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitString, p.intern(tok)), true
	case token.CStringLit:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitCString, p.intern(tok)), true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitBool, p.intern(tok)), true
	case token.KwUndefined:
		tok := p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitUndefined, source.NoStringID), true

	case token.Ident:
		nameTok := p.advance()
		name := p.intern(nameTok)
		if !p.noStructLit && p.at(token.LBrace) {
			typ := p.b.Types.NewPath(nameTok.Span, name)
			return p.parseStructLit(start, typ)
		}
		return p.b.Exprs.NewIdent(nameTok.Span, name), true

	case token.LParen:
		p.advance()
		saved := p.noStructLit
		p.noStructLit = false
		e, ok := p.parseExpr()
		p.noStructLit = saved
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return e, true

	case token.LBracket:
		return p.parseArrayLit()

	case token.At:
		return p.parseBuiltinCall()

	default:
		p.err(diag.SynExpectExpression, "expected an expression")
		return ast.NoExprID, false
	}
}

// parseStructLit parses "{ field: value, ... }" given the type path already
// consumed as the leading identifier.
func (p *Parser) parseStructLit(start source.Span, typ ast.TypeID) (ast.ExprID, bool) {
	p.advance() // '{'
	var fields []ast.StructLitField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		value, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace, token.Comma, token.Semicolon)
			break
		}
		fields = append(fields, ast.StructLitField{Name: name, Value: value})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after struct literal fields"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewStructLit(start.Cover(p.lastSpan), typ, fields), true
}

// parseArrayLit parses "[e1, e2, ...]".
func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	start := p.cur.Span
	p.advance() // '['
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBracket, token.Comma, token.Semicolon)
			break
		}
		elems = append(elems, e)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after array literal elements"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewArrayLit(start.Cover(p.lastSpan), elems), true
}
