package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

func (p *Parser) parseBlock() ast.StmtID {
	start := p.cur.Span
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'"); !ok {
		return p.b.Stmts.NewBlock(start, nil)
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		s, ok := p.parseStmt()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace, token.LBrace, token.EOF)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, s)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	return p.b.Stmts.NewBlock(start.Cover(p.lastSpan), stmts)
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	switch p.cur.Kind {
	case token.LBrace:
		return p.parseBlock(), true

	case token.KwLet:
		return p.parseLetStmt()

	case token.KwReturn:
		p.advance()
		value := ast.NoExprID
		if !p.at(token.Semicolon) {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			value = v
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return statement"); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewReturn(start.Cover(p.lastSpan), value), true

	case token.KwBreak:
		p.advance()
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after break"); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewBreak(start.Cover(p.lastSpan)), true

	case token.KwContinue:
		p.advance()
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after continue"); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewContinue(start.Cover(p.lastSpan)), true

	case token.KwGoto:
		p.advance()
		label, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after goto"); !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewGoto(start.Cover(p.lastSpan), label), true

	case token.KwIf:
		return p.parseIfStmt()

	case token.KwWhile:
		return p.parseWhileStmt()

	case token.KwFor:
		return p.parseForStmt()

	case token.KwSwitch:
		return p.parseSwitchStmt()

	case token.Ident:
		if p.atPeek(token.Colon) {
			nameTok := p.advance()
			p.advance() // ':'
			return p.b.Stmts.NewLabel(nameTok.Span.Cover(p.lastSpan), p.intern(nameTok)), true
		}
		return p.parseExprStmt()

	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	e, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression statement"); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewExpr(start.Cover(p.lastSpan), e), true
}

func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	p.advance() // 'let'
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseType()
		if !ok {
			return ast.NoStmtID, false
		}
		typ = t
	}
	value := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		v, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = v
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewLet(start.Cover(p.lastSpan), ast.StmtLetData{
		Name: name, Type: typ, Value: value, Mutable: mutable,
	}), true
}

// parseCondition parses a parenthesized condition with struct-literal
// parsing suppressed, optionally as an "if-let" binding.
func (p *Parser) parseCondition() (cond ast.ExprID, bindName source.StringID, ok bool) {
	bindName = source.NoStringID
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after condition keyword"); !ok {
		return ast.NoExprID, bindName, false
	}
	saved := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = saved }()

	if p.at(token.KwLet) {
		p.advance()
		name, nameOk := p.parseIdent()
		if !nameOk {
			return ast.NoExprID, bindName, false
		}
		bindName = name
		if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after bound name"); !ok {
			return ast.NoExprID, bindName, false
		}
	}
	cond, ok = p.parseExpr()
	if !ok {
		return ast.NoExprID, bindName, false
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoExprID, bindName, false
	}
	return cond, bindName, true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	p.advance() // 'if'
	cond, bindName, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	then := p.parseBlock()
	elseStmt := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			s, ok := p.parseIfStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			elseStmt = s
		} else {
			elseStmt = p.parseBlock()
		}
	}
	return p.b.Stmts.NewIf(start.Cover(p.lastSpan), ast.StmtIfData{
		Cond: cond, BindName: bindName, Then: then, Else: elseStmt,
	}), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	p.advance() // 'while'
	cond, _, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	body := p.parseBlock()
	return p.b.Stmts.NewWhile(start.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	p.advance() // 'for'
	elemName, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	indexName := source.NoStringID
	if p.at(token.Comma) {
		p.advance()
		n, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		indexName = n
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in for statement"); !ok {
		return ast.NoStmtID, false
	}
	saved := p.noStructLit
	p.noStructLit = true
	iterable, ok := p.parseExpr()
	p.noStructLit = saved
	if !ok {
		return ast.NoStmtID, false
	}
	body := p.parseBlock()
	return p.b.Stmts.NewFor(start.Cover(p.lastSpan), ast.StmtForData{
		ElemName: elemName, IndexName: indexName, Iterable: iterable, Body: body,
	}), true
}

func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	start := p.cur.Span
	p.advance() // 'switch'
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'switch'"); !ok {
		return ast.NoStmtID, false
	}
	saved := p.noStructLit
	p.noStructLit = true
	scrutinee, ok := p.parseExpr()
	p.noStructLit = saved
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after switch scrutinee"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' for switch body"); !ok {
		return ast.NoStmtID, false
	}

	var cases []ast.SwitchCase
	elseBody := ast.NoStmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwElse) {
			p.advance()
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'else'"); !ok {
				p.resyncUntil(token.RBrace, token.Semicolon)
				continue
			}
			body, ok := p.parseStmt()
			if !ok {
				p.resyncUntil(token.RBrace, token.Semicolon)
				continue
			}
			elseBody = body
			continue
		}
		value, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace, token.Colon, token.Semicolon)
			continue
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after switch case value"); !ok {
			p.resyncUntil(token.RBrace, token.Semicolon)
			continue
		}
		body, ok := p.parseStmt()
		if !ok {
			p.resyncUntil(token.RBrace, token.Semicolon)
			continue
		}
		cases = append(cases, ast.SwitchCase{Value: value, Body: body})
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch body"); !ok {
		return ast.NoStmtID, false
	}
	if elseBody == ast.NoStmtID {
		p.report(diag.SemaSwitchNotExhaustive, diag.SevError, start.Cover(p.lastSpan), "switch is missing an 'else' prong")
	}
	return p.b.Stmts.NewSwitch(start.Cover(p.lastSpan), scrutinee, cases, elseBody), true
}
