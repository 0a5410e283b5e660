package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/token"
)

var typeArgBuiltins = map[string]ast.BuiltinKind{
	"sizeof":       ast.BuiltinSizeof,
	"min_value":    ast.BuiltinMinValue,
	"max_value":    ast.BuiltinMaxValue,
	"member_count": ast.BuiltinMemberCount,
}

var exprArgBuiltins = map[string]ast.BuiltinKind{
	"typeof":              ast.BuiltinTypeof,
	"add_with_overflow":   ast.BuiltinAddWithOverflow,
	"sub_with_overflow":   ast.BuiltinSubWithOverflow,
	"mul_with_overflow":   ast.BuiltinMulWithOverflow,
	"memcpy":              ast.BuiltinMemcpy,
	"memset":              ast.BuiltinMemset,
	"c_include":           ast.BuiltinCInclude,
	"c_define":            ast.BuiltinCDefine,
	"c_undef":             ast.BuiltinCUndef,
}

// parseBuiltinCall parses "@name(args)". Builtins taking a type (sizeof,
// min_value, max_value, member_count) parse their argument as a type;
// everything else parses a comma-separated expression list.
func (p *Parser) parseBuiltinCall() (ast.ExprID, bool) {
	start := p.cur.Span
	p.advance() // '@'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a builtin name after '@'")
	if !ok {
		return ast.NoExprID, false
	}
	name := nameTok.Text

	if kind, isType := typeArgBuiltins[name]; isType {
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after builtin name"); !ok {
			return ast.NoExprID, false
		}
		typ, ok := p.parseType()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after builtin type argument"); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewBuiltinCall(start.Cover(p.lastSpan), kind, []ast.TypeID{typ}, nil), true
	}

	kind, ok := exprArgBuiltins[name]
	if !ok {
		p.err(diag.SynUnexpectedToken, "unknown builtin '@"+name+"'")
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after builtin name"); !ok {
		return ast.NoExprID, false
	}
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RParen, token.Semicolon)
			break
		}
		args = append(args, e)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after builtin arguments"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBuiltinCall(start.Cover(p.lastSpan), kind, nil, args), true
}
