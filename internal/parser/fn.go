package parser

import (
	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/token"
)

// parseFnItem разбирает
//
//	fn NAME '(' [param {',' param}] ')' (block | ';')
//
// owner - класс-владелец или ast.NoItemID.
func (p *Parser) parseFnItem(owner ast.ItemID) (ast.ItemID, bool) {
	fnTok := p.advance() // fn

	name, nameTok, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}

	hasBody := false
	switch {
	case p.at(token.LBrace):
		if !p.skipBlock() {
			return ast.NoItemID, false
		}
		hasBody = true
	case p.at(token.Semicolon):
		p.advance()
	default:
		p.err(diag.SynExpectBody, "expected function body or ';'")
		return ast.NoItemID, false
	}

	span := fnTok.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewFn(name, nameTok.Span, params, owner, hasBody, span), true
}

// parseFnParams разбирает параметры после '(' включая закрывающую ')'.
func (p *Parser) parseFnParams() ([]ast.FnParamID, bool) {
	var params []ast.FnParamID
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		name, nameTok, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		guard := ast.NoExprID
		if p.at(token.KwWhen) {
			p.advance()
			guard, ok = p.parseExpr()
			if !ok {
				return nil, false
			}
		}
		span := nameTok.Span.Cover(p.lastSpan)
		params = append(params, p.arenas.Items.NewFnParam(name, guard, span))

		switch {
		case p.at(token.Comma):
			p.advance()
		case p.at(token.RParen):
			p.advance()
			return params, true
		default:
			p.err(diag.SynUnclosedParen, "expected ',' or ')' in parameter list")
			return nil, false
		}
	}
}

// skipBlock пропускает сбалансированное тело { ... }; тела не анализируются.
func (p *Parser) skipBlock() bool {
	open := p.advance() // {
	depth := 1
	for depth > 0 {
		switch p.lx.Peek().Kind {
		case token.EOF:
			p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed '{' in function body")
			return false
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.advance()
	}
	return true
}
