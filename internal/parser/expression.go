package parser

import (
	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/source"
	"guardc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений guard'ов.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr - precedence climbing; minPrec - минимальный приоритет для текущего уровня.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(span, binaryOp(opTok.Kind), left, right)
	}
	return left, true
}

// parseUnaryExpr обрабатывает префиксы '!' и '-'. Минус прямо перед целым
// литералом сворачивается в отрицательный литерал.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	op, isUnary := unaryOp(tok.Kind)
	if !isUnary {
		return p.parsePrimaryExpr()
	}
	opTok := p.advance()

	if op == ast.ExprUnaryMinus && p.at(token.IntLit) {
		litTok := p.advance()
		return p.intLiteral(opTok.Span.Cover(litTok.Span), "-"+litTok.Text, litTok.Text, true), true
	}

	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.exprSpan(operand))
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.intLiteral(tok.Span, tok.Text, tok.Text, false), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		raw := p.arenas.Strings.Intern(tok.Text)
		return p.arenas.Exprs.NewBoolLiteral(tok.Span, raw, tok.Kind == token.KwTrue), true

	case token.Ident:
		p.advance()
		ident := p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text))
		if p.at(token.LParen) {
			return p.parseCallExpr(ident)
		}
		return ident, true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close '('")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parseCallExpr разбирает аргументы вызова target(...). Для анализа вызов непрозрачен.
func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // (
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call arguments")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(target).Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, target, args), true
}

func (p *Parser) intLiteral(span source.Span, raw, digits string, negative bool) ast.ExprID {
	value, valid := int64(0), false
	if mag, ok := decodeInt(digits); ok {
		value, valid = signedValue(mag, negative)
	}
	return p.arenas.Exprs.NewIntLiteral(span, p.arenas.Strings.Intern(raw), value, valid)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}
