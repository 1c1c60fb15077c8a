package parser

import (
	"fmt"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/token"
)

// parseClassItem разбирает `class NAME { fnDecl* }`. Методы попадают в
// Members класса, а не в список items файла.
func (p *Parser) parseClassItem() (ast.ItemID, bool) {
	classTok := p.advance() // class

	name, nameTok, ok := p.parseIdent("class name")
	if !ok {
		return ast.NoItemID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after class name")
	if !ok {
		return ast.NoItemID, false
	}

	classID := p.arenas.Items.NewClass(name, nameTok.Span, classTok.Span.Cover(open.Span))
	for {
		switch p.lx.Peek().Kind {
		case token.RBrace:
			p.advance()
			p.arenas.Items.SetSpan(classID, classTok.Span.Cover(p.lastSpan))
			return classID, true

		case token.EOF, token.KwClass:
			p.report(diag.SynUnclosedBrace, diag.SevError, open.Span,
				fmt.Sprintf("class %s is missing its closing '}'", nameTok.Text))
			p.arenas.Items.SetSpan(classID, classTok.Span.Cover(p.lastSpan))
			return classID, true

		case token.KwFn:
			member, ok := p.parseFnItem(classID)
			if !ok {
				p.resyncUntil(token.KwFn, token.RBrace, token.KwClass)
				continue
			}
			p.arenas.Items.AddMember(classID, member)

		default:
			tok := p.advance()
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span,
				fmt.Sprintf("unexpected %q in class body, expected 'fn' or '}'", tok.Text))
			p.resyncUntil(token.KwFn, token.RBrace, token.KwClass)
		}
	}
}
