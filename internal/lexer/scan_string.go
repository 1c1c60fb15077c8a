package lexer

import (
	"guardc/internal/diag"
	"guardc/internal/token"
)

// scanString reads a "..." literal. Escapes are not interpreted: a backslash
// only protects the byte after it. Strings may not span lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		switch lx.cursor.Bump() {
		case '"':
			return lx.tokenFrom(token.StringLit, start)
		case '\\':
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		}
	}
	msg := "unterminated string literal"
	if !lx.cursor.EOF() {
		msg = "newline in string literal"
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, msg)
	return tok
}
