package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"guardc/internal/diag"
	"guardc/internal/token"
)

// scanIdentOrKeyword сканирует Ident и проверяет через LookupKeyword.
// Text идентификатора приводится к NFC, чтобы "é" в двух кодировках
// давал одно и то же имя параметра.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		tok := lx.tokenFrom(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteRune(r))
		return tok
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
