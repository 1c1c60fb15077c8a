package lexer

import (
	"guardc/internal/diag"
	"guardc/internal/token"
)

// scanNumber: 0, 123, 1_000, 0b..., 0o..., 0x.... Значение декодирует парсер.
// Буквы и цифры, приклеенные к числу (12ab, 0b12), дают LexBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digit := isDec
	prefixed := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'b', 'B':
			digit, prefixed = func(b byte) bool { return b == '0' || b == '1' }, true
		case 'o', 'O':
			digit, prefixed = func(b byte) bool { return b >= '0' && b <= '7' }, true
		case 'x', 'X':
			digit, prefixed = isHex, true
		}
		if prefixed {
			lx.cursor.Bump()
			lx.cursor.Bump()
		}
	}

	digits := 0
	for {
		b := lx.cursor.Peek()
		if digit(b) {
			digits++
			lx.cursor.Bump()
			continue
		}
		if b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}

	bad := prefixed && digits == 0
	for isIdentContinueByte(lx.cursor.Peek()) {
		bad = true
		lx.cursor.Bump()
	}

	if bad {
		tok := lx.tokenFrom(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "malformed number literal "+tok.Text)
		return tok
	}
	return lx.tokenFrom(token.IntLit, start)
}
