package lexer

import (
	"guardc/internal/diag"
	"guardc/internal/token"
)

// двухсимвольные операторы проверяются раньше односимвольных
var pairOps = map[[2]byte]token.Kind{
	{'-', '>'}: token.Arrow,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
}

var singleOps = [128]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, found := pairOps[[2]byte{b0, b1}]; found {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = k
		}
	}
	var ch byte
	if kind == token.Invalid {
		ch = lx.cursor.Bump()
		if int(ch) < len(singleOps) {
			kind = singleOps[ch]
		}
	}

	tok := lx.tokenFrom(kind, start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteRune(rune(ch)))
	}
	return tok
}
