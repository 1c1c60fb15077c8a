package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.file.Content[lx.cursor.Off:]
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	for range size {
		lx.cursor.Bump()
	}
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	lower := b | 0x20
	return isDec(b) || ('a' <= lower && lower <= 'f')
}

func isIdentStartByte(b byte) bool {
	lower := b | 0x20
	return b == '_' || ('a' <= lower && lower <= 'z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

// Unicode-идентификаторы: буквы, цифры и комбинируемые знаки (Mn) после первой буквы.
func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// try2 consumes a and b if they are the next two bytes.
func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == a && b1 == b {
		lx.cursor.Off += 2
		return true
	}
	return false
}
