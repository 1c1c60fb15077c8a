package lexer

import (
	"guardc/internal/diag"
	"guardc/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт - репорт)
func (lx *Lexer) collectLeadingTrivia() {
	lx.pending = lx.pending[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.try2('/', '/'):
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaLineComment, start)
		case lx.try2('/', '*'):
			closed := false
			for !lx.cursor.EOF() {
				if lx.try2('*', '/') {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			lx.pushTrivia(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.pending = append(lx.pending, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
