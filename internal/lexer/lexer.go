package lexer

import (
	"unicode/utf8"

	"guardc/internal/source"
	"guardc/internal/token"
)

// Lexer turns one file into tokens. Comments and whitespace are attached to
// the following token as Leading trivia.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	peeked  *token.Token
	pending []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. Once EOF is reached every call
// returns EOF again.
func (lx *Lexer) Next() token.Token {
	if t := lx.peeked; t != nil {
		lx.peeked = nil
		return *t
	}
	lx.collectLeadingTrivia()

	tok := lx.scan()
	tok.Leading, lx.pending = lx.pending, nil
	return tok
}

func (lx *Lexer) scan() token.Token {
	if lx.cursor.EOF() {
		at := lx.cursor.Mark()
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(at)}
	}
	switch ch := lx.cursor.Peek(); {
	case ch >= utf8.RuneSelf || isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.peeked == nil {
		t := lx.Next()
		lx.peeked = &t
	}
	return *lx.peeked
}

// All drains the lexer; the last element is EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// tokenFrom builds a token of kind covering everything read since start.
func (lx *Lexer) tokenFrom(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
