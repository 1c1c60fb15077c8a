package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/lexer"
	"guardc/internal/source"
	"guardc/internal/token"
)

type Options struct {
	MaxErrors     uint // 0 - без лимита
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint // число синтаксических ошибок (включая отброшенные лимитом)
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile разбирает один .gd файл в arenas. Лексические ошибки идут в тот же Reporter.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	fileSpan := source.Span{File: file.ID, Start: 0, End: end}

	p := Parser{
		lx:       lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		arenas:   arenas,
		file:     arenas.NewFile(fileSpan),
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	p.parseItems()
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOneOf(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems - основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwFn:
		return p.parseFnItem(ast.NoItemID)
	case token.KwClass:
		return p.parseClassItem()
	default:
		tok := p.advance()
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span,
			fmt.Sprintf("unexpected %q at top level, expected 'fn' or 'class'", tok.Text))
		return ast.NoItemID, false
	}
}

// resyncTop - прокручиваем до стартового токена следующего item или EOF.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.KwFn, token.KwClass)
}

// parseIdent ожидает Ident и интернирует его.
func (p *Parser) parseIdent(what string) (source.StringID, token.Token, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Strings.Intern(tok.Text), tok, true
	}
	p.err(diag.SynExpectIdentifier, fmt.Sprintf("expected %s, got %q", what, p.lx.Peek().Text))
	return source.NoStringID, token.Token{}, false
}
