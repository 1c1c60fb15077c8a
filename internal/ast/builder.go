package ast

import (
	"guardc/internal/source"
)

type Hints struct{ Files, Items, Exprs uint }

// Builder owns every arena of one compilation unit.
type Builder struct {
	Files   *Files
	Items   *Items
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Items:   NewItems(hints.Items),
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushItem appends a top-level item to file.
func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	f.Items = append(f.Items, item)
}

// Name resolves an interned identifier; unknown ids render as "_".
func (b *Builder) Name(id source.StringID) string {
	if b == nil || b.Strings == nil {
		return "_"
	}
	if s, ok := b.Strings.Lookup(id); ok && s != "" {
		return s
	}
	return "_"
}
