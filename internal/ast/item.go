package ast

import (
	"guardc/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemClass
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
	Classes  *Arena[ClassItem]
}

// NewItems creates per-kind arenas; capHint 0 falls back to 1<<6.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint * 2),
		Classes:  NewArena[ClassItem](capHint / 4),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}
