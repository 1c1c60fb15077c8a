package ast

import "guardc/internal/source"

// FnItem is one function declaration: one overload of its (name, arity) group.
type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []FnParamID
	Owner    ItemID // enclosing class, NoItemID for top-level functions
	HasBody  bool
	Span     source.Span
}

// FnParam is a parameter with an optional guard predicate.
type FnParam struct {
	Name  source.StringID
	Guard ExprID // NoExprID when the parameter is unconstrained
	Span  source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	fn := i.Fns.Get(uint32(item.Payload))
	return fn, fn != nil
}

// NewFnParam allocates a parameter; guard may be NoExprID.
func (i *Items) NewFnParam(name source.StringID, guard ExprID, span source.Span) FnParamID {
	return FnParamID(i.FnParams.Allocate(FnParam{Name: name, Guard: guard, Span: span}))
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}

// NewFn allocates a function item owned by owner (NoItemID for top level).
func (i *Items) NewFn(name source.StringID, nameSpan source.Span, params []FnParamID, owner ItemID, hasBody bool, span source.Span) ItemID {
	payload := i.Fns.Allocate(FnItem{
		Name:     name,
		NameSpan: nameSpan,
		Params:   append([]FnParamID(nil), params...),
		Owner:    owner,
		HasBody:  hasBody,
		Span:     span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}

// HasGuards reports whether any parameter of fn carries a guard.
func (i *Items) HasGuards(fn *FnItem) bool {
	if fn == nil {
		return false
	}
	for _, pid := range fn.Params {
		if p := i.FnParam(pid); p != nil && p.Guard.IsValid() {
			return true
		}
	}
	return false
}
