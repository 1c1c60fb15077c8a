package ast

import "guardc/internal/source"

// ClassItem groups member functions under a class name.
type ClassItem struct {
	Name     source.StringID
	NameSpan source.Span
	Members  []ItemID
	Span     source.Span
}

func (i *Items) Class(id ItemID) (*ClassItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemClass {
		return nil, false
	}
	cls := i.Classes.Get(uint32(item.Payload))
	return cls, cls != nil
}

// NewClass allocates an empty class; members are attached with AddMember.
func (i *Items) NewClass(name source.StringID, nameSpan, span source.Span) ItemID {
	payload := i.Classes.Allocate(ClassItem{Name: name, NameSpan: nameSpan, Span: span})
	return i.New(ItemClass, span, PayloadID(payload))
}

// AddMember appends a member function to a class item.
func (i *Items) AddMember(class, member ItemID) {
	cls, ok := i.Class(class)
	if !ok {
		return
	}
	cls.Members = append(cls.Members, member)
}

// SetSpan updates the span of an item and its payload once parsing finished.
func (i *Items) SetSpan(id ItemID, span source.Span) {
	item := i.Arena.Get(uint32(id))
	if item == nil {
		return
	}
	item.Span = span
	switch item.Kind {
	case ItemFn:
		if fn := i.Fns.Get(uint32(item.Payload)); fn != nil {
			fn.Span = span
		}
	case ItemClass:
		if cls := i.Classes.Get(uint32(item.Payload)); cls != nil {
			cls.Span = span
		}
	}
}
