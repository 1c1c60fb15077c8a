package guard

import (
	"guardc/internal/ast"
)

// Collector builds function groups from one compilation unit.
// It keeps groups in discovery order.
type Collector struct {
	groups []*FunctionGroup
	index  map[GroupKey]*FunctionGroup
}

func NewCollector() *Collector {
	return &Collector{index: make(map[GroupKey]*FunctionGroup)}
}

// Reset drops every group collected so far.
func (c *Collector) Reset() {
	c.groups = c.groups[:0]
	clear(c.index)
}

// Collect resets the collector and walks top-level functions and class
// members of file.
func (c *Collector) Collect(b *ast.Builder, file ast.FileID) []*FunctionGroup {
	c.Reset()
	if b == nil {
		return nil
	}
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	for _, itemID := range f.Items {
		item := b.Items.Get(itemID)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemFn:
			fn, ok := b.Items.Fn(itemID)
			if !ok {
				continue
			}
			c.add(b, b.Name(fn.Name), itemID, fn)
		case ast.ItemClass:
			cls, ok := b.Items.Class(itemID)
			if !ok {
				continue
			}
			prefix := b.Name(cls.Name) + "."
			for _, member := range cls.Members {
				fn, ok := b.Items.Fn(member)
				if !ok {
					continue
				}
				c.add(b, prefix+b.Name(fn.Name), member, fn)
			}
		}
	}
	return c.Groups()
}

// Groups returns the collected groups in discovery order.
func (c *Collector) Groups() []*FunctionGroup {
	out := make([]*FunctionGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

func (c *Collector) add(b *ast.Builder, name string, itemID ast.ItemID, fn *ast.FnItem) {
	key := GroupKey{Name: name, Arity: len(fn.Params)}
	g, ok := c.index[key]
	if !ok {
		g = &FunctionGroup{Key: key}
		c.index[key] = g
		c.groups = append(c.groups, g)
	}
	ov := &Overload{
		Index:  len(g.Overloads),
		Item:   itemID,
		Params: make([]Param, 0, len(fn.Params)),
		Span:   fn.Span,
	}
	for _, pid := range fn.Params {
		p := b.Items.FnParam(pid)
		if p == nil {
			ov.Params = append(ov.Params, Param{Name: "_"})
			continue
		}
		ov.Params = append(ov.Params, Param{Name: b.Name(p.Name), Guard: p.Guard, Span: p.Span})
	}
	g.Overloads = append(g.Overloads, ov)
}
