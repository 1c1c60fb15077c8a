package guard

import (
	"fmt"

	"guardc/internal/ast"
	"guardc/internal/source"
)

// Param is one parameter of an overload as seen by the analysis.
type Param struct {
	Name  string
	Guard ast.ExprID // ast.NoExprID when unconstrained
	Span  source.Span
}

// Overload is one declaration of a function group.
type Overload struct {
	Index  int // 0-based position in declaration order
	Item   ast.ItemID
	Params []Param
	Span   source.Span
}

// Ordinal is the 1-based index used in messages.
func (o *Overload) Ordinal() int { return o.Index + 1 }

// HasGuard reports whether any parameter carries a guard.
func (o *Overload) HasGuard() bool {
	for _, p := range o.Params {
		if p.Guard.IsValid() {
			return true
		}
	}
	return false
}

// GroupKey identifies a function group.
type GroupKey struct {
	Name  string // "name" or "Class.name" for methods
	Arity int
}

func (k GroupKey) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

// FunctionGroup holds the overloads sharing one GroupKey in declaration order.
type FunctionGroup struct {
	Key       GroupKey
	Overloads []*Overload
}

// Guarded reports whether at least one overload has a guard.
func (g *FunctionGroup) Guarded() bool {
	for _, o := range g.Overloads {
		if o.HasGuard() {
			return true
		}
	}
	return false
}

// Len returns the number of overloads.
func (g *FunctionGroup) Len() int { return len(g.Overloads) }
