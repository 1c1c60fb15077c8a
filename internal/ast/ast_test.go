package ast

import (
	"testing"

	"guardc/internal/source"
)

func TestArenaZeroIsAbsent(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be absent")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 {
		t.Fatalf("Allocate returned %d", id)
	}
	if a.Get(2) != nil {
		t.Fatal("out-of-range index must be absent")
	}
}

func TestBuilderFnAndClass(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	file := b.NewFile(source.Span{End: 40})

	x := b.Strings.Intern("x")
	lit := b.Exprs.NewIntLiteral(source.Span{}, b.Strings.Intern("0"), 0, true)
	ref := b.Exprs.NewIdent(source.Span{}, x)
	guard := b.Exprs.NewBinary(source.Span{}, ExprBinaryGreater, ref, lit)
	guarded := b.Items.NewFnParam(x, guard, source.Span{})
	plain := b.Items.NewFnParam(x, NoExprID, source.Span{})

	cls := b.Items.NewClass(b.Strings.Intern("Shape"), source.Span{}, source.Span{})
	m1 := b.Items.NewFn(b.Strings.Intern("area"), source.Span{}, []FnParamID{guarded}, cls, true, source.Span{})
	m2 := b.Items.NewFn(b.Strings.Intern("area"), source.Span{}, []FnParamID{plain}, cls, true, source.Span{})
	b.Items.AddMember(cls, m1)
	b.Items.AddMember(cls, m2)
	b.PushItem(file, cls)

	c, ok := b.Items.Class(cls)
	if !ok || len(c.Members) != 2 {
		t.Fatalf("class members = %v", c)
	}
	fn1, _ := b.Items.Fn(m1)
	fn2, _ := b.Items.Fn(m2)
	if !b.Items.HasGuards(fn1) || b.Items.HasGuards(fn2) {
		t.Errorf("HasGuards mismatch")
	}
	if fn1.Owner != cls {
		t.Errorf("owner = %d, want %d", fn1.Owner, cls)
	}
	if _, ok := b.Items.Fn(cls); ok {
		t.Errorf("class item must not decode as fn")
	}
	if got := b.FormatExpr(guard); got != "x > 0" {
		t.Errorf("FormatExpr = %q", got)
	}
}

func TestFormatExprNested(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	p := b.Exprs.NewIdent(source.Span{}, b.Strings.Intern("p"))
	tr := b.Exprs.NewBoolLiteral(source.Span{}, b.Strings.Intern("true"), true)
	eq := b.Exprs.NewBinary(source.Span{}, ExprBinaryEq, p, tr)
	not := b.Exprs.NewUnary(source.Span{}, ExprUnaryNot, b.Exprs.NewGroup(source.Span{}, eq))
	if got := b.FormatExpr(not); got != "!(p == true)" {
		t.Errorf("FormatExpr = %q", got)
	}
	if got := b.FormatExpr(ExprID(999)); got != "<invalid>" {
		t.Errorf("FormatExpr(invalid) = %q", got)
	}
}
