package token_test

import (
	"testing"

	"guardc/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want token.Kind
		ok   bool
	}{
		{"fn", token.KwFn, true},
		{"class", token.KwClass, true},
		{"when", token.KwWhen, true},
		{"true", token.KwTrue, true},
		{"false", token.KwFalse, true},
		{"Fn", 0, false},
		{"whenever", 0, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPredicates(t *testing.T) {
	tok := func(k token.Kind) token.Token { return token.Token{Kind: k} }

	for _, k := range []token.Kind{token.IntLit, token.StringLit, token.KwTrue, token.KwFalse} {
		if !tok(k).IsLiteral() {
			t.Errorf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq} {
		if !tok(k).IsComparison() {
			t.Errorf("%v should be comparison", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.AndAnd, token.Assign} {
		if tok(k).IsComparison() {
			t.Errorf("%v must NOT be comparison", k)
		}
	}
	if !tok(token.KwWhen).IsKeyword() || tok(token.Ident).IsKeyword() {
		t.Error("IsKeyword misclassifies when/ident")
	}
}

func TestKindString(t *testing.T) {
	if got := token.GtEq.String(); got != ">=" {
		t.Errorf("GtEq.String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("unknown kind = %q", got)
	}
}
