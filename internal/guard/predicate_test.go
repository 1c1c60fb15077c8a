package guard

import (
	"testing"

	"guardc/internal/interval"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		guard string
		typ   PredicateType
		desc  string
	}{
		{"", PredicateBase, "always"},
		{"y > 0", PredicateAnalyzable, "y > 0"},
		{"y >= 1 && y <= 9", PredicateAnalyzable, "y >= 1 && y <= 9"},
		{"(y > 1) && (y < 5)", PredicateAnalyzable, "y > 1 && y < 5"},
		{"y > 1 && (y < 5 && y != 7)", PredicateUnknown, "opaque"},
		{"y == true", PredicateAnalyzable, "y == true"},
		{"y == false", PredicateAnalyzable, "y == false"},
		{"y < -3", PredicateAnalyzable, "y < -3"},
		{"y > -(3)", PredicateAnalyzable, "y > -3"},
		{"x > 0", PredicateAnalyzable, "x > 0"},
		{"y > 0 || y < -5", PredicateUnknown, "opaque"},
		{"!(y > 0)", PredicateUnknown, "opaque"},
		{"y > x", PredicateUnknown, "opaque"},
		{"0 < y", PredicateUnknown, "opaque"},
		{"y != 0", PredicateUnknown, "opaque"},
		{"y > 0 && x > 0", PredicateUnknown, "opaque"},
		{"z > 0", PredicateUnknown, "opaque"},
		{"is_prime(y)", PredicateUnknown, "opaque"},
		{"y + 1 > 0", PredicateUnknown, "opaque"},
		{"y > 99999999999999999999", PredicateUnknown, "opaque"},
		{"y", PredicateUnknown, "opaque"},
		{"true", PredicateUnknown, "opaque"},
	}
	for _, tt := range tests {
		t.Run(tt.guard, func(t *testing.T) {
			src := "fn f(x, y) {}"
			if tt.guard != "" {
				src = "fn f(x, y when " + tt.guard + ") {}"
			}
			u := parseUnit(t, src)
			groups := NewCollector().Collect(u.b, u.file)
			if len(groups) != 1 || groups[0].Len() != 1 {
				t.Fatalf("unexpected groups: %v", groups)
			}
			d := NewNormalizer(u.b).Classify(groups[0].Overloads[0])
			if d.Type != tt.typ {
				t.Fatalf("type = %v, want %v", d.Type, tt.typ)
			}
			if got := d.String(); got != tt.desc {
				t.Errorf("descriptor = %q, want %q", got, tt.desc)
			}
		})
	}
}

func TestClassifyGuardsOnSeveralParams(t *testing.T) {
	u := parseUnit(t, `
fn f(x when x > 0, y when x < 10) {}
fn f(x when x > 0, y when y < 10) {}
`)
	g := NewCollector().Collect(u.b, u.file)[0]
	n := NewNormalizer(u.b)

	same := n.Classify(g.Overloads[0])
	if same.Type != PredicateAnalyzable || same.Param() != 0 {
		t.Fatalf("guards on one variable must combine: %v (param %d)", same, same.Param())
	}
	if mixed := n.Classify(g.Overloads[1]); mixed.Type != PredicateUnknown {
		t.Fatalf("two variables must be Unknown, got %v", mixed.Type)
	}
}

func TestDeriveInterval(t *testing.T) {
	tests := []struct {
		name  string
		atoms []Atom
		want  string
		ok    bool
		empty bool
	}{
		{"none", nil, "(-inf, +inf)", false, false},
		{"single", []Atom{{Op: interval.OpGT, Literal: 3}}, "(3, +inf)", true, false},
		{"range", []Atom{{Op: interval.OpGE, Literal: 1}, {Op: interval.OpLT, Literal: 10}}, "[1, 10)", true, false},
		{"contradiction", []Atom{{Op: interval.OpGT, Literal: 5}, {Op: interval.OpLE, Literal: 5}}, "(5, 5]", true, true},
		{"bool true", []Atom{{Op: interval.OpEQ, Literal: 1, IsBool: true}}, "[1, 1]", true, false},
		{"two params", []Atom{{Param: 0, Op: interval.OpGT}, {Param: 1, Op: interval.OpGT}}, "(-inf, +inf)", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, ok := DeriveInterval(tt.atoms)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got := iv.String(); got != tt.want {
				t.Errorf("interval = %s, want %s", got, tt.want)
			}
			if iv.IsEmpty() != tt.empty {
				t.Errorf("empty = %v, want %v", iv.IsEmpty(), tt.empty)
			}
		})
	}
}
