package parser

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/source"
)

func TestParseTopLevelFns(t *testing.T) {
	p := mustParse(t, `
// classify a number
fn classify(x when x > 0) { return 1 }
fn classify(x when x == 0);
fn classify(x) { { nested } }
fn pair(a, b when b <= 10 && b >= -3) {}
`)
	f := p.b.Files.Get(p.file)
	if len(f.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(f.Items))
	}

	first := p.fnAt(t, 0)
	if got := p.b.Name(first.Name); got != "classify" {
		t.Errorf("name = %q", got)
	}
	if !first.HasBody {
		t.Error("first fn must have a body")
	}
	if p.fnAt(t, 1).HasBody {
		t.Error("fn ending with ';' has no body")
	}
	if got := p.guardOf(first, 0); got != "x > 0" {
		t.Errorf("guard = %q", got)
	}
	if got := p.guardOf(p.fnAt(t, 2), 0); got != "" {
		t.Errorf("unguarded param has guard %q", got)
	}

	pair := p.fnAt(t, 3)
	if len(pair.Params) != 2 {
		t.Fatalf("pair params = %d", len(pair.Params))
	}
	if got := p.guardOf(pair, 1); got != "b <= 10 && b >= -3" {
		t.Errorf("pair guard = %q", got)
	}
}

func TestParseClass(t *testing.T) {
	p := mustParse(t, `
class Shape {
    fn area(kind when kind == 1) {}
    fn area(kind) {}
}
fn area(kind) {}
`)
	f := p.b.Files.Get(p.file)
	if len(f.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(f.Items))
	}
	cls, ok := p.b.Items.Class(f.Items[0])
	if !ok {
		t.Fatal("first item is not a class")
	}
	if p.b.Name(cls.Name) != "Shape" || len(cls.Members) != 2 {
		t.Fatalf("class = %s with %d members", p.b.Name(cls.Name), len(cls.Members))
	}
	member, _ := p.b.Items.Fn(cls.Members[0])
	if member.Owner != f.Items[0] {
		t.Errorf("member owner = %d, want %d", member.Owner, f.Items[0])
	}
	if top := p.fnAt(t, 1); top.Owner.IsValid() {
		t.Error("top-level fn must not have an owner")
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		guard string
		want  string
	}{
		{"x > 0", "x > 0"},
		{"x >= 1 && x < 10 && x != 5", "x >= 1 && x < 10 && x != 5"},
		{"x < 0 || x > 10", "x < 0 || x > 10"},
		{"!(x == 1)", "!(x == 1)"},
		{"x + 1 > 2 * 3", "x + 1 > 2 * 3"},
		{"is_prime(x)", "is_prime(x)"},
		{"p == true", "p == true"},
		{"x > -(4)", "x > -(4)"},
	}
	for _, tt := range tests {
		t.Run(tt.guard, func(t *testing.T) {
			p := mustParse(t, "fn f(x, p when "+tt.guard+") {}")
			if got := p.guardOf(p.fnAt(t, 0), 1); got != tt.want {
				t.Errorf("guard = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	p := mustParse(t, "fn f(x when x > 1 || x < 0 && x == 5) {}")
	param := p.b.Items.FnParam(p.fnAt(t, 0).Params[0])
	root, ok := p.b.Exprs.Binary(param.Guard)
	if !ok || root.Op != ast.ExprBinaryLogicalOr {
		t.Fatalf("root op must be ||, got %+v", root)
	}
	right, ok := p.b.Exprs.Binary(root.Right)
	if !ok || right.Op != ast.ExprBinaryLogicalAnd {
		t.Fatalf("&& must bind tighter than ||")
	}
}

func TestParseIntLiterals(t *testing.T) {
	tests := []struct {
		lit   string
		value int64
		valid bool
	}{
		{"42", 42, true},
		{"-7", -7, true},
		{"1_000", 1000, true},
		{"0x10", 16, true},
		{"0b101", 5, true},
		{"0o17", 15, true},
		{"017", 17, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"-9223372036854775808", math.MinInt64, true},
		{"9223372036854775808", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			p := mustParse(t, "fn f(x when x == "+tt.lit+") {}")
			param := p.b.Items.FnParam(p.fnAt(t, 0).Params[0])
			cmpExpr, _ := p.b.Exprs.Binary(param.Guard)
			lit, ok := p.b.Exprs.Literal(cmpExpr.Right)
			if !ok {
				t.Fatalf("right side is not a literal")
			}
			if lit.Valid != tt.valid || (tt.valid && lit.Value != tt.value) {
				t.Fatalf("literal = %d (valid=%v), want %d (valid=%v)", lit.Value, lit.Valid, tt.value, tt.valid)
			}
		})
	}
}

func TestParseErrorsAndRecovery(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		codes     []diag.Code
		wantItems int
	}{
		{
			name:      "missing body",
			src:       "fn f(x)\nfn g(y) {}",
			codes:     []diag.Code{diag.SynExpectBody},
			wantItems: 1,
		},
		{
			name:      "missing expression",
			src:       "fn f(x when ) {}\nfn f(x) {}",
			codes:     []diag.Code{diag.SynExpectExpression},
			wantItems: 1,
		},
		{
			name:      "junk at top level",
			src:       "let x = 1\nfn f(x) {}",
			codes:     []diag.Code{diag.SynUnexpectedTopLevel},
			wantItems: 1,
		},
		{
			name:      "unclosed body",
			src:       "fn f(x) {\nfn g(x) {}",
			codes:     []diag.Code{diag.SynUnclosedBrace},
			wantItems: 0,
		},
		{
			name:      "missing fn name",
			src:       "fn (x) {}\nfn g(x) {}",
			codes:     []diag.Code{diag.SynExpectIdentifier},
			wantItems: 1,
		},
		{
			name:      "bad param separator",
			src:       "fn f(x y) {}\nfn g() {}",
			codes:     []diag.Code{diag.SynUnclosedParen},
			wantItems: 1,
		},
		{
			name:      "unclosed class",
			src:       "class A {\n fn m(x) {}\nclass B { }",
			codes:     []diag.Code{diag.SynUnclosedBrace},
			wantItems: 2,
		},
		{
			name:      "junk in class",
			src:       "class A { x fn m(x) {} }",
			codes:     []diag.Code{diag.SynUnexpectedToken},
			wantItems: 1,
		},
		{
			name:      "lexical error inside body",
			src:       "fn f(x) { # }",
			codes:     []diag.Code{diag.LexUnknownChar},
			wantItems: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			var got []diag.Code
			for _, d := range p.bag.Items() {
				got = append(got, d.Code)
			}
			if diff := cmp.Diff(tt.codes, got); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s\n%s", diff, diagnosticsSummary(p.bag))
			}
			if n := len(p.b.Files.Get(p.file).Items); n != tt.wantItems {
				t.Fatalf("items = %d, want %d", n, tt.wantItems)
			}
		})
	}
}

func TestParseMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("max.gd", []byte("fn 1 fn 2 fn 3 fn ok(x) {}")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := ParseFile(sf, b, Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})

	if res.Errors != 3 {
		t.Fatalf("errors = %d, want 3", res.Errors)
	}
	if bag.Len() != 2 {
		t.Fatalf("reported = %d, want 2 (%s)", bag.Len(), diagnosticsSummary(bag))
	}
	if n := len(b.Files.Get(res.File).Items); n != 1 {
		t.Fatalf("items = %d, want 1", n)
	}
}
