package parser

import (
	"fmt"
	"strings"
	"testing"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/source"
	"guardc/internal/testkit"
)

type parsed struct {
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
	res  Result
	sf   *source.File
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.gd", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := ParseFile(sf, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{b: b, file: res.File, bag: bag, res: res, sf: sf}
}

// mustParse fails the test on any diagnostic and checks span invariants.
func mustParse(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	if err := testkit.CheckSpanInvariants(p.b, p.file, p.sf); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// fnAt returns the n-th top-level item as a fn.
func (p parsed) fnAt(t *testing.T, n int) *ast.FnItem {
	t.Helper()
	f := p.b.Files.Get(p.file)
	if n >= len(f.Items) {
		t.Fatalf("item %d out of range (%d items)", n, len(f.Items))
	}
	fn, ok := p.b.Items.Fn(f.Items[n])
	if !ok {
		t.Fatalf("item %d is not a fn", n)
	}
	return fn
}

// guardOf renders the guard of parameter i of fn.
func (p parsed) guardOf(fn *ast.FnItem, i int) string {
	param := p.b.Items.FnParam(fn.Params[i])
	if !param.Guard.IsValid() {
		return ""
	}
	return p.b.FormatExpr(param.Guard)
}
