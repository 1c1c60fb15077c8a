package guard

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/parser"
	"guardc/internal/source"
)

type unit struct {
	b    *ast.Builder
	file ast.FileID
}

func parseUnit(t *testing.T, src string) unit {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("unit.gd", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := parser.ParseFile(sf, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return unit{b: b, file: res.File}
}

// validate parses src and returns the diagnostics of one Validate run.
func validate(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	u := parseUnit(t, src)
	return NewValidator(Options{}).Validate(context.Background(), u.b, u.file)
}

// summarize renders diagnostics as "W1002 [2 1]"; notes get a "note " prefix.
func summarize(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		prefix := ""
		if d.IsNote() {
			prefix = "note "
		}
		out = append(out, fmt.Sprintf("%s%s %v", prefix, d.Code.ID(), d.Overloads))
	}
	return out
}

// overloads builds one fn declaration per guard; "" means unguarded.
func overloads(name string, guards ...string) string {
	var sb strings.Builder
	for _, g := range guards {
		if g == "" {
			fmt.Fprintf(&sb, "fn %s(x) {}\n", name)
			continue
		}
		fmt.Fprintf(&sb, "fn %s(x when %s) {}\n", name, g)
	}
	return sb.String()
}

func countCode(diags []diag.Diagnostic, code diag.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code && !d.IsNote() {
			n++
		}
	}
	return n
}
