package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"guardc/internal/source"
)

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		GuardIncomplete:       "E1001",
		GuardUnreachable:      "W1002",
		GuardBaseNotLast:      "E1004",
		GuardMultipleBase:     "E1005",
		GuardOverloadCount:    "W1101",
		GuardUnknownExplosion: "W1102",
		LexUnknownChar:        "LEX3001",
		SynUnexpectedToken:    "SYN4001",
		IOLoadFileError:       "IO5001",
		Code(9999):            "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
	if GuardUnreachable.Name() != "GUARD_UNREACHABLE" {
		t.Errorf("Name = %q", GuardUnreachable.Name())
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown title = %q", Code(9999).Title())
	}
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("Codes() not sorted at %d: %v", i, codes)
		}
	}
	if codes[0] != GuardIncomplete {
		t.Errorf("first code = %v", codes[0])
	}
}

func TestBagLimitAndSeverity(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, GuardUnreachable, source.Span{}, "a")) {
		t.Fatal("first add rejected")
	}
	bag.Add(New(SevInfo, GuardUnreachable, source.Span{}, "note"))
	if bag.Add(New(SevError, GuardIncomplete, source.Span{}, "c")) {
		t.Fatal("add beyond limit accepted")
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Errorf("HasErrors=%v HasWarnings=%v", bag.HasErrors(), bag.HasWarnings())
	}
	if bag.Count(GuardUnreachable) != 1 {
		t.Errorf("Count ignores notes, got %d", bag.Count(GuardUnreachable))
	}
}

func TestBagSortKeepsEmissionOrderWithinFile(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevError, GuardBaseNotLast, source.Span{File: 1, Start: 20}, "b1"))
	bag.Add(New(SevError, GuardIncomplete, source.Span{File: 1, Start: 0}, "b2"))
	bag.Add(New(SevError, GuardIncomplete, source.Span{File: 0, Start: 5}, "a"))
	bag.Sort()

	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff([]string{"a", "b1", "b2"}, got); diff != "" {
		t.Errorf("Sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestBagDropWarningsRemovesTheirNotes(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevWarning, GuardUnreachable, source.Span{}, "w"))
	bag.Add(New(SevInfo, GuardUnreachable, source.Span{}, "w-note"))
	bag.Add(New(SevError, GuardBaseNotLast, source.Span{}, "e"))
	bag.Add(New(SevInfo, GuardBaseNotLast, source.Span{}, "e-note"))
	bag.DropWarnings()

	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff([]string{"e", "e-note"}, got); diff != "" {
		t.Errorf("DropWarnings mismatch (-want +got):\n%s", diff)
	}
}

func TestBagPromoteWarnings(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevWarning, GuardOverloadCount, source.Span{}, "w"))
	bag.Add(New(SevInfo, GuardUnreachable, source.Span{}, "n"))
	bag.PromoteWarnings()
	if bag.Items()[0].Severity != SevError || bag.Items()[1].Severity != SevInfo {
		t.Errorf("PromoteWarnings = %+v", bag.Items())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 1, End: 2}
	r.Report(GuardUnreachable, SevWarning, sp, "dup", []int{2})
	r.Report(GuardUnreachable, SevWarning, sp, "dup", []int{2})
	r.Report(GuardUnreachable, SevWarning, sp, "dup", []int{3})
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
	r.Reset()
	r.Report(GuardUnreachable, SevWarning, sp, "dup", []int{2})
	if bag.Len() != 3 {
		t.Fatalf("Reset should forget seen keys, got %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportWarning(BagReporter{Bag: bag}, GuardUnreachable, source.Span{}, "x").WithOverloads(3, 1)
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", bag.Len())
	}
	if diff := cmp.Diff([]int{3, 1}, bag.Items()[0].Overloads); diff != "" {
		t.Errorf("overloads mismatch (-want +got):\n%s", diff)
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithOverloads(1).Emit()
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/testdata/sample.gd", []byte("fn f(x when x > 0);\nfn f(x when x > 5);\n"), 0)

	diags := []Diagnostic{
		{Severity: SevWarning, Code: GuardUnreachable, Message: "overload #2\nis unreachable", Primary: source.Span{File: file, Start: 20, End: 39}},
		{Severity: SevInfo, Code: GuardUnreachable, Message: "covered by #1", Primary: source.Span{File: file, Start: 0, End: 19}},
	}

	want := "warning W1002 testdata/sample.gd:2:1 overload #2 is unreachable\n" +
		"note W1002 testdata/sample.gd:1:1 covered by #1"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "warning W1002 testdata/sample.gd:2:1 overload #2 is unreachable" {
		t.Fatalf("notes not dropped: %s", got)
	}
}
