package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/guard"
	"guardc/internal/parser"
	"guardc/internal/source"
)

const subsumedSrc = "fn f(x when x > 0) {}\nfn f(x when x > 5) {}\nfn f(x) {}\n"

// checkUnit разбирает src и прогоняет анализ перегрузок, складывая всё в один bag.
func checkUnit(t *testing.T, src string) (*diag.Bag, *source.FileSet, *guard.Validator) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("unit.gd", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := parser.ParseFile(sf, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	v := guard.NewValidator(guard.Options{Reporter: diag.BagReporter{Bag: bag}})
	v.Validate(context.Background(), b, res.File)
	return bag, fs, v
}

func singleDiag(sev diag.Severity, code diag.Code, start, end uint32, msg string) (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.gd", []byte("fn f(x) {}\nfn g(y when y < 3) {}\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(sev, code, source.Span{File: id, Start: start, End: end}, msg))
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := singleDiag(diag.SevError, diag.SynUnexpectedToken, 3, 4, "boom")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "unit.gd:1:4: ERROR SYN4001: boom\n" +
		"1 | fn f(x) {}\n" +
		"  |    ^\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs := singleDiag(diag.SevWarning, diag.GuardUnreachable, 16, 17, "unreachable")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	out := buf.String()

	for _, want := range []string{
		"unit.gd:2:6: WARNING W1002: unreachable",
		"1 | fn f(x) {}",
		"2 | fn g(y when y < 3) {}",
		"  |      ^",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.gd", []byte("fn f(x) {}\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynExpectBody, source.Span{File: fileID, Start: 0, End: 2}, "expected body"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.gd:1:1"},
		{"Relative path", PathModeRelative, "src/test.gd:1:1"},
		{"Basename only", PathModeBasename, "test.gd:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN4006") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.gd", "test.gd:1:1"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.gd", "file.gd:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			fileID := fs.AddVirtual(tt.path, []byte("fn f(x) {}\n"))
			bag := diag.NewBag(1)
			bag.Add(diag.New(diag.SevWarning, diag.GuardOverloadCount, source.Span{File: fileID, Start: 0, End: 2}, "many"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if !strings.HasPrefix(buf.String(), tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs, _ := checkUnit(t, subsumedSrc)

	var hidden bytes.Buffer
	Pretty(&hidden, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(hidden.String(), "note:") {
		t.Fatalf("notes must be hidden by default, got:\n%s", hidden.String())
	}
	if !strings.Contains(hidden.String(), "unit.gd:2:1: WARNING W1002: overload #2 of f/1 is unreachable") {
		t.Fatalf("expected W1002 header, got:\n%s", hidden.String())
	}

	var shown bytes.Buffer
	Pretty(&shown, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(shown.String(), "note: unit.gd:1:1: overload #1 covers every input of overload #2") {
		t.Fatalf("expected note with location, got:\n%s", shown.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := singleDiag(diag.SevError, diag.GuardIncomplete, 0, 2, "not exhaustive")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes:\n%q", colored.String())
	}
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		line      string
		from, to  int
		pad, caret string
	}{
		{"fn f(x) {}", 3, 4, "   ", "^"},
		{"fn f(x) {}", 0, 10, "", "^~~~~~~~~"},
		{"a日本b", 1, 7, " ", "^~~~"},
		{"日x", 3, 4, "  ", "^"},
		{"\tx", 1, 2, "\t", "^"},
		{"abc", 2, 2, "  ", "^"},
		{"abc", 5, 9, "   ", "^"},
	}
	for _, tt := range tests {
		pad, caret := caretLine(tt.line, tt.from, tt.to)
		if pad != tt.pad || caret != tt.caret {
			t.Errorf("caretLine(%q, %d, %d) = (%q, %q), want (%q, %q)", tt.line, tt.from, tt.to, pad, caret, tt.pad, tt.caret)
		}
	}
}

func TestClip(t *testing.T) {
	if got := clip("fn f(x) {}", 0); got != "fn f(x) {}" {
		t.Errorf("width 0 must not clip, got %q", got)
	}
	if got := clip("fn f(x) {}", 20); got != "fn f(x) {}" {
		t.Errorf("short line must not clip, got %q", got)
	}
	if got := clip("fn f(x) {}", 5); got != "fn f…" {
		t.Errorf("clip = %q, want %q", got, "fn f…")
	}
}

func TestShort(t *testing.T) {
	bag, fs, _ := checkUnit(t, subsumedSrc)

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename, false)
	want := "unit.gd:2:1: WARNING W1002: overload #2 of f/1 is unreachable: overload #1 already matches every input it accepts [overloads #2, #1]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("short output mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	Short(&buf, bag, fs, PathModeBasename, true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "unit.gd:1:1: NOTE W1002: overload #1 covers") {
		t.Fatalf("expected note line, got:\n%s", buf.String())
	}
}

func TestJSONNotesAndOverloads(t *testing.T) {
	bag, fs, _ := checkUnit(t, subsumedSrc)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "WARNING",
			Code:     "W1002",
			Name:     "GUARD_UNREACHABLE",
			Message:  "overload #2 of f/1 is unreachable: overload #1 already matches every input it accepts",
			Location: LocationJSON{
				File: "unit.gd", StartByte: 22, EndByte: 43,
				StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 22,
			},
			Overloads: []int{2, 1},
			Notes: []NoteJSON{{
				Message: "overload #1 covers every input of overload #2",
				Location: LocationJSON{
					File: "unit.gd", StartByte: 0, EndByte: 21,
					StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 22,
				},
			}},
		}},
	}
	if diff := cmp.Diff(want, output); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWithoutNotesAndMax(t *testing.T) {
	bag, fs, _ := checkUnit(t, "fn f(x when x > 0) {}\nfn f(x when x > 5) {}\nfn f(x when x > 9) {}\n")

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	// #2 и #3 недостижимы, плюс E1001 за отсутствие базовой перегрузки
	if out.Count != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %+v", out.Count, out.Diagnostics)
	}
	for _, d := range out.Diagnostics {
		if d.Notes != nil {
			t.Errorf("notes must be omitted, got %+v", d.Notes)
		}
		if d.Location.StartLine != 0 {
			t.Errorf("positions must be omitted, got line %d", d.Location.StartLine)
		}
	}

	limited := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if limited.Count != 1 || len(limited.Diagnostics) != 1 {
		t.Fatalf("Max=1 must keep one diagnostic, got %d", limited.Count)
	}
}

func TestSarif(t *testing.T) {
	bag, fs, _ := checkUnit(t, subsumedSrc)
	fs.SetBaseDir(".")

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "1.0.0", InvocationArgs: []string{"check", "unit.gd"}}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log SarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected envelope: version=%q runs=%d", log.Version, len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "guardc" || run.Tool.Driver.Version != "1.0.0" {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "W1002" {
		t.Errorf("expected one W1002 rule, got %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.Level != "warning" || res.RuleID != "W1002" {
		t.Errorf("unexpected result: %+v", res)
	}
	if got := res.Locations[0].PhysicalLocation.Region.StartLine; got != 2 {
		t.Errorf("start line = %d, want 2", got)
	}
	if len(res.RelatedLocations) != 1 || res.RelatedLocations[0].Message.Text != "overload #1 covers every input of overload #2" {
		t.Errorf("expected note as related location, got %+v", res.RelatedLocations)
	}
	if len(run.Invocations) != 1 || !run.Invocations[0].ExecutionSuccessful {
		t.Errorf("expected a successful invocation, got %+v", run.Invocations)
	}
}

func TestFormatGroups(t *testing.T) {
	_, fs, v := checkUnit(t, subsumedSrc+"fn g(a, b) {}\n")

	groups := BuildGroupsOutput(v.Results(), fs, PathModeBasename)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	f := groups[0]
	if f.Group != "f/1" || !f.ValidBase {
		t.Errorf("unexpected group header: %+v", f)
	}
	if diff := cmp.Diff([]int{2}, f.Unreachable); diff != "" {
		t.Errorf("unreachable mismatch (-want +got):\n%s", diff)
	}
	want := []OverloadOutput{
		{Index: 1, Location: "unit.gd:1:1", Predicate: "analyzable", Atoms: []string{"x > 0"}, Interval: "(0, +inf)", Param: "x"},
		{Index: 2, Location: "unit.gd:2:1", Predicate: "analyzable", Atoms: []string{"x > 5"}, Interval: "(5, +inf)", Param: "x"},
		{Index: 3, Location: "unit.gd:3:1", Predicate: "base"},
	}
	if diff := cmp.Diff(want, f.Overloads); diff != "" {
		t.Errorf("overloads mismatch (-want +got):\n%s", diff)
	}
	if g := groups[1]; g.Group != "g/2" || !g.Skipped {
		t.Errorf("single-overload group must be skipped, got %+v", g)
	}

	var buf bytes.Buffer
	if err := FormatGroupsPretty(&buf, v.Results(), fs, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"group f/1\n",
		"├─ #2 analyzable x > 5  x ∈ (5, +inf)  [unreachable]",
		"└─ #3 base       always",
		"group g/2 (not analyzed)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}
