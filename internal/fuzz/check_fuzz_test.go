package fuzztests

import (
	"context"
	"testing"
	"time"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/guard"
	"guardc/internal/parser"
	"guardc/internal/source"
)

// checkTimeout is the maximum time allowed for one input; longer runs mean a hang.
const checkTimeout = 5 * time.Second

// FuzzCheckPipeline runs parse + validation and checks that every diagnostic is
// well-formed: known code, span inside the file, overload indices in range.
func FuzzCheckPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		type outcome struct {
			items   []diag.Diagnostic
			results []*guard.GroupAnalysis
		}
		done := make(chan outcome, 1)
		go func() {
			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.gd", input)
			bag := diag.NewBag(0)
			reporter := diag.BagReporter{Bag: bag}

			b := ast.NewBuilder(ast.Hints{}, nil)
			res := parser.ParseFile(fs.Get(fileID), b, parser.Options{Reporter: reporter, MaxErrors: 128})
			v := guard.NewValidator(guard.Options{Reporter: reporter})
			v.Validate(ctx, b, res.File)
			done <- outcome{items: bag.Items(), results: v.Results()}
		}()

		var out outcome
		select {
		case out = <-done:
		case <-ctx.Done():
			t.Fatalf("check hang detected after %v on %d bytes: %q", checkTimeout, len(input), truncateForLog(input, 200))
		}

		maxIndex := 0
		for _, g := range out.results {
			maxIndex = max(maxIndex, len(g.Overloads), len(g.Group.Overloads))
		}
		for _, d := range out.items {
			if d.Code.Name() == "" {
				t.Fatalf("unknown code %d in %+v", d.Code, d)
			}
			if d.Primary.Start > d.Primary.End || int(d.Primary.End) > len(input) {
				t.Fatalf("%s span %v outside input of %d bytes", d.Code.ID(), d.Primary, len(input))
			}
			for _, idx := range d.Overloads {
				if idx < 1 || idx > maxIndex {
					t.Fatalf("%s refers to overload #%d, groups have at most %d", d.Code.ID(), idx, maxIndex)
				}
			}
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
