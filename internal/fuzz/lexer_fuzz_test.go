package fuzztests

import (
	"testing"

	"guardc/internal/diag"
	"guardc/internal/lexer"
	"guardc/internal/source"
	"guardc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.gd", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var prevEnd uint32
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %d %v has bad span %v (prev end %d, len %d)", i, tok.Kind, tok.Span, prevEnd, len(input))
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if i > len(input)+1 {
				t.Fatalf("lexer does not advance on %q", input)
			}
		}
	})
}
