package diagfmt

import "guardc/internal/diag"

// entry is a primary diagnostic together with the notes emitted right after it.
type entry struct {
	diag.Diagnostic
	notes []diag.Diagnostic
}

// attachNotes folds every note into the closest preceding primary diagnostic.
// Notes without a primary are kept as standalone entries.
func attachNotes(items []diag.Diagnostic) []entry {
	out := make([]entry, 0, len(items))
	for _, d := range items {
		if d.IsNote() && len(out) > 0 && out[len(out)-1].Code == d.Code {
			last := &out[len(out)-1]
			last.notes = append(last.notes, d)
			continue
		}
		out = append(out, entry{Diagnostic: d})
	}
	return out
}

func severityLabel(d diag.Diagnostic) string {
	if d.IsNote() {
		return "NOTE"
	}
	return d.Severity.String()
}
