package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"guardc/internal/diag"
	"guardc/internal/source"
)

// Short печатает одну строку на диагностику:
// <path>:<line>:<col>: <SEV> <CODE>: <Message> [overloads #i, #j]
// Заметки выводятся только при withNotes.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode, withNotes bool) {
	for _, d := range bag.Items() {
		if d.IsNote() && !withNotes {
			continue
		}
		fmt.Fprintf(w, "%s: %s %s: %s", location(d.Primary, fs, mode), severityLabel(d), d.Code.ID(), d.Message)
		if len(d.Overloads) > 0 && !d.IsNote() {
			fmt.Fprintf(w, " [overloads %s]", overloadList(d.Overloads))
		}
		fmt.Fprintln(w)
	}
}

func overloadList(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("#%d", idx)
	}
	return strings.Join(parts, ", ")
}
