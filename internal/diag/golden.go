package diag

import (
	"fmt"
	"strings"

	"guardc/internal/source"
)

// FormatGoldenDiagnostics renders one line per diagnostic for golden files:
//
//	severity CODE path:line:col message
//
// Emission order is kept. Notes appear only with includeNotes; diagnostics
// whose file is unknown to fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.IsNote() && !includeNotes {
			continue
		}
		file := fs.Get(d.Primary.File)
		if file == nil {
			continue
		}
		pos, _ := fs.Resolve(d.Primary)
		path := file.FormatPath("relative", fs.BaseDir())
		for strings.HasPrefix(path, "./") {
			path = path[2:]
		}
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s",
			goldenSeverity(d), d.Code.ID(), path, pos.Line, pos.Col, oneLine(d.Message)))
	}
	return strings.Join(lines, "\n")
}

func goldenSeverity(d Diagnostic) string {
	if d.IsNote() {
		return "note"
	}
	return strings.ToLower(d.Severity.String())
}

// oneLine folds any line breaks in msg into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
