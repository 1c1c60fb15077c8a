package diagfmt

import (
	"encoding/json"
	"io"

	"guardc/internal/diag"
	"guardc/internal/source"
)

// LocationJSON represents a location in source code for JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON represents a note attached to a diagnostic in JSON output.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON represents a diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity  string       `json:"severity"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Message   string       `json:"message"`
	Location  LocationJSON `json:"location"`
	Overloads []int        `json:"overloads,omitempty"`
	Notes     []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput represents the complete JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, fs, pathMode)
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts the bag into its JSON shape. Notes are folded into
// their primary diagnostic; Max limits the number of primaries.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	entries := attachNotes(bag.Items())
	if opts.Max > 0 && len(entries) > opts.Max {
		entries = entries[:opts.Max]
	}

	diagnostics := make([]DiagnosticJSON, 0, len(entries))
	for _, e := range entries {
		dj := DiagnosticJSON{
			Severity:  severityLabel(e.Diagnostic),
			Code:      e.Code.ID(),
			Name:      e.Code.Name(),
			Message:   e.Message,
			Location:  makeLocation(e.Primary, fs, opts.PathMode, opts.IncludePositions),
			Overloads: e.Overloads,
		}
		if opts.IncludeNotes && len(e.notes) > 0 {
			dj.Notes = make([]NoteJSON, len(e.notes))
			for j, n := range e.notes {
				dj.Notes[j] = NoteJSON{
					Message:  n.Message,
					Location: makeLocation(n.Primary, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
