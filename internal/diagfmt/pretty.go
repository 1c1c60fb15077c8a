package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"guardc/internal/diag"
	"guardc/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(d diag.Diagnostic) *color.Color {
	switch {
	case d.IsNote():
		return p.note
	case d.Severity == diag.SevError:
		return p.err
	case d.Severity == diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем заметки (ShowNotes).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, e := range attachNotes(bag.Items()) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, e.Diagnostic, fs, opts, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range e.notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(n.Primary, fs, opts.PathMode), n.Message)
		}
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(location(d.Primary, fs, opts.PathMode)),
		p.severity(d).Sprint(severityLabel(d)),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)

	f := fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(d.Primary)
	if start.Line == 0 {
		return
	}

	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	if n, err := safecast.Conv[uint32](len(f.LineIdx) + 1); err == nil && last > n {
		last = n
	}
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln != start.Line && strings.TrimSpace(text) == "" {
			continue
		}
		shown := clip(text, opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), shown)
		if ln != start.Line {
			continue
		}
		endCol := len(text) + 1
		if end.Line == start.Line && end.Col > start.Col {
			endCol = int(end.Col)
		}
		pad, underline := caretLine(shown, int(start.Col)-1, endCol-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), pad, p.caret.Sprint(underline))
	}
}

// caretLine строит отступ и подчёркивание ^~~~ для байтового диапазона [from, to) строки.
// Ширина считается в колонках терминала, табы сохраняются в отступе.
func caretLine(line string, from, to int) (pad, underline string) {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))

	var sb strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[from:to]), 1)
	return sb.String(), "^" + strings.Repeat("~", width-1)
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}
