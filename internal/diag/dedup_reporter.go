package diag

import (
	"fmt"

	"guardc/internal/source"
)

type dedupKey struct {
	code      Code
	sev       Severity
	file      source.FileID
	start     uint32
	end       uint32
	msg       string
	overloads string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, primary span, message and overload indices.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, overloads []int) {
	if r == nil {
		return
	}
	key := dedupKey{
		code:      code,
		sev:       sev,
		file:      primary.File,
		start:     primary.Start,
		end:       primary.End,
		msg:       msg,
		overloads: fmt.Sprint(overloads),
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, overloads)
	}
}

// Reset forgets everything seen so far.
func (r *DedupReporter) Reset() {
	if r == nil {
		return
	}
	clear(r.seen)
}
