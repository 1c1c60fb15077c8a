package guard

import (
	"fmt"
	"strings"

	"guardc/internal/diag"
	"guardc/internal/source"
)

// Emitter turns findings into diagnostics.
type Emitter struct {
	reporter diag.Reporter
}

func NewEmitter(r diag.Reporter) *Emitter {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Emitter{reporter: r}
}

// Emit reports every finding of res in order. An overload is reported as
// unreachable at most once per group.
func (e *Emitter) Emit(res *GroupAnalysis) {
	seen := make(map[int]bool)
	for _, f := range res.Findings {
		if f.Kind == FindingUnreachable {
			if seen[f.Index] {
				continue
			}
			seen[f.Index] = true
		}
		e.emitFinding(res.Group, f)
	}
}

func (e *Emitter) emitFinding(g *FunctionGroup, f Finding) {
	name := g.Key.String()
	switch f.Kind {
	case FindingUnreachable:
		var msg string
		switch f.Cause {
		case CauseEmpty:
			msg = fmt.Sprintf("overload #%d of %s is unreachable: its guard can never be satisfied", f.Index, name)
		case CauseDuplicate:
			msg = fmt.Sprintf("overload #%d of %s is unreachable: it duplicates the guard of overload #%d", f.Index, name, f.Covering)
		case CauseBase:
			msg = fmt.Sprintf("overload #%d of %s is unreachable: base overload #%d accepts every input first", f.Index, name, f.Covering)
		default:
			msg = fmt.Sprintf("overload #%d of %s is unreachable: overload #%d already matches every input it accepts", f.Index, name, f.Covering)
		}
		overloads := []int{f.Index}
		if f.Covering > 0 {
			overloads = append(overloads, f.Covering)
		}
		diag.ReportWarning(e.reporter, diag.GuardUnreachable, spanOf(g, f.Index), msg).
			WithOverloads(overloads...).
			Emit()
		if f.Covering > 0 {
			note := fmt.Sprintf("overload #%d covers every input of overload #%d", f.Covering, f.Index)
			diag.ReportInfo(e.reporter, diag.GuardUnreachable, spanOf(g, f.Covering), note).
				WithOverloads(f.Covering).
				Emit()
		}

	case FindingIncomplete:
		msg := fmt.Sprintf("overload group %s is not exhaustive: declare an unguarded base overload last", name)
		diag.ReportError(e.reporter, diag.GuardIncomplete, spanOf(g, 1), msg).Emit()

	case FindingBaseNotLast:
		msg := fmt.Sprintf("base overload #%d of %s must be declared last", f.Base, name)
		diag.ReportError(e.reporter, diag.GuardBaseNotLast, spanOf(g, f.Base), msg).
			WithOverloads(f.Base, f.Index).
			Emit()
		note := fmt.Sprintf("overload #%d is declared after the base overload", f.Index)
		diag.ReportInfo(e.reporter, diag.GuardBaseNotLast, spanOf(g, f.Index), note).
			WithOverloads(f.Index).
			Emit()

	case FindingMultipleBase:
		msg := fmt.Sprintf("overload group %s declares %d base overloads (%s)", name, len(f.Indices), ordinals(f.Indices))
		diag.ReportError(e.reporter, diag.GuardMultipleBase, spanOf(g, f.Indices[0]), msg).
			WithOverloads(f.Indices...).
			Emit()
		for _, extra := range f.Indices[1:] {
			note := fmt.Sprintf("additional base overload #%d", extra)
			diag.ReportInfo(e.reporter, diag.GuardMultipleBase, spanOf(g, extra), note).
				WithOverloads(extra).
				Emit()
		}

	case FindingOverloadCount:
		msg := fmt.Sprintf("overload group %s has %d overloads (limit %d)", name, f.Count, OverloadCountThreshold-1)
		diag.ReportWarning(e.reporter, diag.GuardOverloadCount, spanOf(g, 1), msg).Emit()

	case FindingUnknownExplosion:
		msg := fmt.Sprintf("%d%% of the overloads of %s (%d of %d) have guards that cannot be analyzed", f.Percent, name, f.Unknown, f.Count)
		diag.ReportWarning(e.reporter, diag.GuardUnknownExplosion, spanOf(g, 1), msg).Emit()

	default:
		panic(fmt.Sprintf("guard: unhandled finding kind %v", f.Kind))
	}
}

// spanOf returns the span of the overload with 1-based index ord.
func spanOf(g *FunctionGroup, ord int) source.Span {
	if ord < 1 || ord > len(g.Overloads) {
		return source.Span{}
	}
	return g.Overloads[ord-1].Span
}

func ordinals(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("#%d", idx)
	}
	return strings.Join(parts, ", ")
}
