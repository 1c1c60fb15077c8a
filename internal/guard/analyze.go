package guard

import (
	"guardc/internal/ast"
)

// GroupAnalysis is the outcome of running every pass over one group.
type GroupAnalysis struct {
	Group     *FunctionGroup
	Overloads []AnalyzedOverload
	Findings  []Finding

	ValidBase    bool
	MultipleBase bool
	BoolCovered  bool
	// Skipped is true when the group stopped after the count check
	// (a single overload or no guards at all).
	Skipped bool
}

// Analyze classifies every overload of g and runs the passes in their fixed
// order: count, base ordering, empty, duplicate, subsumption, completeness,
// explosion.
func Analyze(b *ast.Builder, g *FunctionGroup) *GroupAnalysis {
	res := &GroupAnalysis{Group: g}
	res.Findings = append(res.Findings, checkOverloadCount(g)...)

	n := NewNormalizer(b)
	res.Overloads = make([]AnalyzedOverload, len(g.Overloads))
	for i, ov := range g.Overloads {
		res.Overloads[i] = analyzeOverload(n, ov)
	}

	if g.Len() < 2 || !g.Guarded() {
		res.Skipped = true
		return res
	}

	baseFindings, st := checkBaseOrdering(res.Overloads)
	res.ValidBase, res.MultipleBase = st.valid, st.multiple
	res.Findings = append(res.Findings, baseFindings...)

	flagged := make(map[int]bool)
	res.Findings = append(res.Findings, checkEmptyIntervals(res.Overloads, flagged)...)
	res.Findings = append(res.Findings, checkDuplicates(res.Overloads, flagged)...)
	res.Findings = append(res.Findings, checkSubsumption(res.Overloads, flagged)...)

	completeness, boolCovered := checkCompleteness(res.Overloads, st)
	res.BoolCovered = boolCovered
	res.Findings = append(res.Findings, completeness...)
	res.Findings = append(res.Findings, checkExplosion(res.Overloads, st)...)
	return res
}

// Unreachable returns the 1-based indices of overloads proven unreachable.
func (r *GroupAnalysis) Unreachable() []int {
	var out []int
	for _, f := range r.Findings {
		if f.Kind == FindingUnreachable {
			out = append(out, f.Index)
		}
	}
	return out
}
