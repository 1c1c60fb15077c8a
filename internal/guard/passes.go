package guard

import (
	"guardc/internal/interval"
)

// Analysis thresholds.
const (
	// OverloadCountThreshold is the group size that triggers W1101.
	OverloadCountThreshold = 33
	// ExplosionMinOverloads is the smallest group W1102 looks at.
	ExplosionMinOverloads = 8
	// ExplosionPercentThreshold is the share of Unknown guards W1102 must exceed.
	ExplosionPercentThreshold = 50
)

// AnalyzedOverload pairs an overload with its normalized guard.
type AnalyzedOverload struct {
	*Overload
	Pred Descriptor

	// Interval is set when HasInterval; Param is the constrained parameter.
	Interval    interval.Interval
	HasInterval bool
	Param       int
}

func analyzeOverload(n *Normalizer, ov *Overload) AnalyzedOverload {
	a := AnalyzedOverload{Overload: ov, Pred: n.Classify(ov), Param: -1}
	if a.Pred.Type == PredicateAnalyzable {
		if iv, ok := DeriveInterval(a.Pred.Atoms); ok {
			a.Interval = iv
			a.HasInterval = true
			a.Param = a.Pred.Atoms[0].Param
		}
	}
	return a
}

// liveInterval reports whether a has a derived, non-empty interval.
func (a *AnalyzedOverload) liveInterval() bool {
	return a.HasInterval && !a.Interval.IsEmpty()
}

// sameParam reports whether the intervals of a and b constrain the same parameter.
func sameParam(a, b *AnalyzedOverload) bool {
	return a.HasInterval && b.HasInterval && a.Param == b.Param
}

type baseStatus struct {
	bases    []int // 0-based indices of base overloads
	valid    bool  // exactly one base and it is last
	multiple bool
}

// checkBaseOrdering reports MultipleBase for two or more bases and
// BaseNotLast for a single base that is not the last overload.
func checkBaseOrdering(ovs []AnalyzedOverload) ([]Finding, baseStatus) {
	var st baseStatus
	for i := range ovs {
		if ovs[i].Pred.Type == PredicateBase {
			st.bases = append(st.bases, i)
		}
	}
	switch {
	case len(st.bases) > 1:
		st.multiple = true
		indices := make([]int, len(st.bases))
		for i, b := range st.bases {
			indices[i] = b + 1
		}
		return []Finding{{Kind: FindingMultipleBase, Indices: indices}}, st
	case len(st.bases) == 1:
		base := st.bases[0]
		if base == len(ovs)-1 {
			st.valid = true
			return nil, st
		}
		return []Finding{{Kind: FindingBaseNotLast, Index: base + 2, Base: base + 1}}, st
	default:
		return nil, st
	}
}

// checkEmptyIntervals flags every overload but the first whose own guard is
// contradictory.
func checkEmptyIntervals(ovs []AnalyzedOverload, flagged map[int]bool) []Finding {
	var out []Finding
	for i := 1; i < len(ovs); i++ {
		a := &ovs[i]
		if a.HasInterval && a.Interval.IsEmpty() {
			flagged[i] = true
			out = append(out, unreachable(i+1, 0, CauseEmpty))
		}
	}
	return out
}

// checkDuplicates flags the later overload of every pair with equal
// non-empty intervals on the same parameter.
func checkDuplicates(ovs []AnalyzedOverload, flagged map[int]bool) []Finding {
	var out []Finding
	for i := range ovs {
		a := &ovs[i]
		if !a.liveInterval() {
			continue
		}
		for j := i + 1; j < len(ovs); j++ {
			b := &ovs[j]
			if flagged[j] || !b.liveInterval() || !sameParam(a, b) {
				continue
			}
			if interval.Subsumes(a.Interval, b.Interval) && interval.Subsumes(b.Interval, a.Interval) {
				flagged[j] = true
				out = append(out, unreachable(j+1, i+1, CauseDuplicate))
			}
		}
	}
	return out
}

// checkSubsumption flags an overload when an earlier base or an earlier
// live interval covers it. The first covering overload wins.
func checkSubsumption(ovs []AnalyzedOverload, flagged map[int]bool) []Finding {
	var out []Finding
	for i := range ovs {
		if flagged[i] {
			continue
		}
		b := &ovs[i]
		for j := 0; j < i; j++ {
			a := &ovs[j]
			if a.Pred.Type == PredicateBase {
				flagged[i] = true
				out = append(out, unreachable(i+1, j+1, CauseBase))
				break
			}
			if a.Pred.Type != PredicateAnalyzable || b.Pred.Type != PredicateAnalyzable {
				continue
			}
			if !a.liveInterval() || !b.HasInterval || !sameParam(a, b) {
				continue
			}
			if interval.Subsumes(a.Interval, b.Interval) {
				flagged[i] = true
				out = append(out, unreachable(i+1, j+1, CauseSubsumed))
				break
			}
		}
	}
	return out
}

// coversBooleanPair reports whether single-atom overloads `p == true` and
// `p == false` exist for the same parameter.
func coversBooleanPair(ovs []AnalyzedOverload) bool {
	seen := make(map[int]uint8)
	for i := range ovs {
		a := &ovs[i]
		if a.Pred.Type != PredicateAnalyzable || len(a.Pred.Atoms) != 1 {
			continue
		}
		atom := a.Pred.Atoms[0]
		if !atom.IsBool || atom.Op != interval.OpEQ {
			continue
		}
		bit := uint8(1)
		if atom.Literal != 0 {
			bit = 2
		}
		seen[atom.Param] |= bit
		if seen[atom.Param] == 3 {
			return true
		}
	}
	return false
}

// checkCompleteness is conservative: only a valid base or the boolean pair
// proves exhaustiveness.
func checkCompleteness(ovs []AnalyzedOverload, st baseStatus) ([]Finding, bool) {
	boolCovered := coversBooleanPair(ovs)
	if st.multiple || st.valid || boolCovered {
		return nil, boolCovered
	}
	return []Finding{{Kind: FindingIncomplete}}, boolCovered
}

func checkExplosion(ovs []AnalyzedOverload, st baseStatus) []Finding {
	total := len(ovs)
	if st.valid || total < ExplosionMinOverloads {
		return nil
	}
	unknown := 0
	for i := range ovs {
		if ovs[i].Pred.Type == PredicateUnknown {
			unknown++
		}
	}
	if unknown*100 <= ExplosionPercentThreshold*total {
		return nil
	}
	return []Finding{{
		Kind:    FindingUnknownExplosion,
		Count:   total,
		Unknown: unknown,
		Percent: unknown * 100 / total,
	}}
}

func checkOverloadCount(g *FunctionGroup) []Finding {
	if g.Len() < OverloadCountThreshold {
		return nil
	}
	return []Finding{{Kind: FindingOverloadCount, Count: g.Len()}}
}
