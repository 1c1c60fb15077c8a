package guard

import "fmt"

// FindingKind is the closed set of analysis results.
type FindingKind uint8

const (
	FindingUnreachable FindingKind = iota + 1
	FindingIncomplete
	FindingBaseNotLast
	FindingMultipleBase
	FindingOverloadCount
	FindingUnknownExplosion
)

func (k FindingKind) String() string {
	switch k {
	case FindingUnreachable:
		return "unreachable"
	case FindingIncomplete:
		return "incomplete"
	case FindingBaseNotLast:
		return "base-not-last"
	case FindingMultipleBase:
		return "multiple-base"
	case FindingOverloadCount:
		return "overload-count"
	case FindingUnknownExplosion:
		return "unknown-explosion"
	default:
		return fmt.Sprintf("FindingKind(%d)", k)
	}
}

// UnreachableCause says which pass proved an overload unreachable.
type UnreachableCause uint8

const (
	CauseNone UnreachableCause = iota
	CauseEmpty                 // own guard is contradictory
	CauseDuplicate             // same interval as an earlier overload
	CauseSubsumed              // interval covered by an earlier overload
	CauseBase                  // an earlier base overload takes every input
)

func (c UnreachableCause) String() string {
	switch c {
	case CauseEmpty:
		return "empty"
	case CauseDuplicate:
		return "duplicate"
	case CauseSubsumed:
		return "subsumed"
	case CauseBase:
		return "base"
	default:
		return "none"
	}
}

// Finding is the handoff between passes and the Emitter. All indices are
// 1-based; zero means "not set".
type Finding struct {
	Kind FindingKind

	// Unreachable: Index is the dead overload, Covering the earlier one (0 for CauseEmpty).
	// BaseNotLast: Index is the first overload after the base, Base is the base.
	Index    int
	Covering int
	Base     int
	Cause    UnreachableCause

	// MultipleBase: every base overload in declaration order.
	Indices []int

	// OverloadCount: Count overloads. UnknownExplosion: Unknown of Count, Percent floored.
	Count   int
	Unknown int
	Percent int
}

func unreachable(index, covering int, cause UnreachableCause) Finding {
	return Finding{Kind: FindingUnreachable, Index: index, Covering: covering, Cause: cause}
}
