package interval

import (
	"strconv"
	"strings"
)

// Bound is one side of an Interval. The zero Bound is unbounded.
type Bound struct {
	Finite    bool
	Value     int64
	Inclusive bool
}

// Unbounded is the open end of an interval.
var Unbounded = Bound{}

// Closed returns a finite inclusive bound at v.
func Closed(v int64) Bound { return Bound{Finite: true, Value: v, Inclusive: true} }

// Open returns a finite exclusive bound at v.
func Open(v int64) Bound { return Bound{Finite: true, Value: v} }

// Interval is a contiguous range of integers.
type Interval struct {
	Lo Bound
	Hi Bound
}

// Full returns the interval covering every integer.
func Full() Interval { return Interval{} }

// Point returns [v, v].
func Point(v int64) Interval { return Interval{Lo: Closed(v), Hi: Closed(v)} }

// FromAtom converts `x op literal` into the interval of x values satisfying it.
// Unsupported operators yield the full interval.
func FromAtom(op Op, literal int64) Interval {
	switch op {
	case OpGT:
		return Interval{Lo: Open(literal)}
	case OpGE:
		return Interval{Lo: Closed(literal)}
	case OpLT:
		return Interval{Hi: Open(literal)}
	case OpLE:
		return Interval{Hi: Closed(literal)}
	case OpEQ:
		return Point(literal)
	default:
		return Full()
	}
}

// Intersect returns the values contained in both a and b.
func Intersect(a, b Interval) Interval {
	return Interval{
		Lo: tighterLower(a.Lo, b.Lo),
		Hi: tighterUpper(a.Hi, b.Hi),
	}
}

func tighterLower(a, b Bound) Bound {
	switch {
	case !a.Finite:
		return b
	case !b.Finite:
		return a
	case a.Value > b.Value:
		return a
	case b.Value > a.Value:
		return b
	default:
		return Bound{Finite: true, Value: a.Value, Inclusive: a.Inclusive && b.Inclusive}
	}
}

func tighterUpper(a, b Bound) Bound {
	switch {
	case !a.Finite:
		return b
	case !b.Finite:
		return a
	case a.Value < b.Value:
		return a
	case b.Value < a.Value:
		return b
	default:
		return Bound{Finite: true, Value: a.Value, Inclusive: a.Inclusive && b.Inclusive}
	}
}

// IsEmpty reports whether no value satisfies iv. Intervals unbounded on
// either side are never empty.
func (iv Interval) IsEmpty() bool {
	if !iv.Lo.Finite || !iv.Hi.Finite {
		return false
	}
	if iv.Lo.Value > iv.Hi.Value {
		return true
	}
	if iv.Lo.Value == iv.Hi.Value {
		return !(iv.Lo.Inclusive && iv.Hi.Inclusive)
	}
	return false
}

// IsFull reports whether iv is unbounded on both sides.
func (iv Interval) IsFull() bool {
	return !iv.Lo.Finite && !iv.Hi.Finite
}

// Subsumes reports whether every value of covered is also a value of covering.
// Both intervals are expected to be non-empty and to constrain the same variable.
func Subsumes(covering, covered Interval) bool {
	return reachesLower(covering.Lo, covered.Lo) && reachesUpper(covering.Hi, covered.Hi)
}

// reachesLower reports whether lower bound a extends at least as far down as b.
func reachesLower(a, b Bound) bool {
	switch {
	case !a.Finite:
		return true
	case !b.Finite:
		return false
	case a.Value != b.Value:
		return a.Value < b.Value
	default:
		return a.Inclusive || !b.Inclusive
	}
}

// reachesUpper reports whether upper bound a extends at least as far up as b.
func reachesUpper(a, b Bound) bool {
	switch {
	case !a.Finite:
		return true
	case !b.Finite:
		return false
	case a.Value != b.Value:
		return a.Value > b.Value
	default:
		return a.Inclusive || !b.Inclusive
	}
}

// Equal reports structural equality of bounds.
func (iv Interval) Equal(other Interval) bool {
	return iv == other
}

// String renders iv in mathematical notation, e.g. "(3, +inf)" or "[0, 0]".
func (iv Interval) String() string {
	var b strings.Builder
	if iv.Lo.Finite && iv.Lo.Inclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if iv.Lo.Finite {
		b.WriteString(strconv.FormatInt(iv.Lo.Value, 10))
	} else {
		b.WriteString("-inf")
	}
	b.WriteString(", ")
	if iv.Hi.Finite {
		b.WriteString(strconv.FormatInt(iv.Hi.Value, 10))
	} else {
		b.WriteString("+inf")
	}
	if iv.Hi.Finite && iv.Hi.Inclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}
