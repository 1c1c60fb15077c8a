package interval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAtom(t *testing.T) {
	tests := []struct {
		op   Op
		lit  int64
		want Interval
	}{
		{OpGT, 3, Interval{Lo: Open(3)}},
		{OpGE, 3, Interval{Lo: Closed(3)}},
		{OpLT, 3, Interval{Hi: Open(3)}},
		{OpLE, 3, Interval{Hi: Closed(3)}},
		{OpEQ, 3, Interval{Lo: Closed(3), Hi: Closed(3)}},
		{Op(0), 3, Full()},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FromAtom(tt.op, tt.lit)); diff != "" {
				t.Errorf("FromAtom(%s, %d) mismatch (-want +got):\n%s", tt.op, tt.lit, diff)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want Interval
	}{
		{
			name: "unbounded loses to any bound",
			a:    Full(),
			b:    FromAtom(OpGT, 0),
			want: Interval{Lo: Open(0)},
		},
		{
			name: "larger lower and smaller upper win",
			a:    FromAtom(OpGE, 0),
			b:    Intersect(FromAtom(OpGT, 5), FromAtom(OpLT, 10)),
			want: Interval{Lo: Open(5), Hi: Open(10)},
		},
		{
			name: "equal lower bounds inclusive only when both are",
			a:    FromAtom(OpGE, 5),
			b:    FromAtom(OpGT, 5),
			want: Interval{Lo: Open(5)},
		},
		{
			name: "equal upper bounds keep inclusivity when both inclusive",
			a:    FromAtom(OpLE, 5),
			b:    FromAtom(OpLE, 5),
			want: Interval{Hi: Closed(5)},
		},
		{
			name: "contradiction",
			a:    FromAtom(OpGT, 5),
			b:    FromAtom(OpLE, 5),
			want: Interval{Lo: Open(5), Hi: Closed(5)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersect(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Intersect mismatch (-want +got):\n%s", diff)
			}
			if rev := Intersect(tt.b, tt.a); rev != got {
				t.Errorf("Intersect is not symmetric: %s vs %s", got, rev)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"full", Full(), false},
		{"half-open", FromAtom(OpGT, 1), false},
		{"point", Point(4), false},
		{"min greater than max", Interval{Lo: Closed(5), Hi: Closed(4)}, true},
		{"equal bounds one open", Interval{Lo: Open(5), Hi: Closed(5)}, true},
		{"equal bounds both open", Interval{Lo: Open(5), Hi: Open(5)}, true},
		{"open range without integers", Interval{Lo: Open(3), Hi: Open(4)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.IsEmpty(); got != tt.want {
				t.Errorf("%s.IsEmpty() = %v, want %v", tt.iv, got, tt.want)
			}
		})
	}
}

func TestSubsumes(t *testing.T) {
	tests := []struct {
		name              string
		covering, covered Interval
		want              bool
	}{
		{"full covers everything", Full(), Point(3), true},
		{"bounded never covers full", FromAtom(OpGT, 0), Full(), false},
		{"wider range", FromAtom(OpGT, 0), FromAtom(OpGT, 10), true},
		{"narrower range", FromAtom(OpGT, 10), FromAtom(OpGT, 0), false},
		{"inclusive covers exclusive at shared bound", FromAtom(OpGE, 5), FromAtom(OpGT, 5), true},
		{"exclusive misses inclusive at shared bound", FromAtom(OpGT, 5), FromAtom(OpGE, 5), false},
		{"point inside range", FromAtom(OpLT, 10), Point(9), true},
		{"point on open edge", FromAtom(OpLT, 10), Point(10), false},
		{"point on closed edge", FromAtom(OpLE, 10), Point(10), true},
		{"disjoint", FromAtom(OpLT, 0), FromAtom(OpGT, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subsumes(tt.covering, tt.covered); got != tt.want {
				t.Errorf("Subsumes(%s, %s) = %v, want %v", tt.covering, tt.covered, got, tt.want)
			}
		})
	}
}

func TestSubsumesIsPartialOrder(t *testing.T) {
	samples := []Interval{
		Full(),
		FromAtom(OpGT, 0),
		FromAtom(OpGE, 0),
		FromAtom(OpLT, 0),
		FromAtom(OpLE, 7),
		Point(0),
		Point(7),
		Intersect(FromAtom(OpGE, 0), FromAtom(OpLT, 7)),
		Intersect(FromAtom(OpGT, 0), FromAtom(OpLE, 7)),
	}
	for _, a := range samples {
		if !Subsumes(a, a) {
			t.Errorf("Subsumes(%s, %s) should be reflexive", a, a)
		}
		for _, b := range samples {
			if a.IsEmpty() || b.IsEmpty() {
				continue
			}
			if Subsumes(a, b) && Subsumes(b, a) && !a.Equal(b) {
				t.Errorf("mutual subsumption of distinct intervals %s and %s", a, b)
			}
			for _, c := range samples {
				if Subsumes(a, b) && Subsumes(b, c) && !Subsumes(a, c) {
					t.Errorf("Subsumes not transitive: %s ⊇ %s ⊇ %s", a, b, c)
				}
			}
		}
	}
}

func TestString(t *testing.T) {
	tests := map[string]Interval{
		"(-inf, +inf)": Full(),
		"(3, +inf)":    FromAtom(OpGT, 3),
		"(-inf, 3]":    FromAtom(OpLE, 3),
		"[0, 0]":       Point(0),
	}
	for want, iv := range tests {
		if got := iv.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
