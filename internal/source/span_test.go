package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 5, End: 50}
	if !outer.Contains(Span{File: 0, Start: 5, End: 50}) {
		t.Error("span should contain itself")
	}
	if outer.Contains(Span{File: 0, Start: 4, End: 10}) {
		t.Error("span starting before outer must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 6, End: 10}) {
		t.Error("span from another file must not be contained")
	}
}

func TestSpanZeroideToStart(t *testing.T) {
	sp := Span{File: 3, Start: 7, End: 12}.ZeroideToStart()
	if !sp.Empty() || sp.Start != 7 {
		t.Errorf("ZeroideToStart = %v", sp)
	}
}
