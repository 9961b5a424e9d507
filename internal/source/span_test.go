package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{
			name:     "shift normal span left by 5",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    5,
			expected: Span{File: 1, Start: 5, End: 15},
		},
		{
			name:     "shift span left by 0",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    0,
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "shift equals start - boundary case",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    10,
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "shift larger than start - returns original",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    15,
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "shift much larger than start",
			span:     Span{File: 1, Start: 5, End: 10},
			shift:    100,
			expected: Span{File: 1, Start: 5, End: 10},
		},
		{
			name:     "shift span at position 0",
			span:     Span{File: 1, Start: 0, End: 10},
			shift:    5,
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "shift zero-length span",
			span:     Span{File: 1, Start: 10, End: 10},
			shift:    3,
			expected: Span{File: 1, Start: 7, End: 7},
		},
		{
			name:     "shift by 1",
			span:     Span{File: 2, Start: 100, End: 150},
			shift:    1,
			expected: Span{File: 2, Start: 99, End: 149},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ShiftLeft(tt.shift)
			if result != tt.expected {
				t.Errorf("ShiftLeft() = %+v, want %+v", result, tt.expected)
			}
			// Verify file ID is preserved
			if result.File != tt.span.File {
				t.Errorf("File ID changed: got %d, want %d", result.File, tt.span.File)
			}
		})
	}
}

func TestSpan_ShiftRight(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	got := s.ShiftRight(6)
	want := Span{File: 3, Start: 10, End: 15}
	if got != want {
		t.Errorf("ShiftRight() = %+v, want %+v", got, want)
	}
}

func TestSpan_ContainsOverlaps(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 20}
	tests := []struct {
		name     string
		other    Span
		contains bool
		overlaps bool
	}{
		{"same", Span{File: 1, Start: 10, End: 20}, true, true},
		{"inner", Span{File: 1, Start: 12, End: 15}, true, true},
		{"touching end", Span{File: 1, Start: 20, End: 25}, false, false},
		{"touching start", Span{File: 1, Start: 5, End: 10}, false, false},
		{"crossing", Span{File: 1, Start: 18, End: 22}, false, true},
		{"other file", Span{File: 2, Start: 12, End: 15}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.other); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
			if got := outer.Overlaps(tt.other); got != tt.overlaps {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlaps)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 12}
	b := Span{File: 1, Start: 4, End: 11}
	if got, want := a.Cover(b), (Span{File: 1, Start: 4, End: 12}); got != want {
		t.Errorf("Cover() = %+v, want %+v", got, want)
	}
	// different files leave the receiver intact
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover() across files = %+v, want %+v", got, a)
	}
}

func TestSpan_EmptyLenString(t *testing.T) {
	s := Span{File: 0, Start: 7, End: 7}
	if !s.Empty() || s.Len() != 0 {
		t.Fatalf("expected empty span, got %+v", s)
	}
	s.End = 12
	if s.Empty() || s.Len() != 5 {
		t.Fatalf("expected len 5, got %d", s.Len())
	}
	if s.String() != "0:7-12" {
		t.Fatalf("unexpected String(): %q", s.String())
	}
}
