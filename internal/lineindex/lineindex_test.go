package lineindex

import (
	"slices"
	"testing"
)

func TestLineStarts(t *testing.T) {
	cases := []struct {
		text string
		want []uint32
	}{
		{"ab\ncd\n", []uint32{0, 3, 6}},
		{"", []uint32{0}},
		{"ab\ncd", []uint32{0, 3}},
		{"\n", []uint32{0, 1}},
		{"\n\n", []uint32{0, 1, 2}},
		{"no newline", []uint32{0}},
	}
	for _, tc := range cases {
		got := LineStarts(tc.text)
		if !slices.Equal(got, tc.want) {
			t.Errorf("LineStarts(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestLineStartSentinel(t *testing.T) {
	text := "ab\ncd\n"
	starts := LineStarts(text)
	length := Length(text)

	for line := uint32(0); line < uint32(len(starts)); line++ {
		got, ok := LineStart(starts, length, line)
		if !ok || got != starts[line] {
			t.Errorf("LineStart(%d) = (%d, %v), want (%d, true)", line, got, ok, starts[line])
		}
	}

	// line == len(starts) is the end-of-file sentinel, not an error.
	got, ok := LineStart(starts, length, uint32(len(starts)))
	if !ok || got != length {
		t.Errorf("sentinel LineStart = (%d, %v), want (%d, true)", got, ok, length)
	}

	// Anything past the sentinel is absent.
	if _, ok := LineStart(starts, length, uint32(len(starts))+1); ok {
		t.Error("expected absent result past the sentinel")
	}
}

func TestLineIndexRoundTrip(t *testing.T) {
	text := "ab\ncd\nef"
	starts := LineStarts(text)
	length := Length(text)

	for line := uint32(0); line < uint32(len(starts)); line++ {
		start, ok := LineStart(starts, length, line)
		if !ok {
			t.Fatalf("LineStart(%d) unexpectedly absent", line)
		}
		if got := LineIndex(starts, start); got != line {
			t.Errorf("LineIndex(LineStart(%d)) = %d, want %d", line, got, line)
		}
	}
}

func TestLineIndexLiberalPastEOF(t *testing.T) {
	starts := LineStarts("ab\ncd\n")

	// Offsets past end-of-file resolve to the last line.
	if got := LineIndex(starts, 1000); got != 2 {
		t.Errorf("LineIndex(1000) = %d, want 2", got)
	}
	if got := LineIndex(starts, 6); got != 2 {
		t.Errorf("LineIndex(6) = %d, want 2", got)
	}
}

func TestLineRangeOf(t *testing.T) {
	text := "line0\nline1\nline2\n"
	starts := LineStarts(text)
	length := Length(text)

	if length != 18 {
		t.Fatalf("Length = %d, want 18", length)
	}
	if want := []uint32{0, 6, 12, 18}; !slices.Equal(starts, want) {
		t.Fatalf("LineStarts = %v, want %v", starts, want)
	}
	if got := LineIndex(starts, 7); got != 1 {
		t.Errorf("LineIndex(7) = %d, want 1", got)
	}

	rng, ok := LineRangeOf(starts, length, 1)
	if !ok || rng.Start != 6 || rng.End != 12 {
		t.Errorf("LineRangeOf(1) = (%v, %v), want ([6,12), true)", rng, ok)
	}

	// The last line's range ends at the total source length.
	last := uint32(len(starts)) - 1
	rng, ok = LineRangeOf(starts, length, last)
	if !ok || rng.End != length {
		t.Errorf("LineRangeOf(last).End = %d, want %d", rng.End, length)
	}

	if _, ok := LineRangeOf(starts, length, uint32(len(starts))); ok {
		t.Error("expected absent range when the end endpoint is past the sentinel")
	}
}
