// Package lineindex provides the pure line-boundary algorithms over source
// text: building the line-start table, mapping byte offsets to line numbers
// and line numbers to byte ranges. All offsets are bytes, lines are 0-based,
// ranges are half-open.
package lineindex

import (
	"fmt"

	"fortio.org/safecast"
)

// LineRange is a half-open byte interval [Start, End) covering one line,
// including its trailing newline. The End of the last line equals the total
// source length.
type LineRange struct {
	Start uint32
	End   uint32
}

// Length returns the byte length of text.
func Length(text string) uint32 {
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return n
}

// LineStarts returns the byte offset of every line start: 0, followed by the
// offset immediately after each '\n'. Text without a newline yields [0].
func LineStarts(text string) []uint32 {
	// The length check also guards the uint32(i+1) conversions below.
	Length(text)

	starts := make([]uint32, 1, 16)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return starts
}

// LineStart returns the byte offset where line begins. line == len(starts)
// yields length as an end-of-file sentinel, so the last line still has a
// well-defined range end; anything beyond that is absent.
func LineStart(starts []uint32, length uint32, line uint32) (uint32, bool) {
	n := uint32(len(starts))
	switch {
	case line < n:
		return starts[line], true
	case line == n:
		return length, true
	default:
		return 0, false
	}
}

// LineIndex returns the line containing byteIndex: the greatest i with
// starts[i] <= byteIndex. The lookup is deliberately liberal — offsets past
// end-of-file resolve to the last line rather than failing, since diagnostic
// spans may legitimately point at the end-of-file position.
func LineIndex(starts []uint32, byteIndex uint32) uint32 {
	lo, hi := 0, len(starts)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if starts[mid] <= byteIndex {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// starts[0] == 0 <= byteIndex, so hi >= 0.
	return uint32(hi)
}

// LineRangeOf returns the half-open byte range of line, absent when either
// endpoint is beyond the end-of-file sentinel.
func LineRangeOf(starts []uint32, length uint32, line uint32) (LineRange, bool) {
	start, ok := LineStart(starts, length, line)
	if !ok {
		return LineRange{}, false
	}
	end, ok := LineStart(starts, length, line+1)
	if !ok {
		return LineRange{}, false
	}
	return LineRange{Start: start, End: end}, true
}
