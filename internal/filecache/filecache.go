// Package filecache adapts a source database to the read-only shape a
// diagnostics renderer expects. The adapter holds no state and caches
// nothing — the database underneath already memoizes every lookup — so
// constructing one is free and repeated lookups cost a cache probe.
package filecache

import (
	"strings"

	"ripple/internal/lineindex"
	"ripple/internal/sourcedb"
)

// Querier is the capability a renderer needs from a source database: name,
// content and line lookups for a file. *sourcedb.DB implements it; anything
// else that can answer these four questions works just as well.
type Querier interface {
	FileName(file sourcedb.FileID) (string, bool)
	SourceText(file sourcedb.FileID) (string, bool)
	LineIndex(file sourcedb.FileID, byteIndex uint32) (uint32, bool)
	LineRange(file sourcedb.FileID, line uint32) (lineindex.LineRange, bool)
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// FileCache is the read-only facade handed to renderers.
type FileCache struct {
	src Querier
}

// New wraps any Querier in a FileCache.
func New(src Querier) FileCache {
	return FileCache{src: src}
}

// Name returns the display name of file.
func (fc FileCache) Name(file sourcedb.FileID) (string, bool) {
	return fc.src.FileName(file)
}

// Source returns the full source text of file.
func (fc FileCache) Source(file sourcedb.FileID) (string, bool) {
	return fc.src.SourceText(file)
}

// LineIndex returns the line containing byteIndex.
func (fc FileCache) LineIndex(file sourcedb.FileID, byteIndex uint32) (uint32, bool) {
	return fc.src.LineIndex(file, byteIndex)
}

// LineRange returns the half-open byte range of line.
func (fc FileCache) LineRange(file sourcedb.FileID, line uint32) (lineindex.LineRange, bool) {
	return fc.src.LineRange(file, line)
}

// Resolve converts a byte offset into a 1-based line/column position. Offsets
// past end-of-file land on the last line with a column past its end, matching
// the liberal LineIndex lookup.
func (fc FileCache) Resolve(file sourcedb.FileID, byteIndex uint32) (LineCol, bool) {
	line, ok := fc.src.LineIndex(file, byteIndex)
	if !ok {
		return LineCol{}, false
	}
	rng, ok := fc.src.LineRange(file, line)
	if !ok {
		return LineCol{}, false
	}
	return LineCol{Line: line + 1, Col: byteIndex - rng.Start + 1}, true
}

// Line returns the text of line with the trailing newline trimmed, for use
// in rendered excerpts.
func (fc FileCache) Line(file sourcedb.FileID, line uint32) (string, bool) {
	rng, ok := fc.src.LineRange(file, line)
	if !ok {
		return "", false
	}
	text, ok := fc.src.SourceText(file)
	if !ok {
		return "", false
	}
	start, end := rng.Start, rng.End
	if start > uint32(len(text)) {
		start = uint32(len(text))
	}
	if end > uint32(len(text)) {
		end = uint32(len(text))
	}
	return strings.TrimSuffix(text[start:end], "\n"), true
}
