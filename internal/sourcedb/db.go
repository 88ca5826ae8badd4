// Package sourcedb is the concrete source-text database: two mutable input
// families (file name, source text) keyed by FileID, and the derived
// line-metadata queries cached on demand by the query runtime. Setting an
// input invalidates exactly the derived values that transitively read it;
// everything is recomputed lazily on the next read.
package sourcedb

import (
	"ripple/internal/lineindex"
	"ripple/internal/query"
)

// FileID uniquely identifies a source file within a DB. It is an opaque,
// ordered, copyable key; the database attaches no meaning beyond identity.
type FileID uint32

// lineKey addresses per-line derived queries.
type lineKey struct {
	File FileID
	Line uint32
}

// byteKey addresses per-offset derived queries.
type byteKey struct {
	File FileID
	Byte uint32
}

// DB holds the inputs and derived queries for a set of source files.
// It is single-threaded, like the runtime underneath it.
type DB struct {
	rt *query.Runtime

	fileName   *query.Input[FileID, string]
	sourceText *query.Input[FileID, string]

	sourceLength *query.Derived[FileID, uint32]
	lineStarts   *query.Derived[FileID, []uint32]
	lineStart    *query.Derived[lineKey, uint32]
	lineIndex    *query.Derived[byteKey, uint32]
	lineRange    *query.Derived[lineKey, lineindex.LineRange]
}

// New returns an empty database. The query graph is fixed here and acyclic:
// line lookups depend on the line-start table, which depends on source text.
func New() *DB {
	db := &DB{rt: query.NewRuntime()}

	db.fileName = query.NewInput[FileID, string](db.rt, "file_name")
	db.sourceText = query.NewInput[FileID, string](db.rt, "source_text")

	db.sourceLength = query.NewDerived(db.rt, "source_length", func(file FileID) (uint32, bool) {
		text, ok := db.sourceText.Get(file)
		if !ok {
			return 0, false
		}
		return lineindex.Length(text), true
	})

	db.lineStarts = query.NewDerived(db.rt, "line_starts", func(file FileID) ([]uint32, bool) {
		text, ok := db.sourceText.Get(file)
		if !ok {
			return nil, false
		}
		return lineindex.LineStarts(text), true
	})

	db.lineStart = query.NewDerived(db.rt, "line_start", func(k lineKey) (uint32, bool) {
		starts, ok := db.lineStarts.Get(k.File)
		if !ok {
			return 0, false
		}
		length, ok := db.sourceLength.Get(k.File)
		if !ok {
			return 0, false
		}
		return lineindex.LineStart(starts, length, k.Line)
	})

	db.lineIndex = query.NewDerived(db.rt, "line_index", func(k byteKey) (uint32, bool) {
		starts, ok := db.lineStarts.Get(k.File)
		if !ok {
			return 0, false
		}
		return lineindex.LineIndex(starts, k.Byte), true
	})

	db.lineRange = query.NewDerived(db.rt, "line_range", func(k lineKey) (lineindex.LineRange, bool) {
		start, ok := db.lineStart.Get(lineKey{File: k.File, Line: k.Line})
		if !ok {
			return lineindex.LineRange{}, false
		}
		end, ok := db.lineStart.Get(lineKey{File: k.File, Line: k.Line + 1})
		if !ok {
			return lineindex.LineRange{}, false
		}
		return lineindex.LineRange{Start: start, End: end}, true
	})

	return db
}

// SetFileName establishes or replaces the display name for file.
func (db *DB) SetFileName(file FileID, name string) {
	db.fileName.Set(file, name)
}

// SetSourceText establishes or replaces the source text for file,
// invalidating every derived line query for that file.
func (db *DB) SetSourceText(file FileID, text string) {
	db.sourceText.Set(file, text)
}

// FileName returns the display name for file; false if never set.
func (db *DB) FileName(file FileID) (string, bool) {
	return db.fileName.Get(file)
}

// SourceText returns the current source text for file; false if never set.
func (db *DB) SourceText(file FileID) (string, bool) {
	return db.sourceText.Get(file)
}

// SourceLength returns the byte length of file's source text.
func (db *DB) SourceLength(file FileID) (uint32, bool) {
	return db.sourceLength.Get(file)
}

// LineStarts returns the line-start table for file. The slice is shared with
// the cache; callers must not modify it.
func (db *DB) LineStarts(file FileID) ([]uint32, bool) {
	return db.lineStarts.Get(file)
}

// LineStart returns the byte offset where line begins, with the end-of-file
// sentinel for line == number-of-lines; absent beyond that.
func (db *DB) LineStart(file FileID, line uint32) (uint32, bool) {
	return db.lineStart.Get(lineKey{File: file, Line: line})
}

// LineIndex returns the line containing byteIndex. Offsets past end-of-file
// resolve to the last line; absent only when the source text was never set.
func (db *DB) LineIndex(file FileID, byteIndex uint32) (uint32, bool) {
	return db.lineIndex.Get(byteKey{File: file, Byte: byteIndex})
}

// LineRange returns the half-open byte range of line.
func (db *DB) LineRange(file FileID, line uint32) (lineindex.LineRange, bool) {
	return db.lineRange.Get(lineKey{File: file, Line: line})
}

// Revision returns the database's current generation stamp.
func (db *DB) Revision() query.Revision {
	return db.rt.Revision()
}

// Stats returns per-query cache counters, keyed by query name.
func (db *DB) Stats() map[string]query.Stats {
	return db.rt.Stats()
}
