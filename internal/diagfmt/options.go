// Package diagfmt renders diagnostics into pretty, JSON and msgpack output.
// Renderers consume the filecache capability only: every line/column they
// print is resolved on demand by the source database, which caches the
// underlying lookups.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // extra source lines shown above and below the excerpt
	ShowNotes bool
}

// MarshalOpts configures the JSON and msgpack output of diagnostics.
type MarshalOpts struct {
	IncludePositions bool // add line/col alongside byte offsets
	Max              int  // truncate output (the bag itself is untouched), 0 = all
	IncludeNotes     bool
}
