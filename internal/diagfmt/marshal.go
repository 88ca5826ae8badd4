package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ripple/internal/diag"
	"ripple/internal/filecache"
)

// Location describes a span in machine output. Byte offsets are always
// present; line/col fields are filled only with IncludePositions.
type Location struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

// NoteOut is a secondary note in machine output.
type NoteOut struct {
	Message  string   `json:"message" msgpack:"message"`
	Location Location `json:"location" msgpack:"location"`
}

// DiagnosticOut is one rendered diagnostic in machine output.
type DiagnosticOut struct {
	Severity string    `json:"severity" msgpack:"severity"`
	Code     string    `json:"code" msgpack:"code"`
	Message  string    `json:"message" msgpack:"message"`
	Location Location  `json:"location" msgpack:"location"`
	Notes    []NoteOut `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// Output is the root structure of JSON and msgpack output.
type Output struct {
	Diagnostics []DiagnosticOut `json:"diagnostics" msgpack:"diagnostics"`
	Count       int             `json:"count" msgpack:"count"`
}

func makeLocation(span diag.Span, files filecache.FileCache, includePositions bool) Location {
	name, ok := files.Name(span.File)
	if !ok {
		name = "<unknown>"
	}
	loc := Location{
		File:      name,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		if pos, ok := files.Resolve(span.File, span.Start); ok {
			loc.StartLine, loc.StartCol = pos.Line, pos.Col
		}
		if pos, ok := files.Resolve(span.File, span.End); ok {
			loc.EndLine, loc.EndCol = pos.Line, pos.Col
		}
	}
	return loc
}

// BuildOutput assembles the machine-output structure without serializing it.
func BuildOutput(bag *diag.Bag, files filecache.FileCache, opts MarshalOpts) Output {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	out := Output{
		Diagnostics: make([]DiagnosticOut, 0, limit),
		Count:       bag.Len(),
	}
	for i := 0; i < limit; i++ {
		d := items[i]
		rendered := DiagnosticOut{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, files, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				rendered.Notes = append(rendered.Notes, NoteOut{
					Message:  n.Msg,
					Location: makeLocation(n.Span, files, opts.IncludePositions),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, rendered)
	}
	return out
}

// JSON writes diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, files filecache.FileCache, opts MarshalOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(bag, files, opts))
}

// Msgpack writes diagnostics in msgpack encoding, the compact counterpart of
// the JSON format for tooling that consumes findings programmatically.
func Msgpack(w io.Writer, bag *diag.Bag, files filecache.FileCache, opts MarshalOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildOutput(bag, files, opts))
}
