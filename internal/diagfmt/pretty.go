package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ripple/internal/diag"
	"ripple/internal/filecache"
	"ripple/internal/sourcedb"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	gutterColor  = color.New(color.FgBlue)
	caretColor   = color.New(color.FgRed, color.Bold)
)

// Pretty formats diagnostics in a human-readable way, one block per
// diagnostic (callers are expected to bag.Sort() beforehand):
//
//	<name>:<line>:<col>: <SEV> <CODE>: <message>
//	  12 | offending line of source
//	     |      ^~~~~~
//
// followed by notes in the same shape when enabled.
func Pretty(w io.Writer, bag *diag.Bag, files filecache.FileCache, opts PrettyOpts) {
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyDiagnostic(w, d, files, opts)
	}
}

func prettyDiagnostic(w io.Writer, d diag.Diagnostic, files filecache.FileCache, opts PrettyOpts) {
	sev := paint(severityColor(d.Severity), opts.Color, d.Severity.String())
	fmt.Fprintf(w, "%s: %s %s: %s\n", location(files, d.Primary), sev, d.Code, d.Message)
	excerpt(w, d.Primary, files, opts)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := paint(infoColor, opts.Color, "note")
		fmt.Fprintf(w, "%s: %s: %s\n", label, location(files, n.Span), n.Msg)
		excerpt(w, n.Span, files, opts)
	}
}

// location renders "<name>:<line>:<col>" for the start of a span, degrading
// to the bare name when positions cannot be resolved.
func location(files filecache.FileCache, span diag.Span) string {
	name, ok := files.Name(span.File)
	if !ok {
		name = "<unknown>"
	}
	pos, ok := files.Resolve(span.File, span.Start)
	if !ok {
		return name
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Col)
}

// excerpt prints the source line a span starts on, an aligned caret underline
// and any requested context lines. Nothing is printed when the file's source
// was never loaded.
func excerpt(w io.Writer, span diag.Span, files filecache.FileCache, opts PrettyOpts) {
	line, ok := files.LineIndex(span.File, span.Start)
	if !ok {
		return
	}
	text, ok := files.Line(span.File, line)
	if !ok {
		return
	}
	rng, ok := files.LineRange(span.File, line)
	if !ok {
		return
	}

	for i := opts.Context; i > 0; i-- {
		if line >= uint32(i) {
			writeContextLine(w, files, span.File, line-uint32(i), opts)
		}
	}

	num := fmt.Sprintf("%4d", line+1)
	fmt.Fprintf(w, "%s %s\n", paint(gutterColor, opts.Color, num+" |"), text)

	// Caret alignment must follow the rendered width, not byte counts.
	startCol := span.Start - rng.Start
	if startCol > uint32(len(text)) {
		startCol = uint32(len(text))
	}
	endCol := startCol + span.Len()
	if span.End > rng.End || endCol > uint32(len(text)) {
		endCol = uint32(len(text))
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(text[:startCol]))
	width := runewidth.StringWidth(text[startCol:endCol])
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	blank := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "%s %s%s\n",
		paint(gutterColor, opts.Color, blank+" |"),
		pad,
		paint(caretColor, opts.Color, caret))

	for i := 1; i <= opts.Context; i++ {
		writeContextLine(w, files, span.File, line+uint32(i), opts)
	}
}

func writeContextLine(w io.Writer, files filecache.FileCache, file sourcedb.FileID, line uint32, opts PrettyOpts) {
	text, ok := files.Line(file, line)
	if !ok {
		return
	}
	num := fmt.Sprintf("%4d", line+1)
	fmt.Fprintf(w, "%s %s\n", paint(gutterColor, opts.Color, num+" |"), text)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
