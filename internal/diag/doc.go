// Package diag defines the diagnostic data model consumed by the renderers
// in internal/diagfmt.
//
// Diagnostic is the central record: severity, a stable code, a message, a
// primary byte span and optional notes. Spans carry raw byte offsets only —
// resolving them to line/column positions is the renderer's job, answered on
// demand by the source database through internal/filecache.
//
// Producers emit through a Reporter (BagReporter collects into a Bag) or the
// chained ReportBuilder helpers. The package performs no formatting and no
// IO; keep the model deterministic so output can be serialized and diffed.
package diag
