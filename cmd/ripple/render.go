package main

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"ripple/internal/diag"
	"ripple/internal/diagfmt"
	"ripple/internal/filecache"
	"ripple/internal/sourcedb"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file>",
	Short: "Render a diagnostic over a byte or line range of a file",
	Long:  `Build a diagnostic spanning the given byte offsets (or whole lines) of a file and render it with a source excerpt, resolving all positions through the query cache`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Int64("start", -1, "span start byte offset")
	renderCmd.Flags().Int64("end", -1, "span end byte offset (exclusive, defaults to start+1)")
	renderCmd.Flags().Int64("start-line", -1, "span start line, 0-based (alternative to --start)")
	renderCmd.Flags().Int64("end-line", -1, "span end line, 0-based inclusive (defaults to --start-line)")
	renderCmd.Flags().StringP("message", "m", "", "diagnostic message")
	renderCmd.Flags().String("severity", "error", "diagnostic severity (error|warning|info)")
	renderCmd.Flags().StringArray("note", nil, "attach a note, anchored at the span start (repeatable)")
	renderCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	renderCmd.Flags().Int("context", 0, "extra source lines around the excerpt")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := sourcedb.New()
	if err := loadFile(db, 0, args[0]); err != nil {
		return err
	}

	span, err := resolveSpan(cmd, db)
	if err != nil {
		return err
	}

	severityStr, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}
	var severity diag.Severity
	switch severityStr {
	case "error":
		severity = diag.SevError
	case "warning":
		severity = diag.SevWarning
	case "info":
		severity = diag.SevInfo
	default:
		return fmt.Errorf("unsupported severity %q (must be error, warning or info)", severityStr)
	}

	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("failed to get message flag: %w", err)
	}
	if message == "" {
		message = "marked range"
	}
	notes, err := cmd.Flags().GetStringArray("note")
	if err != nil {
		return fmt.Errorf("failed to get note flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
		maxDiagnostics = cfg.MaxDiagnostics
	}

	bag := diag.NewBag(maxDiagnostics)
	builder := diag.NewReportBuilder(diag.BagReporter{Bag: bag}, severity, diag.UserDiagnostic, span, message)
	for _, note := range notes {
		builder.WithNote(diag.Span{File: span.File, Start: span.Start, End: span.Start}, note)
	}
	builder.Emit()
	bag.Sort()

	files := filecache.New(db)
	out := cmd.OutOrStdout()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty":
		useColor, err := colorEnabled(cmd, cfg)
		if err != nil {
			return err
		}
		context, err := cmd.Flags().GetInt("context")
		if err != nil {
			return fmt.Errorf("failed to get context flag: %w", err)
		}
		if !cmd.Flags().Changed("context") && cfg.Context > 0 {
			context = cfg.Context
		}
		diagfmt.Pretty(out, bag, files, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   context,
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(out, bag, files, diagfmt.MarshalOpts{IncludePositions: true, IncludeNotes: true})
	case "msgpack":
		return diagfmt.Msgpack(out, bag, files, diagfmt.MarshalOpts{IncludePositions: true, IncludeNotes: true})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
	}
}

// resolveSpan turns the --start/--end or --start-line/--end-line flags into
// a byte span, resolving line endpoints through the database's range queries.
func resolveSpan(cmd *cobra.Command, db *sourcedb.DB) (diag.Span, error) {
	startLine, err := cmd.Flags().GetInt64("start-line")
	if err != nil {
		return diag.Span{}, fmt.Errorf("failed to get start-line flag: %w", err)
	}
	if startLine >= 0 {
		endLine, err := cmd.Flags().GetInt64("end-line")
		if err != nil {
			return diag.Span{}, fmt.Errorf("failed to get end-line flag: %w", err)
		}
		if endLine < startLine {
			endLine = startLine
		}
		first, err := safecast.Conv[uint32](startLine)
		if err != nil {
			return diag.Span{}, fmt.Errorf("start-line overflow: %w", err)
		}
		last, err := safecast.Conv[uint32](endLine)
		if err != nil {
			return diag.Span{}, fmt.Errorf("end-line overflow: %w", err)
		}
		startRange, ok := db.LineRange(0, first)
		if !ok {
			return diag.Span{}, fmt.Errorf("start line %d out of range", first)
		}
		endRange, ok := db.LineRange(0, last)
		if !ok {
			return diag.Span{}, fmt.Errorf("end line %d out of range", last)
		}
		return diag.Span{File: 0, Start: startRange.Start, End: endRange.End}, nil
	}

	start, err := cmd.Flags().GetInt64("start")
	if err != nil {
		return diag.Span{}, fmt.Errorf("failed to get start flag: %w", err)
	}
	if start < 0 {
		return diag.Span{}, fmt.Errorf("provide --start or --start-line")
	}
	end, err := cmd.Flags().GetInt64("end")
	if err != nil {
		return diag.Span{}, fmt.Errorf("failed to get end flag: %w", err)
	}
	if end < start {
		end = start + 1
	}
	startOff, err := safecast.Conv[uint32](start)
	if err != nil {
		return diag.Span{}, fmt.Errorf("start overflow: %w", err)
	}
	endOff, err := safecast.Conv[uint32](end)
	if err != nil {
		return diag.Span{}, fmt.Errorf("end overflow: %w", err)
	}
	return diag.Span{File: 0, Start: startOff, End: endOff}, nil
}
