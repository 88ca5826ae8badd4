package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ripple/internal/sourcedb"
	"ripple/internal/ui"
)

var linesCmd = &cobra.Command{
	Use:   "lines [flags] <file|directory>",
	Short: "Show line-offset metadata for a file or directory",
	Long:  `Show the line-start table of a file, map byte offsets to lines and lines to byte ranges, or summarize every file in a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLines,
}

func init() {
	linesCmd.Flags().Int64("byte", -1, "map a byte offset to its line")
	linesCmd.Flags().Int64("line", -1, "show the byte range of a line (0-based)")
	linesCmd.Flags().Bool("stats", false, "show query cache statistics")
	linesCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runLines(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return runLinesDir(cmd, path)
	}
	return runLinesFile(cmd, path)
}

func runLinesFile(cmd *cobra.Command, path string) error {
	db := sourcedb.New()
	if err := loadFile(db, 0, path); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	byteFlag, err := cmd.Flags().GetInt64("byte")
	if err != nil {
		return fmt.Errorf("failed to get byte flag: %w", err)
	}
	lineFlag, err := cmd.Flags().GetInt64("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}

	starts, _ := db.LineStarts(0)
	length, _ := db.SourceLength(0)

	if !quiet {
		fmt.Fprintf(out, "%s: %d lines, %d bytes\n", path, len(starts), length)
		for i := range starts {
			rng, ok := db.LineRange(0, uint32(i))
			if !ok {
				break
			}
			fmt.Fprintf(out, "%4d: [%d, %d)\n", i, rng.Start, rng.End)
		}
	}

	if byteFlag >= 0 {
		offset, err := safecast.Conv[uint32](byteFlag)
		if err != nil {
			return fmt.Errorf("byte offset overflow: %w", err)
		}
		line, _ := db.LineIndex(0, offset)
		fmt.Fprintf(out, "byte %d -> line %d\n", offset, line)
		if offset >= length {
			fmt.Fprintf(out, "note: offset is at or past end-of-file; resolved to the last line\n")
		}
	}

	if lineFlag >= 0 {
		line, err := safecast.Conv[uint32](lineFlag)
		if err != nil {
			return fmt.Errorf("line index overflow: %w", err)
		}
		rng, ok := db.LineRange(0, line)
		if !ok {
			return fmt.Errorf("line %d out of range (file has %d lines)", line, len(starts))
		}
		fmt.Fprintf(out, "line %d -> [%d, %d)\n", line, rng.Start, rng.End)
	}

	if showStats {
		fmt.Fprintln(out, ui.RenderStats(db.Stats(), db.Revision()))
	}
	return nil
}

// runLinesDir summarizes every regular file under dir. Each worker owns its
// database: the engine is single-threaded, so parallelism stays out here in
// the glue.
func runLinesDir(cmd *cobra.Command, dir string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	type summary struct {
		lines uint32
		bytes uint32
	}
	results := make([]summary, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			db := sourcedb.New()
			if err := loadFile(db, 0, path); err != nil {
				return err
			}
			starts, _ := db.LineStarts(0)
			length, _ := db.SourceLength(0)
			lines, err := safecast.Conv[uint32](len(starts))
			if err != nil {
				return fmt.Errorf("line count overflow: %w", err)
			}
			results[i] = summary{lines: lines, bytes: length}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range paths {
		fmt.Fprintf(out, "%s: %d lines, %d bytes\n", path, results[i].lines, results[i].bytes)
	}
	return nil
}
