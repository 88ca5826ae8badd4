package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ripple/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ripple",
	Short: "Demand-driven source metadata query engine",
	Long:  `Ripple derives byte-offset and line-index metadata from source files on demand, caching every query until an input it read changes, and renders diagnostics on top of the cached lookups`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the config file and the
// terminal. The flag wins over config; "auto" follows stdout.
func colorEnabled(cmd *cobra.Command, cfg Config) (bool, error) {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && cfg.Color != "" {
		mode = cfg.Color
	}
	switch mode {
	case "on":
		// fatih/color disables itself off-terminal; the user asked anyway.
		color.NoColor = false
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
}
