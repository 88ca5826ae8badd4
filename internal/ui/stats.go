// Package ui renders small styled terminal panels for the CLI.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ripple/internal/query"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Faint(true)
	hitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderStats formats per-query cache counters into a bordered panel, one
// row per query, sorted by name for stable output.
func RenderStats(stats map[string]query.Stats, rev query.Revision) string {
	names := make([]string, 0, len(stats))
	nameWidth := len("query")
	for name := range stats {
		names = append(names, name)
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("query cache (revision %d)", rev)))
	sb.WriteByte('\n')
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %8s %8s", nameWidth, "query", "hits", "misses")))
	for _, name := range names {
		s := stats[name]
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "%-*s %s %s",
			nameWidth, name,
			hitStyle.Render(fmt.Sprintf("%8d", s.Hits)),
			missStyle.Render(fmt.Sprintf("%8d", s.Misses)))
	}
	return panelStyle.Render(sb.String())
}
