package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/whiskerlabs/catstonks/internal/analysis"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	significantStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Bold(true)

	insignificantStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := titleStyle.Render("🐱📈 catstonks - Finance-Inspired Cat Names vs the Stock Market")
	fmt.Println(banner)
	fmt.Println(strings.Repeat("═", 62))
	fmt.Println()
}

// DisplayReport renders the correlation result and a preview of the merged
// series to the terminal.
func DisplayReport(report *analysis.Report) {
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Results for %s", report.Symbol)))
	fmt.Printf("  Correlation: %s\n", statStyle.Render(fmt.Sprintf("%.3f", report.Correlation)))
	fmt.Printf("  P-value:     %s\n", statStyle.Render(fmt.Sprintf("%.4f", report.PValue)))

	verdictStyle := insignificantStyle
	if report.Significant {
		verdictStyle = significantStyle
	}
	fmt.Printf("  %s\n\n", verdictStyle.Render(report.Verdict))

	fmt.Println(tableStyle.Render(formatRowsPreview(report.Rows, 10)))
	fmt.Println()
}

// formatRowsPreview renders up to limit merged rows as a plain text table.
func formatRowsPreview(rows []analysis.MergedRow, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %12s %18s\n", "Date", "Close", "FinanceCatCount")

	shown := len(rows)
	if shown > limit {
		shown = limit
	}
	for _, row := range rows[:shown] {
		fmt.Fprintf(&b, "%-12s %12.2f %18d\n",
			row.Date.Format(analysis.DateKey), row.Close, row.FinanceCatCount)
	}
	if len(rows) > limit {
		fmt.Fprintf(&b, "... %d more rows", len(rows)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}
