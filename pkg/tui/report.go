// Package tui renders analysis and reduction reports on the terminal.
// Simple streaming output - clean styled text, no full-screen TUI. The
// core packages return structured statistics and never print; all
// presentation lives here.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/zerotrim/zerotrim/pkg/runs"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintDistribution renders the idle-run distribution of a table.
func PrintDistribution(label string, stats *runs.Stats) {
	fmt.Println()
	fmt.Println(accentStyle.Render("▸ " + label))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Rows:"), titleStyle.Render(formatNumber(int64(stats.TotalRows))))
	fmt.Printf("  %s %s %s\n",
		mutedStyle.Render("Idle rows:"),
		titleStyle.Render(formatNumber(int64(stats.IdleRows))),
		mutedStyle.Render(fmt.Sprintf("(%.2f%%)", stats.IdleFraction*100)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Idle runs:"), titleStyle.Render(formatNumber(int64(stats.RunCount))))

	if stats.RunCount == 0 {
		return
	}

	fmt.Printf("  %s %.2f\n", mutedStyle.Render("Mean run length:"), stats.MeanRunLength)
	fmt.Printf("  %s %d\n", mutedStyle.Render("Max run length:"), stats.MaxRunLength)
	fmt.Println(mutedStyle.Render("  Run length distribution:"))
	for _, length := range stats.Lengths() {
		fmt.Printf("    %s %s\n",
			mutedStyle.Render(fmt.Sprintf("length %d:", length)),
			titleStyle.Render(fmt.Sprintf("%d runs", stats.LengthCounts[length])))
	}
}

// PrintReductionReport renders the outcome of a thinning pass.
func PrintReductionReport(stats *runs.ThinStats, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ REDUCTION COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s → %s %s\n",
		mutedStyle.Render("Rows:"),
		titleStyle.Render(formatNumber(int64(stats.OriginalRows))),
		titleStyle.Render(formatNumber(int64(stats.FilteredRows))),
		successStyle.Render(fmt.Sprintf("(-%.2f%%)", stats.ReductionPct)))
	fmt.Printf("  %s %s → %s %s\n",
		mutedStyle.Render("Idle rows:"),
		titleStyle.Render(formatNumber(int64(stats.OriginalIdle))),
		titleStyle.Render(formatNumber(int64(stats.FilteredIdle))),
		successStyle.Render(fmt.Sprintf("(-%.2f%%)", stats.IdleReductionPct)))
	fmt.Printf("  %s %d\n", mutedStyle.Render("Runs thinned:"), stats.LongRuns)

	if elapsed > 0 {
		throughput := float64(stats.OriginalRows) / elapsed.Seconds()
		fmt.Printf("  %s %s %s\n",
			mutedStyle.Render("Time:"),
			titleStyle.Render(formatDuration(elapsed)),
			mutedStyle.Render(fmt.Sprintf("(%s rows/sec)", formatNumber(int64(throughput)))))
	}
	fmt.Println()
}

// ClearLine clears the current line.
func ClearLine() {
	fmt.Print("\r\033[K")
}

// ShowProgress creates a progress bar for batch processing.
func ShowProgress(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
