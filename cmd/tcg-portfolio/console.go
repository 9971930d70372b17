package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tcg-portfolio/internal/tracker"
)

var (
	priceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var rule = strings.Repeat("-", 50)

// console prints run progress in the tracker's classic line format:
//
//	[16/130] Vulpix 197                -> Found! $1.23
//
// Skipped queries show as a dot every tenth item.
type console struct {
	w       io.Writer
	verbose bool
}

func newConsole(w io.Writer, verbose bool) *console {
	return &console{w: w, verbose: verbose}
}

// Start prints the run header.
func (c *console) Start() {
	fmt.Fprintln(c.w, "--- RESUMABLE TRACKER ---")
}

// Handle prints one progress event.
func (c *console) Handle(event tracker.ProgressEvent) {
	item := event.Item
	if item == nil {
		c.runEvent(event)
		return
	}

	if event.Level == tracker.LevelError {
		fmt.Fprintf(c.w, "\n❌ %s", event.Message)
		return
	}

	switch item.State {
	case tracker.StateSkipped:
		if c.verbose {
			fmt.Fprintf(c.w, "\n[%d/%d] %-25s -> already in portfolio", item.Index, item.Total, item.Query)
		} else if (item.Index-1)%10 == 0 {
			fmt.Fprint(c.w, ".")
		}
	case tracker.StateResolving:
		fmt.Fprintf(c.w, "\n[%d/%d] %-25s ", item.Index, item.Total, item.Query)
	case tracker.StateResolved:
		if item.Entry != nil && item.Entry.MarketPrice > 0 {
			fmt.Fprintf(c.w, "-> Found! %s", priceStyle.Render(fmt.Sprintf("$%.2f", item.Entry.MarketPrice)))
		} else {
			fmt.Fprint(c.w, "-> Found! (No Price)")
		}
	case tracker.StateFailed:
		fmt.Fprintf(c.w, "-> %s", failedStyle.Render("Failed (Skipping)"))
	}
}

func (c *console) runEvent(event tracker.ProgressEvent) {
	switch event.Level {
	case tracker.LevelError:
		fmt.Fprintf(c.w, "\n❌ %s\n", event.Message)
	case tracker.LevelWarning:
		fmt.Fprintf(c.w, "\n⚠️  %s\n", event.Message)
	case tracker.LevelVerbose:
		if c.verbose {
			fmt.Fprintln(c.w, event.Message)
		}
	default:
		fmt.Fprintln(c.w, event.Message)
		if strings.HasPrefix(event.Message, "Already Found") {
			fmt.Fprintln(c.w, rule)
		}
	}
}

// Finish prints the run footer.
func (c *console) Finish(summary tracker.Summary, reportFile string, err error) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, rule)
	if err != nil {
		fmt.Fprintf(c.w, "STOPPED. Total Value so far: $%.2f (%d cards)\n", summary.TotalValue, summary.Cards)
		return
	}
	fmt.Fprintf(c.w, "DONE! Total Value: $%.2f\n", summary.TotalValue)
	if c.verbose {
		fmt.Fprintf(c.w, "Found %d, failed %d, already stored %d in %s\n",
			summary.Resolved, summary.Failed, summary.Skipped, summary.Duration.Round(time.Second))
	}
	fmt.Fprintf(c.w, "Open '%s' to see your portfolio.\n", reportFile)
}
