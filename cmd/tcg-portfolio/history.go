package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/handiism/tcg-portfolio/internal/history"
	ioutils "github.com/handiism/tcg-portfolio/internal/io"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the portfolio value after each run",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !ioutils.FileExists(settings.HistoryFile) {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	h, err := history.Open(settings.HistoryFile)
	if err != nil {
		return err
	}
	defer h.Close()

	entries, err := h.List(historyLimit)
	if err != nil {
		return err
	}
	printHistory(out, entries)
	return nil
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-17s %6s %12s %12s\n", "Date", "Cards", "Value", "Change")
	fmt.Fprintln(w, rule)
	for _, e := range entries {
		change := "-"
		if e.HasPrevious {
			change = fmt.Sprintf("%+.2f", e.ValueChange)
			if e.CardChange != 0 {
				change += fmt.Sprintf(" (%+d)", e.CardChange)
			}
		}
		fmt.Fprintf(w, "%-17s %6d %12s %12s\n",
			e.TakenAt.Local().Format("2006-01-02 15:04"),
			e.Cards,
			fmt.Sprintf("$%.2f", e.TotalValue),
			change,
		)
	}
}
