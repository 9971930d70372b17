package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/tcg-portfolio/internal/tracker"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the HTML report from the dataset",
	Long:  "Renders the report again from the saved dataset without any network access.",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	s := tracker.NewStore(settings, logger)
	p := s.Load()

	if err := s.WriteReport(p); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s written: %d cards, Total Value: $%.2f\n", settings.ReportFile, len(p), p.TotalValue())
	return nil
}
