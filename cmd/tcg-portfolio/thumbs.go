package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/handiism/tcg-portfolio/internal/tracker"
)

var thumbsForce bool

var thumbsCmd = &cobra.Command{
	Use:   "thumbs",
	Short: "Download card thumbnails for an offline report",
	Long: "Downloads the image of every card in the dataset from the image CDN,\n" +
		"stores a small JPEG per card and regenerates the report to use them.",
	Args: cobra.NoArgs,
	RunE: runThumbs,
}

func init() {
	thumbsCmd.Flags().BoolVar(&thumbsForce, "force", false, "Download thumbnails that already exist again")
}

func runThumbs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s := tracker.NewStore(settings, logger)
	p := s.Load()
	if len(p) == 0 {
		fmt.Fprintln(out, "No cards in the dataset yet.")
		return nil
	}

	fetcher := tracker.NewThumbnailFetcherFromSettings(settings, thumbsForce, thumbProgress(out, verbose), logger)

	fmt.Fprintf(out, "📥 Fetching thumbnails for %d cards...\n", len(p))
	result, err := fetcher.Fetch(cmd.Context(), p)
	if err != nil {
		return err
	}

	if err := s.WriteReport(p); err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ %d downloaded, %d already present, %d failed. Report updated: %s\n",
		result.Downloaded, result.Existing, result.Failed, settings.ReportFile)
	return nil
}

// thumbProgress prints fetch events. Downloads run in parallel, so writes
// to out are serialized.
func thumbProgress(out io.Writer, verbose bool) func(tracker.ProgressEvent) {
	var mu sync.Mutex
	return func(event tracker.ProgressEvent) {
		if event.Level == tracker.LevelVerbose && !verbose {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, "   "+event.Message)
	}
}
