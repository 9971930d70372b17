package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/handiism/tcg-portfolio/internal/collection"
	"github.com/handiism/tcg-portfolio/internal/config"
	"github.com/handiism/tcg-portfolio/internal/logging"
	"github.com/handiism/tcg-portfolio/internal/tracker"
)

var (
	configPath  string
	queriesFlag string
	dataFlag    string
	reportFlag  string
	logLevel    string
	verbose     bool
	noBanner    bool

	settings *config.Settings
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tcg-portfolio",
	Short: "Price your Pokémon card collection",
	Long: "Looks up every card of the collection on the Pokémon TCG API, keeps the\n" +
		"matches in a resumable JSON dataset and renders an HTML gallery.\n" +
		"Cards already in the dataset are never looked up again.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTracker,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to config file (default: tcg-portfolio.toml)")
	flags.StringVar(&dataFlag, "data", "", "Dataset file (overrides config)")
	flags.StringVar(&reportFlag, "report", "", "HTML report file (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.Flags().StringVarP(&queriesFlag, "queries", "q", "", "Query file, one card per line (default: built-in collection)")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "Do not print the banner")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(thumbsCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads settings, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if dataFlag != "" {
		settings.DataFile = dataFlag
	}
	if reportFlag != "" {
		settings.ReportFile = reportFlag
	}
	if queriesFlag != "" {
		settings.QueriesFile = queriesFlag
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}

	logger = logging.New(logging.Config{
		Level:  settings.LogLevel,
		Pretty: settings.LogFormat == "pretty",
		Output: os.Stderr,
	})
	return nil
}

func runTracker(cmd *cobra.Command, args []string) error {
	queries, err := collection.Load(settings.QueriesFile)
	if err != nil {
		return err
	}

	out := newConsole(cmd.OutOrStdout(), verbose)
	if !noBanner {
		fmt.Fprintln(cmd.OutOrStdout(), figure.NewFigure("TCG Portfolio", "small", true).String())
	}

	manager, err := tracker.NewFromSettings(settings, out.Handle, logger)
	if err != nil {
		return err
	}
	defer manager.Close()

	out.Start()
	summary, err := manager.Run(cmd.Context(), queries)
	out.Finish(summary, settings.ReportFile, err)
	return err
}
