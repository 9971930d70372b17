package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/tcg-portfolio/internal/config"
	ioutils "github.com/handiism/tcg-portfolio/internal/io"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to a config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", config.ConfigName+".toml", "Where to write the config file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if ioutils.FileExists(configInitPath) && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configInitPath)
	}
	if err := settings.Save(configInitPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Config written to %s\n", configInitPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := settings

	fmt.Fprintf(out, "data_file             = %s\n", s.DataFile)
	fmt.Fprintf(out, "report_file           = %s\n", s.ReportFile)
	fmt.Fprintf(out, "history_file          = %s (enabled: %t)\n", s.HistoryFile, s.HistoryEnabled)
	fmt.Fprintf(out, "thumbnail_dir         = %s\n", s.ThumbnailDir)
	fmt.Fprintf(out, "api_base_url          = %s\n", s.APIBaseURL)
	fmt.Fprintf(out, "pacing_interval       = %s\n", s.PacingInterval)
	fmt.Fprintf(out, "max_attempts          = %d\n", s.MaxAttempts)
	fmt.Fprintf(out, "busy_backoff          = %s + %s per attempt\n", s.BusyBackoffBase, s.BusyBackoffStep)
	fmt.Fprintf(out, "transport_retry_delay = %s\n", s.TransportRetryDelay)
	queries := s.QueriesFile
	if queries == "" {
		queries = "(built-in collection)"
	}
	fmt.Fprintf(out, "queries_file          = %s\n", queries)
	return nil
}
