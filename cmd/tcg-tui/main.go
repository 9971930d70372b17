package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/handiism/tcg-portfolio/internal/config"
	"github.com/handiism/tcg-portfolio/internal/logging"
	"github.com/handiism/tcg-portfolio/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file")
		logFlag    = flag.String("log", "", "Write diagnostic logs to this file")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// the alternate screen owns the terminal, so logs go to a file or nowhere
	log := zerolog.Nop()
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = logging.New(logging.Config{Level: settings.LogLevel, Output: f})
	}

	if err := tui.Run(settings, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
