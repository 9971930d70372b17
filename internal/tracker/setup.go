package tracker

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/handiism/tcg-portfolio/internal/config"
	"github.com/handiism/tcg-portfolio/internal/history"
	"github.com/handiism/tcg-portfolio/internal/http"
	"github.com/handiism/tcg-portfolio/internal/pokemontcg"
	"github.com/handiism/tcg-portfolio/internal/report"
	"github.com/handiism/tcg-portfolio/internal/store"
)

// NewStore builds the JSON store described by settings, rendering reports
// with local thumbnails when they exist.
func NewStore(settings *config.Settings, log zerolog.Logger) *store.JSONStore {
	return store.NewJSONStore(store.Options{
		DataFile:   settings.DataFile,
		ReportFile: settings.ReportFile,
		Renderer: &report.Gallery{
			ReportFile:   settings.ReportFile,
			ThumbnailDir: settings.ThumbnailDir,
		},
	}, log)
}

// NewFromSettings wires a Manager with the real API client, the JSON store
// and, when enabled, the value history. A history database that cannot be
// opened only produces a warning. Call Close when done.
func NewFromSettings(settings *config.Settings, onProgress func(ProgressEvent), log zerolog.Logger) (*Manager, error) {
	client := http.NewClient(settings.ToClientOptions(), log)
	sleeper := pokemontcg.TimerSleeper{}
	resolver := pokemontcg.NewResolver(client, sleeper, settings.ToRetryPolicy(), log)

	opts := Options{
		PacingInterval: settings.PacingInterval,
		Sleeper:        sleeper,
	}
	if settings.PacingInterval == 0 {
		opts.PacingInterval = -1
	}

	var closers []func() error
	if settings.HistoryEnabled && settings.HistoryFile != "" {
		h, err := history.Open(settings.HistoryFile)
		if err != nil {
			log.Warn().Err(err).Str("path", settings.HistoryFile).Msg("History unavailable, run continues without it")
			if onProgress != nil {
				onProgress(ProgressEvent{
					Message: fmt.Sprintf("Value history unavailable: %v", err),
					Level:   LevelWarning,
				})
			}
		} else {
			opts.History = h
			closers = append(closers, h.Close)
		}
	}

	m := NewManager(NewStore(settings, log), resolver, opts, onProgress, log)
	m.closers = closers
	return m, nil
}

// NewThumbnailFetcherFromSettings builds a ThumbnailFetcher that downloads
// through the shared HTTP client.
func NewThumbnailFetcherFromSettings(settings *config.Settings, force bool, onProgress func(ProgressEvent), log zerolog.Logger) *ThumbnailFetcher {
	client := http.NewClient(settings.ToClientOptions(), log)
	return NewThumbnailFetcher(client, ThumbnailOptions{
		Dir:         settings.ThumbnailDir,
		MaxSize:     settings.ThumbnailMaxSize,
		Concurrency: settings.ThumbnailConcurrency,
		Force:       force,
	}, onProgress, log)
}
