// Package tracker runs a collection of card queries against the pricing
// API and keeps the portfolio up to date.
//
// # Manager
//
// The Manager takes every query through a single pass:
//
//  1. Skip it when its text is already an original_query in the portfolio
//  2. Wait the pacing interval (1.2s by default)
//  3. Parse it and resolve it with the strict/loose strategy fallback
//  4. On a match, extract the market price, append the entry and save
//  5. On a miss, report it and move on; the next run tries again
//
// # Basic Usage
//
//	manager, err := tracker.NewFromSettings(settings, func(event tracker.ProgressEvent) {
//	    fmt.Println(event.Message)
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer manager.Close()
//
//	summary, err := manager.Run(ctx, collection.DefaultQueries())
//
// Lookups are strictly sequential. A failed save stops the run and is
// returned; every other per-query problem is reported and skipped.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Item    *Item         // the query, its position and state
//	}
//
// GetProgress returns the counters of the current run and is safe to call
// from another goroutine.
//
// # Thumbnails
//
// ThumbnailFetcher downloads card images from the image CDN in parallel and
// stores resized JPEGs that the report prefers over remote images.
package tracker
