package tracker

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/tcg-portfolio/internal/io"
	"github.com/handiism/tcg-portfolio/internal/model"
	"github.com/handiism/tcg-portfolio/internal/report"
)

// ImageGetter downloads an image. *http.Client implements it.
type ImageGetter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// ThumbnailOptions configures a ThumbnailFetcher.
type ThumbnailOptions struct {
	Dir         string // where thumbnails are written
	MaxSize     int    // longest side in pixels
	Concurrency int    // parallel downloads
	Force       bool   // re-download thumbnails that already exist
}

// ThumbnailResult counts what a Fetch did.
type ThumbnailResult struct {
	Downloaded int
	Existing   int
	Failed     int
}

// ThumbnailFetcher downloads the card images of a portfolio and stores them
// as small local JPEGs named by report.ThumbnailFile.
//
// Images come from the image CDN, not the pricing API, so downloads run in
// parallel up to Concurrency.
type ThumbnailFetcher struct {
	getter     ImageGetter
	images     *ioutils.ImageService
	opts       ThumbnailOptions
	onProgress func(ProgressEvent)
	log        zerolog.Logger

	done int32
}

// NewThumbnailFetcher creates a ThumbnailFetcher.
func NewThumbnailFetcher(getter ImageGetter, opts ThumbnailOptions, onProgress func(ProgressEvent), log zerolog.Logger) *ThumbnailFetcher {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &ThumbnailFetcher{
		getter:     getter,
		images:     ioutils.NewImageService(),
		opts:       opts,
		onProgress: onProgress,
		log:        log.With().Str("component", "thumbnails").Logger(),
	}
}

// Fetch makes sure every entry with an image URL has a thumbnail.
//
// A failed download is reported and counted; it does not stop the others.
// Fetch returns an error only when the thumbnail directory cannot be
// created or ctx is cancelled.
func (f *ThumbnailFetcher) Fetch(ctx context.Context, p model.Portfolio) (ThumbnailResult, error) {
	if err := ioutils.EnsureDir(f.opts.Dir); err != nil {
		return ThumbnailResult{}, fmt.Errorf("create thumbnail dir: %w", err)
	}

	var downloaded, existing, failed int32
	atomic.StoreInt32(&f.done, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Concurrency)

	for _, e := range p {
		if e.Image == "" {
			continue
		}
		path := filepath.Join(f.opts.Dir, report.ThumbnailFile(model.Query(e.OriginalQuery)))

		if !f.opts.Force && ioutils.FileExists(path) {
			existing++
			continue
		}

		g.Go(func() error {
			defer atomic.AddInt32(&f.done, 1)

			if err := f.fetchOne(ctx, e, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				atomic.AddInt32(&failed, 1)
				f.progress(ProgressEvent{Message: fmt.Sprintf("Thumbnail for %s failed: %v", e.OriginalQuery, err), Level: LevelWarning})
				return nil
			}

			atomic.AddInt32(&downloaded, 1)
			f.progress(ProgressEvent{Message: fmt.Sprintf("Thumbnail saved: %s", filepath.Base(path)), Level: LevelVerbose})
			return nil
		})
	}

	err := g.Wait()
	result := ThumbnailResult{
		Downloaded: int(atomic.LoadInt32(&downloaded)),
		Existing:   int(existing),
		Failed:     int(atomic.LoadInt32(&failed)),
	}
	f.log.Info().
		Int("downloaded", result.Downloaded).
		Int("existing", result.Existing).
		Int("failed", result.Failed).
		Msg("Thumbnails fetched")
	return result, err
}

// Done returns how many downloads have finished in the current Fetch.
func (f *ThumbnailFetcher) Done() int32 {
	return atomic.LoadInt32(&f.done)
}

func (f *ThumbnailFetcher) fetchOne(ctx context.Context, e model.PortfolioEntry, path string) error {
	data, err := f.getter.Get(ctx, e.Image)
	if err != nil {
		return err
	}

	thumb, err := f.images.Thumbnail(ctx, data, f.opts.MaxSize)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	return ioutils.WriteFileAtomic(path, thumb)
}

func (f *ThumbnailFetcher) progress(event ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(event)
	}
}
