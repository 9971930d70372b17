package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/handiism/tcg-portfolio/internal/history"
	"github.com/handiism/tcg-portfolio/internal/model"
	"github.com/handiism/tcg-portfolio/internal/pokemontcg"
	"github.com/handiism/tcg-portfolio/internal/store"
)

// DefaultPacingInterval is the pause before every card lookup.
const DefaultPacingInterval = 1200 * time.Millisecond

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// QueryState is where a query is in its single pass through a run.
//
//	Pending → Skipped
//	Pending → Resolving → Resolved | Failed
type QueryState int

const (
	StatePending QueryState = iota
	StateSkipped
	StateResolving
	StateResolved
	StateFailed
)

func (s QueryState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSkipped:
		return "skipped"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("QueryState(%d)", int(s))
	}
}

// Item describes the query a progress event is about.
type Item struct {
	Index int // 1-based position in the run
	Total int
	Query model.Query
	State QueryState

	// Entry is set once the query is Resolved.
	Entry *model.PortfolioEntry
}

func (i *Item) clone() *Item {
	c := *i
	return &c
}

// ProgressEvent represents a run progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Item is nil for run-level messages.
	Item *Item
}

// Progress is a point-in-time view of a running Manager.
type Progress struct {
	Processed int32
	Total     int32
	Resolved  int32
	Failed    int32
	Skipped   int32
}

// Summary is the outcome of a run.
type Summary struct {
	RunID      string
	Total      int
	Resolved   int
	Failed     int
	Skipped    int
	Cards      int     // entries in the portfolio after the run
	TotalValue float64 // sum of their market prices
	Duration   time.Duration
}

// Resolver finds the card for a parsed query.
// *pokemontcg.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, p model.ParsedQuery) (pokemontcg.Resolution, error)
}

// Recorder keeps a snapshot of every completed run.
// *history.Store implements it.
type Recorder interface {
	Record(snap history.Snapshot) error
}

// Options tunes a Manager.
type Options struct {
	// PacingInterval is waited before every lookup. Zero means
	// DefaultPacingInterval; use a negative value to disable pacing.
	PacingInterval time.Duration

	// Sleeper performs the pacing waits. Defaults to a real timer.
	Sleeper pokemontcg.Sleeper

	// History, when set, receives a snapshot after every completed run.
	History Recorder

	// Now defaults to time.Now.
	Now func() time.Time
}

// Manager runs a collection of queries through the resolver, persisting
// every match as soon as it is found.
type Manager struct {
	store    store.Store
	resolver Resolver
	opts     Options
	log      zerolog.Logger

	total     int32
	processed int32
	resolved  int32
	failed    int32
	skipped   int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
	closers    []func() error
}

// NewManager creates a new Manager.
func NewManager(s store.Store, resolver Resolver, opts Options, onProgress func(ProgressEvent), log zerolog.Logger) *Manager {
	if opts.PacingInterval == 0 {
		opts.PacingInterval = DefaultPacingInterval
	}
	if opts.Sleeper == nil {
		opts.Sleeper = pokemontcg.TimerSleeper{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:      s,
		resolver:   resolver,
		opts:       opts,
		log:        log.With().Str("component", "tracker").Logger(),
		onProgress: onProgress,
	}
}

// Run processes queries in order, once each.
//
// Queries already in the saved portfolio are skipped without any network
// traffic. Each remaining query is paced, resolved and, when a card is
// found, appended to the portfolio which is saved immediately. A query that
// cannot be resolved is reported and left for the next run.
//
// Per-query failures never stop the run. Run returns an error only when
// the context is cancelled or the portfolio cannot be saved; the Summary
// then covers the queries processed so far.
func (m *Manager) Run(ctx context.Context, queries []model.Query) (Summary, error) {
	started := m.opts.Now()
	summary := Summary{RunID: uuid.NewString(), Total: len(queries)}
	log := m.log.With().Str("run_id", summary.RunID).Logger()

	m.reset(len(queries))

	portfolio := m.store.Load()
	found := portfolio.ResolvedQueries()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Already Found: %d cards", len(portfolio)), Level: LevelInfo})
	log.Info().Int("queries", len(queries)).Int("stored", len(portfolio)).Msg("Run started")

	finish := func() {
		summary.Resolved = int(atomic.LoadInt32(&m.resolved))
		summary.Failed = int(atomic.LoadInt32(&m.failed))
		summary.Skipped = int(atomic.LoadInt32(&m.skipped))
		summary.Cards = len(portfolio)
		summary.TotalValue = portfolio.TotalValue()
		summary.Duration = m.opts.Now().Sub(started)
	}

	for i, q := range queries {
		item := &Item{Index: i + 1, Total: len(queries), Query: q, State: StatePending}

		if found[q] {
			item.State = StateSkipped
			atomic.AddInt32(&m.skipped, 1)
			atomic.AddInt32(&m.processed, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s already in portfolio", q), Level: LevelVerbose, Item: item.clone()})
			continue
		}

		if err := ctx.Err(); err != nil {
			finish()
			return summary, err
		}

		item.State = StateResolving
		m.progress(ProgressEvent{Message: fmt.Sprintf("Looking up %s", q), Level: LevelInfo, Item: item.clone()})

		entry, err := m.resolve(ctx, log, q)
		if err != nil {
			finish()
			return summary, err
		}
		if entry == nil {
			item.State = StateFailed
			atomic.AddInt32(&m.failed, 1)
			atomic.AddInt32(&m.processed, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s: Failed (Skipping)", q), Level: LevelWarning, Item: item.clone()})
			continue
		}

		portfolio = append(portfolio, *entry)
		if err := m.store.Save(portfolio); err != nil {
			portfolio = portfolio[:len(portfolio)-1]
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not save progress: %v", err), Level: LevelError, Item: item.clone()})
			log.Error().Err(err).Str("query", string(q)).Msg("Save failed, aborting run")
			finish()
			return summary, fmt.Errorf("save progress: %w", err)
		}
		found[q] = true

		item.State = StateResolved
		item.Entry = entry
		atomic.AddInt32(&m.resolved, 1)
		atomic.AddInt32(&m.processed, 1)
		m.progress(ProgressEvent{Message: foundMessage(q, entry.MarketPrice), Level: LevelSuccess, Item: item.clone()})
	}

	finish()
	m.record(log, summary)
	log.Info().
		Int("resolved", summary.Resolved).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Float64("total_value", summary.TotalValue).
		Dur("took", summary.Duration).
		Msg("Run finished")

	return summary, nil
}

// resolve paces, parses and resolves one query. A nil entry with a nil
// error means the query failed.
func (m *Manager) resolve(ctx context.Context, log zerolog.Logger, q model.Query) (*model.PortfolioEntry, error) {
	parsed := pokemontcg.ParseQuery(q)
	if !parsed.Complete() {
		log.Warn().Str("query", string(q)).Msg("Query needs a name and a number, not searching")
		return nil, nil
	}

	if m.opts.PacingInterval > 0 {
		if err := m.opts.Sleeper.Sleep(ctx, m.opts.PacingInterval); err != nil {
			return nil, err
		}
	}

	res, err := m.resolver.Resolve(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if !res.Found() {
		ev := log.Info()
		if res.LastErr != nil {
			ev = log.Warn().Err(res.LastErr)
		}
		ev.Str("query", string(q)).Int("requests", res.Requests).Msg("No matching card")
		return nil, nil
	}

	price := pokemontcg.ExtractMarketPrice(res.Card)
	entry := model.NewPortfolioEntry(q, res.Card, price)
	log.Debug().
		Str("query", string(q)).
		Str("card_id", res.Card.ID).
		Stringer("strategy", res.Strategy.Kind).
		Float64("price", price).
		Msg("Card resolved")
	return &entry, nil
}

func (m *Manager) record(log zerolog.Logger, summary Summary) {
	if m.opts.History == nil {
		return
	}
	snap := history.Snapshot{
		RunID:      summary.RunID,
		TakenAt:    m.opts.Now(),
		Cards:      summary.Cards,
		TotalValue: summary.TotalValue,
		Resolved:   summary.Resolved,
		Failed:     summary.Failed,
		Skipped:    summary.Skipped,
	}
	if err := m.opts.History.Record(snap); err != nil {
		log.Warn().Err(err).Msg("Could not record value history")
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not record value history: %v", err), Level: LevelWarning})
	}
}

// OnProgress replaces the progress callback. Call it before Run.
func (m *Manager) OnProgress(fn func(ProgressEvent)) {
	m.onProgress = fn
}

// GetProgress returns current run progress.
func (m *Manager) GetProgress() Progress {
	return Progress{
		Processed: atomic.LoadInt32(&m.processed),
		Total:     atomic.LoadInt32(&m.total),
		Resolved:  atomic.LoadInt32(&m.resolved),
		Failed:    atomic.LoadInt32(&m.failed),
		Skipped:   atomic.LoadInt32(&m.skipped),
	}
}

// Portfolio returns the currently saved portfolio.
func (m *Manager) Portfolio() model.Portfolio {
	return m.store.Load()
}

// Close releases resources opened by NewFromSettings.
func (m *Manager) Close() error {
	m.mu.Lock()
	closers := m.closers
	m.closers = nil
	m.mu.Unlock()

	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (m *Manager) reset(total int) {
	atomic.StoreInt32(&m.total, int32(total))
	atomic.StoreInt32(&m.processed, 0)
	atomic.StoreInt32(&m.resolved, 0)
	atomic.StoreInt32(&m.failed, 0)
	atomic.StoreInt32(&m.skipped, 0)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func foundMessage(q model.Query, price float64) string {
	if price > 0 {
		return fmt.Sprintf("%s: Found! $%.2f", q, price)
	}
	return fmt.Sprintf("%s: Found! (No Price)", q)
}
