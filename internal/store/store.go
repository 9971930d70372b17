package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	ioutils "github.com/handiism/tcg-portfolio/internal/io"
	"github.com/handiism/tcg-portfolio/internal/model"
)

// Store persists the portfolio between runs.
type Store interface {
	// Load returns the saved portfolio. It never fails: a missing or
	// unreadable dataset yields an empty portfolio.
	Load() model.Portfolio

	// Save replaces the saved portfolio with p and refreshes the report.
	Save(p model.Portfolio) error
}

// Renderer turns a portfolio into the HTML report.
type Renderer interface {
	Render(p model.Portfolio) (string, error)
}

// Options configures a JSONStore.
type Options struct {
	// DataFile is the JSON dataset, e.g. portfolio_data.json.
	DataFile string

	// ReportFile is the HTML report written after every save. Empty
	// disables the report.
	ReportFile string

	// Renderer produces the report. Required when ReportFile is set.
	Renderer Renderer
}

// JSONStore keeps the portfolio in a JSON array file and regenerates the
// HTML report on every save.
type JSONStore struct {
	opts Options
	log  zerolog.Logger
}

// NewJSONStore creates a JSONStore.
func NewJSONStore(opts Options, log zerolog.Logger) *JSONStore {
	return &JSONStore{
		opts: opts,
		log:  log.With().Str("component", "store").Logger(),
	}
}

// Load reads the dataset. A missing file is a fresh start; a corrupt one is
// logged and treated the same way.
func (s *JSONStore) Load() model.Portfolio {
	data, err := os.ReadFile(s.opts.DataFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("file", s.opts.DataFile).Msg("cannot read dataset, starting empty")
		}
		return model.Portfolio{}
	}

	var p model.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn().Err(err).Str("file", s.opts.DataFile).Msg("dataset is not valid JSON, starting empty")
		return model.Portfolio{}
	}
	if p == nil {
		p = model.Portfolio{}
	}
	return p
}

// Save writes the whole dataset atomically, then regenerates the report.
func (s *JSONStore) Save(p model.Portfolio) error {
	if p == nil {
		p = model.Portfolio{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := ioutils.WriteFileAtomic(s.opts.DataFile, data); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	return s.WriteReport(p)
}

// WriteReport renders p into the report file without touching the dataset.
func (s *JSONStore) WriteReport(p model.Portfolio) error {
	if s.opts.ReportFile == "" {
		return nil
	}
	if s.opts.Renderer == nil {
		return errors.New("save report: no renderer configured")
	}

	html, err := s.opts.Renderer.Render(p)
	if err != nil {
		return err
	}
	if err := ioutils.WriteFileAtomic(s.opts.ReportFile, []byte(html)); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	s.log.Debug().Int("cards", len(p)).Str("file", s.opts.ReportFile).Msg("report written")
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu    sync.Mutex
	saved model.Portfolio
	saves int

	// Err, when set, is returned by every Save.
	Err error
}

// NewMemoryStore creates a MemoryStore holding a copy of initial.
func NewMemoryStore(initial model.Portfolio) *MemoryStore {
	return &MemoryStore{saved: clone(initial)}
}

// Load returns a copy of the last saved portfolio.
func (m *MemoryStore) Load() model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.saved)
}

// Save keeps a copy of p.
func (m *MemoryStore) Save(p model.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.saved = clone(p)
	m.saves++
	return nil
}

// Saves returns how many saves succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func clone(p model.Portfolio) model.Portfolio {
	out := make(model.Portfolio, len(p))
	copy(out, p)
	return out
}
