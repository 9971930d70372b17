package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/handiism/tcg-portfolio/internal/config"
	"github.com/handiism/tcg-portfolio/internal/tracker"
)

func newTestModel() Model {
	return NewModel(config.DefaultSettings(), zerolog.Nop())
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_StartsInInput(t *testing.T) {
	m := newTestModel()

	assert.Equal(t, StateInput, m.state)
	view := m.View()
	assert.Contains(t, view, "TCG Portfolio Tracker")
	assert.Contains(t, view, "portfolio_data.json")
	assert.Contains(t, view, "enter: start")
}

func TestModel_ToggleVerbose(t *testing.T) {
	m := newTestModel()

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.verbose)
	assert.Contains(t, m.View(), "[×] Show skipped cards")
}

func TestModel_ProgressFiltersVerbose(t *testing.T) {
	m := newTestModel()

	m = update(m, ProgressMsg{Event: tracker.ProgressEvent{Message: "skipped", Level: tracker.LevelVerbose}})
	assert.Empty(t, m.logs)

	m = update(m, ProgressMsg{Event: tracker.ProgressEvent{Message: "Vulpix 197: Found! $1.00", Level: tracker.LevelSuccess}})
	assert.Len(t, m.logs, 1)
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := newTestModel()

	for i := 0; i < maxLogs+5; i++ {
		m = update(m, ProgressMsg{Event: tracker.ProgressEvent{Message: fmt.Sprintf("line %d", i), Level: tracker.LevelInfo}})
	}

	assert.Len(t, m.logs, maxLogs)
	assert.Equal(t, fmt.Sprintf("line %d", maxLogs+4), m.logs[maxLogs-1].Message)
}

func TestModel_TracksCurrentItem(t *testing.T) {
	m := newTestModel()
	m.state = StateRunning

	item := &tracker.Item{Index: 3, Total: 130, Query: "Vulpix 197", State: tracker.StateResolving}
	m = update(m, ProgressMsg{Event: tracker.ProgressEvent{Message: "Looking up Vulpix 197", Level: tracker.LevelInfo, Item: item}})

	assert.Equal(t, item, m.current)
	assert.Contains(t, m.View(), "[3/130] Vulpix 197")
}

func TestModel_RunDone(t *testing.T) {
	m := newTestModel()
	m.state = StateRunning

	m = update(m, RunDoneMsg{Summary: tracker.Summary{Total: 3, Cards: 2, TotalValue: 12.5, Resolved: 1, Skipped: 1, Failed: 1}})

	assert.Equal(t, StateComplete, m.state)
	view := m.View()
	assert.Contains(t, view, "Total Value: $12.50")
	assert.Contains(t, view, "generated_cards.html")
}

func TestModel_RunError(t *testing.T) {
	m := newTestModel()
	m.state = StateRunning

	m = update(m, RunDoneMsg{Summary: tracker.Summary{Total: 5, Cards: 1, TotalValue: 3}, Err: errors.New("save progress: disk full")})

	assert.Equal(t, StateError, m.state)
	view := m.View()
	assert.Contains(t, view, "disk full")
	assert.Contains(t, view, "Progress so far is saved: 1 cards, $3.00")
}

func TestModel_CancelledRun(t *testing.T) {
	m := newTestModel()
	m.state = StateRunning

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(m, RunDoneMsg{Err: errors.New("context canceled")})

	assert.Equal(t, StateError, m.state)
	assert.ErrorIs(t, m.err, errCancelled)
}

func TestModel_ResetAfterComplete(t *testing.T) {
	m := newTestModel()
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "old"}}

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	assert.Equal(t, StateInput, m.state)
	assert.Empty(t, m.logs)
	assert.NoError(t, m.ctx.Err())
}
