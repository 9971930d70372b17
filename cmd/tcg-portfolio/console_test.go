package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/tcg-portfolio/internal/history"
	"github.com/handiism/tcg-portfolio/internal/model"
	"github.com/handiism/tcg-portfolio/internal/tracker"
)

func TestConsole_ItemLines(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf, false)

	resolving := &tracker.Item{Index: 16, Total: 130, Query: "Vulpix 197", State: tracker.StateResolving}
	c.Handle(tracker.ProgressEvent{Level: tracker.LevelInfo, Item: resolving})

	entry := &model.PortfolioEntry{MarketPrice: 1.234}
	c.Handle(tracker.ProgressEvent{Level: tracker.LevelSuccess, Item: &tracker.Item{Index: 16, Total: 130, Query: "Vulpix 197", State: tracker.StateResolved, Entry: entry}})

	assert.Equal(t, fmt.Sprintf("\n[16/130] %-25s -> Found! $1.23", "Vulpix 197"), buf.String())
}

func TestConsole_NoPriceAndFailed(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf, false)

	c.Handle(tracker.ProgressEvent{Level: tracker.LevelSuccess, Item: &tracker.Item{State: tracker.StateResolved, Entry: &model.PortfolioEntry{}}})
	c.Handle(tracker.ProgressEvent{Level: tracker.LevelWarning, Item: &tracker.Item{State: tracker.StateFailed}})

	assert.Equal(t, "-> Found! (No Price)-> Failed (Skipping)", buf.String())
}

func TestConsole_SkippedDots(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf, false)

	for i := 1; i <= 25; i++ {
		c.Handle(tracker.ProgressEvent{Level: tracker.LevelVerbose, Item: &tracker.Item{Index: i, Total: 25, State: tracker.StateSkipped}})
	}

	assert.Equal(t, "...", buf.String())
}

func TestConsole_RunEvents(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf, false)

	c.Start()
	c.Handle(tracker.ProgressEvent{Message: "Already Found: 3 cards", Level: tracker.LevelInfo})
	c.Handle(tracker.ProgressEvent{Message: "hidden", Level: tracker.LevelVerbose})

	assert.Equal(t, "--- RESUMABLE TRACKER ---\nAlready Found: 3 cards\n"+rule+"\n", buf.String())
}

func TestConsole_Finish(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf, false)

	c.Finish(tracker.Summary{TotalValue: 42.5}, "generated_cards.html", nil)
	assert.Contains(t, buf.String(), "DONE! Total Value: $42.50\n")
	assert.Contains(t, buf.String(), "Open 'generated_cards.html' to see your portfolio.")

	buf.Reset()
	c.Finish(tracker.Summary{TotalValue: 10, Cards: 4}, "generated_cards.html", context.Canceled)
	assert.Contains(t, buf.String(), "STOPPED. Total Value so far: $10.00 (4 cards)")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 130, exitCode(context.Canceled))
	assert.Equal(t, 130, exitCode(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, 1, exitCode(errors.New("save progress: disk full")))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2025, 3, 7, 12, 0, 0, 0, time.Local)

	printHistory(&buf, []history.Entry{
		{Snapshot: history.Snapshot{TakenAt: at.Add(time.Hour), Cards: 12, TotalValue: 40}, HasPrevious: true, ValueChange: 10, CardChange: 2},
		{Snapshot: history.Snapshot{TakenAt: at, Cards: 10, TotalValue: 30}},
	})

	out := buf.String()
	assert.Contains(t, out, "2025-03-07 13:00")
	assert.Contains(t, out, "$40.00")
	assert.Contains(t, out, "+10.00 (+2)")

	buf.Reset()
	printHistory(&buf, nil)
	assert.Equal(t, "No history recorded yet.\n", buf.String())
}
