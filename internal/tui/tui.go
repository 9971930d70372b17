// Package tui provides a Bubble Tea terminal user interface for tcg-portfolio.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/tcg-portfolio/internal/collection"
	"github.com/handiism/tcg-portfolio/internal/config"
	"github.com/handiism/tcg-portfolio/internal/model"
	"github.com/handiism/tcg-portfolio/internal/tracker"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFCB05")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   tracker.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	log       zerolog.Logger
	logs      []LogEntry
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Run state
	manager *tracker.Manager
	events  chan tracker.ProgressEvent
	queries int
	current *tracker.Item
	counts  tracker.Progress
	summary tracker.Summary

	// Options
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("built-in collection (%d queries)", len(collection.DefaultQueries()))
	ti.SetValue(settings.QueriesFile)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCB05"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		log:       log,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every event the tracker reports.
	ProgressMsg struct {
		Event tracker.ProgressEvent
	}

	// InitDoneMsg is sent when the queries are loaded and the tracker is
	// ready.
	InitDoneMsg struct {
		Queries []model.Query
		Manager *tracker.Manager
		Err     error
	}

	// RunDoneMsg is sent when the run ends.
	RunDoneMsg struct {
		Summary tracker.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning || m.state == StateInitializing {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeRun(), m.spinner.Tick)
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.current = nil
				m.counts = tracker.Progress{}
				m.summary = tracker.Summary{}
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Item != nil && msg.Event.Item.State == tracker.StateResolving {
			m.current = msg.Event.Item
		}
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.events))
		}
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == tracker.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			m.queries = len(msg.Queries)
			m.events = make(chan tracker.ProgressEvent, 64)
			m.state = StateRunning
			cmds = append(cmds,
				startRun(m.ctx, m.manager, msg.Queries, m.events),
				waitForEvent(m.events),
				m.tickProgress(),
			)
		}

	case RunDoneMsg:
		m.summary = msg.Summary
		m.current = nil
		if m.manager != nil {
			m.counts = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRunning {
			m.counts = m.manager.GetProgress()

			var percent float64
			if m.counts.Total > 0 {
				percent = float64(m.counts.Processed) / float64(m.counts.Total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🃏 TCG Portfolio Tracker"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Price your Pokémon card collection"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Query file (leave empty for the built-in collection):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Show skipped cards (tab)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Dataset: %s", m.settings.DataFile)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Report:  %s", m.settings.ReportFile)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Loading portfolio..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	if m.current != nil {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(cardStyle.Render(fmt.Sprintf("[%d/%d] %s", m.current.Index, m.current.Total, m.current.Query)))
		b.WriteString("\n\n")
	}

	var percent float64
	if m.counts.Total > 0 {
		percent = float64(m.counts.Processed) / float64(m.counts.Total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Queries: %d/%d | Found: %d | Failed: %d | Skipped: %d",
		m.counts.Processed,
		m.counts.Total,
		m.counts.Resolved,
		m.counts.Failed,
		m.counts.Skipped,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ DONE! Total Value: $%.2f\n\n"+
			"Cards: %d\n"+
			"Found this run: %d\n"+
			"Failed: %d\n"+
			"Already stored: %d\n\n"+
			"Open '%s' to see your portfolio.",
		m.summary.TotalValue,
		m.summary.Cards,
		m.summary.Resolved,
		m.summary.Failed,
		m.summary.Skipped,
		m.settings.ReportFile,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	if m.summary.Total > 0 {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"Progress so far is saved: %d cards, $%.2f",
			m.summary.Cards,
			m.summary.TotalValue,
		)))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case tracker.LevelError:
			style = errorStyle
			prefix = "✗"
		case tracker.LevelWarning:
			style = warningStyle
			prefix = "!"
		case tracker.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case tracker.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: verbose • esc: quit"
	case StateInitializing, StateRunning:
		return "esc: stop (progress is kept)"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

// initializeRun loads the queries and builds the tracker.
func (m Model) initializeRun() tea.Cmd {
	settings := *m.settings
	settings.QueriesFile = strings.TrimSpace(m.textInput.Value())
	log := m.log
	ctx := m.ctx

	return func() tea.Msg {
		queries, err := collection.Load(settings.QueriesFile)
		if err != nil {
			return InitDoneMsg{Err: err}
		}
		if ctx.Err() != nil {
			return InitDoneMsg{Err: errCancelled}
		}

		// events are attached in startRun
		manager, err := tracker.NewFromSettings(&settings, nil, log)
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{Queries: queries, Manager: manager}
	}
}

// startRun runs the tracker in the background, forwarding its events.
func startRun(ctx context.Context, manager *tracker.Manager, queries []model.Query, events chan<- tracker.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		manager.OnProgress(func(event tracker.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		summary, err := manager.Run(ctx, queries)
		close(events)
		if closeErr := manager.Close(); err == nil {
			err = closeErr
		}

		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// waitForEvent delivers the next tracker event. It returns nil once the
// channel is closed.
func waitForEvent(events <-chan tracker.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, log zerolog.Logger) error {
	p := tea.NewProgram(NewModel(settings, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
