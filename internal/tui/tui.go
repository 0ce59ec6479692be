// Package tui provides a Bubble Tea terminal user interface for browsing
// the respiratory-sounds dataset.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icbhi/respiratory-sounds/internal/config"
	"github.com/icbhi/respiratory-sounds/internal/dataset"
	"github.com/icbhi/respiratory-sounds/internal/diagnosis"
	"github.com/icbhi/respiratory-sounds/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
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

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StateLoading
	StateBrowse
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   dataset.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	settings *config.Settings
	logs     []LogEntry
	err      error

	// Load context
	ctx    context.Context
	cancel context.CancelFunc

	// Dataset manager and loaded tables
	manager    *dataset.Manager
	recordings *model.RecordingTable
	patients   *model.PatientTable
	joinRows   int

	// Events from the manager, drained into logs
	events chan dataset.ProgressEvent

	// Options
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan dataset.ProgressEvent, 64)

	manager := dataset.NewManager(settings, func(event dataset.ProgressEvent) {
		select {
		case events <- event:
		default: // UI fell behind; drop rather than block assembly
		}
	})

	return Model{
		state:    StateMenu,
		spinner:  sp,
		settings: settings,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
		manager:  manager,
		events:   events,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// ProgressMsg carries one manager progress event into the UI.
	ProgressMsg struct {
		Event dataset.ProgressEvent
	}

	// LoadDoneMsg is sent when both tables are assembled.
	LoadDoneMsg struct {
		Recordings *model.RecordingTable
		Patients   *model.PatientTable
		JoinRows   int
		Err        error
	}

	// EvictDoneMsg reports the result of a cache eviction.
	EvictDoneMsg struct {
		What string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateMenu || m.state == StateBrowse {
				return m, tea.Quit
			}
			if m.state == StateLoading {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateMenu {
				m.state = StateLoading
				return m, tea.Batch(m.loadDataset(), m.waitForEvent(), m.spinner.Tick)
			}

		case "v":
			if m.state == StateMenu {
				m.verbose = !m.verbose
			}

		case "e":
			if m.state == StateBrowse {
				return m, m.evict("recordings", m.manager.EmptyCacheRecordings)
			}

		case "E":
			if m.state == StateBrowse {
				return m, m.evict("patients", m.manager.EmptyCachePatients)
			}

		case "r":
			if m.state == StateBrowse || m.state == StateError {
				m.state = StateLoading
				m.logs = nil
				m.err = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				return m, tea.Batch(m.loadDataset(), m.waitForEvent(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateBrowse || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != dataset.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case LoadDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.recordings = msg.Recordings
			m.patients = msg.Patients
			m.joinRows = msg.JoinRows
			m.state = StateBrowse
		}

	case EvictDoneMsg:
		entry := LogEntry{
			Message: fmt.Sprintf("Evicted %s cache", msg.What),
			Level:   dataset.LevelSuccess,
		}
		if msg.Err != nil {
			entry = LogEntry{
				Message: fmt.Sprintf("Evicting %s cache: %v", msg.What, msg.Err),
				Level:   dataset.LevelWarning,
			}
		}
		m.logs = append(m.logs, entry)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Respiratory Sounds"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("ICBHI 2017 respiratory sound database browser"))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Load the dataset tables?"))
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Data dir: %s", m.settings.DataDir)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("First load downloads and decodes the corpus; later loads hit the cache."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Assembling dataset tables..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Recordings: %d\nAudio:      %s\nPatients:   %d\nJoin rows:  %d",
		m.recordings.Len(),
		m.recordings.TotalDuration().Round(time.Second),
		m.patients.Len(),
		m.joinRows,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Patients per diagnosis:"))
	b.WriteString("\n")
	for _, line := range m.diagnosisBreakdown() {
		b.WriteString(rowStyle.Render("  " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

// diagnosisBreakdown counts patients per diagnosis class.
func (m Model) diagnosisBreakdown() []string {
	counts := make(map[int]int)
	for _, row := range m.patients.Rows {
		counts[row.DiagnosisClass]++
	}

	var lines []string
	for _, class := range diagnosis.Classes() {
		if counts[class] == 0 {
			continue
		}
		name, err := diagnosis.ClassToName(class)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-15s %d", name, counts[class]))
	}
	return lines
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "*"
		switch log.Level {
		case dataset.LevelError:
			style = errorStyle
			prefix = "x"
		case dataset.LevelWarning:
			style = warningStyle
			prefix = "!"
		case dataset.LevelSuccess:
			style = successStyle
			prefix = "+"
		case dataset.LevelInfo:
			style = infoStyle
			prefix = ">"
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
	case StateMenu:
		return "enter: load dataset | v: verbose | esc: quit"
	case StateLoading:
		return "esc: cancel"
	case StateBrowse:
		return "e: evict recordings cache | E: evict patients cache | r: reload | q: quit"
	case StateError:
		return "r: retry | q: quit"
	}
	return ""
}

// waitForEvent forwards the next manager progress event to the UI.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// loadDataset assembles both tables and the join view in the background.
func (m *Model) loadDataset() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	return func() tea.Msg {
		recordings, err := manager.Recordings(ctx)
		if err != nil {
			return LoadDoneMsg{Err: err}
		}
		patients, err := manager.Patients()
		if err != nil {
			return LoadDoneMsg{Err: err}
		}
		joined := model.JoinRecordingsPatients(recordings, patients)

		return LoadDoneMsg{
			Recordings: recordings,
			Patients:   patients,
			JoinRows:   len(joined),
		}
	}
}

// evict runs a cache eviction in the background.
func (m *Model) evict(what string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return EvictDoneMsg{What: what, Err: fn()}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
