package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qaeval/internal/runner"
)

// Model renders a live console UI using Bubble Tea.
type Model struct {
	state         State
	table         table.Model
	events        <-chan Event
	tickInterval  time.Duration
	now           time.Time
	noColor       bool
	questionWidth int
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

// NewModel constructs a live UI model for an event stream.
func NewModel(events <-chan Event, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	columns := defaultColumns()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		table:         t,
		events:        events,
		tickInterval:  tickInterval,
		now:           time.Now(),
		noColor:       opts.NoColor,
		questionWidth: columns[1].Width,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init starts ticking and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tick(m.tickInterval))
}

// Update consumes UI events and timer ticks. The program runs without an
// input reader; interrupts cancel the run context and end it through
// OnRunEnd.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		columns := columnsForWidth(typed.Width)
		m.questionWidth = columns[1].Width
		m.table.SetColumns(columns)
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-4, 1))
		m.table.SetRows(rowsForState(m.state, m.now, m.questionWidth, m.noColor))
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events)
	case tickMsg:
		m.now = time.Time(typed)
		m.table.SetRows(rowsForState(m.state, m.now, m.questionWidth, m.noColor))
		return m, tick(m.tickInterval)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	header := renderHeader(m.state, m.now, m.noColor)
	summary := renderSummary(m.state, m.noColor)
	tableView := m.table.View()
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, tableView, footer)
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// waitForEvent blocks until a UI event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// runStartTime reads the start stamp from a run id, falling back to now
// for ids that do not carry one.
func runStartTime(runID string, now time.Time) time.Time {
	if started, err := runner.RunIDTime(runID); err == nil {
		return started
	}
	return now
}

// applyEvent mutates model state based on a UI event.
func applyEvent(model Model, event Event) Model {
	switch event.Kind {
	case EventRunStart:
		model.state = State{
			RunID:         event.RunID,
			QuestionsFile: event.QuestionsFile,
			Total:         event.Total,
			StartedAt:     runStartTime(event.RunID, model.now),
		}
	case EventQuestion:
		model.state = Reduce(model.state, event.Question)
	case EventRunEnd:
		model.state.Finished = true
		model.state.LastEvent = formatRunEnd(event.Result.Summary, event.Err)
	}
	model.table.SetRows(rowsForState(model.state, model.now, model.questionWidth, model.noColor))
	return model
}
