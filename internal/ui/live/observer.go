package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"qaeval/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithInput(nil))
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, questionsFile string, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, QuestionsFile: questionsFile, Total: total})
}

// OnQuestionEvent forwards question status updates to the UI.
func (c *Controller) OnQuestionEvent(event runner.QuestionEvent) {
	c.send(Event{Kind: EventQuestion, Question: event})
}

// OnRunEnd forwards run completion to the UI and closes it.
func (c *Controller) OnRunEnd(result runner.Result, err error) {
	event := Event{Kind: EventRunEnd, Result: result}
	if err != nil {
		event.Err = err.Error()
	}
	c.sendBlocking(event)
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}

// sendBlocking enqueues an event unless the UI has already exited.
func (c *Controller) sendBlocking(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}

var _ runner.RunObserver = (*Controller)(nil)
