package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"qaeval/internal/collect"
)

type progressStyle int

const (
	styleDefault progressStyle = iota
	styleRun
	styleMetrics
	styleError
)

// PlainObserver prints one line per finished question.
type PlainObserver struct {
	mu      sync.Mutex
	writer  io.Writer
	palette progressPalette
	total   int
	done    int
}

// NewPlainObserver writes progress lines to writer, styled only on a TTY.
func NewPlainObserver(writer io.Writer, workers int, noColor bool) *PlainObserver {
	return &PlainObserver{
		writer:  wrapProgressWriter(workers, writer),
		palette: paletteFor(writer, noColor),
	}
}

// OnRunStart prints the run header.
func (p *PlainObserver) OnRunStart(runID string, questionsFile string, total int) {
	p.mu.Lock()
	p.total = total
	p.done = 0
	p.mu.Unlock()
	p.printf(styleRun, "run %s: %d questions from %s", runID, total, questionsFile)
}

// OnQuestionEvent prints terminal question states.
func (p *PlainObserver) OnQuestionEvent(event QuestionEvent) {
	switch event.Type {
	case QuestionAnswered, QuestionTimeout, QuestionError:
	default:
		return
	}
	p.mu.Lock()
	p.done++
	position := fmt.Sprintf("[%d/%d]", p.done, p.total)
	p.mu.Unlock()

	seconds := collect.RoundSeconds(event.Elapsed)
	switch event.Type {
	case QuestionTimeout:
		p.printf(styleError, "%s %s timeout after %.2fs", position, event.QuestionID, seconds)
	case QuestionError:
		p.printf(styleError, "%s %s error: %s", position, event.QuestionID, event.Error)
	default:
		answered := "answered"
		if !event.AnswerProvided {
			answered = "declined"
		}
		p.printf(styleDefault, "%s %s %s in %.2fs refs=%d", position, event.QuestionID, answered, seconds, event.References)
	}
}

// OnRunEnd prints a failure line; successful summaries are printed by the caller.
func (p *PlainObserver) OnRunEnd(result Result, err error) {
	if err != nil {
		p.printf(styleError, "run %s failed: %v", result.RunID, err)
		return
	}
	p.printf(styleMetrics, "run %s finished: %d questions, %d failures", result.RunID, result.Summary.Questions, result.Summary.Failures)
}

func (p *PlainObserver) printf(style progressStyle, format string, args ...any) {
	if p == nil || p.writer == nil {
		return
	}
	fmt.Fprintln(p.writer, p.palette.apply(style, fmt.Sprintf(format, args...)))
}

type progressPalette struct {
	enabled bool
	run     lipgloss.Style
	metrics lipgloss.Style
	err     lipgloss.Style
}

func paletteFor(writer io.Writer, noColor bool) progressPalette {
	if noColor || !ShouldUseStyling(writer) {
		return progressPalette{}
	}
	return progressPalette{
		enabled: true,
		run:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		metrics: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

func (p progressPalette) apply(style progressStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleRun:
		return p.run.Render(text)
	case styleMetrics:
		return p.metrics.Render(text)
	case styleError:
		return p.err.Render(text)
	default:
		return text
	}
}

// ShouldUseStyling reports whether writer is a terminal that accepts color.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return IsTerminal(writer)
}

// IsTerminal reports whether writer is a TTY.
func IsTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
