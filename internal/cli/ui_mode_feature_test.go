package cli

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"qaeval/internal/runner"
	"qaeval/internal/ui/live"
)

// TestUIModeFeatures runs the progress display feature scenarios.
func TestUIModeFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "ui-mode",
		ScenarioInitializer: initializeUIModeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			Output:   io.Discard,
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeUIModeScenario(ctx *godog.ScenarioContext) {
	state := &uiModeScenarioState{}
	orig := isTerminal
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		isTerminal = func(io.Writer) bool { return state.isTTY }
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		isTerminal = orig
		return ctx, nil
	})

	ctx.Step(`^a TTY stdout$`, state.givenTTY)
	ctx.Step(`^stdout is not a TTY$`, state.givenNonTTY)
	ctx.Step(`^a run with (\d+) questions$`, state.givenRun)
	ctx.Step(`^question (\d+) times out$`, state.givenTimeout)
	ctx.Step(`^I run with ui mode "([^"]+)"$`, state.whenIRun)
	ctx.Step(`^a live UI is shown$`, state.thenLiveUIShown)
	ctx.Step(`^the UI lists each question with a status$`, state.thenQuestionStatuses)
	ctx.Step(`^the UI shows question (\d+) as "([^"]+)"$`, state.thenQuestionStatus)
	ctx.Step(`^the output uses plain progress text$`, state.thenPlainOutput)
	ctx.Step(`^a fallback warning is printed$`, state.thenWarning)
}

type uiModeScenarioState struct {
	isTTY    bool
	total    int
	decision uiModeDecision
	uiState  live.State
}

// reset clears scenario state.
func (s *uiModeScenarioState) reset() {
	*s = uiModeScenarioState{}
}

func (s *uiModeScenarioState) givenTTY() error {
	s.isTTY = true
	return nil
}

func (s *uiModeScenarioState) givenNonTTY() error {
	s.isTTY = false
	return nil
}

// givenRun seeds queued questions for UI state.
func (s *uiModeScenarioState) givenRun(count int) error {
	s.total = count
	now := time.Now()
	for i := 0; i < count; i++ {
		s.uiState = live.Reduce(s.uiState, runner.QuestionEvent{
			QuestionIndex: i,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			Type:          runner.QuestionQueued,
			EmittedAt:     now,
		})
	}
	return nil
}

func (s *uiModeScenarioState) givenTimeout(number int) error {
	s.uiState = live.Reduce(s.uiState, runner.QuestionEvent{
		QuestionIndex: number - 1,
		Type:          runner.QuestionTimeout,
		Elapsed:       time.Minute,
		EmittedAt:     time.Now(),
	})
	return nil
}

func (s *uiModeScenarioState) whenIRun(mode string) error {
	decision, err := resolveUIMode(mode, io.Discard)
	if err != nil {
		return err
	}
	s.decision = decision
	return nil
}

func (s *uiModeScenarioState) thenLiveUIShown() error {
	if !s.decision.useLive {
		return fmt.Errorf("expected live UI to be enabled")
	}
	return nil
}

func (s *uiModeScenarioState) thenQuestionStatuses() error {
	if len(s.uiState.Rows) != s.total {
		return fmt.Errorf("expected %d question rows, got %d", s.total, len(s.uiState.Rows))
	}
	for _, row := range s.uiState.Rows {
		if row.Status == "" {
			return fmt.Errorf("question %d has no status", row.Index+1)
		}
	}
	return nil
}

func (s *uiModeScenarioState) thenQuestionStatus(number int, status string) error {
	if number < 1 || number > len(s.uiState.Rows) {
		return fmt.Errorf("no question %d", number)
	}
	if got := string(s.uiState.Rows[number-1].Status); got != status {
		return fmt.Errorf("expected status %q, got %q", status, got)
	}
	return nil
}

func (s *uiModeScenarioState) thenPlainOutput() error {
	if s.decision.useLive {
		return fmt.Errorf("expected plain output")
	}
	return nil
}

func (s *uiModeScenarioState) thenWarning() error {
	if s.decision.warning == "" {
		return fmt.Errorf("expected a fallback warning")
	}
	return nil
}
