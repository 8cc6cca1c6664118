package live

import (
	"fmt"
	"time"

	"qaeval/internal/runner"
)

// Reduce applies a question event to the UI state.
func Reduce(state State, event runner.QuestionEvent) State {
	state = ensureRow(state, event)
	state = applyQuestionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 || event.QuestionIndex < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, event.QuestionIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i, Status: runner.QuestionQueued}
	}
	state.Rows = rows
	return state
}

// applyQuestionEvent updates a row with the given event.
func applyQuestionEvent(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 || event.QuestionIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.QuestionIndex]
	if row.ID == "" {
		row.ID = event.QuestionID
	}
	if row.Text == "" {
		row.Text = event.QuestionText
	}
	// terminal rows stay terminal; late events from a cancelled call are ignored
	if isTerminalStatus(row.Status) {
		state.Rows[event.QuestionIndex] = row
		return state
	}
	row.Status = event.Type
	if event.Type == runner.QuestionRunning && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if isTerminalStatus(event.Type) {
		row.FinishedAt = event.EmittedAt
		row.Elapsed = event.Elapsed
		row.References = event.References
		row.AnswerProvided = event.AnswerProvided
		row.Error = event.Error
	}
	state.Rows[event.QuestionIndex] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.QuestionEventType) bool {
	switch status {
	case runner.QuestionAnswered, runner.QuestionTimeout, runner.QuestionError:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []QuestionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.QuestionQueued:
			counts.Queued++
		case runner.QuestionRunning:
			counts.Running++
		case runner.QuestionAnswered:
			counts.Done++
			if row.AnswerProvided {
				counts.Answered++
			} else {
				counts.Declined++
			}
		case runner.QuestionTimeout:
			counts.Done++
			counts.Timeout++
		case runner.QuestionError:
			counts.Done++
			counts.Error++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.QuestionEvent) string {
	switch event.Type {
	case runner.QuestionAnswered:
		return fmt.Sprintf("Q%d answered (%s, %d refs)", event.QuestionIndex+1, formatDuration(event.Elapsed), event.References)
	case runner.QuestionTimeout:
		return fmt.Sprintf("Q%d timed out after %s", event.QuestionIndex+1, formatDuration(event.Elapsed))
	case runner.QuestionError:
		return fmt.Sprintf("Q%d error: %s", event.QuestionIndex+1, event.Error)
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(10 * time.Millisecond).String()
}
