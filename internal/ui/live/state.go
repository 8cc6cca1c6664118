package live

import (
	"time"

	"qaeval/internal/runner"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index          int
	ID             string
	Text           string
	Status         runner.QuestionEventType
	References     int
	AnswerProvided bool
	StartedAt      time.Time
	FinishedAt     time.Time
	Elapsed        time.Duration
	Error          string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued   int
	Running  int
	Done     int
	Answered int
	Declined int
	Timeout  int
	Error    int
}

// State captures the live UI state for a run.
type State struct {
	RunID         string
	QuestionsFile string
	Total         int
	StartedAt     time.Time
	LastEvent     string
	Finished      bool
	Rows          []QuestionRow
	Counts        StatusCounts
}
