package runner

import "time"

// QuestionEventType identifies a question status update for observers.
type QuestionEventType string

const (
	// QuestionQueued marks a question known but not yet sent.
	QuestionQueued QuestionEventType = "queued"
	// QuestionRunning marks a call in flight to the answering service.
	QuestionRunning QuestionEventType = "running"
	// QuestionAnswered marks a reply received.
	QuestionAnswered QuestionEventType = "answered"
	// QuestionTimeout marks a call cut off by the per-question timeout.
	QuestionTimeout QuestionEventType = "timeout"
	// QuestionError marks a service error; the run aborts after it.
	QuestionError QuestionEventType = "error"
)

// QuestionEvent carries a single status update for a question.
type QuestionEvent struct {
	QuestionIndex  int
	QuestionID     string
	QuestionText   string
	Type           QuestionEventType
	References     int
	AnswerProvided bool
	Elapsed        time.Duration
	Error          string
	EmittedAt      time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run over total questions.
	OnRunStart(runID string, questionsFile string, total int)
	// OnQuestionEvent delivers a question status update.
	OnQuestionEvent(event QuestionEvent)
	// OnRunEnd signals run completion. err is nil on success.
	OnRunEnd(result Result, err error)
}
