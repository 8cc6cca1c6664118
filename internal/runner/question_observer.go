package runner

import (
	"time"

	"qaeval/internal/collect"
	"qaeval/internal/eval"
	"qaeval/internal/question"
)

// questionObserver bridges collector callbacks to RunObserver events.
type questionObserver struct {
	observer RunObserver
	now      func() time.Time
}

// newQuestionObserver returns nil when no RunObserver is set.
func newQuestionObserver(observer RunObserver, now func() time.Time) *questionObserver {
	if observer == nil {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &questionObserver{observer: observer, now: now}
}

// EmitQueuedAll emits queued events for every question.
func (o *questionObserver) EmitQueuedAll(questions []question.Question) {
	if o == nil {
		return
	}
	for index, item := range questions {
		o.emit(index, item, QuestionEvent{Type: QuestionQueued})
	}
}

// QuestionStarted implements collect.Observer.
func (o *questionObserver) QuestionStarted(index int, item question.Question) {
	o.emit(index, item, QuestionEvent{Type: QuestionRunning})
}

// QuestionFinished implements collect.Observer.
func (o *questionObserver) QuestionFinished(index int, item question.Question, record collect.Record, err error) {
	event := QuestionEvent{
		Type:           QuestionAnswered,
		References:     len(record.References),
		AnswerProvided: eval.AnswerProvided(record.Answer),
		Elapsed:        record.Elapsed,
	}
	switch {
	case err != nil:
		event.Type = QuestionError
		event.Error = err.Error()
	case record.TimedOut():
		event.Type = QuestionTimeout
	}
	o.emit(index, item, event)
}

func (o *questionObserver) emit(index int, item question.Question, event QuestionEvent) {
	if o == nil {
		return
	}
	event.QuestionIndex = index
	event.QuestionID = item.ID
	event.QuestionText = item.Text
	event.EmittedAt = o.now()
	o.observer.OnQuestionEvent(event)
}
