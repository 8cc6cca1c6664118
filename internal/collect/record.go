package collect

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"qaeval/internal/service"
)

// FailureTimeout marks a record whose service call exceeded the per-question timeout.
const FailureTimeout = "timeout"

// Record is the observed outcome of asking one question.
type Record struct {
	Answer     string
	References []service.Reference
	Elapsed    time.Duration
	Failure    string
}

// ElapsedSeconds returns the elapsed time rounded to two decimals.
func (r Record) ElapsedSeconds() float64 {
	return RoundSeconds(r.Elapsed)
}

// TimedOut reports whether the call was abandoned at the per-question timeout.
func (r Record) TimedOut() bool {
	return r.Failure == FailureTimeout
}

// TopReference returns the first-ranked reference, if any.
func (r Record) TopReference() (service.Reference, bool) {
	if len(r.References) == 0 {
		return service.Reference{}, false
	}
	return r.References[0], true
}

// Locators returns reference locators in rank order.
func (r Record) Locators() []string {
	return service.Reply{References: r.References}.Locators()
}

// RoundSeconds converts d to seconds rounded half away from zero to two places.
func RoundSeconds(d time.Duration) float64 {
	return decimal.NewFromFloat(d.Seconds()).Round(2).InexactFloat64()
}

// QuestionError attributes a collection failure to one question.
type QuestionError struct {
	Index      int
	QuestionID string
	Err        error
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %d (%q): %v", e.Index+1, e.QuestionID, e.Err)
}

func (e *QuestionError) Unwrap() error {
	return e.Err
}
