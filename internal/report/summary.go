package report

import (
	"errors"

	"qaeval/internal/eval"
)

// ErrEmptyRun is returned when a summary is requested for a run without rows.
var ErrEmptyRun = errors.New("run has no scored rows")

// Summary holds the mean metrics of one run.
type Summary struct {
	RunID            string  `json:"run_id"`
	StartedAt        string  `json:"started_at,omitempty"`
	Questions        int     `json:"questions"`
	Failures         int     `json:"failures"`
	RetrievalKeyword float64 `json:"retrieval_keyword"`
	RetrievalRank    float64 `json:"retrieval_rank"`
	RetrievalCorrect float64 `json:"retrieval_correct"`
	AnswerFuzz       float64 `json:"answer_fuzz"`
	AnswerPresent    float64 `json:"answer_present"`
}

// Metric is one named summary value.
type Metric struct {
	Name  string
	Value float64
}

// Metric names in reporting order.
const (
	MetricRetrievalKeyword = "retrieval_keyword"
	MetricRetrievalRank    = "retrieval_rank"
	MetricRetrievalCorrect = "retrieval_correct"
	MetricAnswerFuzz       = "answer_fuzz"
	MetricAnswerPresent    = "answer_present"
)

// Metrics returns the five mean metrics in reporting order.
func (s Summary) Metrics() []Metric {
	return []Metric{
		{Name: MetricRetrievalKeyword, Value: s.RetrievalKeyword},
		{Name: MetricRetrievalRank, Value: s.RetrievalRank},
		{Name: MetricRetrievalCorrect, Value: s.RetrievalCorrect},
		{Name: MetricAnswerFuzz, Value: s.AnswerFuzz},
		{Name: MetricAnswerPresent, Value: s.AnswerPresent},
	}
}

// Aggregate builds the result table and summary for a run.
func Aggregate(runID string, rows []eval.Row) (Table, Summary, error) {
	table := NewTable(runID, rows)
	summary, err := Summarize(table)
	if err != nil {
		return Table{}, Summary{}, err
	}
	return table, summary, nil
}

// Summarize computes the arithmetic mean of each metric column.
func Summarize(table Table) (Summary, error) {
	n := len(table.Rows)
	if n == 0 {
		return Summary{}, ErrEmptyRun
	}
	var keyword, rank, correct, fuzz, present float64
	failures := 0
	for _, row := range table.Rows {
		keyword += row.RetrievalKeywordScore
		rank += row.RetrievalRank
		correct += boolValue(row.CorrectDoc)
		fuzz += row.FuzzyPartialRatio
		present += boolValue(row.TestAnswerProvided)
		if row.Failure != "" {
			failures++
		}
	}
	count := float64(n)
	return Summary{
		RunID:            table.RunID,
		Questions:        n,
		Failures:         failures,
		RetrievalKeyword: keyword / count,
		RetrievalRank:    rank / count,
		RetrievalCorrect: correct / count,
		AnswerFuzz:       fuzz / count,
		AnswerPresent:    present / count,
	}, nil
}

func boolValue(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
