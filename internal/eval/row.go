package eval

import (
	"fmt"

	"qaeval/internal/collect"
	"qaeval/internal/question"
)

// Row joins one question, its observed record, and the derived scores.
type Row struct {
	Question question.Question
	Record   collect.Record

	AnswerProvided        bool
	TestAnswerProvided    bool
	FuzzyPartialRatio     float64
	RetrievalKeywordScore float64
	CorrectDoc            bool
	RetrievalRank         float64
}

// SectionURL returns the top-ranked reference locator, or "".
func (r Row) SectionURL() string {
	top, _ := r.Record.TopReference()
	return top.Locator
}

// PageContent returns the top-ranked reference content, or "".
func (r Row) PageContent() string {
	top, _ := r.Record.TopReference()
	return top.Content
}

// Failure returns the record's failure marker, or "".
func (r Row) Failure() string {
	return r.Record.Failure
}

// ScoreRow computes every derived field for one question. It depends only on
// its arguments. A failed record (for example a timeout) scores as a miss on
// every metric.
func ScoreRow(item question.Question, record collect.Record) (Row, error) {
	top, _ := record.TopReference()
	keywordScore, err := RetrievalKeywordScore(top.Content, item.ExpectedKeywords)
	if err != nil {
		return Row{}, fmt.Errorf("question %q: %w", item.ID, err)
	}
	if record.Failure != "" {
		return Row{Question: item, Record: record}, nil
	}
	locators := record.Locators()
	provided := AnswerProvided(record.Answer)
	return Row{
		Question:              item,
		Record:                record,
		AnswerProvided:        provided,
		TestAnswerProvided:    TestAnswerProvided(item.ShouldAnswer, provided),
		FuzzyPartialRatio:     PartialTokenSetRatio(item.ExpectedAnswer, record.Answer),
		RetrievalKeywordScore: keywordScore,
		CorrectDoc:            CorrectDoc(item.ExpectedURL, locators),
		RetrievalRank:         RetrievalRank(item.ExpectedURL, locators),
	}, nil
}

// ScoreAll scores records against questions index by index.
func ScoreAll(questions []question.Question, records []collect.Record) ([]Row, error) {
	if len(questions) != len(records) {
		return nil, fmt.Errorf("score: %d questions but %d records", len(questions), len(records))
	}
	rows := make([]Row, 0, len(records))
	for i, item := range questions {
		row, err := ScoreRow(item, records[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
