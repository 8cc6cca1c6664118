package report

import (
	"qaeval/internal/eval"
)

// Columns is the fixed column order of the persisted result table.
var Columns = []string{
	"question",
	"should_answer",
	"answer_provided",
	"test_answer_provided",
	"expected_answer",
	"answer",
	"fuzzy_partial_ratio",
	"expected_url",
	"retrieval_keyword_score",
	"correct_doc",
	"retrieval_rank",
	"should_provide_relevant",
	"section_url",
	"all_urls",
	"page_content",
	"expected_keywords",
	"seconds_to_run",
	"failure",
	"run_id",
}

// TableRow is one flattened row of the result table.
type TableRow struct {
	Question              string
	ShouldAnswer          bool
	AnswerProvided        bool
	TestAnswerProvided    bool
	ExpectedAnswer        string
	Answer                string
	FuzzyPartialRatio     float64
	ExpectedURL           string
	RetrievalKeywordScore float64
	CorrectDoc            bool
	RetrievalRank         float64
	ShouldProvideRelevant bool
	SectionURL            string
	AllURLs               []string
	PageContent           string
	ExpectedKeywords      []string
	SecondsToRun          float64
	Failure               string
	RunID                 string
}

// Table is the result table of one run, in question order.
type Table struct {
	RunID string
	Rows  []TableRow
}

// NewTable flattens scored rows into a table tagged with runID.
func NewTable(runID string, rows []eval.Row) Table {
	table := Table{RunID: runID, Rows: make([]TableRow, 0, len(rows))}
	for _, row := range rows {
		table.Rows = append(table.Rows, TableRow{
			Question:              row.Question.Text,
			ShouldAnswer:          row.Question.ShouldAnswer,
			AnswerProvided:        row.AnswerProvided,
			TestAnswerProvided:    row.TestAnswerProvided,
			ExpectedAnswer:        row.Question.ExpectedAnswer,
			Answer:                row.Record.Answer,
			FuzzyPartialRatio:     row.FuzzyPartialRatio,
			ExpectedURL:           row.Question.ExpectedURL,
			RetrievalKeywordScore: row.RetrievalKeywordScore,
			CorrectDoc:            row.CorrectDoc,
			RetrievalRank:         row.RetrievalRank,
			ShouldProvideRelevant: row.Question.ShouldProvideRelevant,
			SectionURL:            row.SectionURL(),
			AllURLs:               nonNil(row.Record.Locators()),
			PageContent:           row.PageContent(),
			ExpectedKeywords:      nonNil(append([]string(nil), row.Question.ExpectedKeywords...)),
			SecondsToRun:          row.Record.ElapsedSeconds(),
			Failure:               row.Failure(),
			RunID:                 runID,
		})
	}
	return table
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
